package particles

import (
	"fmt"
	"math/rand"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// DefaultWindStrength bounds the random +x wind force per particle
const DefaultWindStrength = 0.1

// ClothSystem is a square grid of masses joined by structural, shear and flex
// springs, with an optional random wind
type ClothSystem struct {
	*SpringNetwork
	Size         int     // Particles per side
	WindStrength float64 // Wind force is uniform in [0, WindStrength) along +x

	windOn bool
	rng    *rand.Rand
}

// ClothOptions configures NewCloth
type ClothOptions struct {
	Size     int     // Particles per side, at least 2
	Mass     float64 // Mass of each particle
	Spacing  float64 // Horizontal grid spacing
	Sag      float64 // Vertical drop per row
	Offset   float64 // Column index offset of the first column along x
	SpringK  float64 // Spring constant shared by all springs
	Seed     int64   // Wind random seed
	FixedRow bool    // Pin row 0
}

// DefaultClothOptions is an 8x8 cloth hanging from its first row
func DefaultClothOptions() ClothOptions {
	return ClothOptions{
		Size:     8,
		Mass:     0.005,
		Spacing:  0.2,
		Sag:      0.05,
		Offset:   4,
		SpringK:  0.3,
		Seed:     1,
		FixedRow: true,
	}
}

// IndexOf returns the particle index of row i, column j
func (c *ClothSystem) IndexOf(i, j int) int {
	return i*c.Size + j
}

// NewCloth lays out a Size x Size grid and returns the system with its initial
// state. Particle (i, j) starts at ((j+Offset)·Spacing, -i·Sag, i·Spacing); spring
// rest lengths are measured from that layout.
func NewCloth(opts ClothOptions) (*ClothSystem, State, error) {
	if opts.Size < 2 {
		return nil, State{}, fmt.Errorf("cloth size must be >= 2, got %d", opts.Size)
	}
	if opts.Mass <= 0 {
		return nil, State{}, fmt.Errorf("cloth particle mass must be > 0, got %f", opts.Mass)
	}

	cloth := &ClothSystem{
		SpringNetwork: NewSpringNetwork(),
		Size:          opts.Size,
		WindStrength:  DefaultWindStrength,
		rng:           rand.New(rand.NewSource(opts.Seed)),
	}
	n := opts.Size
	state := State{
		Positions:  make([]core.Vec3, n*n),
		Velocities: make([]core.Vec3, n*n),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			index := cloth.AddMass(opts.Mass)
			state.Positions[index] = core.NewVec3(
				(float64(j)+opts.Offset)*opts.Spacing,
				-float64(i)*opts.Sag,
				float64(i)*opts.Spacing,
			)
			if i == 0 && opts.FixedRow {
				if err := cloth.FixMass(index); err != nil {
					return nil, State{}, err
				}
			}
		}
	}

	connect := func(i0, j0, i1, j1 int) error {
		if i1 >= n || j1 >= n || j1 < 0 {
			return nil
		}
		a, b := cloth.IndexOf(i0, j0), cloth.IndexOf(i1, j1)
		rest := state.Positions[a].Subtract(state.Positions[b]).Length()
		return cloth.AddSpring(a, b, rest, opts.SpringK)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			springs := [][2]int{
				{i + 1, j}, {i, j + 1}, // Structural
				{i + 1, j + 1}, {i + 1, j - 1}, // Shear
				{i + 2, j}, {i, j + 2}, // Flex
			}
			for _, to := range springs {
				if err := connect(i, j, to[0], to[1]); err != nil {
					return nil, State{}, err
				}
			}
		}
	}
	return cloth, state, nil
}

// ComputeTimeDerivative implements System, adding wind when it is enabled
func (c *ClothSystem) ComputeTimeDerivative(state State, t float64) State {
	if !c.windOn {
		return c.derivative(state, nil)
	}
	return c.derivative(state, func(int) core.Vec3 {
		return core.NewVec3(c.rng.Float64()*c.WindStrength, 0, 0)
	})
}

// EnableWind turns the random wind on
func (c *ClothSystem) EnableWind() {
	c.windOn = true
}

// DisableWind turns the random wind off
func (c *ClothSystem) DisableWind() {
	c.windOn = false
}

// WindEnabled reports whether wind is on
func (c *ClothSystem) WindEnabled() bool {
	return c.windOn
}
