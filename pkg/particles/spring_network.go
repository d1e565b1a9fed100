package particles

import (
	"fmt"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Gravity is the gravitational acceleration applied to every free particle
var Gravity = core.NewVec3(0, -9.8, 0)

// DefaultDrag is the velocity-proportional drag coefficient
const DefaultDrag = 0.01

// SpringNetwork is a set of point masses joined by linear springs.
// Rest lengths and spring constants live in square symmetric matrices that
// grow by one zero row and column per added mass; a zero spring constant means
// the pair is not connected.
type SpringNetwork struct {
	Drag float64 // Drag coefficient c in the force -c·v

	masses      []float64
	fixed       []bool
	restLengths [][]float64
	springK     [][]float64
}

// NewSpringNetwork creates an empty network with the default drag
func NewSpringNetwork() *SpringNetwork {
	return &SpringNetwork{Drag: DefaultDrag}
}

// AddMass appends a particle and returns its index
func (n *SpringNetwork) AddMass(mass float64) int {
	n.masses = append(n.masses, mass)
	n.fixed = append(n.fixed, false)

	size := len(n.masses)
	for i := range n.restLengths {
		n.restLengths[i] = append(n.restLengths[i], 0)
		n.springK[i] = append(n.springK[i], 0)
	}
	n.restLengths = append(n.restLengths, make([]float64, size))
	n.springK = append(n.springK, make([]float64, size))
	return size - 1
}

// AddSpring connects particles i and j. Both matrix entries are written so the
// network stays symmetric.
func (n *SpringNetwork) AddSpring(i, j int, restLength, k float64) error {
	if err := n.checkIndex(i); err != nil {
		return err
	}
	if err := n.checkIndex(j); err != nil {
		return err
	}
	if i == j {
		return fmt.Errorf("spring from particle %d to itself", i)
	}
	n.restLengths[i][j], n.restLengths[j][i] = restLength, restLength
	n.springK[i][j], n.springK[j][i] = k, k
	return nil
}

// FixMass pins particle i in place
func (n *SpringNetwork) FixMass(i int) error {
	if err := n.checkIndex(i); err != nil {
		return err
	}
	n.fixed[i] = true
	return nil
}

// IsFixed reports whether particle i is pinned
func (n *SpringNetwork) IsFixed(i int) bool {
	return n.fixed[i]
}

// Mass returns the mass of particle i
func (n *SpringNetwork) Mass(i int) float64 {
	return n.masses[i]
}

// RestLength returns the rest length between i and j (zero when unconnected)
func (n *SpringNetwork) RestLength(i, j int) float64 {
	return n.restLengths[i][j]
}

// SpringConstant returns the spring constant between i and j (zero when unconnected)
func (n *SpringNetwork) SpringConstant(i, j int) float64 {
	return n.springK[i][j]
}

// NumParticles implements System
func (n *SpringNetwork) NumParticles() int {
	return len(n.masses)
}

// ComputeTimeDerivative implements System with gravity, drag and spring forces
func (n *SpringNetwork) ComputeTimeDerivative(state State, t float64) State {
	return n.derivative(state, nil)
}

// derivative evaluates the force model. external, when set, adds a force on
// particle i on top of gravity, drag and springs.
func (n *SpringNetwork) derivative(state State, external func(i int) core.Vec3) State {
	count := len(n.masses)
	if state.Len() != count || len(state.Velocities) != count {
		panic(fmt.Sprintf("particles: state of %d/%d particles for a network of %d",
			len(state.Positions), len(state.Velocities), count))
	}

	derivative := State{
		Positions:  make([]core.Vec3, count),
		Velocities: make([]core.Vec3, count),
	}

	for i := 0; i < count; i++ {
		if n.frozen(i) {
			continue
		}

		velocity := state.Velocities[i]
		force := Gravity.Multiply(n.masses[i])
		force = force.Add(velocity.Multiply(-n.Drag))
		force = force.Add(n.springForce(state.Positions, i))
		if external != nil {
			force = force.Add(external(i))
		}

		derivative.Positions[i] = velocity
		derivative.Velocities[i] = force.Multiply(1 / n.masses[i])
	}
	return derivative
}

// springForce sums -k·(|pi - pj| - rest)·normalize(pi - pj) over every connected j
func (n *SpringNetwork) springForce(positions []core.Vec3, i int) core.Vec3 {
	total := core.Vec3{}
	for j, k := range n.springK[i] {
		if j == i || k == 0 {
			continue
		}
		offset := positions[i].Subtract(positions[j])
		length := offset.Length()
		if length == 0 {
			continue
		}
		stretch := length - n.restLengths[i][j]
		total = total.Add(offset.Multiply(-k * stretch / length))
	}
	return total
}

// frozen particles never move: fixed or massless
func (n *SpringNetwork) frozen(i int) bool {
	return n.fixed[i] || n.masses[i] == 0
}

func (n *SpringNetwork) checkIndex(i int) error {
	if i < 0 || i >= len(n.masses) {
		return fmt.Errorf("particle %d of %d: %w", i, len(n.masses), ErrParticleIndex)
	}
	return nil
}
