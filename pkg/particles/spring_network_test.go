package particles

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

func TestSpringNetwork_MatricesStaySymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	network := NewSpringNetwork()

	for n := 0; n < 12; n++ {
		network.AddMass(0.1)
		// Springs between arbitrary existing pairs after every insertion
		for s := 0; s < 3 && n > 0; s++ {
			i, j := rng.Intn(n+1), rng.Intn(n+1)
			if i == j {
				continue
			}
			if err := network.AddSpring(i, j, rng.Float64(), rng.Float64()); err != nil {
				t.Fatalf("AddSpring(%d, %d): %v", i, j, err)
			}
		}

		size := network.NumParticles()
		if len(network.restLengths) != size || len(network.springK) != size {
			t.Fatalf("Expected %d rows, got %d and %d", size, len(network.restLengths), len(network.springK))
		}
		for i := 0; i < size; i++ {
			if len(network.restLengths[i]) != size || len(network.springK[i]) != size {
				t.Fatalf("Row %d is not of length %d", i, size)
			}
			for j := 0; j < size; j++ {
				if network.RestLength(i, j) != network.RestLength(j, i) {
					t.Errorf("Rest length (%d,%d) not symmetric", i, j)
				}
				if network.SpringConstant(i, j) != network.SpringConstant(j, i) {
					t.Errorf("Spring constant (%d,%d) not symmetric", i, j)
				}
			}
		}
	}
}

func TestSpringNetwork_IndexErrors(t *testing.T) {
	network := NewSpringNetwork()
	network.AddMass(1)

	if err := network.AddSpring(0, 1, 1, 1); !errors.Is(err, ErrParticleIndex) {
		t.Errorf("Expected ErrParticleIndex, got %v", err)
	}
	if err := network.FixMass(-1); !errors.Is(err, ErrParticleIndex) {
		t.Errorf("Expected ErrParticleIndex, got %v", err)
	}
	if err := network.AddSpring(0, 0, 1, 1); err == nil {
		t.Error("Expected error for a spring from a particle to itself")
	}
}

func TestSpringNetwork_Forces(t *testing.T) {
	network := NewSpringNetwork()
	network.Drag = 0.5
	a := network.AddMass(2)
	b := network.AddMass(1)
	if err := network.AddSpring(a, b, 1, 4); err != nil {
		t.Fatal(err)
	}

	// b is 3 units to the right of a and moving up; spring stretched by 2
	state := NewState(
		[]core.Vec3{{}, core.NewVec3(3, 0, 0)},
		[]core.Vec3{{}, core.NewVec3(0, 2, 0)},
	)
	d := network.ComputeTimeDerivative(state, 0)

	if d.Positions[b] != state.Velocities[b] {
		t.Errorf("Position derivative should be the velocity, got %v", d.Positions[b])
	}

	// Force on b: gravity (0,-9.8,0), drag (0,-1,0), spring (-8,0,0); mass 1
	wantB := core.NewVec3(-8, -10.8, 0)
	if d.Velocities[b].Subtract(wantB).Length() > 1e-12 {
		t.Errorf("Expected acceleration %v for b, got %v", wantB, d.Velocities[b])
	}

	// Force on a: gravity (0,-19.6,0), spring (+8,0,0); mass 2
	wantA := core.NewVec3(4, -9.8, 0)
	if d.Velocities[a].Subtract(wantA).Length() > 1e-12 {
		t.Errorf("Expected acceleration %v for a, got %v", wantA, d.Velocities[a])
	}
}

func TestSpringNetwork_FrozenParticles(t *testing.T) {
	network := NewSpringNetwork()
	fixed := network.AddMass(1)
	massless := network.AddMass(0)
	free := network.AddMass(1)
	if err := network.FixMass(fixed); err != nil {
		t.Fatal(err)
	}
	if err := network.AddSpring(fixed, free, 0.5, 10); err != nil {
		t.Fatal(err)
	}

	state := NewState(
		[]core.Vec3{{}, core.NewVec3(1, 0, 0), core.NewVec3(0, -2, 0)},
		[]core.Vec3{core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), {}},
	)
	d := network.ComputeTimeDerivative(state, 0)

	for _, i := range []int{fixed, massless} {
		if d.Positions[i] != (core.Vec3{}) || d.Velocities[i] != (core.Vec3{}) {
			t.Errorf("Particle %d should be frozen, got %v / %v", i, d.Positions[i], d.Velocities[i])
		}
	}
	if d.Velocities[free] == (core.Vec3{}) {
		t.Error("Free particle should accelerate")
	}
}

func TestChainPendulum(t *testing.T) {
	system, state, err := NewChainPendulum(DefaultPendulumLinks(), 0.5, 0.5)
	if err != nil {
		t.Fatalf("NewChainPendulum: %v", err)
	}
	if system.NumParticles() != 4 || state.Len() != 4 {
		t.Fatalf("Expected 4 particles, got %d / %d", system.NumParticles(), state.Len())
	}
	if !system.IsFixed(0) {
		t.Error("Anchor should be fixed")
	}
	for i := 0; i < 3; i++ {
		if system.SpringConstant(i, i+1) != 0.5 || system.RestLength(i, i+1) != 0.5 {
			t.Errorf("Missing spring %d-%d", i, i+1)
		}
	}
	if system.SpringConstant(0, 2) != 0 {
		t.Error("Non-adjacent masses should not be connected")
	}
	if state.Velocities[3] != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected last bob thrown upward, got %v", state.Velocities[3])
	}
}

func TestCloth_Layout(t *testing.T) {
	cloth, state, err := NewCloth(DefaultClothOptions())
	if err != nil {
		t.Fatalf("NewCloth: %v", err)
	}
	if cloth.NumParticles() != 64 {
		t.Fatalf("Expected 64 particles, got %d", cloth.NumParticles())
	}

	p := state.Positions[cloth.IndexOf(2, 3)]
	want := core.NewVec3(7*0.2, -2*0.05, 2*0.2)
	if p.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected particle (2,3) at %v, got %v", want, p)
	}

	for j := 0; j < 8; j++ {
		if !cloth.IsFixed(cloth.IndexOf(0, j)) {
			t.Errorf("Top row particle %d should be fixed", j)
		}
		if cloth.IsFixed(cloth.IndexOf(1, j)) {
			t.Errorf("Second row particle %d should be free", j)
		}
	}

	tests := []struct {
		name   string
		i0, j0 int
		i1, j1 int
	}{
		{"structural row", 3, 3, 4, 3},
		{"structural column", 3, 3, 3, 4},
		{"shear", 3, 3, 4, 4},
		{"shear anti-diagonal", 3, 3, 4, 2},
		{"flex row", 3, 3, 5, 3},
		{"flex column", 3, 3, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := cloth.IndexOf(tt.i0, tt.j0), cloth.IndexOf(tt.i1, tt.j1)
			if cloth.SpringConstant(a, b) != 0.3 {
				t.Errorf("Expected spring constant 0.3, got %f", cloth.SpringConstant(a, b))
			}
			rest := state.Positions[a].Subtract(state.Positions[b]).Length()
			if math.Abs(cloth.RestLength(a, b)-rest) > 1e-12 {
				t.Errorf("Expected rest length %f from layout, got %f", rest, cloth.RestLength(a, b))
			}
		})
	}

	if cloth.SpringConstant(cloth.IndexOf(0, 0), cloth.IndexOf(3, 3)) != 0 {
		t.Error("Distant particles should not be connected")
	}
}

func TestCloth_Wind(t *testing.T) {
	cloth, state, err := NewCloth(DefaultClothOptions())
	if err != nil {
		t.Fatal(err)
	}
	calm := cloth.ComputeTimeDerivative(state, 0)

	cloth.EnableWind()
	if !cloth.WindEnabled() {
		t.Fatal("Wind should be on")
	}
	windy := cloth.ComputeTimeDerivative(state, 0)

	i := cloth.IndexOf(4, 4)
	push := windy.Velocities[i].X - calm.Velocities[i].X
	maxPush := cloth.WindStrength / cloth.Mass(i)
	if push < 0 || push >= maxPush+1e-12 {
		t.Errorf("Expected wind acceleration in [0, %f), got %f", maxPush, push)
	}

	cloth.DisableWind()
	again := cloth.ComputeTimeDerivative(state, 0)
	if again.Velocities[i] != calm.Velocities[i] {
		t.Error("Disabling wind should restore the calm derivative")
	}
}

func TestNewCloth_Invalid(t *testing.T) {
	opts := DefaultClothOptions()
	opts.Size = 1
	if _, _, err := NewCloth(opts); err == nil {
		t.Error("Expected error for a 1x1 cloth")
	}
}
