package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/particles"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"euler", TypeEuler, false},
		{"Trapezoidal", TypeTrapezoidal, false},
		{" RK4 ", TypeRK4, false},
		{"verlet", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedIntegratorType) {
					t.Errorf("Expected ErrUnsupportedIntegratorType, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Expected %q, got %q (%v)", tt.want, got, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, typ := range Types() {
		if _, err := New(typ); err != nil {
			t.Errorf("New(%q): %v", typ, err)
		}
	}
	if _, err := New("midpoint"); !errors.Is(err, ErrUnsupportedIntegratorType) {
		t.Errorf("Expected ErrUnsupportedIntegratorType, got %v", err)
	}
}

// constantAcceleration has derivative (v, a): exact for every scheme of order >= 2
type constantAcceleration struct {
	acceleration core.Vec3
}

func (c constantAcceleration) ComputeTimeDerivative(state particles.State, t float64) particles.State {
	d := particles.State{
		Positions:  append([]core.Vec3(nil), state.Velocities...),
		Velocities: make([]core.Vec3, len(state.Velocities)),
	}
	for i := range d.Velocities {
		d.Velocities[i] = c.acceleration
	}
	return d
}

func (c constantAcceleration) NumParticles() int { return 1 }

func TestIntegrators_SingleStep(t *testing.T) {
	system := constantAcceleration{acceleration: core.NewVec3(0, -10, 0)}
	state := particles.NewState([]core.Vec3{{}}, []core.Vec3{core.NewVec3(1, 0, 0)})
	dt := 0.5

	tests := []struct {
		typ      Type
		position core.Vec3
	}{
		// Euler uses the start velocity only
		{TypeEuler, core.NewVec3(0.5, 0, 0)},
		// Second order and above reproduce x = v·t + a·t²/2
		{TypeTrapezoidal, core.NewVec3(0.5, -1.25, 0)},
		{TypeRK4, core.NewVec3(0.5, -1.25, 0)},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			integ, err := New(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			next := integ.Integrate(system, state, 0, dt)

			if next.Positions[0].Subtract(tt.position).Length() > 1e-12 {
				t.Errorf("Expected position %v, got %v", tt.position, next.Positions[0])
			}
			wantVelocity := core.NewVec3(1, -5, 0)
			if next.Velocities[0].Subtract(wantVelocity).Length() > 1e-12 {
				t.Errorf("Expected velocity %v, got %v", wantVelocity, next.Velocities[0])
			}
			if state.Positions[0] != (core.Vec3{}) {
				t.Error("Integrate modified its input state")
			}
		})
	}
}

// radiusDrift integrates the rotation field and returns |r_final - r_initial|
func radiusDrift(t *testing.T, typ Type, steps int, dt float64) float64 {
	t.Helper()
	integ, err := New(typ)
	if err != nil {
		t.Fatal(err)
	}
	system := particles.NewSimpleSystem()
	state := particles.NewState([]core.Vec3{core.NewVec3(1, 0, 0)}, []core.Vec3{{}})
	start := state.Positions[0].Length()

	time := 0.0
	for i := 0; i < steps; i++ {
		state = integ.Integrate(system, state, time, dt)
		time += dt
	}
	return math.Abs(state.Positions[0].Length() - start)
}

func TestIntegrators_CircularMotion(t *testing.T) {
	const steps = 1000
	const dt = 0.01

	euler := radiusDrift(t, TypeEuler, steps, dt)
	trapezoidal := radiusDrift(t, TypeTrapezoidal, steps, dt)
	rk4 := radiusDrift(t, TypeRK4, steps, dt)

	if euler < 0.01 {
		t.Errorf("Expected Euler to spiral outward visibly, drift %g", euler)
	}
	if trapezoidal > 1e-3 {
		t.Errorf("Trapezoidal drift too large: %g", trapezoidal)
	}
	if rk4 > 1e-9 {
		t.Errorf("RK4 drift too large: %g", rk4)
	}
	if rk4 >= euler {
		t.Errorf("Expected RK4 drift (%g) below Euler drift (%g)", rk4, euler)
	}
}
