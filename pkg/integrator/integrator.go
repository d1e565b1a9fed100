package integrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sun-wendy/6.4400-graphics/pkg/particles"
)

// ErrUnsupportedIntegratorType is returned when an integrator id is unknown
var ErrUnsupportedIntegratorType = errors.New("unsupported integrator type")

// Type identifies a numerical integration scheme
type Type string

const (
	TypeEuler       Type = "euler"
	TypeTrapezoidal Type = "trapezoidal"
	TypeRK4         Type = "rk4"
)

// Types lists every supported integrator
func Types() []Type {
	return []Type{TypeEuler, TypeTrapezoidal, TypeRK4}
}

// Integrator advances a particle state by one time step
type Integrator interface {
	// Integrate returns the state at t+dt. It combines states only through
	// Add and Scale and never modifies state.
	Integrate(system particles.System, state particles.State, t, dt float64) particles.State
}

// ParseType converts a name such as "rk4" or "Trapezoidal" to a Type
func ParseType(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnsupportedIntegratorType)
}

// New creates the integrator for t. Unknown types fail here rather than on first use.
func New(t Type) (Integrator, error) {
	switch t {
	case TypeEuler:
		return ForwardEuler{}, nil
	case TypeTrapezoidal:
		return Trapezoidal{}, nil
	case TypeRK4:
		return RK4{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", t, ErrUnsupportedIntegratorType)
	}
}

// ForwardEuler is s + dt·f(s, t)
type ForwardEuler struct{}

// Integrate implements Integrator
func (ForwardEuler) Integrate(system particles.System, state particles.State, t, dt float64) particles.State {
	return state.Add(system.ComputeTimeDerivative(state, t).Scale(dt))
}

// Trapezoidal is Heun's method: the average of the slopes at both ends of an Euler step
type Trapezoidal struct{}

// Integrate implements Integrator
func (Trapezoidal) Integrate(system particles.System, state particles.State, t, dt float64) particles.State {
	k0 := system.ComputeTimeDerivative(state, t)
	k1 := system.ComputeTimeDerivative(state.Add(k0.Scale(dt)), t+dt)
	return state.Add(k0.Add(k1).Scale(0.5 * dt))
}

// RK4 is the classical fourth-order Runge-Kutta scheme
type RK4 struct{}

// Integrate implements Integrator
func (RK4) Integrate(system particles.System, state particles.State, t, dt float64) particles.State {
	half := 0.5 * dt
	k1 := system.ComputeTimeDerivative(state, t)
	k2 := system.ComputeTimeDerivative(state.Add(k1.Scale(half)), t+half)
	k3 := system.ComputeTimeDerivative(state.Add(k2.Scale(half)), t+half)
	k4 := system.ComputeTimeDerivative(state.Add(k3.Scale(dt)), t+dt)

	weighted := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return state.Add(weighted.Scale(dt / 6))
}
