package particles

import (
	"errors"
	"fmt"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

var (
	// ErrStateMismatch reports a state whose vectors disagree in length, or whose
	// length does not match the system it is used with
	ErrStateMismatch = errors.New("particle state length mismatch")

	// ErrParticleIndex reports a reference to a particle that was never added
	ErrParticleIndex = errors.New("particle index out of range")
)

// State is the position/velocity pair describing every particle of a system.
// It behaves as a vector: integrators only combine states with Add and Scale.
type State struct {
	Positions  []core.Vec3
	Velocities []core.Vec3
}

// NewState creates a state from positions and velocities, copying both
func NewState(positions, velocities []core.Vec3) State {
	return State{
		Positions:  append([]core.Vec3(nil), positions...),
		Velocities: append([]core.Vec3(nil), velocities...),
	}
}

// Len returns the number of particles
func (s State) Len() int {
	return len(s.Positions)
}

// Validate checks that positions and velocities describe the same particles
func (s State) Validate() error {
	if len(s.Positions) != len(s.Velocities) {
		return fmt.Errorf("%d positions, %d velocities: %w", len(s.Positions), len(s.Velocities), ErrStateMismatch)
	}
	for i := range s.Positions {
		if !s.Positions[i].IsFinite() || !s.Velocities[i].IsFinite() {
			return fmt.Errorf("particle %d is not finite", i)
		}
	}
	return nil
}

// Add returns s + other. Both states must describe the same number of particles.
func (s State) Add(other State) State {
	if len(s.Positions) != len(other.Positions) || len(s.Velocities) != len(other.Velocities) {
		panic(fmt.Sprintf("particles: adding state of %d/%d to state of %d/%d",
			len(other.Positions), len(other.Velocities), len(s.Positions), len(s.Velocities)))
	}

	result := State{
		Positions:  make([]core.Vec3, len(s.Positions)),
		Velocities: make([]core.Vec3, len(s.Velocities)),
	}
	for i := range s.Positions {
		result.Positions[i] = s.Positions[i].Add(other.Positions[i])
	}
	for i := range s.Velocities {
		result.Velocities[i] = s.Velocities[i].Add(other.Velocities[i])
	}
	return result
}

// Scale returns s multiplied by factor
func (s State) Scale(factor float64) State {
	result := State{
		Positions:  make([]core.Vec3, len(s.Positions)),
		Velocities: make([]core.Vec3, len(s.Velocities)),
	}
	for i, p := range s.Positions {
		result.Positions[i] = p.Multiply(factor)
	}
	for i, v := range s.Velocities {
		result.Velocities[i] = v.Multiply(factor)
	}
	return result
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	return NewState(s.Positions, s.Velocities)
}
