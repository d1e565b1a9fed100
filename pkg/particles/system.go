package particles

import "fmt"

// System is a particle system described by its time derivative
type System interface {
	// ComputeTimeDerivative returns (velocities, accelerations) for state at time t
	ComputeTimeDerivative(state State, t float64) State
	// NumParticles returns how many particles a state for this system must hold
	NumParticles() int
}

// CheckState reports whether state is usable with system
func CheckState(system System, state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if state.Len() != system.NumParticles() {
		return fmt.Errorf("state has %d particles, system has %d: %w", state.Len(), system.NumParticles(), ErrStateMismatch)
	}
	return nil
}
