package particles

import "github.com/sun-wendy/6.4400-graphics/pkg/core"

// SimpleSystem moves a single particle around the z axis: its position
// derivative is the rotation field (-y, x, 0), so exact motion is a circle
type SimpleSystem struct{}

// NewSimpleSystem creates the rotation system
func NewSimpleSystem() *SimpleSystem {
	return &SimpleSystem{}
}

// ComputeTimeDerivative implements System
func (s *SimpleSystem) ComputeTimeDerivative(state State, t float64) State {
	derivative := State{
		Positions:  make([]core.Vec3, len(state.Positions)),
		Velocities: make([]core.Vec3, len(state.Velocities)),
	}
	for i, p := range state.Positions {
		derivative.Positions[i] = core.NewVec3(-p.Y, p.X, 0)
	}
	return derivative
}

// NumParticles implements System
func (s *SimpleSystem) NumParticles() int {
	return 1
}
