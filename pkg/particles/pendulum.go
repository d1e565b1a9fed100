package particles

import "github.com/sun-wendy/6.4400-graphics/pkg/core"

// PendulumSystem is a chain of masses hanging from a fixed anchor
type PendulumSystem struct {
	*SpringNetwork
}

// NewPendulumSystem creates an empty pendulum; masses and springs are added by the caller
func NewPendulumSystem() *PendulumSystem {
	return &PendulumSystem{SpringNetwork: NewSpringNetwork()}
}

// PendulumLink describes one mass of a chain pendulum
type PendulumLink struct {
	Mass     float64
	Position core.Vec3
	Velocity core.Vec3
}

// NewChainPendulum links consecutive masses with identical springs and fixes
// the first one. It returns the system with its initial state.
func NewChainPendulum(links []PendulumLink, restLength, k float64) (*PendulumSystem, State, error) {
	system := NewPendulumSystem()
	state := State{}

	for i, link := range links {
		index := system.AddMass(link.Mass)
		state.Positions = append(state.Positions, link.Position)
		state.Velocities = append(state.Velocities, link.Velocity)
		if i == 0 {
			continue
		}
		if err := system.AddSpring(index-1, index, restLength, k); err != nil {
			return nil, State{}, err
		}
	}
	if len(links) > 0 {
		if err := system.FixMass(0); err != nil {
			return nil, State{}, err
		}
	}
	return system, state, nil
}

// DefaultPendulumLinks is the four-mass chain: a heavy anchor and three light bobs,
// the last one thrown upward
func DefaultPendulumLinks() []PendulumLink {
	return []PendulumLink{
		{Mass: 0.5, Position: core.NewVec3(0, 0, 0)},
		{Mass: 0.005, Position: core.NewVec3(0, 1, -1)},
		{Mass: 0.005, Position: core.NewVec3(0, -1, 1)},
		{Mass: 0.005, Position: core.NewVec3(0, 2, 0), Velocity: core.NewVec3(0, 1, 0)},
	}
}
