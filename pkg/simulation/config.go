package simulation

import (
	"fmt"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/integrator"
	"github.com/sun-wendy/6.4400-graphics/pkg/particles"
)

// SystemKind names a built-in particle system
type SystemKind string

const (
	SystemSimple   SystemKind = "simple"
	SystemPendulum SystemKind = "pendulum"
	SystemCloth    SystemKind = "cloth"
)

// Config selects and parameterizes a built-in simulation. It is read once at construction.
type Config struct {
	System     SystemKind      `json:"system"`
	Integrator integrator.Type `json:"integrator"`
	StepSize   float64         `json:"stepSize"`
	Wind       bool            `json:"wind,omitempty"`      // Cloth only: start with wind on
	ClothSize  int             `json:"clothSize,omitempty"` // Cloth only: particles per side
}

// DefaultConfig is an 8x8 cloth integrated with RK4
func DefaultConfig() Config {
	return Config{
		System:     SystemCloth,
		Integrator: integrator.TypeRK4,
		StepSize:   0.001,
		ClothSize:  particles.DefaultClothOptions().Size,
	}
}

// New builds the simulation described by cfg
func New(cfg Config, logger core.Logger) (*Node, error) {
	switch cfg.System {
	case SystemSimple:
		return NewSimpleNode(cfg.Integrator, cfg.StepSize, logger)
	case SystemPendulum:
		return NewPendulumNode(cfg.Integrator, cfg.StepSize, logger)
	case SystemCloth:
		opts := particles.DefaultClothOptions()
		if cfg.ClothSize > 0 {
			opts.Size = cfg.ClothSize
		}
		node, err := NewClothNode(opts, cfg.Integrator, cfg.StepSize, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Wind {
			if err := node.Handle(ToggleWind{}); err != nil {
				return nil, err
			}
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unknown particle system %q", cfg.System)
	}
}

// NewSimpleNode creates a single particle circling the z axis from (-1, 1, 1)
func NewSimpleNode(integratorType integrator.Type, step float64, logger core.Logger) (*Node, error) {
	state := particles.NewState([]core.Vec3{core.NewVec3(-1, 1, 1)}, []core.Vec3{{}})
	return NewNode(particles.NewSimpleSystem(), state, integratorType, step, nil, logger)
}

// NewPendulumNode creates the four-mass chain pendulum hanging from a fixed anchor
func NewPendulumNode(integratorType integrator.Type, step float64, logger core.Logger) (*Node, error) {
	system, state, err := particles.NewChainPendulum(particles.DefaultPendulumLinks(), 0.5, 0.5)
	if err != nil {
		return nil, err
	}
	return NewNode(system, state, integratorType, step, nil, logger)
}

// NewClothNode creates a cloth simulation with a ClothSurface attached
func NewClothNode(opts particles.ClothOptions, integratorType integrator.Type, step float64, logger core.Logger) (*Node, error) {
	system, state, err := particles.NewCloth(opts)
	if err != nil {
		return nil, err
	}
	return NewNode(system, state, integratorType, step, NewClothSurface(system.Size), logger)
}
