package simulation

import (
	"fmt"
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/integrator"
	"github.com/sun-wendy/6.4400-graphics/pkg/particles"
)

// stepEpsilon absorbs rounding when the frame time is a whole multiple of the step
const stepEpsilon = 1e-9

// PositionSink consumes particle positions after every integration step.
// positions is only valid for the duration of the call.
type PositionSink interface {
	UpdatePositions(positions []core.Vec3)
}

// Node advances a particle system with a fixed step size. The integrator is
// chosen once at construction.
type Node struct {
	system         particles.System
	integrator     integrator.Integrator
	integratorType integrator.Type
	step           float64

	initial     particles.State
	state       particles.State
	time        float64
	accumulator float64 // Frame time not yet consumed by whole steps

	sinks  []PositionSink
	logger core.Logger
}

// NewNode validates its inputs and creates a simulation node. sink may be nil.
func NewNode(system particles.System, state particles.State, integratorType integrator.Type, step float64, sink PositionSink, logger core.Logger) (*Node, error) {
	if system == nil {
		return nil, fmt.Errorf("simulation needs a particle system")
	}
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil, fmt.Errorf("step size must be a positive number, got %v", step)
	}
	if err := particles.CheckState(system, state); err != nil {
		return nil, err
	}
	integ, err := integrator.New(integratorType)
	if err != nil {
		return nil, err
	}

	n := &Node{
		system:         system,
		integrator:     integ,
		integratorType: integratorType,
		step:           step,
		initial:        state.Clone(),
		state:          state.Clone(),
		logger:         core.LoggerOrNop(logger),
	}
	if sink != nil {
		n.AddSink(sink)
	}
	n.logger.Printf("Simulation ready: %d particles, %s integrator, step %g\n",
		system.NumParticles(), integratorType, step)
	return n, nil
}

// AddSink registers a sink and immediately sends it the current positions
func (n *Node) AddSink(sink PositionSink) {
	n.sinks = append(n.sinks, sink)
	sink.UpdatePositions(n.state.Positions)
}

// Update consumes frameTime seconds and returns the number of steps taken.
// Whole steps run while the accumulated time covers one; the remainder is
// carried into the next call.
func (n *Node) Update(frameTime float64) int {
	if frameTime > 0 && !math.IsInf(frameTime, 0) {
		n.accumulator += frameTime
	}

	steps := 0
	for n.accumulator+stepEpsilon*n.step >= n.step {
		n.state = n.integrator.Integrate(n.system, n.state, n.time, n.step)
		n.time += n.step
		n.accumulator -= n.step
		steps++
		n.publish()
	}
	if n.accumulator < 0 {
		n.accumulator = 0
	}
	return steps
}

// Handle applies a command to the node
func (n *Node) Handle(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("nil command")
	}
	if err := cmd.apply(n); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	n.logger.Printf("Simulation command: %s\n", cmd)
	return nil
}

// reset restores the initial state and clock
func (n *Node) reset() {
	n.state = n.initial.Clone()
	n.time = 0
	n.accumulator = 0
	n.publish()
}

func (n *Node) publish() {
	for _, sink := range n.sinks {
		sink.UpdatePositions(n.state.Positions)
	}
}

// State returns a copy of the current state
func (n *Node) State() particles.State {
	return n.state.Clone()
}

// Positions returns a copy of the current particle positions
func (n *Node) Positions() []core.Vec3 {
	return append([]core.Vec3(nil), n.state.Positions...)
}

// Time returns the simulated time
func (n *Node) Time() float64 {
	return n.time
}

// Leftover returns frame time carried to the next Update
func (n *Node) Leftover() float64 {
	return n.accumulator
}

// StepSize returns the fixed integration step
func (n *Node) StepSize() float64 {
	return n.step
}

// IntegratorType returns the integrator chosen at construction
func (n *Node) IntegratorType() integrator.Type {
	return n.integratorType
}

// System returns the simulated particle system
func (n *Node) System() particles.System {
	return n.system
}

// ClothSurface returns the first registered cloth surface, or nil
func (n *Node) ClothSurface() *ClothSurface {
	for _, sink := range n.sinks {
		if surface, ok := sink.(*ClothSurface); ok {
			return surface
		}
	}
	return nil
}
