package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/integrator"
	"github.com/sun-wendy/6.4400-graphics/pkg/simulation"
)

// Simulation request limits
const (
	maxSimulationDuration = 30.0
	minSimulationStep     = 1e-5
	maxSimulationStep     = 0.1
	minSimulationFPS      = 1
	maxSimulationFPS      = 120
	defaultSimDuration    = 2.0
	defaultSimFPS         = 30
	maxClothSize          = 32
)

// SimulationRequest configures a streamed simulation
type SimulationRequest struct {
	Config   simulation.Config `json:"config"`
	Duration float64           `json:"duration"`
	FPS      int               `json:"fps"`
}

// FrameUpdate carries the particle positions at the end of one frame
type FrameUpdate struct {
	Index     int          `json:"index"`
	Time      float64      `json:"time"`
	Steps     int          `json:"steps"`
	Positions [][3]float64 `json:"positions"`
	Indices   []int        `json:"indices,omitempty"` // Cloth triangles, first frame only
}

// handleSimulate runs a particle simulation and streams one frame event per
// output frame via SSE
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stream := startEventStream(w)
	defer stream.close()

	req, err := parseSimulationRequest(r)
	if err != nil {
		stream.send(ctx, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	console, logger := startConsole(ctx, stream, fmt.Sprintf("simulate-%d", time.Now().UnixNano()))
	frames, err := runSimulation(ctx, req, logger, func(frame FrameUpdate) {
		stream.send(ctx, "frame", frame)
	})
	console.close()

	if err != nil {
		stream.send(ctx, "error", fmt.Sprintf("Simulation failed: %v", err))
		return
	}
	stream.send(ctx, "complete", fmt.Sprintf("Simulation completed: %d frames", frames))
}

// runSimulation advances the node frame by frame, reporting the initial state as frame 0
func runSimulation(ctx context.Context, req *SimulationRequest, logger core.Logger, onFrame func(FrameUpdate)) (int, error) {
	node, err := simulation.New(req.Config, logger)
	if err != nil {
		return 0, err
	}

	first := frameUpdate(0, node, 0)
	if surface := node.ClothSurface(); surface != nil {
		first.Indices = surface.Indices()
	}
	onFrame(first)

	frameTime := 1.0 / float64(req.FPS)
	numFrames := int(math.Round(req.Duration * float64(req.FPS)))
	for i := 1; i <= numFrames; i++ {
		if err := ctx.Err(); err != nil {
			return i - 1, err
		}
		steps := node.Update(frameTime)
		onFrame(frameUpdate(i, node, steps))
	}

	logger.Printf("Simulated %.2fs of %s with %s (%d frames)\n",
		node.Time(), req.Config.System, node.IntegratorType(), numFrames)
	return numFrames + 1, nil
}

func frameUpdate(index int, node *simulation.Node, steps int) FrameUpdate {
	positions := node.Positions()
	out := make([][3]float64, len(positions))
	for i, p := range positions {
		out[i] = vecArray(p)
	}
	return FrameUpdate{Index: index, Time: node.Time(), Steps: steps, Positions: out}
}

// parseSimulationRequest reads system, integrator, step, duration, fps, wind and clothSize
func parseSimulationRequest(r *http.Request) (*SimulationRequest, error) {
	query := r.URL.Query()
	req := &SimulationRequest{Config: simulation.DefaultConfig()}

	if system := query.Get("system"); system != "" {
		req.Config.System = simulation.SystemKind(system)
	}
	if name := query.Get("integrator"); name != "" {
		integratorType, err := integrator.ParseType(name)
		if err != nil {
			return nil, err
		}
		req.Config.Integrator = integratorType
	}

	var err error
	if req.Config.StepSize, err = parseFloatParam(query, "step", req.Config.StepSize, minSimulationStep, maxSimulationStep); err != nil {
		return nil, err
	}
	if req.Config.Wind, err = parseBoolParam(query, "wind", false); err != nil {
		return nil, err
	}
	if req.Config.ClothSize, err = parseIntParam(query, "clothSize", req.Config.ClothSize, 2, maxClothSize); err != nil {
		return nil, err
	}
	if req.Duration, err = parseFloatParam(query, "duration", defaultSimDuration, 0, maxSimulationDuration); err != nil {
		return nil, err
	}
	if req.FPS, err = parseIntParam(query, "fps", defaultSimFPS, minSimulationFPS, maxSimulationFPS); err != nil {
		return nil, err
	}
	return req, nil
}
