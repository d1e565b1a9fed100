package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
)

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileID     int
	TileNumber int // Completed tiles so far, 1-based
	TotalTiles int
}

// Render traces every pixel of the scene once and returns the linear image at the
// scene resolution (supersampled renders are downsampled). The first tile error,
// such as an unsupported light, aborts the render.
func (t *Tracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	return t.RenderWithProgress(ctx, nil)
}

// RenderWithProgress is Render with a callback invoked after each tile, from the calling goroutine
func (t *Tracer) RenderWithProgress(ctx context.Context, tileCallback func(TileCompletionResult)) (*Image, RenderStats, error) {
	startTime := time.Now()
	ctx, cancel := context.WithCancel(ctx)

	width := t.settings.Width * t.settings.Supersample
	height := t.settings.Height * t.settings.Supersample
	img := NewImage(width, height)
	tiles := NewTileGrid(width, height, t.config.TileSize)

	workerPool := NewWorkerPool(t, len(tiles), t.config.NumWorkers)
	workerPool.Start(ctx)
	defer func() {
		// Cancel first so queued tiles are skipped after an error
		cancel()
		workerPool.Stop()
	}()

	t.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		width, height, len(tiles), workerPool.GetNumWorkers())

	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	stats := RenderStats{Workers: workerPool.GetNumWorkers()}
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, stats, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, stats, fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.Merge(result.Stats)

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileID:     result.TaskID,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}

	if t.settings.Supersample > 1 {
		img = img.Downsample(t.settings.Width, t.settings.Height)
	}
	stats.Elapsed = time.Since(startTime)

	t.logger.Printf("Render completed in %v (%.1f%% primary hits)\n", stats.Elapsed, 100*stats.HitRatio())
	return img, stats, nil
}

// InspectResult describes what the primary ray through a pixel hits
type InspectResult struct {
	Hit      bool              `json:"hit"`
	NodeName string            `json:"nodeName,omitempty"`
	Time     float64           `json:"time,omitempty"`
	Point    core.Vec3         `json:"point"`
	Normal   core.Vec3         `json:"normal"`
	Material material.Material `json:"material"`
	Shape    string            `json:"shape,omitempty"`
}

// Inspect traces the primary ray through pixel (x, y), with (0,0) the top-left
// corner of the output image
func (t *Tracer) Inspect(x, y int) (InspectResult, error) {
	width, height := t.settings.Width, t.settings.Height
	if x < 0 || x >= width || y < 0 || y >= height {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, width, height)
	}

	// Output rows run top-down, image-plane rows bottom-up
	row := height - 1 - y
	xNorm := (float64(x)+0.5)/float64(width)*2 - 1
	yNorm := (float64(row)+0.5)/float64(height)*2 - 1

	hit, ok := t.closestHit(t.camera.GenerateRay(xNorm, yNorm), t.camera.GetTMin())
	if !ok {
		return InspectResult{Hit: false}, nil
	}
	return InspectResult{
		Hit:      true,
		NodeName: hit.object.node.Name,
		Time:     hit.time,
		Point:    hit.position,
		Normal:   hit.normal,
		Material: hit.object.material,
		Shape:    shapeName(hit.object.hittable),
	}, nil
}

func shapeName(h geometry.Hittable) string {
	switch h.(type) {
	case *geometry.Plane:
		return "plane"
	case *geometry.Triangle:
		return "triangle"
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Mesh:
		return "mesh"
	case *geometry.Group:
		return "group"
	default:
		return fmt.Sprintf("%T", h)
	}
}
