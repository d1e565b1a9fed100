package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/integrator"
	"github.com/sun-wendy/6.4400-graphics/pkg/output"
	"github.com/sun-wendy/6.4400-graphics/pkg/renderer"
	"github.com/sun-wendy/6.4400-graphics/pkg/scene"
	"github.com/sun-wendy/6.4400-graphics/pkg/simulation"
)

const scenesDir = "scenes"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(ctx, os.Args[2:])
	case "simulate":
		err = runSimulate(ctx, os.Args[2:])
	case "help", "-h", "-help", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Println("Graphics toolkit: Whitted ray tracer and particle simulator")
	fmt.Println("Usage:")
	fmt.Println("  graphics render   [-scene name|file.json] [-out render.png] [-s3]")
	fmt.Println("  graphics simulate [-system cloth|pendulum|simple] [-integrator rk4] [-step 0.001]")
	fmt.Println("                    [-duration 2] [-fps 30] [-wind] [-frames frames.json] [-render cloth.png]")
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return
	}
	for _, group := range scenes.Groups {
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output goes to $OUTPUT_DIR (default ./output), or to S3 with -s3")
}

// getEnv returns the environment variable key, or fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// createScene resolves a built-in id, a "json:<name>" id or a path to a scene file
func createScene(nameOrPath string) (*scene.Scene, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Load(scene.ResolveID(nameOrPath, scenesDir))
}

// newSink returns the S3 sink configured from the environment, or a file sink
func newSink(useS3 bool) (output.Sink, error) {
	if !useS3 {
		return output.NewFileSink(getEnv("OUTPUT_DIR", "output")), nil
	}
	return output.NewS3Sink(output.S3ConfigFromEnv())
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	sceneName := fs.String("scene", "point-light-plane", "Built-in scene id, json:<name> or path to a .json scene")
	out := fs.String("out", "", "Output file name (default <scene>/render_<timestamp>.png)")
	useS3 := fs.Bool("s3", false, "Upload to the S3 bucket from the environment instead of writing a file")
	workers := fs.Int("workers", 0, "Number of render workers (0 = CPU count)")
	tileSize := fs.Int("tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := createScene(*sceneName)
	if err != nil {
		return err
	}
	log.Printf("Rendering scene %q (%d primitives)", s.Name, s.GetPrimitiveCount())

	sink, err := newSink(*useS3)
	if err != nil {
		return err
	}
	name := *out
	if name == "" {
		name = defaultOutputName(s.Name, "render")
	}
	return renderScene(ctx, s, renderer.Config{TileSize: *tileSize, NumWorkers: *workers}, sink, name)
}

func renderScene(ctx context.Context, s *scene.Scene, config renderer.Config, sink output.Sink, name string) error {
	tracer, err := renderer.NewTracer(s, config, log.Default())
	if err != nil {
		return err
	}
	img, stats, err := tracer.Render(ctx)
	if err != nil {
		return err
	}
	log.Printf("Traced %d pixels in %d tiles with %d workers (%v)", stats.TotalPixels, stats.Tiles, stats.Workers, stats.Elapsed)

	if err := sink.Write(ctx, name, img.ToNRGBA(s.Settings.Gamma)); err != nil {
		return err
	}
	log.Printf("Render saved as %s", name)
	return nil
}

func runSimulate(ctx context.Context, args []string) error {
	defaults := simulation.DefaultConfig()
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	system := fs.String("system", string(defaults.System), "Particle system: simple, pendulum or cloth")
	integratorName := fs.String("integrator", string(defaults.Integrator), "Integrator: euler, trapezoidal or rk4")
	step := fs.Float64("step", defaults.StepSize, "Fixed integration step in seconds")
	duration := fs.Float64("duration", 2, "Simulated seconds")
	fps := fs.Float64("fps", 30, "Frames per simulated second")
	wind := fs.Bool("wind", false, "Start the cloth with wind on")
	clothSize := fs.Int("cloth-size", defaults.ClothSize, "Cloth particles per side")
	framesPath := fs.String("frames", "", "Write per-frame particle positions to this JSON file")
	renderName := fs.String("render", "", "Render the final state to this image name")
	useS3 := fs.Bool("s3", false, "Upload the render to S3")
	if err := fs.Parse(args); err != nil {
		return err
	}

	integratorType, err := integrator.ParseType(*integratorName)
	if err != nil {
		return err
	}
	if *fps <= 0 || *duration < 0 {
		return fmt.Errorf("fps must be > 0 and duration >= 0")
	}

	node, err := simulation.New(simulation.Config{
		System:     simulation.SystemKind(*system),
		Integrator: integratorType,
		StepSize:   *step,
		Wind:       *wind,
		ClothSize:  *clothSize,
	}, log.Default())
	if err != nil {
		return err
	}

	recorder, err := simulate(ctx, node, *duration, *fps)
	if err != nil {
		return err
	}

	if *framesPath != "" {
		if err := writeFrames(recorder, *framesPath); err != nil {
			return err
		}
		log.Printf("Wrote %d frames to %s", len(recorder.Frames()), *framesPath)
	}

	if *renderName != "" {
		hittable, err := simulationGeometry(node)
		if err != nil {
			return err
		}
		sink, err := newSink(*useS3)
		if err != nil {
			return err
		}
		return renderScene(ctx, scene.NewClothScene(hittable), renderer.DefaultConfig(), sink, *renderName)
	}
	return nil
}

// simulate advances node frame by frame and records the positions after each frame
func simulate(ctx context.Context, node *simulation.Node, duration, fps float64) (*simulation.Recorder, error) {
	recorder := simulation.NewRecorder(1)
	recorder.UpdatePositions(node.Positions())

	frames := int(math.Round(duration * fps))
	frameTime := 1 / fps
	start := time.Now()
	steps := 0
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		steps += node.Update(frameTime)
		recorder.UpdatePositions(node.Positions())
	}
	log.Printf("Simulated %.2fs in %d steps (%d frames, %v)", node.Time(), steps, frames, time.Since(start))
	return recorder, nil
}

func writeFrames(recorder *simulation.Recorder, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create frames directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frames file: %w", err)
	}
	defer f.Close()
	return recorder.WriteJSON(f)
}

// simulationGeometry returns the cloth mesh, or a small sphere per particle for other systems
func simulationGeometry(node *simulation.Node) (geometry.Hittable, error) {
	if surface := node.ClothSurface(); surface != nil {
		return surface.Mesh()
	}
	var spheres []geometry.Hittable
	for _, p := range node.Positions() {
		spheres = append(spheres, geometry.NewSphere(p, 0.075))
	}
	return geometry.NewGroup(spheres...), nil
}

func defaultOutputName(sceneName, kind string) string {
	dir := strings.ReplaceAll(strings.ToLower(sceneName), " ", "-")
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", kind, timestamp))
}
