package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/lights"
	"github.com/sun-wendy/6.4400-graphics/pkg/loaders"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
	"github.com/sun-wendy/6.4400-graphics/pkg/scene"
)

const tolerance = 1e-9

// areaLight is a light kind the illuminator does not know how to evaluate
type areaLight struct {
	lights.Light
}

func (areaLight) Type() lights.LightType { return "area" }

func newTestTracer(t *testing.T, s *scene.Scene) *Tracer {
	t.Helper()
	tracer, err := NewTracer(s, Config{TileSize: 16, NumWorkers: 2}, nil)
	if err != nil {
		t.Fatalf("NewTracer: %v", err)
	}
	return tracer
}

func downRay() core.Ray {
	return core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
}

func expectedPlaneColor() float64 {
	d := math.Sqrt(41)
	return (4 / d) * 0.8 / (1 + 0.09*d + 0.032*41)
}

func TestTracer_PointLightOnPlane(t *testing.T) {
	tracer := newTestTracer(t, scene.NewPointLightPlaneScene())

	color, err := tracer.TraceRay(downRay(), 0)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}

	want := expectedPlaneColor()
	for i, c := range []float64{color.X, color.Y, color.Z} {
		if math.Abs(c-want) > tolerance {
			t.Errorf("channel %d: expected %.10f, got %.10f", i, want, c)
		}
	}
}

func TestTracer_RenderCenterPixel(t *testing.T) {
	tracer := newTestTracer(t, scene.NewPointLightPlaneScene())

	img, stats, err := tracer.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Width != 201 || img.Height != 201 {
		t.Fatalf("Expected 201x201, got %dx%d", img.Width, img.Height)
	}
	if stats.TotalPixels != 201*201 {
		t.Errorf("Expected every pixel rendered once, got %d", stats.TotalPixels)
	}

	center := img.GetPixel(100, 100)
	if math.Abs(center.X-expectedPlaneColor()) > 1e-9 {
		t.Errorf("Expected center %.10f, got %v", expectedPlaneColor(), center)
	}
}

func TestTracer_UnsupportedLightAbortsRender(t *testing.T) {
	s := scene.NewPointLightPlaneScene()
	s.Settings.Width, s.Settings.Height = 20, 20
	s.Add(scene.NewLightNode("area", areaLight{}, core.NewVec3(0, 3, 0)))
	tracer := newTestTracer(t, s)

	if _, err := tracer.TraceRay(downRay(), 0); !errors.Is(err, lights.ErrUnsupportedLightType) {
		t.Errorf("TraceRay: expected ErrUnsupportedLightType, got %v", err)
	}
	img, _, err := tracer.Render(context.Background())
	if !errors.Is(err, lights.ErrUnsupportedLightType) {
		t.Errorf("Render: expected ErrUnsupportedLightType, got %v", err)
	}
	if img != nil {
		t.Error("Aborted render should not return an image")
	}
}

func TestTracer_RenderCancelled(t *testing.T) {
	tracer := newTestTracer(t, scene.NewPointLightPlaneScene())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := tracer.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestTracer_MissReturnsBackground(t *testing.T) {
	s := scene.New("empty")
	s.Settings.Background = core.NewVec3(0.1, 0.2, 0.3)
	tracer := newTestTracer(t, s)

	color, err := tracer.TraceRay(downRay(), 3)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}
	if color != s.Settings.Background {
		t.Errorf("Expected background %v, got %v", s.Settings.Background, color)
	}
}

func TestTracer_MirrorBounce(t *testing.T) {
	s := scene.New("mirror")
	s.Settings.Background = core.NewVec3(0.2, 0.4, 0.6)
	s.Add(scene.NewShapeNode("mirror", geometry.NewPlane(core.NewVec3(0, 1, 0), 0), material.NewMirror(core.Splat(0.5), 0)))
	tracer := newTestTracer(t, s)

	tests := []struct {
		name    string
		bounces int
		want    core.Vec3
	}{
		{"no bounces", 0, core.Vec3{}},
		{"one bounce sees sky", 1, core.NewVec3(0.1, 0.2, 0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color, err := tracer.TraceRay(downRay(), tt.bounces)
			if err != nil {
				t.Fatalf("TraceRay: %v", err)
			}
			if color.Subtract(tt.want).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.want, color)
			}
		})
	}
}

func TestTracer_Shadows(t *testing.T) {
	build := func(shadows bool) *Tracer {
		s := scene.New("shadow")
		s.Settings.Shadows = shadows
		white := material.New(core.Vec3{}, core.Splat(1), core.Vec3{}, 0)
		s.Add(scene.NewShapeNode("floor", geometry.NewPlane(core.NewVec3(0, 1, 0), 0), white))
		s.Add(scene.NewShapeNode("blocker", geometry.NewSphere(core.NewVec3(0, 2, 0), 0.5), white))
		s.Add(scene.NewLightNode("lamp", lights.NewPointLight(core.Splat(1), core.NewVec3(1, 0, 0)), core.NewVec3(0, 4, 0)))
		return newTestTracer(t, s)
	}

	// Look at the floor from the side so the blocker is not in the way of the camera ray
	ray := core.NewRay(core.NewVec3(3, 3, 0), core.NewVec3(-1, -1, 0))

	lit, err := build(false).TraceRay(ray, 0)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}
	if math.Abs(lit.X-1) > tolerance {
		t.Errorf("Without shadows expected full intensity 1, got %v", lit)
	}

	shadowed, err := build(true).TraceRay(ray, 0)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}
	if shadowed != (core.Vec3{}) {
		t.Errorf("Expected the blocker to shadow the floor, got %v", shadowed)
	}
}

func TestTracer_MissingMaterialUsesDefault(t *testing.T) {
	s := scene.New("default material")
	s.Add(scene.NewShapeNode("floor", geometry.NewPlane(core.NewVec3(0, 1, 0), 0), nil))
	s.Add(scene.NewLightNode("ambient", lights.NewAmbientLight(core.Splat(0.3)), core.Vec3{}))
	tracer := newTestTracer(t, s)

	color, err := tracer.TraceRay(downRay(), 0)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}
	want := material.Default().Ambient.Multiply(0.3)
	if color.Subtract(want).Length() > tolerance {
		t.Errorf("Expected %v, got %v", want, color)
	}
}

func TestTracer_LightOnSurfaceStaysFinite(t *testing.T) {
	s := scene.New("light on floor")
	s.Add(scene.NewShapeNode("floor", geometry.NewPlane(core.NewVec3(0, 1, 0), 0), nil))
	s.Add(scene.NewLightNode("bulb", lights.NewPointLight(core.Splat(1), core.Vec3{}), core.Vec3{}))
	tracer := newTestTracer(t, s)

	color, err := tracer.TraceRay(downRay(), 0)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}
	if !color.IsFinite() {
		t.Fatalf("Expected a finite color, got %v", color)
	}
	if color != (core.Vec3{}) {
		t.Errorf("Expected no contribution from a light on the surface, got %v", color)
	}
}

func TestTracer_ClosestHitAcrossTransforms(t *testing.T) {
	s := scene.New("transforms")

	// Unit sphere scaled by 2: surface at z=2
	big := s.Add(scene.NewShapeNode("big", geometry.NewSphere(core.Vec3{}, 1), nil))
	big.Local = core.Scale(core.Splat(2))

	// Plane z=0 moved to z=1, hidden behind the sphere's front
	wall := s.Add(scene.NewShapeNode("wall", geometry.NewPlane(core.NewVec3(0, 0, 1), 0), nil))
	wall.Local = core.Translate(core.NewVec3(0, 0, 1))

	tracer := newTestTracer(t, s)
	hit, ok := tracer.closestHit(core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1)), 1e-4)
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.object.node.Name != "big" {
		t.Errorf("Expected the sphere to be closest, got %q", hit.object.node.Name)
	}
	if math.Abs(hit.time-8) > tolerance {
		t.Errorf("Expected world t=8, got %f", hit.time)
	}
	if hit.position.Subtract(core.NewVec3(0, 0, 2)).Length() > tolerance {
		t.Errorf("Expected hit at (0,0,2), got %v", hit.position)
	}
}

func TestTracer_NormalUnderNonuniformScale(t *testing.T) {
	s := scene.New("skewed")
	node := s.Add(scene.NewShapeNode("slope", geometry.NewPlane(core.NewVec3(1, 1, 0), 0), nil))
	node.Local = core.Scale(core.NewVec3(2, 1, 1))
	tracer := newTestTracer(t, s)

	hit, ok := tracer.closestHit(downRay(), 1e-4)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.time-5) > tolerance {
		t.Errorf("Expected t=5, got %f", hit.time)
	}
	want := core.NewVec3(0.5, 1, 0).Normalize()
	if hit.normal.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", want, hit.normal)
	}
}

func TestTracer_Inspect(t *testing.T) {
	tracer := newTestTracer(t, scene.NewPointLightPlaneScene())

	result, err := tracer.Inspect(100, 100)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !result.Hit || result.NodeName != "floor" || result.Shape != "plane" {
		t.Errorf("Unexpected inspect result %+v", result)
	}
	if math.Abs(result.Time-5) > 1e-9 {
		t.Errorf("Expected t=5, got %f", result.Time)
	}

	if _, err := tracer.Inspect(-1, 0); err == nil {
		t.Error("Expected error for pixel outside the image")
	}
}

func TestTracer_CubeMapBackground(t *testing.T) {
	colors := [6]core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 1), core.NewVec3(1, 0, 1),
	}
	var faces [6]*loaders.ImageData
	for i, c := range colors {
		faces[i] = &loaders.ImageData{Width: 1, Height: 1, Pixels: []core.Vec3{c}}
	}
	cubeMap, err := NewCubeMap(faces)
	if err != nil {
		t.Fatalf("NewCubeMap: %v", err)
	}

	directions := [6]core.Vec3{
		core.NewVec3(1, 0.1, 0), core.NewVec3(-1, 0.1, 0), core.NewVec3(0.1, 1, 0),
		core.NewVec3(0.1, -1, 0), core.NewVec3(0, 0.1, 1), core.NewVec3(0, 0.1, -1),
	}
	for face, dir := range directions {
		if got := cubeMap.GetTexel(dir); got != colors[face] {
			t.Errorf("face %s: expected %v, got %v", faceNames[face], colors[face], got)
		}
	}

	tracer := newTestTracer(t, scene.New("sky"))
	tracer.SetCubeMap(cubeMap)
	color, err := tracer.TraceRay(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 0)
	if err != nil {
		t.Fatalf("TraceRay: %v", err)
	}
	if color != colors[FaceTop] {
		t.Errorf("Expected top face %v, got %v", colors[FaceTop], color)
	}
}

func TestNewTracer_Validation(t *testing.T) {
	s := scene.New("bad")
	s.Settings.Width = 0
	if _, err := NewTracer(s, DefaultConfig(), nil); err == nil {
		t.Error("Expected error for zero width")
	}

	s = scene.New("bad cube map")
	s.Settings.CubeMapDir = t.TempDir()
	if _, err := NewTracer(s, DefaultConfig(), nil); err == nil {
		t.Error("Expected error for missing cube-map faces")
	}
}

func TestTracer_Supersample(t *testing.T) {
	s := scene.NewPointLightPlaneScene()
	s.Settings.Width, s.Settings.Height = 21, 21
	s.Settings.Supersample = 2
	tracer := newTestTracer(t, s)

	img, stats, err := tracer.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Width != 21 || img.Height != 21 {
		t.Errorf("Expected output at scene resolution, got %dx%d", img.Width, img.Height)
	}
	if stats.TotalPixels != 42*42 {
		t.Errorf("Expected %d traced pixels, got %d", 42*42, stats.TotalPixels)
	}
}
