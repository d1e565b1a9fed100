package renderer

import (
	"fmt"
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/lights"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
	"github.com/sun-wendy/6.4400-graphics/pkg/scene"
)

// rayOffset moves secondary ray origins off the surface they leave
const rayOffset = 1e-3

// Config contains render-time options that are not part of the scene
type Config struct {
	TileSize   int // Size of each tile (32x32 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// tracedObject is a scene node with geometry, resolved for tracing
type tracedObject struct {
	node     *scene.Node
	hittable geometry.Hittable
	world    core.Transform // Local to world
	inverse  core.Transform // World to local
	material material.Material
}

// tracedLight is a scene light with its world position
type tracedLight struct {
	node     *scene.Node
	light    lights.Light
	position core.Vec3
}

// Tracer renders a scene with recursive Whitted-style ray tracing
type Tracer struct {
	scene    *scene.Scene
	settings scene.Settings
	config   Config
	camera   *Camera
	cubeMap  *CubeMap
	objects  []tracedObject
	lights   []tracedLight
	logger   core.Logger
}

// NewTracer snapshots the scene's tracing and light components. The scene must not
// change while the tracer is in use.
func NewTracer(s *scene.Scene, config Config, logger core.Logger) (*Tracer, error) {
	settings := s.Settings
	if settings.Width <= 0 || settings.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", settings.Width, settings.Height)
	}
	if settings.MaxBounces < 0 {
		return nil, fmt.Errorf("max bounces must be >= 0, got %d", settings.MaxBounces)
	}
	if settings.Supersample <= 0 {
		settings.Supersample = 1
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}

	t := &Tracer{
		scene:    s,
		settings: settings,
		config:   config,
		camera:   NewCamera(s.Camera, float64(settings.Width)/float64(settings.Height)),
		logger:   core.LoggerOrNop(logger),
	}

	if settings.CubeMapDir != "" {
		cubeMap, err := LoadCubeMap(settings.CubeMapDir)
		if err != nil {
			return nil, err
		}
		t.cubeMap = cubeMap
	}

	for _, node := range s.TracingComponents() {
		world := node.WorldTransform()
		t.objects = append(t.objects, tracedObject{
			node:     node,
			hittable: node.Hittable,
			world:    world,
			inverse:  world.Inverse(),
			material: material.Resolve(node.Material),
		})
	}
	for _, node := range s.LightComponents() {
		t.lights = append(t.lights, tracedLight{
			node:     node,
			light:    node.Light,
			position: node.WorldTransform().Position(),
		})
	}

	t.logger.Printf("Tracer ready: %d objects, %d lights, %dx%d, %d bounces\n",
		len(t.objects), len(t.lights), settings.Width, settings.Height, settings.MaxBounces)
	return t, nil
}

// SetCubeMap replaces the environment map used for escaping rays
func (t *Tracer) SetCubeMap(cubeMap *CubeMap) {
	t.cubeMap = cubeMap
}

// Camera returns the camera primary rays are generated from
func (t *Tracer) Camera() *Camera {
	return t.camera
}

// surfaceHit is the closest intersection along a ray, in world space
type surfaceHit struct {
	object   *tracedObject
	time     float64
	position core.Vec3
	normal   core.Vec3
}

// closestHit folds the per-object hits into the nearest one. Each object is
// tested in its local frame; the ray direction is not renormalized there, so hit
// times from different objects are directly comparable.
func (t *Tracer) closestHit(ray core.Ray, tMin float64) (surfaceHit, bool) {
	best := geometry.NewHitRecord()
	var bestObject *tracedObject

	for i := range t.objects {
		obj := &t.objects[i]
		localRay := ray.ApplyTransform(obj.inverse)
		record, ok := obj.hittable.Intersect(localRay, tMin, geometry.NewHitRecord())
		if ok && record.Time < best.Time {
			best = record
			bestObject = obj
		}
	}

	if bestObject == nil {
		return surfaceHit{}, false
	}
	return surfaceHit{
		object:   bestObject,
		time:     best.Time,
		position: ray.At(best.Time),
		normal:   bestObject.world.Normal(best.Normal),
	}, true
}

// TraceRay returns the color seen along ray, following at most bounces mirror
// reflections. It fails only when a light cannot be evaluated.
func (t *Tracer) TraceRay(ray core.Ray, bounces int) (core.Vec3, error) {
	color, _, err := t.trace(ray, bounces)
	return color, err
}

// trace is TraceRay that also reports whether the ray hit anything
func (t *Tracer) trace(ray core.Ray, bounces int) (core.Vec3, bool, error) {
	hit, ok := t.closestHit(ray, t.camera.GetTMin())
	if !ok {
		return t.background(ray.Direction), false, nil
	}

	mat := hit.object.material
	viewDir := ray.Direction.Normalize()
	color := core.Vec3{}

	for _, l := range t.lights {
		if ambient, ok := l.light.(*lights.AmbientLight); ok {
			color = color.Add(mat.Ambient.MultiplyVec(ambient.Color))
			continue
		}

		illumination, err := lights.Illuminate(l.light, l.position, hit.position)
		if err != nil {
			return core.Vec3{}, true, fmt.Errorf("light %q on %q: %w", l.node.Name, hit.object.node.Name, err)
		}
		if t.settings.Shadows && t.occluded(hit.position, illumination) {
			continue
		}

		color = color.Add(diffuseShading(illumination, hit.normal, mat.Diffuse))
		color = color.Add(specularShading(illumination, viewDir, hit.normal, mat))
	}

	if bounces > 0 && mat.IsReflective() {
		reflected := viewDir.Reflect(hit.normal)
		bounce := core.NewRay(hit.position.Add(reflected.Multiply(rayOffset)), reflected)
		indirect, _, err := t.trace(bounce, bounces-1)
		if err != nil {
			return core.Vec3{}, true, err
		}
		color = color.Add(indirect.MultiplyVec(mat.Specular))
	}

	return color, true, nil
}

// diffuseShading is max(0, L·N) · I · kd
func diffuseShading(illumination lights.Illumination, normal, kd core.Vec3) core.Vec3 {
	cosine := max(0, illumination.DirectionToLight.Dot(normal))
	return illumination.Intensity.MultiplyVec(kd).Multiply(cosine)
}

// specularShading is max(0, L·R)^shininess · I · ks, with R the view direction mirrored about N
func specularShading(illumination lights.Illumination, viewDir, normal core.Vec3, mat material.Material) core.Vec3 {
	reflectedView := viewDir.Reflect(normal)
	cosine := max(0, illumination.DirectionToLight.Dot(reflectedView))
	return illumination.Intensity.MultiplyVec(mat.Specular).Multiply(math.Pow(cosine, mat.Shininess))
}

// occluded reports whether any object blocks the path from position to the light
func (t *Tracer) occluded(position core.Vec3, illumination lights.Illumination) bool {
	shadowRay := core.NewRay(position.Add(illumination.DirectionToLight.Multiply(rayOffset)), illumination.DirectionToLight)
	hit, ok := t.closestHit(shadowRay, t.camera.GetTMin())
	return ok && hit.time < illumination.Distance-rayOffset
}

// background returns the cube-map texel along direction, or the flat background color
func (t *Tracer) background(direction core.Vec3) core.Vec3 {
	if t.cubeMap != nil {
		return t.cubeMap.GetTexel(direction)
	}
	return t.settings.Background
}
