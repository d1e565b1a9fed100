package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/lights"
	"github.com/sun-wendy/6.4400-graphics/pkg/loaders"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
)

// Vec is a JSON-friendly 3-vector
type Vec [3]float64

func (v Vec) toCore() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type CameraCfg struct {
	Position Vec     `json:"position"`
	LookAt   Vec     `json:"lookAt"`
	Up       Vec     `json:"up,omitempty"`
	FOV      float64 `json:"fov,omitempty"`
	TMin     float64 `json:"tMin,omitempty"`
}

type MaterialCfg struct {
	Ambient   Vec     `json:"ambient"`
	Diffuse   Vec     `json:"diffuse"`
	Specular  Vec     `json:"specular"`
	Shininess float64 `json:"shininess"`
}

type LightCfg struct {
	Type        lights.LightType `json:"type"`
	Color       Vec              `json:"color"`
	Attenuation Vec              `json:"attenuation,omitempty"` // Point lights
	Direction   Vec              `json:"direction,omitempty"`   // Directional lights
}

type ShapeCfg struct {
	Type string `json:"type"` // plane, sphere, triangle, mesh

	Normal Vec     `json:"normal,omitempty"` // Plane normal
	Offset float64 `json:"offset,omitempty"` // Plane offset along the normal

	Center Vec     `json:"center,omitempty"` // Sphere
	Radius float64 `json:"radius,omitempty"`

	Vertices []Vec `json:"vertices,omitempty"` // Triangle positions
	Normals  []Vec `json:"normals,omitempty"`  // Triangle per-vertex normals (optional)

	Path   string `json:"path,omitempty"`   // Mesh file, relative to the config file
	Smooth bool   `json:"smooth,omitempty"` // Recompute smooth mesh normals
	Fit    bool   `json:"fit,omitempty"`    // Fit the mesh into [-1,1]³
}

// NodeCfg describes a node, its transform (rotation in degrees) and children
type NodeCfg struct {
	Name     string       `json:"name"`
	Position Vec          `json:"position,omitempty"`
	Rotation Vec          `json:"rotation,omitempty"`
	Scale    *Vec         `json:"scale,omitempty"` // defaults to 1 on each axis
	Shape    *ShapeCfg    `json:"shape,omitempty"`
	Material *MaterialCfg `json:"material,omitempty"`
	Light    *LightCfg    `json:"light,omitempty"`
	Children []NodeCfg    `json:"children,omitempty"`
}

// Config is the JSON scene file format
type Config struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Group       string    `json:"group,omitempty"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	MaxBounces  *int      `json:"maxBounces,omitempty"`
	Background  Vec       `json:"background"`
	CubeMap     string    `json:"cubeMap,omitempty"`
	Shadows     bool      `json:"shadows,omitempty"`
	Supersample int       `json:"supersample,omitempty"`
	Gamma       float64   `json:"gamma,omitempty"`
	Camera      CameraCfg `json:"camera"`
	Nodes       []NodeCfg `json:"nodes"`

	baseDir string // Directory relative paths are resolved against
}

// LoadConfig reads a JSON scene file
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig decodes a JSON scene, applies defaults and validates it
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	// Defaults / validation
	defaults := DefaultSettings()
	if cfg.Width <= 0 {
		cfg.Width = defaults.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = defaults.Height
	}
	if cfg.MaxBounces == nil {
		bounces := defaults.MaxBounces
		cfg.MaxBounces = &bounces
	} else if *cfg.MaxBounces < 0 {
		return nil, fmt.Errorf("maxBounces must be >= 0, got %d", *cfg.MaxBounces)
	}
	if cfg.Supersample <= 0 {
		cfg.Supersample = defaults.Supersample
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = defaults.Gamma
	}
	if cfg.Camera.Up == (Vec{}) {
		cfg.Camera.Up = Vec{0, 1, 0}
	}
	if cfg.Camera.FOV <= 0 {
		cfg.Camera.FOV = DefaultCamera().FOV
	}
	if cfg.Camera.TMin <= 0 {
		cfg.Camera.TMin = DefaultCamera().TMin
	}
	if cfg.Camera.Position == cfg.Camera.LookAt {
		return nil, fmt.Errorf("camera position and lookAt must differ")
	}
	if len(cfg.Nodes) == 0 {
		return nil, fmt.Errorf("config has no nodes")
	}
	return &cfg, nil
}

// Build constructs the scene described by the config, loading referenced meshes
func (c *Config) Build() (*Scene, error) {
	s := New(c.Name)
	s.Camera = CameraSpec{
		Position: c.Camera.Position.toCore(),
		LookAt:   c.Camera.LookAt.toCore(),
		Up:       c.Camera.Up.toCore(),
		FOV:      c.Camera.FOV,
		TMin:     c.Camera.TMin,
	}
	s.Settings = Settings{
		Width:       c.Width,
		Height:      c.Height,
		MaxBounces:  *c.MaxBounces,
		Background:  c.Background.toCore(),
		CubeMapDir:  c.resolvePath(c.CubeMap),
		Shadows:     c.Shadows,
		Supersample: c.Supersample,
		Gamma:       c.Gamma,
	}

	for _, nodeCfg := range c.Nodes {
		node, err := c.buildNode(nodeCfg)
		if err != nil {
			return nil, err
		}
		s.Add(node)
	}
	return s, nil
}

func (c *Config) buildNode(nc NodeCfg) (*Node, error) {
	scale := Vec{1, 1, 1}
	if nc.Scale != nil {
		scale = *nc.Scale
	}
	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return nil, fmt.Errorf("node %q: scale must be non-zero on all axes, got %v", nc.Name, scale)
	}

	node := NewNode(nc.Name)
	node.Local = core.TRS(nc.Position.toCore(), nc.Rotation.toCore(), scale.toCore())

	if nc.Shape != nil {
		hittable, err := c.buildShape(*nc.Shape)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nc.Name, err)
		}
		node.Hittable = hittable
	}
	if nc.Material != nil {
		node.Material = material.New(
			nc.Material.Ambient.toCore(),
			nc.Material.Diffuse.toCore(),
			nc.Material.Specular.toCore(),
			nc.Material.Shininess,
		)
	}
	if nc.Light != nil {
		light, err := nc.Light.Build()
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nc.Name, err)
		}
		node.Light = light
	}

	for _, childCfg := range nc.Children {
		child, err := c.buildNode(childCfg)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func (c *Config) buildShape(sc ShapeCfg) (geometry.Hittable, error) {
	switch sc.Type {
	case "plane":
		if sc.Normal == (Vec{}) {
			return nil, fmt.Errorf("plane needs a non-zero normal")
		}
		return geometry.NewPlane(sc.Normal.toCore(), sc.Offset), nil

	case "sphere":
		if sc.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be > 0, got %f", sc.Radius)
		}
		return geometry.NewSphere(sc.Center.toCore(), sc.Radius), nil

	case "triangle":
		if len(sc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(sc.Vertices))
		}
		p0, p1, p2 := sc.Vertices[0].toCore(), sc.Vertices[1].toCore(), sc.Vertices[2].toCore()
		switch len(sc.Normals) {
		case 0:
			return geometry.NewFlatTriangle(p0, p1, p2), nil
		case 3:
			return geometry.NewTriangle(p0, p1, p2,
				sc.Normals[0].toCore(), sc.Normals[1].toCore(), sc.Normals[2].toCore()), nil
		default:
			return nil, fmt.Errorf("triangle needs 0 or 3 normals, got %d", len(sc.Normals))
		}

	case "mesh":
		if sc.Path == "" {
			return nil, fmt.Errorf("mesh needs a path")
		}
		return loaders.LoadMesh(c.resolvePath(sc.Path), loaders.MeshOptions{
			SmoothNormals: sc.Smooth,
			FitUnitCube:   sc.Fit,
		})

	default:
		return nil, fmt.Errorf("unknown shape type %q", sc.Type)
	}
}

// Build constructs the light described by the config
func (lc LightCfg) Build() (lights.Light, error) {
	switch lc.Type {
	case lights.LightTypeAmbient:
		return lights.NewAmbientLight(lc.Color.toCore()), nil
	case lights.LightTypePoint:
		return lights.NewPointLight(lc.Color.toCore(), lc.Attenuation.toCore()), nil
	case lights.LightTypeDirectional:
		if lc.Direction == (Vec{}) {
			return nil, fmt.Errorf("directional light needs a non-zero direction")
		}
		return lights.NewDirectionalLight(lc.Direction.toCore(), lc.Color.toCore()), nil
	default:
		return nil, fmt.Errorf("light type %q: %w", lc.Type, lights.ErrUnsupportedLightType)
	}
}

func (c *Config) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}
