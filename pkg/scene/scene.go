package scene

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
)

// CameraSpec describes a pinhole camera
type CameraSpec struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	FOV      float64 // Vertical field of view in degrees
	TMin     float64 // Closest accepted hit along camera and bounce rays
}

// Settings contains rendering configuration fixed at scene construction
type Settings struct {
	Width       int       // Image width
	Height      int       // Image height
	MaxBounces  int       // Mirror reflections traced after the primary hit
	Background  core.Vec3 // Color for rays that hit nothing
	CubeMapDir  string    // Directory with cube-map faces, overrides Background when set
	Shadows     bool      // Trace shadow rays toward point and directional lights
	Supersample int       // Render at this multiple of the resolution and downsample
	Gamma       float64   // Output gamma, 1 leaves colors linear
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name     string
	Root     *Node
	Camera   CameraSpec
	Settings Settings
}

// DefaultCamera looks down -Z from (0,0,10)
func DefaultCamera() CameraSpec {
	return CameraSpec{
		Position: core.NewVec3(0, 0, 10),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      45,
		TMin:     1e-4,
	}
}

// DefaultSettings returns the settings used when a scene leaves them unspecified
func DefaultSettings() Settings {
	return Settings{
		Width:       400,
		Height:      400,
		MaxBounces:  3,
		Background:  core.Vec3{},
		Supersample: 1,
		Gamma:       1,
	}
}

// New creates an empty scene with default camera and settings
func New(name string) *Scene {
	return &Scene{
		Name:     name,
		Root:     NewNode("root"),
		Camera:   DefaultCamera(),
		Settings: DefaultSettings(),
	}
}

// Add attaches a node under the root and returns it
func (s *Scene) Add(node *Node) *Node {
	return s.Root.AddChild(node)
}

// TracingComponents returns every node carrying geometry, depth-first
func (s *Scene) TracingComponents() []*Node {
	var nodes []*Node
	_ = s.Root.Walk(func(n *Node) error {
		if n.Hittable != nil {
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes
}

// LightComponents returns every node carrying a light, depth-first
func (s *Scene) LightComponents() []*Node {
	var nodes []*Node
	_ = s.Root.Walk(func(n *Node) error {
		if n.Light != nil {
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, node := range s.TracingComponents() {
		count += countPrimitives(node.Hittable)
	}
	return count
}

// countPrimitives counts primitives in a single hittable, handling composites
func countPrimitives(h geometry.Hittable) int {
	switch obj := h.(type) {
	case *geometry.Mesh:
		return obj.TriangleCount()
	case *geometry.Group:
		count := 0
		for _, member := range obj.Members {
			count += countPrimitives(member)
		}
		return count
	default:
		return 1
	}
}
