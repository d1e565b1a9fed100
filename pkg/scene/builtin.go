package scene

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/lights"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
)

// NewPointLightPlaneScene creates a white diffuse plane at y=0 lit by a single
// attenuated point light at (0,4,5), seen from straight above
func NewPointLightPlaneScene() *Scene {
	s := New("point-light-plane")
	s.Camera = CameraSpec{
		Position: core.NewVec3(0, 5, 0),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 0, -1),
		FOV:      60,
		TMin:     1e-4,
	}
	s.Settings.Width = 201
	s.Settings.Height = 201
	s.Settings.MaxBounces = 0

	white := material.New(core.Vec3{}, core.Splat(1), core.Vec3{}, 0)
	s.Add(NewShapeNode("floor", geometry.NewPlane(core.NewVec3(0, 1, 0), 0), white))
	s.Add(NewLightNode("point light",
		lights.NewPointLight(core.Splat(0.8), core.NewVec3(1, 0.09, 0.032)),
		core.NewVec3(0, 4, 5)))
	return s
}

// NewMirrorScene creates a floor and a mirror wall with spheres reflected in it
func NewMirrorScene() *Scene {
	s := New("mirror")
	s.Camera = CameraSpec{
		Position: core.NewVec3(0, 1.5, 6),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      50,
		TMin:     1e-4,
	}
	s.Settings.Width = 400
	s.Settings.Height = 300
	s.Settings.MaxBounces = 4
	s.Settings.Background = core.NewVec3(0.1, 0.1, 0.15)
	s.Settings.Shadows = true

	floor := material.New(core.Splat(0.2), core.NewVec3(0.6, 0.6, 0.55), core.Splat(0.05), 4)
	mirror := material.NewMirror(core.Splat(0.85), 64)
	red := material.New(core.NewVec3(0.2, 0.02, 0.02), core.NewVec3(0.8, 0.1, 0.1), core.Splat(0.4), 32)
	blue := material.New(core.NewVec3(0.02, 0.02, 0.2), core.NewVec3(0.1, 0.2, 0.8), core.Splat(0.4), 32)

	s.Add(NewShapeNode("floor", geometry.NewPlane(core.NewVec3(0, 1, 0), 0), floor))
	s.Add(NewShapeNode("mirror", geometry.NewPlane(core.NewVec3(0, 0, 1), -3), mirror))

	spheres := s.Add(NewNode("spheres"))
	spheres.AddChild(NewShapeNode("red sphere", geometry.NewSphere(core.NewVec3(-1, 0.75, 0), 0.75), red))
	small := spheres.AddChild(NewShapeNode("blue sphere", geometry.NewSphere(core.Vec3{}, 1), blue))
	small.Local = core.Translate(core.NewVec3(1.2, 0.5, 1)).Mul(core.Scale(core.Splat(0.5)))

	s.Add(NewLightNode("key light", lights.NewPointLight(core.Splat(1.2), core.NewVec3(1, 0.045, 0.0075)), core.NewVec3(2, 5, 4)))
	s.Add(NewLightNode("fill light", lights.NewDirectionalLight(core.NewVec3(-0.5, -1, -0.3), core.Splat(0.25)), core.Vec3{}))
	s.Add(NewLightNode("ambient", lights.NewAmbientLight(core.Splat(0.3)), core.Vec3{}))
	return s
}

// NewTriangleScene creates a single triangle with per-vertex normals
func NewTriangleScene() *Scene {
	s := New("triangle")
	s.Camera = CameraSpec{
		Position: core.NewVec3(0, 0, 4),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      45,
		TMin:     1e-4,
	}
	s.Settings.Width = 300
	s.Settings.Height = 300
	s.Settings.MaxBounces = 1
	s.Settings.Background = core.NewVec3(0.05, 0.05, 0.05)

	tri := geometry.NewTriangle(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(-0.5, -0.5, 1).Normalize(), core.NewVec3(0.5, -0.5, 1).Normalize(), core.NewVec3(0, 0.5, 1).Normalize(),
	)
	gold := material.New(core.NewVec3(0.2, 0.15, 0.05), core.NewVec3(0.8, 0.6, 0.2), core.Splat(0.6), 20)
	node := s.Add(NewShapeNode("triangle", tri, gold))
	node.Local = core.RotateXYZ(core.NewVec3(0, 20, 0))

	s.Add(NewLightNode("sun", lights.NewDirectionalLight(core.NewVec3(-0.3, -0.4, -1), core.Splat(0.9)), core.Vec3{}))
	s.Add(NewLightNode("ambient", lights.NewAmbientLight(core.Splat(0.2)), core.Vec3{}))
	return s
}

// NewClothScene frames a simulated cloth mesh above a floor
func NewClothScene(cloth geometry.Hittable) *Scene {
	s := New("cloth")
	s.Camera = CameraSpec{
		Position: core.NewVec3(1.5, 0.8, 5),
		LookAt:   core.NewVec3(1.5, -0.6, 0.7),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      40,
		TMin:     1e-4,
	}
	s.Settings.Width = 320
	s.Settings.Height = 240
	s.Settings.MaxBounces = 1
	s.Settings.Background = core.NewVec3(0.3, 0.35, 0.45)

	fabric := material.New(core.NewVec3(0.1, 0.05, 0.05), core.NewVec3(0.7, 0.2, 0.25), core.Splat(0.1), 8)
	floor := material.New(core.Splat(0.1), core.Splat(0.5), core.Splat(0.2), 16)

	s.Add(NewShapeNode("cloth", cloth, fabric))
	s.Add(NewShapeNode("floor", geometry.NewPlane(core.NewVec3(0, 1, 0), -2.5), floor))
	s.Add(NewLightNode("key light", lights.NewPointLight(core.Splat(1), core.NewVec3(1, 0.09, 0.032)), core.NewVec3(1.5, 3, 4)))
	s.Add(NewLightNode("ambient", lights.NewAmbientLight(core.Splat(0.25)), core.Vec3{}))
	return s
}
