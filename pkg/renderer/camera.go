package renderer

import (
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/scene"
)

// Camera generates primary rays for a pinhole perspective projection
type Camera struct {
	origin  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
	halfW   float64 // Half the viewport width at unit distance
	halfH   float64 // Half the viewport height at unit distance
	tMin    float64
}

// NewCamera builds the camera basis for an image of the given aspect ratio
func NewCamera(spec scene.CameraSpec, aspectRatio float64) *Camera {
	forward := spec.LookAt.Subtract(spec.Position).Normalize()
	right := forward.Cross(spec.Up).Normalize()
	up := right.Cross(forward)

	halfH := math.Tan(spec.FOV * math.Pi / 360)
	return &Camera{
		origin:  spec.Position,
		forward: forward,
		right:   right,
		up:      up,
		halfW:   halfH * aspectRatio,
		halfH:   halfH,
		tMin:    spec.TMin,
	}
}

// GenerateRay returns the ray through a point on the image plane, where
// (-1,-1) is the bottom-left corner and (1,1) the top-right
func (c *Camera) GenerateRay(x, y float64) core.Ray {
	direction := c.forward.
		Add(c.right.Multiply(x * c.halfW)).
		Add(c.up.Multiply(y * c.halfH)).
		Normalize()
	return core.NewRay(c.origin, direction)
}

// GetTMin returns the closest accepted hit distance for rays from this camera
func (c *Camera) GetTMin() float64 {
	return c.tMin
}

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}
