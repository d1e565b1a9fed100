package geometry

import (
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return record, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return record, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one (ray starting inside)
	for _, root := range []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if root < tMin {
			continue
		}
		normal := ray.At(root).Subtract(s.Center).Multiply(1.0 / s.Radius)
		return record.Improve(root, tMin, normal)
	}
	return record, false
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(math.Abs(s.Radius))
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
