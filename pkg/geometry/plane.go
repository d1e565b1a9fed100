package geometry

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// planeExtent bounds the otherwise infinite plane for BVH purposes
const planeExtent = 1e6

// Plane represents the infinite plane of points p with Normal·p = D
type Plane struct {
	Normal core.Vec3 // Plane normal
	D      float64   // Signed offset along the normal
}

// NewPlane creates a new plane from a normal and signed offset
func NewPlane(normal core.Vec3, d float64) *Plane {
	return &Plane{Normal: normal, D: d}
}

// NewPlaneThroughPoint creates the plane with the given normal passing through point
func NewPlaneThroughPoint(point, normal core.Vec3) *Plane {
	return &Plane{Normal: normal, D: normal.Dot(point)}
}

// Intersect tests the ray against the plane
func (p *Plane) Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Parallel ray: no intersection
	if denominator == 0 {
		return record, false
	}

	t := (p.D - p.Normal.Dot(ray.Origin)) / denominator
	return record.Improve(t, tMin, p.Normal.Normalize())
}

// BoundingBox returns a large box around the plane
func (p *Plane) BoundingBox() core.AABB {
	return core.NewAABB(
		core.Splat(-planeExtent),
		core.Splat(planeExtent),
	)
}
