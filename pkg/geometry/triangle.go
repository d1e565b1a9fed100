package geometry

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// singularEpsilon bounds |cos| between the ray and the triangle's plane normal.
// The determinant is compared against it scaled by |e1×e2|·|d|, so the test
// does not depend on the triangle's or the ray's units.
const singularEpsilon = 1e-12

// Triangle is defined by three positions with a normal at each vertex
type Triangle struct {
	Positions [3]core.Vec3
	Normals   [3]core.Vec3
	bbox      core.AABB
}

// NewTriangle creates a triangle with per-vertex normals
func NewTriangle(p0, p1, p2, n0, n1, n2 core.Vec3) *Triangle {
	t := &Triangle{
		Positions: [3]core.Vec3{p0, p1, p2},
		Normals:   [3]core.Vec3{n0, n1, n2},
	}
	t.bbox = core.NewAABBFromPoints(p0, p1, p2)
	return t
}

// NewFlatTriangle creates a triangle whose vertices all share the face normal
func NewFlatTriangle(p0, p1, p2 core.Vec3) *Triangle {
	n := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	return NewTriangle(p0, p1, p2, n, n, n)
}

// Intersect solves [(p0-p1) (p0-p2) d]·[beta gamma t] = p0 - o for the
// barycentric coordinates and ray parameter of the hit
func (t *Triangle) Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	p0, p1, p2 := t.Positions[0], t.Positions[1], t.Positions[2]
	e1, e2 := p0.Subtract(p1), p0.Subtract(p2)

	scale := e1.Cross(e2).Length() * ray.Direction.Length()
	if scale == 0 {
		return record, false
	}

	x, ok := core.Solve3x3(e1, e2, ray.Direction, p0.Subtract(ray.Origin), singularEpsilon*scale)
	if !ok {
		return record, false
	}

	beta, gamma, tHit := x.X, x.Y, x.Z
	if beta < 0 || gamma < 0 || beta+gamma > 1 {
		return record, false
	}
	alpha := 1 - beta - gamma

	normal := t.Normals[0].Multiply(alpha).
		Add(t.Normals[1].Multiply(beta)).
		Add(t.Normals[2].Multiply(gamma)).
		Normalize()

	return record.Improve(tHit, tMin, normal)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
