package geometry

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Hittable is an object that can be tested for ray intersection.
//
// Intersect receives the closest hit found so far and returns the record to use
// from now on: the same record and false when the object does not improve on it,
// or a closer record and true. Implementations never modify shared state, so one
// object may be traced from many goroutines at once.
//
// Implementors in this package: *Plane, *Triangle, *Sphere, *Mesh, *Group and *BVH.
type Hittable interface {
	Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool)
	BoundingBox() core.AABB
}
