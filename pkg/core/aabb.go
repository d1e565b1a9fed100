package core

// AABB is an axis-aligned bounding box. Unbounded shapes such as planes use
// infinite corners.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a box from its corners
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the smallest box containing every point
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Union(AABB{Min: p, Max: p})
	}
	return box
}

// Hit reports whether the ray overlaps the box anywhere in [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := aabb.Min.Component(axis), aabb.Max.Component(axis)
		origin, direction := ray.Origin.Component(axis), ray.Direction.Component(axis)

		if direction == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		t1 := (lo - origin) / direction
		t2 := (hi - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns the box enclosing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{min(aabb.Min.X, other.Min.X), min(aabb.Min.Y, other.Min.Y), min(aabb.Min.Z, other.Min.Z)},
		Max: Vec3{max(aabb.Max.X, other.Max.X), max(aabb.Max.Y, other.Max.Y), max(aabb.Max.Z, other.Max.Z)},
	}
}

// Center returns the midpoint of the box
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	switch {
	case size.X > size.Y && size.X > size.Z:
		return 0
	case size.Y > size.Z:
		return 1
	default:
		return 2
	}
}

// Transform returns the box bounding all eight corners mapped through t
func (aabb AABB) Transform(t Transform) AABB {
	corners := make([]Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		corner := aabb.Min
		if i&1 != 0 {
			corner.X = aabb.Max.X
		}
		if i&2 != 0 {
			corner.Y = aabb.Max.Y
		}
		if i&4 != 0 {
			corner.Z = aabb.Max.Z
		}
		corners = append(corners, t.Point(corner))
	}
	return NewAABBFromPoints(corners...)
}
