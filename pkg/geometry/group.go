package geometry

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Group is an unaccelerated composite that folds the closest hit over its members in order
type Group struct {
	Members []Hittable
}

// NewGroup creates a group from the given members
func NewGroup(members ...Hittable) *Group {
	return &Group{Members: members}
}

// Intersect returns the closest hit over all members
func (g *Group) Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	hitAnything := false
	for _, member := range g.Members {
		if improved, ok := member.Intersect(ray, tMin, record); ok {
			record = improved
			hitAnything = true
		}
	}
	return record, hitAnything
}

// BoundingBox returns the union of member boxes
func (g *Group) BoundingBox() core.AABB {
	if len(g.Members) == 0 {
		return core.AABB{}
	}
	box := g.Members[0].BoundingBox()
	for _, member := range g.Members[1:] {
		box = box.Union(member.BoundingBox())
	}
	return box
}
