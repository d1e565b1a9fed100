package geometry

import (
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// HitRecord holds the closest hit found so far along a single ray
type HitRecord struct {
	Time   float64   // Ray parameter of the closest hit, +Inf when nothing was hit
	Normal core.Vec3 // Surface normal at the hit, in the frame the record is used in
}

// NewHitRecord returns a record that has not recorded any hit yet
func NewHitRecord() HitRecord {
	return HitRecord{Time: math.Inf(1)}
}

// HasHit reports whether the record holds a hit
func (h HitRecord) HasHit() bool {
	return !math.IsInf(h.Time, 1)
}

// Improve returns a record holding the candidate hit when it is closer than the
// current one and not before tMin. Non-finite candidates (parallel rays,
// degenerate solves) never improve a record.
func (h HitRecord) Improve(t, tMin float64, normal core.Vec3) (HitRecord, bool) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return h, false
	}
	if t < tMin || t >= h.Time {
		return h, false
	}
	return HitRecord{Time: t, Normal: normal}, true
}
