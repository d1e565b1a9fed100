package geometry

import (
	"math"
	"testing"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

const tolerance = 1e-9

func vecClose(a, b core.Vec3, eps float64) bool {
	return a.Subtract(b).Length() <= eps
}

func TestPlane_Intersect_StraightDown(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	hit, ok := plane.Intersect(ray, 1e-4, NewHitRecord())
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Time-5) > tolerance {
		t.Errorf("Expected t=5, got t=%f", hit.Time)
	}
	if !vecClose(hit.Normal, core.NewVec3(0, 1, 0), tolerance) {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}
}

func TestPlane_Intersect(t *testing.T) {
	tests := []struct {
		name     string
		plane    *Plane
		ray      core.Ray
		wantHit  bool
		wantTime float64
	}{
		{
			name:    "parallel ray",
			plane:   NewPlane(core.NewVec3(0, 1, 0), 0),
			ray:     core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "ray inside plane",
			plane:   NewPlane(core.NewVec3(0, 1, 0), 0),
			ray:     core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "plane behind origin",
			plane:   NewPlane(core.NewVec3(0, 1, 0), 0),
			ray:     core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)),
			wantHit: false,
		},
		{
			name:     "offset plane",
			plane:    NewPlane(core.NewVec3(0, 1, 0), 2),
			ray:      core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)),
			wantHit:  true,
			wantTime: 3,
		},
		{
			name:     "unnormalized direction keeps parameterization",
			plane:    NewPlane(core.NewVec3(0, 1, 0), 0),
			ray:      core.NewRay(core.NewVec3(0, 4, 0), core.NewVec3(0, -2, 0)),
			wantHit:  true,
			wantTime: 2,
		},
		{
			name:     "through point",
			plane:    NewPlaneThroughPoint(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)),
			ray:      core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(0, 0, -1)),
			wantHit:  true,
			wantTime: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.plane.Intersect(tt.ray, 1e-4, NewHitRecord())
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v (t=%f)", tt.wantHit, ok, hit.Time)
			}
			if ok && math.Abs(hit.Time-tt.wantTime) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.wantTime, hit.Time)
			}
		})
	}
}

func TestPlane_Intersect_KeepsCloserRecord(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 0)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	closer := HitRecord{Time: 1, Normal: core.NewVec3(1, 0, 0)}

	hit, ok := plane.Intersect(ray, 1e-4, closer)
	if ok {
		t.Error("Farther plane hit should not improve the record")
	}
	if hit != closer {
		t.Errorf("Record changed: %+v", hit)
	}
}

func TestPlane_NormalIsNormalized(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 3, 0), 0)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	hit, ok := plane.Intersect(ray, 1e-4, NewHitRecord())
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Normal.Length()-1) > tolerance {
		t.Errorf("Expected unit normal, got %v", hit.Normal)
	}
}
