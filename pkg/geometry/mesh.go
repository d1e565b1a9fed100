package geometry

import (
	"fmt"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Mesh is a composite of triangles built from index/position/normal buffers.
// It uses an internal BVH for fast intersection tests.
type Mesh struct {
	triangles []Hittable
	bvh       *BVH
}

// NewMesh creates a mesh. indices holds three entries per triangle. normals may
// be nil (each triangle then uses its face normal) or have one entry per position.
func NewMesh(positions, normals []core.Vec3, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("got %d normals for %d positions", len(normals), len(positions))
	}

	triangles := make([]Hittable, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("index %d out of range for %d positions", idx, len(positions))
			}
		}

		if normals == nil {
			triangles = append(triangles, NewFlatTriangle(positions[i0], positions[i1], positions[i2]))
			continue
		}
		triangles = append(triangles, NewTriangle(
			positions[i0], positions[i1], positions[i2],
			normals[i0], normals[i1], normals[i2],
		))
	}

	return &Mesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// NewMeshFromTriangles wraps already built triangles
func NewMeshFromTriangles(triangles []*Triangle) *Mesh {
	shapes := make([]Hittable, len(triangles))
	for i, t := range triangles {
		shapes[i] = t
	}
	return &Mesh{triangles: shapes, bvh: NewBVH(shapes)}
}

// Intersect tests if a ray intersects with any triangle in the mesh
func (m *Mesh) Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	return m.bvh.Intersect(ray, tMin, record)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (m *Mesh) BoundingBox() core.AABB {
	return m.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}
