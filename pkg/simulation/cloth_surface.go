package simulation

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
)

// ClothSurface turns cloth particle positions into a renderable triangle mesh.
// Vertex normals are the area-weighted average of the adjacent face normals.
type ClothSurface struct {
	size      int
	indices   []int
	positions []core.Vec3
	normals   []core.Vec3
}

// NewClothSurface creates the index buffer for a size x size particle grid:
// two triangles per cell, wound so the initial cloth faces up
func NewClothSurface(size int) *ClothSurface {
	s := &ClothSurface{size: size}
	for i := 0; i+1 < size; i++ {
		for j := 0; j+1 < size; j++ {
			p0 := i*size + j
			p1 := (i+1)*size + j
			p2 := i*size + j + 1
			p3 := (i+1)*size + j + 1
			s.indices = append(s.indices, p0, p3, p2, p1, p3, p0)
		}
	}
	return s
}

// UpdatePositions implements PositionSink
func (s *ClothSurface) UpdatePositions(positions []core.Vec3) {
	s.positions = append(s.positions[:0], positions...)
	s.normals = vertexNormals(s.positions, s.indices)
}

// Positions returns the current vertex positions
func (s *ClothSurface) Positions() []core.Vec3 {
	return s.positions
}

// Normals returns the current unit vertex normals
func (s *ClothSurface) Normals() []core.Vec3 {
	return s.normals
}

// Indices returns the triangle index buffer
func (s *ClothSurface) Indices() []int {
	return s.indices
}

// Mesh builds a BVH-accelerated mesh of the current cloth shape
func (s *ClothSurface) Mesh() (*geometry.Mesh, error) {
	return geometry.NewMesh(s.positions, s.normals, s.indices)
}

// vertexNormals accumulates each face's unnormalized cross product, whose length
// is twice the face area, onto its three vertices
func vertexNormals(positions []core.Vec3, indices []int) []core.Vec3 {
	normals := make([]core.Vec3, len(positions))
	if len(positions) == 0 {
		return normals
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			continue
		}
		weighted := positions[b].Subtract(positions[a]).Cross(positions[c].Subtract(positions[a]))
		normals[a] = normals[a].Add(weighted)
		normals[b] = normals[b].Add(weighted)
		normals[c] = normals[c].Add(weighted)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
