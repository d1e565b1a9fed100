package loaders

import (
	"fmt"

	"github.com/fogleman/fauxgl"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
)

// MeshOptions controls post-processing of loaded meshes
type MeshOptions struct {
	SmoothNormals bool // Recompute shared vertex normals
	FitUnitCube   bool // Scale and center the mesh into [-1,1]³
}

// MeshData is the flattened buffer form of a loaded mesh
type MeshData struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	Indices   []int
}

// LoadMeshData reads an OBJ, STL or PLY file (by extension) into buffers.
// Vertices without a normal take the face normal of their triangle.
func LoadMeshData(path string, opts MeshOptions) (*MeshData, error) {
	mesh, err := fauxgl.LoadMesh(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh %s: %w", path, err)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("mesh %s has no triangles", path)
	}
	if opts.FitUnitCube {
		mesh.BiUnitCube()
	}
	if opts.SmoothNormals {
		mesh.SmoothNormals()
	}

	data := &MeshData{
		Positions: make([]core.Vec3, 0, len(mesh.Triangles)*3),
		Normals:   make([]core.Vec3, 0, len(mesh.Triangles)*3),
		Indices:   make([]int, 0, len(mesh.Triangles)*3),
	}
	for _, t := range mesh.Triangles {
		p0, p1, p2 := fromFauxgl(t.V1.Position), fromFauxgl(t.V2.Position), fromFauxgl(t.V3.Position)
		face := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()

		for _, v := range []struct {
			position core.Vec3
			normal   fauxgl.Vector
		}{{p0, t.V1.Normal}, {p1, t.V2.Normal}, {p2, t.V3.Normal}} {
			normal := fromFauxgl(v.normal).Normalize()
			if normal == (core.Vec3{}) {
				normal = face
			}
			data.Indices = append(data.Indices, len(data.Positions))
			data.Positions = append(data.Positions, v.position)
			data.Normals = append(data.Normals, normal)
		}
	}
	return data, nil
}

// LoadMesh reads a mesh file and builds an accelerated geometry.Mesh
func LoadMesh(path string, opts MeshOptions) (*geometry.Mesh, error) {
	data, err := LoadMeshData(path, opts)
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.NewMesh(data.Positions, data.Normals, data.Indices)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", path, err)
	}
	return mesh, nil
}

func fromFauxgl(v fauxgl.Vector) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}
