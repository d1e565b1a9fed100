package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
)

const quadOBJ = `# unit quad in the z=0 plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`

func writeOBJ(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write OBJ: %v", err)
	}
	return path
}

func TestLoadMeshData(t *testing.T) {
	data, err := LoadMeshData(writeOBJ(t, quadOBJ), MeshOptions{})
	if err != nil {
		t.Fatalf("LoadMeshData failed: %v", err)
	}

	if len(data.Indices) != 6 || len(data.Positions) != 6 || len(data.Normals) != 6 {
		t.Fatalf("Expected 6 indices/positions/normals, got %d/%d/%d",
			len(data.Indices), len(data.Positions), len(data.Normals))
	}
	for i, n := range data.Normals {
		if n.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
			t.Errorf("normal %d: expected face normal (0,0,1), got %v", i, n)
		}
	}
}

func TestLoadMesh_Intersect(t *testing.T) {
	mesh, err := LoadMesh(writeOBJ(t, quadOBJ), MeshOptions{})
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	ray := core.NewRay(core.NewVec3(0.25, 0.75, 2), core.NewVec3(0, 0, -1))
	hit, ok := mesh.Intersect(ray, 1e-4, geometry.NewHitRecord())
	if !ok {
		t.Fatal("Expected hit on loaded quad")
	}
	if math.Abs(hit.Time-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.Time)
	}
}

func TestLoadMesh_NotFound(t *testing.T) {
	if _, err := LoadMesh(filepath.Join(t.TempDir(), "missing.obj"), MeshOptions{}); err == nil {
		t.Error("Expected error for missing mesh file")
	}
}
