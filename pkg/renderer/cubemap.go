package renderer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/loaders"
)

// Cube-map face order
const (
	FaceRight = iota // +X
	FaceLeft         // -X
	FaceTop          // +Y
	FaceBottom       // -Y
	FaceFront        // +Z
	FaceBack         // -Z
)

var faceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

// CubeMap is an environment map sampled by direction for rays that escape the scene
type CubeMap struct {
	faces [6]*loaders.ImageData
}

// NewCubeMap creates a cube map from six faces in Face* order
func NewCubeMap(faces [6]*loaders.ImageData) (*CubeMap, error) {
	for i, face := range faces {
		if face == nil || face.Width == 0 || face.Height == 0 {
			return nil, fmt.Errorf("cube map face %s is empty", faceNames[i])
		}
	}
	return &CubeMap{faces: faces}, nil
}

// LoadCubeMap loads right, left, top, bottom, front and back images (png or jpg) from dir
func LoadCubeMap(dir string) (*CubeMap, error) {
	var faces [6]*loaders.ImageData
	for i, name := range faceNames {
		path, err := findFace(dir, name)
		if err != nil {
			return nil, err
		}
		face, err := loaders.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("cube map face %s: %w", name, err)
		}
		faces[i] = face
	}
	return NewCubeMap(faces)
}

func findFace(dir, name string) (string, error) {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("cube map face %s not found in %s", name, dir)
}

// GetTexel returns the color seen along direction
func (c *CubeMap) GetTexel(direction core.Vec3) core.Vec3 {
	x, y, z := direction.X, direction.Y, direction.Z
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)

	var face int
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az && x > 0:
		face, sc, tc, ma = FaceRight, -z, -y, ax
	case ax >= ay && ax >= az:
		face, sc, tc, ma = FaceLeft, z, -y, ax
	case ay >= az && y > 0:
		face, sc, tc, ma = FaceTop, x, z, ay
	case ay >= az:
		face, sc, tc, ma = FaceBottom, x, -z, ay
	case z > 0:
		face, sc, tc, ma = FaceFront, x, -y, az
	default:
		face, sc, tc, ma = FaceBack, -x, -y, az
	}
	if ma == 0 {
		return core.Vec3{}
	}

	// Map [-1,1] face coordinates to pixels; t grows downward like image rows
	u := 0.5 * (sc/ma + 1)
	v := 0.5 * (tc/ma + 1)
	img := c.faces[face]
	px := int(u * float64(img.Width-1))
	py := int(v * float64(img.Height-1))
	return img.At(px, py)
}
