package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine 4x4 transform in column-major order
type Transform struct {
	M mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{M: mgl64.Ident4()}
}

// Translate returns a translation by offset
func Translate(offset Vec3) Transform {
	return Transform{M: mgl64.Translate3D(offset.X, offset.Y, offset.Z)}
}

// Scale returns a (possibly nonuniform) scale
func Scale(factors Vec3) Transform {
	return Transform{M: mgl64.Scale3D(factors.X, factors.Y, factors.Z)}
}

// RotateXYZ returns a rotation applied about X, then Y, then Z (angles in degrees)
func RotateXYZ(degrees Vec3) Transform {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(degrees.X))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(degrees.Y))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(degrees.Z))
	return Transform{M: rz.Mul4(ry).Mul4(rx)}
}

// TRS composes translation * rotation * scale, the usual node local transform
func TRS(position, rotationDegrees, scale Vec3) Transform {
	return Translate(position).Mul(RotateXYZ(rotationDegrees)).Mul(Scale(scale))
}

// Mul returns t * other (other is applied first)
func (t Transform) Mul(other Transform) Transform {
	return Transform{M: t.M.Mul4(other.M)}
}

// Inverse returns the inverse transform. A singular matrix yields the zero matrix.
func (t Transform) Inverse() Transform {
	return Transform{M: t.M.Inv()}
}

// Point transforms p as a position (w = 1)
func (t Transform) Point(p Vec3) Vec3 {
	return fromMgl(t.M.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}).Vec3())
}

// Vector transforms v as a direction (w = 0)
func (t Transform) Vector(v Vec3) Vec3 {
	return fromMgl(t.M.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}).Vec3())
}

// Normal transforms a surface normal with the inverse-transpose of the linear part
// and renormalizes it, which keeps normals perpendicular under nonuniform scale.
func (t Transform) Normal(n Vec3) Vec3 {
	normalMatrix := t.M.Mat3().Inv().Transpose()
	return fromMgl(normalMatrix.Mul3x1(toMgl(n))).Normalize()
}

// Position returns the translation column, i.e. the frame origin in the parent frame
func (t Transform) Position() Vec3 {
	return fromMgl(t.M.Col(3).Vec3())
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Solve3x3 solves [c0 c1 c2]·x = b by Cramer's rule. It reports false when
// |det| is at most epsilon, which callers treat as a degenerate case.
func Solve3x3(c0, c1, c2, b Vec3, epsilon float64) (Vec3, bool) {
	c1xc2 := c1.Cross(c2)
	det := c0.Dot(c1xc2)
	if math.Abs(det) <= epsilon {
		return Vec3{}, false
	}
	x := Vec3{
		X: b.Dot(c1xc2) / det,
		Y: c0.Dot(b.Cross(c2)) / det,
		Z: c0.Dot(c1.Cross(b)) / det,
	}
	if !x.IsFinite() {
		return Vec3{}, false
	}
	return x, true
}
