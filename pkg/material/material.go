package material

import (
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// DefaultShininess is the Phong exponent used when a surface has no material
const DefaultShininess = 0.0

// Material holds the Phong reflectance coefficients of a surface
type Material struct {
	Ambient   core.Vec3 // Response to ambient lights
	Diffuse   core.Vec3 // Lambertian response to point and directional lights
	Specular  core.Vec3 // Phong highlight response, also the mirror reflectance
	Shininess float64   // Phong exponent
}

// New creates a material
func New(ambient, diffuse, specular core.Vec3, shininess float64) *Material {
	return &Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewDiffuse creates a matte material whose ambient response matches its diffuse color
func NewDiffuse(color core.Vec3) *Material {
	return New(color, color, core.Vec3{}, DefaultShininess)
}

// NewMirror creates a material that reflects with the given specular color
func NewMirror(specular core.Vec3, shininess float64) *Material {
	return New(core.Vec3{}, core.Vec3{}, specular, shininess)
}

// Default returns the material substituted for surfaces without a usable one:
// a white matte surface with no highlight and no reflection
func Default() Material {
	return Material{
		Ambient:   core.Splat(1),
		Diffuse:   core.Splat(1),
		Specular:  core.Vec3{},
		Shininess: DefaultShininess,
	}
}

// Validate reports whether every coefficient is finite and non-negative
func (m Material) Validate() bool {
	for _, c := range []core.Vec3{m.Ambient, m.Diffuse, m.Specular} {
		if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
			return false
		}
	}
	return m.Shininess >= 0 && !math.IsInf(m.Shininess, 1)
}

// IsReflective reports whether the surface contributes a mirror bounce
func (m Material) IsReflective() bool {
	return m.Specular.X > 0 || m.Specular.Y > 0 || m.Specular.Z > 0
}

// Resolve returns the material to shade with: m itself when it is usable,
// otherwise Default()
func Resolve(m *Material) Material {
	if m == nil || !m.Validate() {
		return Default()
	}
	return *m
}
