package lights

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// AmbientLight adds a constant term scaled by each surface's ambient color
type AmbientLight struct {
	Color core.Vec3
}

// NewAmbientLight creates an ambient light
func NewAmbientLight(color core.Vec3) *AmbientLight {
	return &AmbientLight{Color: color}
}

func (l *AmbientLight) Type() LightType { return LightTypeAmbient }
func (l *AmbientLight) isLight()        {}

// PointLight emits from its node position with distance attenuation
type PointLight struct {
	Diffuse  core.Vec3
	Specular core.Vec3
	// Attenuation holds the constant, linear and quadratic falloff coefficients
	Attenuation core.Vec3
}

// NewPointLight creates a point light with the same diffuse and specular color
func NewPointLight(color, attenuation core.Vec3) *PointLight {
	return &PointLight{Diffuse: color, Specular: color, Attenuation: attenuation}
}

func (l *PointLight) Type() LightType { return LightTypePoint }
func (l *PointLight) isLight()        {}

// DirectionalLight shines along Direction from infinitely far away
type DirectionalLight struct {
	Direction core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
}

// NewDirectionalLight creates a directional light
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction, Diffuse: color, Specular: color}
}

func (l *DirectionalLight) Type() LightType { return LightTypeDirectional }
func (l *DirectionalLight) isLight()        {}
