package lights

import (
	"errors"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// ErrUnsupportedLightType is returned when a light cannot be evaluated by Illuminate
var ErrUnsupportedLightType = errors.New("unsupported light type")

type LightType string

const (
	LightTypeAmbient     LightType = "ambient"
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light is one of *AmbientLight, *PointLight or *DirectionalLight.
// The unexported method closes the set so shading code can switch over it exhaustively.
type Light interface {
	Type() LightType
	isLight()
}

// Illumination is the contribution of a light at a world-space point
type Illumination struct {
	DirectionToLight core.Vec3 // Unit vector from the hit point toward the light
	Intensity        core.Vec3 // Incoming color after attenuation
	Distance         float64   // Distance to the light, math.MaxFloat64 for directional lights
}
