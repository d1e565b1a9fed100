package lights

import (
	"fmt"
	"math"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Illuminate computes the direction, intensity and distance of a point or
// directional light as seen from hitPos. lightPosition is the world position of
// the node carrying the light and is ignored for directional lights.
// Ambient lights have no direction and are reported as unsupported; callers add
// their contribution directly.
func Illuminate(light Light, lightPosition, hitPos core.Vec3) (Illumination, error) {
	switch l := light.(type) {
	case *DirectionalLight:
		return Illumination{
			DirectionToLight: l.Direction.Normalize().Negate(),
			Intensity:        l.Diffuse,
			Distance:         math.MaxFloat64,
		}, nil

	case *PointLight:
		toLight := lightPosition.Subtract(hitPos)
		distance := toLight.Length()
		illumination := Illumination{
			DirectionToLight: toLight.Normalize(),
			Distance:         distance,
		}
		// A light on the surface, or a falloff that is not positive, contributes nothing
		if factor := attenuationFactor(l.Attenuation, distance); distance > 0 && factor > 0 && !math.IsInf(factor, 1) {
			illumination.Intensity = l.Diffuse.Multiply(1.0 / factor)
		}
		return illumination, nil

	case nil:
		return Illumination{}, fmt.Errorf("nil light: %w", ErrUnsupportedLightType)

	default:
		return Illumination{}, fmt.Errorf("light type %q: %w", light.Type(), ErrUnsupportedLightType)
	}
}

// attenuationFactor is constant + linear·d + quadratic·d². A zero coefficient
// vector falls back to inverse-square falloff.
func attenuationFactor(attenuation core.Vec3, distance float64) float64 {
	if attenuation == (core.Vec3{}) {
		return distance * distance
	}
	return attenuation.Dot(core.NewVec3(1, distance, distance*distance))
}
