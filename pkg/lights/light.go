package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Light is a delta light source: either a point that falls off with the
// squared distance or a directional light arriving from infinitely far away.
type Light struct {
	Type      LightType
	Origin    core.Vec3 // Position of a point light
	Direction core.Vec3 // Unit direction a directional light travels in
	Intensity float64
	Color     core.Vec3
}

// NewPointLight creates a light at origin
func NewPointLight(origin core.Vec3, intensity float64, color core.Vec3) Light {
	return Light{
		Type:      LightTypePoint,
		Origin:    origin,
		Intensity: intensity,
		Color:     color,
	}
}

// NewDirectionalLight creates a light whose rays all travel along direction
func NewDirectionalLight(direction core.Vec3, intensity float64, color core.Vec3) Light {
	return Light{
		Type:      LightTypeDirectional,
		Direction: direction.Normalize(),
		Intensity: intensity,
		Color:     color,
	}
}

// DirectionTo returns the unit direction from target to the light and the
// distance travelled along it.
func (l Light) DirectionTo(target core.Vec3) (core.Vec3, float64) {
	if l.Type == LightTypeDirectional {
		return l.Direction.Negate(), math.Inf(1)
	}
	toLight := l.Origin.Subtract(target)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return toLight.Divide(distance), distance
}

// Radiance returns the light arriving at target: color*intensity for a
// directional light, divided by the squared distance for a point light.
func (l Light) Radiance(target core.Vec3) core.Vec3 {
	radiance := l.Color.Multiply(l.Intensity)
	if l.Type == LightTypeDirectional {
		return radiance
	}
	distanceSq := l.Origin.Subtract(target).LengthSquared()
	if distanceSq == 0 {
		return core.Vec3{}
	}
	return radiance.Divide(distanceSq)
}

// Sample evaluates the light from one shading point
func (l Light) Sample(point core.Vec3) LightSample {
	direction, distance := l.DirectionTo(point)
	return LightSample{
		Direction: direction,
		Distance:  distance,
		Radiance:  l.Radiance(point),
	}
}

// ParseLightType parses "point" or "directional"
func ParseLightType(s string) (LightType, error) {
	switch LightType(s) {
	case LightTypePoint, "":
		return LightTypePoint, nil
	case LightTypeDirectional:
		return LightTypeDirectional, nil
	default:
		return "", fmt.Errorf("unknown light type %q", s)
	}
}
