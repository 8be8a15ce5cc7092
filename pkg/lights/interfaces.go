package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// LightSample describes a light as seen from one shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction FROM the shading point TO the light
	Distance  float64   // Distance to the light, +Inf for directional lights
	Radiance  core.Vec3 // Incident radiance at the shading point
}
