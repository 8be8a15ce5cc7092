package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Material evaluates how a surface reflects light from one light direction.
//
// lightDir points from the hit point towards the light. viewDir is the
// direction of the primary ray, from the camera towards the surface.
type Material interface {
	Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3
}
