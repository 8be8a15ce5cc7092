package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// DielectricF0 is the base reflectivity used for non-metals
var DielectricF0 = core.NewVec3(0.04, 0.04, 0.04)

// CookTorrance is a metallic-roughness microfacet material
type CookTorrance struct {
	Albedo    core.Vec3
	Metalness float64 // 0 for dielectrics, 1 for metals
	Roughness float64 // In [0,1]
}

// NewCookTorrance creates a new microfacet material
func NewCookTorrance(albedo core.Vec3, metalness, roughness float64) *CookTorrance {
	return &CookTorrance{
		Albedo:    albedo,
		Metalness: metalness,
		Roughness: roughness,
	}
}

// BaseReflectivity returns f0, blending from DielectricF0 to the albedo as
// metalness goes from 0 to 1.
func (c *CookTorrance) BaseReflectivity() core.Vec3 {
	return DielectricF0.Multiply(1 - c.Metalness).Add(c.Albedo.Multiply(c.Metalness))
}

// Shade implements the Material interface
func (c *CookTorrance) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	n := hit.Normal
	v := viewDir.Negate()
	l := lightDir
	h := core.HalfVector(v, l)

	fresnel := FresnelSchlick(h, v, c.BaseReflectivity())

	specular := core.Vec3{}
	nv, nl := n.Dot(v), n.Dot(l)
	if nv > 0 && nl > 0 {
		d := NormalDistributionGGX(n, h, c.Roughness)
		g := GeometrySmith(n, v, l, c.Roughness)
		specular = fresnel.Multiply(d * g / (4 * nv * nl))
	}

	kd := core.ColorWhite.Subtract(fresnel).Multiply(1 - c.Metalness)
	diffuse := LambertColor(kd, c.Albedo)

	return diffuse.Add(specular)
}
