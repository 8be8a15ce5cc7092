package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Lambert returns the diffuse reflectance kd*cd/π
func Lambert(kd float64, cd core.Vec3) core.Vec3 {
	return cd.Multiply(kd / math.Pi)
}

// LambertColor is Lambert with a per-channel reflection coefficient
func LambertColor(kd, cd core.Vec3) core.Vec3 {
	return kd.MultiplyVec(cd).Multiply(1 / math.Pi)
}

// Phong returns the grayscale specular term ks*cos(α)^exp, where α is the
// angle between the mirrored light direction l and the view direction v.
func Phong(ks, exponent float64, l, v, n core.Vec3) core.Vec3 {
	reflected := l.Reflect(n).Normalize()
	cosAlpha := reflected.Dot(v)
	if cosAlpha <= 0 {
		return core.Vec3{}
	}
	specular := ks * math.Pow(cosAlpha, exponent)
	return core.NewVec3(specular, specular, specular)
}

// FresnelSchlick approximates reflectance f0 + (1-f0)(1-h·v)^5
func FresnelSchlick(h, v, f0 core.Vec3) core.Vec3 {
	weight := math.Pow(1-h.Dot(v), 5)
	return f0.Add(core.ColorWhite.Subtract(f0).Multiply(weight))
}

// NormalDistributionGGX is the Trowbridge-Reitz GGX distribution with
// alpha = roughness²
func NormalDistributionGGX(n, h core.Vec3, roughness float64) float64 {
	alpha := roughness * roughness
	alphaSq := alpha * alpha
	nh := n.Dot(h)
	denominator := nh*nh*(alphaSq-1) + 1
	return alphaSq / (math.Pi * denominator * denominator)
}

// GeometrySchlickGGX is the Schlick-GGX masking term for a single direction
func GeometrySchlickGGX(n, v core.Vec3, roughness float64) float64 {
	k := (roughness*roughness + 1) * (roughness*roughness + 1) / 8
	nv := n.Dot(v)
	return nv / (nv*(1-k) + k)
}

// GeometrySmith combines masking towards the viewer and shadowing towards the light
func GeometrySmith(n, v, l core.Vec3, roughness float64) float64 {
	return GeometrySchlickGGX(n, v, roughness) * GeometrySchlickGGX(n, l, roughness)
}
