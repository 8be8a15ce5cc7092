package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	DiffuseReflectance float64   // kd
	DiffuseColor       core.Vec3 // cd
}

// NewLambertian creates a new lambertian material
func NewLambertian(diffuseColor core.Vec3, diffuseReflectance float64) *Lambertian {
	return &Lambertian{
		DiffuseReflectance: diffuseReflectance,
		DiffuseColor:       diffuseColor,
	}
}

// Shade implements the Material interface
func (l *Lambertian) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	return Lambert(l.DiffuseReflectance, l.DiffuseColor)
}

// LambertPhong adds a Phong specular highlight on top of a Lambert diffuse base
type LambertPhong struct {
	DiffuseReflectance  float64   // kd
	DiffuseColor        core.Vec3 // cd
	SpecularReflectance float64   // ks
	PhongExponent       float64
}

// NewLambertPhong creates a new diffuse plus specular material
func NewLambertPhong(diffuseColor core.Vec3, kd, ks, exponent float64) *LambertPhong {
	return &LambertPhong{
		DiffuseReflectance:  kd,
		DiffuseColor:        diffuseColor,
		SpecularReflectance: ks,
		PhongExponent:       exponent,
	}
}

// Shade implements the Material interface
func (p *LambertPhong) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	diffuse := Lambert(p.DiffuseReflectance, p.DiffuseColor)
	specular := Phong(p.SpecularReflectance, p.PhongExponent, lightDir, viewDir, hit.Normal)
	return diffuse.Add(specular)
}
