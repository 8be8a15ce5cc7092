package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Origin     core.Vec3  // A point on the plane
	Normal     core.Vec3  // Unit normal
	MaterialID MaterialID // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(origin, normal core.Vec3, materialID MaterialID) *Plane {
	return &Plane{
		Origin:     origin,
		Normal:     normal.Normalize(), // Ensure normal is normalized
		MaterialID: materialID,
	}
}

// intersect returns the ray parameter of the plane crossing. A ray parallel to
// the plane divides by zero and the resulting Inf/NaN fails the range check.
func (p *Plane) intersect(ray core.Ray) (float64, bool) {
	t := p.Origin.Subtract(ray.Origin).Dot(p.Normal) / ray.Direction.Dot(p.Normal)
	return t, ray.InRange(t)
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, rec *HitRecord) bool {
	t, ok := p.intersect(ray)
	if !ok {
		return false
	}

	rec.DidHit = true
	rec.T = t
	rec.Point = ray.At(t)
	rec.Normal = p.Normal
	rec.MaterialID = p.MaterialID
	return true
}

// HitAny reports whether the ray intersects the plane
func (p *Plane) HitAny(ray core.Ray) bool {
	_, ok := p.intersect(ray)
	return ok
}
