package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center     core.Vec3
	Radius     float64
	MaterialID MaterialID
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, materialID MaterialID) *Sphere {
	return &Sphere{
		Center:     center,
		Radius:     radius,
		MaterialID: materialID,
	}
}

// intersect solves |O + tD - C|^2 = r^2 and returns the first root inside the
// ray interval. A tangent ray (zero discriminant) counts as a miss.
func (s *Sphere) intersect(ray core.Ray) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if !ray.InRange(root) {
		root = (-b + sqrtD) / (2 * a)
		if !ray.InRange(root) {
			return 0, false
		}
	}

	return root, true
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rec *HitRecord) bool {
	t, ok := s.intersect(ray)
	if !ok {
		return false
	}

	point := ray.At(t)
	rec.DidHit = true
	rec.T = t
	rec.Point = point
	rec.Normal = point.Subtract(s.Center).Normalize()
	rec.MaterialID = s.MaterialID
	return true
}

// HitAny reports whether the ray intersects the sphere
func (s *Sphere) HitAny(ray core.Ray) bool {
	_, ok := s.intersect(ray)
	return ok
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
