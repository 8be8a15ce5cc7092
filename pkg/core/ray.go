package core

import "math"

// DefaultRayMin is the lower bound of the valid parametric interval for new rays
const DefaultRayMin = 1e-4

// DefaultRayMax is the upper bound of the valid parametric interval for new rays
const DefaultRayMax = math.MaxFloat64

// Ray represents a ray with an origin, a unit direction, and the open
// parametric interval (Min, Max) in which intersections are accepted.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Min       float64
	Max       float64
}

// NewRay creates a new ray with a normalized direction and the default interval
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		Min:       DefaultRayMin,
		Max:       DefaultRayMax,
	}
}

// NewBoundedRay creates a ray with a normalized direction limited to (tMin, tMax)
func NewBoundedRay(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		Min:       tMin,
		Max:       tMax,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// InRange reports whether t lies strictly inside the ray's valid interval
func (r Ray) InRange(t float64) bool {
	return t > r.Min && t < r.Max
}
