package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MaterialID is a stable handle into the scene's material list. Geometry only
// refers to materials through this handle and never owns them.
type MaterialID int

// DefaultMaterialID is the fallback material every scene creates first
const DefaultMaterialID MaterialID = 0

// HitRecord contains information about a ray-object intersection.
// Point, Normal, MaterialID and T are only meaningful when DidHit is true.
type HitRecord struct {
	DidHit     bool
	Point      core.Vec3  // Point of intersection
	Normal     core.Vec3  // Unit surface normal at intersection
	MaterialID MaterialID // Material of the hit object
	T          float64    // Parameter t along the ray
}

// Shape is implemented by every primitive the scene can intersect
type Shape interface {
	// Hit fills rec with the nearest intersection inside the ray interval.
	// rec is left untouched on a miss.
	Hit(ray core.Ray, rec *HitRecord) bool

	// HitAny reports whether anything is hit inside the ray interval, for
	// occlusion queries.
	HitAny(ray core.Ray) bool
}
