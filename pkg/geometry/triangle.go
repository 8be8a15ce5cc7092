package geometry

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CullMode decides which face of a triangle may be hit
type CullMode int

const (
	NoCulling        CullMode = iota // Both faces can be hit
	BackFaceCulling                  // Rays travelling along the normal are rejected
	FrontFaceCulling                 // Rays travelling against the normal are rejected
)

// String returns the cull mode name
func (c CullMode) String() string {
	switch c {
	case NoCulling:
		return "none"
	case BackFaceCulling:
		return "back"
	case FrontFaceCulling:
		return "front"
	default:
		return fmt.Sprintf("CullMode(%d)", int(c))
	}
}

// Inverted swaps back and front face culling; NoCulling is unchanged
func (c CullMode) Inverted() CullMode {
	switch c {
	case BackFaceCulling:
		return FrontFaceCulling
	case FrontFaceCulling:
		return BackFaceCulling
	default:
		return c
	}
}

// ParseCullMode parses "none", "back" or "front"
func ParseCullMode(s string) (CullMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "nocull", "noculling":
		return NoCulling, nil
	case "back", "backface", "backfaceculling":
		return BackFaceCulling, nil
	case "front", "frontface", "frontfaceculling":
		return FrontFaceCulling, nil
	default:
		return NoCulling, fmt.Errorf("unknown cull mode %q", s)
	}
}

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3  // The three vertices
	Normal     core.Vec3  // Precomputed unit normal
	CullMode   CullMode   // Which faces are rejected
	MaterialID MaterialID // Material of the triangle
}

// NewTriangle creates a new triangle and computes its normal from the winding order
func NewTriangle(v0, v1, v2 core.Vec3, cullMode CullMode, materialID MaterialID) Triangle {
	return Triangle{
		V0:         v0,
		V1:         v1,
		V2:         v2,
		Normal:     FaceNormal(v0, v1, v2),
		CullMode:   cullMode,
		MaterialID: materialID,
	}
}

// NewTriangleWithNormal creates a new triangle with a custom normal
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, cullMode CullMode, materialID MaterialID) Triangle {
	return Triangle{
		V0:         v0,
		V1:         v1,
		V2:         v2,
		Normal:     normal.Normalize(),
		CullMode:   cullMode,
		MaterialID: materialID,
	}
}

// FaceNormal returns the unit normal of the counter-clockwise triangle v0, v1, v2
func FaceNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// culled reports whether the cull mode rejects a ray with this direction
func (t *Triangle) culled(cullMode CullMode, direction core.Vec3) bool {
	switch cullMode {
	case BackFaceCulling:
		return t.Normal.Dot(direction) > 0
	case FrontFaceCulling:
		return t.Normal.Dot(direction) < 0
	default:
		return false
	}
}

// HitTest runs the full triangle test. When ignoreHitRecord is set the call is
// an occlusion query: the cull mode is inverted so that surfaces facing away
// from the shading point still block light, and rec is not written.
func (t *Triangle) HitTest(ray core.Ray, rec *HitRecord, ignoreHitRecord bool) bool {
	cullMode := t.CullMode
	if ignoreHitRecord {
		cullMode = cullMode.Inverted()
	}
	if t.culled(cullMode, ray.Direction) {
		return false
	}

	edgeA := t.V1.Subtract(t.V0)
	edgeB := t.V2.Subtract(t.V1)
	edgeC := t.V0.Subtract(t.V2)

	// Unnormalized geometric normal, zero for degenerate triangles
	normal := edgeA.Cross(t.V2.Subtract(t.V0))
	denominator := ray.Direction.Dot(normal)
	if denominator == 0 {
		return false
	}

	// Intersect the supporting plane through the centroid
	center := t.V0.Add(t.V1).Add(t.V2).Divide(3)
	param := center.Subtract(ray.Origin).Dot(normal) / denominator
	if !ray.InRange(param) {
		return false
	}
	point := ray.At(param)

	// Edge-function test: the point must lie on the inner side of every edge
	if normal.Dot(edgeA.Cross(point.Subtract(t.V0))) < 0 {
		return false
	}
	if normal.Dot(edgeB.Cross(point.Subtract(t.V1))) < 0 {
		return false
	}
	if normal.Dot(edgeC.Cross(point.Subtract(t.V2))) < 0 {
		return false
	}

	if !ignoreHitRecord {
		rec.DidHit = true
		rec.T = param
		rec.Point = point
		rec.Normal = t.Normal
		rec.MaterialID = t.MaterialID
	}
	return true
}

// Hit tests if a ray intersects with the triangle
func (t *Triangle) Hit(ray core.Ray, rec *HitRecord) bool {
	return t.HitTest(ray, rec, false)
}

// HitAny reports whether the triangle occludes the ray
func (t *Triangle) HitAny(ray core.Ray) bool {
	return t.HitTest(ray, nil, true)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}
