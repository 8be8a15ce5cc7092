package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// boundsPadding widens the mesh bounding box so hits on axis-aligned faces are
// not lost to rounding in the slab test.
const boundsPadding = 1e-4

// TriangleMesh represents an indexed triangle list with its own local-to-world
// transform. Positions and per-triangle normals are stored in object space;
// hit tests only ever read the world-space copies produced by UpdateTransforms.
type TriangleMesh struct {
	positions []core.Vec3 // Object-space vertex positions
	normals   []core.Vec3 // Object-space unit normal, one per triangle
	indices   []int       // Consecutive triples of vertex indices

	CullMode   CullMode
	MaterialID MaterialID

	translation core.Vec3
	rotation    core.Vec3 // Pitch, yaw and roll in radians
	scale       core.Vec3

	world *meshWorld // Derived buffers, nil until UpdateTransforms runs
}

// meshWorld holds the buffers derived from the current transform
type meshWorld struct {
	positions []core.Vec3
	normals   []core.Vec3
	bounds    core.AABB
}

// NewTriangleMesh creates a mesh from object-space positions and triangle
// indices. normals may be nil, in which case face normals are derived from
// the winding order. The returned mesh is already transformed and ready to hit.
func NewTriangleMesh(positions []core.Vec3, normals []core.Vec3, indices []int, cullMode CullMode, materialID MaterialID) *TriangleMesh {
	mesh := &TriangleMesh{
		positions:  append([]core.Vec3(nil), positions...),
		indices:    append([]int(nil), indices...),
		CullMode:   cullMode,
		MaterialID: materialID,
		scale:      core.NewVec3(1, 1, 1),
	}

	if len(normals) == mesh.TriangleCount() {
		mesh.normals = make([]core.Vec3, len(normals))
		for i, n := range normals {
			mesh.normals[i] = n.Normalize()
		}
	} else {
		mesh.CalculateNormals()
	}

	mesh.UpdateTransforms()
	return mesh
}

// TriangleCount returns the number of triangles implied by the index buffer
func (m *TriangleMesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Positions returns the object-space vertex positions
func (m *TriangleMesh) Positions() []core.Vec3 {
	return m.positions
}

// Normals returns the object-space per-triangle normals
func (m *TriangleMesh) Normals() []core.Vec3 {
	return m.normals
}

// Indices returns the triangle index buffer
func (m *TriangleMesh) Indices() []int {
	return m.indices
}

// AppendTriangle adds a triangle with its own three vertices. The derived
// buffers are invalidated.
func (m *TriangleMesh) AppendTriangle(v0, v1, v2 core.Vec3) {
	base := len(m.positions)
	m.positions = append(m.positions, v0, v1, v2)
	m.indices = append(m.indices, base, base+1, base+2)
	m.normals = append(m.normals, FaceNormal(v0, v1, v2))
	m.world = nil
}

// CalculateNormals recomputes one object-space face normal per triangle from
// the winding order. Triangles with out-of-range indices get a zero normal.
func (m *TriangleMesh) CalculateNormals() {
	count := m.TriangleCount()
	m.normals = make([]core.Vec3, count)
	for i := 0; i < count; i++ {
		i0, i1, i2 := m.indices[i*3], m.indices[i*3+1], m.indices[i*3+2]
		if !m.validIndex(i0) || !m.validIndex(i1) || !m.validIndex(i2) {
			continue
		}
		m.normals[i] = FaceNormal(m.positions[i0], m.positions[i1], m.positions[i2])
	}
	m.world = nil
}

func (m *TriangleMesh) validIndex(i int) bool {
	return i >= 0 && i < len(m.positions)
}

// Translate moves the mesh by offset
func (m *TriangleMesh) Translate(offset core.Vec3) {
	m.translation = m.translation.Add(offset)
	m.world = nil
}

// SetTranslation places the mesh origin at position
func (m *TriangleMesh) SetTranslation(position core.Vec3) {
	m.translation = position
	m.world = nil
}

// RotateY sets the yaw of the mesh in radians
func (m *TriangleMesh) RotateY(yaw float64) {
	m.rotation.Y = yaw
	m.world = nil
}

// SetRotation sets pitch, yaw and roll of the mesh in radians
func (m *TriangleMesh) SetRotation(pitch, yaw, roll float64) {
	m.rotation = core.NewVec3(pitch, yaw, roll)
	m.world = nil
}

// Scale sets the per-axis scale of the mesh
func (m *TriangleMesh) Scale(factor core.Vec3) {
	m.scale = factor
	m.world = nil
}

// Transform returns the local-to-world matrix: scale first, then rotation,
// then translation.
func (m *TriangleMesh) Transform() core.Matrix {
	translation := core.TranslationMatrix(m.translation)
	rotation := core.RotationMatrix(m.rotation.X, m.rotation.Y, m.rotation.Z)
	scale := core.ScaleMatrix(m.scale)
	return translation.Mul4(rotation).Mul4(scale)
}

// UpdateTransforms recomputes the world-space positions, normals and bounding
// box from the current transform. It must be called after any transform or
// topology change before the mesh can be hit again.
func (m *TriangleMesh) UpdateTransforms() {
	transform := m.Transform()

	world := &meshWorld{
		positions: make([]core.Vec3, len(m.positions)),
		normals:   make([]core.Vec3, len(m.normals)),
	}
	for i, p := range m.positions {
		world.positions[i] = core.TransformPoint(transform, p)
	}
	for i, n := range m.normals {
		world.normals[i] = core.TransformNormal(transform, n)
	}

	m.world = world
	m.UpdateAABB()
}

// UpdateAABB recomputes the world-space bounding box from the transformed
// positions. It does nothing while the derived buffers are unavailable.
func (m *TriangleMesh) UpdateAABB() {
	if m.world == nil {
		return
	}
	m.world.bounds = core.NewAABBFromPoints(m.world.positions...).Expand(boundsPadding)
}

// Transformed returns the world-space positions and normals. ok is false when
// the transform changed since the last UpdateTransforms.
func (m *TriangleMesh) Transformed() (positions, normals []core.Vec3, ok bool) {
	if m.world == nil {
		return nil, nil, false
	}
	return m.world.positions, m.world.normals, true
}

// BoundingBox returns the world-space bounding box. ok is false when the
// derived buffers are unavailable.
func (m *TriangleMesh) BoundingBox() (core.AABB, bool) {
	if m.world == nil {
		return core.AABB{}, false
	}
	return m.world.bounds, true
}

// Triangle returns a transient world-space view of triangle i
func (m *TriangleMesh) Triangle(i int) (Triangle, bool) {
	if m.world == nil || i < 0 || i >= m.TriangleCount() || i >= len(m.world.normals) {
		return Triangle{}, false
	}
	i0, i1, i2 := m.indices[i*3], m.indices[i*3+1], m.indices[i*3+2]
	if !m.validIndex(i0) || !m.validIndex(i1) || !m.validIndex(i2) {
		return Triangle{}, false
	}
	p := m.world.positions
	return Triangle{
		V0:         p[i0],
		V1:         p[i1],
		V2:         p[i2],
		Normal:     m.world.normals[i],
		CullMode:   m.CullMode,
		MaterialID: m.MaterialID,
	}, true
}

// hittable reports whether the mesh can be tested against ray at all
func (m *TriangleMesh) hittable(ray core.Ray) bool {
	if len(m.indices)%3 != 0 || m.world == nil {
		return false
	}
	return m.world.bounds.Hit(ray)
}

// Hit returns the closest triangle hit within the ray interval
func (m *TriangleMesh) Hit(ray core.Ray, rec *HitRecord) bool {
	if !m.hittable(ray) {
		return false
	}

	closest := ray
	hitAnything := false
	var tempRec HitRecord
	for i := 0; i < m.TriangleCount(); i++ {
		triangle, ok := m.Triangle(i)
		if !ok {
			continue
		}
		if triangle.HitTest(closest, &tempRec, false) {
			hitAnything = true
			closest.Max = tempRec.T
			*rec = tempRec
		}
	}
	return hitAnything
}

// HitAny reports whether any triangle occludes the ray
func (m *TriangleMesh) HitAny(ray core.Ray) bool {
	if !m.hittable(ray) {
		return false
	}

	for i := 0; i < m.TriangleCount(); i++ {
		triangle, ok := m.Triangle(i)
		if !ok {
			continue
		}
		if triangle.HitTest(ray, nil, true) {
			return true
		}
	}
	return false
}
