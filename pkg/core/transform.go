package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a column-major 4x4 affine transform
type Matrix = mgl64.Mat4

// Vec4 is a homogeneous 4D vector
type Vec4 = mgl64.Vec4

// Identity returns the identity transform
func Identity() Matrix {
	return mgl64.Ident4()
}

// ToMgl converts a Vec3 to the mathgl representation
func (v Vec3) ToMgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMgl converts a mathgl vector back to a Vec3
func FromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Homogeneous returns the 4D form of v with the given w component
func (v Vec3) Homogeneous(w float64) Vec4 {
	return v.ToMgl().Vec4(w)
}

// TranslationMatrix returns a transform that offsets points by t
func TranslationMatrix(t Vec3) Matrix {
	return mgl64.Translate3D(t.X, t.Y, t.Z)
}

// ScaleMatrix returns a transform that scales each axis independently
func ScaleMatrix(s Vec3) Matrix {
	return mgl64.Scale3D(s.X, s.Y, s.Z)
}

// RotationMatrix returns a rotation of pitch (X), yaw (Y) and roll (Z), in
// radians, applied in that order to a column vector.
func RotationMatrix(pitch, yaw, roll float64) Matrix {
	return mgl64.HomogRotate3DZ(roll).
		Mul4(mgl64.HomogRotate3DY(yaw)).
		Mul4(mgl64.HomogRotate3DX(pitch))
}

// BasisMatrix builds an orthonormal-basis transform whose columns are right,
// up, forward and the translation origin.
func BasisMatrix(right, up, forward, origin Vec3) Matrix {
	return mgl64.Mat4FromCols(
		right.Homogeneous(0),
		up.Homogeneous(0),
		forward.Homogeneous(0),
		origin.Homogeneous(1),
	)
}

// TransformPoint applies the full affine transform, including translation, to p
func TransformPoint(m Matrix, p Vec3) Vec3 {
	return FromMgl(m.Mul4x1(p.Homogeneous(1)).Vec3())
}

// TransformVector applies only the linear part of the transform to v
func TransformVector(m Matrix, v Vec3) Vec3 {
	return FromMgl(m.Mul4x1(v.Homogeneous(0)).Vec3())
}

// TransformNormal transforms a surface normal with the inverse transpose of m
// and renormalizes it, so non-uniform scales keep normals perpendicular.
func TransformNormal(m Matrix, n Vec3) Vec3 {
	normalMatrix := m.Inv().Transpose()
	return TransformVector(normalMatrix, n).Normalize()
}
