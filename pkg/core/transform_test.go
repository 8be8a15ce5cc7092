package core

import (
	"math"
	"testing"
)

func TestTransformPointAndVector(t *testing.T) {
	translate := TranslationMatrix(NewVec3(1, 2, 3))

	p := TransformPoint(translate, NewVec3(1, 1, 1))
	if !vecNear(p, NewVec3(2, 3, 4), 1e-12) {
		t.Errorf("Expected translated point (2,3,4), got %v", p)
	}

	v := TransformVector(translate, NewVec3(1, 1, 1))
	if !vecNear(v, NewVec3(1, 1, 1), 1e-12) {
		t.Errorf("Translation must not affect vectors, got %v", v)
	}
}

func TestRotationMatrix(t *testing.T) {
	tests := []struct {
		name     string
		pitch    float64
		yaw      float64
		roll     float64
		input    Vec3
		expected Vec3
	}{
		{"no rotation", 0, 0, 0, UnitX, UnitX},
		{"yaw 90 moves X to -Z", 0, math.Pi / 2, 0, UnitX, NewVec3(0, 0, -1)},
		{"yaw 90 moves Z to X", 0, math.Pi / 2, 0, UnitZ, UnitX},
		{"pitch 90 moves Y to Z", math.Pi / 2, 0, 0, UnitY, UnitZ},
		{"roll 90 moves X to Y", 0, 0, math.Pi / 2, UnitX, UnitY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TransformVector(RotationMatrix(tt.pitch, tt.yaw, tt.roll), tt.input)
			if !vecNear(result, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestTransformNormal_NonUniformScale(t *testing.T) {
	// A 45 degree slope stretched along X must stay perpendicular to the stretched surface
	scale := ScaleMatrix(NewVec3(2, 1, 1))
	normal := NewVec3(1, 1, 0).Normalize()
	tangent := NewVec3(1, -1, 0)

	transformedNormal := TransformNormal(scale, normal)
	transformedTangent := TransformVector(scale, tangent)

	if math.Abs(transformedNormal.Dot(transformedTangent)) > 1e-9 {
		t.Errorf("Normal %v is not perpendicular to tangent %v", transformedNormal, transformedTangent)
	}
	if math.Abs(transformedNormal.Length()-1) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", transformedNormal.Length())
	}
}

func TestBasisMatrix(t *testing.T) {
	basis := BasisMatrix(UnitX, UnitY, UnitZ, NewVec3(0, 3, -9))

	if p := TransformPoint(basis, Vec3{}); !vecNear(p, NewVec3(0, 3, -9), 1e-12) {
		t.Errorf("Expected origin (0,3,-9), got %v", p)
	}
	if v := TransformVector(basis, UnitZ); !vecNear(v, UnitZ, 1e-12) {
		t.Errorf("Expected forward unchanged, got %v", v)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), UnitZ), true},
		{"miss to the side", NewRay(NewVec3(3, 0, -5), UnitZ), false},
		{"pointing away", NewRay(NewVec3(0, 0, -5), UnitZ.Negate()), false},
		{"parallel inside slab", NewRay(NewVec3(0, 0.5, -5), UnitZ), true},
		{"parallel outside slab", NewRay(NewVec3(0, 2, -5), UnitZ), false},
		{"interval ends before box", NewBoundedRay(NewVec3(0, 0, -5), UnitZ, DefaultRayMin, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray); got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}
