package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_MaxToOne(t *testing.T) {
	tests := []struct {
		name     string
		color    Vec3
		expected Vec3
	}{
		{"over range red", NewVec3(2, 1, 0), NewVec3(1, 0.5, 0)},
		{"in range gray", NewVec3(0.5, 0.5, 0.5), NewVec3(0.5, 0.5, 0.5)},
		{"exactly one", NewVec3(1, 0.25, 0), NewVec3(1, 0.25, 0)},
		{"blue dominant", NewVec3(0, 2, 4), NewVec3(0, 0.5, 1)},
		{"black", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.color.MaxToOne()
			if !vecNear(result, tt.expected, 1e-12) {
				t.Errorf("MaxToOne(%v) = %v, expected %v", tt.color, result, tt.expected)
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := NewVec3(1, -1, 0)

	reflected := incoming.Reflect(normal)
	expected := NewVec3(1, 1, 0)
	if !vecNear(reflected, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_CrossAndNormalize(t *testing.T) {
	cross := UnitX.Cross(UnitY)
	if !vecNear(cross, UnitZ, 1e-12) {
		t.Errorf("Expected X cross Y = Z, got %v", cross)
	}

	n := NewVec3(3, 4, 0).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestHalfVector(t *testing.T) {
	h := HalfVector(UnitX, UnitY)
	expected := NewVec3(1, 1, 0).Normalize()
	if !vecNear(h, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, h)
	}
}

func TestRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 5))
	if !vecNear(ray.Direction, UnitZ, 1e-12) {
		t.Errorf("Expected normalized direction, got %v", ray.Direction)
	}
	if ray.Min != DefaultRayMin || ray.Max != DefaultRayMax {
		t.Errorf("Expected default interval, got (%g, %g)", ray.Min, ray.Max)
	}
	if ray.InRange(ray.Min) || ray.InRange(ray.Max) {
		t.Error("Interval bounds should be exclusive")
	}
	if !ray.InRange(1) {
		t.Error("Expected t=1 to be inside the default interval")
	}
}
