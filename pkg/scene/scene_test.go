package scene

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestScene_GetClosestHit(t *testing.T) {
	s := NewScene("closest")
	near := s.AddMaterial(material.NewSolidColor(core.ColorGreen))
	far := s.AddMaterial(material.NewSolidColor(core.ColorBlue))

	// Overlapping spheres, the far one added first
	s.AddSphere(core.NewVec3(0, 0, 11), 2, far)
	s.AddSphere(core.NewVec3(0, 0, 10), 2, near)

	hit := s.GetClosestHit(core.NewRay(core.Vec3{}, core.UnitZ))
	if !hit.DidHit {
		t.Fatal("Expected a hit")
	}
	if hit.MaterialID != near {
		t.Errorf("Expected material %d of the nearer sphere, got %d", near, hit.MaterialID)
	}
	if math.Abs(hit.T-8) > 1e-9 {
		t.Errorf("Expected t=8, got %f", hit.T)
	}
}

func TestScene_GetClosestHit_AcrossPrimitiveKinds(t *testing.T) {
	s := NewScene("kinds")
	sphereMat := s.AddMaterial(material.NewSolidColor(core.ColorGreen))
	planeMat := s.AddMaterial(material.NewSolidColor(core.ColorBlue))
	meshMat := s.AddMaterial(material.NewSolidColor(core.ColorYellow))

	s.AddSphere(core.NewVec3(0, 0, 10), 1, sphereMat)
	s.AddPlane(core.NewVec3(0, 0, 20), core.NewVec3(0, 0, -1), planeMat)
	mesh := s.AddTriangleMesh(geometry.NoCulling, meshMat)
	mesh.AppendTriangle(core.NewVec3(-1, -1, 5), core.NewVec3(1, -1, 5), core.NewVec3(0, 1, 5))
	mesh.UpdateTransforms()

	tests := []struct {
		name     string
		ray      core.Ray
		expected geometry.MaterialID
		t        float64
	}{
		{"mesh in front", core.NewRay(core.Vec3{}, core.UnitZ), meshMat, 5},
		{"sphere behind mesh interval", core.NewBoundedRay(core.NewVec3(0, 0, 6), core.UnitZ, core.DefaultRayMin, math.MaxFloat64), sphereMat, 3},
		{"plane only", core.NewRay(core.NewVec3(5, 5, 0), core.UnitZ), planeMat, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := s.GetClosestHit(tt.ray)
			if !hit.DidHit {
				t.Fatal("Expected a hit")
			}
			if hit.MaterialID != tt.expected {
				t.Errorf("Expected material %d, got %d", tt.expected, hit.MaterialID)
			}
			if math.Abs(hit.T-tt.t) > 1e-6 {
				t.Errorf("Expected t=%f, got %f", tt.t, hit.T)
			}
		})
	}
}

func TestScene_GetClosestHit_Miss(t *testing.T) {
	s := NewScene("miss")
	s.AddSphere(core.NewVec3(0, 0, 10), 1, geometry.DefaultMaterialID)

	hit := s.GetClosestHit(core.NewRay(core.Vec3{}, core.UnitZ.Negate()))
	if hit.DidHit {
		t.Errorf("Expected no hit, got %+v", hit)
	}
}

func TestScene_DoesHit(t *testing.T) {
	s := NewScene("occlusion")
	s.AddSphere(core.NewVec3(0, 0, 10), 1, geometry.DefaultMaterialID)

	tests := []struct {
		name     string
		ray      core.Ray
		expected bool
	}{
		{"unbounded", core.NewRay(core.Vec3{}, core.UnitZ), true},
		{"ends before sphere", core.NewBoundedRay(core.Vec3{}, core.UnitZ, core.DefaultRayMin, 8), false},
		{"ends inside sphere", core.NewBoundedRay(core.Vec3{}, core.UnitZ, core.DefaultRayMin, 9.5), true},
		{"away from sphere", core.NewRay(core.Vec3{}, core.UnitY), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.DoesHit(tt.ray); got != tt.expected {
				t.Errorf("Expected DoesHit=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScene_StaleMeshIsNotHit(t *testing.T) {
	s := NewScene("stale")
	mesh := s.AddTriangleMesh(geometry.NoCulling, geometry.DefaultMaterialID)
	mesh.AppendTriangle(core.NewVec3(-1, -1, 5), core.NewVec3(1, -1, 5), core.NewVec3(0, 1, 5))

	ray := core.NewRay(core.Vec3{}, core.UnitZ)
	if s.GetClosestHit(ray).DidHit || s.DoesHit(ray) {
		t.Error("Mesh without UpdateTransforms must not be hit")
	}

	mesh.UpdateTransforms()
	if !s.GetClosestHit(ray).DidHit || !s.DoesHit(ray) {
		t.Error("Mesh must be hit after UpdateTransforms")
	}
}

func TestScene_Materials(t *testing.T) {
	s := NewScene("materials")
	if s.MaterialCount() != 1 {
		t.Fatalf("Expected only the default material, got %d", s.MaterialCount())
	}

	first := s.AddMaterial(material.NewSolidColor(core.ColorGreen))
	second := s.AddMaterial(material.NewSolidColor(core.ColorBlue))
	if first != 1 || second != 2 {
		t.Errorf("Expected material ids 1 and 2, got %d and %d", first, second)
	}

	defaultMaterial := s.Material(geometry.DefaultMaterialID)
	for _, id := range []geometry.MaterialID{-1, 3, 99} {
		if s.Material(id) != defaultMaterial {
			t.Errorf("Expected default material for unknown id %d", id)
		}
	}

	// The default material is solid red whatever the lighting
	color := defaultMaterial.Shade(geometry.HitRecord{Normal: core.UnitY}, core.UnitY, core.UnitZ)
	if color != core.ColorRed {
		t.Errorf("Expected default material red, got %v", color)
	}
}

func TestScene_LightIDs(t *testing.T) {
	s := NewScene("lights")
	a := s.AddPointLight(core.NewVec3(0, 5, 0), 100, core.ColorWhite)
	b := s.AddDirectionalLight(core.NewVec3(0, -1, 0), 1, core.ColorWhite)

	if a != 0 || b != 1 {
		t.Errorf("Expected light ids 0 and 1, got %d and %d", a, b)
	}
	if len(s.Lights()) != 2 {
		t.Errorf("Expected 2 lights, got %d", len(s.Lights()))
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s := NewScene("count")
	s.AddSphere(core.NewVec3(0, 0, 5), 1, geometry.DefaultMaterialID)
	s.AddPlane(core.Vec3{}, core.UnitY, geometry.DefaultMaterialID)
	mesh := s.AddTriangleMesh(geometry.NoCulling, geometry.DefaultMaterialID)
	mesh.AppendTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	mesh.AppendTriangle(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 1), core.NewVec3(0, 1, 1))

	if got := s.GetPrimitiveCount(); got != 4 {
		t.Errorf("Expected 4 primitives, got %d", got)
	}
}

func TestScene_Update(t *testing.T) {
	s := NewScene("update")
	s.Update(1) // No callback installed

	var seen []float64
	s.SetUpdate(func(s *Scene, totalSeconds float64) {
		seen = append(seen, totalSeconds)
	})
	s.Update(0.5)
	s.Update(1.5)

	if len(seen) != 2 || seen[0] != 0.5 || seen[1] != 1.5 {
		t.Errorf("Expected update times [0.5 1.5], got %v", seen)
	}
}
