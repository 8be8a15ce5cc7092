package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCookTorrance_BaseReflectivity(t *testing.T) {
	albedo := core.NewVec3(0.972, 0.960, 0.915)

	tests := []struct {
		name      string
		metalness float64
		expected  core.Vec3
	}{
		{"dielectric", 0, DielectricF0},
		{"metal", 1, albedo},
		{"half metal", 0.5, DielectricF0.Add(albedo).Multiply(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f0 := NewCookTorrance(albedo, tt.metalness, 0.5).BaseReflectivity()
			if !vecNear(f0, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, f0)
			}
		})
	}
}

func TestCookTorrance_HeadOn(t *testing.T) {
	// Light and viewer straight above: h = n, F = f0, G = 1
	albedo := core.NewVec3(0.972, 0.960, 0.915)
	metal := NewCookTorrance(albedo, 1, 1)

	result := metal.Shade(upHit(), core.UnitY, core.UnitY.Negate())
	expected := albedo.Multiply(1 / (4 * math.Pi))
	if !vecNear(result, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestCookTorrance_DielectricHasDiffuse(t *testing.T) {
	plastic := NewCookTorrance(core.NewVec3(0.75, 0.75, 0.75), 0, 1)
	metal := NewCookTorrance(core.NewVec3(0.75, 0.75, 0.75), 1, 1)

	// Light below the horizon: no specular, only the diffuse part remains
	l := core.NewVec3(1, -0.2, 0).Normalize()
	v := core.NewVec3(0, -1, 1).Normalize()

	if got := metal.Shade(upHit(), l, v); !vecNear(got, core.Vec3{}, 1e-12) {
		t.Errorf("Expected metal to have no diffuse response, got %v", got)
	}
	if got := plastic.Shade(upHit(), l, v); got.X <= 0 {
		t.Errorf("Expected plastic to keep a diffuse response, got %v", got)
	}
}

func TestCookTorrance_SmootherIsSharper(t *testing.T) {
	albedo := core.NewVec3(0.972, 0.960, 0.915)
	l := core.NewVec3(1, 1, 0).Normalize()
	mirror := core.NewVec3(1, -1, 0).Normalize()
	away := core.NewVec3(-0.2, -1, 0).Normalize()

	for _, roughness := range []float64{0.1, 0.6, 1} {
		m := NewCookTorrance(albedo, 1, roughness)
		peak := m.Shade(upHit(), l, mirror)
		tail := m.Shade(upHit(), l, away)
		if !peak.IsFinite() || !tail.IsFinite() || peak.X < 0 || tail.X < 0 {
			t.Fatalf("roughness %.1f: invalid result peak=%v tail=%v", roughness, peak, tail)
		}
		if roughness < 1 && peak.X <= tail.X {
			t.Errorf("roughness %.1f: expected highlight %f above off-peak %f", roughness, peak.X, tail.X)
		}
	}
}
