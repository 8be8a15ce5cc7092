package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SolidColor returns a fixed color regardless of lighting
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color material
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Shade implements the Material interface
func (s *SolidColor) Shade(hit geometry.HitRecord, lightDir, viewDir core.Vec3) core.Vec3 {
	return s.Color
}
