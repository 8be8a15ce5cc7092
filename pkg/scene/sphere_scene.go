package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSphereScene creates a single red sphere of radius 50 at (0,0,100) seen
// from the origin with a 45 degree field of view, lit by one white point
// light behind the camera.
func NewSphereScene() *Scene {
	s := NewScene("Single Sphere")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 0, 0), 45)

	red := s.AddMaterial(material.NewLambertian(core.ColorRed, 1))
	s.AddSphere(core.NewVec3(0, 0, 100), 50, red)

	// Far enough behind the camera to light the whole visible hemisphere
	s.AddPointLight(core.NewVec3(0, 0, -100), 40000, core.ColorWhite)
	return s
}
