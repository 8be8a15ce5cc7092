package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewReferenceScene creates the Cook-Torrance sphere grid with three white
// triangles above it, one per cull mode. Update swings the triangles around
// their vertical axis.
func NewReferenceScene() *Scene {
	s := NewScene("Reference Scene")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 3, -9), 45)

	addCookTorranceSpheres(s)
	addGrayBlueBox(s, s.AddMaterial(material.NewLambertian(grayBlue, 1)))
	white := s.AddMaterial(material.NewLambertian(core.ColorWhite, 1))

	v0 := core.NewVec3(-0.75, 1.5, 0)
	v1 := core.NewVec3(0.75, 0, 0)
	v2 := core.NewVec3(-0.75, 0, 0)

	cullModes := []geometry.CullMode{geometry.BackFaceCulling, geometry.FrontFaceCulling, geometry.NoCulling}
	offsets := []float64{-1.75, 0, 1.75}
	meshes := make([]*geometry.TriangleMesh, len(cullModes))
	for i, cullMode := range cullModes {
		mesh := s.AddTriangleMesh(cullMode, white)
		mesh.AppendTriangle(v0, v1, v2)
		mesh.Translate(core.NewVec3(offsets[i], 4.5, 0))
		mesh.UpdateTransforms()
		meshes[i] = mesh
	}

	addThreePointLights(s)

	s.SetUpdate(func(s *Scene, totalSeconds float64) {
		yaw := (math.Cos(totalSeconds) + 1) / 2 * 2 * math.Pi
		for _, mesh := range meshes {
			mesh.RotateY(yaw)
			mesh.UpdateTransforms()
		}
	})
	return s
}
