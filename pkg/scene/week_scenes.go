package scene

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

//go:embed assets/simple_cube.obj
var simpleCubeOBJ []byte

// Reflectance presets shared by the lit scenes
var (
	metalAlbedo   = core.NewVec3(0.972, 0.960, 0.915)
	plasticAlbedo = core.NewVec3(0.75, 0.75, 0.75)
	grayBlue      = core.NewVec3(0.49, 0.57, 0.57)
)

// NewW1Scene creates a box of solid colored planes around two overlapping spheres
func NewW1Scene() *Scene {
	s := NewScene("W1 Solid Colors")

	const solidRed = geometry.DefaultMaterialID
	solidBlue := s.AddMaterial(material.NewSolidColor(core.ColorBlue))
	solidYellow := s.AddMaterial(material.NewSolidColor(core.ColorYellow))
	solidGreen := s.AddMaterial(material.NewSolidColor(core.ColorGreen))
	solidMagenta := s.AddMaterial(material.NewSolidColor(core.ColorMagenta))

	s.AddSphere(core.NewVec3(-25, 0, 100), 50, solidRed)
	s.AddSphere(core.NewVec3(25, 0, 100), 50, solidBlue)

	s.AddPlane(core.NewVec3(-75, 0, 0), core.UnitX, solidGreen)
	s.AddPlane(core.NewVec3(75, 0, 0), core.UnitX.Negate(), solidGreen)
	s.AddPlane(core.NewVec3(0, -75, 0), core.UnitY, solidYellow)
	s.AddPlane(core.NewVec3(0, 75, 0), core.UnitY.Negate(), solidYellow)
	s.AddPlane(core.NewVec3(0, 0, 125), core.UnitZ.Negate(), solidMagenta)

	s.AddPointLight(core.NewVec3(0, 0, 0), 10000, core.ColorWhite)
	return s
}

// addGrayBlueBox adds the five walls shared by the lit scenes
func addGrayBlueBox(s *Scene, materialID geometry.MaterialID) {
	s.AddPlane(core.NewVec3(0, 0, 10), core.UnitZ.Negate(), materialID) // back
	s.AddPlane(core.NewVec3(0, 0, 0), core.UnitY, materialID)           // bottom
	s.AddPlane(core.NewVec3(0, 10, 0), core.UnitY.Negate(), materialID) // top
	s.AddPlane(core.NewVec3(5, 0, 0), core.UnitX.Negate(), materialID)  // right
	s.AddPlane(core.NewVec3(-5, 0, 0), core.UnitX, materialID)          // left
}

// addThreePointLights adds the warm back light and the two front lights
func addThreePointLights(s *Scene) {
	s.AddPointLight(core.NewVec3(0, 5, 5), 50, core.NewVec3(1, 0.61, 0.45))         // back
	s.AddPointLight(core.NewVec3(-2.5, 5, -5), 70, core.NewVec3(1, 0.8, 0.45))      // front left
	s.AddPointLight(core.NewVec3(2.5, 2.5, -5), 50, core.NewVec3(0.34, 0.47, 0.68)) // front right
}

// addSphereRows adds two rows of three spheres using the given materials
func addSphereRows(s *Scene, bottom, top [3]geometry.MaterialID) {
	for i, x := range []float64{-1.75, 0, 1.75} {
		s.AddSphere(core.NewVec3(x, 1, 0), 0.75, bottom[i])
		s.AddSphere(core.NewVec3(x, 3, 0), 0.75, top[i])
	}
}

// NewW2Scene creates six solid colored spheres in a colored box with a shadow casting light
func NewW2Scene() *Scene {
	s := NewScene("W2 Shadows")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 3, -9), 45)

	const solidRed = geometry.DefaultMaterialID
	solidBlue := s.AddMaterial(material.NewSolidColor(core.ColorBlue))
	solidYellow := s.AddMaterial(material.NewSolidColor(core.ColorYellow))
	solidGreen := s.AddMaterial(material.NewSolidColor(core.ColorGreen))
	solidMagenta := s.AddMaterial(material.NewSolidColor(core.ColorMagenta))

	s.AddPlane(core.NewVec3(-5, 0, 0), core.UnitX, solidGreen)
	s.AddPlane(core.NewVec3(5, 0, 0), core.UnitX.Negate(), solidGreen)
	s.AddPlane(core.NewVec3(0, 0, 0), core.UnitY, solidYellow)
	s.AddPlane(core.NewVec3(0, 10, 0), core.UnitY.Negate(), solidYellow)
	s.AddPlane(core.NewVec3(0, 0, 10), core.UnitZ.Negate(), solidMagenta)

	addSphereRows(s,
		[3]geometry.MaterialID{solidRed, solidBlue, solidRed},
		[3]geometry.MaterialID{solidBlue, solidRed, solidBlue},
	)

	s.AddPointLight(core.NewVec3(0, 5, -5), 70, core.ColorWhite)
	return s
}

// addCookTorranceSpheres adds rough, medium and smooth metals below matching plastics
func addCookTorranceSpheres(s *Scene) {
	var metals, plastics [3]geometry.MaterialID
	for i, roughness := range []float64{1, 0.6, 0.1} {
		metals[i] = s.AddMaterial(material.NewCookTorrance(metalAlbedo, 1, roughness))
	}
	for i, roughness := range []float64{1, 0.6, 0.1} {
		plastics[i] = s.AddMaterial(material.NewCookTorrance(plasticAlbedo, 0, roughness))
	}
	addSphereRows(s, metals, plastics)
}

// NewW3Scene creates the Cook-Torrance sphere grid under three colored lights
func NewW3Scene() *Scene {
	s := NewScene("W3 Microfacets")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 3, -9), 45)

	addCookTorranceSpheres(s)
	addGrayBlueBox(s, s.AddMaterial(material.NewLambertian(grayBlue, 1)))
	addThreePointLights(s)
	return s
}

// NewW4Scene creates a single bent quad mesh turned 45 degrees about Y
func NewW4Scene() *Scene {
	s := NewScene("W4 Triangle Mesh")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 1, -5), 45)

	wall := s.AddMaterial(material.NewLambertian(grayBlue, 1))
	white := s.AddMaterial(material.NewLambertian(core.ColorWhite, 1))
	addGrayBlueBox(s, wall)

	positions := []core.Vec3{
		core.NewVec3(-0.75, -1, 0),
		core.NewVec3(-0.75, 1, 0),
		core.NewVec3(0.75, 1, 1),
		core.NewVec3(0.75, -1, 0),
	}
	mesh := s.AddMesh(geometry.NewTriangleMesh(positions, nil, []int{0, 1, 2, 0, 2, 3}, geometry.NoCulling, white))
	mesh.Translate(core.NewVec3(0, 1.5, 0))
	mesh.RotateY(math.Pi / 4)
	mesh.UpdateTransforms()

	addThreePointLights(s)
	return s
}

// NewW4CubeScene creates a spinning back-face culled cube loaded from OBJ
func NewW4CubeScene() (*Scene, error) {
	s := NewScene("W4 Spinning Cube")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 1, -5), 45)

	wall := s.AddMaterial(material.NewLambertian(grayBlue, 1))
	white := s.AddMaterial(material.NewLambertian(core.ColorWhite, 1))
	addGrayBlueBox(s, wall)

	data, err := loaders.ParseOBJ(bytes.NewReader(simpleCubeOBJ))
	if err != nil {
		return nil, fmt.Errorf("failed to load cube mesh: %w", err)
	}
	cube := s.AddMeshData(data, geometry.BackFaceCulling, white)
	cube.Translate(core.NewVec3(0, 1.5, 0))
	cube.UpdateTransforms()

	addThreePointLights(s)

	s.SetUpdate(func(s *Scene, totalSeconds float64) {
		cube.RotateY(math.Pi / 2 * totalSeconds)
		cube.UpdateTransforms()
	})
	return s, nil
}
