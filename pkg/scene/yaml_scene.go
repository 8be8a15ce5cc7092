package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"gopkg.in/yaml.v3"
)

// SceneFile is the YAML description of a scene
type SceneFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Group       string         `yaml:"group"`
	Camera      CameraSpec     `yaml:"camera"`
	Render      RenderSpec     `yaml:"render"`
	Materials   []MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec   `yaml:"spheres"`
	Planes      []PlaneSpec    `yaml:"planes"`
	Meshes      []MeshSpec     `yaml:"meshes"`
	Lights      []LightSpec    `yaml:"lights"`
}

// Vec is a YAML [x, y, z] triple
type Vec [3]float64

func (v Vec) vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraSpec places the camera. LookAt wins over Yaw and Pitch.
type CameraSpec struct {
	Origin Vec     `yaml:"origin"`
	Fov    float64 `yaml:"fov"`   // Degrees, default 45
	Yaw    float64 `yaml:"yaw"`   // Degrees
	Pitch  float64 `yaml:"pitch"` // Degrees
	LookAt *Vec    `yaml:"lookAt"`
}

// RenderSpec carries the render defaults for the scene
type RenderSpec struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	LightingMode string `yaml:"lightingMode"`
	Shadows      *bool  `yaml:"shadows"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"` // solid, lambert, lambertPhong or cookTorrance
	Color     Vec      `yaml:"color"`
	Kd        *float64 `yaml:"kd"` // Defaults to 1
	Ks        float64  `yaml:"ks"`
	Exponent  float64  `yaml:"exponent"`
	Metalness float64  `yaml:"metalness"`
	Roughness float64  `yaml:"roughness"`
}

type SphereSpec struct {
	Center   Vec     `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Material string  `yaml:"material"`
}

type PlaneSpec struct {
	Origin   Vec    `yaml:"origin"`
	Normal   Vec    `yaml:"normal"`
	Material string `yaml:"material"`
}

// MeshSpec is either a mesh file, relative to the scene file, or inline
// positions and indices.
type MeshSpec struct {
	File      string  `yaml:"file"`
	Positions []Vec   `yaml:"positions"`
	Indices   []int   `yaml:"indices"`
	CullMode  string  `yaml:"cullMode"`
	Material  string  `yaml:"material"`
	Translate Vec     `yaml:"translate"`
	RotateY   float64 `yaml:"rotateY"` // Degrees
	Scale     *Vec    `yaml:"scale"`
	SpinY     float64 `yaml:"spinY"` // Degrees per second added by Update
}

type LightSpec struct {
	Type      string  `yaml:"type"` // point or directional
	Origin    Vec     `yaml:"origin"`
	Direction Vec     `yaml:"direction"`
	Intensity float64 `yaml:"intensity"`
	Color     *Vec    `yaml:"color"`
}

// LoadSceneFile reads a YAML scene. Mesh files are resolved relative to the
// scene file.
func LoadSceneFile(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := ParseScene(data, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", filename, err)
	}
	return s, nil
}

// ParseScene builds a scene from YAML data
func ParseScene(data []byte, baseDir string) (*Scene, error) {
	var file SceneFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid scene YAML: %w", err)
	}
	return file.Build(baseDir)
}

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

// Build turns the description into a scene
func (f *SceneFile) Build(baseDir string) (*Scene, error) {
	name := f.Name
	if name == "" {
		name = "Untitled"
	}
	s := NewScene(name)
	s.Settings = RenderSettings{
		Width:        f.Render.Width,
		Height:       f.Render.Height,
		LightingMode: f.Render.LightingMode,
		Shadows:      f.Render.Shadows,
	}

	fov := f.Camera.Fov
	if fov == 0 {
		fov = 45
	}
	if fov <= 0 || fov >= 180 {
		return nil, fmt.Errorf("camera fov must be between 0 and 180 degrees, got %g", fov)
	}
	s.Camera = geometry.NewCamera(f.Camera.Origin.vec3(), fov)
	if f.Camera.LookAt != nil {
		s.Camera.LookAt(f.Camera.LookAt.vec3())
	} else {
		s.Camera.Rotate(degrees(f.Camera.Yaw), degrees(f.Camera.Pitch))
	}

	materials := map[string]geometry.MaterialID{"default": geometry.DefaultMaterialID}
	for i, spec := range f.Materials {
		if spec.Name == "" {
			return nil, fmt.Errorf("material %d has no name", i)
		}
		if _, exists := materials[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate material %q", spec.Name)
		}
		m, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", spec.Name, err)
		}
		materials[spec.Name] = s.AddMaterial(m)
	}
	lookup := func(name string) (geometry.MaterialID, error) {
		if name == "" {
			return geometry.DefaultMaterialID, nil
		}
		id, ok := materials[name]
		if !ok {
			return 0, fmt.Errorf("unknown material %q", name)
		}
		return id, nil
	}

	for i, spec := range f.Spheres {
		id, err := lookup(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive", i)
		}
		s.AddSphere(spec.Center.vec3(), spec.Radius, id)
	}

	for i, spec := range f.Planes {
		id, err := lookup(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		normal := spec.Normal.vec3()
		if normal.LengthSquared() == 0 {
			return nil, fmt.Errorf("plane %d: normal must not be zero", i)
		}
		s.AddPlane(spec.Origin.vec3(), normal, id)
	}

	var spinning []spinningMesh
	for i, spec := range f.Meshes {
		id, err := lookup(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		mesh, err := spec.build(baseDir, id)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		s.AddMesh(mesh)
		if spec.SpinY != 0 {
			spinning = append(spinning, spinningMesh{mesh: mesh, baseYaw: degrees(spec.RotateY), speed: degrees(spec.SpinY)})
		}
	}
	if len(spinning) > 0 {
		s.SetUpdate(func(s *Scene, totalSeconds float64) {
			for _, m := range spinning {
				m.mesh.RotateY(m.baseYaw + m.speed*totalSeconds)
				m.mesh.UpdateTransforms()
			}
		})
	}

	for i, spec := range f.Lights {
		if err := spec.add(s); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}

	return s, nil
}

type spinningMesh struct {
	mesh    *geometry.TriangleMesh
	baseYaw float64
	speed   float64
}

func (spec MaterialSpec) build() (material.Material, error) {
	kd := 1.0
	if spec.Kd != nil {
		kd = *spec.Kd
	}
	color := spec.Color.vec3()

	switch strings.ToLower(spec.Type) {
	case "solid", "solidcolor":
		return material.NewSolidColor(color), nil
	case "lambert", "lambertian", "":
		return material.NewLambertian(color, kd), nil
	case "lambertphong", "phong":
		return material.NewLambertPhong(color, kd, spec.Ks, spec.Exponent), nil
	case "cooktorrance":
		if spec.Roughness < 0 || spec.Roughness > 1 {
			return nil, fmt.Errorf("roughness must be in [0,1], got %g", spec.Roughness)
		}
		if spec.Metalness < 0 || spec.Metalness > 1 {
			return nil, fmt.Errorf("metalness must be in [0,1], got %g", spec.Metalness)
		}
		return material.NewCookTorrance(color, spec.Metalness, spec.Roughness), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", spec.Type)
	}
}

func (spec MeshSpec) build(baseDir string, materialID geometry.MaterialID) (*geometry.TriangleMesh, error) {
	cullMode, err := geometry.ParseCullMode(spec.CullMode)
	if err != nil {
		return nil, err
	}

	var mesh *geometry.TriangleMesh
	switch {
	case spec.File != "" && len(spec.Positions) > 0:
		return nil, fmt.Errorf("use either file or positions, not both")
	case spec.File != "":
		path := spec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := loaders.LoadMesh(path)
		if err != nil {
			return nil, err
		}
		mesh = geometry.NewTriangleMesh(data.Positions, data.Normals, data.Indices, cullMode, materialID)
	default:
		positions := make([]core.Vec3, len(spec.Positions))
		for i, p := range spec.Positions {
			positions[i] = p.vec3()
		}
		mesh = geometry.NewTriangleMesh(positions, nil, spec.Indices, cullMode, materialID)
	}

	if spec.Scale != nil {
		mesh.Scale(spec.Scale.vec3())
	}
	mesh.RotateY(degrees(spec.RotateY))
	mesh.Translate(spec.Translate.vec3())
	mesh.UpdateTransforms()
	return mesh, nil
}

func (spec LightSpec) add(s *Scene) error {
	lightType, err := lights.ParseLightType(strings.ToLower(spec.Type))
	if err != nil {
		return err
	}
	if spec.Intensity <= 0 {
		return fmt.Errorf("intensity must be positive, got %g", spec.Intensity)
	}
	color := core.ColorWhite
	if spec.Color != nil {
		color = spec.Color.vec3()
	}

	switch lightType {
	case lights.LightTypeDirectional:
		direction := spec.Direction.vec3()
		if direction.LengthSquared() == 0 {
			return fmt.Errorf("directional light needs a direction")
		}
		s.AddDirectionalLight(direction, spec.Intensity, color)
	default:
		s.AddPointLight(spec.Origin.vec3(), spec.Intensity, color)
	}
	return nil
}
