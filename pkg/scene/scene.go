package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LightID is a stable handle to a light in a scene
type LightID int

// UpdateFunc animates a scene; totalSeconds is the time since the animation started
type UpdateFunc func(s *Scene, totalSeconds float64)

// Scene owns all geometry, lights and materials of a render session.
// Geometry refers to materials only through geometry.MaterialID handles.
type Scene struct {
	Name     string
	Camera   *geometry.Camera
	Settings RenderSettings

	spheres   []geometry.Sphere
	planes    []geometry.Plane
	meshes    []*geometry.TriangleMesh
	lights    []lights.Light
	materials []material.Material

	update UpdateFunc
}

// RenderSettings are the render defaults a scene asks for. Zero values mean
// "use the renderer default".
type RenderSettings struct {
	Width        int
	Height       int
	LightingMode string
	Shadows      *bool
}

// NewScene creates an empty scene whose material 0 is a solid red fallback
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		Camera:    geometry.NewCamera(core.Vec3{}, 90),
		materials: []material.Material{material.NewSolidColor(core.ColorRed)},
	}
}

// AddSphere adds a sphere and returns its index
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialID geometry.MaterialID) int {
	s.spheres = append(s.spheres, *geometry.NewSphere(center, radius, materialID))
	return len(s.spheres) - 1
}

// AddPlane adds a plane and returns its index
func (s *Scene) AddPlane(origin, normal core.Vec3, materialID geometry.MaterialID) int {
	s.planes = append(s.planes, *geometry.NewPlane(origin, normal, materialID))
	return len(s.planes) - 1
}

// AddTriangleMesh adds an empty mesh to be filled with AppendTriangle. The
// returned pointer stays valid for the lifetime of the scene.
func (s *Scene) AddTriangleMesh(cullMode geometry.CullMode, materialID geometry.MaterialID) *geometry.TriangleMesh {
	return s.AddMesh(geometry.NewTriangleMesh(nil, nil, nil, cullMode, materialID))
}

// AddMesh adds an existing mesh to the scene
func (s *Scene) AddMesh(mesh *geometry.TriangleMesh) *geometry.TriangleMesh {
	s.meshes = append(s.meshes, mesh)
	return mesh
}

// AddMeshData adds an imported mesh to the scene
func (s *Scene) AddMeshData(data *loaders.MeshData, cullMode geometry.CullMode, materialID geometry.MaterialID) *geometry.TriangleMesh {
	return s.AddMesh(geometry.NewTriangleMesh(data.Positions, data.Normals, data.Indices, cullMode, materialID))
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(origin core.Vec3, intensity float64, color core.Vec3) LightID {
	s.lights = append(s.lights, lights.NewPointLight(origin, intensity, color))
	return LightID(len(s.lights) - 1)
}

// AddDirectionalLight adds a light travelling along direction
func (s *Scene) AddDirectionalLight(direction core.Vec3, intensity float64, color core.Vec3) LightID {
	s.lights = append(s.lights, lights.NewDirectionalLight(direction, intensity, color))
	return LightID(len(s.lights) - 1)
}

// AddMaterial takes ownership of m and returns its handle
func (s *Scene) AddMaterial(m material.Material) geometry.MaterialID {
	s.materials = append(s.materials, m)
	return geometry.MaterialID(len(s.materials) - 1)
}

// Material returns the material for id, or the default material for an
// unknown id.
func (s *Scene) Material(id geometry.MaterialID) material.Material {
	if id < 0 || int(id) >= len(s.materials) {
		return s.materials[geometry.DefaultMaterialID]
	}
	return s.materials[id]
}

// MaterialCount returns the number of materials including the default
func (s *Scene) MaterialCount() int {
	return len(s.materials)
}

// Lights returns the scene lights in insertion order
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// Spheres returns the scene spheres
func (s *Scene) Spheres() []geometry.Sphere {
	return s.spheres
}

// Planes returns the scene planes
func (s *Scene) Planes() []geometry.Plane {
	return s.planes
}

// Meshes returns the scene meshes
func (s *Scene) Meshes() []*geometry.TriangleMesh {
	return s.meshes
}

// GetPrimitiveCount returns the number of spheres, planes and mesh triangles
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.spheres) + len(s.planes)
	for _, mesh := range s.meshes {
		count += mesh.TriangleCount()
	}
	return count
}

// GetClosestHit returns the nearest hit along the ray, scanning spheres,
// planes and then meshes. DidHit is false when nothing lies in the interval.
func (s *Scene) GetClosestHit(ray core.Ray) geometry.HitRecord {
	var closest geometry.HitRecord
	bounded := ray

	for i := range s.spheres {
		if s.spheres[i].Hit(bounded, &closest) {
			bounded.Max = closest.T
		}
	}
	for i := range s.planes {
		if s.planes[i].Hit(bounded, &closest) {
			bounded.Max = closest.T
		}
	}
	for _, mesh := range s.meshes {
		if mesh.Hit(bounded, &closest) {
			bounded.Max = closest.T
		}
	}

	return closest
}

// DoesHit reports whether anything blocks the ray inside its interval
func (s *Scene) DoesHit(ray core.Ray) bool {
	for i := range s.spheres {
		if s.spheres[i].HitAny(ray) {
			return true
		}
	}
	for i := range s.planes {
		if s.planes[i].HitAny(ray) {
			return true
		}
	}
	for _, mesh := range s.meshes {
		if mesh.HitAny(ray) {
			return true
		}
	}
	return false
}

// SetUpdate installs the animation callback run by Update
func (s *Scene) SetUpdate(update UpdateFunc) {
	s.update = update
}

// Update advances scene animation to totalSeconds. Scenes without an
// animation are left unchanged.
func (s *Scene) Update(totalSeconds float64) {
	if s.update != nil {
		s.update(s, totalSeconds)
	}
}
