package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	MaterialID   int                    `json:"materialId"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        string                 `json:"color"` // Rendered pixel color
	Lights       []LightInfo            `json:"lights"`
	Properties   map[string]interface{} `json:"properties"`
}

// LightInfo describes how one light reaches the inspected point
type LightInfo struct {
	Type         string     `json:"type"`
	Occluded     bool       `json:"occluded"`
	ObservedArea float64    `json:"observedArea"`
	Radiance     [3]float64 `json:"radiance"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	r, g, b := renderer.UnpackColor(renderer.PackColor(c))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.SolidColor:
		properties["color"] = hexColor(m.Color)
		return "solid", properties

	case *material.Lambertian:
		properties["diffuseColor"] = vec(m.DiffuseColor)
		properties["diffuseReflectance"] = m.DiffuseReflectance
		properties["color"] = hexColor(m.DiffuseColor)
		return "lambert", properties

	case *material.LambertPhong:
		properties["diffuseColor"] = vec(m.DiffuseColor)
		properties["diffuseReflectance"] = m.DiffuseReflectance
		properties["specularReflectance"] = m.SpecularReflectance
		properties["phongExponent"] = m.PhongExponent
		properties["color"] = hexColor(m.DiffuseColor)
		return "lambertPhong", properties

	case *material.CookTorrance:
		properties["albedo"] = vec(m.Albedo)
		properties["metalness"] = m.Metalness
		properties["roughness"] = m.Roughness
		properties["baseReflectivity"] = vec(m.BaseReflectivity())
		properties["color"] = hexColor(m.Albedo)
		return "cookTorrance", properties

	default:
		return "unknown", properties
	}
}

// identifyGeometry finds the primitive that produced hit by re-testing each
// one with a ray ending just past the hit distance
func identifyGeometry(sceneObj *scene.Scene, ray core.Ray, hit geometry.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	probe := ray
	probe.Max = hit.T + 0.001

	var rec geometry.HitRecord
	for i, sphere := range sceneObj.Spheres() {
		if sphere.Hit(probe, &rec) && rec.T == hit.T {
			properties["index"] = i
			properties["center"] = vec(sphere.Center)
			properties["radius"] = sphere.Radius
			return "sphere", properties
		}
	}
	for i, plane := range sceneObj.Planes() {
		if plane.Hit(probe, &rec) && rec.T == hit.T {
			properties["index"] = i
			properties["origin"] = vec(plane.Origin)
			properties["normal"] = vec(plane.Normal)
			return "plane", properties
		}
	}
	for i, mesh := range sceneObj.Meshes() {
		if mesh.Hit(probe, &rec) && rec.T == hit.T {
			properties["index"] = i
			properties["triangleCount"] = mesh.TriangleCount()
			properties["cullMode"] = mesh.CullMode.String()
			if bbox, ok := mesh.BoundingBox(); ok {
				properties["boundingBox"] = map[string]interface{}{
					"min":  vec(bbox.Min),
					"max":  vec(bbox.Max),
					"size": vec(bbox.Size()),
				}
			}
			return "triangle_mesh", properties
		}
	}
	return "unknown", properties
}

// inspectPixel casts the primary ray through a pixel and describes what it hits
func inspectPixel(sceneObj *scene.Scene, req *RenderRequest, pixelX, pixelY int) InspectResponse {
	frame := renderer.BeginFrame(sceneObj.Camera, req.Width, req.Height)
	ray := frame.GenerateRay(pixelX, pixelY)

	hit := sceneObj.GetClosestHit(ray)
	if !hit.DidHit {
		return InspectResponse{Hit: false, Color: "#000000"}
	}

	color, _ := renderer.Shade(sceneObj, ray, req.Config)
	materialType, materialProps := extractMaterialInfo(sceneObj.Material(hit.MaterialID))
	geometryType, geometryProps := identifyGeometry(sceneObj, ray, hit)

	lightInfos := make([]LightInfo, 0, len(sceneObj.Lights()))
	for _, light := range sceneObj.Lights() {
		shadowRay := renderer.ShadowRay(hit, light)
		sample := light.Sample(hit.Point)
		lightInfos = append(lightInfos, LightInfo{
			Type:         string(light.Type),
			Occluded:     sceneObj.DoesHit(shadowRay),
			ObservedArea: math.Max(0, shadowRay.Direction.Dot(hit.Normal)),
			Radiance:     vec(sample.Radiance),
		})
	}

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		MaterialID:   int(hit.MaterialID),
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		FrontFace:    ray.Direction.Dot(hit.Normal) < 0,
		Color:        hexColor(color),
		Lights:       lightInfos,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	sceneObj, err := s.loadScene(values.Get("scene"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	req, err := parseRenderRequest(values, sceneObj.Settings)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid y coordinate")
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		return jsonError(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	sceneObj.Update(req.Time)
	return c.JSON(http.StatusOK, inspectPixel(sceneObj, req, pixelX, pixelY))
}
