package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	// shadowOffset lifts shadow ray origins off the surface along the normal
	shadowOffset = 0.001
	// shadowRayMin is the lower bound of the shadow ray interval
	shadowRayMin = 1e-4
)

// Scene interface to avoid circular imports
type Scene interface {
	GetClosestHit(ray core.Ray) geometry.HitRecord
	DoesHit(ray core.Ray) bool
	Lights() []lights.Light
	Material(id geometry.MaterialID) material.Material
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Renderer turns a scene and camera into packed pixels on a Surface. A single
// Renderer may serve concurrent Render calls.
type Renderer struct {
	pool   *WorkerPool
	logger core.Logger
}

// NewRenderer creates a renderer backed by a pool of numWorkers goroutines. A
// nil logger discards output.
func NewRenderer(numWorkers int, logger core.Logger) *Renderer {
	return &Renderer{
		pool:   NewWorkerPool(numWorkers),
		logger: logger,
	}
}

// Frame holds the per-frame camera state used to generate primary rays. It is
// immutable once BeginFrame returns.
type Frame struct {
	Width         int
	Height        int
	aspect        float64
	fovMultiplier float64
	origin        core.Vec3
	cameraToWorld core.Matrix
}

// BeginFrame captures the camera for a width x height frame
func BeginFrame(camera *geometry.Camera, width, height int) Frame {
	return Frame{
		Width:         width,
		Height:        height,
		aspect:        float64(width) / float64(height),
		fovMultiplier: camera.FovMultiplier(),
		origin:        camera.Origin,
		cameraToWorld: camera.CameraToWorld(),
	}
}

// GenerateRay returns the primary ray through the center of pixel px, py
func (f Frame) GenerateRay(px, py int) core.Ray {
	x := (2*(float64(px)+0.5)/float64(f.Width) - 1) * f.aspect * f.fovMultiplier
	y := (1 - 2*(float64(py)+0.5)/float64(f.Height)) * f.fovMultiplier

	direction := core.NewVec3(x, y, 1).Normalize()
	direction = core.TransformVector(f.cameraToWorld, direction).Normalize()
	return core.NewRay(f.origin, direction)
}

// Render draws one frame of scene seen through camera into surface and
// presents it. config is read once; the scene and camera must not change
// until Render returns.
func (r *Renderer) Render(scene Scene, camera *geometry.Camera, surface Surface, config RenderConfig) (RenderStats, error) {
	start := time.Now()
	width, height := surface.Width(), surface.Height()
	pixels := surface.Pixels()
	if width <= 0 || height <= 0 {
		return RenderStats{}, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return RenderStats{}, fmt.Errorf("surface has %d pixels, want %d", len(pixels), width*height)
	}

	frame := BeginFrame(camera, width, height)
	shader := pixelShader{scene: scene, config: config, lights: scene.Lights()}

	workers := config.NumWorkers
	if workers <= 0 {
		workers = r.pool.GetNumWorkers()
	}
	ranges := Partition(width*height, workers)
	hits := make([]int, len(ranges))

	renderRange := func(index int, pr PixelRange) {
		for i := pr.Start; i < pr.End; i++ {
			color, hit := shader.shade(frame.GenerateRay(i%width, i/width))
			pixels[i] = PackColor(color)
			if hit {
				hits[index]++
			}
		}
	}

	if len(ranges) == 1 {
		renderRange(0, ranges[0])
	} else {
		r.pool.Run(ranges, renderRange)
	}

	stats := RenderStats{
		Width:        width,
		Height:       height,
		TotalPixels:  width * height,
		Workers:      len(ranges),
		LightingMode: config.LightingMode,
		Shadows:      config.ShadowsEnabled,
	}
	for _, h := range hits {
		stats.HitPixels += h
	}
	stats.Duration = time.Since(start)

	if err := EndFrame(surface); err != nil {
		return stats, err
	}
	if r.logger != nil {
		r.logger.Printf("%s\n", stats)
	}
	return stats, nil
}

// EndFrame presents the finished frame
func EndFrame(surface Surface) error {
	if err := surface.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// Shade returns the color seen along ray under config and whether the ray hit
// anything
func Shade(scene Scene, ray core.Ray, config RenderConfig) (core.Vec3, bool) {
	return pixelShader{scene: scene, config: config, lights: scene.Lights()}.shade(ray)
}

// ShadowRay returns the occlusion ray from a hit towards light. It starts just
// off the surface and ends at the light.
func ShadowRay(hit geometry.HitRecord, light lights.Light) core.Ray {
	origin := hit.Point.Add(hit.Normal.Multiply(shadowOffset))
	direction, distance := light.DirectionTo(origin)
	return core.NewBoundedRay(origin, direction, shadowRayMin, distance)
}

// pixelShader evaluates the lighting of a single primary ray
type pixelShader struct {
	scene  Scene
	config RenderConfig
	lights []lights.Light
}

// shade returns the color seen along ray and whether it hit anything
func (ps pixelShader) shade(ray core.Ray) (core.Vec3, bool) {
	hit := ps.scene.GetClosestHit(ray)
	if !hit.DidHit {
		return core.Vec3{}, false
	}

	mat := ps.scene.Material(hit.MaterialID)

	var color core.Vec3
	for _, light := range ps.lights {
		shadowRay := ShadowRay(hit, light)
		if ps.config.ShadowsEnabled && ps.scene.DoesHit(shadowRay) {
			continue
		}
		lightDir := shadowRay.Direction

		observedArea := max(0, lightDir.Dot(hit.Normal))

		switch ps.config.LightingMode {
		case ObservedArea:
			if observedArea > 0 {
				color = color.Add(core.ColorWhite.Multiply(observedArea))
			}
		case Radiance:
			color = color.Add(light.Radiance(hit.Point))
		case BRDF:
			color = color.Add(mat.Shade(hit, lightDir, ray.Direction))
		default:
			if observedArea > 0 {
				radiance := light.Radiance(hit.Point)
				brdf := mat.Shade(hit, lightDir, ray.Direction)
				color = color.Add(radiance.Multiply(observedArea).MultiplyVec(brdf))
			}
		}
	}

	return color.MaxToOne(), true
}
