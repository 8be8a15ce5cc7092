package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

const (
	defaultScene  = "sphere"
	defaultWidth  = 400
	defaultHeight = 300
	minSize       = 16
	maxSize       = 2000
	maxWorkers    = 256
	maxTime       = 3600
)

// RenderRequest represents a parsed render request
type RenderRequest struct {
	Width  int                   // Image width
	Height int                   // Image height
	Config renderer.RenderConfig // Lighting mode, shadows and workers
	Time   float64               // Animation time passed to Scene.Update
	Format string                // "png", "bmp" or "json"
}

// RenderResponse is the body of a format=json render
type RenderResponse struct {
	Scene     string `json:"scene"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	TotalPixels  int     `json:"totalPixels"`
	HitPixels    int     `json:"hitPixels"`
	Workers      int     `json:"workers"`
	LightingMode string  `json:"lightingMode"`
	Shadows      bool    `json:"shadows"`
	ElapsedMs    float64 `json:"elapsedMs"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		Width:        rs.Width,
		Height:       rs.Height,
		TotalPixels:  rs.TotalPixels,
		HitPixels:    rs.HitPixels,
		Workers:      rs.Workers,
		LightingMode: rs.LightingMode.String(),
		Shadows:      rs.Shadows,
		ElapsedMs:    float64(rs.Duration.Microseconds()) / 1000,
	}
}

// renderDefaults merges the scene's render settings over the server defaults
func renderDefaults(settings scene.RenderSettings) RenderRequest {
	req := RenderRequest{
		Width:  defaultWidth,
		Height: defaultHeight,
		Config: renderer.DefaultRenderConfig(),
		Format: "png",
	}
	req.Config.NumWorkers = 0 // Use the server pool size

	if settings.Width > 0 {
		req.Width = min(max(settings.Width, minSize), maxSize)
	}
	if settings.Height > 0 {
		req.Height = min(max(settings.Height, minSize), maxSize)
	}
	if mode, err := renderer.ParseLightingMode(settings.LightingMode); err == nil {
		req.Config.LightingMode = mode
	}
	if settings.Shadows != nil {
		req.Config.ShadowsEnabled = *settings.Shadows
	}
	return req
}

// parseRenderRequest parses request parameters on top of the scene defaults
func parseRenderRequest(values url.Values, settings scene.RenderSettings) (*RenderRequest, error) {
	req := renderDefaults(settings)

	var err error
	if req.Width, err = parseIntParam(values, "width", req.Width, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", req.Height, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Config.NumWorkers, err = parseIntParam(values, "workers", req.Config.NumWorkers, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.Time, err = parseFloatParam(values, "t", 0, 0, maxTime); err != nil {
		return nil, err
	}
	if req.Config.ShadowsEnabled, err = parseBoolParam(values, "shadows", req.Config.ShadowsEnabled); err != nil {
		return nil, err
	}
	if mode := values.Get("mode"); mode != "" {
		if req.Config.LightingMode, err = renderer.ParseLightingMode(mode); err != nil {
			return nil, err
		}
	}

	switch format := values.Get("format"); format {
	case "", "png":
		req.Format = "png"
	case "bmp", "json":
		req.Format = format
	default:
		return nil, fmt.Errorf("invalid format: %s (use png, bmp or json)", format)
	}

	return &req, nil
}

// handleRender renders one frame and returns it as an image or JSON
func (s *Server) handleRender(c echo.Context) error {
	values := c.QueryParams()

	sceneObj, err := s.loadScene(values.Get("scene"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	req, err := parseRenderRequest(values, sceneObj.Settings)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	sceneObj.Update(req.Time)
	fb := renderer.NewFramebuffer(req.Width, req.Height)
	renderStats, err := s.renderer.Render(sceneObj, sceneObj.Camera, fb, req.Config)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
	}
	stats := newStats(renderStats)

	header := c.Response().Header()
	header.Set("X-Render-Elapsed-Ms", strconv.FormatFloat(stats.ElapsedMs, 'f', 3, 64))
	header.Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	header.Set("X-Render-Lighting-Mode", stats.LightingMode)

	var buf bytes.Buffer
	switch req.Format {
	case "bmp":
		if err := fb.WriteBMP(&buf); err != nil {
			return jsonError(c, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		}
		return c.Blob(http.StatusOK, "image/bmp", buf.Bytes())
	case "json":
		imageData, err := imageToBase64PNG(fb)
		if err != nil {
			return jsonError(c, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		}
		return c.JSON(http.StatusOK, RenderResponse{Scene: sceneObj.Name, ImageData: imageData, Stats: stats})
	default:
		if err := fb.WritePNG(&buf); err != nil {
			return jsonError(c, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		}
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	}
}

// imageToBase64PNG converts a framebuffer to base64-encoded PNG
func imageToBase64PNG(fb *renderer.Framebuffer) (string, error) {
	var buf bytes.Buffer
	if err := fb.WritePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
