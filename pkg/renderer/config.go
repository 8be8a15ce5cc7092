package renderer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// LightingMode selects which term of the lighting equation is written to the
// framebuffer
type LightingMode int

const (
	ObservedArea LightingMode = iota // Cosine between light direction and normal
	Radiance                         // Light radiance arriving at the hit point
	BRDF                             // Material reflectance alone
	Combined                         // Radiance times observed area times BRDF
)

var lightingModeNames = []string{"observed-area", "radiance", "brdf", "combined"}

// String returns the lighting mode name
func (m LightingMode) String() string {
	if m < 0 || int(m) >= len(lightingModeNames) {
		return fmt.Sprintf("LightingMode(%d)", int(m))
	}
	return lightingModeNames[m]
}

// Next returns the following lighting mode, wrapping after Combined
func (m LightingMode) Next() LightingMode {
	return (m + 1) % LightingMode(len(lightingModeNames))
}

// ParseLightingMode parses a lighting mode name. Case, dashes and underscores
// are ignored.
func ParseLightingMode(s string) (LightingMode, error) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch normalized {
	case "observedarea", "area":
		return ObservedArea, nil
	case "radiance":
		return Radiance, nil
	case "brdf":
		return BRDF, nil
	case "combined", "":
		return Combined, nil
	default:
		return Combined, fmt.Errorf("unknown lighting mode %q (available: %s)", s, strings.Join(lightingModeNames, ", "))
	}
}

// RenderConfig is captured by value at the start of every Render call, so
// toggles made while a frame is in flight only affect the next frame.
type RenderConfig struct {
	LightingMode   LightingMode
	ShadowsEnabled bool
	NumWorkers     int // Parallel workers, 1 renders on the calling goroutine
}

// DefaultRenderConfig returns the combined lighting mode with shadows and one
// worker per logical core
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		LightingMode:   Combined,
		ShadowsEnabled: true,
		NumWorkers:     DefaultWorkerCount(),
	}
}

// ToggleShadows flips shadow casting
func (c *RenderConfig) ToggleShadows() {
	c.ShadowsEnabled = !c.ShadowsEnabled
}

// CycleLightingMode advances to the next lighting mode
func (c *RenderConfig) CycleLightingMode() {
	c.LightingMode = c.LightingMode.Next()
}

// DefaultWorkerCount returns the number of logical cores
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
