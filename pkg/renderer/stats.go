package renderer

import (
	"fmt"
	"image"
	"time"
)

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Width        int           // Frame width in pixels
	Height       int           // Frame height in pixels
	TotalPixels  int           // Total number of pixels rendered
	HitPixels    int           // Pixels whose primary ray hit geometry
	Workers      int           // Pixel ranges the frame was split into
	LightingMode LightingMode  // Lighting mode used for the frame
	Shadows      bool          // Whether shadow rays were cast
	Duration     time.Duration // Wall time from first ray to present
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

func (s RenderStats) String() string {
	return fmt.Sprintf("Rendered %dx%d (%s, shadows=%v) with %d workers in %v, %.1f%% coverage",
		s.Width, s.Height, s.LightingMode, s.Shadows, s.Workers, s.Duration.Round(time.Microsecond), s.Coverage()*100)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(count)
}
