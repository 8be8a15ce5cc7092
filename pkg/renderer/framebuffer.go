package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"golang.org/x/image/bmp"
)

// Surface is the presentation target of a frame. Pixels are packed 0x00RRGGBB,
// row-major with the origin at the top left.
type Surface interface {
	Width() int
	Height() int
	Pixels() []uint32
	Present() error
}

// Framebuffer is an in-memory Surface
type Framebuffer struct {
	width  int
	height int
	pixels []uint32
	frames int
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}
}

func (fb *Framebuffer) Width() int       { return fb.width }
func (fb *Framebuffer) Height() int      { return fb.height }
func (fb *Framebuffer) Pixels() []uint32 { return fb.pixels }

// Present counts the frame. There is nothing to flip for an in-memory buffer.
func (fb *Framebuffer) Present() error {
	fb.frames++
	return nil
}

// Frames returns the number of presented frames
func (fb *Framebuffer) Frames() int {
	return fb.frames
}

// At returns the packed pixel at x, y
func (fb *Framebuffer) At(x, y int) uint32 {
	return fb.pixels[y*fb.width+x]
}

// PackColor quantizes a color to 0x00RRGGBB. Channels are clamped to [0,1]
// and truncated, not rounded.
func PackColor(c core.Vec3) uint32 {
	c = c.Clamp(0, 1)
	r := uint32(uint8(c.X * 255))
	g := uint32(uint8(c.Y * 255))
	b := uint32(uint8(c.Z * 255))
	return r<<16 | g<<8 | b
}

// UnpackColor splits a packed pixel into its 8-bit channels
func UnpackColor(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// ToImage converts the framebuffer to an opaque RGBA image
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			r, g, b := UnpackColor(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WriteBMP encodes the framebuffer as an uncompressed bitmap
func (fb *Framebuffer) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, fb.ToImage())
}

// WritePNG encodes the framebuffer as PNG
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.ToImage())
}

// SaveBMP writes the framebuffer to filename as an uncompressed bitmap
func (fb *Framebuffer) SaveBMP(filename string) error {
	return fb.save(filename, fb.WriteBMP)
}

// SavePNG writes the framebuffer to filename as PNG
func (fb *Framebuffer) SavePNG(filename string) error {
	return fb.save(filename, fb.WritePNG)
}

func (fb *Framebuffer) save(filename string, encode func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := encode(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
