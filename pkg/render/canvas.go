// Package render turns a scene into pixels: the canvas that stores them,
// the projections that produce primary rays, the row-parallel renderer, and
// the PPM, PNG, and terminal outputs.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/spheretrace/pkg/math3d"
)

// ErrUnsupportedFormat is returned by Save for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Canvas is a 2D grid of linear colors. Values are stored unclamped and only
// clamped when written out.
type Canvas struct {
	Width  int
	Height int
	Pixels []math3d.Color // Row-major pixel data
}

// NewCanvas creates a black canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Color, width*height),
	}
}

// Clear fills the canvas with a solid color.
func (c *Canvas) Clear(col math3d.Color) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// SetPixel sets the pixel at (x, y). Out-of-range writes are ignored.
func (c *Canvas) SetPixel(x, y int, col math3d.Color) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y), or black if out of bounds.
func (c *Canvas) PixelAt(x, y int) math3d.Color {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return math3d.Black()
	}
	return c.Pixels[y*c.Width+x]
}

// row returns the pixels of row y. The slice aliases the canvas.
func (c *Canvas) row(y int) []math3d.Color {
	return c.Pixels[y*c.Width : (y+1)*c.Width]
}

// ToImage converts the canvas to an 8-bit image using the PPM channel rule.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, toRGBA(c.Pixels[y*c.Width+x]))
		}
	}
	return img
}

func toRGBA(col math3d.Color) color.RGBA {
	r, g, b := col.RGBA8()
	return color.RGBA{r, g, b, 255}
}

// SavePNG saves the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.ToImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Save writes the canvas to path, choosing the format from the extension:
// .ppm (binary when binary is set) or .png.
func (c *Canvas) Save(path string, binary bool) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return c.SavePPM(path, binary)
	case ".png":
		return c.SavePNG(path)
	default:
		return fmt.Errorf("save %s: %w: %q", path, ErrUnsupportedFormat, ext)
	}
}
