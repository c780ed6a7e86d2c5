package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/spheretrace/pkg/math3d"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(10, 20)
	if c.Width != 10 || c.Height != 20 {
		t.Errorf("NewCanvas(10, 20) size = %dx%d", c.Width, c.Height)
	}
	for i, p := range c.Pixels {
		if !p.Equal(math3d.Black()) {
			t.Fatalf("pixel %d = %v, want black", i, p)
		}
	}
}

func TestCanvasPixels(t *testing.T) {
	c := NewCanvas(10, 20)
	red := math3d.RGB(1, 0, 0)
	c.SetPixel(2, 3, red)

	if got := c.PixelAt(2, 3); !got.Equal(red) {
		t.Errorf("PixelAt(2, 3) = %v, want %v", got, red)
	}

	// Out-of-range writes are ignored and reads return black.
	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 20}} {
		c.SetPixel(p[0], p[1], red)
		if got := c.PixelAt(p[0], p[1]); !got.Equal(math3d.Black()) {
			t.Errorf("PixelAt(%d, %d) = %v, want black", p[0], p[1], got)
		}
	}

	c.Clear(red)
	if got := c.PixelAt(9, 19); !got.Equal(red) {
		t.Errorf("after Clear, PixelAt(9, 19) = %v, want %v", got, red)
	}
}

func TestCanvasToImage(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetPixel(0, 0, math3d.RGB(1.5, 0.5, -1))

	img := c.ToImage()
	if got, want := img.RGBAAt(0, 0), (color.RGBA{255, 128, 0, 255}); got != want {
		t.Errorf("RGBAAt(0, 0) = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(1, 0), (color.RGBA{0, 0, 0, 255}); got != want {
		t.Errorf("RGBAAt(1, 0) = %v, want %v", got, want)
	}
}

func TestCanvasSave(t *testing.T) {
	dir := t.TempDir()
	c := NewCanvas(3, 2)
	c.Clear(math3d.RGB(0, 1, 0))

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "out.PNG")
		if err := c.Save(path, false); err != nil {
			t.Fatalf("Save: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
			t.Errorf("image size = %dx%d, want 3x2", b.Dx(), b.Dy())
		}
	})

	t.Run("ppm", func(t *testing.T) {
		path := filepath.Join(dir, "out.ppm")
		if err := c.Save(path, false); err != nil {
			t.Fatalf("Save: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "P3\n3 2\n255\n") {
			t.Errorf("unexpected header in %q", data)
		}
	})

	t.Run("binary ppm", func(t *testing.T) {
		path := filepath.Join(dir, "raw.ppm")
		if err := c.Save(path, true); err != nil {
			t.Fatalf("Save: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("P6\n3 2\n255\n")) {
			t.Errorf("unexpected header in %q", data)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		err := c.Save(filepath.Join(dir, "out.bmp"), false)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Save(.bmp) error = %v, want ErrUnsupportedFormat", err)
		}
	})
}
