package math3d

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB color. Channels are nominally in [0, 1] but may
// exceed that range until output.
type Color struct {
	R, G, B float64
}

// RGB creates a new Color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Black returns (0, 0, 0).
func Black() Color {
	return Color{}
}

// White returns (1, 1, 1).
func White() Color {
	return Color{1, 1, 1}
}

// ParseHex parses a "#rrggbb" or "#rgb" color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{c.R, c.G, c.B}, nil
}

// Colorful converts the color to a go-colorful color for further conversions.
func (a Color) Colorful() colorful.Color {
	return colorful.Color{R: a.R, G: a.G, B: a.B}
}

// Add returns the channel-wise sum.
func (a Color) Add(b Color) Color {
	return Color{a.R + b.R, a.G + b.G, a.B + b.B}
}

// Sub returns the channel-wise difference.
func (a Color) Sub(b Color) Color {
	return Color{a.R - b.R, a.G - b.G, a.B - b.B}
}

// Scale returns every channel multiplied by s.
func (a Color) Scale(s float64) Color {
	return Color{a.R * s, a.G * s, a.B * s}
}

// Mul returns the Hadamard (channel-wise) product, used for blending a
// surface color with a light's intensity.
func (a Color) Mul(b Color) Color {
	return Color{a.R * b.R, a.G * b.G, a.B * b.B}
}

// Equal reports whether all channels are within Epsilon.
func (a Color) Equal(b Color) bool {
	return ApproxEqual(a.R, b.R) && ApproxEqual(a.G, b.G) && ApproxEqual(a.B, b.B)
}

// Clamp returns the color with every channel limited to [0, 1].
func (a Color) Clamp() Color {
	return Color{
		math.Max(0, math.Min(1, a.R)),
		math.Max(0, math.Min(1, a.G)),
		math.Max(0, math.Min(1, a.B)),
	}
}

// RGBA8 returns the color as 8-bit channels using the output scaling rule:
// values at or below 0 map to 0, values at or above 1 map to 255, anything
// in between is scaled by 255 and rounded up.
func (a Color) RGBA8() (r, g, b uint8) {
	return channel8(a.R), channel8(a.G), channel8(a.B)
}

func channel8(v float64) uint8 {
	x := v * 255
	switch {
	case x >= 255:
		return 255
	case x <= 0:
		return 0
	default:
		return uint8(math.Ceil(x))
	}
}
