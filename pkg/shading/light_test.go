package shading

import (
	"math"
	"testing"

	"github.com/taigrr/spheretrace/pkg/math3d"
)

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()

	if !m.Color.Equal(math3d.White()) {
		t.Errorf("Color = %v, want white", m.Color)
	}
	if m.Ambient != 0.1 || m.Diffuse != 0.9 || m.Specular != 0.9 || m.Shininess != 200 {
		t.Errorf("DefaultMaterial() = %+v, want ambient 0.1, diffuse 0.9, specular 0.9, shininess 200", m)
	}
}

func TestMaterialWithColor(t *testing.T) {
	m := DefaultMaterial().WithColor(math3d.RGB(1, 0.2, 1))
	if !m.Color.Equal(math3d.RGB(1, 0.2, 1)) {
		t.Errorf("WithColor() color = %v", m.Color)
	}
	if m.Shininess != 200 {
		t.Errorf("WithColor() should keep other fields, shininess = %v", m.Shininess)
	}
}

func TestNewPointLight(t *testing.T) {
	pos := math3d.Point(0, 0, 0)
	intensity := math3d.White()
	light := NewPointLight(pos, intensity)

	if !light.Position.Equal(pos) || !light.Intensity.Equal(intensity) {
		t.Errorf("NewPointLight() = %+v", light)
	}
}

func TestLighting(t *testing.T) {
	m := DefaultMaterial()
	position := math3d.Point(0, 0, 0)
	normal := math3d.Vector(0, 0, -1)
	h := math.Sqrt2 / 2

	tests := []struct {
		name  string
		eye   math3d.Tuple
		light math3d.Tuple
		want  math3d.Color
	}{
		{"eye between light and surface", math3d.Vector(0, 0, -1), math3d.Point(0, 0, -10), math3d.RGB(1.9, 1.9, 1.9)},
		{"eye offset 45 degrees", math3d.Vector(0, h, -h), math3d.Point(0, 0, -10), math3d.RGB(1.0, 1.0, 1.0)},
		{"light offset 45 degrees", math3d.Vector(0, 0, -1), math3d.Point(0, 10, -10), math3d.RGB(0.7364, 0.7364, 0.7364)},
		{"eye in reflection path", math3d.Vector(0, -h, -h), math3d.Point(0, 10, -10), math3d.RGB(1.6364, 1.6364, 1.6364)},
		{"light behind surface", math3d.Vector(0, 0, -1), math3d.Point(0, 0, 10), math3d.RGB(0.1, 0.1, 0.1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			light := NewPointLight(tc.light, math3d.White())
			got := Lighting(m, light, position, tc.eye, normal)
			if !approxColor(got, tc.want, 1e-4) {
				t.Errorf("Lighting() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLightingBlendsColors(t *testing.T) {
	m := DefaultMaterial().WithColor(math3d.RGB(1, 0.5, 0))
	light := NewPointLight(math3d.Point(0, 0, 10), math3d.RGB(0.5, 1, 1))

	// Light behind the surface: only ambient, which is color * intensity * 0.1.
	got := Lighting(m, light, math3d.Point(0, 0, 0), math3d.Vector(0, 0, -1), math3d.Vector(0, 0, -1))
	if want := math3d.RGB(0.05, 0.05, 0); !got.Equal(want) {
		t.Errorf("Lighting() = %v, want %v", got, want)
	}
}

// approxColor compares with a looser tolerance for fixtures rounded to four
// decimal places.
func approxColor(a, b math3d.Color, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}
