// Package shading implements surface materials, point lights, and the Phong
// reflection model.
package shading

import "github.com/taigrr/spheretrace/pkg/math3d"

// Material describes how a surface responds to light under the Phong model.
type Material struct {
	Color     math3d.Color
	Ambient   float64 // Share of the light reaching the surface from everywhere
	Diffuse   float64 // Matte reflection, scaled by the light's incidence
	Specular  float64 // Highlight strength
	Shininess float64 // Highlight tightness; larger is smaller and sharper
}

// DefaultMaterial returns a white material with ambient 0.1, diffuse 0.9,
// specular 0.9, and shininess 200.
func DefaultMaterial() Material {
	return Material{
		Color:     math3d.White(),
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200,
	}
}

// WithColor returns a copy of m with a different surface color.
func (m Material) WithColor(c math3d.Color) Material {
	m.Color = c
	return m
}
