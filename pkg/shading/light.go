package shading

import (
	"math"

	"github.com/taigrr/spheretrace/pkg/math3d"
)

// PointLight is an idealized light source with no size.
type PointLight struct {
	Position  math3d.Tuple
	Intensity math3d.Color
}

// NewPointLight creates a new PointLight.
func NewPointLight(position math3d.Tuple, intensity math3d.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Lighting shades point on a surface with the Phong model: ambient plus
// diffuse plus specular. eye and normal must be unit vectors. The result is
// not clamped.
func Lighting(m Material, light PointLight, point, eye, normal math3d.Tuple) math3d.Color {
	effective := m.Color.Mul(light.Intensity)
	ambient := effective.Scale(m.Ambient)

	lightVec := light.Position.Sub(point).Normalize()
	lightDotNormal := lightVec.Dot(normal)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface.
		return ambient
	}

	diffuse := effective.Scale(m.Diffuse * lightDotNormal)

	reflectVec := lightVec.Negate().Reflect(normal)
	reflectDotEye := reflectVec.Dot(eye)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}

	factor := math.Pow(reflectDotEye, m.Shininess)
	specular := light.Intensity.Scale(m.Specular * factor)

	return ambient.Add(diffuse).Add(specular)
}
