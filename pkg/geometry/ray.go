// Package geometry provides rays, spheres, and ray-sphere intersection.
package geometry

import "github.com/taigrr/spheretrace/pkg/math3d"

// Ray is a half-line starting at Origin (a point) and travelling along
// Direction (a vector).
type Ray struct {
	Origin    math3d.Tuple
	Direction math3d.Tuple
}

// NewRay creates a new Ray. The direction must not be the zero vector.
func NewRay(origin, direction math3d.Tuple) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t: origin + direction * t.
func (r Ray) Position(t float64) math3d.Tuple {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray with m applied to its origin and direction.
// The direction is not renormalized, so t values stay comparable across
// spaces.
func (r Ray) Transform(m math3d.Mat4) Ray {
	return Ray{
		Origin:    m.MulTuple(r.Origin),
		Direction: m.MulTuple(r.Direction),
	}
}
