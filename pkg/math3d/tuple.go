// Package math3d provides the homogeneous tuple, color, and matrix math used
// by the spheretrace renderer.
package math3d

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by every approximate comparison in the
// package.
const Epsilon = 1e-5

// ApproxEqual reports whether a and b differ by less than Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Tuple is a homogeneous 3D coordinate.
// W is 1 for points and 0 for vectors.
type Tuple struct {
	X, Y, Z, W float64
}

// T creates a Tuple from raw components.
func T(x, y, z, w float64) Tuple {
	return Tuple{x, y, z, w}
}

// Point creates a point (w=1).
func Point(x, y, z float64) Tuple {
	return Tuple{x, y, z, 1}
}

// Vector creates a vector (w=0).
func Vector(x, y, z float64) Tuple {
	return Tuple{x, y, z, 0}
}

// Origin returns the point (0, 0, 0).
func Origin() Tuple {
	return Point(0, 0, 0)
}

// IsPoint reports whether the tuple is a point.
func (t Tuple) IsPoint() bool {
	return t.W == 1
}

// IsVector reports whether the tuple is a vector.
func (t Tuple) IsVector() bool {
	return t.W == 0
}

// Add returns a + b.
// A point plus a vector is a point; two vectors sum to a vector.
//
//nolint:st1016 // a+b naming convention is clearer for tuple operations
func (a Tuple) Add(b Tuple) Tuple {
	return Tuple{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns a - b.
// The difference of two points is a vector.
//
//nolint:st1016 // a-b naming convention is clearer for tuple operations
func (a Tuple) Sub(b Tuple) Tuple {
	return Tuple{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Negate returns -t.
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Scale returns the scalar product t * s.
func (t Tuple) Scale(s float64) Tuple {
	return Tuple{t.X * s, t.Y * s, t.Z * s, t.W * s}
}

// Div returns the scalar division t / s.
func (t Tuple) Div(s float64) Tuple {
	return Tuple{t.X / s, t.Y / s, t.Z / s, t.W / s}
}

// Dot returns the dot product over all four components.
//
//nolint:st1016 // a·b naming convention is clearer for tuple operations
func (a Tuple) Dot(b Tuple) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Cross returns the cross product a × b as a vector. W is ignored.
//
//nolint:st1016 // a×b naming convention is clearer for tuple operations
func (a Tuple) Cross(b Tuple) Tuple {
	return Vector(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

// Magnitude returns the length of the tuple.
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize returns the unit tuple in the same direction.
// The zero vector has no direction; callers must not normalize it.
func (t Tuple) Normalize() Tuple {
	return t.Div(t.Magnitude())
}

// Reflect returns the reflection of t around normal n.
func (t Tuple) Reflect(n Tuple) Tuple {
	return t.Sub(n.Scale(2 * t.Dot(n)))
}

// Equal reports whether all four components are within Epsilon.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Tuple) Equal(b Tuple) bool {
	return ApproxEqual(a.X, b.X) &&
		ApproxEqual(a.Y, b.Y) &&
		ApproxEqual(a.Z, b.Z) &&
		ApproxEqual(a.W, b.W)
}

func (t Tuple) String() string {
	switch {
	case t.IsPoint():
		return fmt.Sprintf("point(%g, %g, %g)", t.X, t.Y, t.Z)
	case t.IsVector():
		return fmt.Sprintf("vector(%g, %g, %g)", t.X, t.Y, t.Z)
	default:
		return fmt.Sprintf("tuple(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
	}
}
