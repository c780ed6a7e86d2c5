// Package scene holds the shapes and light of a renderable world and answers
// the question every pixel asks: what color is seen along this ray.
package scene

import (
	"fmt"
	"iter"

	"github.com/taigrr/spheretrace/pkg/geometry"
	"github.com/taigrr/spheretrace/pkg/math3d"
	"github.com/taigrr/spheretrace/pkg/shading"
)

// Handle refers to a shape stored in a Scene. Handles are dense indices in
// insertion order and are never reused.
type Handle int

// Kind identifies the variant held by a Shape.
type Kind uint8

const (
	KindNone Kind = iota
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	default:
		return "none"
	}
}

// Shape is a closed union over the supported primitives. Only spheres exist
// today; new kinds add a case to each method rather than a new interface.
type Shape struct {
	kind   Kind
	sphere geometry.Sphere
}

// SphereShape wraps s as a Shape.
func SphereShape(s geometry.Sphere) Shape {
	return Shape{kind: KindSphere, sphere: s}
}

// Kind returns the variant held by the shape.
func (s Shape) Kind() Kind {
	return s.kind
}

// Sphere returns the sphere variant, if that is what the shape holds.
func (s Shape) Sphere() (geometry.Sphere, bool) {
	return s.sphere, s.kind == KindSphere
}

// Intersect returns where r crosses the shape, in ascending t.
func (s Shape) Intersect(r geometry.Ray) geometry.Intersections {
	switch s.kind {
	case KindSphere:
		return s.sphere.Intersect(r)
	default:
		return nil
	}
}

// NormalAt returns the world-space unit normal at a point on the shape.
func (s Shape) NormalAt(p math3d.Tuple) math3d.Tuple {
	switch s.kind {
	case KindSphere:
		return s.sphere.NormalAt(p)
	default:
		return math3d.Vector(0, 0, 0)
	}
}

// Material returns the shape's surface material.
func (s Shape) Material() shading.Material {
	switch s.kind {
	case KindSphere:
		return s.sphere.Material()
	default:
		return shading.Material{}
	}
}

func (s Shape) transform() math3d.Mat4 {
	switch s.kind {
	case KindSphere:
		return s.sphere.Transform()
	default:
		return math3d.Mat4{}
	}
}

// Scene is an arena of shapes lit by a single point light.
//
// A Scene is safe for concurrent reads once it is fully built. Adding
// shapes or changing the light while a render is in flight is a data race.
type Scene struct {
	shapes     []Shape
	light      shading.PointLight
	background math3d.Color
}

// New creates an empty scene lit by light with a black background.
func New(light shading.PointLight) *Scene {
	return &Scene{light: light, background: math3d.Black()}
}

// DefaultLight is a white point light above, left, and in front of the
// origin.
func DefaultLight() shading.PointLight {
	return shading.NewPointLight(math3d.Point(-10, 10, -10), math3d.White())
}

// Add stores shape and returns its handle. Shapes whose transform cannot be
// inverted are refused with math3d.ErrNotInvertible.
func (sc *Scene) Add(shape Shape) (Handle, error) {
	if shape.kind == KindNone {
		return -1, fmt.Errorf("add shape: empty shape")
	}
	if !shape.transform().Invertible() {
		return -1, fmt.Errorf("add %s: %w", shape.kind, math3d.ErrNotInvertible)
	}
	sc.shapes = append(sc.shapes, shape)
	return Handle(len(sc.shapes) - 1), nil
}

// AddSphere stores s and returns its handle. A zero-value Sphere carries a
// zero transform and is refused.
func (sc *Scene) AddSphere(s geometry.Sphere) (Handle, error) {
	return sc.Add(SphereShape(s))
}

// Shape returns the shape stored under h.
func (sc *Scene) Shape(h Handle) (Shape, bool) {
	if h < 0 || int(h) >= len(sc.shapes) {
		return Shape{}, false
	}
	return sc.shapes[h], true
}

// Shapes iterates over every shape in insertion order.
func (sc *Scene) Shapes() iter.Seq2[Handle, Shape] {
	return func(yield func(Handle, Shape) bool) {
		for i, s := range sc.shapes {
			if !yield(Handle(i), s) {
				return
			}
		}
	}
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	return len(sc.shapes)
}

// Light returns the scene's light.
func (sc *Scene) Light() shading.PointLight {
	return sc.light
}

// SetLight replaces the scene's light.
func (sc *Scene) SetLight(l shading.PointLight) {
	sc.light = l
}

// Background returns the color seen by rays that miss everything.
func (sc *Scene) Background() math3d.Color {
	return sc.background
}

// SetBackground sets the color seen by rays that miss everything.
func (sc *Scene) SetBackground(c math3d.Color) {
	sc.background = c
}

// Intersect returns every intersection of r with every shape, sorted by
// ascending t.
func (sc *Scene) Intersect(r geometry.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, s := range sc.shapes {
		xs = append(xs, s.Intersect(r)...)
	}
	xs.Sort()
	return xs
}

// Hit returns the nearest visible intersection along r.
func (sc *Scene) Hit(r geometry.Ray) (geometry.Intersection, bool) {
	var (
		best  geometry.Intersection
		found bool
	)
	for _, s := range sc.shapes {
		if h, ok := s.Intersect(r).Hit(); ok && (!found || h.T < best.T) {
			best, found = h, true
		}
	}
	return best, found
}

// ColorAt shades the nearest visible surface along r, or returns the
// background when r hits nothing. The result is not clamped.
func (sc *Scene) ColorAt(r geometry.Ray) math3d.Color {
	hit, ok := sc.Hit(r)
	if !ok {
		return sc.background
	}

	point := r.Position(hit.T)
	normal := hit.Object.NormalAt(point)
	eye := r.Direction.Negate().Normalize()

	return shading.Lighting(hit.Object.Material(), sc.light, point, eye, normal)
}
