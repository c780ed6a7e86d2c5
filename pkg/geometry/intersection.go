package geometry

import (
	"cmp"
	"slices"
)

// Intersection records the ray parameter t at which a ray met a sphere.
type Intersection struct {
	T      float64
	Object Sphere
}

// NewIntersection creates a new Intersection.
func NewIntersection(t float64, s Sphere) Intersection {
	return Intersection{T: t, Object: s}
}

// Intersections is a collection of intersections in no particular order.
type Intersections []Intersection

// NewIntersections collects intersections into a list.
func NewIntersections(xs ...Intersection) Intersections {
	return Intersections(xs)
}

// Hit returns the visible intersection: the one with the smallest
// non-negative t. It reports false when every intersection lies behind the
// ray origin or there are none.
func (xs Intersections) Hit() (Intersection, bool) {
	var best Intersection
	found := false
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !found || x.T < best.T {
			best = x
			found = true
		}
	}
	return best, found
}

// Sort orders the intersections by ascending t in place.
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the visible intersection in xs. See Intersections.Hit.
func Hit(xs Intersections) (Intersection, bool) {
	return xs.Hit()
}
