package geometry

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/taigrr/spheretrace/pkg/math3d"
	"github.com/taigrr/spheretrace/pkg/shading"
)

var nextSphereID atomic.Uint64

// Sphere is a unit sphere centered at the origin of its object space.
// Its world-space position, size, and orientation come entirely from its
// transform.
//
// Spheres are values; copies share the same ID and compare equal.
type Sphere struct {
	id        uint64
	transform math3d.Mat4
	inverse   math3d.Mat4
	material  shading.Material
}

// NewSphere creates a sphere with the identity transform, the default
// material, and a fresh ID.
func NewSphere() Sphere {
	return Sphere{
		id:        nextSphereID.Add(1),
		transform: math3d.Identity(),
		inverse:   math3d.Identity(),
		material:  shading.DefaultMaterial(),
	}
}

// ID returns the sphere's identity. IDs are unique within the process.
func (s Sphere) ID() uint64 {
	return s.id
}

// Equal reports whether both values are the same sphere.
func (s Sphere) Equal(o Sphere) bool {
	return s.id == o.id
}

// Transform returns the object-to-world transform.
func (s Sphere) Transform() math3d.Mat4 {
	return s.transform
}

// Inverse returns the cached world-to-object transform.
func (s Sphere) Inverse() math3d.Mat4 {
	return s.inverse
}

// SetTransform sets the object-to-world transform. A singular matrix is
// rejected with math3d.ErrNotInvertible and leaves the sphere unchanged.
func (s *Sphere) SetTransform(m math3d.Mat4) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("sphere %d: %w", s.id, err)
	}
	s.transform = m
	s.inverse = inv
	return nil
}

// Material returns the surface material.
func (s Sphere) Material() shading.Material {
	return s.material
}

// SetMaterial sets the surface material.
func (s *Sphere) SetMaterial(m shading.Material) {
	s.material = m
}

// Intersect returns where r crosses the sphere.
//
// The ray is moved into object space and solved against the unit sphere.
// A miss yields no intersections; a tangent ray yields the same t twice;
// otherwise the two roots are returned in ascending order. Roots behind the
// ray origin are included.
func (s Sphere) Intersect(r Ray) Intersections {
	r = r.Transform(s.inverse)

	sphereToRay := r.Origin.Sub(math3d.Origin())
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	switch {
	case discriminant < 0:
		return Intersections{}
	case discriminant == 0:
		t := -b / (2 * a)
		return Intersections{{T: t, Object: s}, {T: t, Object: s}}
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return Intersections{{T: t1, Object: s}, {T: t2, Object: s}}
}

// NormalAt returns the world-space surface normal at a world-space point on
// the sphere.
func (s Sphere) NormalAt(worldPoint math3d.Tuple) math3d.Tuple {
	objectPoint := s.inverse.MulTuple(worldPoint)
	objectNormal := objectPoint.Sub(math3d.Origin())

	// The inverse transpose keeps normals perpendicular under non-uniform
	// scaling.
	worldNormal := s.inverse.Transpose().MulTuple(objectNormal)

	// Translation in the transform leaks into w.
	worldNormal.W = 0
	return worldNormal.Normalize()
}

// Intersect returns where r crosses s. See Sphere.Intersect.
func Intersect(r Ray, s Sphere) Intersections {
	return s.Intersect(r)
}

// NormalAt returns the normal of s at worldPoint. See Sphere.NormalAt.
func NormalAt(s Sphere, worldPoint math3d.Tuple) math3d.Tuple {
	return s.NormalAt(worldPoint)
}
