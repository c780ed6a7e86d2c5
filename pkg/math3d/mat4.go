package math3d

import (
	"errors"
	"math"
)

// ErrNotInvertible is returned when inverting a matrix whose determinant is
// exactly zero.
var ErrNotInvertible = errors.New("matrix is not invertible")

// Mat4 is a 4x4 matrix stored in row-major order: m[row][col].
//
// Tuples are treated as columns, so for a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
//
// Composition is multiplication and the rightmost matrix is applied first:
// A.Mul(B).MulTuple(p) transforms p by B, then by A.
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation creates a translation matrix.
func Translation(x, y, z float64) Mat4 {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling creates a scaling matrix.
func Scaling(x, y, z float64) Mat4 {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX creates a rotation matrix around the X axis.
func RotationX(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	m := Identity()
	m[1][1] = c
	m[1][2] = -s
	m[2][1] = s
	m[2][2] = c
	return m
}

// RotationY creates a rotation matrix around the Y axis.
func RotationY(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	m := Identity()
	m[0][0] = c
	m[0][2] = s
	m[2][0] = -s
	m[2][2] = c
	return m
}

// RotationZ creates a rotation matrix around the Z axis.
func RotationZ(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	m := Identity()
	m[0][0] = c
	m[0][1] = -s
	m[1][0] = s
	m[1][1] = c
	return m
}

// Shearing creates a shear matrix. Each argument moves one component in
// proportion to another: xy moves x in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Mat4 {
	m := Identity()
	m[0][1] = xy
	m[0][2] = xz
	m[1][0] = yx
	m[1][2] = yz
	m[2][0] = zx
	m[2][1] = zy
	return m
}

// Rotation creates a rotation matrix around an arbitrary axis.
func Rotation(axis Tuple, radians float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(radians), math.Sin(radians)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

// FromQuaternion creates the rotation matrix of the unit quaternion
// (x, y, z, w).
func FromQuaternion(x, y, z, w float64) Mat4 {
	return Mat4{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0},
		{0, 0, 0, 1},
	}
}

// FromColumnMajor converts a flat column-major matrix, as used by glTF and
// OpenGL, into a Mat4.
func FromColumnMajor(a [16]float64) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			m[row][col] = a[col*4+row]
		}
	}
	return m
}

// Compose multiplies the matrices left to right, so the last one is applied
// to a tuple first. Compose() is the identity.
func Compose(ms ...Mat4) Mat4 {
	out := Identity()
	for _, m := range ms {
		out = out.Mul(m)
	}
	return out
}

// ViewTransform creates a matrix that moves the world so an eye at from
// looks toward to with the given up direction.
func ViewTransform(from, to, up Tuple) Mat4 {
	forward := to.Sub(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Mat4{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z))
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// MulTuple applies the matrix to t treated as a 4x1 column.
// Translation affects points (w=1) and leaves vectors (w=0) unchanged.
func (m Mat4) MulTuple(t Tuple) Tuple {
	return Tuple{
		m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// Matrix returns m as a general 4×4 Matrix.
func (m Mat4) Matrix() Matrix {
	return Matrix{n: 4, cells: m}
}

// Submatrix returns the 3×3 matrix left after removing row and col.
func (m Mat4) Submatrix(row, col int) Matrix {
	return m.Matrix().Submatrix(row, col)
}

// Minor returns the determinant of Submatrix(row, col).
func (m Mat4) Minor(row, col int) float64 {
	return m.Matrix().Minor(row, col)
}

// Cofactor returns the signed minor at (row, col).
func (m Mat4) Cofactor(row, col int) float64 {
	return m.Matrix().Cofactor(row, col)
}

// Determinant returns the determinant by cofactor expansion along row 0.
func (m Mat4) Determinant() float64 {
	return m.Matrix().Determinant()
}

// Invertible reports whether the determinant is non-zero.
func (m Mat4) Invertible() bool {
	return m.Determinant() != 0
}

// Inverse returns the inverse of the matrix, the adjugate divided by the
// determinant. It returns ErrNotInvertible when the determinant is zero.
func (m Mat4) Inverse() (Mat4, error) {
	full := m.Matrix()
	det := full.Determinant()
	if det == 0 {
		return Mat4{}, ErrNotInvertible
	}

	var inv Mat4
	for row := range 4 {
		for col := range 4 {
			// Writing to [col][row] transposes the cofactor matrix in place.
			inv[col][row] = full.Cofactor(row, col) / det
		}
	}
	return inv, nil
}

// Equal reports whether every element is within Epsilon.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Mat4) Equal(b Mat4) bool {
	for row := range 4 {
		for col := range 4 {
			if !ApproxEqual(a[row][col], b[row][col]) {
				return false
			}
		}
	}
	return true
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row][col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row][col] = val
}
