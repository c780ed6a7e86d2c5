package math3d

import (
	"errors"
	"fmt"
)

// ErrMatrixShape is returned when matrix rows do not form a square of size
// 1 through 4.
var ErrMatrixShape = errors.New("matrix must be square with 1 to 4 rows")

// Matrix is a square matrix of size 1 through 4 in row-major order.
//
// It exists to carry the cofactor expansion behind Mat4.Determinant and
// Mat4.Inverse: the submatrix of an n×n Matrix is an (n-1)×(n-1) Matrix, so
// minors, cofactors, and determinants are written once for every size.
type Matrix struct {
	n     int
	cells [4][4]float64
}

// NewMatrix builds a Matrix from its rows.
func NewMatrix(rows [][]float64) (Matrix, error) {
	n := len(rows)
	if n < 1 || n > 4 {
		return Matrix{}, fmt.Errorf("%w: got %d rows", ErrMatrixShape, n)
	}
	m := Matrix{n: n}
	for r, row := range rows {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns", ErrMatrixShape, r, len(row))
		}
		copy(m.cells[r][:n], row)
	}
	return m, nil
}

// Size returns the number of rows (and columns).
func (m Matrix) Size() int {
	return m.n
}

// At returns the element at (row, col).
func (m Matrix) At(row, col int) float64 {
	return m.cells[row][col]
}

// Submatrix returns m with one row and one column removed.
func (m Matrix) Submatrix(row, col int) Matrix {
	sub := Matrix{n: m.n - 1}
	dr := 0
	for r := range m.n {
		if r == row {
			continue
		}
		dc := 0
		for c := range m.n {
			if c == col {
				continue
			}
			sub.cells[dr][dc] = m.cells[r][c]
			dc++
		}
		dr++
	}
	return sub
}

// Minor returns the determinant of Submatrix(row, col).
func (m Matrix) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor returns the minor at (row, col), negated when row+col is odd.
func (m Matrix) Cofactor(row, col int) float64 {
	minor := m.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant expands along row 0 until it reaches the 2×2 case.
func (m Matrix) Determinant() float64 {
	switch m.n {
	case 0:
		return 0
	case 1:
		return m.cells[0][0]
	case 2:
		return m.cells[0][0]*m.cells[1][1] - m.cells[0][1]*m.cells[1][0]
	}

	var det float64
	for col := range m.n {
		det += m.cells[0][col] * m.Cofactor(0, col)
	}
	return det
}

// Equal reports whether both matrices have the same size and every element
// is within Epsilon.
func (m Matrix) Equal(o Matrix) bool {
	if m.n != o.n {
		return false
	}
	for r := range m.n {
		for c := range m.n {
			if !ApproxEqual(m.cells[r][c], o.cells[r][c]) {
				return false
			}
		}
	}
	return true
}
