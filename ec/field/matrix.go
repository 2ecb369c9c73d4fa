package field

import (
	"fmt"
	"strings"
)

// Matrix is a row-major grid of field elements that fit in one byte.
//
// Operations never modify their operands; every result is a new Matrix.
type Matrix struct {
	rows int
	cols int
	data [][]uint8
}

// NewMatrix creates a rows×cols matrix filled with fill
func NewMatrix(rows, cols int, fill uint8) *Matrix {
	data := make([][]uint8, rows)
	for i := range data {
		data[i] = make([]uint8, cols)
		if fill != 0 {
			for j := range data[i] {
				data[i][j] = fill
			}
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// NewMatrixFromRows creates a matrix holding a copy of rows
func NewMatrixFromRows(rows [][]uint8) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	m := NewMatrix(len(rows), len(rows[0]), 0)
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, expected %d", ErrDimensionMismatch, i, len(row), m.cols)
		}
		copy(m.data[i], row)
	}
	return m, nil
}

// NewIdentityMatrix creates the n×n identity matrix
func NewIdentityMatrix(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: identity size %d", ErrEmptyMatrix, n)
	}
	m := NewMatrix(n, n, 0)
	for i := 0; i < n; i++ {
		m.data[i][i] = 1
	}
	return m, nil
}

// NewColumnVector creates a len(values)×1 matrix
func NewColumnVector(values []uint8) *Matrix {
	m := NewMatrix(len(values), 1, 0)
	for i, v := range values {
		m.data[i][0] = v
	}
	return m
}

// NewCauchyMatrix creates a rows×cols Cauchy matrix over f.
//
// With X = {1, ..., rows} and Y = {rows+1, ..., rows+cols} (taken modulo the
// element count) the entry [i][j] is 1 / (x_i + y_j). X and Y are disjoint,
// so every square submatrix of the result is invertible. rows may be 0, which
// yields an empty 0×cols matrix.
func NewCauchyMatrix(f Field, rows, cols int) (*Matrix, error) {
	if rows > 0xFF || cols > 0xFF {
		return nil, fmt.Errorf("%w: cauchy matrix %d×%d", ErrTooManyFragments, rows, cols)
	}
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: cauchy matrix %d×%d", ErrEmptyMatrix, rows, cols)
	}
	elementCount := f.ElementCount()
	if rows+cols > elementCount {
		return nil, fmt.Errorf("%w: cauchy matrix %d×%d needs %d elements, field has %d",
			ErrFieldCapacityExceeded, rows, cols, rows+cols, elementCount)
	}

	xs := make([]uint8, rows)
	for i := range xs {
		xs[i] = uint8(1 + i)
	}
	ys := make([]uint8, cols)
	for j := range ys {
		// only the last y wraps to 0, and only when rows+cols == elementCount
		ys[j] = uint8((1 + rows + j) % elementCount)
	}

	m := NewMatrix(rows, cols, 0)
	for i, x := range xs {
		for j, y := range ys {
			v, err := f.Div(1, f.Add(x, y))
			if err != nil {
				return nil, fmt.Errorf("cauchy entry [%d][%d]: %w", i, j, err)
			}
			m.data[i][j] = v
		}
	}
	return m, nil
}

// Rows returns the number of rows
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns
func (m *Matrix) Cols() int {
	return m.cols
}

// At returns the entry at row i, column j
func (m *Matrix) At(i, j int) uint8 {
	return m.data[i][j]
}

// Row returns a copy of row i
func (m *Matrix) Row(i int) []uint8 {
	return append([]uint8(nil), m.data[i]...)
}

// Clone returns a deep copy of m
func (m *Matrix) Clone() *Matrix {
	c := NewMatrix(m.rows, m.cols, 0)
	for i := range m.data {
		copy(c.data[i], m.data[i])
	}
	return c
}

// Equal reports whether m and o have the same shape and entries
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		for j := range m.data[i] {
			if m.data[i][j] != o.data[i][j] {
				return false
			}
		}
	}
	return true
}

// Transpose returns the cols×rows transpose of m
func (m *Matrix) Transpose() *Matrix {
	t := NewMatrix(m.cols, m.rows, 0)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j][i] = m.data[i][j]
		}
	}
	return t
}

// AppendBottom returns m with the rows of bottom stacked below it
func (m *Matrix) AppendBottom(bottom *Matrix) (*Matrix, error) {
	if m.cols != bottom.cols {
		return nil, fmt.Errorf("%w: cannot stack %d columns on %d columns", ErrDimensionMismatch, bottom.cols, m.cols)
	}
	res := NewMatrix(m.rows+bottom.rows, m.cols, 0)
	for i := 0; i < m.rows; i++ {
		copy(res.data[i], m.data[i])
	}
	for i := 0; i < bottom.rows; i++ {
		copy(res.data[m.rows+i], bottom.data[i])
	}
	return res, nil
}

// SelectRows returns the matrix made of the given rows of m, in order
func (m *Matrix) SelectRows(indices []int) (*Matrix, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyMatrix
	}
	res := NewMatrix(len(indices), m.cols, 0)
	for i, idx := range indices {
		if idx < 0 || idx >= m.rows {
			return nil, fmt.Errorf("%w: row %d out of range [0, %d)", ErrDimensionMismatch, idx, m.rows)
		}
		copy(res.data[i], m.data[idx])
	}
	return res, nil
}

// MulOverField multiplies m by b over f.
//
// b is given transposed: row n of b holds column n of the right-hand
// operand, so the contraction runs over the column index of both matrices,
// res[i][n] = Σ_p m[i][p] * b[n][p], and the result is m.Rows()×b.Rows().
func (m *Matrix) MulOverField(b *Matrix, f Field) (*Matrix, error) {
	if m.cols != b.cols {
		return nil, fmt.Errorf("%w: A is %d×%d, B is %d×%d", ErrDimensionMismatch, m.rows, m.cols, b.rows, b.cols)
	}

	res := NewMatrix(m.rows, b.rows, 0)
	for i := 0; i < m.rows; i++ {
		for n := 0; n < b.rows; n++ {
			var sum uint8
			for p := 0; p < m.cols; p++ {
				sum = f.Add(sum, f.Mul(m.data[i][p], b.data[n][p]))
			}
			res.data[i][n] = sum
		}
	}
	return res, nil
}

// ToVector flattens m in row-major order
func (m *Matrix) ToVector() []uint8 {
	vec := make([]uint8, 0, m.rows*m.cols)
	for _, row := range m.data {
		vec = append(vec, row...)
	}
	return vec
}

// Rank returns the rank of m over f
func (m *Matrix) Rank(f Field) int {
	A := m.Clone().data

	// Use forward elimination only to compute rank - more efficient than full RREF
	rank := 0
	for col := 0; col < m.cols && rank < m.rows; col++ {
		pivot := -1
		for i := rank; i < m.rows; i++ {
			if A[i][col] != 0 {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue
		}
		if pivot != rank {
			A[rank], A[pivot] = A[pivot], A[rank]
		}

		// pivot is nonzero
		inv, _ := f.Div(1, A[rank][col])
		for i := rank + 1; i < m.rows; i++ {
			if A[i][col] == 0 {
				continue
			}
			factor := f.Mul(A[i][col], inv)
			for j := col; j < m.cols; j++ {
				A[i][j] = f.Sub(A[i][j], f.Mul(factor, A[rank][j]))
			}
		}
		rank++
	}
	return rank
}

// IsInvertible reports whether m is square with full rank over f
func (m *Matrix) IsInvertible(f Field) bool {
	return m.rows == m.cols && m.Rank(f) == m.rows
}

// String prints m as rows of comma separated hex bytes
func (m *Matrix) String() string {
	var sb strings.Builder
	for _, row := range m.data {
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%02X", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
