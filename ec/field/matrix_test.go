package field

import (
	"errors"
	"reflect"
	"testing"
)

// Test helper functions

// mustMatrix builds a matrix from literal rows
func mustMatrix(t *testing.T, rows [][]uint8) *Matrix {
	t.Helper()
	m, err := NewMatrixFromRows(rows)
	if err != nil {
		t.Fatalf("NewMatrixFromRows failed: %v", err)
	}
	return m
}

// subMatrix picks the entries of m at the given rows and columns
func subMatrix(m *Matrix, rows, cols []int) *Matrix {
	s := NewMatrix(len(rows), len(cols), 0)
	for i, r := range rows {
		for j, c := range cols {
			s.data[i][j] = m.At(r, c)
		}
	}
	return s
}

// combinations returns every k-subset of {0, ..., n-1} in lexicographic order
func combinations(n, k int) [][]int {
	var res [][]int
	var rec func(start int, cur []int)
	rec = func(start int, cur []int) {
		if len(cur) == k {
			res = append(res, append([]int(nil), cur...))
			return
		}
		for i := start; i < n; i++ {
			rec(i+1, append(cur, i))
		}
	}
	rec(0, nil)
	return res
}

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(2, 4, 1)
	if m.Rows() != 2 || m.Cols() != 4 {
		t.Fatalf("expected 2x4, got %dx%d", m.Rows(), m.Cols())
	}
	want := [][]uint8{{1, 1, 1, 1}, {1, 1, 1, 1}}
	if !reflect.DeepEqual(m.data, want) {
		t.Errorf("expected %v, got %v", want, m.data)
	}

	m.data[1][1] = 5
	if m.At(1, 1) != 5 || m.At(0, 1) != 1 {
		t.Errorf("rows should not share storage")
	}
}

func TestNewMatrixFromRows(t *testing.T) {
	src := [][]uint8{{13, 9, 7, 15}, {8, 7, 4, 6}, {6, 4, 0, 3}}
	m := mustMatrix(t, src)
	if m.Rows() != 3 || m.Cols() != 4 {
		t.Fatalf("expected 3x4, got %dx%d", m.Rows(), m.Cols())
	}
	src[0][0] = 0
	if m.At(0, 0) != 13 {
		t.Errorf("matrix should copy its input")
	}

	if _, err := NewMatrixFromRows([][]uint8{{1, 2}, {3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ragged rows: expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := NewMatrixFromRows(nil); !errors.Is(err, ErrEmptyMatrix) {
		t.Errorf("no rows: expected ErrEmptyMatrix, got %v", err)
	}
}

func TestNewIdentityMatrix(t *testing.T) {
	m, err := NewIdentityMatrix(3)
	if err != nil {
		t.Fatalf("NewIdentityMatrix failed: %v", err)
	}
	want := [][]uint8{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if !reflect.DeepEqual(m.data, want) {
		t.Errorf("expected %v, got %v", want, m.data)
	}

	for _, n := range []int{0, -1} {
		if _, err := NewIdentityMatrix(n); !errors.Is(err, ErrEmptyMatrix) {
			t.Errorf("n=%d: expected ErrEmptyMatrix, got %v", n, err)
		}
	}
}

func TestNewColumnVector(t *testing.T) {
	m := NewColumnVector([]uint8{9, 8, 7})
	if m.Rows() != 3 || m.Cols() != 1 {
		t.Fatalf("expected 3x1, got %dx%d", m.Rows(), m.Cols())
	}
	if !reflect.DeepEqual(m.ToVector(), []uint8{9, 8, 7}) {
		t.Errorf("unexpected vector %v", m.ToVector())
	}
	if !reflect.DeepEqual(m.Transpose().data, [][]uint8{{9, 8, 7}}) {
		t.Errorf("unexpected transpose %v", m.Transpose().data)
	}
}

func TestNewCauchyMatrix(t *testing.T) {
	f := setupBinaryField(t, 3, 0x0B)

	t.Run("known entries", func(t *testing.T) {
		m, err := NewCauchyMatrix(f, 2, 5)
		if err != nil {
			t.Fatalf("NewCauchyMatrix failed: %v", err)
		}
		want := [][]uint8{{5, 2, 7, 4, 3}, {1, 3, 4, 7, 2}}
		if !reflect.DeepEqual(m.data, want) {
			t.Errorf("expected %v, got %v", want, m.data)
		}
	})

	t.Run("every square submatrix is invertible", func(t *testing.T) {
		shapes := []struct{ rows, cols int }{{2, 5}, {3, 5}, {4, 4}, {1, 7}}
		for _, s := range shapes {
			m, err := NewCauchyMatrix(f, s.rows, s.cols)
			if err != nil {
				t.Fatalf("%dx%d: NewCauchyMatrix failed: %v", s.rows, s.cols, err)
			}
			for k := 1; k <= min(s.rows, s.cols); k++ {
				for _, rows := range combinations(s.rows, k) {
					for _, cols := range combinations(s.cols, k) {
						sub := subMatrix(m, rows, cols)
						if !sub.IsInvertible(f) {
							t.Errorf("%dx%d: submatrix rows %v cols %v is singular:\n%s", s.rows, s.cols, rows, cols, sub)
						}
					}
				}
			}
		}
	})

	t.Run("uses every element", func(t *testing.T) {
		// 3 + 5 = 8 elements, the last y wraps to 0
		m, err := NewCauchyMatrix(f, 3, 5)
		if err != nil {
			t.Fatalf("NewCauchyMatrix failed: %v", err)
		}
		want := [][]uint8{{2, 7, 4, 3, 1}, {3, 4, 7, 2, 5}, {4, 3, 2, 7, 6}}
		if !reflect.DeepEqual(m.data, want) {
			t.Errorf("expected %v, got %v", want, m.data)
		}
	})

	t.Run("errors", func(t *testing.T) {
		gf256 := NewErasureCodeField()
		tests := []struct {
			name       string
			f          Field
			rows, cols int
			want       error
		}{
			{"too many rows", gf256, 256, 1, ErrTooManyFragments},
			{"too many cols", gf256, 1, 300, ErrTooManyFragments},
			{"exceeds field", f, 4, 5, ErrFieldCapacityExceeded},
			{"exceeds GF(256)", gf256, 200, 57, ErrFieldCapacityExceeded},
			{"negative rows", f, -1, 3, ErrEmptyMatrix},
			{"zero cols", f, 3, 0, ErrEmptyMatrix},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				m, err := NewCauchyMatrix(tt.f, tt.rows, tt.cols)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("expected a configuration error, got %v", err)
				}
				if m != nil {
					t.Errorf("expected no matrix")
				}
			})
		}
	})

	t.Run("zero rows", func(t *testing.T) {
		m, err := NewCauchyMatrix(f, 0, 5)
		if err != nil {
			t.Fatalf("NewCauchyMatrix failed: %v", err)
		}
		if m.Rows() != 0 || m.Cols() != 5 {
			t.Fatalf("expected 0x5 matrix, got %dx%d", m.Rows(), m.Cols())
		}
		id, _ := NewIdentityMatrix(5)
		stacked, err := id.AppendBottom(m)
		if err != nil {
			t.Fatalf("AppendBottom failed: %v", err)
		}
		if !stacked.Equal(id) {
			t.Errorf("stacking an empty matrix changed the identity:\n%s", stacked)
		}
	})

	t.Run("largest GF(256) matrix", func(t *testing.T) {
		m, err := NewCauchyMatrix(NewErasureCodeField(), 1, 255)
		if err != nil {
			t.Fatalf("NewCauchyMatrix failed: %v", err)
		}
		seen := make(map[uint8]bool)
		for j := 0; j < m.Cols(); j++ {
			v := m.At(0, j)
			if v == 0 || seen[v] {
				t.Fatalf("entry %d = %d is zero or repeated", j, v)
			}
			seen[v] = true
		}
	})
}

func TestAppendBottom(t *testing.T) {
	top, _ := NewIdentityMatrix(2)
	bottom := mustMatrix(t, [][]uint8{{7, 8}})

	m, err := top.AppendBottom(bottom)
	if err != nil {
		t.Fatalf("AppendBottom failed: %v", err)
	}
	want := [][]uint8{{1, 0}, {0, 1}, {7, 8}}
	if !reflect.DeepEqual(m.data, want) {
		t.Errorf("expected %v, got %v", want, m.data)
	}
	if top.Rows() != 2 || bottom.Rows() != 1 {
		t.Errorf("operands should be unchanged")
	}

	m.data[2][0] = 0
	if bottom.At(0, 0) != 7 {
		t.Errorf("result should not share rows with its operands")
	}

	if _, err := top.AppendBottom(NewMatrix(1, 3, 0)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMulOverField(t *testing.T) {
	f := NewErasureCodeField()

	t.Run("known product", func(t *testing.T) {
		a := mustMatrix(t, [][]uint8{{1, 2}, {3, 4}})
		// rows of b are the columns of the right-hand operand
		b := mustMatrix(t, [][]uint8{{5, 6}, {7, 8}})
		res, err := a.MulOverField(b, f)
		if err != nil {
			t.Fatalf("MulOverField failed: %v", err)
		}
		want := [][]uint8{{0x09, 0x17}, {0x17, 0x29}}
		if !reflect.DeepEqual(res.data, want) {
			t.Errorf("expected %v, got %v", want, res.data)
		}
	})

	t.Run("shape", func(t *testing.T) {
		a := NewMatrix(3, 4, 1)
		b := NewMatrix(2, 4, 1)
		res, err := a.MulOverField(b, f)
		if err != nil {
			t.Fatalf("MulOverField failed: %v", err)
		}
		if res.Rows() != 3 || res.Cols() != 2 {
			t.Errorf("expected 3x2, got %dx%d", res.Rows(), res.Cols())
		}
	})

	t.Run("identity", func(t *testing.T) {
		id, _ := NewIdentityMatrix(4)
		v := NewColumnVector([]uint8{0xDE, 0xAD, 0xBE, 0xEF})
		res, err := id.MulOverField(v.Transpose(), f)
		if err != nil {
			t.Fatalf("MulOverField failed: %v", err)
		}
		if !res.Equal(v) {
			t.Errorf("I * v should be v, got %v", res.ToVector())
		}
	})

	t.Run("operands unchanged", func(t *testing.T) {
		a := mustMatrix(t, [][]uint8{{1, 2}, {3, 4}})
		b := mustMatrix(t, [][]uint8{{5, 6}})
		aCopy, bCopy := a.Clone(), b.Clone()
		first, _ := a.MulOverField(b, f)
		second, _ := a.MulOverField(b, f)
		if !a.Equal(aCopy) || !b.Equal(bCopy) {
			t.Errorf("operands were modified")
		}
		if !first.Equal(second) {
			t.Errorf("repeated products differ")
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		a := NewMatrix(2, 3, 1)
		// a column vector has one column, not three
		_, err := a.MulOverField(NewColumnVector([]uint8{1, 2, 3}), f)
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
		if !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("expected a size mismatch error, got %v", err)
		}
	})
}

func TestRank(t *testing.T) {
	f := NewErasureCodeField()

	id, _ := NewIdentityMatrix(5)
	if id.Rank(f) != 5 || !id.IsInvertible(f) {
		t.Errorf("identity should have full rank")
	}

	if NewMatrix(3, 3, 0).Rank(f) != 0 {
		t.Errorf("zero matrix should have rank 0")
	}

	dup := mustMatrix(t, [][]uint8{{1, 2, 3}, {4, 5, 6}, {1, 2, 3}})
	if dup.Rank(f) != 2 || dup.IsInvertible(f) {
		t.Errorf("matrix with a repeated row should have rank 2, got %d", dup.Rank(f))
	}

	// row 2 = 2 * row 0 over GF(2^8)
	scaled := mustMatrix(t, [][]uint8{{1, 3}, {f.Mul(2, 1), f.Mul(2, 3)}})
	if scaled.Rank(f) != 1 {
		t.Errorf("scaled rows should have rank 1, got %d", scaled.Rank(f))
	}

	if NewMatrix(2, 3, 1).IsInvertible(f) {
		t.Errorf("non-square matrix cannot be invertible")
	}
}

func TestSelectRows(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 2}, {3, 4}, {5, 6}})
	s, err := m.SelectRows([]int{2, 0})
	if err != nil {
		t.Fatalf("SelectRows failed: %v", err)
	}
	if !reflect.DeepEqual(s.data, [][]uint8{{5, 6}, {1, 2}}) {
		t.Errorf("unexpected rows %v", s.data)
	}
	if _, err := m.SelectRows([]int{3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := m.SelectRows(nil); !errors.Is(err, ErrEmptyMatrix) {
		t.Errorf("expected ErrEmptyMatrix, got %v", err)
	}
}

func TestMatrixAccessors(t *testing.T) {
	m := mustMatrix(t, [][]uint8{{1, 2, 3}, {4, 5, 6}})

	row := m.Row(1)
	row[0] = 0
	if m.At(1, 0) != 4 {
		t.Errorf("Row should return a copy")
	}

	if !reflect.DeepEqual(m.ToVector(), []uint8{1, 2, 3, 4, 5, 6}) {
		t.Errorf("unexpected vector %v", m.ToVector())
	}

	tr := m.Transpose()
	if !reflect.DeepEqual(tr.data, [][]uint8{{1, 4}, {2, 5}, {3, 6}}) {
		t.Errorf("unexpected transpose %v", tr.data)
	}

	if m.String() != "01,02,03\n04,05,06\n" {
		t.Errorf("unexpected string %q", m.String())
	}

	if m.Equal(tr) || !m.Equal(m.Clone()) {
		t.Errorf("Equal is wrong")
	}
}
