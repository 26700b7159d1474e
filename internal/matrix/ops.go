package matrix

import (
	"fmt"
	"math/rand"
)

// Copy replaces every element of dst with the corresponding element of src.
func Copy(dst, src *Matrix) error {
	if !dst.SameShape(src) {
		return shapeError("copy", dst, src)
	}
	copy(dst.data, src.data)
	return nil
}

// Dot computes the matrix product dst = a · b.
//
// Requires a.cols == b.rows and dst shaped (a.rows, b.cols). dst must not
// alias a or b.
func Dot(dst, a, b *Matrix) error {
	if a.cols != b.rows {
		return fmt.Errorf("dot: %w: %s · %s", ErrDimensionMismatch, a.Dim(), b.Dim())
	}
	if dst.rows != a.rows || dst.cols != b.cols {
		return fmt.Errorf("dot: %w: destination %s for %s · %s",
			ErrDimensionMismatch, dst.Dim(), a.Dim(), b.Dim())
	}

	m, k, n := a.rows, a.cols, b.cols
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a.data[i*k+kIdx] * b.data[kIdx*n+j]
			}
			dst.data[i*n+j] = sum
		}
	}
	return nil
}

// Add performs the element-wise in-place sum m += b.
func (m *Matrix) Add(b *Matrix) error {
	if !m.SameShape(b) {
		return shapeError("add", m, b)
	}
	for i, v := range b.data {
		m.data[i] += v
	}
	return nil
}

// Apply maps fn over every element in place.
func (m *Matrix) Apply(fn func(float32) float32) {
	for i, v := range m.data {
		m.data[i] = fn(v)
	}
}

// Row returns a new 1×cols matrix holding a copy of row i.
func (m *Matrix) Row(i int) (*Matrix, error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("row: %w: row %d of %s", ErrIndexOutOfBounds, i, m.Dim())
	}
	row := &Matrix{rows: 1, cols: m.cols, data: make([]float32, m.cols)}
	copy(row.data, m.data[i*m.cols:(i+1)*m.cols])
	return row, nil
}

// Sub returns a new rows×cols matrix copying the rectangle that starts at
// (rowOffset, colOffset).
func (m *Matrix) Sub(rowOffset, colOffset, rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("sub: %w: [%d×%d]", ErrInvalidDimension, rows, cols)
	}
	if rowOffset < 0 || colOffset < 0 || rowOffset+rows > m.rows || colOffset+cols > m.cols {
		return nil, fmt.Errorf("sub: %w: [%d×%d] at (%d, %d) in %s",
			ErrIndexOutOfBounds, rows, cols, rowOffset, colOffset, m.Dim())
	}

	sub := &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
	for r := 0; r < rows; r++ {
		src := (rowOffset+r)*m.cols + colOffset
		copy(sub.data[r*cols:(r+1)*cols], m.data[src:src+cols])
	}
	return sub, nil
}

// SwapRows exchanges rows i and j in place.
func (m *Matrix) SwapRows(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.rows {
		panic(boundsError("swap rows", m, max(i, j), 0))
	}
	if i == j {
		return
	}
	ri := m.data[i*m.cols : (i+1)*m.cols]
	rj := m.data[j*m.cols : (j+1)*m.cols]
	for c := range ri {
		ri[c], rj[c] = rj[c], ri[c]
	}
}

// ShuffleRows applies a Fisher–Yates shuffle to the rows of m.
// Whole rows move together, so the multiset of rows is unchanged.
func (m *Matrix) ShuffleRows(rng *rand.Rand) {
	for i := m.rows - 1; i > 0; i-- {
		m.SwapRows(i, rng.Intn(i+1))
	}
}

// SplitColumns partitions m into new matrices of the given column widths,
// left to right, preserving row order. The widths must sum to m.Cols().
func (m *Matrix) SplitColumns(widths ...int) ([]*Matrix, error) {
	total := 0
	for _, w := range widths {
		if w <= 0 {
			return nil, fmt.Errorf("split columns: %w: width %d", ErrDimensionMismatch, w)
		}
		total += w
	}
	if total != m.cols {
		return nil, fmt.Errorf("split columns: %w: widths sum to %d, matrix is %s",
			ErrDimensionMismatch, total, m.Dim())
	}

	parts := make([]*Matrix, 0, len(widths))
	offset := 0
	for _, w := range widths {
		part, err := m.Sub(0, offset, m.rows, w)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		offset += w
	}
	return parts, nil
}

// JoinColumns concatenates matrices with equal row counts side by side.
// It is the inverse of SplitColumns.
func JoinColumns(parts ...*Matrix) (*Matrix, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("join columns: %w: no matrices", ErrInvalidDimension)
	}

	rows, cols := parts[0].rows, 0
	for _, p := range parts {
		if p.rows != rows {
			return nil, shapeError("join columns", parts[0], p)
		}
		cols += p.cols
	}

	out := &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
	offset := 0
	for _, p := range parts {
		for r := 0; r < rows; r++ {
			copy(out.data[r*cols+offset:r*cols+offset+p.cols], p.data[r*p.cols:(r+1)*p.cols])
		}
		offset += p.cols
	}
	return out, nil
}
