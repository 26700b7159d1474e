package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense converts m to a float64 gonum matrix.
//
// The result is an independent copy, suitable for handing network state to
// tooling built on gonum (plotting, linear algebra, inspection).
func (m *Matrix) Dense() *mat.Dense {
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.rows, m.cols, data)
}

// FromDense converts any gonum matrix to an owned float32 Matrix.
func FromDense(d mat.Matrix) (*Matrix, error) {
	rows, cols := d.Dims()
	m, err := New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("from dense: %w", err)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.data[r*cols+c] = float32(d.At(r, c))
		}
	}
	return m, nil
}
