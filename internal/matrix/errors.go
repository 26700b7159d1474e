package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
	ErrMisaligned        = errors.New("misaligned byte offset")
)

// shapeError reports an operation whose operands have incompatible shapes.
func shapeError(op string, a, b *Matrix) error {
	return fmt.Errorf("%s: %w: %s vs %s", op, ErrDimensionMismatch, a.Dim(), b.Dim())
}

// boundsError reports a row/column access outside the matrix extent.
func boundsError(op string, m *Matrix, row, col int) error {
	return fmt.Errorf("%s: %w: (%d, %d) in %s", op, ErrIndexOutOfBounds, row, col, m.Dim())
}
