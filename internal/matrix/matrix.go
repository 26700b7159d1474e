// Package matrix implements the dense float32 matrix used by every part of
// the training engine.
//
// A Matrix is a row-major 2-D table: element (r, c) lives at data[r*cols+c].
// It either owns its storage or is a view into an externally owned byte
// arena (see View), which is how a packed network shares one buffer between
// all of its weights, biases and activations.
//
// Shape errors are reported as wrapped sentinel errors:
//
//	if err := matrix.Dot(dst, a, b); errors.Is(err, matrix.ErrDimensionMismatch) {
//	    // fix the operands
//	}
//
// Element access (At, Put) panics on out-of-range indices instead of
// returning an error; the panic value wraps ErrIndexOutOfBounds.
package matrix

import (
	"fmt"
	"math/rand"
	"strings"
	"unsafe"
)

// SeedMode selects how Alloc initializes a new matrix.
type SeedMode int

// Supported seed modes.
const (
	SeedNone      SeedMode = iota // all zeros
	SeedUnit                      // uniform in [0, 1)
	SeedSymmetric                 // uniform in [-1, 1)
)

// String returns a human-readable seed mode name.
func (s SeedMode) String() string {
	switch s {
	case SeedNone:
		return "none"
	case SeedUnit:
		return "unit"
	case SeedSymmetric:
		return "symmetric"
	default:
		return "unknown"
	}
}

const floatSize = int(unsafe.Sizeof(float32(0)))

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	rows int
	cols int
	data []float32
	view bool // data aliases an external buffer
}

// New allocates a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	return Alloc(rows, cols, SeedNone, nil)
}

// Alloc allocates a rows×cols matrix seeded according to mode.
//
// rng is only consulted for SeedUnit and SeedSymmetric; it may be nil for
// SeedNone. Passing an explicit source keeps results reproducible for a
// fixed seed.
func Alloc(rows, cols int, mode SeedMode, rng *rand.Rand) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("alloc: %w: [%d×%d]", ErrInvalidDimension, rows, cols)
	}

	m := &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
	if err := m.Seed(mode, rng); err != nil {
		return nil, err
	}
	return m, nil
}

// FromSlice creates a rows×cols matrix holding a copy of data.
func FromSlice(rows, cols int, data []float32) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("from slice: %w: %d values for %s", ErrDimensionMismatch, len(data), m.Dim())
	}
	copy(m.data, data)
	return m, nil
}

// View creates a rows×cols matrix aliasing buf starting at byteOffset.
//
// The view holds no storage of its own: writes through it land in buf and it
// must not outlive buf. byteOffset must be a multiple of 4 and the extent
// byteOffset+rows*cols*4 must fit in buf.
func View(buf []byte, byteOffset, rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("view: %w: [%d×%d]", ErrInvalidDimension, rows, cols)
	}
	if byteOffset < 0 || byteOffset%floatSize != 0 {
		return nil, fmt.Errorf("view: %w: offset %d", ErrMisaligned, byteOffset)
	}
	end := byteOffset + rows*cols*floatSize
	if end > len(buf) {
		return nil, fmt.Errorf("view: %w: [%d×%d] at offset %d exceeds %d bytes",
			ErrIndexOutOfBounds, rows, cols, byteOffset, len(buf))
	}

	ptr := unsafe.Pointer(&buf[byteOffset])
	if uintptr(ptr)%uintptr(floatSize) != 0 {
		return nil, fmt.Errorf("view: %w: buffer address not float32 aligned", ErrMisaligned)
	}

	//nolint:gosec // unsafe.Slice over a bounds-checked region of buf
	data := unsafe.Slice((*float32)(ptr), rows*cols)
	return &Matrix{rows: rows, cols: cols, data: data, view: true}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Data returns the underlying row-major storage.
// WARNING: for views this is memory owned by the arena.
func (m *Matrix) Data() []float32 {
	return m.data
}

// IsView reports whether m aliases an external buffer.
func (m *Matrix) IsView() bool {
	return m.view
}

// Dim returns the shape formatted as [rows×cols].
func (m *Matrix) Dim() string {
	return fmt.Sprintf("[%d×%d]", m.rows, m.cols)
}

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix) SameShape(other *Matrix) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// At returns the element at (row, col).
// Panics with an error wrapping ErrIndexOutOfBounds if out of range.
func (m *Matrix) At(row, col int) float32 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(boundsError("at", m, row, col))
	}
	return m.data[row*m.cols+col]
}

// Put stores v at (row, col).
// Panics with an error wrapping ErrIndexOutOfBounds if out of range.
func (m *Matrix) Put(row, col int, v float32) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(boundsError("put", m, row, col))
	}
	m.data[row*m.cols+col] = v
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float32) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Zero sets every element to 0.
func (m *Matrix) Zero() {
	clear(m.data)
}

// Seed overwrites m according to mode.
func (m *Matrix) Seed(mode SeedMode, rng *rand.Rand) error {
	if rng == nil && mode != SeedNone {
		return fmt.Errorf("seed: %s mode needs a random source", mode)
	}
	switch mode {
	case SeedNone:
		m.Zero()
	case SeedUnit:
		for i := range m.data {
			m.data[i] = rng.Float32()
		}
	case SeedSymmetric:
		for i := range m.data {
			m.data[i] = rng.Float32()*2 - 1
		}
	default:
		return fmt.Errorf("seed: unknown mode %d", mode)
	}
	return nil
}

// Clone returns an owned deep copy of m.
func (m *Matrix) Clone() *Matrix {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether m and other have the same shape and bit-identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// String renders the matrix as aligned rows.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%10.6f", m.data[r*m.cols+c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
