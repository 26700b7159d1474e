// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/matrix"
)

// Matrix is a dense row-major float32 matrix.
type Matrix = matrix.Matrix

// SeedMode selects how Alloc fills a new matrix.
type SeedMode = matrix.SeedMode

// Seed modes.
const (
	SeedNone      = matrix.SeedNone
	SeedUnit      = matrix.SeedUnit
	SeedSymmetric = matrix.SeedSymmetric
)

// Errors
var (
	ErrInvalidDimension  = matrix.ErrInvalidDimension
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrIndexOutOfBounds  = matrix.ErrIndexOutOfBounds
	ErrMisaligned        = matrix.ErrMisaligned
)

// New allocates a zeroed rows × cols matrix.
func New(rows, cols int) (*Matrix, error) {
	return matrix.New(rows, cols)
}

// Alloc allocates a rows × cols matrix filled according to mode.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	w, _ := matrix.Alloc(2, 3, matrix.SeedSymmetric, rng) // values in [-1, 1)
func Alloc(rows, cols int, mode SeedMode, rng *rand.Rand) (*Matrix, error) {
	return matrix.Alloc(rows, cols, mode, rng)
}

// FromSlice creates a rows × cols matrix holding a copy of data.
func FromSlice(rows, cols int, data []float32) (*Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// View returns a rows × cols matrix aliasing buf at byteOffset.
func View(buf []byte, byteOffset, rows, cols int) (*Matrix, error) {
	return matrix.View(buf, byteOffset, rows, cols)
}

// FromDense copies a gonum matrix.
func FromDense(d mat.Matrix) (*Matrix, error) {
	return matrix.FromDense(d)
}

// Operations

// Dot computes dst = a · b.
func Dot(dst, a, b *Matrix) error {
	return matrix.Dot(dst, a, b)
}

// Copy copies src into dst; both must have the same shape.
func Copy(dst, src *Matrix) error {
	return matrix.Copy(dst, src)
}

// JoinColumns concatenates matrices with equal row counts side by side.
func JoinColumns(parts ...*Matrix) (*Matrix, error) {
	return matrix.JoinColumns(parts...)
}
