// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense row-major float32 matrix used by every
// layer of the network.
//
// # Overview
//
// A Matrix either owns its storage (New, Alloc, FromSlice) or is a view into
// a byte arena (View). Views never reallocate; they alias the arena for its
// whole lifetime.
//
// # Basic Usage
//
//	a, _ := matrix.FromSlice(2, 2, []float32{1, 2, 3, 4})
//	b, _ := matrix.FromSlice(2, 1, []float32{5, 6})
//	dst, _ := matrix.New(2, 1)
//	if err := matrix.Dot(dst, a, b); err != nil {
//	    // errors.Is(err, matrix.ErrDimensionMismatch)
//	}
//
// # Errors
//
// Shape errors wrap ErrInvalidDimension or ErrDimensionMismatch. At and Put
// panic with ErrIndexOutOfBounds on out-of-range access.
package matrix
