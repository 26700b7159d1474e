// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the feed-forward network: architecture, layout,
// forward pass, cost and activations.
//
// # Overview
//
// This package contains:
//   - Network: weights, biases and activations for every layer
//   - Arch and Layout: layer widths and the packed arena layout
//   - Activations: Sigmoid (default), ReLU, Tanh, Identity
//   - TrainingSet: paired input and target matrices
//   - Initialization: uniform [-1, 1), Xavier, zero
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/mlp/matrix"
//	    "github.com/born-ml/mlp/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//	    net, _ := nn.New(nn.Arch{2, 2, 1}, nn.Config{Packed: true, Rand: rng})
//
//	    in, _ := matrix.FromSlice(1, 2, []float32{0, 1})
//	    out, _ := net.Predict(in)
//	    _ = out.At(0, 0)
//	}
//
// # Representations
//
// With Config.Packed every matrix is a view into one byte arena laid out as
// input | weights | biases | activations, and Params exposes all weights and
// biases as a single slice. Both representations compute identical results.
package nn
