// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grad computes the gradient of the network cost with respect to
// every weight and bias.
//
// Two interchangeable strategies are provided: Backprop (exact, one forward
// and backward sweep per example) and FiniteDiff (one extra cost evaluation
// per parameter). Both fill a gradient network with the un-negated
// ∂cost/∂p, so optimizers always subtract.
//
// Example:
//
//	g, _ := nn.NewGradient(net)
//	if err := (grad.Backprop{}).Compute(net, g, set); err != nil {
//	    return err
//	}
package grad

import (
	"github.com/born-ml/mlp/internal/grad"
)

// Strategy computes a gradient network.
type Strategy = grad.Strategy

// Backprop computes exact gradients by backpropagation.
type Backprop = grad.Backprop

// FiniteDiff approximates gradients by perturbing each parameter.
type FiniteDiff = grad.FiniteDiff

// Method names a strategy in configuration.
type Method = grad.Method

// Methods.
const (
	MethodBackprop   = grad.MethodBackprop
	MethodFiniteDiff = grad.MethodFiniteDiff
)

// ErrInvalidEpsilon is returned for a non-positive or non-finite step.
var ErrInvalidEpsilon = grad.ErrInvalidEpsilon

// ParseMethod resolves backprop or finite-diff.
func ParseMethod(name string) (Method, error) {
	return grad.ParseMethod(name)
}

// New builds the strategy for method.
func New(method Method, eps float32, central bool) (Strategy, error) {
	return grad.New(method, eps, central)
}
