// Package optim implements the parameter update step of the training engine.
//
// This package provides:
//   - Learn: the plain gradient-descent step p -= rate * g
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Gradients come from a gradient network (see package grad) holding the
// un-negated ∂cost/∂p for every weight and bias, so every optimizer here
// subtracts.
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 1})
//	for step := 0; step < steps; step++ {
//	    if err := strategy.Compute(net, g, set); err != nil {
//	        return err
//	    }
//	    if err := optimizer.Step(net, g); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"fmt"
	"strings"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply the gradient network to the live network's parameters
//   - GetLR / SetLR: Read and change the learning rate (for scheduling)
type Optimizer interface {
	// Step updates net's weights and biases in place from g.
	Step(net, g *nn.Network) error

	// GetLR returns the current learning rate.
	GetLR() float32

	// SetLR updates the learning rate.
	SetLR(lr float32)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

// Kind names an optimizer in configuration.
type Kind string

// Supported optimizers.
const (
	KindSGD  Kind = "sgd"
	KindAdam Kind = "adam"
)

// ParseKind resolves a configuration name. An empty name selects SGD.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", KindSGD:
		return KindSGD, nil
	case KindAdam:
		return KindAdam, nil
	default:
		return "", fmt.Errorf("unknown optimizer %q", name)
	}
}

// Learn performs one gradient-descent step: p -= rate * g.p for every weight
// and bias. rate is not bounded here; a rate that is too large diverges.
func Learn(net, g *nn.Network, rate float32) error {
	if err := checkPair(net, g); err != nil {
		return err
	}
	params, grads := net.Parameters(), g.Parameters()
	for i, p := range params {
		pd, gd := p.Data(), grads[i].Data()
		for k := range pd {
			pd[k] -= rate * gd[k]
		}
	}
	return nil
}

// checkPair verifies that g matches net's architecture.
func checkPair(net, g *nn.Network) error {
	if !net.Arch.Equal(g.Arch) {
		return fmt.Errorf("optimizer: %w: arch %v vs %v",
			matrix.ErrDimensionMismatch, []int(g.Arch), []int(net.Arch))
	}
	return nil
}

// state allocates one zeroed buffer per parameter matrix of net.
func state(net *nn.Network) [][]float32 {
	params := net.Parameters()
	bufs := make([][]float32, len(params))
	for i, p := range params {
		bufs[i] = make([]float32, len(p.Data()))
	}
	return bufs
}

// New builds the optimizer named by kind. momentum only applies to SGD.
func New(kind Kind, lr, momentum float32) (Optimizer, error) {
	switch kind {
	case KindSGD, "":
		return NewSGD(SGDConfig{LR: lr, Momentum: momentum}), nil
	case KindAdam:
		return NewAdam(AdamConfig{LR: lr}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", kind)
	}
}
