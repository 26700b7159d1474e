package nn

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Activation is a pointwise function applied after each layer's affine step.
//
// Derivative is expressed in terms of the activation's OUTPUT y = f(x), which
// is what the forward pass leaves in the activation buffers. Backpropagation
// only ever sees post-activation values, so this is the only form it needs.
type Activation interface {
	// Name returns the lowercase name used in configuration files.
	Name() string

	// Apply computes f(x).
	Apply(x float32) float32

	// Derivative computes f'(x) given y = f(x).
	Derivative(y float32) float32
}

// Sigmoid is the logistic function σ(x) = 1 / (1 + exp(-x)).
//
// Squashes values into (0, 1); its derivative is y(1-y). This is the
// default activation of every network.
type Sigmoid struct{}

// Name returns "sigmoid".
func (Sigmoid) Name() string { return "sigmoid" }

// Apply computes σ(x).
func (Sigmoid) Apply(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// Derivative returns y(1-y).
func (Sigmoid) Derivative(y float32) float32 {
	return y * (1 - y)
}

// ReLU is the rectified linear unit f(x) = max(0, x).
type ReLU struct{}

// Name returns "relu".
func (ReLU) Name() string { return "relu" }

// Apply computes max(0, x).
func (ReLU) Apply(x float32) float32 {
	return math32.Max(0, x)
}

// Derivative returns 1 for positive outputs and 0 otherwise.
func (ReLU) Derivative(y float32) float32 {
	if y > 0 {
		return 1
	}
	return 0
}

// Tanh is the hyperbolic tangent, squashing values into (-1, 1).
type Tanh struct{}

// Name returns "tanh".
func (Tanh) Name() string { return "tanh" }

// Apply computes tanh(x).
func (Tanh) Apply(x float32) float32 {
	return math32.Tanh(x)
}

// Derivative returns 1 - y².
func (Tanh) Derivative(y float32) float32 {
	return 1 - y*y
}

// Identity leaves values unchanged. Useful for linear regression.
type Identity struct{}

// Name returns "identity".
func (Identity) Name() string { return "identity" }

// Apply returns x.
func (Identity) Apply(x float32) float32 { return x }

// Derivative returns 1.
func (Identity) Derivative(float32) float32 { return 1 }

// ActivationByName resolves a configuration name to an Activation.
// An empty name selects Sigmoid.
func ActivationByName(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sigmoid":
		return Sigmoid{}, nil
	case "relu":
		return ReLU{}, nil
	case "tanh":
		return Tanh{}, nil
	case "identity", "linear":
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("unknown activation %q", name)
	}
}
