// Package grad computes the gradient of a network's cost with respect to
// its weights and biases.
//
// Two interchangeable strategies implement Strategy:
//   - FiniteDiff: perturbs every parameter and re-evaluates the cost
//   - Backprop: analytic reverse-mode sweep over the layers
//
// Both fill a gradient network g (see nn.NewGradient) with the un-negated
// partial derivatives ∂cost/∂p, so an optimizer always subtracts:
//
//	p -= rate * g.p
//
// Example:
//
//	g, _ := nn.NewGradient(net)
//	var strategy grad.Strategy = grad.Backprop{}
//	if err := strategy.Compute(net, g, set); err != nil {
//	    return err
//	}
//	optim.Learn(net, g, 1.0)
package grad

import (
	"fmt"
	"strings"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// Strategy computes the cost gradient of net over set into g.
//
// g must have the same architecture as net. Compute mutates net's
// activation buffers (it runs forward passes) but leaves its parameters
// unchanged.
type Strategy interface {
	Compute(net, g *nn.Network, set nn.TrainingSet) error
	Name() string
}

// Method names a gradient strategy in configuration.
type Method string

// Supported methods.
const (
	MethodBackprop   Method = "backprop"
	MethodFiniteDiff Method = "finite-diff"
)

// ParseMethod resolves a configuration name. An empty name selects backprop.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(MethodBackprop), "backpropagation":
		return MethodBackprop, nil
	case string(MethodFiniteDiff), "finite_diff", "fd":
		return MethodFiniteDiff, nil
	default:
		return "", fmt.Errorf("unknown gradient method %q", name)
	}
}

// New builds the strategy for method. eps and central only apply to
// finite differences.
func New(method Method, eps float32, central bool) (Strategy, error) {
	switch method {
	case MethodBackprop, "":
		return Backprop{}, nil
	case MethodFiniteDiff:
		fd := FiniteDiff{Eps: eps, Central: central}
		if err := fd.validate(); err != nil {
			return nil, err
		}
		return fd, nil
	default:
		return nil, fmt.Errorf("unknown gradient method %q", method)
	}
}

// checkPair validates that g can hold net's gradient and that set fits net.
func checkPair(net, g *nn.Network, set nn.TrainingSet) error {
	if !net.Arch.Equal(g.Arch) {
		return fmt.Errorf("gradient network: %w: arch %v vs %v",
			matrix.ErrDimensionMismatch, []int(g.Arch), []int(net.Arch))
	}
	return net.CheckSet(set)
}
