package grad

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// ErrInvalidEpsilon is returned for a non-positive or non-finite perturbation.
var ErrInvalidEpsilon = errors.New("finite difference epsilon must be a positive finite number")

// FiniteDiff estimates the gradient numerically.
//
// For every weight, then every bias, layer by layer, it saves the parameter
// p, evaluates the cost at a perturbed value and restores p:
//
//	forward:  g = (cost(p + eps) - cost(p)) / eps
//	central:  g = (cost(p + eps) - cost(p - eps)) / (2 * eps)
//
// Each parameter costs one (forward) or two (central) full passes over the
// training set, so this is only practical for small networks. It needs no
// activation derivative, which makes it the reference Backprop is checked
// against.
//
// Small eps trades truncation error for float32 cancellation error; 1e-3 is
// a reasonable starting point.
type FiniteDiff struct {
	Eps     float32
	Central bool
}

// Name returns "finite-diff".
func (f FiniteDiff) Name() string {
	return string(MethodFiniteDiff)
}

func (f FiniteDiff) validate() error {
	if !(f.Eps > 0) || math32.IsInf(f.Eps, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidEpsilon, f.Eps)
	}
	return nil
}

// Compute fills g's weights and biases with the estimated gradient.
func (f FiniteDiff) Compute(net, g *nn.Network, set nn.TrainingSet) error {
	if err := f.validate(); err != nil {
		return err
	}
	if err := checkPair(net, g, set); err != nil {
		return err
	}

	base, err := net.Cost(set)
	if err != nil {
		return err
	}

	for i := 0; i < net.Count; i++ {
		if err := f.perturb(net, net.Weights[i], g.Weights[i], set, base); err != nil {
			return err
		}
		if err := f.perturb(net, net.Biases[i], g.Biases[i], set, base); err != nil {
			return err
		}
	}
	return nil
}

// perturb estimates the partial derivative for every entry of param.
func (f FiniteDiff) perturb(net *nn.Network, param, out *matrix.Matrix, set nn.TrainingSet, base float32) error {
	data, grads := param.Data(), out.Data()
	for k, saved := range data {
		data[k] = saved + f.Eps
		plus, err := net.Cost(set)
		if err != nil {
			data[k] = saved
			return err
		}

		if f.Central {
			data[k] = saved - f.Eps
			minus, err := net.Cost(set)
			data[k] = saved
			if err != nil {
				return err
			}
			grads[k] = (plus - minus) / (2 * f.Eps)
			continue
		}

		data[k] = saved
		grads[k] = (plus - base) / f.Eps
	}
	return nil
}
