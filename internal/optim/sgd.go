package optim

import (
	"github.com/born-ml/mlp/internal/nn"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       1,
//	    Momentum: 0.9,
//	})
type SGD struct {
	lr         float32
	momentum   float32
	velocities [][]float32 // one per parameter matrix, allocated on first step
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Step performs a single optimization step.
//
// Applies gradient descent update to all parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD) Step(net, g *nn.Network) error {
	if s.momentum == 0 {
		return Learn(net, g, s.lr)
	}
	if err := checkPair(net, g); err != nil {
		return err
	}
	if s.velocities == nil {
		s.velocities = state(net)
	}

	params, grads := net.Parameters(), g.Parameters()
	for i, p := range params {
		pd, gd, vd := p.Data(), grads[i].Data(), s.velocities[i]
		for k := range pd {
			vd[k] = s.momentum*vd[k] + gd[k]
			pd[k] -= s.lr * vd[k]
		}
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

// GetMomentum returns the momentum factor.
func (s *SGD) GetMomentum() float32 {
	return s.momentum
}
