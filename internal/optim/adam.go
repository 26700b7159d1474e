package optim

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float32
	beta1 float32
	beta2 float32
	eps   float32
	t     int         // Timestep for bias correction
	m     [][]float32 // First moment estimates, one per parameter matrix
	v     [][]float32 // Second moment estimates, one per parameter matrix
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(config AdamConfig) *Adam {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
	}
}

// Step performs a single optimization step using Adam algorithm.
func (a *Adam) Step(net, g *nn.Network) error {
	if err := checkPair(net, g); err != nil {
		return err
	}
	if a.m == nil {
		a.m = state(net)
		a.v = state(net)
	}

	// Increment timestep
	a.t++

	biasCorrection1 := 1 - math32.Pow(a.beta1, float32(a.t))
	biasCorrection2 := 1 - math32.Pow(a.beta2, float32(a.t))

	params, grads := net.Parameters(), g.Parameters()
	for i, p := range params {
		pd, gd, md, vd := p.Data(), grads[i].Data(), a.m[i], a.v[i]
		for k := range pd {
			gk := gd[k]
			md[k] = a.beta1*md[k] + (1-a.beta1)*gk
			vd[k] = a.beta2*vd[k] + (1-a.beta2)*gk*gk

			mHat := md[k] / biasCorrection1
			vHat := vd[k] / biasCorrection2
			pd[k] -= a.lr * mHat / (math32.Sqrt(vHat) + a.eps)
		}
	}
	return nil
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float32) {
	a.lr = lr
}

// GetTimestep returns the current timestep.
func (a *Adam) GetTimestep() int {
	return a.t
}
