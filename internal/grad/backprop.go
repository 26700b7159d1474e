package grad

import (
	"github.com/born-ml/mlp/internal/nn"
)

// Backprop computes the exact gradient by reverse-mode propagation.
//
// For every training row it runs a forward pass, seeds the output error
//
//	δ[j] = 2 * (output[j] - target[j])
//
// and sweeps from the last layer down to layer 1. At neuron j of layer l,
// with post-activation value a and accumulated error da:
//
//	dz           = da * f'(a)
//	gb[l-1][j]  += dz
//	gw[l-1][k,j] += dz * a[l-1][k]
//	ga[l-1][k]  += dz * w[l-1][k,j]
//
// The gradient network's activation slots ga hold the per-row error signals
// and are cleared before each row. After all rows the weight and bias sums
// are divided by the row count.
//
// f' comes from the network's Activation, so any activation whose
// derivative is expressible in its output works, Sigmoid included.
type Backprop struct{}

// Name returns "backprop".
func (Backprop) Name() string {
	return string(MethodBackprop)
}

// Compute fills g with ∂cost/∂p for every weight and bias of net.
func (Backprop) Compute(net, g *nn.Network, set nn.TrainingSet) error {
	if err := checkPair(net, g, set); err != nil {
		return err
	}

	g.Zero()

	rows := set.Rows()
	outCols := set.Targets.Cols()
	targets := set.Targets.Data()
	act := net.Activation

	for i := 0; i < rows; i++ {
		net.LoadRow(set.Inputs, i)
		net.Forward()

		for _, ga := range g.Activations {
			ga.Zero()
		}

		out := net.Output().Data()
		delta := g.Output().Data()
		for j := 0; j < outCols; j++ {
			delta[j] = 2 * (out[j] - targets[i*outCols+j])
		}

		for l := net.Count; l > 0; l-- {
			a := net.Activations[l].Data()
			da := g.Activations[l].Data()
			prev := net.Activations[l-1].Data()
			dprev := g.Activations[l-1].Data()
			w := net.Weights[l-1].Data()
			gw := g.Weights[l-1].Data()
			gb := g.Biases[l-1].Data()
			cols := len(a)

			for j := range a {
				dz := da[j] * act.Derivative(a[j])
				gb[j] += dz
				for k := range prev {
					gw[k*cols+j] += dz * prev[k]
					dprev[k] += dz * w[k*cols+j]
				}
			}
		}
	}

	scale := 1 / float32(rows)
	for l := 0; l < g.Count; l++ {
		g.Weights[l].Apply(func(v float32) float32 { return v * scale })
		g.Biases[l].Apply(func(v float32) float32 { return v * scale })
	}
	return nil
}
