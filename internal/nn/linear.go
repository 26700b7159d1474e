package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// Forward propagates Input() through every layer.
//
// For each layer i in increasing order:
//
//	a[i+1] = f(a[i] · W[i] + b[i])
//
// The caller loads the input first (see Load or Predict). Forward is a pure
// function of the input slot and the parameters: activation buffers are
// overwritten, never accumulated.
func (n *Network) Forward() {
	for i := 0; i < n.Count; i++ {
		out := n.Activations[i+1]
		if err := matrix.Dot(out, n.Activations[i], n.Weights[i]); err != nil {
			panic(fmt.Sprintf("forward: layer %d: %v", i, err))
		}
		if err := out.Add(n.Biases[i]); err != nil {
			panic(fmt.Sprintf("forward: layer %d: %v", i, err))
		}
		out.Apply(n.Activation.Apply)
	}
}

// Load copies a single-row input into the input slot.
func (n *Network) Load(input *matrix.Matrix) error {
	if err := matrix.Copy(n.Input(), input); err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	return nil
}

// Predict loads input, runs Forward and returns the output slot.
//
// The returned matrix is the network's own output buffer; it is overwritten
// by the next forward pass. Clone it to keep the values.
func (n *Network) Predict(input *matrix.Matrix) (*matrix.Matrix, error) {
	if err := n.Load(input); err != nil {
		return nil, err
	}
	n.Forward()
	return n.Output(), nil
}
