// Package nn implements the feed-forward network of the training engine.
//
// This package provides:
//   - Arch and Layout: architecture description and packed arena layout
//   - Network: weights, biases and activations for every layer
//   - Forward, Cost, Predict: evaluation on one sample or a whole set
//   - Activations: Sigmoid (default), ReLU, Tanh, Identity
//   - TrainingSet: paired input/target matrices
//
// A network can keep each matrix in its own storage or pack all of them into
// one arena (Config.Packed). Both representations behave identically; the
// packed one additionally exposes every parameter as a single slice.
package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/mlp/internal/matrix"
)

// Config controls network construction.
type Config struct {
	Packed     bool       // allocate one arena and make every matrix a view into it
	Activation Activation // pointwise activation (default: Sigmoid)
	Rand       *rand.Rand // when set, weights and biases are seeded uniformly in [-1, 1)
}

// Network is one feed-forward architecture instance.
//
// For Count layers there are Count weight and bias matrices and Count+1
// activation matrices: Activations[0] is the input slot and
// Activations[Count] is the output slot.
type Network struct {
	Arch        Arch
	Count       int
	Weights     []*matrix.Matrix // Weights[i]: Arch[i] × Arch[i+1]
	Biases      []*matrix.Matrix // Biases[i]: 1 × Arch[i+1]
	Activations []*matrix.Matrix // Activations[i]: 1 × Arch[i]
	Activation  Activation

	arena  []byte // backing storage when packed
	layout Layout
}

// New allocates a network for arch.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.New(nn.Arch{2, 2, 1}, nn.Config{Rand: rng})
func New(arch Arch, cfg Config) (*Network, error) {
	layout, err := ComputeLayout(arch)
	if err != nil {
		return nil, err
	}
	if cfg.Activation == nil {
		cfg.Activation = Sigmoid{}
	}

	count := len(arch) - 1
	net := &Network{
		Arch:        arch.Clone(),
		Count:       count,
		Weights:     make([]*matrix.Matrix, count),
		Biases:      make([]*matrix.Matrix, count),
		Activations: make([]*matrix.Matrix, count+1),
		Activation:  cfg.Activation,
		layout:      layout,
	}

	if cfg.Packed {
		err = net.allocPacked()
	} else {
		err = net.allocIndependent()
	}
	if err != nil {
		return nil, err
	}

	if cfg.Rand != nil {
		if err := net.Randomize(cfg.Rand); err != nil {
			return nil, err
		}
	}
	return net, nil
}

// NewGradient allocates a zeroed network shaped like net, suitable for
// holding its gradient. It shares net's representation and activation.
func NewGradient(net *Network) (*Network, error) {
	return New(net.Arch, Config{Packed: net.IsPacked(), Activation: net.Activation})
}

func (n *Network) allocIndependent() error {
	var err error
	if n.Activations[0], err = matrix.New(1, n.Arch[0]); err != nil {
		return err
	}
	for i := 0; i < n.Count; i++ {
		if n.Weights[i], err = matrix.New(n.Arch[i], n.Arch[i+1]); err != nil {
			return err
		}
		if n.Biases[i], err = matrix.New(1, n.Arch[i+1]); err != nil {
			return err
		}
		if n.Activations[i+1], err = matrix.New(1, n.Arch[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) allocPacked() error {
	const floatSize = 4
	n.arena = make([]byte, n.layout.Size*floatSize)

	view := func(s Span, rows, cols int) (*matrix.Matrix, error) {
		return matrix.View(n.arena, s.Offset*floatSize, rows, cols)
	}

	var err error
	if n.Activations[0], err = view(n.layout.Input, 1, n.Arch[0]); err != nil {
		return err
	}
	for i := 0; i < n.Count; i++ {
		rows, cols := n.Arch[i], n.Arch[i+1]
		if n.Weights[i], err = view(n.layout.Weights[i], rows, cols); err != nil {
			return err
		}
		if n.Biases[i], err = view(n.layout.Biases[i], 1, cols); err != nil {
			return err
		}
		if n.Activations[i+1], err = view(n.layout.Activations[i], 1, cols); err != nil {
			return err
		}
	}
	return nil
}

// IsPacked reports whether all matrices are views into one arena.
func (n *Network) IsPacked() bool {
	return n.arena != nil
}

// Layout returns the packed arena layout for the network's architecture.
// It is computed for both representations.
func (n *Network) Layout() Layout {
	return n.layout
}

// Params returns every weight followed by every bias as one slice.
// Only packed networks have such a slice; others return nil.
func (n *Network) Params() []float32 {
	if !n.IsPacked() {
		return nil
	}
	whole, err := matrix.View(n.arena, 0, 1, n.layout.Size)
	if err != nil {
		panic(fmt.Sprintf("nn: corrupt arena: %v", err))
	}
	span := n.layout.Params()
	return whole.Data()[span.Offset:span.End()]
}

// Parameters returns the trainable matrices: all weights, then all biases.
func (n *Network) Parameters() []*matrix.Matrix {
	params := make([]*matrix.Matrix, 0, 2*n.Count)
	params = append(params, n.Weights...)
	params = append(params, n.Biases...)
	return params
}

// ParamCount returns the number of scalar weights and biases.
func (n *Network) ParamCount() int {
	return n.layout.Params().Len
}

// Input returns the input activation slot.
func (n *Network) Input() *matrix.Matrix {
	return n.Activations[0]
}

// Output returns the output activation slot.
func (n *Network) Output() *matrix.Matrix {
	return n.Activations[n.Count]
}

// Randomize seeds every weight and bias uniformly in [-1, 1).
func (n *Network) Randomize(rng *rand.Rand) error {
	if params := n.Params(); params != nil {
		for i := range params {
			params[i] = rng.Float32()*2 - 1
		}
		return nil
	}
	for _, p := range n.Parameters() {
		if err := p.Seed(matrix.SeedSymmetric, rng); err != nil {
			return err
		}
	}
	return nil
}

// Zero clears every weight, bias and activation.
func (n *Network) Zero() {
	for i := 0; i < n.Count; i++ {
		n.Weights[i].Zero()
		n.Biases[i].Zero()
	}
	for _, a := range n.Activations {
		a.Zero()
	}
}

// String renders the weights and biases of every layer.
func (n *Network) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "network %v (%d layers, %s)\n", []int(n.Arch), n.Count, n.Activation.Name())
	for i := 0; i < n.Count; i++ {
		fmt.Fprintf(&sb, "w%d %s\n%s", i, n.Weights[i].Dim(), n.Weights[i])
		fmt.Fprintf(&sb, "b%d %s\n%s", i, n.Biases[i].Dim(), n.Biases[i])
	}
	return sb.String()
}
