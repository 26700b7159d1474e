package nn

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Init names a weight initialization scheme.
type Init string

// Supported initialization schemes.
const (
	InitUniform Init = "uniform" // weights and biases in [-1, 1)
	InitXavier  Init = "xavier"  // Glorot-bounded weights, zero biases
	InitZero    Init = "zero"
)

// ParseInit resolves a configuration name. An empty name selects InitUniform.
func ParseInit(name string) (Init, error) {
	switch Init(strings.ToLower(strings.TrimSpace(name))) {
	case "", InitUniform:
		return InitUniform, nil
	case InitXavier:
		return InitXavier, nil
	case InitZero:
		return InitZero, nil
	default:
		return "", fmt.Errorf("unknown init %q", name)
	}
}

// Initialize reseeds the parameters according to scheme.
func (n *Network) Initialize(scheme Init, rng *rand.Rand) error {
	switch scheme {
	case InitUniform:
		return n.Randomize(rng)
	case InitXavier:
		n.Xavier(rng)
		return nil
	case InitZero:
		for _, p := range n.Parameters() {
			p.Zero()
		}
		return nil
	default:
		return fmt.Errorf("unknown init %q", scheme)
	}
}

// Xavier (Glorot) initialization for weights.
//
// Each weight matrix W[i] is drawn from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))) with
// fan_in = Arch[i] and fan_out = Arch[i+1]. Biases are set to zero.
func (n *Network) Xavier(rng *rand.Rand) {
	for i := 0; i < n.Count; i++ {
		bound := math.Sqrt(6.0 / float64(n.Arch[i]+n.Arch[i+1]))
		data := n.Weights[i].Data()
		for j := range data {
			data[j] = float32((rng.Float64()*2.0 - 1.0) * bound)
		}
		n.Biases[i].Zero()
	}
}
