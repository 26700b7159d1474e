// Package dataset generates the small training sets used to exercise the
// engine: two-input logic gates, the n-bit binary adder and the f(x) = 2x
// regression, plus a per-row confirmation report.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// MaxAdderBits bounds Adder so the table stays small (4^bits rows).
const MaxAdderBits = 8

// gates maps a gate name to its outputs for (0,0), (0,1), (1,0), (1,1).
var gates = map[string][4]float32{
	"or":   {0, 1, 1, 1},
	"and":  {0, 0, 0, 1},
	"nand": {1, 1, 1, 0},
	"nor":  {1, 0, 0, 0},
	"xor":  {0, 1, 1, 0},
	"xnor": {1, 0, 0, 1},
}

// GateNames returns the supported gate names in sorted order.
func GateNames() []string {
	names := make([]string, 0, len(gates))
	for name := range gates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Gate returns the 4-row truth table of a two-input gate.
func Gate(name string) (nn.TrainingSet, error) {
	out, ok := gates[strings.ToLower(name)]
	if !ok {
		return nn.TrainingSet{}, fmt.Errorf("unknown gate %q (want one of %s)",
			name, strings.Join(GateNames(), ", "))
	}

	inputs, _ := matrix.FromSlice(4, 2, []float32{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	targets, _ := matrix.FromSlice(4, 1, out[:])
	return nn.TrainingSet{Inputs: inputs, Targets: targets}, nil
}

// Adder returns every pair of bits-wide operands and their sum.
//
// Row i encodes x = i / 2^bits and y = i % 2^bits. Inputs are the bits of x
// followed by the bits of y, least significant first. Targets are the low
// bits of x+y, least significant first, followed by the carry.
func Adder(bits int) (nn.TrainingSet, error) {
	if bits < 1 || bits > MaxAdderBits {
		return nn.TrainingSet{}, fmt.Errorf("adder: %w: bits must be in [1, %d] (got %d)",
			matrix.ErrInvalidDimension, MaxAdderBits, bits)
	}

	n := 1 << bits
	rows := n * n
	inputs, err := matrix.New(rows, 2*bits)
	if err != nil {
		return nn.TrainingSet{}, err
	}
	targets, err := matrix.New(rows, bits+1)
	if err != nil {
		return nn.TrainingSet{}, err
	}

	for i := 0; i < rows; i++ {
		x, y := i/n, i%n
		z := x + y
		for j := 0; j < bits; j++ {
			inputs.Put(i, j, float32((x>>j)&1))
			inputs.Put(i, j+bits, float32((y>>j)&1))
			targets.Put(i, j, float32((z>>j)&1))
		}
		if z >= n {
			targets.Put(i, bits, 1)
		}
	}
	return nn.TrainingSet{Inputs: inputs, Targets: targets}, nil
}

// AdderArch returns the [2n, 4n, 3n, n+1] architecture used for the adder.
func AdderArch(bits int) nn.Arch {
	return nn.Arch{2 * bits, 4 * bits, 3 * bits, bits + 1}
}

// Twice returns the five samples of f(x) = 2x for x = 0..4.
func Twice() nn.TrainingSet {
	inputs, _ := matrix.FromSlice(5, 1, []float32{0, 1, 2, 3, 4})
	targets, _ := matrix.FromSlice(5, 1, []float32{0, 2, 4, 6, 8})
	return nn.TrainingSet{Inputs: inputs, Targets: targets}
}
