package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// Arch is a network architecture: the width of every layer, input first.
type Arch []int

// Validate checks that arch has at least an input and an output layer and
// that every width is positive.
func (a Arch) Validate() error {
	if len(a) < 2 {
		return fmt.Errorf("arch %v: %w: need at least 2 layers", []int(a), matrix.ErrInvalidDimension)
	}
	for i, w := range a {
		if w <= 0 {
			return fmt.Errorf("arch %v: %w: layer %d has width %d", []int(a), matrix.ErrInvalidDimension, i, w)
		}
	}
	return nil
}

// Equal reports whether two architectures have the same widths.
func (a Arch) Equal(other Arch) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the architecture.
func (a Arch) Clone() Arch {
	clone := make(Arch, len(a))
	copy(clone, a)
	return clone
}

// Span is a contiguous run of float32 elements inside a packed arena.
type Span struct {
	Offset int // first element
	Len    int // element count
}

// End returns the element index one past the span.
func (s Span) End() int {
	return s.Offset + s.Len
}

// Layout partitions a single float32 arena into the blocks of a network.
//
// Blocks are laid out in this order:
//
//	input | weights[0..n) | biases[0..n) | activations[1..n]
//
// so that all trainable parameters form one contiguous run (see Params).
type Layout struct {
	Input       Span
	Weights     []Span
	Biases      []Span
	Activations []Span // activations[1..n], the input block is separate
	Size        int    // total element count
}

// Params returns the span covering every weight and bias.
func (l Layout) Params() Span {
	start := l.Weights[0].Offset
	return Span{Offset: start, Len: l.Biases[len(l.Biases)-1].End() - start}
}

// ComputeLayout computes the packed arena layout for arch.
func ComputeLayout(arch Arch) (Layout, error) {
	if err := arch.Validate(); err != nil {
		return Layout{}, err
	}

	count := len(arch) - 1
	l := Layout{
		Weights:     make([]Span, count),
		Biases:      make([]Span, count),
		Activations: make([]Span, count),
	}

	l.Input = Span{Offset: 0, Len: arch[0]}
	l.Size = l.Input.End()

	for i := 0; i < count; i++ {
		l.Weights[i] = Span{Offset: l.Size, Len: arch[i] * arch[i+1]}
		l.Size = l.Weights[i].End()
	}
	for i := 0; i < count; i++ {
		l.Biases[i] = Span{Offset: l.Size, Len: arch[i+1]}
		l.Size = l.Biases[i].End()
	}
	for i := 0; i < count; i++ {
		l.Activations[i] = Span{Offset: l.Size, Len: arch[i+1]}
		l.Size = l.Activations[i].End()
	}

	return l, nil
}
