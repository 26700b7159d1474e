package dataset

import (
	"fmt"
	"strings"

	"github.com/born-ml/mlp/internal/nn"
)

// Example is a named training problem with a suggested network shape.
type Example struct {
	Name       string
	Set        nn.TrainingSet
	Arch       nn.Arch
	Activation string
	Format     Formatter
}

// Lookup builds the example called name. bits is only used by "adder".
//
// Names: the gates (see GateNames), "adder" and "twice".
func Lookup(name string, bits int) (Example, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "adder":
		set, err := Adder(bits)
		if err != nil {
			return Example{}, err
		}
		return Example{
			Name:       name,
			Set:        set,
			Arch:       AdderArch(bits),
			Activation: "sigmoid",
			Format:     Bits{Names: []string{"x", "y"}, Widths: []int{bits, bits}},
		}, nil

	case "twice":
		return Example{
			Name:       name,
			Set:        Twice(),
			Arch:       nn.Arch{1, 1},
			Activation: "identity",
			Format:     Values{},
		}, nil
	}

	set, err := Gate(name)
	if err != nil {
		return Example{}, fmt.Errorf("unknown example %q: want adder, twice or a gate (%s)",
			name, strings.Join(GateNames(), ", "))
	}
	arch := nn.Arch{2, 1}
	if name == "xor" || name == "xnor" {
		// not linearly separable
		arch = nn.Arch{2, 4, 1}
	}
	return Example{
		Name:       name,
		Set:        set,
		Arch:       arch,
		Activation: "sigmoid",
		Format:     Bits{Names: []string{"a", "b"}, Widths: []int{1, 1}},
	}, nil
}
