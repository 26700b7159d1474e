package dataset_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

func TestGate(t *testing.T) {
	tests := []struct {
		name string
		want []float32
	}{
		{"or", []float32{0, 1, 1, 1}},
		{"and", []float32{0, 0, 0, 1}},
		{"nand", []float32{1, 1, 1, 0}},
		{"nor", []float32{1, 0, 0, 0}},
		{"xor", []float32{0, 1, 1, 0}},
		{"XNOR", []float32{1, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := dataset.Gate(tt.name)
			require.NoError(t, err)
			require.NoError(t, set.Validate())
			assert.Equal(t, []float32{0, 0, 0, 1, 1, 0, 1, 1}, set.Inputs.Data())
			assert.Equal(t, tt.want, set.Targets.Data())
		})
	}

	_, err := dataset.Gate("implies")
	assert.Error(t, err)
	assert.Len(t, dataset.GateNames(), 6)
}

func TestAdder(t *testing.T) {
	set, err := dataset.Adder(2)
	require.NoError(t, err)

	assert.Equal(t, 16, set.Rows())
	assert.Equal(t, 4, set.Inputs.Cols())
	assert.Equal(t, 3, set.Targets.Cols())

	for i := 0; i < set.Rows(); i++ {
		in, err := set.Inputs.Row(i)
		require.NoError(t, err)
		out, err := set.Targets.Row(i)
		require.NoError(t, err)

		x := dataset.DecodeBits(in.Data()[:2])
		y := dataset.DecodeBits(in.Data()[2:])
		assert.Equal(t, i/4, x, "row %d", i)
		assert.Equal(t, i%4, y, "row %d", i)
		assert.Equal(t, x+y, dataset.DecodeBits(out.Data()), "row %d", i)
	}

	// 3 + 2 = 5 = 0b101: low bits 1,0 then carry 1
	assert.Equal(t, []float32{1, 0, 1}, set.Targets.Data()[14*3:15*3])

	for _, bits := range []int{0, -1, dataset.MaxAdderBits + 1} {
		_, err := dataset.Adder(bits)
		assert.ErrorIs(t, err, matrix.ErrInvalidDimension, "bits %d", bits)
	}
	assert.Equal(t, nn.Arch{4, 8, 6, 3}, dataset.AdderArch(2))
}

func TestTwice(t *testing.T) {
	set := dataset.Twice()
	require.NoError(t, set.Validate())
	for i := 0; i < set.Rows(); i++ {
		assert.Equal(t, 2*set.Inputs.At(i, 0), set.Targets.At(i, 0))
	}
}

func TestDecodeBits(t *testing.T) {
	assert.Equal(t, 0, dataset.DecodeBits(nil))
	assert.Equal(t, 1, dataset.DecodeBits([]float32{0.9, 0.1}))
	assert.Equal(t, 6, dataset.DecodeBits([]float32{0.2, 0.51, 0.99}))
	assert.Equal(t, 5, dataset.DecodeBits([]float32{1, 0, 1}))
}

// perfectOr is a single neuron that computes OR with large margins.
func perfectOr(t *testing.T) *nn.Network {
	t.Helper()
	net, err := nn.New(nn.Arch{2, 1}, nn.Config{})
	require.NoError(t, err)
	net.Weights[0].Fill(20)
	net.Biases[0].Fill(-10)
	return net
}

func TestConfirm(t *testing.T) {
	net := perfectOr(t)

	or, err := dataset.Gate("or")
	require.NoError(t, err)
	report, err := dataset.Confirm(net, or)
	require.NoError(t, err)
	assert.True(t, report.Pass())
	assert.Equal(t, 1.0, report.Accuracy())
	assert.Less(t, report.Cost, float32(1e-3))

	// Against AND, (0,1) and (1,0) fire but AND expects 0.
	and, err := dataset.Gate("and")
	require.NoError(t, err)
	report, err = dataset.Confirm(net, and)
	require.NoError(t, err)
	assert.False(t, report.Pass())
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 0.5, report.Accuracy())
	assert.False(t, report.Rows[1].OK)
	assert.True(t, report.Rows[3].OK)

	_, err = dataset.Confirm(net, dataset.Twice())
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestWriteTable(t *testing.T) {
	net := perfectOr(t)
	ex, err := dataset.Lookup("or", 0)
	require.NoError(t, err)
	report, err := dataset.Confirm(net, ex.Set)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, ex.Format))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"OK", "a", "b", "exp", "act"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"OK", "1", "0", "1", "1"}, strings.Fields(lines[3]))
	assert.Contains(t, lines[5], "4/4 rows correct")

	buf.Reset()
	require.NoError(t, report.WriteTable(&buf, nil))
	assert.Contains(t, buf.String(), "in")
}

func TestLookup(t *testing.T) {
	ex, err := dataset.Lookup("Adder", 3)
	require.NoError(t, err)
	assert.Equal(t, "adder", ex.Name)
	assert.Equal(t, nn.Arch{6, 12, 9, 4}, ex.Arch)
	assert.Equal(t, 64, ex.Set.Rows())

	ex, err = dataset.Lookup("xor", 0)
	require.NoError(t, err)
	assert.Equal(t, nn.Arch{2, 4, 1}, ex.Arch)

	ex, err = dataset.Lookup("twice", 0)
	require.NoError(t, err)
	assert.Equal(t, "identity", ex.Activation)

	_, err = dataset.Lookup("adder", 0)
	assert.Error(t, err)
	_, err = dataset.Lookup("mnist", 0)
	assert.Error(t, err)
}
