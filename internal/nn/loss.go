package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/mlp/internal/matrix"
)

// TrainingSet pairs inputs with expected outputs; row i of Inputs is labeled
// by row i of Targets.
type TrainingSet struct {
	Inputs  *matrix.Matrix
	Targets *matrix.Matrix
}

// SplitTrainingSet splits a combined table whose first inputCols columns are
// inputs and whose remaining columns are targets.
func SplitTrainingSet(table *matrix.Matrix, inputCols int) (TrainingSet, error) {
	parts, err := table.SplitColumns(inputCols, table.Cols()-inputCols)
	if err != nil {
		return TrainingSet{}, fmt.Errorf("split training set: %w", err)
	}
	return TrainingSet{Inputs: parts[0], Targets: parts[1]}, nil
}

// Rows returns the number of examples.
func (s TrainingSet) Rows() int {
	return s.Inputs.Rows()
}

// Validate checks that inputs and targets have the same number of rows.
func (s TrainingSet) Validate() error {
	if s.Inputs == nil || s.Targets == nil {
		return fmt.Errorf("training set: %w: missing inputs or targets", matrix.ErrInvalidDimension)
	}
	if s.Inputs.Rows() != s.Targets.Rows() {
		return fmt.Errorf("training set: %w: %d input rows, %d target rows",
			matrix.ErrDimensionMismatch, s.Inputs.Rows(), s.Targets.Rows())
	}
	return nil
}

// Shuffle permutes the examples in place, moving each input row together
// with its target row.
func (s TrainingSet) Shuffle(rng *rand.Rand) {
	for i := s.Rows() - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s.Inputs.SwapRows(i, j)
		s.Targets.SwapRows(i, j)
	}
}

// CheckSet verifies that set fits the network's input and output widths.
func (n *Network) CheckSet(set TrainingSet) error {
	if err := set.Validate(); err != nil {
		return err
	}
	if set.Inputs.Cols() != n.Arch[0] {
		return fmt.Errorf("training set: %w: %d input columns for arch %v",
			matrix.ErrDimensionMismatch, set.Inputs.Cols(), []int(n.Arch))
	}
	if set.Targets.Cols() != n.Arch[n.Count] {
		return fmt.Errorf("training set: %w: %d target columns for arch %v",
			matrix.ErrDimensionMismatch, set.Targets.Cols(), []int(n.Arch))
	}
	return nil
}

// LoadRow copies row i of inputs into the input slot without allocating.
// The caller guarantees inputs has the network's input width.
func (n *Network) LoadRow(inputs *matrix.Matrix, i int) {
	cols := inputs.Cols()
	copy(n.Input().Data(), inputs.Data()[i*cols:(i+1)*cols])
}

// Cost returns the mean squared error of the network over set.
//
//	cost = (1/rows) Σ_i Σ_j (targets[i][j] - output_i[j])²
//
// Every row is loaded and forwarded, so activations hold the last row's
// values afterwards.
func (n *Network) Cost(set TrainingSet) (float32, error) {
	if err := n.CheckSet(set); err != nil {
		return 0, err
	}
	return n.cost(set), nil
}

// cost is Cost without validation, for hot loops that checked the set once.
func (n *Network) cost(set TrainingSet) float32 {
	rows := set.Rows()
	out := n.Output().Data()
	targets := set.Targets.Data()
	cols := set.Targets.Cols()

	var total float64
	for i := 0; i < rows; i++ {
		n.LoadRow(set.Inputs, i)
		n.Forward()
		for j := 0; j < cols; j++ {
			d := float64(targets[i*cols+j] - out[j])
			total += d * d
		}
	}
	return float32(total / float64(rows))
}
