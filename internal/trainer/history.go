package trainer

import (
	"gonum.org/v1/gonum/floats"
)

// History records the cost after every batch.
type History struct {
	costs []float64
}

// Add appends a cost sample.
func (h *History) Add(cost float32) {
	h.costs = append(h.costs, float64(cost))
}

// Len returns the number of recorded samples.
func (h *History) Len() int {
	return len(h.costs)
}

// Costs returns a copy of the recorded samples.
func (h *History) Costs() []float64 {
	return append([]float64(nil), h.costs...)
}

// Last returns the most recent sample, or 0 when empty.
func (h *History) Last() float64 {
	if len(h.costs) == 0 {
		return 0
	}
	return h.costs[len(h.costs)-1]
}

// Min returns the lowest recorded cost, or 0 when empty.
func (h *History) Min() float64 {
	if len(h.costs) == 0 {
		return 0
	}
	return floats.Min(h.costs)
}

// WindowMeans splits the samples into consecutive windows of size and
// returns the mean of each. A trailing partial window is averaged over its
// own length. size < 1 is treated as 1.
func (h *History) WindowMeans(size int) []float64 {
	if size < 1 {
		size = 1
	}
	means := make([]float64, 0, (len(h.costs)+size-1)/size)
	for start := 0; start < len(h.costs); start += size {
		end := min(start+size, len(h.costs))
		window := h.costs[start:end]
		means = append(means, floats.Sum(window)/float64(len(window)))
	}
	return means
}

// Decreasing reports whether the window means never increase by more than
// slack from one window to the next and the last mean is below the first.
func (h *History) Decreasing(size int, slack float64) bool {
	means := h.WindowMeans(size)
	if len(means) < 2 {
		return false
	}
	for i := 1; i < len(means); i++ {
		if means[i] > means[i-1]+slack {
			return false
		}
	}
	return means[len(means)-1] < means[0]
}
