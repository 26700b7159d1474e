package trainer

import (
	"github.com/chewxy/math32"
)

// MaxRank is the highest cost rank; any cost at or below 1e-10 reaches it.
const MaxRank = 10

// CostRank discretizes cost into its negated order of magnitude:
//
//	rank = -floor(log10(cost)), clamped to [0, MaxRank]
//
// A cost of 0.05 has rank 2, 0.5 has rank 1 and anything ≥ 1 has rank 0.
// Non-positive costs rank MaxRank; NaN and +Inf rank 0.
func CostRank(cost float32) int {
	switch {
	case math32.IsNaN(cost), math32.IsInf(cost, 1):
		return 0
	case cost <= 0:
		return MaxRank
	}

	exp := math32.Floor(math32.Log10(cost))
	if exp <= -MaxRank {
		return MaxRank
	}
	if exp >= 0 {
		return 0
	}
	return -int(exp)
}

// ScheduledRate returns the learning rate for the next batch.
//
// With aggression 0 the rate is constant. Otherwise the rate grows as the
// cost falls and as training progresses:
//
//	a = clamp(1, 10, 1 / (cost + 1 - aggression*step/maxSteps))
//	r = rate/2 + rate/2*a
//
// so r stays within [rate, 5.5*rate]. A non-positive denominator saturates
// at the upper bound; a NaN cost leaves the base rate unchanged.
func ScheduledRate(rate, aggression, cost float32, step, maxSteps int) float32 {
	if aggression == 0 || maxSteps <= 0 || math32.IsNaN(cost) {
		return rate
	}

	denom := cost + 1 - aggression*float32(step)/float32(maxSteps)
	a := float32(10)
	if denom > 0 {
		a = clamp(1, 10, 1/denom)
	}
	return rate/2 + rate/2*a
}

func clamp(lo, hi, v float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
