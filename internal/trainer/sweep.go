package trainer

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
)

// Job prepares one independent run of a sweep. Every call must return a
// network that no other run touches; the training set is only read and may
// be shared.
type Job func(seed int64) (*nn.Network, nn.TrainingSet, Config, error)

// Outcome is the result of one seed in a sweep.
type Outcome struct {
	Seed   int64
	Net    *nn.Network
	Result Result
	Err    error
}

// Sweep trains one network per seed, running up to cfg.NumWorkers trainers
// at once. Outcomes are returned in seed order. Seeds skipped because ctx
// was done carry the context error.
func Sweep(ctx context.Context, seeds []int64, job Job, cfg parallel.Config) []Outcome {
	out := make([]Outcome, len(seeds))
	started := make([]bool, len(seeds))
	for i, seed := range seeds {
		out[i].Seed = seed
	}

	err := parallel.For(ctx, len(seeds), func(ctx context.Context, i int) {
		started[i] = true
		o := &out[i]
		net, set, tcfg, err := job(o.Seed)
		if err != nil {
			o.Err = err
			return
		}
		o.Net = net
		o.Result, o.Err = Train(ctx, net, set, tcfg)
	}, cfg)

	if err != nil {
		for i := range out {
			if !started[i] {
				out[i].Err = err
			}
		}
	}
	return out
}

// Best picks the most successful outcome: Finished runs beat the rest, then
// the lowest cost wins. ok is false when every run failed.
func Best(outcomes []Outcome) (best Outcome, ok bool) {
	for _, o := range outcomes {
		if o.Err != nil || o.Net == nil {
			continue
		}
		if !ok || better(o.Result, best.Result) {
			best, ok = o, true
		}
	}
	return best, ok
}

func better(a, b Result) bool {
	if (a.State == Finished) != (b.State == Finished) {
		return a.State == Finished
	}
	if math32.IsNaN(b.Cost) {
		return !math32.IsNaN(a.Cost)
	}
	return a.Cost < b.Cost
}
