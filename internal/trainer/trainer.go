// Package trainer drives a network through batches of gradient and optimizer
// steps until its cost reaches a target order of magnitude, the step budget
// runs out, or the caller cancels.
//
// The loop is a small state machine:
//
//	Idle → Training → {Stopped | Finished | Cancelled}
//
// Control returns to the caller only between batches: the context is polled
// there and the OnBatch hook runs there. A batch always runs to completion.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/born-ml/mlp/internal/grad"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// ErrNotIdle is returned by Run on a trainer that has already run.
var ErrNotIdle = errors.New("trainer: already run")

// State is the phase of a training run.
type State int

// Training states.
const (
	Idle State = iota
	Training
	Stopped   // step budget exhausted before the target rank
	Finished  // target rank reached
	Cancelled // context done between batches
)

// String returns the upper-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Training:
		return "TRAINING"
	case Stopped:
		return "STOPPED"
	case Finished:
		return "FINISHED"
	case Cancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further batches are scheduled from s.
func (s State) Terminal() bool {
	return s == Stopped || s == Finished || s == Cancelled
}

// Options are the training hyperparameters.
type Options struct {
	MaxSteps   int         // step budget (default: 10000)
	TargetRank int         // stop once CostRank(cost) reaches this (default: 4)
	Rate       float32     // base learning rate (default: 1)
	BatchSize  int         // steps between yields to the caller (default: 100)
	Aggression float32     // rate schedule strength, 0 for a constant rate
	Method     grad.Method // gradient strategy when Config.Strategy is nil (default: backprop)
	Epsilon    float32     // finite-difference step (default: 1e-3)
	Central    bool        // central finite differences
}

// DefaultOptions returns the default hyperparameters.
func DefaultOptions() Options {
	return Options{
		MaxSteps:   10000,
		TargetRank: 4,
		Rate:       1,
		BatchSize:  100,
		Method:     grad.MethodBackprop,
		Epsilon:    1e-3,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxSteps == 0 {
		o.MaxSteps = d.MaxSteps
	}
	if o.TargetRank == 0 {
		o.TargetRank = d.TargetRank
	}
	if o.Rate == 0 {
		o.Rate = d.Rate
	}
	if o.BatchSize == 0 {
		o.BatchSize = d.BatchSize
	}
	if o.Method == "" {
		o.Method = d.Method
	}
	if o.Epsilon == 0 {
		o.Epsilon = d.Epsilon
	}
	return o
}

// Validate checks that the options describe a runnable training loop.
func (o Options) Validate() error {
	if o.MaxSteps <= 0 {
		return fmt.Errorf("trainer: max steps must be > 0 (got %d)", o.MaxSteps)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("trainer: batch size must be > 0 (got %d)", o.BatchSize)
	}
	if o.TargetRank < 0 || o.TargetRank > MaxRank {
		return fmt.Errorf("trainer: target rank must be in [0, %d] (got %d)", MaxRank, o.TargetRank)
	}
	if !(o.Rate > 0) {
		return fmt.Errorf("trainer: rate must be > 0 (got %g)", o.Rate)
	}
	if o.Aggression < 0 {
		return fmt.Errorf("trainer: aggression must be >= 0 (got %g)", o.Aggression)
	}
	return nil
}

// Progress is reported to Config.OnBatch after every batch.
type Progress struct {
	State State
	Step  int
	Cost  float32
	Rank  int
	Rate  float32
}

// Config wires a trainer's collaborators. Zero fields take defaults.
type Config struct {
	Options

	// Strategy computes gradients (default: built from Options.Method).
	Strategy grad.Strategy

	// Optimizer applies gradients (default: plain SGD). Its learning rate is
	// set from the rate schedule before every batch.
	Optimizer optim.Optimizer

	// Logger receives run events (default: discard).
	Logger *slog.Logger

	// OnBatch is called between batches, after the state has been updated.
	OnBatch func(Progress)
}

// Result summarizes a finished run.
type Result struct {
	State   State
	Steps   int
	Cost    float32 // may be non-finite if training diverged
	Rank    int
	Elapsed time.Duration
}

// Trainer owns a network, its gradient network and a training set for the
// duration of one run. It is not safe for concurrent use.
type Trainer struct {
	net  *nn.Network
	grad *nn.Network
	set  nn.TrainingSet

	opts      Options
	strategy  grad.Strategy
	optimizer optim.Optimizer
	logger    *slog.Logger
	onBatch   func(Progress)

	state   State
	step    int
	cost    float32
	rank    int
	history History
}

// New validates the configuration and allocates the gradient network.
func New(net *nn.Network, set nn.TrainingSet, cfg Config) (*Trainer, error) {
	if net == nil {
		return nil, errors.New("trainer: nil network")
	}
	if err := net.CheckSet(set); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}

	opts := cfg.Options.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	strategy := cfg.Strategy
	if strategy == nil {
		var err error
		strategy, err = grad.New(opts.Method, opts.Epsilon, opts.Central)
		if err != nil {
			return nil, fmt.Errorf("trainer: %w", err)
		}
	}

	optimizer := cfg.Optimizer
	if optimizer == nil {
		optimizer = optim.NewSGD(optim.SGDConfig{LR: opts.Rate})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g, err := nn.NewGradient(net)
	if err != nil {
		return nil, fmt.Errorf("trainer: gradient network: %w", err)
	}

	return &Trainer{
		net:       net,
		grad:      g,
		set:       set,
		opts:      opts,
		strategy:  strategy,
		optimizer: optimizer,
		logger:    logger,
		onBatch:   cfg.OnBatch,
		state:     Idle,
	}, nil
}

// State returns the current state.
func (t *Trainer) State() State {
	return t.state
}

// Options returns the effective hyperparameters.
func (t *Trainer) Options() Options {
	return t.opts
}

// Gradient returns the gradient network from the last step.
func (t *Trainer) Gradient() *nn.Network {
	return t.grad
}

// History returns the per-batch cost history.
func (t *Trainer) History() *History {
	return &t.history
}

// Run trains until a terminal state is reached.
//
// Run may be called once. Cancellation of ctx is observed before each batch,
// so a cancelled run has completed a whole number of batches. Errors from the
// gradient strategy or optimizer abort the run in the Stopped state.
func (t *Trainer) Run(ctx context.Context) (Result, error) {
	if t.state != Idle {
		return t.result(0), ErrNotIdle
	}

	start := time.Now()
	t.state = Training
	t.cost = t.currentCost()
	t.rank = CostRank(t.cost)

	t.logger.Info("training started",
		"arch", []int(t.net.Arch),
		"rows", t.set.Rows(),
		"strategy", t.strategy.Name(),
		"max_steps", t.opts.MaxSteps,
		"target_rank", t.opts.TargetRank,
		"cost", t.cost,
	)

	for t.state == Training {
		if err := ctx.Err(); err != nil {
			t.state = Cancelled
			break
		}

		rate := ScheduledRate(t.opts.Rate, t.opts.Aggression, t.cost, t.step, t.opts.MaxSteps)
		if err := t.batch(rate); err != nil {
			t.state = Stopped
			return t.result(time.Since(start)), err
		}

		t.cost = t.currentCost()
		t.rank = CostRank(t.cost)
		t.history.Add(t.cost)

		if t.step >= t.opts.MaxSteps {
			t.state = Stopped
		}
		if t.rank >= t.opts.TargetRank {
			t.state = Finished
		}

		t.logger.Debug("batch",
			"step", t.step,
			"cost", t.cost,
			"rank", t.rank,
			"rate", rate,
			"state", t.state.String(),
		)
		if t.onBatch != nil {
			t.onBatch(Progress{State: t.state, Step: t.step, Cost: t.cost, Rank: t.rank, Rate: rate})
		}
	}

	res := t.result(time.Since(start))
	switch res.State {
	case Finished:
		t.logger.Info(fmt.Sprintf("Finished in %s and %d steps", res.Elapsed, res.Steps),
			"cost", res.Cost, "rank", res.Rank)
	case Stopped:
		t.logger.Warn(fmt.Sprintf("Stopping at rank %d after %d steps", res.Rank, res.Steps),
			"cost", res.Cost)
	case Cancelled:
		t.logger.Info("training cancelled", "step", res.Steps, "cost", res.Cost, "rank", res.Rank)
	}
	return res, nil
}

// batch runs up to BatchSize gradient and optimizer steps, never past the
// step budget.
func (t *Trainer) batch(rate float32) error {
	t.optimizer.SetLR(rate)
	n := min(t.opts.BatchSize, t.opts.MaxSteps-t.step)
	for i := 0; i < n; i++ {
		if err := t.strategy.Compute(t.net, t.grad, t.set); err != nil {
			return fmt.Errorf("step %d: %w", t.step, err)
		}
		if err := t.optimizer.Step(t.net, t.grad); err != nil {
			return fmt.Errorf("step %d: %w", t.step, err)
		}
		t.step++
	}
	return nil
}

// currentCost evaluates the cost. The set was checked in New.
func (t *Trainer) currentCost() float32 {
	c, err := t.net.Cost(t.set)
	if err != nil {
		panic(fmt.Sprintf("trainer: cost: %v", err))
	}
	return c
}

func (t *Trainer) result(elapsed time.Duration) Result {
	return Result{
		State:   t.state,
		Steps:   t.step,
		Cost:    t.cost,
		Rank:    t.rank,
		Elapsed: elapsed,
	}
}

// Train is a convenience wrapper: New followed by Run.
func Train(ctx context.Context, net *nn.Network, set nn.TrainingSet, cfg Config) (Result, error) {
	t, err := New(net, set, cfg)
	if err != nil {
		return Result{}, err
	}
	return t.Run(ctx)
}
