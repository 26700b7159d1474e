// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trainer runs batches of gradient and optimizer steps until the
// network reaches a target cost rank, exhausts its step budget or is
// cancelled.
//
// Example:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	res, err := trainer.Train(ctx, net, set, trainer.Config{
//	    Options: trainer.Options{MaxSteps: 50000, TargetRank: 3, Rate: 1},
//	    Logger:  slog.Default(),
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.State, res.Steps, res.Cost)
package trainer

import (
	"context"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/trainer"
)

// Trainer owns a network and its gradient network for one run.
type Trainer = trainer.Trainer

// Config wires a trainer's collaborators.
type Config = trainer.Config

// Options are the training hyperparameters.
type Options = trainer.Options

// Result summarizes a finished run.
type Result = trainer.Result

// Progress is reported after every batch.
type Progress = trainer.Progress

// History records the cost after every batch.
type History = trainer.History

// State is the phase of a training run.
type State = trainer.State

// Training states.
const (
	Idle      = trainer.Idle
	Training  = trainer.Training
	Stopped   = trainer.Stopped
	Finished  = trainer.Finished
	Cancelled = trainer.Cancelled
)

// MaxRank is the highest cost rank.
const MaxRank = trainer.MaxRank

// ErrNotIdle is returned by Run on a trainer that has already run.
var ErrNotIdle = trainer.ErrNotIdle

// DefaultOptions returns the default hyperparameters.
func DefaultOptions() Options {
	return trainer.DefaultOptions()
}

// New validates the configuration and allocates the gradient network.
func New(net *nn.Network, set nn.TrainingSet, cfg Config) (*Trainer, error) {
	return trainer.New(net, set, cfg)
}

// Train runs New followed by Run.
func Train(ctx context.Context, net *nn.Network, set nn.TrainingSet, cfg Config) (Result, error) {
	return trainer.Train(ctx, net, set, cfg)
}

// CostRank returns -floor(log10(cost)) clamped to [0, MaxRank].
func CostRank(cost float32) int {
	return trainer.CostRank(cost)
}

// ScheduledRate returns the learning rate for the next batch.
func ScheduledRate(rate, aggression, cost float32, step, maxSteps int) float32 {
	return trainer.ScheduledRate(rate, aggression, cost, step, maxSteps)
}
