// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package trainer_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/born-ml/mlp/grad"
	"github.com/born-ml/mlp/matrix"
	"github.com/born-ml/mlp/nn"
	"github.com/born-ml/mlp/optim"
	"github.com/born-ml/mlp/trainer"
)

// TestPublicAPI trains NAND end to end through the public packages.
func TestPublicAPI(t *testing.T) {
	table, err := matrix.FromSlice(4, 3, []float32{
		0, 0, 1,
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	set, err := nn.SplitTrainingSet(table, 2)
	if err != nil {
		t.Fatalf("SplitTrainingSet: %v", err)
	}

	rng := rand.New(rand.NewSource(5))
	net, err := nn.New(nn.Arch{2, 1}, nn.Config{Packed: true, Rand: rng})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	strategy, err := grad.New(grad.MethodBackprop, 0, false)
	if err != nil {
		t.Fatalf("grad.New: %v", err)
	}

	res, err := trainer.Train(context.Background(), net, set, trainer.Config{
		Options:   trainer.Options{MaxSteps: 50000, TargetRank: 3},
		Strategy:  strategy,
		Optimizer: optim.NewSGD(optim.SGDConfig{LR: 1}),
	})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if res.State != trainer.Finished {
		t.Fatalf("state: got %s, want %s (cost %g)", res.State, trainer.Finished, res.Cost)
	}
	if trainer.CostRank(res.Cost) != res.Rank {
		t.Errorf("rank: got %d, want %d", res.Rank, trainer.CostRank(res.Cost))
	}

	in, _ := matrix.FromSlice(1, 2, []float32{1, 1})
	out, err := net.Predict(in)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if out.At(0, 0) > 0.5 {
		t.Errorf("NAND(1, 1): got %f, want < 0.5", out.At(0, 0))
	}
}
