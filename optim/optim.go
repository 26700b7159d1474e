// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// Kind names an optimizer in configuration.
type Kind = optim.Kind

// Optimizer kinds.
const (
	KindSGD  = optim.KindSGD
	KindAdam = optim.KindAdam
)

// Learn performs one gradient-descent step: p -= rate * g.
func Learn(net, g *nn.Network, rate float32) error {
	return optim.Learn(net, g, rate)
}

// ParseKind resolves sgd or adam.
func ParseKind(name string) (Kind, error) {
	return optim.ParseKind(name)
}

// New builds the optimizer named by kind.
func New(kind Kind, lr, momentum float32) (Optimizer, error) {
	return optim.New(kind, lr, momentum)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       1,
//	    Momentum: 0.9,
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.01,
//	    Betas: [2]float32{0.9, 0.999},
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
