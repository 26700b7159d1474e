// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// Network is one feed-forward architecture instance.
type Network = nn.Network

// Config controls network construction.
type Config = nn.Config

// Arch lists layer widths, input first.
type Arch = nn.Arch

// Layout describes where each matrix lives in a packed arena.
type Layout = nn.Layout

// Span is a float32 range within a packed arena.
type Span = nn.Span

// TrainingSet pairs inputs with expected outputs.
type TrainingSet = nn.TrainingSet

// New allocates a network for arch.
//
// Example:
//
//	net, err := nn.New(nn.Arch{2, 2, 1}, nn.Config{Rand: rng})
func New(arch Arch, cfg Config) (*Network, error) {
	return nn.New(arch, cfg)
}

// NewGradient allocates a zeroed network shaped like net.
func NewGradient(net *Network) (*Network, error) {
	return nn.NewGradient(net)
}

// ComputeLayout returns the packed arena layout for arch.
func ComputeLayout(arch Arch) (Layout, error) {
	return nn.ComputeLayout(arch)
}

// SplitTrainingSet splits a combined table into inputs and targets.
func SplitTrainingSet(table *matrix.Matrix, inputCols int) (TrainingSet, error) {
	return nn.SplitTrainingSet(table, inputCols)
}

// Activations

// Activation is a pointwise nonlinearity.
type Activation = nn.Activation

// Sigmoid is 1 / (1 + e^-x).
type Sigmoid = nn.Sigmoid

// ReLU is max(0, x).
type ReLU = nn.ReLU

// Tanh is the hyperbolic tangent.
type Tanh = nn.Tanh

// Identity passes values through.
type Identity = nn.Identity

// ActivationByName resolves sigmoid, relu, tanh or identity.
func ActivationByName(name string) (Activation, error) {
	return nn.ActivationByName(name)
}

// Initialization

// Init names a weight initialization scheme.
type Init = nn.Init

// Initialization schemes.
const (
	InitUniform = nn.InitUniform
	InitXavier  = nn.InitXavier
	InitZero    = nn.InitZero
)

// ParseInit resolves uniform, xavier or zero.
func ParseInit(name string) (Init, error) {
	return nn.ParseInit(name)
}
