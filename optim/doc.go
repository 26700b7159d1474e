// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update step.
//
// # Overview
//
// Learn applies p -= rate * g to every weight and bias of a network. The
// Optimizer implementations keep per-parameter state across steps:
//
//   - SGD: plain gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//
// # Usage
//
//	g, _ := nn.NewGradient(net)
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 1, Momentum: 0.9})
//
//	for step := range steps {
//	    if err := (grad.Backprop{}).Compute(net, g, set); err != nil {
//	        return err
//	    }
//	    if err := optimizer.Step(net, g); err != nil {
//	        return err
//	    }
//	}
package optim
