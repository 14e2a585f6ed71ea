// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// LocalImplicitStepper advances a single DoF's solution vector by one local
// pseudo-time step using gosl/ode's implicit Radau5 integrator, grounded on
// fem/hydrost.go's HydroStatic (`o.sol.Init("Radau5", n, fcn, jac, nil, nil,
// silent)` once, then `o.sol.Solve(y, x0, xf, xStep, fixedStp, args...)` per
// call). It is an optional companion to TimeStepComputer's explicit local
// time-stepping, for PDEs whose per-DoF relaxation toward steady state is
// stiff enough that an explicit pseudo-step would need an impractically
// small dtau.
type LocalImplicitStepper struct {
	sol ode.ODE
}

// NewLocalImplicitStepper builds a stepper integrating dY/dτ = residual(Y)
// for an ndim-component DoF. jac supplies the Jacobian in gosl/la's sparse
// Triplet format; nil falls back to ode's own numerical Jacobian, the same
// as the pack's fcn-only Init calls.
func NewLocalImplicitStepper(ndim int, residual func(f, y []float64) error, jac func(dfdy *la.Triplet, y []float64) error) *LocalImplicitStepper {
	s := &LocalImplicitStepper{}
	fcn := func(f []float64, x float64, y []float64, args ...interface{}) error {
		return residual(f, y)
	}
	var jfcn ode.Cb_jac
	if jac != nil {
		jfcn = func(dfdy *la.Triplet, x float64, y []float64, args ...interface{}) error {
			return jac(dfdy, y)
		}
	}
	s.sol.Init("Radau5", ndim, fcn, jfcn, nil, nil, true)
	s.sol.Distr = false
	return s
}

// Step advances y in place over one pseudo-time interval of length dtau.
func (s *LocalImplicitStepper) Step(y []float64, dtau float64) error {
	return s.sol.Solve(y, 0, dtau, dtau, true)
}
