// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the term/residual-assembly layer (Term,
// TermComputer, BC, ComputeRHS) and the PDE/time-stepping layer (PDE,
// TimeStepComputer, PDESolver, TimeStepping) described in spec.md §4.9-4.10.
package solver

// Time tracks one PDE's clock: current time, step count, the step size
// used for the step just taken, and the end time a solve targets.
type Time struct {
	Current  float64
	Step     int
	DeltaT   float64
	EndTime  float64
	MaxSteps int
}

// NewTime creates a clock starting at t=0, step 0, with the given
// iteration cap (0 means unlimited, matching math::Consts::uint_max()'s
// "no cap" convention from TimeStepping's max_steps default).
func NewTime(maxSteps int) *Time {
	return &Time{MaxSteps: maxSteps}
}

// Advance commits one step of size dt.
func (t *Time) Advance(dt float64) {
	t.DeltaT = dt
	t.Current += dt
	t.Step++
}
