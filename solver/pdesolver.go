// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/pdecore/comp"
	"github.com/cpmech/pdecore/history"
)

// Criterion is an extra stop condition a caller may register; if any
// registered Criterion returns true, the solve stops early regardless of
// the time/iteration budget.
type Criterion func() bool

// Step performs one non-linear solve of the configured PDE(s) and must
// leave PDE.Rhs holding the new residual (callers implement this — the
// RK/implicit update, whatever it is, is out of pdecore's scope; see
// PDESolver.Step below).
type Step func() error

// PDESolver drives the time/iteration loop described in
// original_source/cf3/solver/PDESolver.{hpp,cpp}: pre/post-iteration
// hooks bracket a caller-supplied Step, the clock advances, the history
// records one entry, and stop_condition decides when to end.
type PDESolver struct {
	*comp.Component

	PDE *PDE

	TimeStepComputer   *TimeStepComputer
	History            *history.History
	NormComputer       *ComputeLNorm
	MaxIteration       int
	PrintSummary       bool

	PreIteration  func() error
	PostIteration func() error

	Criteria []Criterion

	Step Step
}

// NewPDESolver builds a solver over pde, registering it (and its signals)
// as a child of parent in the component tree.
func NewPDESolver(parent *comp.Component, name string, pde *PDE, step Step) (*PDESolver, error) {
	handle, err := parent.Create(name, "pdecore.solver.PDESolver")
	if err != nil {
		return nil, err
	}
	owner := handle.Get()
	if owner == nil {
		return nil, chk.Err("NullReference: PDESolver %q could not be created", name)
	}
	s := &PDESolver{
		Component:    owner,
		PDE:          pde,
		MaxIteration: math.MaxInt32,
		PrintSummary: true,
		Step:         step,
		NormComputer: NewComputeLNorm(pde.Fields),
	}
	s.Signals().Add("solve_time_step", func(_ *comp.Component, args comp.Frame) (comp.Frame, error) {
		dt, _ := args["time_step"].(float64)
		return nil, s.SolveTimeStep(dt)
	}, false)
	s.Signals().Add("solve_iterations", func(_ *comp.Component, args comp.Frame) (comp.Frame, error) {
		n, _ := args["iterations"].(int)
		return nil, s.SolveIterations(n)
	}, false)
	return s, nil
}

// Setup runs once before the first iteration of an Execute call; the base
// implementation is a no-op, matching PDESolver::setup()'s empty default.
func (s *PDESolver) Setup() error { return nil }

// StopCondition reports whether the solve loop should end: any registered
// Criterion fires, OR (time-accurate AND current_time >= end_time), OR
// iter >= max_iteration, OR iter reaches the clock's MaxSteps cap (when
// that cap is non-zero).
func (s *PDESolver) StopCondition() bool {
	finish := false
	for _, c := range s.Criteria {
		if c() {
			finish = true
		}
	}
	if s.PDE.Time != nil && s.TimeStepComputer != nil && s.TimeStepComputer.TimeAccurate {
		if s.PDE.Time.Current >= s.PDE.Time.EndTime {
			return true
		}
	}
	if s.PDE.Time != nil && s.PDE.Time.Step >= s.MaxIteration {
		return true
	}
	if s.PDE.Time != nil && s.PDE.Time.MaxSteps > 0 && s.PDE.Time.Step >= s.PDE.Time.MaxSteps {
		return true
	}
	return finish
}

// DoIteration runs one pre_iteration -> Step -> advance-clock ->
// post_iteration -> iteration_summary -> history.SaveEntry sequence.
func (s *PDESolver) DoIteration() error {
	if s.PreIteration != nil {
		if err := s.PreIteration(); err != nil {
			return err
		}
	}

	if s.Step == nil {
		return chk.Err("SetupError: PDESolver %q has no Step configured", s.Name())
	}
	if err := s.Step(); err != nil {
		return err
	}

	dt := 0.0
	if s.TimeStepComputer != nil {
		var err error
		dt, err = s.TimeStepComputer.Compute(s.PDE)
		if err != nil {
			return err
		}
	}
	if s.PDE.Time != nil {
		s.PDE.Time.Advance(dt)
	}

	if s.PostIteration != nil {
		if err := s.PostIteration(); err != nil {
			return err
		}
	}

	s.iterationSummary()

	if s.History != nil {
		if err := s.History.SaveEntry(); err != nil {
			return err
		}
	}

	if s.PrintSummary && s.History != nil && s.History.MyRank == 0 {
		io.Pf("  %s\n", s.summaryLine())
	}
	return nil
}

// summaryLine renders the entry just saved to history as a name=value
// line, standing in for History::entry().summary().
func (s *PDESolver) summaryLine() string {
	row, err := s.History.LastRow()
	if err != nil {
		return ""
	}
	line := ""
	for i, name := range s.History.Names() {
		line += io.Sf("%s=%g ", name, row[i])
	}
	return line
}

func (s *PDESolver) iterationSummary() {
	if s.History == nil {
		return
	}
	if s.PDE.Time != nil {
		s.History.Set("iter", float64(s.PDE.Time.Step))
	}
	if s.TimeStepComputer != nil && s.TimeStepComputer.TimeAccurate && s.PDE.Time != nil {
		s.History.Set("time", s.PDE.Time.Current)
		s.History.Set("dt", s.PDE.Time.DeltaT)
	}
	if s.TimeStepComputer != nil {
		s.History.Set("cfl", s.TimeStepComputer.MaxCFL())
	}
	s.History.Set("L2_rhs", s.NormComputer.Compute(s.PDE.Rhs))
}

// SolveTimeStep sets the PDE's end time to current_time+timeStep and runs
// Execute, matching PDESolver::solve_time_step.
func (s *PDESolver) SolveTimeStep(timeStep float64) error {
	if s.PDE == nil {
		return chk.Err("SetupError: PDE is not configured")
	}
	if s.PDE.Time == nil {
		return chk.Err("SetupError: PDE does not have a time term")
	}
	s.PDE.Time.EndTime = s.PDE.Time.Current + timeStep
	return s.Execute()
}

// SolveIterations runs Setup then exactly nbIterations unconditional
// iterations (ignoring StopCondition), flushing history on return.
func (s *PDESolver) SolveIterations(nbIterations int) error {
	if err := s.Setup(); err != nil {
		return err
	}
	for iter := 0; iter < nbIterations; iter++ {
		if err := s.DoIteration(); err != nil {
			return err
		}
	}
	if s.History != nil {
		return s.History.Flush()
	}
	return nil
}

// Execute runs Setup then iterates until StopCondition is true, flushing
// history on return.
func (s *PDESolver) Execute() error {
	if err := s.Setup(); err != nil {
		return err
	}
	for !s.StopCondition() {
		if err := s.DoIteration(); err != nil {
			return err
		}
	}
	if s.History != nil {
		return s.History.Flush()
	}
	return nil
}
