// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	stdtime "time"

	"github.com/cpmech/pdecore/comp"
	"github.com/cpmech/pdecore/history"
)

// TimeStepping is the top-level orchestrator wrapping one or more
// solver.Time clocks with pre/post action hooks and its own History,
// grounded on original_source/cf3/solver/TimeStepping.cpp.
type TimeStepping struct {
	*comp.Component

	TimeAccurate bool
	MaxSteps     int
	EndTime      float64
	TimeStep     float64

	Step    int
	Current float64
	WallTime float64

	PreActions  []func() error
	PostActions []func() error

	Criteria []Criterion

	times []*Time

	History *history.History

	// TimeStepDone, if set, is called after every do_step with the step
	// number, current time and time step just taken (raise_timestep_done
	// in the original, simplified to a plain Go callback in place of the
	// component-tree signal/event bus).
	TimeStepDone func(step int, currentTime, timeStep float64)
}

// NewTimeStepping creates a time-stepping orchestrator as a child of
// parent, with a history of six variables (step, time, time_step,
// walltime, cputime, memory) logging to historyFile.
func NewTimeStepping(parent *comp.Component, name, historyFile string, myRank int) (*TimeStepping, error) {
	handle, err := parent.Create(name, "pdecore.solver.TimeStepping")
	if err != nil {
		return nil, err
	}
	owner := handle.Get()
	ts := &TimeStepping{
		Component:    owner,
		TimeAccurate: true,
		MaxSteps:     int(^uint32(0) >> 1),
		History:      history.New(myRank, historyFile),
	}
	return ts, nil
}

// AddTime registers a solver.Time clock to be kept in sync with this
// TimeStepping's time_step/end_time options.
func (ts *TimeStepping) AddTime(t *Time) { ts.times = append(ts.times, t) }

// StopCondition mirrors TimeStepping::stop_condition: any Criterion, or
// (time-accurate AND current>=end_time), or step>=max_steps.
func (ts *TimeStepping) StopCondition() bool {
	finish := false
	for _, c := range ts.Criteria {
		if c() {
			finish = true
		}
	}
	if ts.TimeAccurate && ts.Current >= ts.EndTime {
		return true
	}
	if ts.Step >= ts.MaxSteps {
		return true
	}
	return finish
}

// Execute loops DoStep until StopCondition, flushing history on return.
func (ts *TimeStepping) Execute() error {
	for !ts.StopCondition() {
		if err := ts.DoStep(); err != nil {
			return err
		}
	}
	return ts.History.Flush()
}

// DoStep runs one step: clamp the step size to not overshoot end_time,
// sync every registered Time's end_time, run pre_actions, advance
// time/step, run post_actions, raise
// TimeStepDone, record walltime/cputime/memory, then save a history entry.
func (ts *TimeStepping) DoStep() error {
	start := stdtime.Now()

	timeStep := ts.TimeStep
	if remaining := ts.EndTime - ts.Current; timeStep > remaining {
		timeStep = remaining
	}

	for _, t := range ts.times {
		t.EndTime = ts.Current + timeStep
	}

	for _, action := range ts.PreActions {
		if err := action(); err != nil {
			return err
		}
	}

	for _, t := range ts.times {
		t.Advance(timeStep)
	}

	ts.Step++
	ts.Current += timeStep

	for _, action := range ts.PostActions {
		if err := action(); err != nil {
			return err
		}
	}

	if ts.TimeStepDone != nil {
		ts.TimeStepDone(ts.Step, ts.Current, timeStep)
	}

	cputime := stdtime.Since(start).Seconds()
	ts.WallTime += cputime

	ts.History.Set("step", float64(ts.Step))
	ts.History.Set("time", ts.Current)
	ts.History.Set("time_step", timeStep)
	ts.History.Set("walltime", ts.WallTime)
	ts.History.Set("cputime", cputime)
	ts.History.Set("memory", memoryUsageMB())
	return ts.History.SaveEntry()
}
