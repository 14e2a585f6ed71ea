// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/pdecore/mesh"
)

// TimeStepComputer converts a PDE's wave_speed field into a time step,
// grounded on original_source/cf3/solver/TimeStepComputer.{hpp,cpp}.
type TimeStepComputer struct {
	CFL          float64
	TimeAccurate bool
	maxCFLSeen   float64

	// LocalDt, set only when TimeAccurate is false, receives one time step
	// per DoF (for steady-state local time-stepping acceleration).
	LocalDt *mesh.Field
}

// NewTimeStepComputer builds a computer with the given CFL number.
func NewTimeStepComputer(cfl float64, timeAccurate bool) *TimeStepComputer {
	return &TimeStepComputer{CFL: cfl, TimeAccurate: timeAccurate}
}

// MaxCFL returns the largest CFL number observed across all Compute calls
// so far (the signal the original exposes as "max_cfl").
func (c *TimeStepComputer) MaxCFL() float64 { return c.maxCFLSeen }

// ChangeWithFactor scales the configured CFL number by factor (used by
// CFL ramp-up schedules during steady-state convergence).
func (c *TimeStepComputer) ChangeWithFactor(factor float64) { c.CFL *= factor }

// Compute returns the time step for pde's current wave_speed field. In
// time-accurate mode this is the global minimum of cfl/wave_speed over
// every non-ghost DoF, all-reduced (minimum) across ranks; in local mode
// it instead fills c.LocalDt per-DoF and returns that field's minimum.
func (c *TimeStepComputer) Compute(pde *PDE) (float64, error) {
	ws, err := pde.WaveSpeedField()
	if err != nil {
		return 0, err
	}
	if ws.Data.Size() == 0 {
		return 0, chk.Err("BadValue: cannot compute time step from an empty wave_speed field")
	}

	if !c.TimeAccurate {
		if c.LocalDt == nil {
			return 0, chk.Err("SetupError: local time-stepping requires LocalDt to be set")
		}
		minDt := math.Inf(1)
		for dof := 0; dof < ws.Data.Size(); dof++ {
			if pde.Fields.IsGhost(dof) {
				continue
			}
			dt := c.dtAt(ws, dof)
			c.LocalDt.Get(dof)[0] = dt
			if dt < minDt {
				minDt = dt
			}
		}
		return minDt, nil
	}

	minDt := math.Inf(1)
	for dof := 0; dof < ws.Data.Size(); dof++ {
		if pde.Fields.IsGhost(dof) {
			continue
		}
		dt := c.dtAt(ws, dof)
		if dt < minDt {
			minDt = dt
		}
	}

	if mpi.IsOn() {
		comm := mpi.NewCommunicator(nil)
		reduced := make([]float64, 1)
		comm.AllReduceMin(reduced, []float64{minDt})
		minDt = reduced[0]
	}
	return minDt, nil
}

func (c *TimeStepComputer) dtAt(ws *mesh.Field, dof int) float64 {
	speed := ws.Get(dof)[0]
	if speed <= 0 {
		return math.Inf(1)
	}
	dt := c.CFL / speed
	cfl := c.CFL
	if cfl > c.maxCFLSeen {
		c.maxCFLSeen = cfl
	}
	return dt
}
