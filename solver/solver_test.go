// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/pdecore/comp"
	"github.com/cpmech/pdecore/history"
	"github.com/cpmech/pdecore/mesh"
	"github.com/cpmech/pdecore/shapefunc"
	"github.com/cpmech/pdecore/tbl"
)

func newTestHistory(tst *testing.T) *history.History {
	return history.New(0, filepath.Join(tst.TempDir(), "solve.tsv"))
}

// constWaveSpeedTerm is a synthetic Term whose residual is always zero and
// whose wave speed is a fixed constant, enough to drive TimeStepComputer
// without pulling in any concrete PDE physics.
type constWaveSpeedTerm struct {
	WaveSpeed float64
}

func (t *constWaveSpeedTerm) Compute(m *mesh.Mesh, ents *mesh.Entities, elemIdx int, sol *mesh.Field, perDofTerm [][]float64, perDofWaveSpeed []float64) error {
	for k := range perDofWaveSpeed {
		perDofWaveSpeed[k] = t.WaveSpeed
	}
	return nil
}

// buildTestPDE wires a 2x1 rectangle mesh, a node-based continuous
// dictionary (DoF index == vertex index), and a single-equation PDE with
// one constant-wave-speed term.
func buildTestPDE(tst *testing.T) (*mesh.Mesh, *PDE) {
	m := mesh.BuildRectangleMesh(2, 1, 2, 1)
	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool { return e.HasTag("volume") })
	if len(entsList) != 1 {
		tst.Fatalf("expected 1 volume Entities, got %d", len(entsList))
	}
	ents := entsList[0]

	nverts := len(m.Verts)
	dict := mesh.NewDictionary("fields", true, 0, nverts, 2)
	conn := tbl.NewTable[int]()
	conn.SetRowSize(ents.Shape.Nverts)
	conn.Resize(ents.Size())
	for i := 0; i < ents.Size(); i++ {
		if err := conn.SetRow(i, ents.Verts[i]); err != nil {
			tst.Fatalf("SetRow failed: %v", err)
		}
	}
	if _, err := dict.BindSpace(ents, shapefunc.Qua4(), conn); err != nil {
		tst.Fatalf("BindSpace failed: %v", err)
	}

	pde, err := New("test", dict, 2, 1)
	if err != nil {
		tst.Fatalf("New PDE failed: %v", err)
	}
	pde.AddTime(1000)
	pde.AddTerm(NewTermComputer("advect", dict, pde.Solution, &constWaveSpeedTerm{WaveSpeed: 1}, nil))
	return m, pde
}

func Test_computerhs01(tst *testing.T) {
	// spec.md property 8: ghost DoFs stay at zero after ComputeRHS.
	m, pde := buildTestPDE(tst)
	pde.Fields.Rank[0] = 7 // mark DoF 0 as owned by a different rank

	rhs := NewComputeRHS(pde)
	if err := rhs.Execute(m); err != nil {
		tst.Fatalf("Execute failed: %v", err)
	}
	if pde.WaveSpeed.Get(0)[0] != 0 {
		tst.Fatalf("ghost DoF 0 wave_speed should be zero, got %v", pde.WaveSpeed.Get(0)[0])
	}
	for dof := 1; dof < pde.Fields.NDofs(); dof++ {
		if pde.WaveSpeed.Get(dof)[0] != 1 {
			tst.Fatalf("non-ghost DoF %d wave_speed should be 1, got %v", dof, pde.WaveSpeed.Get(dof)[0])
		}
	}
}

func Test_pdesolver01(tst *testing.T) {
	// spec.md scenario S6: wave_speed=1, nb_eqs=1, cfl=0.2, time_accurate,
	// end_time=0.5 -> solve_time_step(0.5) must finish with current_time
	// >= 0.5 after >= ceil(0.5/0.2) = 3 iterations.
	m, pde := buildTestPDE(tst)

	root := comp.NewRoot("root", "Group")
	rhs := NewComputeRHS(pde)
	s, err := NewPDESolver(root, "solver", pde, func() error { return rhs.Execute(m) })
	if err != nil {
		tst.Fatalf("NewPDESolver failed: %v", err)
	}
	s.TimeStepComputer = NewTimeStepComputer(0.2, true)
	s.History = newTestHistory(tst)

	if err := s.SolveTimeStep(0.5); err != nil {
		tst.Fatalf("SolveTimeStep failed: %v", err)
	}
	if pde.Time.Current < 0.5 {
		tst.Fatalf("expected current_time >= 0.5, got %v", pde.Time.Current)
	}
	if pde.Time.Step < 3 {
		tst.Fatalf("expected >= 3 iterations, got %d", pde.Time.Step)
	}
}

func Test_timestepping01(tst *testing.T) {
	ts, err := NewTimeStepping(comp.NewRoot("root", "Group"), "timestepping", filepath.Join(tst.TempDir(), "ts.tsv"), 0)
	if err != nil {
		tst.Fatalf("NewTimeStepping failed: %v", err)
	}
	ts.TimeStep = 0.2
	ts.EndTime = 0.5
	seen := 0
	ts.TimeStepDone = func(step int, currentTime, timeStep float64) { seen++ }

	if err := ts.Execute(); err != nil {
		tst.Fatalf("Execute failed: %v", err)
	}
	if ts.Current < 0.5 {
		tst.Fatalf("expected current time >= 0.5, got %v", ts.Current)
	}
	if seen != ts.Step {
		tst.Fatalf("expected TimeStepDone called once per step (%d), got %d", ts.Step, seen)
	}
}
