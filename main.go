// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/pdecore/comp"
	"github.com/cpmech/pdecore/history"
	"github.com/cpmech/pdecore/mesh"
	"github.com/cpmech/pdecore/persist"
	"github.com/cpmech/pdecore/shapefunc"
	"github.com/cpmech/pdecore/solver"
	"github.com/cpmech/pdecore/tbl"
)

func main() {
	nx := flag.Int("nx", 8, "number of elements along x")
	ny := flag.Int("ny", 8, "number of elements along y")
	lx := flag.Float64("lx", 1, "domain length along x")
	ly := flag.Float64("ly", 1, "domain length along y")
	cfl := flag.Float64("cfl", 0.5, "CFL number driving the time step")
	waveSpeed := flag.Float64("wave-speed", 1, "constant wave speed used by the built-in advection term")
	endTime := flag.Float64("end-time", 1, "simulation end time")
	maxIter := flag.Int("max-iter", 10000, "maximum number of iterations")
	historyFile := flag.String("history", "pdecore.history.tsv", "path of the history TSV log (rank 0 only)")
	restartBase := flag.String("restart", "", "if set, write a restart dataset to this base path on completion")
	quiet := flag.Bool("quiet", false, "suppress per-iteration summary lines")

	exitCode := 0
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				io.Pfred("\nAborting simulation\n")
				io.PfRed("ERROR: %v\n", err)
			}
			exitCode = 1
		}
		mpi.Stop(false)
		os.Exit(exitCode)
	}()
	mpi.Start(false)

	if !hasParentProcess() {
		if mpi.Rank() == 0 {
			io.Pfred("ERROR: pdecore worker started without a parent process\n")
		}
		exitCode = 1
		return
	}

	if mpi.Rank() == 0 {
		io.PfWhite("\npdecore -- distributed PDE time-stepping core\n\n")
	}

	flag.Parse()

	if err := run(*nx, *ny, *lx, *ly, *cfl, *waveSpeed, *endTime, *maxIter, *historyFile, *restartBase, !*quiet); err != nil {
		panic(err)
	}
}

// hasParentProcess reports whether this worker was launched by a parent
// (mpirun, a job scheduler, a supervising process); a parent of pid 1 means
// init reparented an orphan, i.e. no real launcher is waiting on us. No
// pack library covers process-ancestry introspection, so this stays on
// the standard library, matching solver/memstats.go's justification.
func hasParentProcess() bool {
	return os.Getppid() != 1
}

// run builds a rectangular mesh, a scalar advection PDE over it, and drives
// it to completion, exercising the component tree, mesh/dictionary/field
// layer, term assembly, time stepping and history logging end to end. The
// constant-wave-speed advection term is a demonstration term; production
// callers plug in their own Term implementations (spec.md's "the core
// accepts term plug-ins" boundary).
func run(nx, ny int, lx, ly, cfl, waveSpeed, endTime float64, maxIter int, historyFile, restartBase string, printSummary bool) error {
	root := comp.NewRoot("pdecore", "pdecore.Root")
	rank, nbProcs := mpi.Rank(), 1
	if mpi.IsOn() {
		nbProcs = mpi.NewCommunicator(nil).Size()
	}

	m := mesh.BuildRectangleMesh(nx, ny, lx, ly)
	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool { return e.HasTag("volume") })
	if len(entsList) != 1 {
		return chk.Err("SetupError: expected a single volume Entities block, found %d", len(entsList))
	}
	ents := entsList[0]

	dict := mesh.NewDictionary("fields", true, rank, len(m.Verts), m.Ndim)
	conn := tbl.NewTable[int]()
	if err := conn.SetRowSize(ents.Shape.Nverts); err != nil {
		return err
	}
	conn.Resize(ents.Size())
	for i := 0; i < ents.Size(); i++ {
		if err := conn.SetRow(i, ents.Verts[i]); err != nil {
			return err
		}
	}
	if _, err := dict.BindSpace(ents, shapefunc.Qua4(), conn); err != nil {
		return err
	}

	pde, err := solver.New("advection", dict, 2, 1)
	if err != nil {
		return err
	}
	pde.AddTime(maxIter)
	pde.AddTerm(solver.NewTermComputer("advect", dict, pde.Solution, &constantWaveSpeedTerm{WaveSpeed: waveSpeed}, nil))

	rhs := solver.NewComputeRHS(pde)
	timeStepComputer := solver.NewTimeStepComputer(cfl, true)
	hist := history.New(rank, historyFile)

	pdeSolver, err := solver.NewPDESolver(root, "solver", pde, func() error {
		return rhs.Execute(m)
	})
	if err != nil {
		return err
	}
	pdeSolver.TimeStepComputer = timeStepComputer
	pdeSolver.History = hist
	pdeSolver.PrintSummary = printSummary
	pde.Time.EndTime = endTime

	if err := pdeSolver.Execute(); err != nil {
		return err
	}

	if restartBase != "" {
		if err := persist.WriteRestart(restartBase, dict, rank, nbProcs); err != nil {
			return err
		}
	}
	return nil
}

// constantWaveSpeedTerm is the built-in demonstration Term: a pure
// advection term of fixed wave speed in every direction; run always uses
// it, since the command line offers no way to supply another term.
type constantWaveSpeedTerm struct{ WaveSpeed float64 }

func (t *constantWaveSpeedTerm) Compute(m *mesh.Mesh, ents *mesh.Entities, elemIdx int, sol *mesh.Field, perDofTerm [][]float64, perDofWaveSpeed []float64) error {
	for k := range perDofWaveSpeed {
		perDofWaveSpeed[k] = t.WaveSpeed
	}
	return nil
}
