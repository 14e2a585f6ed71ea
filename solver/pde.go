// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/mesh"
)

// PDE bundles a degrees-of-freedom Dictionary with the three fields every
// PDE needs (solution, rhs, wave_speed), an optional boundary Dictionary,
// an optional clock, and the term/BC machinery that computes its residual,
// grounded on original_source/cf3/solver/PDE.{hpp,cpp}.
type PDE struct {
	Name  string
	NbDim int
	NbEqs int

	Fields      *mesh.Dictionary
	Solution    *mesh.Field
	Rhs         *mesh.Field
	WaveSpeed   *mesh.Field
	BdryFields  *mesh.Dictionary
	BdrySolution *mesh.Field
	BdryGradient *mesh.Field

	Time *Time

	Terms []*TermComputer
	BCs   []BC
}

// New creates a PDE over fields, with nbEqs equations, allocating its
// solution/rhs/wave_speed fields on demand (create_fields in the original).
func New(name string, fields *mesh.Dictionary, nbDim, nbEqs int) (*PDE, error) {
	p := &PDE{Name: name, NbDim: nbDim, NbEqs: nbEqs, Fields: fields}
	if err := p.createFields(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PDE) createFields() error {
	desc := mesh.NewVarDescriptor(mesh.VectorVar("Q", p.NbEqs))
	sol, err := p.Fields.CreateField("solution", desc)
	if err != nil {
		return err
	}
	rhs, err := p.Fields.CreateField("rhs", desc)
	if err != nil {
		return err
	}
	ws, err := p.Fields.CreateField("wave_speed", mesh.NewVarDescriptor(mesh.ScalarVar("ws")))
	if err != nil {
		return err
	}
	p.Solution, p.Rhs, p.WaveSpeed = sol, rhs, ws
	return nil
}

// AddTime makes the PDE unsteady, creating its clock.
func (p *PDE) AddTime(maxSteps int) *Time {
	p.Time = NewTime(maxSteps)
	return p.Time
}

// CreateBdryFields allocates the boundary Dictionary's solution and
// solution-gradient fields (create_bdry_fields in the original). No BC in
// this package reads them; NonReflectiveBC works on Rhs and Solution.
func (p *PDE) CreateBdryFields(bdry *mesh.Dictionary) error {
	p.BdryFields = bdry
	desc := mesh.NewVarDescriptor(mesh.VectorVar("Q", p.NbEqs))
	sol, err := bdry.CreateField("bdry_solution", desc)
	if err != nil {
		return err
	}
	gradDesc := mesh.NewVarDescriptor(mesh.VectorVar("dQ", p.NbEqs*p.NbDim))
	grad, err := bdry.CreateField("bdry_solution_gradient", gradDesc)
	if err != nil {
		return err
	}
	p.BdrySolution, p.BdryGradient = sol, grad
	return nil
}

// AddTerm appends a term computer to the PDE's residual assembly, matching
// PDE::add_term's dynamic term-composition signal.
func (p *PDE) AddTerm(tc *TermComputer) { p.Terms = append(p.Terms, tc) }

// AddBC appends a boundary condition action.
func (p *PDE) AddBC(bc BC) { p.BCs = append(p.BCs, bc) }

// WaveSpeedField returns the wave_speed field, failing (NullReference) if
// it has not been created, matching PDE::wave_speed()'s throw-on-null.
func (p *PDE) WaveSpeedField() (*mesh.Field, error) {
	if p.WaveSpeed == nil {
		return nil, chk.Err("NullReference: PDE %q has no wave_speed field", p.Name)
	}
	return p.WaveSpeed, nil
}
