// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/cpmech/pdecore/mesh"

// TermComputer iterates one Term over every element of every Entities its
// LoopCells predicate accepts, scattering contributions into a shared
// `term` field and taking the pointwise maximum into `wave_speed`,
// grounded on spec.md §4.9's TermComputer.compute_term.
type TermComputer struct {
	Name     string
	Fields   *mesh.Dictionary
	Solution *mesh.Field
	Term     Term
	LoopCells LoopPredicate
}

// NewTermComputer builds a TermComputer over fields' Dictionary; a nil
// loopCells defaults to AllVolumeEntities.
func NewTermComputer(name string, fields *mesh.Dictionary, solution *mesh.Field, term Term, loopCells LoopPredicate) *TermComputer {
	if loopCells == nil {
		loopCells = AllVolumeEntities
	}
	return &TermComputer{Name: name, Fields: fields, Solution: solution, Term: term, LoopCells: loopCells}
}

// Accepts reports whether this computer processes the given Entities.
func (tc *TermComputer) Accepts(ents *mesh.Entities) bool { return tc.LoopCells(ents) }

// ComputeInto accumulates this term's contribution into termField (summed,
// not overwritten — callers are expected to have zeroed it beforehand) and
// takes the pointwise maximum into waveSpeedField, over every Entities m's
// root region holds that tc.LoopCells accepts.
func (tc *TermComputer) ComputeInto(m *mesh.Mesh, termField, waveSpeedField *mesh.Field) error {
	entsList := m.Root.CollectEntities(tc.LoopCells)
	for _, ents := range entsList {
		sp, err := tc.Fields.Space(ents)
		if err != nil {
			return err
		}
		for e := 0; e < ents.Size(); e++ {
			dofs := sp.DofsOf(e)
			perDofTerm := make([][]float64, len(dofs))
			perDofWs := make([]float64, len(dofs))
			for k := range perDofTerm {
				perDofTerm[k] = make([]float64, tc.termWidth())
			}
			if err := tc.Term.Compute(m, ents, e, tc.Solution, perDofTerm, perDofWs); err != nil {
				return err
			}
			for k, dof := range dofs {
				row := termField.Get(dof)
				for c := range row {
					row[c] += perDofTerm[k][c]
				}
				wsRow := waveSpeedField.Get(dof)
				if perDofWs[k] > wsRow[0] {
					wsRow[0] = perDofWs[k]
				}
			}
		}
	}
	return nil
}

func (tc *TermComputer) termWidth() int { return tc.Solution.Desc.Width() }
