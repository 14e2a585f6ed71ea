// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/cpmech/pdecore/mesh"

// Term is a physical contribution to the residual evaluated on a single
// element's solution points, grounded on spec.md §4.9's compute_term.
// perDofTerm and perDofWaveSpeed must be sized nverts*nbEqs and nverts.
type Term interface {
	// Compute evaluates the term at every solution point of element elemIdx
	// of ents, writing the contribution into perDofTerm (row-major,
	// [nverts][nbEqs]) and the local wave speed into perDofWaveSpeed
	// ([nverts]).
	Compute(m *mesh.Mesh, ents *mesh.Entities, elemIdx int, sol *mesh.Field, perDofTerm [][]float64, perDofWaveSpeed []float64) error
}

// LoopPredicate decides whether a TermComputer should process a given
// Entities block, matching TermComputer::loop_cells.
type LoopPredicate func(*mesh.Entities) bool

// AllVolumeEntities is the default LoopPredicate: every Entities tagged
// "volume", matching the teacher's IsElementsVolume filter idiom.
func AllVolumeEntities(e *mesh.Entities) bool { return e.HasTag("volume") }
