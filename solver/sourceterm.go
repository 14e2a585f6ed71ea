// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/pdecore/mesh"
)

// SourceTerm is a Term whose contribution at every solution point is a
// single time-space function evaluated at the element centroid, grounded
// on inp/func.go's FuncsData.Get: a named function type plus dbf.Params
// resolved once, via gosl/fun.New, into a fun.TimeSpace callback.
type SourceTerm struct {
	Fcn   fun.TimeSpace
	NbEqs int
	Time  *Time // optional; nil evaluates the function at t=0
}

// NewSourceTerm builds a SourceTerm from a function type name ("cte",
// "rmp", ...) and its parameters, exactly as FuncsData.Get resolves
// fun.New(f.Type, f.Prms).
func NewSourceTerm(kind string, prms dbf.Params, nbEqs int) (*SourceTerm, error) {
	fcn, err := fun.New(kind, prms)
	if err != nil {
		return nil, err
	}
	return &SourceTerm{Fcn: fcn, NbEqs: nbEqs}, nil
}

// Compute implements Term: every nodal row of the element receives the
// same source value (the function evaluated at the current time and the
// element centroid), and contributes zero wave speed, since a pure source
// carries no characteristic signal.
func (t *SourceTerm) Compute(m *mesh.Mesh, ents *mesh.Entities, elemIdx int, sol *mesh.Field, perDofTerm [][]float64, perDofWaveSpeed []float64) error {
	tCur := 0.0
	if t.Time != nil {
		tCur = t.Time.Current
	}
	x := ents.Centroid(m, elemIdx)
	v := t.Fcn.F(tCur, x)
	for n := range perDofTerm {
		for c := 0; c < t.NbEqs; c++ {
			perDofTerm[n][c] = v
		}
	}
	for n := range perDofWaveSpeed {
		perDofWaveSpeed[n] = 0
	}
	return nil
}
