// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/pdecore/mesh"
)

func Test_bc01(tst *testing.T) {
	// FixedValueBC overwrites every DoF's rhs with its fun.Func evaluated
	// at the boundary element's centroid and the PDE's current time.
	m, pde := buildTestPDE(tst)
	pde.Time.Current = 2.0

	bc := &FixedValueBC{
		BoundaryTag: "volume",
		Value:       []fun.Func{&fun.Cte{C: 5}},
	}
	if err := bc.Apply(m, pde); err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	for dof := 0; dof < pde.Fields.NDofs(); dof++ {
		if v := pde.Rhs.Get(dof)[0]; v != 5 {
			tst.Errorf("dof %d: expected rhs 5, got %v", dof, v)
		}
	}
}

func Test_bc02_normalProjectionMandel(tst *testing.T) {
	// trace of n⊗n is ‖n‖² regardless of the Mandel component ordering.
	m := NormalProjectionMandel([]float64{1, 0})
	if trace := m[0] + m[1] + m[2]; math.Abs(trace-1) > 1e-14 {
		tst.Errorf("expected trace 1 for unit normal, got %v (%v)", trace, m)
	}
	m = NormalProjectionMandel([]float64{3, 4})
	if trace := m[0] + m[1] + m[2]; math.Abs(trace-25) > 1e-12 {
		tst.Errorf("expected trace 25 for normal (3,4), got %v (%v)", trace, m)
	}
}

func Test_bc03_nonReflective(tst *testing.T) {
	// a Decompose built on NormalProjectionMandel marks the single DoF
	// component "incoming" whenever the projector onto the outward normal
	// is non-zero, zeroing rhs.
	m, pde := buildTestPDE(tst)
	for dof := 0; dof < pde.Fields.NDofs(); dof++ {
		pde.Rhs.Get(dof)[0] = 9
	}

	bc := &NonReflectiveBC{
		BoundaryTag: "volume",
		Normal: func(*mesh.Mesh, *mesh.Entities, int) []float64 {
			return []float64{1, 0}
		},
		Decompose: func(normal []float64, sol []float64) []bool {
			proj := NormalProjectionMandel(normal)
			mask := make([]bool, len(sol))
			for c := range mask {
				mask[c] = proj[0] > 0.5
			}
			return mask
		},
	}
	if err := bc.Apply(m, pde); err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	for dof := 0; dof < pde.Fields.NDofs(); dof++ {
		if v := pde.Rhs.Get(dof)[0]; v != 0 {
			tst.Errorf("dof %d: expected rhs zeroed, got %v", dof, v)
		}
	}
}
