// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"
	"github.com/cpmech/pdecore/mesh"
)

// BC is a boundary condition: a correction applied to the rhs field after
// the interior residual is assembled, on a face-tagged Entities set,
// grounded on spec.md §4.9's "A BC is a Term applied on face-tagged
// Entities".
type BC interface {
	Apply(m *mesh.Mesh, pde *PDE) error
}

// FixedValueBC overwrites the rhs of every DoF on a tagged boundary with a
// target value evaluated from a time-space function per component, grounded
// on fem/essenbcs.go's EssentialBc.Fcn fun.Func field (evaluated there as
// bc.Fcn.F(t, nil)). A constant target is just &fun.Cte{C: v}, matching
// fem/essenbcs.go's own use of fun.Cte for constant boundary values.
type FixedValueBC struct {
	BoundaryTag string
	Value       []fun.Func
}

// Apply implements BC.
func (b *FixedValueBC) Apply(m *mesh.Mesh, pde *PDE) error {
	t := 0.0
	if pde.Time != nil {
		t = pde.Time.Current
	}
	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool { return e.HasTag(b.BoundaryTag) })
	for _, ents := range entsList {
		sp, err := pde.Fields.Space(ents)
		if err != nil {
			return err
		}
		for e := 0; e < ents.Size(); e++ {
			x := ents.Centroid(m, e)
			for _, dof := range sp.DofsOf(e) {
				row := pde.Rhs.Get(dof)
				for c, f := range b.Value {
					row[c] = f.F(t, x)
				}
			}
		}
	}
	return nil
}

// NormalProjectionMandel returns the outward-normal dyadic projector n⊗n in
// Mandel vector form, grounded on msolid/auxiliary.go's SpectralCompose/
// Eigenprojectors pattern (build a 3x3 tensor from eigenvectors, then
// tsr.Ten2Man into its Mandel representation). A NonReflectiveBC.Decompose
// implementation can threshold this projector's components against a
// characteristic-space residual to mark incoming modes, the way
// Eigenprojectors builds per-eigenvector projectors for spectral updates.
func NormalProjectionMandel(normal []float64) []float64 {
	t := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var ni, nj float64
			if i < len(normal) {
				ni = normal[i]
			}
			if j < len(normal) {
				nj = normal[j]
			}
			t[i][j] = ni * nj
		}
	}
	m := make([]float64, 6)
	tsr.Ten2Man(m, t)
	return m
}

// NonReflectiveBC applies a characteristic-variable correction to the
// already-assembled residual: at every DoF of every boundary element, the
// residual components Decompose marks as incoming ("Aminus") are set to
// zero in place. The residual is not interpolated to flux points and back;
// the correction acts on the per-DoF rhs directly.
// Decompose supplies the problem-specific characteristic projection:
// given the outward normal and the local solution, it returns one flag per
// residual component, true where that component is an incoming mode.
type NonReflectiveBC struct {
	BoundaryTag string
	Decompose   func(normal []float64, sol []float64) (incomingMask []bool)
	Normal      func(m *mesh.Mesh, ents *mesh.Entities, elemIdx int) []float64
}

// Apply implements BC: for every DoF of every boundary element, mask out
// the incoming characteristic components of the residual.
func (b *NonReflectiveBC) Apply(m *mesh.Mesh, pde *PDE) error {
	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool { return e.HasTag(b.BoundaryTag) })
	for _, ents := range entsList {
		sp, err := pde.Fields.Space(ents)
		if err != nil {
			return err
		}
		for e := 0; e < ents.Size(); e++ {
			normal := b.Normal(m, ents, e)
			for _, dof := range sp.DofsOf(e) {
				row := pde.Rhs.Get(dof)
				sol := pde.Solution.Get(dof)
				mask := b.Decompose(normal, sol)
				for c, incoming := range mask {
					if incoming {
						row[c] = 0
					}
				}
			}
		}
	}
	return nil
}
