// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/cpmech/pdecore/mesh"

// ComputeRHS owns an ordered list of TermComputers and assembles the PDE's
// rhs/wave_speed fields from them, grounded on spec.md §4.9's ComputeRHS.
// Non-ghost DoFs receive the full sum of contributions and the pointwise
// maximum wave speed; ghost DoFs are left at zero (property 8).
type ComputeRHS struct {
	PDE *PDE
}

// NewComputeRHS builds a RHS assembler for pde.
func NewComputeRHS(pde *PDE) *ComputeRHS { return &ComputeRHS{PDE: pde} }

// Execute zeroes rhs/wave_speed, runs every registered TermComputer, then
// clears ghost DoFs back to zero (they are re-synchronized from their
// owning rank elsewhere; assembling a value for them would double-count).
func (c *ComputeRHS) Execute(m *mesh.Mesh) error {
	c.PDE.Rhs.Fill(0)
	c.PDE.WaveSpeed.Fill(0)
	for _, tc := range c.PDE.Terms {
		if err := tc.ComputeInto(m, c.PDE.Rhs, c.PDE.WaveSpeed); err != nil {
			return err
		}
	}
	for _, bc := range c.PDE.BCs {
		if err := bc.Apply(m, c.PDE); err != nil {
			return err
		}
	}
	for dof := 0; dof < c.PDE.Fields.NDofs(); dof++ {
		if c.PDE.Fields.IsGhost(dof) {
			row := c.PDE.Rhs.Get(dof)
			for i := range row {
				row[i] = 0
			}
			wsRow := c.PDE.WaveSpeed.Get(dof)
			wsRow[0] = 0
		}
	}
	return nil
}
