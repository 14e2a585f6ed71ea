// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/pdecore/mesh"
)

// ComputeLNorm reduces a field to a single scalar L2 norm over non-ghost
// DoFs, grounded on original_source/cf3/solver/ComputeLNorm.cpp.
type ComputeLNorm struct {
	Fields *mesh.Dictionary
}

// NewComputeLNorm builds a norm computer gated on fields' ghost bookkeeping.
func NewComputeLNorm(fields *mesh.Dictionary) *ComputeLNorm {
	return &ComputeLNorm{Fields: fields}
}

// Compute returns sqrt(sum over non-ghost DoFs of ||row||^2 / nb_dofs), the
// root-mean-square of each DoF's Euclidean row norm.
func (c *ComputeLNorm) Compute(f *mesh.Field) float64 {
	sum := 0.0
	n := 0
	for dof := 0; dof < f.Data.Size(); dof++ {
		if c.Fields.IsGhost(dof) {
			continue
		}
		row := f.Get(dof)
		nrm := la.VecNorm(row)
		sum += nrm * nrm
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}
