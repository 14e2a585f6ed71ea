// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/comp"
	"github.com/cpmech/pdecore/shapefunc"
	"github.com/cpmech/pdecore/tbl"
)

// Entities is a homogeneous set of elements of one shape/type.
type Entities struct {
	Comp  *comp.Component
	Shape *shapefunc.Shape

	GlbIdx []int   // [size] global (cross-rank) index of each element
	Rank   []int   // [size] owning rank of each element
	Verts  [][]int // [size][nverts] connectivity to Mesh.Verts

	Cell2Face *tbl.Table[int] // optional: connectivity_cell2face
	Face2Cell *tbl.Table[int] // optional: connectivity_face2cell
	Cell2Cell *tbl.Table[int] // optional: connectivity_cell2cell
}

// NewEntities creates an empty, named Entities block of the given shape.
func NewEntities(name string, shape *shapefunc.Shape) *Entities {
	return &Entities{Comp: comp.NewRoot(name, "Entities"), Shape: shape}
}

// Name returns the entities block's local name.
func (e *Entities) Name() string { return e.Comp.Name() }

// Tag attaches a label to the entities block.
func (e *Entities) Tag(tag string) { e.Comp.Tag(tag) }

// HasTag reports whether the entities block carries the given tag.
func (e *Entities) HasTag(tag string) bool { return e.Comp.HasTag(tag) }

// Size returns the element count. Invariant: size()==len(GlbIdx)==len(Rank).
func (e *Entities) Size() int { return len(e.GlbIdx) }

// CheckInvariant validates size()==len(glb_idx)==len(rank), per spec.md §3.
func (e *Entities) CheckInvariant() error {
	n := len(e.Verts)
	if len(e.GlbIdx) != n || len(e.Rank) != n {
		return chk.Err("BadValue: Entities invariant violated: size=%d glb_idx=%d rank=%d", n, len(e.GlbIdx), len(e.Rank))
	}
	return nil
}

// Append adds one element's connectivity, global id and owning rank.
func (e *Entities) Append(verts []int, glbIdx, rank int) {
	e.Verts = append(e.Verts, verts)
	e.GlbIdx = append(e.GlbIdx, glbIdx)
	e.Rank = append(e.Rank, rank)
}

// Coords returns element i's nodal coordinates, resolved through the owning mesh's vertices.
func (e *Entities) Coords(m *Mesh, i int) [][]float64 {
	verts := e.Verts[i]
	out := make([][]float64, len(verts))
	for k, v := range verts {
		out[k] = m.Verts[v].Coords
	}
	return out
}

// Centroid returns element i's centroid in physical space.
func (e *Entities) Centroid(m *Mesh, i int) []float64 {
	return shapefunc.Centroid(e.Coords(m, i))
}

