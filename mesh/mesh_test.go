// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. region tree, tags, depth-first traversal")

	m := BuildRectangleMesh(5, 5, 10, 10)
	all := m.Root.CollectEntities(func(*Entities) bool { return true })
	if len(all) != 1 || all[0].Size() != 25 {
		tst.Errorf("expected one Entities block with 25 elements, got %+v", all)
	}

	outer := NewRegion("boundary")
	outer.Tag("outer_faces")
	m.Root.AddSubRegion(outer)
	regions := m.Root.CollectRegions(func(r *Region) bool { return r.HasTag("outer_faces") })
	if len(regions) != 1 || regions[0] != outer {
		tst.Errorf("tag-based region traversal failed")
	}
}

func Test_mesh02(tst *testing.T) {

	chk.PrintTitle("mesh02. dictionary invariants: glb_idx/rank and is_ghost")

	d := NewDictionary("fields", true, 0, 4, 2)
	d.Rank[2] = 1 // DoF 2 is a ghost, owned by rank 1
	for i := range d.GlbIdx {
		d.GlbIdx[i] = i
	}
	for i := 0; i < 4; i++ {
		want := i == 2
		if d.IsGhost(i) != want {
			tst.Errorf("IsGhost(%d): expected %v got %v", i, want, d.IsGhost(i))
		}
	}
}

func Test_mesh03(tst *testing.T) {

	chk.PrintTitle("mesh03. field row/col sizing and variable slicing")

	d := NewDictionary("fields", true, 0, 3, 2)
	desc := NewVarDescriptor(ScalarVar("p"), VectorVar("u", 2))
	f, err := d.CreateField("solution", desc)
	if err != nil {
		tst.Errorf("CreateField failed: %v", err)
		return
	}
	if f.Data.Size() != 3 || f.Data.Cols() != 3 {
		tst.Errorf("field sized wrong: rows=%d cols=%d", f.Data.Size(), f.Data.Cols())
	}
	f.Set(0, []float64{1.0, 2.0, 3.0})
	u, err := f.GetVar(0, "u")
	if err != nil {
		tst.Errorf("GetVar failed: %v", err)
		return
	}
	if u[0] != 2.0 || u[1] != 3.0 {
		tst.Errorf("GetVar sliced wrong: %v", u)
	}

	// duplicate field name must fail
	_, err = d.CreateField("solution", desc)
	if err == nil {
		tst.Errorf("expected InvalidKey error for duplicate field name")
	}
}

func Test_mesh04(tst *testing.T) {

	chk.PrintTitle("mesh04. entities centroid matches shape function interpolation")

	m := BuildRectangleMesh(1, 1, 2, 2)
	ents := m.Root.CollectEntities(func(*Entities) bool { return true })[0]
	c := ents.Centroid(m, 0)
	if c[0] != 1.0 || c[1] != 1.0 {
		tst.Errorf("expected centroid (1,1), got %v", c)
	}
}
