// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package octree

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/mesh"
)

func Test_octree01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("octree01. 5x5 grid lookup over [0,10]x[0,10]")

	m := mesh.BuildRectangleMesh(5, 5, 10, 10)
	oc, err := New(m, nil, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}

	ents, idx, found := oc.FindElement([]float64{1, 1})
	if !found {
		tst.Errorf("expected to find element at (1,1)")
		return
	}
	if ents.Name() != "quads" || idx != 0 {
		tst.Errorf("expected element 0 of entities 'quads', got %s/%d", ents.Name(), idx)
	}

	_, _, found = oc.FindElement([]float64{11, 11})
	if found {
		tst.Errorf("expected (11,11) to be outside the mesh")
	}

	_, _, found = oc.FindElement([]float64{5, 5})
	if !found {
		tst.Errorf("expected to find element at the interior point (5,5)")
	}
}

func Test_octree02(tst *testing.T) {

	chk.PrintTitle("octree02. serial find_cell_ranks resolves every point locally")

	m := mesh.BuildRectangleMesh(2, 1, 4, 2)
	oc, err := New(m, nil, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}

	ranks := oc.FindCellRanks([][]float64{{1, 1}, {3, 1}, {100, 100}})
	if ranks[0] != 0 || ranks[1] != 0 {
		tst.Errorf("expected rank 0 for in-domain points, got %v", ranks)
	}
	if ranks[2] != 0 {
		tst.Errorf("expected the out-of-domain point to fall back to rank 0 on a serial run, got %d", ranks[2])
	}
}

func Test_octree03(tst *testing.T) {

	chk.PrintTitle("octree03. nb_cells option takes precedence over nb_elems_per_cell")

	m := mesh.BuildRectangleMesh(4, 4, 8, 8)
	oc, err := New(m, []int{2, 2}, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	if oc.N[0] != 2 || oc.N[1] != 2 {
		tst.Errorf("expected fixed 2x2 cell grid, got %v", oc.N)
	}
}
