// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/mesh"
	"github.com/cpmech/pdecore/octree"
	"github.com/cpmech/pdecore/shapefunc"
	"github.com/cpmech/pdecore/tbl"
)

func bindVolumeDict(tst *testing.T, m *mesh.Mesh, width func(x, y float64) float64) (*mesh.Dictionary, *mesh.Field) {
	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool { return e.HasTag("volume") })
	if len(entsList) != 1 {
		tst.Fatalf("expected 1 volume Entities, got %d", len(entsList))
	}
	ents := entsList[0]

	dict := mesh.NewDictionary("fields", true, 0, len(m.Verts), m.Ndim)
	conn := tbl.NewTable[int]()
	conn.SetRowSize(ents.Shape.Nverts)
	conn.Resize(ents.Size())
	for i := 0; i < ents.Size(); i++ {
		conn.SetRow(i, ents.Verts[i])
	}
	if _, err := dict.BindSpace(ents, ents.Shape, conn); err != nil {
		tst.Fatalf("BindSpace failed: %v", err)
	}

	desc := mesh.NewVarDescriptor(mesh.ScalarVar("u"))
	f, err := dict.CreateField("u", desc)
	if err != nil {
		tst.Fatalf("CreateField failed: %v", err)
	}
	for i, v := range m.Verts {
		f.Set(i, []float64{width(v.Coords[0], v.Coords[1])})
	}
	return dict, f
}

// Test_interp01 checks same-support transfer: a second dictionary bound to
// the identical Entities/connectivity should receive back exactly the
// source nodal values (the interpolation matrix is the identity in that
// degenerate case).
func Test_interp01(tst *testing.T) {
	m := mesh.BuildRectangleMesh(2, 2, 2, 2)
	linear := func(x, y float64) float64 { return 2*x + 3*y }
	sourceDict, source := bindVolumeDict(tst, m, linear)

	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool { return e.HasTag("volume") })
	ents := entsList[0]
	targetDict := mesh.NewDictionary("target", true, 0, len(m.Verts), m.Ndim)
	conn := tbl.NewTable[int]()
	conn.SetRowSize(ents.Shape.Nverts)
	conn.Resize(ents.Size())
	for i := 0; i < ents.Size(); i++ {
		conn.SetRow(i, ents.Verts[i])
	}
	if _, err := targetDict.BindSpace(ents, ents.Shape, conn); err != nil {
		tst.Fatalf("BindSpace failed: %v", err)
	}
	desc := mesh.NewVarDescriptor(mesh.ScalarVar("u"))
	target, err := targetDict.CreateField("u", desc)
	if err != nil {
		tst.Fatalf("CreateField failed: %v", err)
	}

	if err := SameSupport(m, sourceDict, targetDict, source, target); err != nil {
		tst.Fatalf("SameSupport failed: %v", err)
	}

	for i, v := range m.Verts {
		want := linear(v.Coords[0], v.Coords[1])
		chk.Float64(tst, "u", 1e-12, target.Get(i)[0], want)
	}
}

// Test_interp02 checks octree-based point interpolation of a bilinear (qua4
// shape-exact) field: any interior point must reproduce the linear function
// exactly, since Qua4's shape functions reconstruct bilinear fields exactly
// at points inside an axis-aligned rectangle.
func Test_interp02(tst *testing.T) {
	m := mesh.BuildRectangleMesh(4, 4, 4, 4)
	linear := func(x, y float64) float64 { return 1 + 2*x - y }
	sourceDict, source := bindVolumeDict(tst, m, linear)

	ot, err := octree.New(m, nil, 1)
	if err != nil {
		tst.Fatalf("octree.New failed: %v", err)
	}

	coords := [][]float64{
		{1.3, 2.7},
		{0.1, 0.1},
		{3.9, 3.9},
	}
	target := make([][]float64, len(coords))
	for i := range target {
		target[i] = make([]float64, 1)
	}

	if err := ToCoords(m, sourceDict, source, ot, coords, target); err != nil {
		tst.Fatalf("ToCoords failed: %v", err)
	}

	for i, c := range coords {
		want := linear(c[0], c[1])
		chk.Float64(tst, "u", 1e-9, target[i][0], want)
	}
}

// Test_interp03 checks that a point outside the mesh's bounding box falls
// back to zero (no rank, including this single-process test run, can ever
// locate it), matching Interpolate::interpolate's zero-fill tail.
func Test_interp03(tst *testing.T) {
	m := mesh.BuildRectangleMesh(2, 2, 2, 2)
	sourceDict, source := bindVolumeDict(tst, m, func(x, y float64) float64 { return x + y })

	ot, err := octree.New(m, nil, 1)
	if err != nil {
		tst.Fatalf("octree.New failed: %v", err)
	}

	coords := [][]float64{{100, 100}}
	target := [][]float64{{math.NaN()}}

	if err := ToCoords(m, sourceDict, source, ot, coords, target); err != nil {
		tst.Fatalf("ToCoords failed: %v", err)
	}
	chk.Float64(tst, "u", 1e-12, target[0][0], 0)
}
