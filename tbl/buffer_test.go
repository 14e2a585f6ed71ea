// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tbl

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_tbl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tbl01. buffer grow: remove-then-add refills before appending")

	t := NewTable[float64]()
	t.SetRowSize(2)
	t.Resize(3)
	t.SetRow(0, []float64{1, 1})
	t.SetRow(1, []float64{2, 2})
	t.SetRow(2, []float64{3, 3})

	b := NewBuffer(t)
	b.RmRow(1)
	b.AddRow([]float64{4, 4})
	b.AddRow([]float64{5, 5})
	if err := b.Flush(); err != nil {
		tst.Errorf("Flush failed: %v", err)
		return
	}

	if t.Size() != 4 {
		tst.Errorf("expected size 4, got %d", t.Size())
	}
	expected := [][]float64{{1, 1}, {4, 4}, {3, 3}, {5, 5}}
	for i, exp := range expected {
		got := t.Row(i)
		if got[0] != exp[0] || got[1] != exp[1] {
			tst.Errorf("row %d: expected %v, got %v", i, exp, got)
		}
	}
}

func Test_tbl02(tst *testing.T) {

	chk.PrintTitle("tbl02. buffer shrink: removed-prefix holes refilled from discarded tail")

	t := NewTable[float64]()
	t.SetRowSize(1)
	t.Resize(5)
	for i := 0; i < 5; i++ {
		t.SetRow(i, []float64{float64(i)}) // rows hold 0,1,2,3,4
	}

	b := NewBuffer(t)
	b.RmRow(0)
	b.RmRow(1)
	b.RmRow(4)
	if err := b.Flush(); err != nil {
		tst.Errorf("Flush failed: %v", err)
		return
	}

	if t.Size() != 2 {
		tst.Errorf("expected size 2, got %d", t.Size())
		return
	}
	// rows 2 and 3 (values {2},{3}) must be the surviving live data, in some
	// order consistent with the documented swap (row0<-row2, row1<-row3)
	if t.Row(0)[0] != 2 || t.Row(1)[0] != 3 {
		tst.Errorf("expected surviving rows {2},{3}, got {%v},{%v}", t.Row(0)[0], t.Row(1)[0])
	}
}

func Test_tbl03(tst *testing.T) {

	chk.PrintTitle("tbl03. buffer rejects wrong-width row")

	t := NewTable[float64]()
	t.SetRowSize(3)
	t.Resize(1)
	b := NewBuffer(t)
	_, err := b.AddRow([]float64{1, 2})
	if err == nil {
		tst.Errorf("expected BadValue error for wrong row width")
	}
}

func Test_tbl04(tst *testing.T) {

	chk.PrintTitle("tbl04. add_empty_row fills default values")

	t := NewTable[float64]()
	t.SetRowSize(2)
	b := NewBuffer(t)
	idx := b.AddEmptyRow()
	row, err := b.GetRow(idx)
	if err != nil {
		tst.Errorf("GetRow failed: %v", err)
		return
	}
	if row[0] != 0 || row[1] != 0 {
		tst.Errorf("expected zero-filled row, got %v", row)
	}
	if err := b.Flush(); err != nil {
		tst.Errorf("Flush failed: %v", err)
	}
	if t.Size() != 1 {
		tst.Errorf("expected size 1, got %d", t.Size())
	}
}
