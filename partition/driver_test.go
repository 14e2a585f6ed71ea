// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// fakeGraph is a minimal GraphSource fixture: 3 local objects, each
// connected to its successor (a simple path graph).
type fakeGraph struct{}

func (fakeGraph) NumObj() int          { return 3 }
func (fakeGraph) ObjList() []int       { return []int{10, 11, 12} }
func (fakeGraph) NumEdgesMulti() []int { return []int{1, 2, 1} }
func (fakeGraph) EdgeListMulti() ([]int, []int) {
	return []int{11, 10, 12, 11}, []int{0, 0, 0, 0}
}

// moveFirstToLast sends the first object in the graph to the last
// partition, leaving everything else in place; stands in for a real
// external graph partitioner for test purposes.
type moveFirstToLast struct{}

func (moveFirstToLast) Partition(src GraphSource, nbParts int) ([]Reassignment, error) {
	ids := src.ObjList()
	return []Reassignment{{GlobalID: ids[0], ToPart: nbParts - 1, ToProc: nbParts - 1}}, nil
}

func Test_driver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver01. partitioner driver records per-part export lists")

	d := NewPartitionerDriver(fakeGraph{}, moveFirstToLast{}, 4)
	if err := d.PartitionGraph(); err != nil {
		tst.Errorf("PartitionGraph failed: %v", err)
		return
	}
	exports := d.ExportsToPart(3)
	if len(exports) != 1 || exports[0] != 10 {
		tst.Errorf("expected object 10 exported to part 3, got %v", exports)
	}
	if len(d.ExportsToPart(1)) != 0 {
		tst.Errorf("expected no exports to part 1")
	}
}
