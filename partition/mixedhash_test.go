// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_mixedhash01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mixedhash01. every object is owned by exactly one part and one proc")

	h, err := New([]int{10, 7}, 4, 2)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}

	seen := make(map[int]bool)
	for obj := 0; obj < 17; obj++ {
		part, err := h.PartOfObj(obj)
		if err != nil {
			tst.Errorf("PartOfObj(%d) failed: %v", obj, err)
			continue
		}
		if part < 0 || part >= h.PartSize() {
			tst.Errorf("object %d assigned out-of-range part %d", obj, part)
		}
		owner := -1
		for proc := 0; proc < 2; proc++ {
			owns, err := h.RankOwns(obj, proc)
			if err != nil {
				tst.Errorf("RankOwns failed: %v", err)
			}
			if owns {
				if owner != -1 {
					tst.Errorf("object %d owned by both proc %d and proc %d", obj, owner, proc)
				}
				owner = proc
			}
		}
		if owner == -1 {
			tst.Errorf("object %d not owned by any proc", obj)
		}
		seen[obj] = true
	}
	if len(seen) != 17 {
		tst.Errorf("expected 17 distinct objects, saw %d", len(seen))
	}
}

func Test_mixedhash02(tst *testing.T) {

	chk.PrintTitle("mixedhash02. part totals sum to the declared object counts")

	h, err := New([]int{13}, 3, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	total := 0
	for part := 0; part < h.PartSize(); part++ {
		total += h.NbObjectsInPart(part)
	}
	if total != 13 {
		tst.Errorf("expected 13 objects distributed across parts, got %d", total)
	}
}

func Test_mixedhash03(tst *testing.T) {

	chk.PrintTitle("mixedhash03. out-of-range object id is reported as ValueNotFound")

	h, err := New([]int{5}, 2, 1)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	_, err = h.PartOfObj(5)
	if err == nil {
		tst.Errorf("expected ValueNotFound for object id beyond declared species counts")
	}
}
