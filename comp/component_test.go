// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_comp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comp01. tree creation, URIs, uniqueness")

	root := NewRoot("domain", "Domain")
	hA, err := root.Create("mesh", "Mesh")
	if err != nil {
		tst.Errorf("Create failed: %v", err)
		return
	}
	a := hA.Get()
	if a == nil {
		tst.Errorf("handle to new child is null")
		return
	}
	if a.URI() != "/domain/mesh" {
		tst.Errorf("URI wrong: %q", a.URI())
	}

	// duplicate name under same parent must fail
	_, err = root.Create("mesh", "Mesh")
	if err == nil {
		tst.Errorf("expected InvalidKey error on duplicate child name")
	}

	// relative access with ".."
	_, err = root.Create("solver", "Solver")
	if err != nil {
		tst.Errorf("Create failed: %v", err)
	}
	back, err := a.Access("../solver")
	if err != nil {
		tst.Errorf("Access failed: %v", err)
		return
	}
	if back.URI() != "/domain/solver" {
		tst.Errorf("relative access resolved wrong node: %q", back.URI())
	}
}

func Test_comp02(tst *testing.T) {

	chk.PrintTitle("comp02. handle expiry")

	root := NewRoot("domain", "Domain")
	h, _ := root.Create("mesh", "Mesh")
	if !h.Bool() {
		tst.Errorf("fresh handle must be alive")
	}
	root.Remove("mesh")
	if h.Bool() {
		tst.Errorf("handle must be expired after owner destroyed")
	}
	if h.Get() != nil {
		tst.Errorf("Get() must return nil on expired handle")
	}
}

func Test_comp03(tst *testing.T) {

	chk.PrintTitle("comp03. options with triggers")

	root := NewRoot("pde", "PDE")
	fired := 0
	root.Options().Add("cfl", "CFL number", "Courant number", 0.5)
	root.Options().OnChange("cfl", func(owner *Component, v interface{}) error {
		fired++
		return nil
	})
	err := root.Options().Set(root, "cfl", 0.8)
	if err != nil {
		tst.Errorf("Set failed: %v", err)
	}
	if fired != 1 {
		tst.Errorf("trigger must fire exactly once, fired=%d", fired)
	}
	v, err := TypedValue[float64](root.Options(), "cfl")
	if err != nil || v != 0.8 {
		tst.Errorf("option value wrong: %v %v", v, err)
	}

	// unknown option
	_, err = root.Options().Value("does-not-exist")
	if err == nil {
		tst.Errorf("expected InvalidKey error")
	}
}

func Test_comp04(tst *testing.T) {

	chk.PrintTitle("comp04. signals propagate errors and journal calls")

	root := NewRoot("pde", "PDE")
	root.Signals().Add("boom", func(owner *Component, args Frame) (Frame, error) {
		return nil, chk.Err("deliberate failure")
	}, false)
	_, err := root.CallSignal("boom", Frame{})
	if err == nil {
		tst.Errorf("expected error to propagate from signal")
	}
	j := root.Journal()
	if len(j) != 1 || j[0].Name != "boom" || j[0].Err == nil {
		tst.Errorf("journal entry missing or wrong: %+v", j)
	}
}

func Test_comp05(tst *testing.T) {

	chk.PrintTitle("comp05. tag-based find is depth-first")

	root := NewRoot("mesh", "Mesh")
	hA, _ := root.Create("volume", "Region")
	a := hA.Get()
	a.Tag("geometry")
	hB, _ := a.Create("outer", "Entities")
	b := hB.Get()
	b.Tag("outer_faces")
	found := root.FindByTag("outer_faces")
	if len(found) != 1 || found[0] != b {
		tst.Errorf("FindByTag failed: %+v", found)
	}
}
