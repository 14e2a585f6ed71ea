// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/mesh"
)

func Test_restart01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart01. WriteRestart emits a per-rank binary file and a manifest")

	dir := tst.TempDir()
	base := filepath.Join(dir, "run")

	dict := mesh.NewDictionary("fields", true, 0, 4, 2)
	desc := mesh.NewVarDescriptor(mesh.ScalarVar("p"))
	f, err := dict.CreateField("pressure", desc)
	if err != nil {
		tst.Errorf("CreateField failed: %v", err)
		return
	}
	f.Fill(1.5)

	if err := WriteRestart(base, dict, 0, 1); err != nil {
		tst.Errorf("WriteRestart failed: %v", err)
		return
	}

	if _, err := os.Stat(BaseFilename(base, 0)); err != nil {
		tst.Errorf("expected binary file to exist: %v", err)
	}
	if _, err := os.Stat(base + ".cfrestart"); err != nil {
		tst.Errorf("expected .cfrestart manifest to exist: %v", err)
	}

	back, err := ReadManifestFile(base + ".cfrestart")
	if err != nil {
		tst.Errorf("ReadManifestFile failed: %v", err)
		return
	}
	if len(back.Nodes) != 1 || len(back.Nodes[0].Blocks) != 1 {
		tst.Errorf("expected one node with one field block, got %+v", back)
	}
}
