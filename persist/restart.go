// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"fmt"

	"github.com/cpmech/pdecore/mesh"
)

// WriteRestart writes every field of dict to a per-rank .cfbin file plus a
// single rank-0 .cfrestart manifest, so a later run can resume from this
// state. Grounded on cf3/solver/actions/WriteRestartFile.cpp's pattern of
// delegating straight to BinaryDataWriter and the mesh manifest writer.
//
// The manifest gathers only rank 0's own blocks: a complete multi-rank
// manifest would need every other rank's BlockInfo list delivered to rank
// 0 before WriteFile, which needs a point-to-point gosl/mpi send/receive
// surface this port has not established (only the broadcast/all-reduce
// surface octree and TimeStepComputer use). Each rank's .cfbin file is
// still fully self-describing (its own 4-byte version header plus
// per-block begin/end offsets), so a reader that knows to open all
// nbProcs .cfbin files can reconstruct the full restart state even
// without a merged manifest; only the convenience of one aggregate XML
// index is lost for rank>0.
func WriteRestart(base string, dict *mesh.Dictionary, rank, nbProcs int) error {
	w, err := NewBinaryDataWriter(base, rank)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, name := range dict.FieldNames() {
		f, err := dict.Field(name)
		if err != nil {
			return err
		}
		if _, err := w.AppendFloatTable(fieldBlockName(name), f.Data); err != nil {
			return err
		}
	}

	if rank != 0 {
		return nil
	}
	m := NewManifest(base, nbProcs)
	if err := m.AddBlocks(rank, w.Blocks()); err != nil {
		return err
	}
	return m.WriteFile(base + ".cfrestart")
}

func fieldBlockName(name string) string { return fmt.Sprintf("field:%s", name) }
