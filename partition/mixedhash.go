// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package partition implements the cross-rank ownership mapping for
// distributed objects (nodes, elements, ...) and the callback-driven
// interface an external graph partitioner uses to rebalance them.
package partition

import "github.com/cpmech/gosl/chk"

// subHash maps a single species' (e.g. "nodes", or one element type's)
// object count onto a contiguous part-index range, split evenly.
type subHash struct {
	base    int // first global object id this sub-hash is responsible for
	nbObj   int
	nbParts int
}

func newSubHash(base, nbObj, nbParts int) *subHash {
	return &subHash{base: base, nbObj: nbObj, nbParts: nbParts}
}

func (h *subHash) partSize() int {
	if h.nbParts == 0 {
		return 0
	}
	return (h.nbObj + h.nbParts - 1) / h.nbParts
}

func (h *subHash) partOfLocal(localObj int) int {
	size := h.partSize()
	if size == 0 {
		return 0
	}
	return localObj / size
}

func (h *subHash) nbObjectsInPart(part int) int {
	size := h.partSize()
	start := part * size
	end := start + size
	if end > h.nbObj {
		end = h.nbObj
	}
	if start >= end {
		return 0
	}
	return end - start
}

// MixedHash composes per-species sub-hashes (e.g. one for nodes, one per
// element type) into a single object-id space, and maps parts onto MPI
// ranks, grounded on original_source/cf3/Mesh/CMixedHash.hpp.
type MixedHash struct {
	subhash []*subHash
	nbParts int
	nbProcs int
}

// New builds a MixedHash over the given per-species object counts (in
// species order, contiguous in the global id space), splitting nbParts
// parts evenly across nbProcs processes.
func New(nbObjPerSpecies []int, nbParts, nbProcs int) (*MixedHash, error) {
	if nbParts <= 0 || nbProcs <= 0 {
		return nil, chk.Err("BadValue: MixedHash requires nb_parts>0 and nb_procs>0, got %d/%d", nbParts, nbProcs)
	}
	h := &MixedHash{nbParts: nbParts, nbProcs: nbProcs}
	base := 0
	for _, n := range nbObjPerSpecies {
		h.subhash = append(h.subhash, newSubHash(base, n, nbParts))
		base += n
	}
	return h, nil
}

// SubhashOfObj returns the species index owning global object id obj.
func (h *MixedHash) SubhashOfObj(obj int) (int, error) {
	for i, s := range h.subhash {
		if obj >= s.base && obj < s.base+s.nbObj {
			return i, nil
		}
	}
	return 0, chk.Err("ValueNotFound: object %d not covered by any species in this MixedHash", obj)
}

// PartOfObj returns the partition index owning global object id obj.
func (h *MixedHash) PartOfObj(obj int) (int, error) {
	i, err := h.SubhashOfObj(obj)
	if err != nil {
		return 0, err
	}
	s := h.subhash[i]
	return s.partOfLocal(obj - s.base), nil
}

// ProcOfPart maps a partition index to its owning MPI rank (parts are
// distributed round-robin across processes when nb_parts != nb_procs).
func (h *MixedHash) ProcOfPart(part int) int { return part % h.nbProcs }

// ProcOfObj returns the owning MPI rank of global object id obj.
func (h *MixedHash) ProcOfObj(obj int) (int, error) {
	part, err := h.PartOfObj(obj)
	if err != nil {
		return 0, err
	}
	return h.ProcOfPart(part), nil
}

// RankOwns reports whether myRank owns global object id obj.
func (h *MixedHash) RankOwns(obj, myRank int) (bool, error) {
	proc, err := h.ProcOfObj(obj)
	if err != nil {
		return false, err
	}
	return proc == myRank, nil
}

// PartOwns reports whether partition `part` owns global object id obj.
func (h *MixedHash) PartOwns(part, obj int) (bool, error) {
	p, err := h.PartOfObj(obj)
	if err != nil {
		return false, err
	}
	return p == part, nil
}

// NbObjectsInPart returns the total object count (summed over every
// species) assigned to partition part.
func (h *MixedHash) NbObjectsInPart(part int) int {
	total := 0
	for _, s := range h.subhash {
		total += s.nbObjectsInPart(part)
	}
	return total
}

// NbObjectsInProc returns the total object count owned by process proc,
// summed over every partition that process hosts.
func (h *MixedHash) NbObjectsInProc(proc int) int {
	total := 0
	for part := 0; part < h.nbParts; part++ {
		if h.ProcOfPart(part) == proc {
			total += h.NbObjectsInPart(part)
		}
	}
	return total
}

// PartSize returns the number of partitions.
func (h *MixedHash) PartSize() int { return h.nbParts }
