// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package interp implements field-to-field interpolation, grounded on
// original_source/cf3/mesh/actions/Interpolate.cpp: same-support transfer
// when source and target share a mesh, and octree-driven point
// interpolation (with round-robin missing-point resolution across ranks)
// otherwise.
package interp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/pdecore/mesh"
	"github.com/cpmech/pdecore/octree"
	"github.com/cpmech/pdecore/shapefunc"
)

// SameSupport interpolates source into target over every Entities both
// dictionaries cover, building one interpolation matrix per Entities
// (target-shape-node values of the source shape function, evaluated at
// the target shape's own natural coordinates) and reusing it across every
// element, matching Interpolate::execute's same-mesh branch.
func SameSupport(m *mesh.Mesh, sourceDict, targetDict *mesh.Dictionary, source, target *mesh.Field) error {
	if source.Desc.Width() != target.Desc.Width() {
		return chk.Err("BadValue: source field %q has %d variables, target field %q has %d",
			source.Name, source.Desc.Width(), target.Name, target.Desc.Width())
	}
	nbVars := source.Desc.Width()

	entsList := m.Root.CollectEntities(func(e *mesh.Entities) bool {
		if _, err := targetDict.Space(e); err != nil {
			return false
		}
		_, err := sourceDict.Space(e)
		return err == nil
	})

	for _, ents := range entsList {
		sSpace, err := sourceDict.Space(ents)
		if err != nil {
			return err
		}
		tSpace, err := targetDict.Space(ents)
		if err != nil {
			return err
		}
		sSF, tSF := sSpace.Shape, tSpace.Shape

		// interpolation matrix: row t = source shape values at target node t
		mat := make([][]float64, tSF.Nverts)
		for t := 0; t < tSF.Nverts; t++ {
			row := make([]float64, sSF.Nverts)
			if err := sSF.ValuesAt(naturalCoordOf(tSF, t)); err != nil {
				return err
			}
			copy(row, sSF.S)
			mat[t] = row
		}

		for e := 0; e < ents.Size(); e++ {
			sDofs := sSpace.DofsOf(e)
			tDofs := tSpace.DofsOf(e)
			for t, tDof := range tDofs {
				out := target.Get(tDof)
				for c := range out {
					out[c] = 0
				}
				for s, sDof := range sDofs {
					in := source.Get(sDof)
					w := mat[t][s]
					for c := 0; c < nbVars; c++ {
						out[c] += w * in[c]
					}
				}
			}
		}
	}
	return nil
}

func naturalCoordOf(sh *shapefunc.Shape, node int) []float64 {
	r := make([]float64, sh.Gndim)
	for g := 0; g < sh.Gndim; g++ {
		r[g] = sh.NatCoords[g][node]
	}
	return r
}

// ToCoords interpolates source (over sourceMesh, indexed by ot) onto an
// arbitrary list of target physical coordinates, writing nbVars-wide rows
// into target (already sized to len(coords) rows). Points this rank
// cannot locate are resolved with the other ranks' copy of the source
// mesh via ot's round-robin broadcast, the same pattern
// octree.FindCellRanks uses; points nobody finds fall back to zero,
// matching Interpolate::interpolate's "set to zero, report" tail.
func ToCoords(sourceMesh *mesh.Mesh, sourceDict *mesh.Dictionary, source *mesh.Field, ot *octree.Octree, coords [][]float64, target [][]float64) error {
	nbVars := source.Desc.Width()
	ndim := sourceMesh.Ndim

	missing := make([]int, 0)
	for i, coord := range coords {
		row, ok := interpolateAt(sourceMesh, sourceDict, source, ot, coord)
		if ok {
			copy(target[i], row)
		} else {
			for c := 0; c < nbVars; c++ {
				target[i][c] = math.Inf(1)
			}
			missing = append(missing, i)
		}
	}

	if mpi.IsOn() && len(missing) > 0 {
		if err := resolveMissing(sourceMesh, sourceDict, source, ot, coords, target, missing, ndim, nbVars); err != nil {
			return err
		}
	}

	for i := range target {
		for c := 0; c < nbVars; c++ {
			if math.IsInf(target[i][c], 1) {
				target[i][c] = 0
			}
		}
	}
	return nil
}

func interpolateAt(sourceMesh *mesh.Mesh, sourceDict *mesh.Dictionary, source *mesh.Field, ot *octree.Octree, coord []float64) ([]float64, bool) {
	ents, elemIdx, found := ot.FindElement(coord)
	if !found {
		return nil, false
	}
	sp, err := sourceDict.Space(ents)
	if err != nil {
		return nil, false
	}
	sh := sp.Shape
	elemCoords := ents.Coords(sourceMesh, elemIdx)
	r, ok := shapefunc.InverseMap(sh, coord, elemCoords)
	if !ok {
		return nil, false
	}
	if err := sh.ValuesAt(r); err != nil {
		return nil, false
	}
	nbVars := source.Desc.Width()
	out := make([]float64, nbVars)
	dofs := sp.DofsOf(elemIdx)
	for n, dof := range dofs {
		in := source.Get(dof)
		w := sh.S[n]
		for c := 0; c < nbVars; c++ {
			out[c] += w * in[c]
		}
	}
	return out, true
}

// resolveMissing broadcasts every rank's list of unresolved coordinates in
// turn; each other rank searches its own copy of the source mesh and
// reports back, and the broadcasting rank keeps the first (lowest-rank)
// answer it receives, mirroring octree.FindCellRanks's round-robin policy.
func resolveMissing(sourceMesh *mesh.Mesh, sourceDict *mesh.Dictionary, source *mesh.Field, ot *octree.Octree, coords, target [][]float64, missing []int, ndim, nbVars int) error {
	comm := mpi.NewCommunicator(nil)
	myRank := mpi.Rank()
	nbProcs := comm.Size()

	for root := 0; root < nbProcs; root++ {
		flat := make([]float64, 0, len(missing)*ndim)
		if myRank == root {
			for _, i := range missing {
				flat = append(flat, coords[i]...)
			}
		} else {
			flat = make([]float64, len(missing)*ndim)
		}
		comm.BcastFromRoot(flat)

		if myRank == root {
			continue
		}
		n := len(flat) / ndim
		for k := 0; k < n; k++ {
			coord := flat[k*ndim : (k+1)*ndim]
			if row, ok := interpolateAt(sourceMesh, sourceDict, source, ot, coord); ok {
				i := missing[k]
				for c := 0; c < nbVars; c++ {
					if math.IsInf(target[i][c], 1) {
						target[i][c] = row[c]
					}
				}
			}
		}
	}
	return nil
}
