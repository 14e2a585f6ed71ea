// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/pdecore/shapefunc"

// BuildRectangleMesh builds an nx-by-ny grid of qua4 elements over
// [0,lx]x[0,ly], used by octree/interpolation tests (grounded on the
// coolfluid octree unit test's rectangle fixture, spec.md §8 scenario S2).
func BuildRectangleMesh(nx, ny int, lx, ly float64) *Mesh {
	m := NewMesh(2, "domain")
	dx, dy := lx/float64(nx), ly/float64(ny)
	vid := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.AddVertex([]float64{float64(i) * dx, float64(j) * dy})
		}
	}
	vol := NewEntities("quads", shapefunc.Qua4())
	vol.Tag("volume")
	eid := 0
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			verts := []int{vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)}
			vol.Append(verts, eid, 0)
			eid++
		}
	}
	m.Root.AddEntities(vol)
	return m
}
