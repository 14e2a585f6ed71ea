// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shapefunc implements the minimal shape-function abstraction the
// mesh, octree and interpolation layers consume: value/gradient
// reconstruction and point-in-element tests. It is not a full element
// catalog (the shape-function library itself is out of scope, spec.md §1);
// it carries just enough concrete shapes to exercise that interface.
package shapefunc

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
)

// Func evaluates shape function values (and, if derivs, local derivatives)
// at natural coordinates r. Grounded on PaddySchmidt-gofem/shp/shp.go's
// ShpFunc callback signature.
type Func func(S []float64, dSdR [][]float64, r []float64) error

// Shape describes one element geometry's shape functions.
type Shape struct {
	Name      string      // e.g. "tri3", "qua4", "hex8", "lin2"
	Gndim     int         // geometric dimension of the natural space
	Nverts    int         // number of vertices / nodes
	NatCoords [][]float64 // [gndim][nverts] natural coordinates of each vertex
	Eval      Func

	// scratch, reused across calls to avoid per-call allocation
	S    []float64
	DSdR [][]float64
}

// NewShape allocates scratch space for a shape descriptor.
func NewShape(name string, gndim, nverts int, natCoords [][]float64, eval Func) *Shape {
	return &Shape{
		Name:      name,
		Gndim:     gndim,
		Nverts:    nverts,
		NatCoords: natCoords,
		Eval:      eval,
		S:         make([]float64, nverts),
		DSdR:      la.MatAlloc(nverts, gndim),
	}
}

// ValuesAt evaluates S at natural coordinates r, writing into sh.S.
func (sh *Shape) ValuesAt(r []float64) error {
	return sh.Eval(sh.S, nil, r)
}

// GradientsAt evaluates S and dS/dr at natural coordinates r.
func (sh *Shape) GradientsAt(r []float64) error {
	return sh.Eval(sh.S, sh.DSdR, r)
}

// Interp maps natural coordinates r to physical coordinates given the
// element's nodal coordinates coords ([nverts][ndim]).
func (sh *Shape) Interp(r []float64, coords [][]float64) ([]float64, error) {
	if err := sh.ValuesAt(r); err != nil {
		return nil, err
	}
	ndim := len(coords[0])
	x := make([]float64, ndim)
	for n := 0; n < sh.Nverts; n++ {
		for d := 0; d < ndim; d++ {
			x[d] += sh.S[n] * coords[n][d]
		}
	}
	return x, nil
}

// Centroid returns the physical centroid of an element with the given
// nodal coordinates (arithmetic mean of vertices, matching how gofem's
// TermComputer locates an element for stencil/octree purposes).
func Centroid(coords [][]float64) []float64 {
	ndim := len(coords[0])
	c := make([]float64, ndim)
	for _, v := range coords {
		for d := 0; d < ndim; d++ {
			c[d] += v[d]
		}
	}
	n := float64(len(coords))
	for d := range c {
		c[d] /= n
	}
	return c
}

// IsCoordInElement tests whether physical point p lies inside the element
// described by shape sh with nodal coordinates coords, using Newton
// iteration to invert the isoparametric map.
func IsCoordInElement(sh *Shape, p []float64, coords [][]float64) bool {
	r, ok := InverseMap(sh, p, coords)
	if !ok {
		return false
	}
	return withinNaturalBounds(sh.Name, r)
}

// InverseMap computes natural coordinates r such that Interp(r)==p, using
// gosl/num.NlSolver the same way msolid/hyperelast1.go's CalcEps0 drives a
// small Newton solve with an analytic Jacobian. The root-finding problem
// posed is always square in sh.Gndim unknowns: fx(r) = -dxdr(r)ᵀ·res(r),
// Jfx(r) ≈ dxdr(r)ᵀ·dxdr(r) (the Gauss-Newton normal equations), which
// reduces to the ordinary square Newton step dxdr·Δr=res when
// len(p)==sh.Gndim (dxdr invertible) and to a least-squares inversion when
// p's embedding space has one more dimension than sh.Gndim (face/boundary
// elements), so both cases share one solver call.
func InverseMap(sh *Shape, p []float64, coords [][]float64) ([]float64, bool) {
	ndim := len(p)
	r := make([]float64, sh.Gndim)
	dxdr := la.MatAlloc(ndim, sh.Gndim)
	res := make([]float64, ndim)

	updateResidualAndJacobian := func(x []float64) error {
		if err := sh.GradientsAt(x); err != nil {
			return err
		}
		for d := 0; d < ndim; d++ {
			res[d] = p[d]
			for g := 0; g < sh.Gndim; g++ {
				dxdr[d][g] = 0
			}
		}
		for n := 0; n < sh.Nverts; n++ {
			for d := 0; d < ndim; d++ {
				res[d] -= sh.S[n] * coords[n][d]
				for g := 0; g < sh.Gndim; g++ {
					dxdr[d][g] += sh.DSdR[n][g] * coords[n][d]
				}
			}
		}
		return nil
	}

	var nls num.NlSolver
	defer nls.Clean()
	nls.Init(sh.Gndim, func(fx, x []float64) error {
		if err := updateResidualAndJacobian(x); err != nil {
			return err
		}
		for g := 0; g < sh.Gndim; g++ {
			s := 0.0
			for d := 0; d < ndim; d++ {
				s += dxdr[d][g] * res[d]
			}
			fx[g] = -s
		}
		return nil
	}, nil, func(J [][]float64, x []float64) error {
		if err := updateResidualAndJacobian(x); err != nil {
			return err
		}
		for i := 0; i < sh.Gndim; i++ {
			for j := 0; j < sh.Gndim; j++ {
				s := 0.0
				for d := 0; d < ndim; d++ {
					s += dxdr[d][i] * dxdr[d][j]
				}
				J[i][j] = s
			}
		}
		return nil
	}, true, false, map[string]float64{"lSearch": 0})
	nls.SetTols(1e-10, 1e-10, 1e-14, num.EPS)

	if err := nls.Solve(r, true); err != nil {
		return nil, false
	}
	return r, true
}

// withinNaturalBounds checks natural coordinates against the reference
// element's domain, with a small tolerance for points on the boundary.
func withinNaturalBounds(name string, r []float64) bool {
	const eps = 1e-8
	switch name {
	case "lin2", "lin3":
		return r[0] >= -1-eps && r[0] <= 1+eps
	case "tri3", "tri6":
		return r[0] >= -eps && r[1] >= -eps && r[0]+r[1] <= 1+eps
	case "qua4", "qua8", "qua9":
		return r[0] >= -1-eps && r[0] <= 1+eps && r[1] >= -1-eps && r[1] <= 1+eps
	case "hex8", "hex20":
		return r[0] >= -1-eps && r[0] <= 1+eps &&
			r[1] >= -1-eps && r[1] <= 1+eps &&
			r[2] >= -1-eps && r[2] <= 1+eps
	case "tet4", "tet10":
		return r[0] >= -eps && r[1] >= -eps && r[2] >= -eps && r[0]+r[1]+r[2] <= 1+eps
	default:
		chk.Panic("shapefunc: unknown shape %q", name)
		return false
	}
}
