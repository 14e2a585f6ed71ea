// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapefunc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. qua4 partition of unity and corner interpolation")

	sh := Qua4()
	for n := 0; n < sh.Nverts; n++ {
		r := []float64{sh.NatCoords[0][n], sh.NatCoords[1][n]}
		sh.ValuesAt(r)
		for m := 0; m < sh.Nverts; m++ {
			exp := 0.0
			if m == n {
				exp = 1.0
			}
			if math.Abs(sh.S[m]-exp) > 1e-14 {
				tst.Errorf("qua4 S[%d] at vertex %d: expected %v got %v", m, n, exp, sh.S[m])
			}
		}
	}
}

func Test_shape02(tst *testing.T) {

	chk.PrintTitle("shape02. IsCoordInElement on a unit square")

	sh := Qua4()
	coords := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if !IsCoordInElement(sh, []float64{0.5, 0.5}, coords) {
		tst.Errorf("centre of unit square must be inside")
	}
	if IsCoordInElement(sh, []float64{2, 2}, coords) {
		tst.Errorf("far-away point must be outside")
	}
}

func Test_shape03(tst *testing.T) {

	chk.PrintTitle("shape03. centroid of unit square is its centre")

	coords := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	c := Centroid(coords)
	if math.Abs(c[0]-0.5) > 1e-14 || math.Abs(c[1]-0.5) > 1e-14 {
		tst.Errorf("expected centroid (0.5,0.5), got %v", c)
	}
}

func Test_shape04(tst *testing.T) {

	chk.PrintTitle("shape04. qua4 DSdR matches gosl/num.DerivCentral")

	sh := Qua4()
	for _, r := range [][]float64{{0, 0}, {0.3, -0.6}, {-0.9, 0.9}} {
		CheckDSdR(tst, sh, r, 1e-8)
	}
}
