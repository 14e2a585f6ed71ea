// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapefunc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/num"
)

// CheckDSdR checks sh's analytic DSdR against gosl/num.DerivCentral central
// differencing at natural coordinates r, grounded on
// PaddySchmidt-gofem/shp/testing.go's CheckDSdR.
func CheckDSdR(tst *testing.T, sh *Shape, r []float64, tol float64) {
	if err := sh.GradientsAt(r); err != nil {
		tst.Fatalf("GradientsAt failed: %v", err)
	}
	analytic := make([][]float64, sh.Nverts)
	for n := range analytic {
		analytic[n] = append([]float64(nil), sh.DSdR[n]...)
	}

	rTmp := append([]float64(nil), r...)
	sTmp := make([]float64, sh.Nverts)
	for n := 0; n < sh.Nverts; n++ {
		for g := 0; g < sh.Gndim; g++ {
			dSndRg, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
				copy(rTmp, r)
				rTmp[g] = t
				if err := sh.Eval(sTmp, nil, rTmp); err != nil {
					tst.Fatalf("Eval failed: %v", err)
				}
				return sTmp[n]
			}, r[g], 1e-3)
			if math.Abs(analytic[n][g]-dSndRg) > tol {
				tst.Errorf("%s dS%ddR%d @ %v: analytic=%v numerical=%v", sh.Name, n, g, r, analytic[n][g], dSndRg)
			}
		}
	}
}
