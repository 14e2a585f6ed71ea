// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"
)

func Test_localstep01(tst *testing.T) {
	// dY/dτ = -Y has the exact solution Y(τ)=Y0·exp(-τ); ten pseudo-steps
	// of a stiff-capable Radau5 integrator should track it closely.
	s := NewLocalImplicitStepper(1, func(f, y []float64) error {
		f[0] = -y[0]
		return nil
	}, nil)

	y := []float64{1}
	const dtau = 0.1
	for i := 0; i < 10; i++ {
		if err := s.Step(y, dtau); err != nil {
			tst.Fatalf("Step failed: %v", err)
		}
	}
	exact := math.Exp(-1)
	if math.Abs(y[0]-exact) > 1e-3 {
		tst.Errorf("expected y≈%v after τ=1, got %v", exact, y[0])
	}
}
