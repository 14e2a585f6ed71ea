// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapefunc

// Qua4 is the bilinear quadrilateral.
func Qua4() *Shape {
	nat := [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	return NewShape("qua4", 2, 4, nat, func(S []float64, dSdR [][]float64, r []float64) error {
		rr, s := r[0], r[1]
		S[0] = 0.25 * (1 - rr) * (1 - s)
		S[1] = 0.25 * (1 + rr) * (1 - s)
		S[2] = 0.25 * (1 + rr) * (1 + s)
		S[3] = 0.25 * (1 - rr) * (1 + s)
		if dSdR != nil {
			dSdR[0][0] = -0.25 * (1 - s)
			dSdR[0][1] = -0.25 * (1 - rr)
			dSdR[1][0] = 0.25 * (1 - s)
			dSdR[1][1] = -0.25 * (1 + rr)
			dSdR[2][0] = 0.25 * (1 + s)
			dSdR[2][1] = 0.25 * (1 + rr)
			dSdR[3][0] = -0.25 * (1 + s)
			dSdR[3][1] = 0.25 * (1 - rr)
		}
		return nil
	})
}

// Tri3 is the linear triangle.
func Tri3() *Shape {
	nat := [][]float64{
		{0, 1, 0},
		{0, 0, 1},
	}
	return NewShape("tri3", 2, 3, nat, func(S []float64, dSdR [][]float64, r []float64) error {
		rr, s := r[0], r[1]
		S[0] = 1 - rr - s
		S[1] = rr
		S[2] = s
		if dSdR != nil {
			dSdR[0][0], dSdR[0][1] = -1, -1
			dSdR[1][0], dSdR[1][1] = 1, 0
			dSdR[2][0], dSdR[2][1] = 0, 1
		}
		return nil
	})
}

// Lin2 is the linear line (1-D).
func Lin2() *Shape {
	nat := [][]float64{{-1, 1}}
	return NewShape("lin2", 1, 2, nat, func(S []float64, dSdR [][]float64, r []float64) error {
		rr := r[0]
		S[0] = 0.5 * (1 - rr)
		S[1] = 0.5 * (1 + rr)
		if dSdR != nil {
			dSdR[0][0] = -0.5
			dSdR[1][0] = 0.5
		}
		return nil
	})
}

// Hex8 is the trilinear hexahedron.
func Hex8() *Shape {
	nat := [][]float64{
		{-1, 1, 1, -1, -1, 1, 1, -1},
		{-1, -1, 1, 1, -1, -1, 1, 1},
		{-1, -1, -1, -1, 1, 1, 1, 1},
	}
	return NewShape("hex8", 3, 8, nat, func(S []float64, dSdR [][]float64, r []float64) error {
		rr, s, t := r[0], r[1], r[2]
		signs := [8][3]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		}
		for n := 0; n < 8; n++ {
			ri, si, ti := signs[n][0], signs[n][1], signs[n][2]
			S[n] = 0.125 * (1 + ri*rr) * (1 + si*s) * (1 + ti*t)
			if dSdR != nil {
				dSdR[n][0] = 0.125 * ri * (1 + si*s) * (1 + ti*t)
				dSdR[n][1] = 0.125 * (1 + ri*rr) * si * (1 + ti*t)
				dSdR[n][2] = 0.125 * (1 + ri*rr) * (1 + si*s) * ti
			}
		}
		return nil
	})
}

// Lookup returns a fresh Shape instance for a named element type.
func Lookup(name string) *Shape {
	switch name {
	case "lin2":
		return Lin2()
	case "tri3":
		return Tri3()
	case "qua4":
		return Qua4()
	case "hex8":
		return Hex8()
	}
	return nil
}
