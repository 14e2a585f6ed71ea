// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/pdecore/shapefunc"
	"github.com/cpmech/pdecore/tbl"
)

// Space holds a connectivity table mapping elements of one Entities to DoF
// indices in one Dictionary, plus the ShapeFunction used for value/gradient
// reconstruction on that Entities.
type Space struct {
	Entities *Entities
	Shape    *shapefunc.Shape
	Conn     *tbl.Table[int] // [nelem][nverts] -> DoF index
}

// DofsOf returns the DoF indices for element i.
func (s *Space) DofsOf(i int) []int { return s.Conn.Row(i) }
