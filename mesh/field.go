// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/tbl"
)

// Field is a Table<Real> with an attached variables descriptor. Its row
// count equals its Dictionary's DoF count; its column count equals the
// descriptor's total width.
type Field struct {
	Name string
	Desc *VarDescriptor
	Dict *Dictionary
	Data *tbl.Table[float64]
}

func newField(name string, desc *VarDescriptor, dict *Dictionary) *Field {
	t := tbl.NewTable[float64]()
	t.SetRowSize(desc.Width())
	t.Resize(dict.NDofs())
	return &Field{Name: name, Desc: desc, Dict: dict, Data: t}
}

// Get returns the row of values at DoF i.
func (f *Field) Get(i int) []float64 { return f.Data.Row(i) }

// Set overwrites the row of values at DoF i.
func (f *Field) Set(i int, v []float64) error { return f.Data.SetRow(i, v) }

// GetVar returns the slice of columns belonging to the named variable at DoF i.
func (f *Field) GetVar(i int, name string) ([]float64, error) {
	off := 0
	for _, v := range f.Desc.Vars {
		if v.Name == name {
			return f.Data.Row(i)[off : off+v.Dim], nil
		}
		off += v.Dim
	}
	return nil, chk.Err("InvalidKey: variable %q not in field %q", name, f.Name)
}

// Fill sets every DoF's row to the given constant value.
func (f *Field) Fill(v float64) {
	for i := 0; i < f.Data.Size(); i++ {
		row := f.Data.Row(i)
		for c := range row {
			row[c] = v
		}
	}
}
