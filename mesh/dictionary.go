// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/shapefunc"
	"github.com/cpmech/pdecore/tbl"
)

// VarKind classifies a Field variable's dimensionality.
type VarKind int

// variable kinds
const (
	Scalar VarKind = iota
	Vector
	Tensor
)

// Variable is one named entry of a Field's descriptor.
type Variable struct {
	Name string
	Kind VarKind
	Dim  int // column width contributed by this variable
}

// VarDescriptor lists a Field's variables in column order.
type VarDescriptor struct {
	Vars []Variable
}

// NewVarDescriptor builds a descriptor; width is inferred from each
// variable's Dim.
func NewVarDescriptor(vars ...Variable) *VarDescriptor {
	return &VarDescriptor{Vars: vars}
}

// Width returns the total column count described.
func (d *VarDescriptor) Width() int {
	w := 0
	for _, v := range d.Vars {
		w += v.Dim
	}
	return w
}

// ScalarVar is a convenience constructor for a scalar-dimensioned variable.
func ScalarVar(name string) Variable { return Variable{Name: name, Kind: Scalar, Dim: 1} }

// VectorVar is a convenience constructor for a vector-dimensioned variable.
func VectorVar(name string, ndim int) Variable { return Variable{Name: name, Kind: Vector, Dim: ndim} }

// Dictionary is a set of degrees of freedom sharing a layout (continuous or
// discontinuous) over a collection of Entities.
type Dictionary struct {
	Name       string
	Continuous bool
	MyRank     int

	Coordinates *Field
	fields      map[string]*Field
	fieldOrder  []string
	spaces      map[string]*Space // keyed by Entities name

	GlbIdx []int // [ndofs] global (cross-rank) index of each DoF
	Rank   []int // [ndofs] owning rank of each DoF
}

// NewDictionary creates an empty dictionary with ndofs degrees of freedom,
// ndim-dimensional coordinates, owned locally by myRank.
func NewDictionary(name string, continuous bool, myRank, ndofs, ndim int) *Dictionary {
	d := &Dictionary{
		Name:       name,
		Continuous: continuous,
		MyRank:     myRank,
		fields:     make(map[string]*Field),
		spaces:     make(map[string]*Space),
		GlbIdx:     make([]int, ndofs),
		Rank:       make([]int, ndofs),
	}
	for i := range d.Rank {
		d.Rank[i] = myRank
	}
	coordsDesc := NewVarDescriptor(VectorVar("coords", ndim))
	d.Coordinates = newField("coordinates", coordsDesc, d)
	return d
}

// NDofs returns the degree-of-freedom count.
func (d *Dictionary) NDofs() int { return len(d.GlbIdx) }

// IsGhost reports whether DoF i is owned by a rank other than MyRank.
func (d *Dictionary) IsGhost(i int) bool { return d.Rank[i] != d.MyRank }

// CreateField creates (on demand) and registers a new Field with the given
// variable descriptor, sized to the dictionary's current DoF count.
func (d *Dictionary) CreateField(name string, desc *VarDescriptor) (*Field, error) {
	if _, exists := d.fields[name]; exists {
		return nil, chk.Err("InvalidKey: field %q already exists on dictionary %q", name, d.Name)
	}
	f := newField(name, desc, d)
	d.fields[name] = f
	d.fieldOrder = append(d.fieldOrder, name)
	return f, nil
}

// Field looks a registered field up by name (ValueNotFound if absent).
func (d *Dictionary) Field(name string) (*Field, error) {
	f, ok := d.fields[name]
	if !ok {
		return nil, chk.Err("ValueNotFound: field %q not found on dictionary %q", name, d.Name)
	}
	return f, nil
}

// FieldNames returns registered field names in creation order.
func (d *Dictionary) FieldNames() []string {
	out := make([]string, len(d.fieldOrder))
	copy(out, d.fieldOrder)
	return out
}

// BindSpace registers the Space connecting `ent` to this dictionary's DoFs.
// Fails (BadValue) if a Space for that Entities already exists — a
// Dictionary guarantees at most one Space per covered Entities.
func (d *Dictionary) BindSpace(ent *Entities, sh *shapefunc.Shape, conn *tbl.Table[int]) (*Space, error) {
	if _, exists := d.spaces[ent.Name()]; exists {
		return nil, chk.Err("BadValue: dictionary %q already has a Space for entities %q", d.Name, ent.Name())
	}
	if conn.Cols() != sh.Nverts {
		return nil, chk.Err("BadValue: space connectivity has %d columns, shape function expects %d", conn.Cols(), sh.Nverts)
	}
	sp := &Space{Entities: ent, Shape: sh, Conn: conn}
	d.spaces[ent.Name()] = sp
	return sp, nil
}

// Space looks up the Space bound for the given Entities.
func (d *Dictionary) Space(ent *Entities) (*Space, error) {
	sp, ok := d.spaces[ent.Name()]
	if !ok {
		return nil, chk.Err("ValueNotFound: dictionary %q has no Space for entities %q", d.Name, ent.Name())
	}
	return sp, nil
}
