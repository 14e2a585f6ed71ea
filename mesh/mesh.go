// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the distributed mesh data model: regions,
// entities (homogeneous element groups), dictionaries of degrees of
// freedom, fields and per-entities connectivity spaces.
package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Vertex is one mesh node's coordinates, grounded on mallano-gofem/inp/msh.go's Vert.
type Vertex struct {
	ID     int
	Coords []float64
}

// Mesh is the top-level container: vertices shared by every Entities, plus
// the Region tree partitioning the elements, plus the Dictionaries bound to
// it by PDEs.
type Mesh struct {
	Verts       []Vertex
	Root        *Region
	Dicts       []*Dictionary
	Ndim        int
	Xmin, Xmax  float64
	Ymin, Ymax  float64
	Zmin, Zmax  float64
}

// NewMesh creates an empty mesh with the given space dimension and a root region.
func NewMesh(ndim int, rootName string) *Mesh {
	m := &Mesh{Ndim: ndim}
	m.Root = NewRegion(rootName)
	return m
}

// AddVertex appends a vertex and updates the bounding extents.
func (m *Mesh) AddVertex(coords []float64) int {
	id := len(m.Verts)
	m.Verts = append(m.Verts, Vertex{ID: id, Coords: coords})
	if id == 0 {
		m.Xmin, m.Xmax = coords[0], coords[0]
		if len(coords) > 1 {
			m.Ymin, m.Ymax = coords[1], coords[1]
		}
		if len(coords) > 2 {
			m.Zmin, m.Zmax = coords[2], coords[2]
		}
		return id
	}
	m.Xmin, m.Xmax = utl.Min(m.Xmin, coords[0]), utl.Max(m.Xmax, coords[0])
	if len(coords) > 1 {
		m.Ymin, m.Ymax = utl.Min(m.Ymin, coords[1]), utl.Max(m.Ymax, coords[1])
	}
	if len(coords) > 2 {
		m.Zmin, m.Zmax = utl.Min(m.Zmin, coords[2]), utl.Max(m.Zmax, coords[2])
	}
	return id
}

// AllEntities returns every Entities block reachable from the mesh's root
// region, depth-first.
func (m *Mesh) AllEntities() []*Entities {
	return m.Root.CollectEntities(func(*Entities) bool { return true })
}

// FindDictionary looks a bound Dictionary up by name.
func (m *Mesh) FindDictionary(name string) (*Dictionary, error) {
	for _, d := range m.Dicts {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, chk.Err("ValueNotFound: dictionary %q not bound to this mesh", name)
}

// BoundingBoxMin returns the minimum corner of the mesh's bounding box.
func (m *Mesh) BoundingBoxMin() []float64 {
	switch m.Ndim {
	case 2:
		return []float64{m.Xmin, m.Ymin}
	default:
		return []float64{m.Xmin, m.Ymin, m.Zmin}
	}
}

// BoundingBoxMax returns the maximum corner of the mesh's bounding box.
func (m *Mesh) BoundingBoxMax() []float64 {
	switch m.Ndim {
	case 2:
		return []float64{m.Xmax, m.Ymax}
	default:
		return []float64{m.Xmax, m.Ymax, m.Zmax}
	}
}
