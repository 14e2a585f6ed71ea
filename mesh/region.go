// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/pdecore/comp"

// Region is a tree-structured partition of a mesh: it contains child
// Regions and/or Entities, and carries tags (e.g. "outer_faces", "geometry").
type Region struct {
	Comp        *comp.Component
	SubRegions  []*Region
	EntitiesSet []*Entities
}

// NewRegion creates a named, untagged region.
func NewRegion(name string) *Region {
	return &Region{Comp: comp.NewRoot(name, "Region")}
}

// Name returns the region's local name.
func (r *Region) Name() string { return r.Comp.Name() }

// Tag attaches a string label to the region.
func (r *Region) Tag(tag string) { r.Comp.Tag(tag) }

// HasTag reports whether the region carries the given tag.
func (r *Region) HasTag(tag string) bool { return r.Comp.HasTag(tag) }

// AddSubRegion appends a nested region.
func (r *Region) AddSubRegion(child *Region) { r.SubRegions = append(r.SubRegions, child) }

// AddEntities appends a leaf Entities block directly under this region.
func (r *Region) AddEntities(e *Entities) { r.EntitiesSet = append(r.EntitiesSet, e) }

// CollectEntities performs a depth-first traversal of the region tree,
// gathering every Entities block for which pred returns true (e.g. "volume
// elements only"), matching spec.md §4.4.
func (r *Region) CollectEntities(pred func(*Entities) bool) []*Entities {
	var out []*Entities
	for _, e := range r.EntitiesSet {
		if pred(e) {
			out = append(out, e)
		}
	}
	for _, sub := range r.SubRegions {
		out = append(out, sub.CollectEntities(pred)...)
	}
	return out
}

// CollectRegions performs a depth-first traversal gathering every region
// (including r itself) for which pred returns true.
func (r *Region) CollectRegions(pred func(*Region) bool) []*Region {
	var out []*Region
	if pred(r) {
		out = append(out, r)
	}
	for _, sub := range r.SubRegions {
		out = append(out, sub.CollectRegions(pred)...)
	}
	return out
}
