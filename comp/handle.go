// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package comp implements the runtime component tree: named nodes with
// options, properties, signals and tags, plus lifetime-aware handles.
package comp

import (
	"github.com/cpmech/gosl/chk"
)

// slot is the owning storage location for one Component. A Handle never
// points at a Component directly; it points at a slot, so a slot can be
// invalidated (generation bumped) without dangling any live Go pointer.
type slot struct {
	obj  *Component
	gen  uint64
	live bool
}

// Handle is a lifetime-aware, non-owning reference to a Component.
// Observable states are null (no slot attached), alive (slot.live and
// generation matches) and expired (slot.live==false, generation mismatch).
// A Handle never extends the lifetime of its referent.
type Handle struct {
	s   *slot
	gen uint64
}

// NullHandle returns a Handle that is always null.
func NullHandle() Handle { return Handle{} }

// newHandle returns a Handle pointing at the given slot at its current generation.
func newHandle(s *slot) Handle {
	if s == nil {
		return Handle{}
	}
	return Handle{s: s, gen: s.gen}
}

// IsNull returns true if this handle was never attached to a slot.
func (h Handle) IsNull() bool { return h.s == nil }

// IsExpired returns true if the handle was attached but its referent has
// since been destroyed (generation mismatch).
func (h Handle) IsExpired() bool {
	return h.s != nil && (!h.s.live || h.s.gen != h.gen)
}

// Get returns the referenced Component, or nil if null or expired.
func (h Handle) Get() *Component {
	if h.s == nil || !h.s.live || h.s.gen != h.gen {
		return nil
	}
	return h.s.obj
}

// Bool reports whether the handle currently resolves to a live Component;
// mirrors the boolean-test operator of the C++ Handle<T>.
func (h Handle) Bool() bool { return h.Get() != nil }

// MustGet returns the referenced Component or panics; used where a nil
// handle is a programmer error (NullReference, per spec.md §4.1).
func (h Handle) MustGet() *Component {
	c := h.Get()
	if c == nil {
		chk.Panic("comp: dereferenced a null or expired handle")
	}
	return c
}

// Equal compares two handles by underlying slot identity (not generation),
// matching "a handle is equality-comparable by underlying identity".
func (h Handle) Equal(other Handle) bool { return h.s == other.s }

// Reset clears the handle back to null.
func (h *Handle) Reset() { *h = Handle{} }

// expire invalidates the slot so every outstanding Handle referencing it
// observes IsExpired()==true from this point on.
func (s *slot) expire() {
	s.live = false
	s.gen++
	s.obj = nil
}
