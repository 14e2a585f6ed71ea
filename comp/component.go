// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// SignalCall is one recorded entry in a Component's signal journal.
type SignalCall struct {
	Name   string
	Args   Frame
	Result Frame
	Err    error
}

// Component is a named node in a single-rooted tree. Identity is by name
// within its parent. A Component exclusively owns its children; other
// components reference it only through Handles.
type Component struct {
	name     string
	typeName string
	parent   *Component
	children []*Component
	byName   map[string]*Component
	tags     map[string]bool

	options    *OptionList
	properties *PropertyList
	signals    *SignalList
	journal    []SignalCall

	self *slot // this component's own owning slot, handed out by Handle()
}

// NewRoot creates a root Component with no parent.
func NewRoot(name, typeName string) *Component {
	c := &Component{
		name:       name,
		typeName:   typeName,
		byName:     make(map[string]*Component),
		tags:       make(map[string]bool),
		options:    newOptionList(),
		properties: newPropertyList(),
		signals:    newSignalList(),
	}
	c.self = &slot{obj: c, live: true}
	return c
}

// Name returns this component's local name.
func (c *Component) Name() string { return c.name }

// TypeName returns the registered type string this component was created from.
func (c *Component) TypeName() string { return c.typeName }

// Parent returns the parent component, or nil for the root.
func (c *Component) Parent() *Component { return c.parent }

// Options returns this component's option list.
func (c *Component) Options() *OptionList { return c.options }

// Properties returns this component's property list.
func (c *Component) Properties() *PropertyList { return c.properties }

// Signals returns this component's signal list.
func (c *Component) Signals() *SignalList { return c.signals }

// Journal returns the append-only log of signal invocations on this component.
func (c *Component) Journal() []SignalCall {
	out := make([]SignalCall, len(c.journal))
	copy(out, c.journal)
	return out
}

// CallSignal invokes a signal and records it in the journal, regardless of
// whether it failed; the dispatcher does not swallow the error, it merely
// also records it.
func (c *Component) CallSignal(name string, args Frame) (Frame, error) {
	res, err := c.signals.Call(c, name, args)
	c.journal = append(c.journal, SignalCall{Name: name, Args: args, Result: res, Err: err})
	return res, err
}

// Tag adds a string label to this component.
func (c *Component) Tag(tag string) { c.tags[tag] = true }

// HasTag reports whether this component carries the given tag.
func (c *Component) HasTag(tag string) bool { return c.tags[tag] }

// Create allocates a new child named `name` of type `typeName` and returns
// a Handle to it. Fails (InvalidKey) if a child of that name already exists.
func (c *Component) Create(name, typeName string) (Handle, error) {
	if _, exists := c.byName[name]; exists {
		return Handle{}, chk.Err("InvalidKey: child named %q already exists under %q", name, c.URI())
	}
	child := &Component{
		name:       name,
		typeName:   typeName,
		parent:     c,
		byName:     make(map[string]*Component),
		tags:       make(map[string]bool),
		options:    newOptionList(),
		properties: newPropertyList(),
		signals:    newSignalList(),
	}
	child.self = &slot{obj: child, live: true}
	c.byName[name] = child
	c.children = append(c.children, child)
	return newHandle(child.self), nil
}

// Remove destroys the named child, expiring every outstanding Handle to it
// and to its entire subtree.
func (c *Component) Remove(name string) error {
	child, ok := c.byName[name]
	if !ok {
		return chk.Err("InvalidKey: child named %q not found under %q", name, c.URI())
	}
	child.destroySubtree()
	delete(c.byName, name)
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Component) destroySubtree() {
	for _, ch := range c.children {
		ch.destroySubtree()
	}
	c.self.expire()
}

// Children returns the direct children in creation order.
func (c *Component) Children() []*Component {
	out := make([]*Component, len(c.children))
	copy(out, c.children)
	return out
}

// Handle returns a Handle referencing this component itself.
func (c *Component) Handle() Handle { return newHandle(c.self) }

// URI returns the absolute path from the root to this component, e.g. "/a/b/c".
func (c *Component) URI() string {
	if c.parent == nil {
		return "/" + c.name
	}
	return c.parent.URI() + "/" + c.name
}

// Root walks up to the root of the tree.
func (c *Component) Root() *Component {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Access resolves a path (absolute, starting with "/", or relative,
// possibly containing ".." segments) to a Component.
func (c *Component) Access(path string) (*Component, error) {
	if path == "" {
		return c, nil
	}
	cur := c
	if strings.HasPrefix(path, "/") {
		cur = c.Root()
		path = strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return cur, nil
	}
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if cur.parent == nil {
				return nil, chk.Err("InvalidKey: cannot walk above root from %q", cur.URI())
			}
			cur = cur.parent
		default:
			next, ok := cur.byName[part]
			if !ok {
				return nil, chk.Err("InvalidKey: no child %q under %q", part, cur.URI())
			}
			cur = next
		}
	}
	return cur, nil
}

// Find walks the subtree rooted at c in depth-first order, returning every
// component for which pred returns true. c itself is included if it matches.
func (c *Component) Find(pred func(*Component) bool) []*Component {
	var out []*Component
	if pred(c) {
		out = append(out, c)
	}
	for _, ch := range c.children {
		out = append(out, ch.Find(pred)...)
	}
	return out
}

// FindByTag is Find specialized to a tag predicate.
func (c *Component) FindByTag(tag string) []*Component {
	return c.Find(func(x *Component) bool { return x.HasTag(tag) })
}
