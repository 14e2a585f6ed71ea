// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/cpmech/gosl/chk"
)

// Frame is the structured argument/result container signals communicate
// through. Signals never return interior references; only Frame values.
type Frame map[string]interface{}

// SignalFunc is a named callable entry point on a Component.
type SignalFunc func(owner *Component, args Frame) (Frame, error)

// Signal describes one registered callable, plus whether it is hidden from
// scripting/UI listings.
type Signal struct {
	Name   string
	Fn     SignalFunc
	Hidden bool
}

// SignalList is the set of signals carried by a Component.
type SignalList struct {
	order []string
	byKey map[string]*Signal
}

func newSignalList() *SignalList {
	return &SignalList{byKey: make(map[string]*Signal)}
}

// Add registers a signal under `name`.
func (l *SignalList) Add(name string, fn SignalFunc, hidden bool) {
	if _, ok := l.byKey[name]; ok {
		chk.Panic("comp: signal %q already exists", name)
	}
	l.byKey[name] = &Signal{Name: name, Fn: fn, Hidden: hidden}
	l.order = append(l.order, name)
}

// Names returns signal names in registration order. If includeHidden is
// false, hidden signals are omitted (as for a UI listing).
func (l *SignalList) Names(includeHidden bool) []string {
	out := make([]string, 0, len(l.order))
	for _, n := range l.order {
		if includeHidden || !l.byKey[n].Hidden {
			out = append(out, n)
		}
	}
	return out
}

// Call invokes signal `name` with the given argument frame. Exceptions
// (errors) from the handler propagate unmodified to the caller; the
// dispatcher never swallows them.
func (l *SignalList) Call(owner *Component, name string, args Frame) (Frame, error) {
	sig, ok := l.byKey[name]
	if !ok {
		return nil, chk.Err("InvalidKey: signal %q not found", name)
	}
	return sig.Fn(owner, args)
}
