// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Trigger fires after an option's value has been committed. Triggers may
// mutate the tree; re-entrant firing on the same option is serialized by
// OptionList.Set (see its doc comment).
type Trigger func(owner *Component, newValue interface{}) error

// Option is one typed, named configuration entry.
type Option struct {
	Name        string
	PrettyName  string
	Description string
	value       interface{}
	triggers    []Trigger
}

// Value returns the option's current raw value.
func (o *Option) Value() interface{} { return o.value }

// OptionList is the ordered set of options carried by a Component.
// Ordered by first insertion, looked up by name.
type OptionList struct {
	order []string
	byKey map[string]*Option
	// firing is set while a trigger chain for `firing` is in flight,
	// serializing re-entrant Set calls on the same option.
	firing map[string]bool
}

func newOptionList() *OptionList {
	return &OptionList{byKey: make(map[string]*Option), firing: make(map[string]bool)}
}

// Add registers a new option with an initial value. Panics (programmer
// error) if the name is already registered.
func (l *OptionList) Add(name, prettyName, description string, initial interface{}) *Option {
	if _, ok := l.byKey[name]; ok {
		chk.Panic("comp: option %q already exists", name)
	}
	opt := &Option{Name: name, PrettyName: prettyName, Description: description, value: initial}
	l.byKey[name] = opt
	l.order = append(l.order, name)
	return opt
}

// OnChange registers a trigger fired after name's value is committed.
func (l *OptionList) OnChange(name string, t Trigger) {
	opt, ok := l.byKey[name]
	if !ok {
		chk.Panic("comp: cannot attach trigger to unknown option %q", name)
	}
	opt.triggers = append(opt.triggers, t)
}

// Get returns the option named `name`, or an InvalidKey error.
func (l *OptionList) Get(name string) (*Option, error) {
	opt, ok := l.byKey[name]
	if !ok {
		return nil, chk.Err("InvalidKey: option %q not found", name)
	}
	return opt, nil
}

// Value returns the raw value of option `name`, or an InvalidKey error.
func (l *OptionList) Value(name string) (interface{}, error) {
	opt, err := l.Get(name)
	if err != nil {
		return nil, err
	}
	return opt.value, nil
}

// Names returns option names in registration order.
func (l *OptionList) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Set assigns a new value to option `name` on the given owning Component,
// then fires its triggers in registration order. Triggers firing on the
// same option re-entrantly (a trigger that calls Set on its own option
// again) are serialized: the re-entrant call commits its value but fires
// no triggers, and only the outermost Set runs the trigger chain,
// preventing unbounded recursion.
func (l *OptionList) Set(owner *Component, name string, value interface{}) error {
	opt, ok := l.byKey[name]
	if !ok {
		return chk.Err("InvalidKey: option %q not found", name)
	}
	opt.value = value
	if l.firing[name] {
		// re-entrant: value committed above, but do not re-run triggers now;
		// the outer Set call's loop will have already captured this change
		// once it observes opt.value on its next (there isn't one) pass.
		// Per spec: "reentrant trigger firing is serialized per option" —
		// the outer call owns firing the chain exactly once.
		return nil
	}
	l.firing[name] = true
	defer delete(l.firing, name)
	for _, trig := range opt.triggers {
		if err := trig(owner, value); err != nil {
			return fmt.Errorf("comp: trigger for option %q failed: %w", name, err)
		}
	}
	return nil
}

// TypedValue fetches an option's value cast to T, returning a CastError-kind
// error if the stored value is not a T.
func TypedValue[T any](l *OptionList, name string) (T, error) {
	var zero T
	v, err := l.Value(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, chk.Err("CastError: option %q value is not of the requested type", name)
	}
	return t, nil
}

// Property is a read-only, runtime-computed named value (e.g. "cputime").
type Property struct {
	Name string
	Get  func() interface{}
}

// PropertyList is the ordered set of properties carried by a Component.
type PropertyList struct {
	order []string
	byKey map[string]*Property
}

func newPropertyList() *PropertyList {
	return &PropertyList{byKey: make(map[string]*Property)}
}

// Add registers a computed property.
func (l *PropertyList) Add(name string, get func() interface{}) {
	if _, ok := l.byKey[name]; ok {
		chk.Panic("comp: property %q already exists", name)
	}
	l.byKey[name] = &Property{Name: name, Get: get}
	l.order = append(l.order, name)
}

// Value evaluates and returns property `name`, or a ValueNotFound error.
func (l *PropertyList) Value(name string) (interface{}, error) {
	p, ok := l.byKey[name]
	if !ok {
		return nil, chk.Err("ValueNotFound: property %q not found", name)
	}
	return p.Get(), nil
}

// Names returns property names in registration order.
func (l *PropertyList) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}
