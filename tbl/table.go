// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tbl implements 2-D value-typed tables, 1-D value lists, and
// deferred-mutation buffers that coalesce bulk edits on flush.
package tbl

import (
	"github.com/cpmech/gosl/chk"
)

// Table is row-major, fixed-column-count 2-D storage. Each row is its own
// slice; the rows are not one contiguous block of memory.
type Table[T any] struct {
	cols int
	rows [][]T
}

// NewTable returns an empty table with zero rows; SetRowSize must be called
// before any row may be added.
func NewTable[T any]() *Table[T] { return &Table[T]{} }

// SetRowSize fixes the column count. Legal only when the table is empty, or
// when rows already carry exactly `cols` columns (no-op in that case).
func (t *Table[T]) SetRowSize(cols int) error {
	if t.cols == 0 || len(t.rows) == 0 {
		t.cols = cols
		return nil
	}
	if t.cols != cols {
		return chk.Err("IllegalCall: cannot change row size from %d to %d on a non-empty table", t.cols, cols)
	}
	return nil
}

// Cols returns the fixed column count (0 if unset).
func (t *Table[T]) Cols() int { return t.cols }

// Size returns the current row count.
func (t *Table[T]) Size() int { return len(t.rows) }

// Resize grows or shrinks the table to n rows; growth preserves existing
// data and zero-fills new rows, shrink discards trailing rows.
func (t *Table[T]) Resize(n int) {
	if n <= len(t.rows) {
		t.rows = t.rows[:n]
		return
	}
	for len(t.rows) < n {
		t.rows = append(t.rows, make([]T, t.cols))
	}
}

// Row returns a mutable view of row i's backing slice.
func (t *Table[T]) Row(i int) []T { return t.rows[i] }

// SetRow overwrites row i's contents; len(v) must equal Cols().
func (t *Table[T]) SetRow(i int, v []T) error {
	if len(v) != t.cols {
		return chk.Err("BadValue: row has %d columns, table expects %d", len(v), t.cols)
	}
	copy(t.rows[i], v)
	return nil
}

// List is the 1-D analogue of Table.
type List[T any] struct {
	items []T
}

// NewList returns an empty List.
func NewList[T any]() *List[T] { return &List[T]{} }

// Size returns the number of items.
func (l *List[T]) Size() int { return len(l.items) }

// Get returns item i.
func (l *List[T]) Get(i int) T { return l.items[i] }

// Set overwrites item i.
func (l *List[T]) Set(i int, v T) { l.items[i] = v }

// Append adds v to the end of the list, returning its index.
func (l *List[T]) Append(v T) int {
	l.items = append(l.items, v)
	return len(l.items) - 1
}

// Resize grows (zero-filling) or shrinks the list to n items.
func (l *List[T]) Resize(n int) {
	if n <= len(l.items) {
		l.items = l.items[:n]
		return
	}
	var zero T
	for len(l.items) < n {
		l.items = append(l.items, zero)
	}
}
