// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package history implements a growable table of named scalar variables
// recorded once per solver step, plus a tab-separated log file, grounded
// on original_source/cf3/solver/History.{hpp,cpp}.
package history

import (
	"bufio"
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/pdecore/tbl"
)

// History accumulates one row of named scalars per call to SaveEntry,
// growing its column set on demand the first time a new variable name is
// seen, and buffering rows via a tbl.Buffer until Flush materializes them.
type History struct {
	MyRank  int
	Logging bool
	File    string

	names   []string
	offset  map[string]int
	pending map[string]float64

	table  *tbl.Table[float64]
	buffer *tbl.Buffer[float64]

	needsResize bool
	f           *os.File
	w           *bufio.Writer
}

// New creates an empty history, logging (rank 0 only, TSV) by default to
// the given file.
func New(myRank int, file string) *History {
	return &History{
		MyRank:  myRank,
		Logging: true,
		File:    file,
		offset:  make(map[string]int),
		pending: make(map[string]float64),
		table:   tbl.NewTable[float64](),
	}
}

// Set stages a scalar variable's value for the current (not-yet-saved)
// entry, registering it as a new column the first time it is seen.
func (h *History) Set(name string, value float64) {
	if _, ok := h.offset[name]; !ok {
		h.offset[name] = len(h.names)
		h.names = append(h.names, name)
		h.needsResize = true
	}
	h.pending[name] = value
}

// SetVector stages a vector variable, expanding to name[0], name[1], ...,
// matching History::set(name, vector<Real>).
func (h *History) SetVector(name string, values []float64) {
	for i, v := range values {
		h.Set(io.Sf("%s[%d]", name, i), v)
	}
}

func (h *History) resizeIfNecessary() (bool, error) {
	if !h.needsResize {
		return false, nil
	}
	if h.buffer != nil {
		if err := h.buffer.Flush(); err != nil {
			return false, err
		}
	}
	if h.table.Size() > 0 {
		// the backing table already carries rows under the old column
		// count; a growing column set starts a fresh table instead of
		// trying to widen rows in place.
		h.table = tbl.NewTable[float64]()
	}
	if err := h.table.SetRowSize(len(h.names)); err != nil {
		return false, err
	}
	h.buffer = tbl.NewBuffer(h.table)
	h.needsResize = false
	return true, nil
}

// SaveEntry commits the currently staged values as one new row, appending
// to the rank-0 TSV log file (opening it and writing the header on the
// first entry or right after any column-count resize).
func (h *History) SaveEntry() error {
	resized, err := h.resizeIfNecessary()
	if err != nil {
		return err
	}

	row := make([]float64, len(h.names))
	for i, name := range h.names {
		row[i] = h.pending[name]
	}
	if _, err := h.buffer.AddRow(row); err != nil {
		return err
	}

	if !h.Logging || h.MyRank != 0 {
		return nil
	}
	if resized && h.f != nil {
		h.closeFile()
	}
	if h.f == nil {
		if err := h.Flush(); err != nil {
			return err
		}
		if err := h.openFile(); err != nil {
			return err
		}
		if err := h.writeFile(); err != nil {
			return err
		}
		return h.w.Flush()
	}
	if _, err := h.w.WriteString(formatRow(row) + "\n"); err != nil {
		return chk.Err("SetupError: cannot append history row: %v", err)
	}
	return h.w.Flush()
}

// Flush materializes any buffered rows into the backing table.
func (h *History) Flush() error {
	if h.buffer != nil {
		return h.buffer.Flush()
	}
	return nil
}

// Table returns the underlying table, flushing first so it reflects every
// saved entry.
func (h *History) Table() (*tbl.Table[float64], error) {
	if err := h.Flush(); err != nil {
		return nil, err
	}
	return h.table, nil
}

// LastRow returns the most recently saved entry's values, in column order.
func (h *History) LastRow() ([]float64, error) {
	t, err := h.Table()
	if err != nil {
		return nil, err
	}
	if t.Size() == 0 {
		return nil, chk.Err("ValueNotFound: history has no saved entries yet")
	}
	return t.Row(t.Size() - 1), nil
}

// Names returns the registered variable column names, in table order.
func (h *History) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

func (h *History) openFile() error {
	f, err := os.Create(h.File)
	if err != nil {
		return chk.Err("SetupError: cannot open history log %q: %v", h.File, err)
	}
	h.f = f
	h.w = bufio.NewWriter(f)
	return nil
}

func (h *History) closeFile() {
	if h.w != nil {
		h.w.Flush()
	}
	if h.f != nil {
		h.f.Close()
	}
	h.f, h.w = nil, nil
}

func fileHeader(names []string) string {
	var b strings.Builder
	b.WriteString("#")
	for _, n := range names {
		b.WriteString(io.Sf("\t%16s", n))
	}
	b.WriteString("\n")
	return b.String()
}

func formatRow(row []float64) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(io.Sf("\t%16.10e", v))
	}
	return b.String()
}

func (h *History) writeFile() error {
	if _, err := h.w.WriteString(fileHeader(h.names)); err != nil {
		return chk.Err("SetupError: cannot write history header: %v", err)
	}
	if err := h.Flush(); err != nil {
		return err
	}
	for row := 0; row < h.table.Size(); row++ {
		if _, err := h.w.WriteString(formatRow(h.table.Row(row)) + "\n"); err != nil {
			return chk.Err("SetupError: cannot write history row: %v", err)
		}
	}
	return nil
}

// Close flushes and closes the log file, if open.
func (h *History) Close() {
	h.closeFile()
}
