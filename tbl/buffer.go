// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tbl

import (
	"github.com/cpmech/gosl/chk"
)

// DefaultBlockCap is the default fixed row-capacity of one buffer block.
const DefaultBlockCap = 16

type bufBlock[T any] struct {
	rows     [][]T
	notEmpty []bool
}

// Buffer is a deferred-mutation facade over a Table: add_row, add_empty_row
// and rm_row are recorded and only coalesced into the owning table on
// Flush. The table must not be read directly while a live Buffer holds
// pending mutations for it (IllegalCall, per spec.md §7).
type Buffer[T any] struct {
	t        *Table[T]
	blockCap int
	base     int // table.Size() captured when the buffer was attached
	blocks   []bufBlock[T]

	// emptyArrayQueue holds array-row indices (< base) marked for removal,
	// in the order rm_row was called (insertion order), deduplicated.
	emptyArrayQueue []int
	queuedArrayRow  map[int]bool
}

// NewBuffer attaches a deferred-mutation buffer to table t using the
// default block capacity.
func NewBuffer[T any](t *Table[T]) *Buffer[T] {
	return NewBufferCap(t, DefaultBlockCap)
}

// NewBufferCap is NewBuffer with an explicit block row-capacity.
func NewBufferCap[T any](t *Table[T], blockCap int) *Buffer[T] {
	return &Buffer[T]{
		t:              t,
		blockCap:       blockCap,
		base:           t.Size(),
		queuedArrayRow: make(map[int]bool),
	}
}

// findFreeSlot returns (blockIdx, localIdx, ok) for the first slot across
// existing blocks whose notEmpty flag is false (covers both never-used
// slots and previously removed ones).
func (b *Buffer[T]) findFreeSlot() (int, int, bool) {
	for bi := range b.blocks {
		for li, used := range b.blocks[bi].notEmpty {
			if !used {
				return bi, li, true
			}
		}
	}
	return 0, 0, false
}

func (b *Buffer[T]) virtualIndex(blockIdx, localIdx int) int {
	return b.base + blockIdx*b.blockCap + localIdx
}

// addSlot places row content into a free or freshly-allocated slot and
// returns its virtual index: array size at attach time plus the prefix of
// buffer block sizes plus the local offset within its block.
func (b *Buffer[T]) addSlot(row []T) int {
	if bi, li, ok := b.findFreeSlot(); ok {
		b.blocks[bi].rows[li] = row
		b.blocks[bi].notEmpty[li] = true
		return b.virtualIndex(bi, li)
	}
	bi := len(b.blocks)
	blk := bufBlock[T]{
		rows:     make([][]T, b.blockCap),
		notEmpty: make([]bool, b.blockCap),
	}
	for i := range blk.rows {
		blk.rows[i] = make([]T, b.t.cols)
	}
	blk.rows[0] = row
	blk.notEmpty[0] = true
	b.blocks = append(b.blocks, blk)
	return b.virtualIndex(bi, 0)
}

// AddRow stages a new row with the given content.
func (b *Buffer[T]) AddRow(row []T) (int, error) {
	if len(row) != b.t.cols {
		return 0, chk.Err("BadValue: row has %d columns, table expects %d", len(row), b.t.cols)
	}
	cp := make([]T, len(row))
	copy(cp, row)
	return b.addSlot(cp), nil
}

// AddEmptyRow stages a new row of default-constructed (zero) values.
func (b *Buffer[T]) AddEmptyRow() int {
	return b.addSlot(make([]T, b.t.cols))
}

// RmRow marks the row at virtual index i (spanning both the already-flushed
// array and the live buffer) as removed.
func (b *Buffer[T]) RmRow(i int) error {
	if i < 0 {
		return chk.Err("BadValue: negative row index %d", i)
	}
	if i < b.base {
		if !b.queuedArrayRow[i] {
			b.queuedArrayRow[i] = true
			b.emptyArrayQueue = append(b.emptyArrayQueue, i)
		}
		return nil
	}
	bi, li := b.locate(i)
	if bi >= len(b.blocks) {
		return chk.Err("BadValue: row index %d out of range", i)
	}
	b.blocks[bi].notEmpty[li] = false
	return nil
}

func (b *Buffer[T]) locate(i int) (blockIdx, localIdx int) {
	off := i - b.base
	return off / b.blockCap, off % b.blockCap
}

// GetRow returns a view into row i: the live array if i < array size,
// otherwise the corresponding buffer slot.
func (b *Buffer[T]) GetRow(i int) ([]T, error) {
	if i < b.base {
		if i >= b.t.Size() {
			return nil, chk.Err("BadValue: row index %d out of range", i)
		}
		return b.t.Row(i), nil
	}
	bi, li := b.locate(i)
	if bi >= len(b.blocks) || !b.blocks[bi].notEmpty[li] {
		return nil, chk.Err("BadValue: buffer row %d is empty or out of range", i)
	}
	return b.blocks[bi].rows[li], nil
}

// Flush coalesces every staged add_row/add_empty_row/rm_row into the owning
// table, implementing the normative algorithm of spec.md §4.3. After Flush,
// the buffer's internal blocks and queues are cleared and it may be reused
// for another round of staged mutations against the (now-updated) table.
func (b *Buffer[T]) Flush() error {
	old := b.t.Size()
	if old != b.base {
		return chk.Err("IllegalCall: table size changed from %d to %d while buffer was live", b.base, old)
	}

	filledRows := make([][]T, 0)
	for bi := range b.blocks {
		for li, used := range b.blocks[bi].notEmpty {
			if used {
				filledRows = append(filledRows, b.blocks[bi].rows[li])
			}
		}
	}
	bFilled := len(filledRows)
	eA := len(b.emptyArrayQueue)
	newSize := old + bFilled - eA
	if newSize < 0 {
		return chk.Err("BadValue: flush would produce a negative table size (old=%d, added=%d, removed=%d)", old, bFilled, eA)
	}

	emptyQueue := append([]int(nil), b.emptyArrayQueue...)

	if newSize > old {
		// Case A: growing.
		b.t.Resize(newSize)
		growIdx := old
		qi := 0
		for _, row := range filledRows {
			var target int
			if qi < len(emptyQueue) {
				target = emptyQueue[qi]
				qi++
			} else {
				target = growIdx
				growIdx++
			}
			if err := b.t.SetRow(target, row); err != nil {
				return err
			}
		}
	} else {
		// Case B: shrinking or equal.
		qi := 0
		for _, row := range filledRows {
			if qi >= len(emptyQueue) {
				return chk.Err("BadValue: flush invariant violated: more live buffer rows than reclaimable empty array rows")
			}
			target := emptyQueue[qi]
			qi++
			if err := b.t.SetRow(target, row); err != nil {
				return err
			}
		}
		// Remaining (unconsumed) empty-queue entries split into two groups:
		// those already inside the tail being discarded need no action;
		// those inside the surviving prefix [0,newSize) are holes that must
		// be refilled by swapping in a still-filled row from the tail.
		emptyInTail := make(map[int]bool)
		for _, idx := range emptyQueue[qi:] {
			if idx >= newSize {
				emptyInTail[idx] = true
			}
		}
		tailFilled := make([]int, 0)
		for idx := newSize; idx < old; idx++ {
			if !emptyInTail[idx] {
				tailFilled = append(tailFilled, idx)
			}
		}
		needRefill := make([]int, 0)
		for _, idx := range emptyQueue[qi:] {
			if idx < newSize {
				needRefill = append(needRefill, idx)
			}
		}
		if len(needRefill) > len(tailFilled) {
			return chk.Err("BadValue: flush invariant violated: not enough filled tail rows to refill empty prefix rows (Open Question 1)")
		}
		for k, idx := range needRefill {
			src := tailFilled[k]
			row := append([]T(nil), b.t.Row(src)...)
			if err := b.t.SetRow(idx, row); err != nil {
				return err
			}
		}
		b.t.Resize(newSize)
	}

	b.blocks = nil
	b.emptyArrayQueue = nil
	b.queuedArrayRow = make(map[int]bool)
	b.base = b.t.Size()
	return nil
}
