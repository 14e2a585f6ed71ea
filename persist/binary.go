// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package persist implements the per-rank binary data file format and the
// rank-0 XML manifest that indexes it, grounded on
// original_source/cf3/common/BinaryDataWriter.{hpp,cpp} and
// original_source/cf3/mesh/cf3mesh/Writer.cpp.
package persist

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/pdecore/tbl"
)

// blockPrefix tags the start of every data block in a .cfbin file, matching
// the original's "__CFDATA_BEGIN" marker exactly (including its length).
const blockPrefix = "__CFDATA_BEGIN"

// FormatVersion is written as the first 4 bytes of every .cfbin file.
const FormatVersion uint32 = 1

// BlockInfo records one written block's position and shape, enough for a
// reader (or the XML manifest) to locate and decode it later.
type BlockInfo struct {
	Name     string
	TypeName string
	Index    int
	NbRows   int
	NbCols   int
	Begin    int64
	End      int64
}

// BinaryDataWriter appends zlib-compressed data blocks to a single
// per-rank file, tracking each block's byte range for the manifest.
type BinaryDataWriter struct {
	rank       int
	file       *os.File
	offset     int64
	index      int
	blocks     []BlockInfo
	totalBytes int64
}

// BaseFilename returns the per-rank filename the writer uses, matching
// BinaryDataWriter::Implementation::build_filename's "<base>_P<rank>.cfbin".
func BaseFilename(base string, rank int) string {
	return fmt.Sprintf("%s_P%d.cfbin", base, rank)
}

// NewBinaryDataWriter creates (truncating) the per-rank output file and
// writes the format version header.
func NewBinaryDataWriter(base string, rank int) (*BinaryDataWriter, error) {
	f, err := os.Create(BaseFilename(base, rank))
	if err != nil {
		return nil, chk.Err("SetupError: cannot create binary data file: %v", err)
	}
	w := &BinaryDataWriter{rank: rank, file: f}
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], FormatVersion)
	if _, err := f.Write(hdr[:]); err != nil {
		return nil, chk.Err("SetupError: cannot write format header: %v", err)
	}
	w.offset = 4
	return w, nil
}

// appendRaw writes one framed, zlib-compressed block and records its
// BlockInfo, matching write_data_block's prefix/compress/suffix sequence.
func (w *BinaryDataWriter) appendRaw(name, typeName string, nbRows, nbCols int, payload []byte) (int, error) {
	if _, err := w.file.WriteString(blockPrefix); err != nil {
		return 0, chk.Err("SetupError: cannot write block prefix: %v", err)
	}
	begin := w.offset + int64(len(blockPrefix))

	var compressed bytes.Buffer
	if len(payload) > 0 {
		zw := zlib.NewWriter(&compressed)
		if _, err := zw.Write(payload); err != nil {
			return 0, chk.Err("SetupError: zlib compression failed: %v", err)
		}
		if err := zw.Close(); err != nil {
			return 0, chk.Err("SetupError: zlib compression failed: %v", err)
		}
	}
	if _, err := w.file.Write(compressed.Bytes()); err != nil {
		return 0, chk.Err("SetupError: cannot write compressed block: %v", err)
	}
	end := begin + int64(compressed.Len())
	w.offset = end

	idx := w.index
	w.blocks = append(w.blocks, BlockInfo{
		Name: name, TypeName: typeName, Index: idx,
		NbRows: nbRows, NbCols: nbCols, Begin: begin, End: end,
	})
	w.index++
	w.totalBytes += int64(len(payload))
	return idx, nil
}

// AppendFloatTable writes a Table[float64] as one block, row-major.
func (w *BinaryDataWriter) AppendFloatTable(name string, t *tbl.Table[float64]) (int, error) {
	var buf bytes.Buffer
	for i := 0; i < t.Size(); i++ {
		if err := binary.Write(&buf, binary.LittleEndian, t.Row(i)); err != nil {
			return 0, chk.Err("SetupError: cannot encode table %q: %v", name, err)
		}
	}
	return w.appendRaw(name, "Real", t.Size(), t.Cols(), buf.Bytes())
}

// AppendIntTable writes a Table[int] as one block, row-major, storing each
// value as a 64-bit little-endian integer for portability.
func (w *BinaryDataWriter) AppendIntTable(name string, t *tbl.Table[int]) (int, error) {
	var buf bytes.Buffer
	for i := 0; i < t.Size(); i++ {
		row := t.Row(i)
		wide := make([]int64, len(row))
		for k, v := range row {
			wide[k] = int64(v)
		}
		if err := binary.Write(&buf, binary.LittleEndian, wide); err != nil {
			return 0, chk.Err("SetupError: cannot encode table %q: %v", name, err)
		}
	}
	return w.appendRaw(name, "Uint", t.Size(), t.Cols(), buf.Bytes())
}

// AppendFloatList writes a List[float64] as one single-column block.
func (w *BinaryDataWriter) AppendFloatList(name string, l *tbl.List[float64]) (int, error) {
	vals := make([]float64, l.Size())
	for i := range vals {
		vals[i] = l.Get(i)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, vals); err != nil {
		return 0, chk.Err("SetupError: cannot encode list %q: %v", name, err)
	}
	return w.appendRaw(name, "Real", l.Size(), 1, buf.Bytes())
}

// Blocks returns the BlockInfo recorded so far, for manifest assembly.
func (w *BinaryDataWriter) Blocks() []BlockInfo { return w.blocks }

// TotalBytes returns the uncompressed payload byte count written so far,
// matching the original's compression-ratio log line.
func (w *BinaryDataWriter) TotalBytes() int64 { return w.totalBytes }

// Close flushes and closes the underlying file.
func (w *BinaryDataWriter) Close() error {
	if err := w.file.Close(); err != nil {
		return chk.Err("SetupError: cannot close binary data file: %v", err)
	}
	return nil
}

// ReadBlock decompresses and returns the raw payload bytes for the block
// described by info, reading from the already-open file f.
func ReadBlock(f io.ReaderAt, info BlockInfo) ([]byte, error) {
	sr := io.NewSectionReader(f, info.Begin, info.End-info.Begin)
	zr, err := zlib.NewReader(sr)
	if err != nil {
		if info.Begin == info.End {
			return nil, nil
		}
		return nil, chk.Err("XmlError: cannot open compressed block %q: %v", info.Name, err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, chk.Err("XmlError: cannot decompress block %q: %v", info.Name, err)
	}
	return data, nil
}
