// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"encoding/xml"
	"os"

	"github.com/cpmech/gosl/chk"
)

// xmlBlock mirrors one <block> entry in the manifest, one per data block
// written to a rank's .cfbin file.
type xmlBlock struct {
	XMLName  xml.Name `xml:"block"`
	Name     string   `xml:"name,attr"`
	Index    int      `xml:"index,attr"`
	TypeName string   `xml:"type_name,attr"`
	NbRows   int      `xml:"nb_rows,attr"`
	NbCols   int      `xml:"nb_cols,attr"`
	Begin    int64    `xml:"begin,attr"`
	End      int64    `xml:"end,attr"`
}

// xmlNode mirrors one <node> entry: one per MPI rank's output file.
type xmlNode struct {
	XMLName  xml.Name   `xml:"node"`
	Filename string     `xml:"filename,attr"`
	Rank     int        `xml:"rank,attr"`
	Blocks   []xmlBlock `xml:"block"`
}

// Manifest is the root <cfbinary> document gathered on rank 0, matching
// BinaryDataWriter::Implementation's xml_doc structure.
type Manifest struct {
	XMLName xml.Name  `xml:"cfbinary"`
	Version uint32    `xml:"version,attr"`
	Nodes   []xmlNode `xml:"nodes>node"`
}

// NewManifest starts an empty manifest sized for nbProcs ranks, with base
// the shared filename stem every rank's BinaryDataWriter was opened with.
func NewManifest(base string, nbProcs int) *Manifest {
	m := &Manifest{Version: FormatVersion}
	for rank := 0; rank < nbProcs; rank++ {
		m.Nodes = append(m.Nodes, xmlNode{Filename: BaseFilename(base, rank), Rank: rank})
	}
	return m
}

// AddBlocks records the blocks a given rank's BinaryDataWriter produced.
func (m *Manifest) AddBlocks(rank int, blocks []BlockInfo) error {
	if rank < 0 || rank >= len(m.Nodes) {
		return chk.Err("BadValue: manifest has no node slot for rank %d", rank)
	}
	for _, b := range blocks {
		m.Nodes[rank].Blocks = append(m.Nodes[rank].Blocks, xmlBlock{
			Name: b.Name, Index: b.Index, TypeName: b.TypeName,
			NbRows: b.NbRows, NbCols: b.NbCols, Begin: b.Begin, End: b.End,
		})
	}
	return nil
}

// WriteFile writes the manifest as indented XML to path (typically
// "<base>.cfbinxml", or "<base>.cf3mesh"/".cfrestart" for the mesh and
// restart manifests described in spec.md §6).
func (m *Manifest) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("SetupError: cannot create manifest %q: %v", path, err)
	}
	defer f.Close()
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(m); err != nil {
		return chk.Err("XmlError: cannot encode manifest: %v", err)
	}
	return nil
}

// ReadManifestFile reads back a previously written manifest.
func ReadManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("SetupError: cannot read manifest %q: %v", path, err)
	}
	var m Manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, chk.Err("XmlError: cannot parse manifest %q: %v", path, err)
	}
	return &m, nil
}
