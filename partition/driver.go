// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

// GraphSource is implemented by the caller (typically the mesh layer) to
// expose the local connectivity graph an external graph partitioner needs:
// which objects this rank owns, and which global objects each is connected
// to (element-to-node and element-to-element adjacency, flattened).
// Grounded on the Zoltan query-function quartet in
// original_source/src/Mesh/Zoltan/CPartitioner.cpp
// (query_nb_of_objects / query_list_of_objects /
//  query_nb_connected_objects / query_list_of_connected_objects).
type GraphSource interface {
	// NumObj returns how many objects this rank currently owns.
	NumObj() int
	// ObjList returns the global ids of every object this rank owns, in a
	// stable order matching the edge-count/edge-list callbacks below.
	ObjList() []int
	// NumEdgesMulti returns, for each object in ObjList order, how many
	// graph edges (connections to other objects) it has.
	NumEdgesMulti() []int
	// EdgeListMulti returns the flattened neighbour global ids (length ==
	// sum of NumEdgesMulti) and, for each neighbour, the rank that
	// currently owns it.
	EdgeListMulti() (neighborIDs []int, neighborProcs []int)
}

// Reassignment describes one object's new partition assignment as computed
// by an external partitioner.
type Reassignment struct {
	GlobalID int
	ToPart   int
	ToProc   int
}

// ExternalPartitioner is the seam an external graph-partitioning library
// (e.g. a Zoltan/ParMETIS/Scotch binding) plugs into: given the local graph
// exposed by a GraphSource, it returns the objects that must migrate away
// from this rank. pdecore does not ship a partitioner implementation itself
// (out of scope); PartitionerDriver only wires
// the callback surface the mesh layer needs to drive one.
type ExternalPartitioner interface {
	Partition(src GraphSource, nbParts int) ([]Reassignment, error)
}

// PartitionerDriver adapts a mesh's local graph (via GraphSource) and an
// ExternalPartitioner into the export lists each rank applies to migrate
// objects, matching CPartitioner::partition_graph's export-only bookkeeping
// (imports are derived implicitly: whatever another rank exports to me).
type PartitionerDriver struct {
	src      GraphSource
	ext      ExternalPartitioner
	nbParts  int
	exportTo map[int][]int // part -> local/global ids exported to it
}

// NewPartitionerDriver builds a driver targeting nbParts partitions.
func NewPartitionerDriver(src GraphSource, ext ExternalPartitioner, nbParts int) *PartitionerDriver {
	return &PartitionerDriver{src: src, ext: ext, nbParts: nbParts}
}

// PartitionGraph invokes the external partitioner and records, per target
// partition, which global object ids must be exported from this rank.
func (d *PartitionerDriver) PartitionGraph() error {
	reassign, err := d.ext.Partition(d.src, d.nbParts)
	if err != nil {
		return err
	}
	d.exportTo = make(map[int][]int)
	for _, r := range reassign {
		d.exportTo[r.ToPart] = append(d.exportTo[r.ToPart], r.GlobalID)
	}
	return nil
}

// ExportsToPart returns the global object ids this rank must send to the
// given target partition after the most recent PartitionGraph call.
func (d *PartitionerDriver) ExportsToPart(part int) []int {
	return d.exportTo[part]
}
