/*
 * Copyright 2017 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lakecompact

// TabletManager is the opaque collaborator that materializes rowset
// handles and answers introspection questions the policy core cannot
// answer from metadata alone. Implementations must be safe for concurrent
// use by many goroutines scoring distinct tablets at once; the policy core
// never synchronizes around it.
//
// The in-memory tabletmgr package ships a reference implementation for
// tests and the lakectl CLI; a real deployment backs this with the actual
// tablet manager and its rowset caches.
type TabletManager interface {
	// GetReadIteratorNum returns how many read iterators materializing h
	// would require. It may consult a cache and must be safe to call
	// concurrently for distinct handles.
	GetReadIteratorNum(h *RowsetHandle) (int, error)
}

// RowsetHandle is a materialized reference to one rowset inside a
// TabletMetadata snapshot, ready to be handed to the (out-of-scope)
// execution layer. It carries a reference to the snapshot it was built
// from and must not outlive it.
type RowsetHandle struct {
	// Meta is the snapshot this handle was materialized from.
	Meta *TabletMetadata
	// Index is this rowset's position in Meta.Rowsets.
	Index uint32
	// CompactionSegmentLimit is 0 for a full-rowset compaction, or a
	// positive bound when only a prefix of this rowset's uncompacted
	// segments should be merged this round. At most one handle in any
	// result returned by a policy may carry a non-zero limit, and when it
	// does, it must be the only handle in that result.
	CompactionSegmentLimit uint32
}

// newRowsetHandle builds a handle for rowsets[index] inside meta.
func newRowsetHandle(meta *TabletMetadata, index uint32, compactionSegmentLimit uint32) *RowsetHandle {
	return &RowsetHandle{Meta: meta, Index: index, CompactionSegmentLimit: compactionSegmentLimit}
}

// Rowset returns the descriptor this handle points at.
func (h *RowsetHandle) Rowset() *Rowset {
	return &h.Meta.Rowsets[h.Index]
}

// ID returns the underlying rowset's position-stable identifier.
func (h *RowsetHandle) ID() uint32 {
	return h.Rowset().ID
}

// handleIDs is a small observability helper: it collects the IDs of a
// slice of handles for a log line, never for control flow.
func handleIDs(handles []*RowsetHandle) []uint32 {
	ids := make([]uint32, 0, len(handles))
	for _, h := range handles {
		ids = append(ids, h.ID())
	}
	return ids
}
