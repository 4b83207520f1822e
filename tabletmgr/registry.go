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

// Package tabletmgr is a minimal, in-memory stand-in for the real tablet
// manager and cache layer that spec.md treats as an opaque external
// collaborator. It exists so the compaction policy core can be exercised
// end-to-end (by the scheduler, the lakectl CLI, and integration tests)
// without a real storage engine behind it.
//
// Registry's locking discipline is grounded on the teacher's levelHandler:
// a sync.RWMutex guards a map of published, read-only snapshots; readers
// never see a half-updated snapshot, and publishing a snapshot holds the
// map-wide write lock only for a single map assignment.
package tabletmgr

import (
	"sort"
	"sync"

	"github.com/ngaut/lakecompact"
)

// Registry holds the latest metadata snapshot for each tablet it knows
// about. It is safe for concurrent use by many goroutines: the compaction
// policy core may be scoring or selecting rowsets for dozens of tablets at
// once, each holding its own snapshot reference.
type Registry struct {
	mu      sync.RWMutex
	tablets map[uint64]*lakecompact.TabletMetadata
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tablets: make(map[uint64]*lakecompact.TabletMetadata)}
}

// Put publishes a new snapshot for a tablet, replacing whatever snapshot
// was previously registered. The snapshot must not be mutated by the
// caller afterwards — ownership of its read-only contents passes to the
// Registry and to whichever policy invocations are handed a reference to
// it.
func (r *Registry) Put(meta *lakecompact.TabletMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tablets[meta.TabletID] = meta
}

// Get returns the current snapshot for a tablet, or nil if unknown.
func (r *Registry) Get(tabletID uint64) *lakecompact.TabletMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tablets[tabletID]
}

// Delete removes a tablet from the registry (e.g. after it is dropped).
func (r *Registry) Delete(tabletID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tablets, tabletID)
}

// TabletIDs returns every known tablet ID in ascending order, a stable
// iteration order the scheduler relies on for deterministic test output.
func (r *Registry) TabletIDs() []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint64, 0, len(r.tablets))
	for id := range r.tablets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len reports how many tablets are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tablets)
}
