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

package app

import "github.com/ngaut/lakecompact"

// demoTablet builds a small synthetic tablet so inspect/run have something
// to operate on without a real storage engine attached. The shape (a few
// ingested deltas followed by a size gap) is the same shape exercised by
// the package's own size-tiered tests. With the default 128KB minimum
// level size every rowset falls into a single level; the gap only splits
// them into two levels when --size-tiered-min-level-size is below 1000.
func demoTablet(tabletID uint64) *lakecompact.TabletMetadata {
	return &lakecompact.TabletMetadata{
		TabletID:        tabletID,
		Version:         12,
		CumulativePoint: 0,
		Schema: lakecompact.Schema{
			KeysType:    lakecompact.AggKeys,
			ColumnCount: 12,
		},
		Rowsets: []lakecompact.Rowset{
			{ID: 100, IndexInTablet: 0, DataSize: 1000, SegmentsSize: 1},
			{ID: 101, IndexInTablet: 1, DataSize: 900, SegmentsSize: 1},
			{ID: 102, IndexInTablet: 2, DataSize: 800, SegmentsSize: 1},
			{ID: 103, IndexInTablet: 3, DataSize: 50, SegmentsSize: 1},
			{ID: 104, IndexInTablet: 4, DataSize: 40, SegmentsSize: 1},
			{ID: 105, IndexInTablet: 5, DataSize: 30, SegmentsSize: 1},
		},
	}
}

// demoFleet builds n demo tablets with distinct IDs so `run` has a small
// fleet to schedule across.
func demoFleet(n int) []*lakecompact.TabletMetadata {
	fleet := make([]*lakecompact.TabletMetadata, n)
	for i := 0; i < n; i++ {
		fleet[i] = demoTablet(uint64(i + 1))
	}
	return fleet
}
