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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngaut/lakecompact/options"
)

func rowsetIndexes(handles []*RowsetHandle) []uint32 {
	out := make([]uint32, len(handles))
	for i, h := range handles {
		out[i] = h.Index
	}
	return out
}

func TestEmptyTablet(t *testing.T) {
	cfg := options.DefaultConfig()
	meta := &TabletMetadata{TabletID: 1}

	policy, err := CreatePolicy(nil, meta, cfg, false)
	require.NoError(t, err)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	require.Empty(t, rowsets)

	require.Equal(t, float64(0), CompactionScore(cfg, meta))

	algo, err := ChooseCompactionAlgorithm(nil, meta, cfg, rowsets)
	require.NoError(t, err)
	require.Equal(t, CloudNativeIndexCompaction, algo)
}

func TestBaseAndCumulative_PureCumulative(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	cfg.MaxCumulativeCompactionNumSingletonDeltas = 5

	meta := &TabletMetadata{
		TabletID:        1,
		CumulativePoint: 0,
		Rowsets: []Rowset{
			{ID: 0, Overlapped: true, SegmentsSize: 3},
			{ID: 1, Overlapped: false, SegmentsSize: 1},
			{ID: 2, Overlapped: true, SegmentsSize: 2},
		},
	}

	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, false)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2}, rowsetIndexes(rowsets))
}

func TestBaseAndCumulative_DeleteInMiddle(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	cfg.MaxCumulativeCompactionNumSingletonDeltas = 1000

	meta := &TabletMetadata{
		TabletID:        1,
		CumulativePoint: 0,
		Rowsets: []Rowset{
			{ID: 0, Overlapped: false, SegmentsSize: 1},
			{ID: 1, HasDeletePredicate: true},
			{ID: 2, Overlapped: false, SegmentsSize: 1},
			{ID: 3, Overlapped: false, SegmentsSize: 1},
		},
	}

	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, false)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	require.Equal(t, []uint32{0}, rowsetIndexes(rowsets))
}

func TestBaseAndCumulative_LeadingDeleteSkipped(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	cfg.MaxCumulativeCompactionNumSingletonDeltas = 10

	meta := &TabletMetadata{
		TabletID:        1,
		CumulativePoint: 0,
		Rowsets: []Rowset{
			{ID: 0, HasDeletePredicate: true},
			{ID: 1, Overlapped: false, SegmentsSize: 1},
			{ID: 2, Overlapped: false, SegmentsSize: 1},
		},
	}

	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, false)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2}, rowsetIndexes(rowsets))
}

func TestBaseAndCumulative_ForceBaseMonotonicity(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	cfg.MaxBaseCompactionNumSingletonDeltas = 20

	meta := &TabletMetadata{
		TabletID:        1,
		CumulativePoint: 3,
		Rowsets: []Rowset{
			{ID: 0, Overlapped: false, SegmentsSize: 1},
			{ID: 1, Overlapped: false, SegmentsSize: 1},
			{ID: 2, Overlapped: false, SegmentsSize: 1},
			{ID: 3, Overlapped: true, SegmentsSize: 1},
		},
	}

	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, true)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	require.NotEmpty(t, rowsets)
	require.Equal(t, uint32(0), rowsets[0].Index)
}

func TestBaseAndCumulative_ForceBaseEmptyWhenNoBaseRegion(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false

	meta := &TabletMetadata{
		TabletID:        1,
		CumulativePoint: 0,
		Rowsets: []Rowset{
			{ID: 0, Overlapped: false, SegmentsSize: 1},
		},
	}

	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, true)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	require.Empty(t, rowsets)
}

func TestPickRowsetsIsDeterministic(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	meta := &TabletMetadata{
		TabletID:        1,
		CumulativePoint: 0,
		Rowsets: []Rowset{
			{ID: 0, Overlapped: true, SegmentsSize: 3},
			{ID: 1, Overlapped: false, SegmentsSize: 1},
		},
	}

	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, false)
	first, err := policy.PickRowsets()
	require.NoError(t, err)
	second, err := policy.PickRowsets()
	require.NoError(t, err)
	require.Equal(t, rowsetIndexes(first), rowsetIndexes(second))
}

func TestPickRowsetsIndicesStrictlyIncreasing(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	cfg.MaxCumulativeCompactionNumSingletonDeltas = 100
	meta := &TabletMetadata{
		CumulativePoint: 0,
		Rowsets: []Rowset{
			{ID: 0, Overlapped: false, SegmentsSize: 1},
			{ID: 1, HasDeletePredicate: true},
			{ID: 2, Overlapped: false, SegmentsSize: 1},
			{ID: 3, Overlapped: false, SegmentsSize: 1},
		},
	}
	policy := NewBaseAndCumulativePolicy(nil, meta, cfg, false)
	rowsets, err := policy.PickRowsets()
	require.NoError(t, err)
	for i := 1; i < len(rowsets); i++ {
		require.Greater(t, rowsets[i].Index, rowsets[i-1].Index)
	}
}
