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

import "github.com/ngaut/lakecompact/options"

// PrimaryKeyPolicy selects rowsets for a Primary-Key tablet, treating
// delete-vector files as read-cost amplifiers rather than ordering
// boundaries the way Base-and-Cumulative treats delete predicates.
type PrimaryKeyPolicy struct {
	tm        TabletManager
	meta      *TabletMetadata
	cfg       *options.Config
	forceBase bool
}

// NewPrimaryKeyPolicy constructs a Primary-Key policy for one invocation.
func NewPrimaryKeyPolicy(tm TabletManager, meta *TabletMetadata, cfg *options.Config, forceBase bool) *PrimaryKeyPolicy {
	return &PrimaryKeyPolicy{tm: tm, meta: meta, cfg: cfg, forceBase: forceBase}
}

// delvecRatio returns the configured delvec amplification ratio, forced to
// 1 for tablets running the real-time compaction strategy.
func delvecRatio(cfg *options.Config, meta *TabletMetadata) uint32 {
	if meta.IsRealTimeStrategy() {
		return 1
	}
	return cfg.UpdateCompactionDelvecFileIOAmpRatio
}

// PickRowsetIndexes scans forward from the tablet's first rowset,
// accumulating delvec-amplified segment cost until the cumulative delta
// cap is reached, and returns the contiguous index range plus a parallel
// has-delvec flag per index. Primary-Key tablets have no base/cumulative
// split, so the whole rowset list is one candidate region.
func (p *PrimaryKeyPolicy) PickRowsetIndexes() ([]uint32, []bool, error) {
	if p.meta == nil {
		return nil, nil, ErrMetadataUnavailable
	}
	ratio := delvecRatio(p.cfg, p.meta)
	var indexes []uint32
	var hasDelvec []bool
	var score int64
	for i := 0; i < len(p.meta.Rowsets); i++ {
		r := &p.meta.Rowsets[i]
		cur := r.EffectiveSegments()
		if r.HasDelvec {
			cur *= int64(ratio)
		}
		indexes = append(indexes, uint32(i))
		hasDelvec = append(hasDelvec, r.HasDelvec)
		score += cur
		if uint32(score) >= p.cfg.MaxCumulativeCompactionNumSingletonDeltas {
			break
		}
	}
	return indexes, hasDelvec, nil
}

// PickRowsets implements Policy.
func (p *PrimaryKeyPolicy) PickRowsets() ([]*RowsetHandle, error) {
	indexes, _, err := p.PickRowsetIndexes()
	if err != nil {
		return nil, err
	}
	var result []*RowsetHandle
	for _, idx := range indexes {
		result = append(result, newRowsetHandle(p.meta, idx, 0))
	}
	typ := CumulativeCompaction
	if len(indexes) > 0 && indexes[0] == 0 {
		typ = BaseCompaction
	}
	debugRowsets(p.cfg, p.meta, typ, result)
	return result, nil
}

// primaryCompactionScoreByPolicy mirrors the original source's
// primary_compaction_score_by_policy: it picks the same rowsets
// PickRowsets would, amplifies each by the delvec ratio, and returns the
// larger of that segment-cost sum and the tablet's raw SSTable count.
func primaryCompactionScoreByPolicy(cfg *options.Config, meta *TabletMetadata) (uint32, error) {
	p := NewPrimaryKeyPolicy(nil, meta, cfg, false)
	indexes, hasDelvec, err := p.PickRowsetIndexes()
	if err != nil {
		return 0, err
	}
	ratio := delvecRatio(cfg, meta)
	var segmentNumScore uint32
	for i, idx := range indexes {
		r := &meta.Rowsets[idx]
		cur := uint32(r.EffectiveSegments())
		if hasDelvec[i] {
			cur *= ratio
		}
		segmentNumScore += cur
	}
	sstNumScore := meta.SSTableMeta.SSTableCount
	if segmentNumScore > sstNumScore {
		return segmentNumScore, nil
	}
	return sstNumScore, nil
}
