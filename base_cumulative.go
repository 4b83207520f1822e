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

// BaseAndCumulativePolicy is the simplest of the three selection
// strategies: in one call it produces either a base-region group, scanning
// [0, cumulative_point), or an incremental group, scanning
// [cumulative_point, n).
type BaseAndCumulativePolicy struct {
	tm        TabletManager
	meta      *TabletMetadata
	cfg       *options.Config
	forceBase bool
}

// NewBaseAndCumulativePolicy constructs a Base-and-Cumulative policy for
// one invocation.
func NewBaseAndCumulativePolicy(tm TabletManager, meta *TabletMetadata, cfg *options.Config, forceBase bool) *BaseAndCumulativePolicy {
	return &BaseAndCumulativePolicy{tm: tm, meta: meta, cfg: cfg, forceBase: forceBase}
}

// PickRowsets implements Policy. It picks a base group when the base score
// exceeds the cumulative score or the caller forces a base compaction;
// otherwise it picks a cumulative group.
func (p *BaseAndCumulativePolicy) PickRowsets() ([]*RowsetHandle, error) {
	if p.meta == nil || int(p.meta.CumulativePoint) > len(p.meta.Rowsets) {
		return nil, ErrMetadataUnavailable
	}
	cumScore := CumulativeCompactionScore(p.meta)
	baseScore := BaseCompactionScore(p.meta)
	if baseScore > cumScore || p.forceBase {
		return p.pickBaseRowsets()
	}
	return p.pickCumulativeRowsets()
}

// pickCumulativeRowsets scans forward from the cumulative point, stopping
// at the version-delta cap or at a delete predicate that closes the group.
// A delete predicate encountered before anything has been accumulated is
// skipped rather than included, and scanning continues past it.
func (p *BaseAndCumulativePolicy) pickCumulativeRowsets() ([]*RowsetHandle, error) {
	var result []*RowsetHandle
	var segmentNumScore int64
	for i := int(p.meta.CumulativePoint); i < len(p.meta.Rowsets); i++ {
		r := &p.meta.Rowsets[i]
		if r.HasDeletePredicate {
			if len(result) > 0 {
				break
			}
			continue
		}
		result = append(result, newRowsetHandle(p.meta, uint32(i), 0))
		segmentNumScore += r.EffectiveSegments()
		if uint32(segmentNumScore) >= p.cfg.MaxCumulativeCompactionNumSingletonDeltas {
			break
		}
	}
	debugRowsets(p.cfg, p.meta, CumulativeCompaction, result)
	return result, nil
}

// pickBaseRowsets scans [0, cumulative_point), counting every rowset as 1
// regardless of its overlap/segment shape, up to the base delta cap.
func (p *BaseAndCumulativePolicy) pickBaseRowsets() ([]*RowsetHandle, error) {
	var result []*RowsetHandle
	var count uint32
	for i := uint32(0); i < p.meta.CumulativePoint; i++ {
		result = append(result, newRowsetHandle(p.meta, i, 0))
		count++
		if count >= p.cfg.MaxBaseCompactionNumSingletonDeltas {
			break
		}
	}
	debugRowsets(p.cfg, p.meta, BaseCompaction, result)
	return result, nil
}
