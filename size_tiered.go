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
	"math"

	"github.com/google/btree"

	"github.com/ngaut/lakecompact/options"
)

// sizeTieredLevel is a contiguous run of rowsets bucketed into the same
// size tier by pickMaxLevel. It only exists for the duration of one
// Size-Tiered policy invocation.
type sizeTieredLevel struct {
	rowsets    []uint32
	segmentNum int64
	levelSize  int64
	totalSize  int64
	score      float64
}

// levelItem adapts *sizeTieredLevel to btree.Item, ordering by (score
// desc, first_rowset desc) so the highest-priority level sorts first —
// the Go analogue of the C++ original's
// std::set<SizeTieredLevel*, LevelReverseOrderComparator>.
type levelItem struct {
	lvl *sizeTieredLevel
}

func (a levelItem) Less(than btree.Item) bool {
	b := than.(levelItem)
	if a.lvl.score != b.lvl.score {
		return a.lvl.score > b.lvl.score
	}
	return a.lvl.rowsets[0] > b.lvl.rowsets[0]
}

// SizeTieredPolicy buckets adjacent rowsets into levels by size, scores
// each level, and selects the highest-scoring one as its compaction input.
type SizeTieredPolicy struct {
	tm        TabletManager
	meta      *TabletMetadata
	cfg       *options.Config
	forceBase bool
}

// NewSizeTieredPolicy constructs a Size-Tiered policy for one invocation.
func NewSizeTieredPolicy(tm TabletManager, meta *TabletMetadata, cfg *options.Config, forceBase bool) *SizeTieredPolicy {
	return &SizeTieredPolicy{tm: tm, meta: meta, cfg: cfg, forceBase: forceBase}
}

// PickRowsets implements Policy.
func (p *SizeTieredPolicy) PickRowsets() ([]*RowsetHandle, error) {
	if p.meta == nil {
		return nil, ErrMetadataUnavailable
	}
	lvl := pickMaxLevel(p.cfg, p.meta, p.forceBase)
	if lvl == nil {
		return nil, nil
	}

	levelMultiple := p.cfg.SizeTieredLevelMultiple
	minCompactionSegmentNum := minCompactionSegmentNum(p.cfg, levelMultiple)
	if p.forceBase {
		// A forced base compaction only needs the level to hold two
		// segments, the smallest input a merge can have, so the
		// segment-count floor is relaxed to that minimum.
		minCompactionSegmentNum = 2
	}

	var result []*RowsetHandle
	if lvl.segmentNum >= minCompactionSegmentNum {
		var segmentNumScore int64
		partial := p.cfg.EnablePartialSegments
		maxSegments := int64(p.cfg.MaxCumulativeCompactionNumSingletonDeltas)
		for _, idx := range lvl.rowsets {
			r := &p.meta.Rowsets[idx]
			curSegmentScore := r.EffectiveSegments()
			uncompacted := curSegmentScore - int64(r.NextCompactionOffset)
			if partial && uncompacted > maxSegments {
				// This optimization only applies to a single rowset: it
				// replaces whatever was accumulated so far and stops.
				result = []*RowsetHandle{newRowsetHandle(p.meta, idx, uint32(maxSegments))}
				break
			}
			segmentNumScore += curSegmentScore
			result = append(result, newRowsetHandle(p.meta, idx, 0))
			if segmentNumScore >= maxSegments {
				break
			}
		}
	}

	typ := CumulativeCompaction
	if len(lvl.rowsets) > 0 && lvl.rowsets[0] == 0 {
		typ = BaseCompaction
	}
	debugLevel(p.cfg, p.meta, typ, result, lvl)
	return result, nil
}

func minCompactionSegmentNum(cfg *options.Config, levelMultiple int64) int64 {
	v := int64(cfg.MinCumulativeCompactionNumSingletonDeltas)
	if levelMultiple < v {
		v = levelMultiple
	}
	if v < 2 {
		return 2
	}
	return v
}

// pickMaxLevel runs the single forward pass over a tablet's rowsets,
// bucketing them into size-tiered levels and returning the
// highest-scoring one. It returns nil when no level is formed (no rowsets,
// or a single non-overlapped rowset); the returned level is not checked
// against the segment-count floor, which PickRowsets applies.
//
// This is a direct, deliberately unsimplified port of the original
// source's merge-then-continue interaction between a delete predicate and
// the levels accumulated so far: see DESIGN.md for why the control flow
// is kept literal rather than restructured.
func pickMaxLevel(cfg *options.Config, meta *TabletMetadata, forceBaseCompaction bool) *sizeTieredLevel {
	if cfg == nil || meta == nil {
		return nil
	}
	maxLevelSize := int64(float64(cfg.SizeTieredMinLevelSize) * math.Pow(float64(cfg.SizeTieredLevelMultiple), float64(cfg.SizeTieredLevelNum)))
	rowsets := meta.Rowsets

	if len(rowsets) == 0 || (len(rowsets) == 1 && !rowsets[0].Overlapped) {
		return nil
	}

	forceBase := forceBaseCompaction || uint64(meta.NumDeleteRowsets()) >= cfg.TabletMaxVersions/10
	reachedMaxVersion := uint64(len(rowsets)) > cfg.TabletMaxVersions/10*9

	var orderLevels []*sizeTieredLevel
	priority := btree.New(32)

	var transientRowsets []uint32
	var segmentNum int64
	var totalSize int64
	levelSize := int64(-1)

	levelMultiple := cfg.SizeTieredLevelMultiple
	keysType := meta.Schema.KeysType
	minSegNum := minCompactionSegmentNum(cfg, levelMultiple)

	emitLevel := func() *sizeTieredLevel {
		lvl := &sizeTieredLevel{
			rowsets:    append([]uint32(nil), transientRowsets...),
			segmentNum: segmentNum,
			levelSize:  levelSize,
			totalSize:  totalSize,
		}
		lvl.score = calCompactionScore(segmentNum, levelSize, totalSize, maxLevelSize, levelMultiple, keysType, reachedMaxVersion)
		priority.ReplaceOrInsert(levelItem{lvl})
		orderLevels = append(orderLevels, lvl)
		return lvl
	}

	for i := 0; i < len(rowsets); i++ {
		r := &rowsets[i]
		rowsetSize := r.SizeOrOne()
		if levelSize == -1 {
			levelSize = rowsetSize
			if levelSize > maxLevelSize {
				levelSize = maxLevelSize
			}
			totalSize = 0
		}

		if r.HasDeletePredicate {
			// Base compaction can absorb a delete predicate when it is
			// either the very first rowset, or it lands inside a
			// transient level that already starts at rowset 0.
			if (len(transientRowsets) > 0 && transientRowsets[0] == 0) || i == 0 {
				// Fall through: accumulate the delete with the base.
			} else {
				upper := len(orderLevels) - 1
				for upper >= 0 {
					ol := orderLevels[upper]
					adjacent := len(transientRowsets) > 0 && transientRowsets[0] == ol.rowsets[len(ol.rowsets)-1]+1
					if (ol.segmentNum < minSegNum || ol.rowsets[0] == 0) && adjacent {
						merged := make([]uint32, 0, len(ol.rowsets)+len(transientRowsets))
						merged = append(merged, ol.rowsets...)
						merged = append(merged, transientRowsets...)
						transientRowsets = merged
						if ol.levelSize > levelSize {
							levelSize = ol.levelSize
						}
						segmentNum += ol.segmentNum
						totalSize += ol.totalSize
						priority.Delete(levelItem{ol})
						upper--
					} else {
						break
					}
				}
				orderLevels = orderLevels[:upper+1]

				if len(transientRowsets) > 0 && transientRowsets[0] != 0 {
					emitLevel()
				}

				if len(transientRowsets) == 0 || transientRowsets[0] != 0 {
					segmentNum = 0
					totalSize = 0
					transientRowsets = nil
					levelSize = -1
					continue
				}
			}
		} else if (!forceBase || (len(transientRowsets) > 0 && transientRowsets[0] != 0)) &&
			levelSize > cfg.SizeTieredMinLevelSize && rowsetSize < levelSize &&
			levelSize/rowsetSize > levelMultiple-1 {
			if len(transientRowsets) > 0 {
				emitLevel()
			}
			segmentNum = 0
			totalSize = 0
			transientRowsets = nil
			levelSize = rowsetSize
			if levelSize > maxLevelSize {
				levelSize = maxLevelSize
			}
		}

		segmentNum += r.EffectiveSegments()
		totalSize += rowsetSize
		transientRowsets = append(transientRowsets, uint32(i))
	}

	if len(transientRowsets) > 0 {
		emitLevel()
	}

	if priority.Len() == 0 {
		return nil
	}
	top := priority.Min().(levelItem).lvl
	return top
}

// calCompactionScore scores one level. DUP_KEYS tablets only pay write
// amplification, so they favor a more aggressive size-tiered bonus; other
// key types also pay read amplification and weight segment count higher.
func calCompactionScore(segmentNum, levelSize, totalSize, maxLevelSize, levelMultiple int64, keysType KeysType, reachedMaxVersion bool) float64 {
	score := float64(segmentNum)

	var dataBonus float64
	if keysType == DupKeys {
		dataBonus = (float64(totalSize-levelSize) / float64(levelSize)) * 2
	} else {
		dataBonus = float64(segmentNum-1)*2 + float64(totalSize-levelSize)/float64(levelSize)
	}
	dataBonusCap := float64(levelMultiple) * 3
	if dataBonus > dataBonusCap {
		dataBonus = dataBonusCap
	}
	score += dataBonus

	var levelBonus int64
	for v := levelSize; v < maxLevelSize && levelBonus <= 7; v *= levelMultiple {
		levelBonus++
	}
	score += float64(levelBonus)

	if reachedMaxVersion {
		score *= 2
	}
	return score
}
