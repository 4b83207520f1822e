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
	"github.com/ngaut/log"

	"github.com/ngaut/lakecompact/options"
)

// BaseCompactionScore is the count of base-region rowsets: the more of
// them there are, the more a base compaction is overdue.
func BaseCompactionScore(meta *TabletMetadata) float64 {
	if meta == nil {
		return 0
	}
	return float64(meta.CumulativePoint)
}

// CumulativeCompactionScore sums the read-iterator cost of every rowset
// past the cumulative point.
func CumulativeCompactionScore(meta *TabletMetadata) float64 {
	if meta == nil || len(meta.Rowsets) == 0 {
		return 0
	}
	var score int64
	for i := int(meta.CumulativePoint); i < len(meta.Rowsets); i++ {
		score += meta.Rowsets[i].EffectiveSegments()
	}
	log.Debugf("tablet: %d, cumulative compaction score: %d", meta.TabletID, score)
	return float64(score)
}

// SizeTieredCompactionScore is the segment count of the highest-priority
// level pickMaxLevel finds, or 0 when it forms no level. The segment-count
// floor that SizeTieredPolicy.PickRowsets applies is not applied here.
func SizeTieredCompactionScore(cfg *options.Config, meta *TabletMetadata) float64 {
	lvl := pickMaxLevel(cfg, meta, false)
	if lvl == nil {
		return 0
	}
	return float64(lvl.segmentNum)
}

// PrimaryKeyCompactionScore is the larger of the delvec-amplified segment
// cost of the rowsets a Primary-Key compaction would pick, and the
// tablet's raw SSTable count.
func PrimaryKeyCompactionScore(cfg *options.Config, meta *TabletMetadata) float64 {
	score, err := primaryCompactionScoreByPolicy(cfg, meta)
	if err != nil {
		logScoreError(metaTabletID(meta), "primary_key", err)
		return 0
	}
	return float64(score)
}

// CompactionScore is the scalar the scheduler uses to prioritize tablets:
// Primary-Key tablets use PrimaryKeyCompactionScore; otherwise Size-Tiered
// is used when enabled, else the larger of base and cumulative score.
// It never fails: scoring is best-effort, and any internal failure is
// logged and reported as 0 so a single misbehaving tablet cannot stall a
// scheduler iterating over many tablets.
func CompactionScore(cfg *options.Config, meta *TabletMetadata) float64 {
	if meta == nil {
		return 0
	}
	if meta.IsPrimaryKey() {
		return PrimaryKeyCompactionScore(cfg, meta)
	}
	if cfg != nil && cfg.EnableSizeTieredStrategy {
		return SizeTieredCompactionScore(cfg, meta)
	}
	base := BaseCompactionScore(meta)
	cum := CumulativeCompactionScore(meta)
	if base > cum {
		return base
	}
	return cum
}

func metaTabletID(meta *TabletMetadata) uint64 {
	if meta == nil {
		return 0
	}
	return meta.TabletID
}
