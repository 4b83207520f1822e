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
	"github.com/dustin/go-humanize"
	"github.com/ngaut/log"

	"github.com/ngaut/lakecompact/options"
)

// CompactionType is surfaced to callers for observability: it is never
// used internally to branch policy behavior, only to label a pick in logs
// and metrics.
type CompactionType int

const (
	CumulativeCompaction CompactionType = iota
	BaseCompaction
)

func (t CompactionType) String() string {
	if t == BaseCompaction {
		return "BASE_COMPACTION"
	}
	return "CUMULATIVE_COMPACTION"
}

// debugRowsets logs a pick at verbose level 3, matching the
// {tablet_id, type, version, cumulative_point, input_rowset_ids,
// all_rowset_ids, delete_rowset_ids} contract.
func debugRowsets(cfg *options.Config, meta *TabletMetadata, typ CompactionType, picked []*RowsetHandle) {
	const verboseLevel = 3
	if cfg == nil || cfg.VerboseLevel < verboseLevel {
		return
	}
	var allIDs, deleteIDs []uint32
	for i := range meta.Rowsets {
		allIDs = append(allIDs, meta.Rowsets[i].ID)
		if meta.Rowsets[i].HasDeletePredicate {
			deleteIDs = append(deleteIDs, meta.Rowsets[i].ID)
		}
	}
	log.Infof("pick compaction input rowsets. tablet: %d, type: %s, version: %d, "+
		"cumulative_point: %d, input_rowsets: %v, rowsets: %v, delete_rowsets: %v",
		meta.TabletID, typ, meta.Version, meta.CumulativePoint, handleIDs(picked), allIDs, deleteIDs)
}

// debugLevel logs a Size-Tiered level pick at verbose level 3, matching the
// level_stats field of the observability contract.
func debugLevel(cfg *options.Config, meta *TabletMetadata, typ CompactionType, picked []*RowsetHandle, lvl *sizeTieredLevel) {
	const verboseLevel = 3
	if cfg == nil || cfg.VerboseLevel < verboseLevel || lvl == nil {
		return
	}
	log.Infof("pick compaction input rowsets. tablet: %d, type: %s, input_rowsets: %v, "+
		"level_rowsets: %v, level_segment_num: %d, level_size: %s, level_total_size: %s, level_score: %.3f",
		meta.TabletID, typ, handleIDs(picked), lvl.rowsets, lvl.segmentNum,
		humanize.Bytes(uint64max0(lvl.levelSize)), humanize.Bytes(uint64max0(lvl.totalSize)), lvl.score)
}

func logScoreError(tabletID uint64, strategy string, err error) {
	log.Errorf("compaction score by %s failed, tablet: %d, err: %v", strategy, tabletID, err)
}

func uint64max0(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
