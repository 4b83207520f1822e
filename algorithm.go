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
	"github.com/pkg/errors"

	"github.com/ngaut/lakecompact/options"
)

// CompactionAlgorithm is the merge strategy chosen for a set of input
// rowsets.
type CompactionAlgorithm int

const (
	HorizontalCompaction CompactionAlgorithm = iota
	VerticalCompaction
	CloudNativeIndexCompaction
)

func (a CompactionAlgorithm) String() string {
	switch a {
	case VerticalCompaction:
		return "VERTICAL_COMPACTION"
	case CloudNativeIndexCompaction:
		return "CLOUD_NATIVE_INDEX_COMPACTION"
	default:
		return "HORIZONTAL_COMPACTION"
	}
}

// ChooseCompactionAlgorithm picks a merge algorithm for the given input
// rowsets. An empty selection means cloud-native index compaction (there
// is nothing to horizontally or vertically merge); a deployment with no
// local storage roots configured always merges horizontally, since
// vertical compaction's row-source mask buffer needs local scratch space.
func ChooseCompactionAlgorithm(tm TabletManager, meta *TabletMetadata, cfg *options.Config, rowsets []*RowsetHandle) (CompactionAlgorithm, error) {
	if len(rowsets) == 0 {
		return CloudNativeIndexCompaction, nil
	}
	if cfg == nil || len(cfg.StorePaths) == 0 {
		return HorizontalCompaction, nil
	}

	var totalIterators uint32
	for _, h := range rowsets {
		n, err := tm.GetReadIteratorNum(h)
		if err != nil {
			return HorizontalCompaction, errors.Wrap(ErrRowsetIntrospectionFailed, err.Error())
		}
		totalIterators += uint32(n)
	}

	return chooseCompactionAlgorithmForShape(meta.Schema.ColumnCount, cfg.VerticalCompactionMaxColumnsPerGroup, totalIterators, cfg.VerticalCompactionMaxIteratorsThreshold), nil
}

// chooseCompactionAlgorithmForShape is the utility the chooser delegates
// to once it knows the schema width and total read-iterator count: wide
// schemas with enough concurrent iterators benefit from splitting the
// merge by column group.
func chooseCompactionAlgorithmForShape(columnCount, maxColumnsPerGroup, totalIterators, iteratorThreshold uint32) CompactionAlgorithm {
	if columnCount > maxColumnsPerGroup && totalIterators > iteratorThreshold {
		return VerticalCompaction
	}
	return HorizontalCompaction
}
