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

// Policy is the single operation every selection strategy implements: pick
// the next contiguous set of rowsets worth compacting, or an empty slice
// if nothing is.
type Policy interface {
	// PickRowsets returns an ordered, strictly-increasing-index subset of
	// the tablet's rowsets to merge next. An empty, nil-error result
	// means "nothing worthwhile exists" — it is not a failure.
	PickRowsets() ([]*RowsetHandle, error)
}

// CreatePolicy dispatches on the tablet's schema key-type and the
// size-tiered feature flag to build the correct selection policy, mirroring
// the source's CompactionPolicy::create.
func CreatePolicy(tm TabletManager, meta *TabletMetadata, cfg *options.Config, forceBase bool) (Policy, error) {
	if meta == nil {
		return nil, ErrMetadataUnavailable
	}
	switch {
	case meta.IsPrimaryKey():
		return NewPrimaryKeyPolicy(tm, meta, cfg, forceBase), nil
	case cfg != nil && cfg.EnableSizeTieredStrategy:
		return NewSizeTieredPolicy(tm, meta, cfg, forceBase), nil
	default:
		return NewBaseAndCumulativePolicy(tm, meta, cfg, forceBase), nil
	}
}
