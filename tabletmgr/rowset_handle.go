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

package tabletmgr

import "github.com/ngaut/lakecompact"

// GetReadIteratorNum implements lakecompact.TabletManager. In a real
// deployment this consults the rowset's segment iterator cache; here it is
// a deterministic function of the rowset's own shape so the algorithm
// chooser can be exercised without a real storage engine. A rowset needs
// one read iterator per effective segment, plus one more when a partial
// compaction left a bookmark mid-rowset (the remainder needs its own
// iterator on top of the already-compacted prefix's).
func (r *Registry) GetReadIteratorNum(h *lakecompact.RowsetHandle) (int, error) {
	rs := h.Rowset()
	n := int(rs.EffectiveSegments())
	if rs.NextCompactionOffset > 0 {
		n++
	}
	return n, nil
}
