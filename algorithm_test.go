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

type fixedIteratorManager struct {
	perHandle int
	err       error
}

func (f *fixedIteratorManager) GetReadIteratorNum(h *RowsetHandle) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.perHandle, nil
}

func TestChooseCompactionAlgorithm_EmptyPickIsCloudNativeIndex(t *testing.T) {
	cfg := options.DefaultConfig()
	meta := &TabletMetadata{}
	algo, err := ChooseCompactionAlgorithm(nil, meta, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, CloudNativeIndexCompaction, algo)
}

func TestChooseCompactionAlgorithm_NoStorePathsIsHorizontal(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.StorePaths = nil
	meta := &TabletMetadata{Schema: Schema{ColumnCount: 200}}
	handles := []*RowsetHandle{newRowsetHandle(meta, 0, 0)}
	algo, err := ChooseCompactionAlgorithm(&fixedIteratorManager{perHandle: 1000}, meta, cfg, handles)
	require.NoError(t, err)
	require.Equal(t, HorizontalCompaction, algo)
}

func TestChooseCompactionAlgorithm_WideSchemaPicksVertical(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.StorePaths = []string{"/data/0"}
	cfg.VerticalCompactionMaxColumnsPerGroup = 5
	cfg.VerticalCompactionMaxIteratorsThreshold = 4
	meta := &TabletMetadata{Schema: Schema{ColumnCount: 50}}
	handles := []*RowsetHandle{newRowsetHandle(meta, 0, 0), newRowsetHandle(meta, 1, 0)}

	algo, err := ChooseCompactionAlgorithm(&fixedIteratorManager{perHandle: 3}, meta, cfg, handles)
	require.NoError(t, err)
	require.Equal(t, VerticalCompaction, algo)
}

func TestChooseCompactionAlgorithm_NarrowSchemaOrFewIteratorsPicksHorizontal(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.StorePaths = []string{"/data/0"}
	cfg.VerticalCompactionMaxColumnsPerGroup = 5
	cfg.VerticalCompactionMaxIteratorsThreshold = 4
	meta := &TabletMetadata{Schema: Schema{ColumnCount: 2}}
	handles := []*RowsetHandle{newRowsetHandle(meta, 0, 0)}

	algo, err := ChooseCompactionAlgorithm(&fixedIteratorManager{perHandle: 1}, meta, cfg, handles)
	require.NoError(t, err)
	require.Equal(t, HorizontalCompaction, algo)
}

func TestChooseCompactionAlgorithm_PropagatesIteratorError(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.StorePaths = []string{"/data/0"}
	meta := &TabletMetadata{Schema: Schema{ColumnCount: 50}}
	handles := []*RowsetHandle{newRowsetHandle(meta, 0, 0)}

	_, err := ChooseCompactionAlgorithm(&fixedIteratorManager{err: ErrRowsetIntrospectionFailed}, meta, cfg, handles)
	require.Error(t, err)
}
