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

func TestCreatePolicy_NilMetadataIsError(t *testing.T) {
	_, err := CreatePolicy(nil, nil, options.DefaultConfig(), false)
	require.Error(t, err)
}

func TestCreatePolicy_PrimaryKeyTakesPrecedenceOverSizeTiered(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = true
	meta := &TabletMetadata{Schema: Schema{KeysType: PrimaryKeys}}
	policy, err := CreatePolicy(nil, meta, cfg, false)
	require.NoError(t, err)
	_, ok := policy.(*PrimaryKeyPolicy)
	require.True(t, ok)
}

func TestCreatePolicy_SizeTieredWhenEnabled(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = true
	meta := &TabletMetadata{Schema: Schema{KeysType: DupKeys}}
	policy, err := CreatePolicy(nil, meta, cfg, false)
	require.NoError(t, err)
	_, ok := policy.(*SizeTieredPolicy)
	require.True(t, ok)
}

func TestCreatePolicy_BaseAndCumulativeWhenSizeTieredDisabled(t *testing.T) {
	cfg := options.DefaultConfig()
	cfg.EnableSizeTieredStrategy = false
	meta := &TabletMetadata{Schema: Schema{KeysType: AggKeys}}
	policy, err := CreatePolicy(nil, meta, cfg, false)
	require.NoError(t, err)
	_, ok := policy.(*BaseAndCumulativePolicy)
	require.True(t, ok)
}
