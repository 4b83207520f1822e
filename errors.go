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

import "github.com/pkg/errors"

// Sentinel error kinds. An empty rowset selection is never one of these:
// "nothing worthwhile to compact" is conveyed by a nil/empty slice, not an
// error.
var (
	// ErrMetadataUnavailable means the snapshot handed to a policy was
	// missing or internally inconsistent (e.g. a nil metadata pointer, or
	// a cumulative point past the end of the rowset list).
	ErrMetadataUnavailable = errors.New("lakecompact: metadata unavailable or inconsistent")

	// ErrRowsetIntrospectionFailed means a rowset handle could not report
	// its read-iterator count. The algorithm chooser surfaces this; score
	// computation swallows it and reports a score of 0 instead.
	ErrRowsetIntrospectionFailed = errors.New("lakecompact: rowset introspection failed")
)
