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

// Package options holds the tunables read by the compaction policy core.
// All fields are read-only once a Config reaches a policy: the core never
// mutates configuration.
package options

// Config are the knobs the compaction policy core reads. They correspond
// 1:1 to the `Configuration` keys listed in the core's external interface.
type Config struct {
	// Base-and-Cumulative tunables.
	MaxCumulativeCompactionNumSingletonDeltas uint32
	MaxBaseCompactionNumSingletonDeltas       uint32
	MinCumulativeCompactionNumSingletonDeltas uint32

	// Size-Tiered tunables.
	SizeTieredMinLevelSize    int64
	SizeTieredLevelMultiple   int64
	SizeTieredLevelNum        int64
	TabletMaxVersions         uint64
	EnableSizeTieredStrategy  bool
	EnablePartialSegments     bool

	// Primary-Key tunables.
	UpdateCompactionDelvecFileIOAmpRatio uint32

	// Algorithm chooser tunables.
	VerticalCompactionMaxColumnsPerGroup    uint32
	VerticalCompactionMaxIteratorsThreshold uint32

	// Local storage roots. An empty slice forces horizontal compaction,
	// mirroring ExecEnv.store_paths.
	StorePaths []string

	// VerboseLevel gates the structured debug log lines emitted by the
	// scoring and selection functions. 0 disables them.
	VerboseLevel int
}

// DefaultConfig returns the tunables this module ships with out of the box.
// Every field can be overridden by the lakectl CLI or by callers embedding
// this module directly.
func DefaultConfig() *Config {
	return &Config{
		MaxCumulativeCompactionNumSingletonDeltas: 1000,
		MaxBaseCompactionNumSingletonDeltas:       20,
		MinCumulativeCompactionNumSingletonDeltas: 5,

		SizeTieredMinLevelSize:   131072, // 128KB
		SizeTieredLevelMultiple:  5,
		SizeTieredLevelNum:       7,
		TabletMaxVersions:        1000,
		EnableSizeTieredStrategy: true,
		EnablePartialSegments:    true,

		UpdateCompactionDelvecFileIOAmpRatio: 2,

		VerticalCompactionMaxColumnsPerGroup:    5,
		VerticalCompactionMaxIteratorsThreshold: 64,

		StorePaths: nil,

		VerboseLevel: 0,
	}
}
