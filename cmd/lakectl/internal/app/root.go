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

// Package app wires the lakectl command tree together.
package app

import (
	"github.com/spf13/cobra"

	"github.com/ngaut/lakecompact/options"
)

var cfg = options.DefaultConfig()

// RootCmd builds the lakectl command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lakectl",
		Short: "Inspect and drive the lakecompact policy core",
	}

	flags := root.PersistentFlags()
	flags.Int64Var(&cfg.SizeTieredMinLevelSize, "size-tiered-min-level-size", cfg.SizeTieredMinLevelSize, "smallest size-tiered bucket, in bytes")
	flags.Int64Var(&cfg.SizeTieredLevelMultiple, "size-tiered-level-multiple", cfg.SizeTieredLevelMultiple, "size ratio between adjacent size-tiered levels")
	flags.BoolVar(&cfg.EnableSizeTieredStrategy, "enable-size-tiered", cfg.EnableSizeTieredStrategy, "use the size-tiered policy instead of base-and-cumulative")
	flags.Uint32Var(&cfg.MaxCumulativeCompactionNumSingletonDeltas, "max-cumulative-deltas", cfg.MaxCumulativeCompactionNumSingletonDeltas, "cumulative compaction version-delta cap")
	flags.IntVar(&cfg.VerboseLevel, "v", cfg.VerboseLevel, "verbose log level")

	root.AddCommand(inspectCmd())
	root.AddCommand(runCmd())
	return root
}
