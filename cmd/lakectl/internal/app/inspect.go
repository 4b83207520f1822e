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

package app

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ngaut/lakecompact"
	"github.com/ngaut/lakecompact/tabletmgr"
)

func inspectCmd() *cobra.Command {
	var tabletID uint64
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Score and pick compaction input for a synthetic demo tablet",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := tabletmgr.NewRegistry()
			meta := demoTablet(tabletID)
			reg.Put(meta)

			score := lakecompact.CompactionScore(cfg, meta)
			policy, err := lakecompact.CreatePolicy(reg, meta, cfg, false)
			if err != nil {
				return err
			}
			rowsets, err := policy.PickRowsets()
			if err != nil {
				return err
			}
			algo, err := lakecompact.ChooseCompactionAlgorithm(reg, meta, cfg, rowsets)
			if err != nil {
				return err
			}

			fmt.Printf("tablet %d: score=%.2f picked=%d algorithm=%s\n", tabletID, score, len(rowsets), algo)
			for _, h := range rowsets {
				r := h.Rowset()
				fmt.Printf("  rowset id=%d size=%s segments=%d limit=%d\n",
					r.ID, humanize.Bytes(uint64(r.DataSize)), r.SegmentsSize, h.CompactionSegmentLimit)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&tabletID, "tablet-id", 1, "synthetic tablet id to inspect")
	return cmd
}
