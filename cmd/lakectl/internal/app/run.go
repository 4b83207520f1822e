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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ngaut/lakecompact/scheduler"
	"github.com/ngaut/lakecompact/tabletmgr"
)

func runCmd() *cobra.Command {
	var fleetSize int
	var scoreThreshold float64
	var workers int
	var ratePerSecond float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one scheduling round over a synthetic tablet fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := tabletmgr.NewRegistry()
			for _, meta := range demoFleet(fleetSize) {
				reg.Put(meta)
			}

			limiter := rate.NewLimiter(rate.Limit(ratePerSecond), 1)
			sched := scheduler.New(reg, cfg, time.Minute, scoreThreshold, workers, limiter)

			decisions, err := sched.RunOnce(context.Background())
			if err != nil {
				return err
			}
			for _, d := range decisions {
				fmt.Printf("tablet %d: score=%.2f picked=%d algorithm=%s\n",
					d.TabletID, d.Score, len(d.Rowsets), d.Algorithm)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fleetSize, "fleet-size", 8, "number of synthetic tablets to schedule across")
	cmd.Flags().Float64Var(&scoreThreshold, "score-threshold", 0, "minimum score before a tablet's rowsets are picked")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of tablets scored concurrently")
	cmd.Flags().Float64Var(&ratePerSecond, "rate", 10, "max compaction decisions per second across the fleet")
	return cmd
}
