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

// Package scheduler is the one piece of this module that isn't pure: it
// drives the compaction policy core across a fleet of tablets on a timer,
// the way the source tree's tablet manager and thread pool would in
// production. It never executes a compaction itself — picking rowsets and
// logging the decision is its entire job.
//
// Grounded on the teacher's levelsController.runWorker/startCompact: a
// ticker-driven loop that calls into the scoring/selection logic and
// paces itself with a rate.Limiter so a large tablet fleet can't be
// hammered with compaction attempts faster than the configured cadence.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ngaut/log"
	"golang.org/x/time/rate"

	"github.com/ngaut/lakecompact"
	"github.com/ngaut/lakecompact/options"
	"github.com/ngaut/lakecompact/tabletmgr"
)

// Decision is one scheduling round's verdict for a single tablet.
type Decision struct {
	TabletID  uint64
	Score     float64
	Rowsets   []*lakecompact.RowsetHandle
	Algorithm lakecompact.CompactionAlgorithm
}

// Scheduler periodically scores every tablet in a Registry, and for
// tablets whose score is at or above the score threshold, picks input
// rowsets and an algorithm.
type Scheduler struct {
	registry       *tabletmgr.Registry
	cfg            *options.Config
	interval       time.Duration
	scoreThreshold float64
	workers        int
	limiter        *rate.Limiter

	mu        sync.Mutex
	lastRound []Decision
}

// New builds a Scheduler. workers bounds how many tablets are scored
// concurrently; limiter paces how many compaction decisions are made per
// second across the whole fleet, mirroring the teacher's use of
// golang.org/x/time/rate to throttle compaction workers.
func New(registry *tabletmgr.Registry, cfg *options.Config, interval time.Duration, scoreThreshold float64, workers int, limiter *rate.Limiter) *Scheduler {
	if workers <= 0 {
		workers = 1
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Scheduler{
		registry:       registry,
		cfg:            cfg,
		interval:       interval,
		scoreThreshold: scoreThreshold,
		workers:        workers,
		limiter:        limiter,
	}
}

// RunOnce scores and, where worthwhile, picks rowsets for every known
// tablet, returning decisions sorted by score descending. It is the unit
// Run loops on a timer, and is exported directly so the lakectl CLI and
// tests can drive a single scheduling pass without waiting on a ticker.
func (s *Scheduler) RunOnce(ctx context.Context) ([]Decision, error) {
	ids := s.registry.TabletIDs()
	decisions := make([]Decision, len(ids))

	type job struct {
		idx int
		id  uint64
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				decisions[j.idx] = s.scoreTablet(ctx, j.id)
			}
		}()
	}
	for i, id := range ids {
		jobs <- job{idx: i, id: id}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(decisions, func(i, j int) bool { return decisions[i].Score > decisions[j].Score })

	s.mu.Lock()
	s.lastRound = decisions
	s.mu.Unlock()

	return decisions, nil
}

// scoreTablet computes one tablet's compaction decision. It never returns
// an error: scoring is best-effort per spec, and a failed pick is logged
// and treated as "nothing to do" for that tablet so one bad snapshot can't
// stall the whole round.
func (s *Scheduler) scoreTablet(ctx context.Context, tabletID uint64) Decision {
	meta := s.registry.Get(tabletID)
	if meta == nil {
		return Decision{TabletID: tabletID}
	}

	score := lakecompact.CompactionScore(s.cfg, meta)
	d := Decision{TabletID: tabletID, Score: score}
	if score < s.scoreThreshold {
		return d
	}

	if err := s.limiter.Wait(ctx); err != nil {
		log.Warnf("scheduler: rate limiter wait aborted for tablet %d: %v", tabletID, err)
		return d
	}

	policy, err := lakecompact.CreatePolicy(s.registry, meta, s.cfg, false)
	if err != nil {
		log.Errorf("scheduler: create policy failed for tablet %d: %v", tabletID, err)
		return d
	}
	rowsets, err := policy.PickRowsets()
	if err != nil {
		log.Errorf("scheduler: pick rowsets failed for tablet %d: %v", tabletID, err)
		return d
	}
	d.Rowsets = rowsets

	algo, err := lakecompact.ChooseCompactionAlgorithm(s.registry, meta, s.cfg, rowsets)
	if err != nil {
		log.Errorf("scheduler: choose algorithm failed for tablet %d: %v", tabletID, err)
		return d
	}
	d.Algorithm = algo

	if len(rowsets) > 0 {
		log.Infof("scheduler: tablet %d score=%.2f picked %d rowset(s) algorithm=%s",
			tabletID, score, len(rowsets), algo)
	}
	return d
}

// Run ticks every interval, calling RunOnce, until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				log.Errorf("scheduler: round failed: %v", err)
			}
		}
	}
}

// LastRound returns the decisions computed by the most recently completed
// RunOnce, or nil if none has run yet.
func (s *Scheduler) LastRound() []Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRound
}
