/*
 * Copyright 2026 Netswap Labs.
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

// Package scheduler runs collection jobs on fixed intervals. Each job
// gets its own ticker goroutine; a tick that arrives while the
// previous run is still active is dropped, so a job never overlaps
// itself and missed ticks collapse into the next one.
package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
)

// IndicatorRunner runs one indicator cycle. Satisfied by the API and
// SNMP collection services.
type IndicatorRunner interface {
	Collect(ctx context.Context, apiName, maintenanceID string) (*models.CollectionResult, error)
}

// ClientRunner runs the client join cycle.
type ClientRunner interface {
	Collect(ctx context.Context, maintenanceID string) (*models.CollectionResult, error)
}

var (
	ErrAlreadyStarted  = errors.New("scheduler already started")
	ErrInvalidInterval = errors.New("job interval must be positive")
)

// JobStatus is a point-in-time view of one scheduled job.
type JobStatus struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
	NextRun  time.Time     `json:"next_run"`
}

type job struct {
	id            string
	name          string
	maintenanceID string
	interval      time.Duration

	running atomic.Bool
	nextRun time.Time
	quit    chan struct{}
}

// Scheduler owns the job map and the runner goroutines. Job names are
// api_names, except models.JobClientCollection which routes to the
// client service.
type Scheduler struct {
	clock      Clock
	logger     logger.Logger
	indicators IndicatorRunner
	client     ClientRunner

	mu      sync.Mutex
	jobs    map[string]*job
	started bool
	ctx     context.Context
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

// Option tunes a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source, for tests.
func WithClock(clock Clock) Option {
	return func(s *Scheduler) { s.clock = clock }
}

// New builds an empty scheduler. The client runner may be nil when no
// client-collection job will be registered.
func New(indicators IndicatorRunner, client ClientRunner, log logger.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:      realClock{},
		logger:     log.WithComponent("scheduler"),
		indicators: indicators,
		client:     client,
		jobs:       make(map[string]*job),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddCollectionJob registers a job under its name, replacing any
// existing job with the same name. When the scheduler is already
// running, the new job starts ticking immediately.
func (s *Scheduler) AddCollectionJob(name string, interval time.Duration, maintenanceID string) (string, error) {
	if interval <= 0 {
		return "", ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.jobs[name]; ok {
		close(old.quit)

		s.logger.Info().
			Str("job", name).
			Str("replaced_id", old.id).
			Msg("replacing scheduled job")
	}

	j := &job{
		id:            uuid.New().String(),
		name:          name,
		maintenanceID: maintenanceID,
		interval:      interval,
		quit:          make(chan struct{}),
	}

	s.jobs[name] = j

	if s.started {
		s.launch(j)
	}

	return j.id, nil
}

// RemoveJob stops and drops the named job. Unknown names are a no-op.
func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[name]; ok {
		close(j.quit)
		delete(s.jobs, name)
	}
}

// Start launches a runner per registered job.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	for _, j := range s.jobs {
		s.launch(j)
	}

	s.logger.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")

	return nil
}

// Stop cancels every runner and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()

	if !s.started {
		s.mu.Unlock()
		return
	}

	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info().Msg("scheduler stopped")
}

// Jobs returns a snapshot of the registered jobs, sorted by name.
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.jobs))

	for _, j := range s.jobs {
		statuses = append(statuses, JobStatus{
			ID:       j.id,
			Name:     j.name,
			Interval: j.interval,
			NextRun:  j.nextRun,
		})
	}

	sort.Slice(statuses, func(i, k int) bool { return statuses[i].Name < statuses[k].Name })

	return statuses
}

// launch starts a job's ticker loop. Caller holds s.mu. The ticker is
// created here, not in the goroutine, so a tick scheduled right after
// launch returns cannot be lost.
func (s *Scheduler) launch(j *job) {
	j.nextRun = s.clock.Now().Add(j.interval)

	ticker := s.clock.Ticker(j.interval)

	s.wg.Add(1)

	go s.runJob(j, ticker)
}

func (s *Scheduler) runJob(j *job, ticker Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-j.quit:
			return
		case <-ticker.Chan():
			if !j.running.CompareAndSwap(false, true) {
				s.logger.Debug().
					Str("job", j.name).
					Msg("previous run still active, dropping tick")

				continue
			}

			s.setNextRun(j)

			s.wg.Add(1)

			go func() {
				defer s.wg.Done()
				defer j.running.Store(false)

				s.execute(j)
			}()
		}
	}
}

func (s *Scheduler) setNextRun(j *job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j.nextRun = s.clock.Now().Add(j.interval)
}

func (s *Scheduler) execute(j *job) {
	var (
		result *models.CollectionResult
		err    error
	)

	started := s.clock.Now()

	if j.name == models.JobClientCollection {
		result, err = s.client.Collect(s.ctx, j.maintenanceID)
	} else {
		result, err = s.indicators.Collect(s.ctx, j.name, j.maintenanceID)
	}

	if err != nil {
		s.logger.Error().
			Err(err).
			Str("job", j.name).
			Str("maintenance_id", j.maintenanceID).
			Msg("job run failed")

		return
	}

	s.logger.Info().
		Str("job", j.name).
		Str("maintenance_id", j.maintenanceID).
		Int("total", result.Total).
		Int("success", result.Success).
		Int("failed", result.Failed).
		Dur("elapsed", s.clock.Now().Sub(started)).
		Msg("job run finished")
}
