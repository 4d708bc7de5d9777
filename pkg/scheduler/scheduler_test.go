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

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
)

// fakeClock hands out manually driven tickers.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[string]*fakeTicker
	nextKey func() string
}

func newFakeClock() *fakeClock {
	n := 0

	return &fakeClock{
		now:     time.Date(2026, 3, 14, 2, 0, 0, 0, time.UTC),
		tickers: make(map[string]*fakeTicker),
		nextKey: func() string {
			n++
			return string(rune('a' + n - 1))
		},
	}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Ticker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTicker{ch: make(chan time.Time)}
	c.tickers[c.nextKey()] = t

	return t
}

// tick fires every live ticker once and waits for delivery.
func (c *fakeClock) tick() {
	c.mu.Lock()
	tickers := make([]*fakeTicker, 0, len(c.tickers))

	for _, t := range c.tickers {
		if !t.isStopped() {
			tickers = append(tickers, t)
		}
	}

	now := c.now
	c.mu.Unlock()

	for _, t := range tickers {
		t.ch <- now
	}
}

type fakeTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stopped
}

// blockingRunner counts run starts and holds each run until released.
type blockingRunner struct {
	mu      sync.Mutex
	starts  int
	release chan struct{}
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{release: make(chan struct{})}
}

func (r *blockingRunner) Collect(ctx context.Context, apiName, _ string) (*models.CollectionResult, error) {
	r.mu.Lock()
	r.starts++
	r.mu.Unlock()

	select {
	case <-r.release:
	case <-ctx.Done():
	}

	return &models.CollectionResult{APIName: apiName, Total: 0}, nil
}

func (r *blockingRunner) startCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.starts
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		if cond() {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not met in time")
}

func TestAddCollectionJobReplacesSameName(t *testing.T) {
	s := New(newBlockingRunner(), nil, logger.NewTestLogger())

	firstID, err := s.AddCollectionJob("get_fan_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)

	secondID, err := s.AddCollectionJob("get_fan_hpe_dna", 5*time.Minute, "mw-1")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, secondID, jobs[0].ID)
	assert.Equal(t, 5*time.Minute, jobs[0].Interval)
}

func TestAddCollectionJobRejectsZeroInterval(t *testing.T) {
	s := New(newBlockingRunner(), nil, logger.NewTestLogger())

	_, err := s.AddCollectionJob("get_fan_hpe_dna", 0, "mw-1")
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTickWhileRunningIsDropped(t *testing.T) {
	clock := newFakeClock()
	runner := newBlockingRunner()
	s := New(runner, nil, logger.NewTestLogger(), WithClock(clock))

	_, err := s.AddCollectionJob("get_fan_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))

	clock.tick()
	waitFor(t, func() bool { return runner.startCount() == 1 })

	// The first run is still blocked: these ticks must be dropped.
	clock.tick()
	clock.tick()
	assert.Equal(t, 1, runner.startCount())

	close(runner.release)

	// The running flag clears asynchronously; keep ticking until the
	// job accepts a new run.
	waitFor(t, func() bool {
		clock.tick()
		return runner.startCount() >= 2
	})

	s.Stop()
}

func TestJobAddedAfterStartTicksImmediately(t *testing.T) {
	clock := newFakeClock()
	runner := newBlockingRunner()
	s := New(runner, nil, logger.NewTestLogger(), WithClock(clock))

	require.NoError(t, s.Start(context.Background()))

	_, err := s.AddCollectionJob("get_fan_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)

	// The job's ticker must exist by the time AddCollectionJob
	// returns, so this first tick cannot be lost.
	clock.tick()
	waitFor(t, func() bool { return runner.startCount() == 1 })

	close(runner.release)
	s.Stop()
}

func TestStopDrainsInFlightRuns(t *testing.T) {
	clock := newFakeClock()
	runner := newBlockingRunner()
	s := New(runner, nil, logger.NewTestLogger(), WithClock(clock))

	_, err := s.AddCollectionJob("get_fan_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	clock.tick()
	waitFor(t, func() bool { return runner.startCount() == 1 })

	// Stop cancels the run context, unblocking the runner, and waits.
	done := make(chan struct{})

	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not drain")
	}
}

func TestStartTwiceFails(t *testing.T) {
	s := New(newBlockingRunner(), nil, logger.NewTestLogger())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

// routingRunner records which path a job name took.
type routingRunner struct {
	mu        sync.Mutex
	indicator []string
	client    []string
}

func (r *routingRunner) Collect(_ context.Context, apiName, _ string) (*models.CollectionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.indicator = append(r.indicator, apiName)

	return &models.CollectionResult{APIName: apiName}, nil
}

func (r *routingRunner) CollectClients(maintenanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.client = append(r.client, maintenanceID)
}

type clientAdapter struct{ r *routingRunner }

func (a clientAdapter) Collect(_ context.Context, maintenanceID string) (*models.CollectionResult, error) {
	a.r.CollectClients(maintenanceID)

	return &models.CollectionResult{APIName: models.JobClientCollection}, nil
}

func TestClientCollectionJobRoutesToClientService(t *testing.T) {
	clock := newFakeClock()
	runner := &routingRunner{}
	s := New(runner, clientAdapter{r: runner}, logger.NewTestLogger(), WithClock(clock))

	_, err := s.AddCollectionJob(models.JobClientCollection, time.Minute, "mw-1")
	require.NoError(t, err)

	_, err = s.AddCollectionJob("get_fan_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))

	clock.tick()

	waitFor(t, func() bool {
		runner.mu.Lock()
		defer runner.mu.Unlock()

		return len(runner.client) == 1 && len(runner.indicator) == 1
	})

	assert.Equal(t, []string{"mw-1"}, runner.client)
	assert.Equal(t, []string{"get_fan_hpe_dna"}, runner.indicator)

	s.Stop()
}

func TestJobsSnapshotSortedWithNextRun(t *testing.T) {
	clock := newFakeClock()
	s := New(newBlockingRunner(), nil, logger.NewTestLogger(), WithClock(clock))

	_, err := s.AddCollectionJob("get_power_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)
	_, err = s.AddCollectionJob("get_fan_hpe_dna", time.Minute, "mw-1")
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "get_fan_hpe_dna", jobs[0].Name)
	assert.Equal(t, "get_power_hpe_dna", jobs[1].Name)
	assert.Equal(t, clock.Now().Add(time.Minute), jobs[0].NextRun)
}
