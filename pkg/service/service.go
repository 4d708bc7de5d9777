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

// Package service runs collection cycles: it fans one indicator out
// across every replacement device of a maintenance window, persists
// the results, and tracks per-device collection health.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/netswap/verifier/pkg/collector"
	"github.com/netswap/verifier/pkg/db"
	"github.com/netswap/verifier/pkg/fetcher"
	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/parser"
	"github.com/netswap/verifier/pkg/repository"
	"github.com/netswap/verifier/pkg/snmp"
)

// CollectionService runs one indicator cycle for one maintenance window.
type CollectionService interface {
	Collect(ctx context.Context, apiName, maintenanceID string) (*models.CollectionResult, error)
}

// Sentinel batch prefixes. A device that fails collection still gets a
// batch recording the failure, so the timeline has no silent gaps.
const (
	apiErrorPrefix  = "[API_ERROR]"
	snmpErrorPrefix = "[SNMP_ERROR]"
)

const (
	defaultConcurrency = 16
	defaultWalkTimeout = 5 * time.Second

	maxDeadlockRetries  = 2
	deadlockBackoffUnit = 300 * time.Millisecond
)

// Config tunes the collection services. Zero values take defaults.
type Config struct {
	// Concurrency bounds the per-cycle device fan-out.
	Concurrency int64
	// Communities tried in order against each device.
	Communities []string
	// WalkTimeout is the per-request SNMP timeout.
	WalkTimeout time.Duration
	// SessionRetries is the gosnmp per-request retry count.
	SessionRetries int
	// CollectorRetries bounds timeout retries around a whole collector run.
	CollectorRetries int
	// TenantGroup is forwarded to the collector API on every fetch.
	TenantGroup string
}

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}

	if len(c.Communities) == 0 {
		c.Communities = []string{"public"}
	}

	if c.WalkTimeout <= 0 {
		c.WalkTimeout = defaultWalkTimeout
	}

	return c
}

// deviceCollector produces one device's raw output and parsed records.
type deviceCollector func(ctx context.Context, device models.MaintenanceDevice) (raw string, items []models.Record, err error)

// cycleRunner is the fan-out shared by the API and SNMP services.
type cycleRunner struct {
	store       db.Store
	repos       *repository.Registry
	concurrency int64
	logger      logger.Logger
}

// withDeadlockRetry reruns a whole cycle when it aborted on a database
// deadlock. Counters reset with each attempt because the cycle
// rebuilds its result from scratch.
func withDeadlockRetry(
	ctx context.Context,
	log logger.Logger,
	apiName string,
	run func(ctx context.Context) (*models.CollectionResult, error),
) (*models.CollectionResult, error) {
	var (
		result *models.CollectionResult
		err    error
	)

	for attempt := 0; ; attempt++ {
		result, err = run(ctx)
		if err == nil || !errors.Is(err, db.ErrDeadlock) || attempt >= maxDeadlockRetries {
			return result, err
		}

		delay := time.Duration(attempt+1) * deadlockBackoffUnit

		log.Warn().
			Str("api_name", apiName).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("cycle hit database deadlock, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// run fans one indicator out across every replacement device. Handled
// per-device failures land in the result; only store-level aborts
// (deadlocks) surface as the returned error.
func (r *cycleRunner) run(
	ctx context.Context,
	apiName, maintenanceID, sentinelPrefix string,
	collect deviceCollector,
) (*models.CollectionResult, error) {
	devices, err := r.store.ListMaintenanceDevices(ctx, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance devices: %w", err)
	}

	targets := make([]models.MaintenanceDevice, 0, len(devices))

	for _, dev := range devices {
		if dev.HasNewDevice() {
			targets = append(targets, dev)
		}
	}

	repo := r.repos.For(apiName)
	result := &models.CollectionResult{APIName: apiName, Total: len(targets)}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		cycleErr error
	)

	sem := semaphore.NewWeighted(r.concurrency)

	for _, dev := range targets {
		dev := dev

		if acqErr := sem.Acquire(ctx, 1); acqErr != nil {
			mu.Lock()
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", dev.NewHostname, acqErr))
			mu.Unlock()

			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer sem.Release(1)

			devErr := r.collectDevice(ctx, repo, maintenanceID, sentinelPrefix, dev, collect)

			mu.Lock()
			defer mu.Unlock()

			if devErr == nil {
				result.Success++
				return
			}

			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", dev.NewHostname, devErr))

			if errors.Is(devErr, db.ErrDeadlock) && cycleErr == nil {
				cycleErr = devErr
			}
		}()
	}

	wg.Wait()

	if cycleErr != nil {
		return nil, cycleErr
	}

	r.logger.Info().
		Str("api_name", apiName).
		Str("maintenance_id", maintenanceID).
		Int("total", result.Total).
		Int("success", result.Success).
		Int("failed", result.Failed).
		Msg("collection cycle finished")

	return result, nil
}

func (r *cycleRunner) collectDevice(
	ctx context.Context,
	repo repository.Repository,
	maintenanceID, sentinelPrefix string,
	dev models.MaintenanceDevice,
	collect deviceCollector,
) error {
	hostname := dev.NewHostname

	raw, items, err := collect(ctx, dev)
	if err != nil {
		return r.recordFailure(ctx, repo, maintenanceID, hostname, sentinelPrefix, err)
	}

	if _, err := repo.SaveBatch(ctx, hostname, raw, items, maintenanceID); err != nil {
		return fmt.Errorf("saving batch for %s: %w", hostname, err)
	}

	if err := r.store.DeleteCollectionError(ctx, maintenanceID, repo.APIName(), hostname); err != nil {
		return fmt.Errorf("clearing collection error for %s: %w", hostname, err)
	}

	return nil
}

// recordFailure upserts the device's error row and writes the sentinel
// batch, then reports the original collection error so the device
// counts as failed.
func (r *cycleRunner) recordFailure(
	ctx context.Context,
	repo repository.Repository,
	maintenanceID, hostname, sentinelPrefix string,
	collectErr error,
) error {
	ce := &models.CollectionError{
		MaintenanceID:  maintenanceID,
		APIName:        repo.APIName(),
		SwitchHostname: hostname,
		ErrorMessage:   collectErr.Error(),
		OccurredAt:     time.Now().UTC(),
	}

	if err := r.store.UpsertCollectionError(ctx, ce); err != nil {
		return fmt.Errorf("recording collection error for %s: %w", hostname, err)
	}

	sentinel := sentinelPrefix + " " + collectErr.Error()

	if _, err := repo.SaveBatch(ctx, hostname, sentinel, nil, maintenanceID); err != nil {
		return fmt.Errorf("saving sentinel batch for %s: %w", hostname, err)
	}

	r.logger.Warn().
		Err(collectErr).
		Str("api_name", repo.APIName()).
		Str("hostname", hostname).
		Msg("device collection failed")

	return collectErr
}

// APICollectionService collects indicators through the external
// collector HTTP API and the CLI-output parsers.
type APICollectionService struct {
	runner cycleRunner
	fetch  fetcher.Fetcher

	tenantGroup string
}

// NewAPICollectionService builds the HTTP-mode service.
func NewAPICollectionService(
	store db.Store,
	repos *repository.Registry,
	fetch fetcher.Fetcher,
	cfg Config,
	log logger.Logger,
) *APICollectionService {
	cfg = cfg.withDefaults()

	return &APICollectionService{
		runner: cycleRunner{
			store:       store,
			repos:       repos,
			concurrency: cfg.Concurrency,
			logger:      log.WithComponent("api-collection"),
		},
		fetch:       fetch,
		tenantGroup: cfg.TenantGroup,
	}
}

// Collect runs one API-mode cycle for the indicator.
func (s *APICollectionService) Collect(ctx context.Context, apiName, maintenanceID string) (*models.CollectionResult, error) {
	return withDeadlockRetry(ctx, s.runner.logger, apiName, func(ctx context.Context) (*models.CollectionResult, error) {
		return s.runner.run(ctx, apiName, maintenanceID, apiErrorPrefix, func(ctx context.Context, dev models.MaintenanceDevice) (string, []models.Record, error) {
			return s.fetchAndParse(ctx, apiName, dev)
		})
	})
}

func (s *APICollectionService) fetchAndParse(ctx context.Context, apiName string, dev models.MaintenanceDevice) (string, []models.Record, error) {
	deviceType := dev.NewDeviceType()
	vars := fetcher.DeviceVars(dev.NewHostname, dev.NewIPAddress, deviceType, s.tenantGroup)

	body, err := s.fetch.Fetch(ctx, apiName, vars, nil)
	if err != nil {
		return "", nil, err
	}

	p, err := parser.GetOrError(deviceType, apiName)
	if err != nil {
		return "", nil, err
	}

	return body, p.Parse(body), nil
}

// SNMPCollectionService collects indicators by walking the devices
// directly. Indicators SNMP cannot produce are forwarded to the API
// service.
type SNMPCollectionService struct {
	runner cycleRunner
	engine snmp.Engine
	api    *APICollectionService

	communities      []string
	walkTimeout      time.Duration
	sessionRetries   int
	collectorRetries int
}

// NewSNMPCollectionService builds the SNMP-mode service. The API
// service handles the passthrough indicators and acts as the fallback
// for indicators without a registered collector.
func NewSNMPCollectionService(
	store db.Store,
	repos *repository.Registry,
	engine snmp.Engine,
	api *APICollectionService,
	cfg Config,
	log logger.Logger,
) *SNMPCollectionService {
	cfg = cfg.withDefaults()

	return &SNMPCollectionService{
		runner: cycleRunner{
			store:       store,
			repos:       repos,
			concurrency: cfg.Concurrency,
			logger:      log.WithComponent("snmp-collection"),
		},
		engine:           engine,
		api:              api,
		communities:      cfg.Communities,
		walkTimeout:      cfg.WalkTimeout,
		sessionRetries:   cfg.SessionRetries,
		collectorRetries: cfg.CollectorRetries,
	}
}

// Collect runs one SNMP-mode cycle for the indicator. Each cycle
// attempt gets a fresh session cache so community resolution and
// shared-table walks happen once per cycle, never across cycles.
func (s *SNMPCollectionService) Collect(ctx context.Context, apiName, maintenanceID string) (*models.CollectionResult, error) {
	if models.PassthroughAPINames[apiName] {
		return s.api.Collect(ctx, apiName, maintenanceID)
	}

	col, ok := collector.For(apiName)
	if !ok {
		s.runner.logger.Debug().
			Str("api_name", apiName).
			Msg("no snmp collector, delegating to api service")

		return s.api.Collect(ctx, apiName, maintenanceID)
	}

	return withDeadlockRetry(ctx, s.runner.logger, apiName, func(ctx context.Context) (*models.CollectionResult, error) {
		cache := snmp.NewSessionCache(s.engine, s.communities, s.walkTimeout, s.sessionRetries, s.runner.logger)

		return s.runner.run(ctx, apiName, maintenanceID, snmpErrorPrefix, func(ctx context.Context, dev models.MaintenanceDevice) (string, []models.Record, error) {
			return collector.CollectWithRetry(ctx, col, dev.NewIPAddress, dev.NewDeviceType(), cache, s.collectorRetries)
		})
	})
}
