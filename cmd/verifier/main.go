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

// Command verifier runs the cutover verification pipeline: scheduled
// collection cycles against the replacement devices of a maintenance
// window, persisted as content-hash deduplicated batches.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/netswap/verifier/pkg/config"
	"github.com/netswap/verifier/pkg/db"
	"github.com/netswap/verifier/pkg/fetcher"
	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/repository"
	"github.com/netswap/verifier/pkg/scheduler"
	"github.com/netswap/verifier/pkg/service"
	"github.com/netswap/verifier/pkg/snmp"
)

var (
	errNoMaintenanceID = errors.New("MAINTENANCE_ID must be set")
	errNoDatabaseURL   = errors.New("DATABASE_URL must be set (or SNMP_MOCK for the in-memory store)")
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	mainLogger, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.MaintenanceID == "" {
		return errNoMaintenanceID
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx, cfg, mainLogger)
	if err != nil {
		return err
	}
	defer store.Close()

	fetch := buildFetcher(cfg, mainLogger)
	repos := repository.NewRegistry(store, mainLogger)

	svcCfg := service.Config{
		Concurrency:      cfg.SNMPConcurrency,
		Communities:      cfg.SNMPCommunityList,
		WalkTimeout:      cfg.SNMPWalkTimeout,
		CollectorRetries: cfg.SNMPCollectorRetries,
		TenantGroup:      cfg.TenantGroup,
	}

	api := service.NewAPICollectionService(store, repos, fetch, svcCfg, mainLogger)

	var indicators scheduler.IndicatorRunner = api

	if cfg.CollectionMode == config.ModeSNMP {
		engine := buildEngine(cfg, mainLogger)
		indicators = service.NewSNMPCollectionService(store, repos, engine, api, svcCfg, mainLogger)
	}

	client := service.NewClientCollectionService(store, repos, fetch, nil, svcCfg, mainLogger)

	sched := scheduler.New(indicators, client, mainLogger)

	for _, apiName := range models.AllAPINames {
		if _, err := sched.AddCollectionJob(apiName, cfg.CollectionInterval, cfg.MaintenanceID); err != nil {
			return fmt.Errorf("registering job %s: %w", apiName, err)
		}
	}

	if _, err := sched.AddCollectionJob(models.JobClientCollection, cfg.CollectionInterval, cfg.MaintenanceID); err != nil {
		return fmt.Errorf("registering client collection job: %w", err)
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}

	mainLogger.Info().
		Str("collection_mode", cfg.CollectionMode).
		Str("maintenance_id", cfg.MaintenanceID).
		Bool("snmp_mock", cfg.SNMPMock).
		Bool("mock_api", cfg.UseMockAPI).
		Msg("verifier started")

	<-ctx.Done()

	sched.Stop()
	mainLogger.Info().Msg("verifier stopped")

	return nil
}

// buildStore picks PostgreSQL when a DSN is configured. Mock mode
// without a DSN runs entirely in memory on a seeded demo window.
func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) (db.Store, error) {
	if cfg.DatabaseURL != "" {
		return db.NewPgStore(ctx, cfg.DatabaseURL, log)
	}

	if !cfg.SNMPMock && !cfg.UseMockAPI {
		return nil, errNoDatabaseURL
	}

	store := db.NewMemoryStore()
	seedDemoWindow(store, cfg.MaintenanceID)

	log.Info().Str("maintenance_id", cfg.MaintenanceID).Msg("using in-memory store with demo fleet")

	return store, nil
}

func buildFetcher(cfg *config.Config, log logger.Logger) fetcher.Fetcher {
	if cfg.UseMockAPI {
		return fetcher.NewMockFetcher()
	}

	return fetcher.NewHTTPFetcher(cfg.Fetcher, log)
}

func buildEngine(cfg *config.Config, log logger.Logger) snmp.Engine {
	if cfg.SNMPMock {
		return snmp.NewMockEngine(snmp.MockConfig{Communities: cfg.SNMPCommunityList})
	}

	return snmp.NewGosnmpEngine(cfg.SNMPMaxRepetitions, cfg.SNMPWalkTimeout, log)
}

// seedDemoWindow loads a small replacement fleet so mock runs produce
// data without an inventory database.
func seedDemoWindow(store *db.MemoryStore, maintenanceID string) {
	store.SeedMaintenanceDevices(maintenanceID,
		models.MaintenanceDevice{
			MaintenanceID: maintenanceID,
			OldHostname:   "access-sw-01", OldIPAddress: "10.1.10.11", OldVendor: "cisco_ios",
			NewHostname: "access-sw-01-new", NewIPAddress: "10.1.20.11", NewVendor: "hpe_comware",
			UseSamePort: true, Reachable: true,
		},
		models.MaintenanceDevice{
			MaintenanceID: maintenanceID,
			OldHostname:   "access-sw-02", OldIPAddress: "10.1.10.12", OldVendor: "cisco_ios",
			NewHostname: "access-sw-02-new", NewIPAddress: "10.1.20.12", NewVendor: "hpe_comware",
			UseSamePort: true, Reachable: true,
		},
	)

	store.SeedArpSources(maintenanceID,
		models.ArpSource{
			MaintenanceID: maintenanceID,
			Hostname:      "core-01", IPAddress: "10.1.0.1", Vendor: "cisco_ios", Priority: 10,
		},
		models.ArpSource{
			MaintenanceID: maintenanceID,
			Hostname:      "core-02", IPAddress: "10.1.0.2", Vendor: "cisco_ios", Priority: 20,
		},
	)

	store.SeedUplinkExpectations(maintenanceID,
		models.UplinkExpectation{
			MaintenanceID: maintenanceID, Hostname: "access-sw-01-new",
			LocalInterface: "TenGigabitEthernet1/1/1", ExpectedNeighbor: "core-01",
			ExpectedInterface: "TenGigabitEthernet1/0/7",
		},
	)
}
