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

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
)

const (
	selectMaintenanceDevicesSQL = `
SELECT maintenance_id, old_hostname, old_ip_address, old_vendor,
       new_hostname, new_ip_address, new_vendor, use_same_port, reachable
FROM maintenance_devices
WHERE maintenance_id = $1
ORDER BY new_hostname`

	selectSwitchesSQL = `
SELECT hostname, ip_address, vendor, platform, site, active, last_seen
FROM switches
ORDER BY hostname`

	selectSwitchSQL = `
SELECT hostname, ip_address, vendor, platform, site, active, last_seen
FROM switches
WHERE hostname = $1`

	selectUplinkExpectationsSQL = `
SELECT maintenance_id, hostname, local_interface, expected_neighbor, expected_interface
FROM uplink_expectations
WHERE maintenance_id = $1
ORDER BY hostname, local_interface`

	selectArpSourcesSQL = `
SELECT maintenance_id, hostname, ip_address, vendor, priority
FROM arp_sources
WHERE maintenance_id = $1
ORDER BY priority`

	selectLatestBatchSQL = `
SELECT batch_id, api_name, switch_hostname, maintenance_id,
       collected_at, raw_data, content_hash, item_count
FROM collection_batches
WHERE api_name = $1 AND switch_hostname = $2 AND maintenance_id = $3
ORDER BY collected_at DESC
LIMIT 1`

	insertBatchSQL = `
INSERT INTO collection_batches (
	batch_id, api_name, switch_hostname, maintenance_id,
	collected_at, raw_data, content_hash, item_count
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	insertBatchItemSQL = `
INSERT INTO collection_items (batch_id, position, item_kind, payload)
VALUES ($1,$2,$3,$4)`

	upsertCollectionErrorSQL = `
INSERT INTO collection_errors (
	maintenance_id, api_name, switch_hostname, error_message, occurred_at
) VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (maintenance_id, api_name, switch_hostname)
DO UPDATE SET error_message = EXCLUDED.error_message,
              occurred_at  = EXCLUDED.occurred_at`

	deleteCollectionErrorSQL = `
DELETE FROM collection_errors
WHERE maintenance_id = $1 AND api_name = $2 AND switch_hostname = $3`

	selectCollectionErrorSQL = `
SELECT maintenance_id, api_name, switch_hostname, error_message, occurred_at
FROM collection_errors
WHERE maintenance_id = $1 AND api_name = $2 AND switch_hostname = $3`
)

// PgStore is the production Store on a pgx connection pool.
type PgStore struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// NewPgStore dials the database and verifies connectivity.
func NewPgStore(ctx context.Context, dsn string, log logger.Logger) (*PgStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PgStore{pool: pool, logger: log}, nil
}

func (s *PgStore) Close() {
	s.pool.Close()
}

func (s *PgStore) ListMaintenanceDevices(ctx context.Context, maintenanceID string) ([]models.MaintenanceDevice, error) {
	rows, err := s.pool.Query(ctx, selectMaintenanceDevicesSQL, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("%w maintenance devices: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var devices []models.MaintenanceDevice

	for rows.Next() {
		var d models.MaintenanceDevice

		if err := rows.Scan(&d.MaintenanceID, &d.OldHostname, &d.OldIPAddress, &d.OldVendor,
			&d.NewHostname, &d.NewIPAddress, &d.NewVendor, &d.UseSamePort, &d.Reachable); err != nil {
			return nil, fmt.Errorf("%w maintenance device: %w", ErrFailedToScan, err)
		}

		devices = append(devices, d)
	}

	return devices, rows.Err()
}

func (s *PgStore) ListSwitches(ctx context.Context) ([]models.Switch, error) {
	rows, err := s.pool.Query(ctx, selectSwitchesSQL)
	if err != nil {
		return nil, fmt.Errorf("%w switches: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var switches []models.Switch

	for rows.Next() {
		sw, err := scanSwitch(rows)
		if err != nil {
			return nil, err
		}

		switches = append(switches, *sw)
	}

	return switches, rows.Err()
}

func (s *PgStore) GetSwitch(ctx context.Context, hostname string) (*models.Switch, error) {
	rows, err := s.pool.Query(ctx, selectSwitchSQL, hostname)
	if err != nil {
		return nil, fmt.Errorf("%w switch: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return scanSwitch(rows)
}

func scanSwitch(rows pgx.Rows) (*models.Switch, error) {
	var sw models.Switch

	if err := rows.Scan(&sw.Hostname, &sw.IPAddress, &sw.Vendor, &sw.Platform,
		&sw.Site, &sw.Active, &sw.LastSeen); err != nil {
		return nil, fmt.Errorf("%w switch: %w", ErrFailedToScan, err)
	}

	sw.DeviceType = models.ParseDeviceType(sw.Vendor)

	return &sw, nil
}

func (s *PgStore) ListUplinkExpectations(ctx context.Context, maintenanceID string) ([]models.UplinkExpectation, error) {
	rows, err := s.pool.Query(ctx, selectUplinkExpectationsSQL, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("%w uplink expectations: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var expectations []models.UplinkExpectation

	for rows.Next() {
		var e models.UplinkExpectation

		if err := rows.Scan(&e.MaintenanceID, &e.Hostname, &e.LocalInterface,
			&e.ExpectedNeighbor, &e.ExpectedInterface); err != nil {
			return nil, fmt.Errorf("%w uplink expectation: %w", ErrFailedToScan, err)
		}

		expectations = append(expectations, e)
	}

	return expectations, rows.Err()
}

func (s *PgStore) ListArpSources(ctx context.Context, maintenanceID string) ([]models.ArpSource, error) {
	rows, err := s.pool.Query(ctx, selectArpSourcesSQL, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("%w arp sources: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var sources []models.ArpSource

	for rows.Next() {
		var src models.ArpSource

		if err := rows.Scan(&src.MaintenanceID, &src.Hostname, &src.IPAddress,
			&src.Vendor, &src.Priority); err != nil {
			return nil, fmt.Errorf("%w arp source: %w", ErrFailedToScan, err)
		}

		sources = append(sources, src)
	}

	return sources, rows.Err()
}

func (s *PgStore) LatestBatch(ctx context.Context, apiName, hostname, maintenanceID string) (*models.CollectionBatch, error) {
	rows, err := s.pool.Query(ctx, selectLatestBatchSQL, apiName, hostname, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("%w latest batch: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var b models.CollectionBatch

	if err := rows.Scan(&b.BatchID, &b.APIName, &b.SwitchHostname, &b.MaintenanceID,
		&b.CollectedAt, &b.RawData, &b.ContentHash, &b.ItemCount); err != nil {
		return nil, fmt.Errorf("%w batch: %w", ErrFailedToScan, err)
	}

	return &b, nil
}

// InsertBatch writes the batch row plus its typed records atomically.
// Deadlocks surface as ErrDeadlock for the cycle-level retry.
func (s *PgStore) InsertBatch(ctx context.Context, batch *models.CollectionBatch, items []models.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w batch: %w", ErrFailedToInsert, wrapDeadlock(err))
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, insertBatchSQL,
		batch.BatchID, batch.APIName, batch.SwitchHostname, batch.MaintenanceID,
		batch.CollectedAt, batch.RawData, batch.ContentHash, batch.ItemCount); err != nil {
		return fmt.Errorf("%w batch: %w", ErrFailedToInsert, wrapDeadlock(err))
	}

	if len(items) > 0 {
		pgxBatch := &pgx.Batch{}

		for position, item := range items {
			payload, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("%w item %d: %w", ErrFailedToInsert, position, err)
			}

			pgxBatch.Queue(insertBatchItemSQL, batch.BatchID, position, string(item.Kind()), payload)
		}

		if err := tx.SendBatch(ctx, pgxBatch).Close(); err != nil {
			return fmt.Errorf("%w batch items: %w", ErrFailedToInsert, wrapDeadlock(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w batch commit: %w", ErrFailedToInsert, wrapDeadlock(err))
	}

	return nil
}

func (s *PgStore) UpsertCollectionError(ctx context.Context, ce *models.CollectionError) error {
	_, err := s.pool.Exec(ctx, upsertCollectionErrorSQL,
		ce.MaintenanceID, ce.APIName, ce.SwitchHostname, ce.ErrorMessage, ce.OccurredAt)
	if err != nil {
		return fmt.Errorf("%w collection error: %w", ErrFailedToInsert, wrapDeadlock(err))
	}

	return nil
}

func (s *PgStore) DeleteCollectionError(ctx context.Context, maintenanceID, apiName, hostname string) error {
	_, err := s.pool.Exec(ctx, deleteCollectionErrorSQL, maintenanceID, apiName, hostname)
	if err != nil {
		return fmt.Errorf("%w deleting collection error: %w", ErrDatabaseError, wrapDeadlock(err))
	}

	return nil
}

func (s *PgStore) GetCollectionError(ctx context.Context, maintenanceID, apiName, hostname string) (*models.CollectionError, error) {
	rows, err := s.pool.Query(ctx, selectCollectionErrorSQL, maintenanceID, apiName, hostname)
	if err != nil {
		return nil, fmt.Errorf("%w collection error: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var ce models.CollectionError

	if err := rows.Scan(&ce.MaintenanceID, &ce.APIName, &ce.SwitchHostname,
		&ce.ErrorMessage, &ce.OccurredAt); err != nil {
		return nil, fmt.Errorf("%w collection error: %w", ErrFailedToScan, err)
	}

	return &ce, nil
}
