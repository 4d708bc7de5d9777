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

// Package db persists collection batches, typed records, error rows,
// and the maintenance inventory the collection cycles iterate.
package db

import (
	"context"

	"github.com/netswap/verifier/pkg/models"
)

// Store is the persistence surface consumed by the repositories and
// collection services. Lookups that find nothing return (nil, nil);
// only infrastructure failures are errors.
type Store interface {
	// Inventory (read-only from the pipeline's point of view).
	ListMaintenanceDevices(ctx context.Context, maintenanceID string) ([]models.MaintenanceDevice, error)
	ListSwitches(ctx context.Context) ([]models.Switch, error)
	GetSwitch(ctx context.Context, hostname string) (*models.Switch, error)
	ListUplinkExpectations(ctx context.Context, maintenanceID string) ([]models.UplinkExpectation, error)
	ListArpSources(ctx context.Context, maintenanceID string) ([]models.ArpSource, error)

	// Batch history. InsertBatch writes the batch row and its typed
	// records in one transaction.
	LatestBatch(ctx context.Context, apiName, hostname, maintenanceID string) (*models.CollectionBatch, error)
	InsertBatch(ctx context.Context, batch *models.CollectionBatch, items []models.Record) error

	// Error lifecycle, unique on (maintenance_id, api_name, hostname).
	UpsertCollectionError(ctx context.Context, ce *models.CollectionError) error
	DeleteCollectionError(ctx context.Context, maintenanceID, apiName, hostname string) error
	GetCollectionError(ctx context.Context, maintenanceID, apiName, hostname string) (*models.CollectionError, error)

	Close()
}
