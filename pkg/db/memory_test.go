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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netswap/verifier/pkg/models"
)

func TestMemoryStoreLatestBatchOrdering(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	latest, err := store.LatestBatch(ctx, "get_fan_hpe_dna", "access-01", "mw-1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := &models.CollectionBatch{
		BatchID: "b1", APIName: "get_fan_hpe_dna", SwitchHostname: "access-01",
		MaintenanceID: "mw-1", ContentHash: "aaaa", CollectedAt: time.Now(),
	}
	second := &models.CollectionBatch{
		BatchID: "b2", APIName: "get_fan_hpe_dna", SwitchHostname: "access-01",
		MaintenanceID: "mw-1", ContentHash: "bbbb", CollectedAt: time.Now().Add(time.Minute),
	}

	require.NoError(t, store.InsertBatch(ctx, first, nil))
	require.NoError(t, store.InsertBatch(ctx, second, []models.Record{
		models.FanRecord{FanID: "Fan 1", Status: models.StatusNormal},
	}))

	latest, err = store.LatestBatch(ctx, "get_fan_hpe_dna", "access-01", "mw-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "b2", latest.BatchID)
	assert.Equal(t, "bbbb", latest.ContentHash)

	assert.Len(t, store.BatchItems("b2"), 1)
	assert.Empty(t, store.BatchItems("b1"))

	// Other key tuples see their own history only.
	other, err := store.LatestBatch(ctx, "get_fan_hpe_dna", "access-02", "mw-1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemoryStoreErrorLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ce, err := store.GetCollectionError(ctx, "mw-1", "get_fan_hpe_dna", "access-01")
	require.NoError(t, err)
	assert.Nil(t, ce)

	first := &models.CollectionError{
		MaintenanceID: "mw-1", APIName: "get_fan_hpe_dna", SwitchHostname: "access-01",
		ErrorMessage: "timeout", OccurredAt: time.Now(),
	}
	require.NoError(t, store.UpsertCollectionError(ctx, first))

	// Upsert replaces on the (maintenance, api, hostname) tuple.
	second := &models.CollectionError{
		MaintenanceID: "mw-1", APIName: "get_fan_hpe_dna", SwitchHostname: "access-01",
		ErrorMessage: "still down", OccurredAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.UpsertCollectionError(ctx, second))

	ce, err = store.GetCollectionError(ctx, "mw-1", "get_fan_hpe_dna", "access-01")
	require.NoError(t, err)
	require.NotNil(t, ce)
	assert.Equal(t, "still down", ce.ErrorMessage)

	require.NoError(t, store.DeleteCollectionError(ctx, "mw-1", "get_fan_hpe_dna", "access-01"))

	ce, err = store.GetCollectionError(ctx, "mw-1", "get_fan_hpe_dna", "access-01")
	require.NoError(t, err)
	assert.Nil(t, ce)
}

func TestMemoryStoreArpSourcePriority(t *testing.T) {
	store := NewMemoryStore()

	store.SeedArpSources("mw-1",
		models.ArpSource{MaintenanceID: "mw-1", Hostname: "gw-2", Priority: 20},
		models.ArpSource{MaintenanceID: "mw-1", Hostname: "gw-1", Priority: 10},
		models.ArpSource{MaintenanceID: "mw-1", Hostname: "gw-3", Priority: 30},
	)

	sources, err := store.ListArpSources(context.Background(), "mw-1")
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, "gw-1", sources[0].Hostname)
	assert.Equal(t, "gw-2", sources[1].Hostname)
	assert.Equal(t, "gw-3", sources[2].Hostname)
}

func TestMemoryStoreFailNextInsert(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.FailNextInsert(ErrDeadlock)

	batch := &models.CollectionBatch{BatchID: "b1", APIName: "x", SwitchHostname: "h", MaintenanceID: "m"}

	err := store.InsertBatch(ctx, batch, nil)
	require.ErrorIs(t, err, ErrDeadlock)

	// The failure is one-shot.
	require.NoError(t, store.InsertBatch(ctx, batch, nil))
}

func TestMemoryStoreDeviceIsolation(t *testing.T) {
	store := NewMemoryStore()

	store.SeedMaintenanceDevices("mw-1", models.MaintenanceDevice{
		MaintenanceID: "mw-1", NewHostname: "access-01", NewIPAddress: "10.0.0.1",
	})

	devices, err := store.ListMaintenanceDevices(context.Background(), "mw-1")
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	none, err := store.ListMaintenanceDevices(context.Background(), "mw-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
