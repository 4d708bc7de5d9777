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
	"sync"

	"github.com/netswap/verifier/pkg/models"
)

// MemoryStore is an in-process Store with the same semantics as
// PgStore. It backs tests and the offline mock mode (SNMP_MOCK with no
// DATABASE_URL).
type MemoryStore struct {
	mu sync.Mutex

	devices      map[string][]models.MaintenanceDevice
	switches     map[string]models.Switch
	uplinks      map[string][]models.UplinkExpectation
	arpSources   map[string][]models.ArpSource
	batches      map[batchKey][]*models.CollectionBatch
	batchItems   map[string][]models.Record
	errorRows    map[errorKey]models.CollectionError
	nextInsertFn func(*models.CollectionBatch) error
}

type batchKey struct {
	apiName       string
	hostname      string
	maintenanceID string
}

type errorKey struct {
	maintenanceID string
	apiName       string
	hostname      string
}

// NewMemoryStore builds an empty store; seed it through the Seed
// methods.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		devices:    make(map[string][]models.MaintenanceDevice),
		switches:   make(map[string]models.Switch),
		uplinks:    make(map[string][]models.UplinkExpectation),
		arpSources: make(map[string][]models.ArpSource),
		batches:    make(map[batchKey][]*models.CollectionBatch),
		batchItems: make(map[string][]models.Record),
		errorRows:  make(map[errorKey]models.CollectionError),
	}
}

func (s *MemoryStore) Close() {}

func (s *MemoryStore) SeedMaintenanceDevices(maintenanceID string, devices ...models.MaintenanceDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices[maintenanceID] = append(s.devices[maintenanceID], devices...)
}

func (s *MemoryStore) SeedSwitches(switches ...models.Switch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sw := range switches {
		s.switches[sw.Hostname] = sw
	}
}

func (s *MemoryStore) SeedUplinkExpectations(maintenanceID string, rows ...models.UplinkExpectation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uplinks[maintenanceID] = append(s.uplinks[maintenanceID], rows...)
}

func (s *MemoryStore) SeedArpSources(maintenanceID string, rows ...models.ArpSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.arpSources[maintenanceID] = append(s.arpSources[maintenanceID], rows...)
}

// FailNextInsert makes the next InsertBatch return err once. Cycle
// retry tests inject ErrDeadlock through this.
func (s *MemoryStore) FailNextInsert(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextInsertFn = func(*models.CollectionBatch) error { return err }
}

func (s *MemoryStore) ListMaintenanceDevices(_ context.Context, maintenanceID string) ([]models.MaintenanceDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.MaintenanceDevice(nil), s.devices[maintenanceID]...), nil
}

func (s *MemoryStore) ListSwitches(context.Context) ([]models.Switch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switches := make([]models.Switch, 0, len(s.switches))
	for _, sw := range s.switches {
		switches = append(switches, sw)
	}

	return switches, nil
}

func (s *MemoryStore) GetSwitch(_ context.Context, hostname string) (*models.Switch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, ok := s.switches[hostname]
	if !ok {
		return nil, nil
	}

	return &sw, nil
}

func (s *MemoryStore) ListUplinkExpectations(_ context.Context, maintenanceID string) ([]models.UplinkExpectation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.UplinkExpectation(nil), s.uplinks[maintenanceID]...), nil
}

func (s *MemoryStore) ListArpSources(_ context.Context, maintenanceID string) ([]models.ArpSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources := append([]models.ArpSource(nil), s.arpSources[maintenanceID]...)

	// Priority order, stable for equal priorities.
	for i := 1; i < len(sources); i++ {
		for j := i; j > 0 && sources[j].Priority < sources[j-1].Priority; j-- {
			sources[j], sources[j-1] = sources[j-1], sources[j]
		}
	}

	return sources, nil
}

func (s *MemoryStore) LatestBatch(_ context.Context, apiName, hostname, maintenanceID string) (*models.CollectionBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.batches[batchKey{apiName, hostname, maintenanceID}]
	if len(history) == 0 {
		return nil, nil
	}

	latest := *history[len(history)-1]

	return &latest, nil
}

func (s *MemoryStore) InsertBatch(_ context.Context, batch *models.CollectionBatch, items []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextInsertFn != nil {
		fn := s.nextInsertFn
		s.nextInsertFn = nil

		if err := fn(batch); err != nil {
			return err
		}
	}

	stored := *batch
	key := batchKey{batch.APIName, batch.SwitchHostname, batch.MaintenanceID}

	s.batches[key] = append(s.batches[key], &stored)
	s.batchItems[batch.BatchID] = append([]models.Record(nil), items...)

	return nil
}

// BatchItems returns the typed rows of a stored batch.
func (s *MemoryStore) BatchItems(batchID string) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Record(nil), s.batchItems[batchID]...)
}

func (s *MemoryStore) UpsertCollectionError(_ context.Context, ce *models.CollectionError) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errorRows[errorKey{ce.MaintenanceID, ce.APIName, ce.SwitchHostname}] = *ce

	return nil
}

func (s *MemoryStore) DeleteCollectionError(_ context.Context, maintenanceID, apiName, hostname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.errorRows, errorKey{maintenanceID, apiName, hostname})

	return nil
}

func (s *MemoryStore) GetCollectionError(_ context.Context, maintenanceID, apiName, hostname string) (*models.CollectionError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ce, ok := s.errorRows[errorKey{maintenanceID, apiName, hostname}]
	if !ok {
		return nil, nil
	}

	return &ce, nil
}
