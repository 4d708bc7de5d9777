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

// Package repository implements content-hash deduplicated batch
// persistence: a batch is written only when the device's parsed state
// differs from the latest stored batch.
package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/netswap/verifier/pkg/db"
	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
)

// Repository persists one indicator's batches for one api_name.
// SaveBatch returns (nil, nil) when the content hash matches the
// latest batch and nothing was written.
type Repository interface {
	APIName() string
	SaveBatch(ctx context.Context, hostname, raw string, items []models.Record, maintenanceID string) (*models.CollectionBatch, error)
}

// ComparisonRefresher regenerates downstream comparison state after a
// batch lands. Implementations must be idempotent; a no-op is valid.
type ComparisonRefresher interface {
	Refresh(ctx context.Context, maintenanceID, hostname string) error
}

// RefresherFunc adapts a function to ComparisonRefresher.
type RefresherFunc func(ctx context.Context, maintenanceID, hostname string) error

func (f RefresherFunc) Refresh(ctx context.Context, maintenanceID, hostname string) error {
	return f(ctx, maintenanceID, hostname)
}

// Field and item separators for fingerprint serialization. Unit
// separators cannot appear in parsed fields, so "a","bc" and "ab","c"
// hash differently.
const (
	fpFieldSep = "\x1f"
	fpItemSep  = "\x1e"
)

// Fingerprint hashes the behavior-meaningful content of a record set.
// Item order is normalized so collection order never changes the hash.
func Fingerprint(items []models.Record) string {
	serialized := make([]string, 0, len(items))

	for _, item := range items {
		fields := item.FingerprintFields()
		parts := make([]string, 0, len(fields)+1)
		parts = append(parts, string(item.Kind()))

		for _, f := range fields {
			parts = append(parts, fmt.Sprint(f))
		}

		serialized = append(serialized, strings.Join(parts, fpFieldSep))
	}

	sort.Strings(serialized)

	sum := xxhash.Sum64String(strings.Join(serialized, fpItemSep))

	return fmt.Sprintf("%016x", sum)
}

type recordRepository struct {
	apiName   string
	store     db.Store
	refresher ComparisonRefresher
	logger    logger.Logger
	now       func() time.Time
}

// Option tunes a repository.
type Option func(*recordRepository)

// WithRefresher attaches a post-insert comparison hook.
func WithRefresher(r ComparisonRefresher) Option {
	return func(repo *recordRepository) { repo.refresher = r }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(repo *recordRepository) { repo.now = now }
}

// New builds a repository for one api_name.
func New(apiName string, store db.Store, log logger.Logger, opts ...Option) Repository {
	repo := &recordRepository{
		apiName: apiName,
		store:   store,
		logger:  log,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(repo)
	}

	return repo
}

func (r *recordRepository) APIName() string { return r.apiName }

// SaveBatch compares the fingerprint against the latest stored batch
// and writes a new immutable batch only on change.
func (r *recordRepository) SaveBatch(ctx context.Context, hostname, raw string, items []models.Record, maintenanceID string) (*models.CollectionBatch, error) {
	hash := Fingerprint(items)

	latest, err := r.store.LatestBatch(ctx, r.apiName, hostname, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("looking up latest batch: %w", err)
	}

	if latest != nil && latest.ContentHash == hash {
		r.logger.Debug().
			Str("api_name", r.apiName).
			Str("hostname", hostname).
			Str("content_hash", hash).
			Msg("content unchanged, skipping batch")

		return nil, nil
	}

	batch := &models.CollectionBatch{
		BatchID:        uuid.New().String(),
		APIName:        r.apiName,
		SwitchHostname: hostname,
		MaintenanceID:  maintenanceID,
		CollectedAt:    r.now().UTC(),
		RawData:        raw,
		ContentHash:    hash,
		ItemCount:      len(items),
	}

	if err := r.store.InsertBatch(ctx, batch, items); err != nil {
		return nil, fmt.Errorf("inserting batch: %w", err)
	}

	if r.refresher != nil {
		if err := r.refresher.Refresh(ctx, maintenanceID, hostname); err != nil {
			// The batch is already durable; refresh failures must not
			// fail the collection.
			r.logger.Warn().
				Err(err).
				Str("api_name", r.apiName).
				Str("hostname", hostname).
				Msg("comparison refresh failed")
		}
	}

	r.logger.Info().
		Str("api_name", r.apiName).
		Str("hostname", hostname).
		Str("batch_id", batch.BatchID).
		Int("item_count", batch.ItemCount).
		Msg("saved collection batch")

	return batch, nil
}

// Registry maps api_names onto their repositories.
type Registry struct {
	store db.Store
	log   logger.Logger

	mu    sync.Mutex
	repos map[string]Repository
}

// NewRegistry builds repositories lazily against one store.
func NewRegistry(store db.Store, log logger.Logger) *Registry {
	return &Registry{
		store: store,
		log:   log,
		repos: make(map[string]Repository),
	}
}

// For returns the repository for an api_name, creating it on first
// use. Safe for concurrent use; cycles for different indicators share
// one registry.
func (r *Registry) For(apiName string) Repository {
	r.mu.Lock()
	defer r.mu.Unlock()

	if repo, ok := r.repos[apiName]; ok {
		return repo
	}

	repo := New(apiName, r.store, r.log)
	r.repos[apiName] = repo

	return repo
}

// Install registers a pre-built repository (used for client/ARP repos
// carrying a refresher).
func (r *Registry) Install(repo Repository) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.repos[repo.APIName()] = repo
}
