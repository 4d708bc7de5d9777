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

package models

import "time"

// CollectionBatch is an immutable snapshot anchor. For a given
// (api_name, switch_hostname, maintenance_id) tuple batches form a
// time-ordered sequence; the latest batch's ContentHash is the
// device's current state fingerprint.
type CollectionBatch struct {
	BatchID        string    `json:"batch_id"`
	APIName        string    `json:"api_name"`
	SwitchHostname string    `json:"switch_hostname"`
	MaintenanceID  string    `json:"maintenance_id"`
	CollectedAt    time.Time `json:"collected_at"`
	RawData        string    `json:"raw_data"`
	ContentHash    string    `json:"content_hash"`
	ItemCount      int       `json:"item_count"`
}

// CollectionError tracks per-device, per-indicator collection health.
// Unique on (maintenance_id, api_name, switch_hostname); upserted on
// failure, deleted on the next success.
type CollectionError struct {
	MaintenanceID  string    `json:"maintenance_id"`
	APIName        string    `json:"api_name"`
	SwitchHostname string    `json:"switch_hostname"`
	ErrorMessage   string    `json:"error_message"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// CollectionResult aggregates one collection cycle.
type CollectionResult struct {
	APIName string   `json:"api_name"`
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
