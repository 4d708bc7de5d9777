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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netswap/verifier/pkg/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeAPI, cfg.CollectionMode)
	assert.Equal(t, 5*time.Minute, cfg.CollectionInterval)
	assert.Equal(t, []string{"public"}, cfg.SNMPCommunityList)
	assert.Equal(t, 25, cfg.SNMPMaxRepetitions)
	assert.Equal(t, 5*time.Second, cfg.SNMPWalkTimeout)
	assert.Equal(t, int64(16), cfg.SNMPConcurrency)
	assert.Equal(t, 2, cfg.SNMPCollectorRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SNMPMock)
	assert.Empty(t, cfg.Fetcher.Endpoints)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("COLLECTION_MODE", "snmp")
	t.Setenv("MAINTENANCE_ID", "mw-2026-03-14")
	t.Setenv("COLLECTION_INTERVAL", "90s")
	t.Setenv("SNMP_MOCK", "true")
	t.Setenv("SNMP_COMMUNITY_LIST", "public, corp-ro")
	t.Setenv("SNMP_WALK_TIMEOUT", "2s")
	t.Setenv("SNMP_CONCURRENCY", "32")
	t.Setenv("SNMP_COLLECTOR_RETRIES", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeSNMP, cfg.CollectionMode)
	assert.Equal(t, "mw-2026-03-14", cfg.MaintenanceID)
	assert.Equal(t, 90*time.Second, cfg.CollectionInterval)
	assert.True(t, cfg.SNMPMock)
	assert.Equal(t, []string{"public", "corp-ro"}, cfg.SNMPCommunityList)
	assert.Equal(t, 2*time.Second, cfg.SNMPWalkTimeout)
	assert.Equal(t, int64(32), cfg.SNMPConcurrency)
	assert.Equal(t, 1, cfg.SNMPCollectorRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("COLLECTION_MODE", "carrier-pigeon")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidCollectionMode)
}

func TestLoadBuildsDefaultEndpointsFromExternalAPIServer(t *testing.T) {
	t.Setenv("EXTERNAL_API_SERVER", "http://collector.internal:8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://collector.internal:8080", cfg.Fetcher.Sources[defaultSourceName].BaseURL)
	assert.Len(t, cfg.Fetcher.Endpoints, len(models.AllAPINames))

	fan := cfg.Fetcher.Endpoints[models.APIFanHPE]
	assert.Equal(t, defaultSourceName, fan.Source)
	assert.Equal(t, "/api/v1/get_fan_hpe_dna/{switch_ip}", fan.PathTemplate)
}

func TestLoadDynamicFetcherKeysOverrideDefaults(t *testing.T) {
	t.Setenv("EXTERNAL_API_SERVER", "http://collector.internal:8080")
	t.Setenv("FETCHER_SOURCE__DNA__BASE_URL", "http://dna.internal:9000")
	t.Setenv("FETCHER_SOURCE__DNA__TIMEOUT", "3s")
	t.Setenv("FETCHER_ENDPOINT__GET_FAN_HPE_DNA", "dna:/fan/{switch_ip}/{device_type}")

	cfg, err := Load()
	require.NoError(t, err)

	dna := cfg.Fetcher.Sources["dna"]
	assert.Equal(t, "http://dna.internal:9000", dna.BaseURL)
	assert.Equal(t, 3*time.Second, dna.Timeout)

	fan := cfg.Fetcher.Endpoints[models.APIFanHPE]
	assert.Equal(t, "dna", fan.Source)
	assert.Equal(t, "/fan/{switch_ip}/{device_type}", fan.PathTemplate)

	// Indicators without an explicit key keep the default wiring.
	arp := cfg.Fetcher.Endpoints[models.APIArp]
	assert.Equal(t, defaultSourceName, arp.Source)
}

func TestLoadRejectsMalformedEndpointSpec(t *testing.T) {
	t.Setenv("FETCHER_ENDPOINT__GET_FAN_HPE_DNA", "no-source-separator")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidEndpointSpec)
}

func TestEnvLoaderTypes(t *testing.T) {
	type sample struct {
		Name     string        `json:"name"`
		Count    int           `json:"count"`
		Rate     float64       `json:"rate"`
		Enabled  bool          `json:"enabled"`
		Interval time.Duration `json:"interval"`
		Tags     []string      `json:"tags"`
		Skipped  string        `json:"-"`
		untagged string
	}

	t.Setenv("NAME", "verifier")
	t.Setenv("COUNT", "7")
	t.Setenv("RATE", "0.25")
	t.Setenv("ENABLED", "true")
	t.Setenv("INTERVAL", "45s")
	t.Setenv("TAGS", "a, b,c")

	var s sample
	require.NoError(t, NewEnvLoader("").Load(&s))

	assert.Equal(t, "verifier", s.Name)
	assert.Equal(t, 7, s.Count)
	assert.InDelta(t, 0.25, s.Rate, 0.0001)
	assert.True(t, s.Enabled)
	assert.Equal(t, 45*time.Second, s.Interval)
	assert.Equal(t, []string{"a", "b", "c"}, s.Tags)
	assert.Empty(t, s.Skipped)
	assert.Empty(t, s.untagged)
}

func TestEnvLoaderRejectsBadValues(t *testing.T) {
	type sample struct {
		Count int `json:"count"`
	}

	t.Setenv("COUNT", "not-a-number")

	var s sample
	require.Error(t, NewEnvLoader("").Load(&s))
}

func TestEnvLoaderRequiresStructPointer(t *testing.T) {
	var n int

	assert.ErrorIs(t, NewEnvLoader("").Load(nil), ErrDstMustBeNonNilPointer)
	assert.ErrorIs(t, NewEnvLoader("").Load(&n), ErrDstMustBePointerToStruct)
}