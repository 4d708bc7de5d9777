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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/netswap/verifier/pkg/fetcher"
	"github.com/netswap/verifier/pkg/models"
)

// Collection modes.
const (
	ModeAPI  = "api"
	ModeSNMP = "snmp"
)

var (
	ErrInvalidCollectionMode = errors.New("collection_mode must be api or snmp")
	ErrInvalidEndpointSpec   = errors.New("endpoint spec must be source:path_template")
)

// Dynamic environment key prefixes. Double underscores separate the
// dynamic segment from the field: FETCHER_ENDPOINT__GET_FAN_HPE_DNA,
// FETCHER_SOURCE__DNA__BASE_URL, FETCHER_SOURCE__DNA__TIMEOUT.
const (
	envEndpointPrefix = "FETCHER_ENDPOINT__"
	envSourcePrefix   = "FETCHER_SOURCE__"

	envSourceBaseURLSuffix = "__BASE_URL"
	envSourceTimeoutSuffix = "__TIMEOUT"

	defaultSourceName   = "default"
	defaultPathTemplate = "/api/v1/%s/{switch_ip}"
)

// Config is the process configuration, filled from the environment.
type Config struct {
	CollectionMode     string        `json:"collection_mode"`
	MaintenanceID      string        `json:"maintenance_id"`
	CollectionInterval time.Duration `json:"collection_interval"`

	SNMPMock             bool          `json:"snmp_mock"`
	SNMPCommunityList    []string      `json:"snmp_community_list"`
	SNMPMaxRepetitions   int           `json:"snmp_max_repetitions"`
	SNMPWalkTimeout      time.Duration `json:"snmp_walk_timeout"`
	SNMPConcurrency      int64         `json:"snmp_concurrency"`
	SNMPCollectorRetries int           `json:"snmp_collector_retries"`

	ExternalAPIServer string `json:"external_api_server"`
	UseMockAPI        bool   `json:"use_mock_api"`
	TenantGroup       string `json:"tenant_group"`

	DatabaseURL string `json:"database_url"`
	LogLevel    string `json:"log_level"`

	Fetcher fetcher.Config `json:"-"`
}

// Default returns the configuration used when the environment sets
// nothing.
func Default() *Config {
	return &Config{
		CollectionMode:       ModeAPI,
		CollectionInterval:   5 * time.Minute,
		SNMPCommunityList:    []string{"public"},
		SNMPMaxRepetitions:   25,
		SNMPWalkTimeout:      5 * time.Second,
		SNMPConcurrency:      16,
		SNMPCollectorRetries: 2,
		LogLevel:             "info",
	}
}

// Load reads the configuration from the environment on top of the
// defaults and assembles the fetcher endpoint/source tables.
func Load() (*Config, error) {
	cfg := Default()

	if err := NewEnvLoader("").Load(cfg); err != nil {
		return nil, err
	}

	if cfg.CollectionMode != ModeAPI && cfg.CollectionMode != ModeSNMP {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCollectionMode, cfg.CollectionMode)
	}

	fc, err := loadFetcherConfig(os.Environ(), cfg.ExternalAPIServer)
	if err != nil {
		return nil, err
	}

	cfg.Fetcher = fc

	return cfg, nil
}

// loadFetcherConfig builds the endpoint and source tables from the
// dynamic FETCHER_* keys. When EXTERNAL_API_SERVER is set, every known
// indicator gets a default endpoint on that server, which explicit
// FETCHER_ENDPOINT__ keys then override.
func loadFetcherConfig(environ []string, externalAPIServer string) (fetcher.Config, error) {
	fc := fetcher.Config{
		Endpoints: make(map[string]fetcher.EndpointConfig),
		Sources:   make(map[string]fetcher.SourceConfig),
	}

	if externalAPIServer != "" {
		fc.Sources[defaultSourceName] = fetcher.SourceConfig{BaseURL: externalAPIServer}

		for _, apiName := range models.AllAPINames {
			fc.Endpoints[apiName] = fetcher.EndpointConfig{
				PathTemplate: fmt.Sprintf(defaultPathTemplate, apiName),
				Source:       defaultSourceName,
			}
		}
	}

	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || value == "" {
			continue
		}

		switch {
		case strings.HasPrefix(key, envEndpointPrefix):
			apiName := strings.ToLower(strings.TrimPrefix(key, envEndpointPrefix))

			endpoint, err := parseEndpointSpec(key, value)
			if err != nil {
				return fetcher.Config{}, err
			}

			fc.Endpoints[apiName] = endpoint

		case strings.HasPrefix(key, envSourcePrefix):
			if err := applySourceKey(fc.Sources, key, value); err != nil {
				return fetcher.Config{}, err
			}
		}
	}

	return fc, nil
}

// parseEndpointSpec reads "source:path_template".
func parseEndpointSpec(key, value string) (fetcher.EndpointConfig, error) {
	source, path, found := strings.Cut(value, ":")
	if !found || source == "" || path == "" {
		return fetcher.EndpointConfig{}, fmt.Errorf("%w: %s=%q", ErrInvalidEndpointSpec, key, value)
	}

	return fetcher.EndpointConfig{PathTemplate: path, Source: strings.ToLower(source)}, nil
}

func applySourceKey(sources map[string]fetcher.SourceConfig, key, value string) error {
	rest := strings.TrimPrefix(key, envSourcePrefix)

	var (
		name  string
		field string
	)

	switch {
	case strings.HasSuffix(rest, envSourceBaseURLSuffix):
		name = strings.TrimSuffix(rest, envSourceBaseURLSuffix)
		field = "base_url"
	case strings.HasSuffix(rest, envSourceTimeoutSuffix):
		name = strings.TrimSuffix(rest, envSourceTimeoutSuffix)
		field = "timeout"
	default:
		// Unknown source field, ignore.
		return nil
	}

	name = strings.ToLower(name)
	src := sources[name]

	switch field {
	case "base_url":
		src.BaseURL = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}

		src.Timeout = d
	}

	sources[name] = src

	return nil
}
