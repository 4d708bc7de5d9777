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

// Package fetcher retrieves raw indicator output from the external
// collector APIs. One generic template-driven fetcher serves every
// API-mode indicator.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
)

// SourceConfig names one external collector API server.
type SourceConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// EndpointConfig binds an indicator to a path template on a source.
type EndpointConfig struct {
	PathTemplate string `json:"path_template"`
	Source       string `json:"source"`
}

// Config is the full fetcher surface, keyed by api_name and source
// name respectively.
type Config struct {
	Endpoints map[string]EndpointConfig `json:"endpoints"`
	Sources   map[string]SourceConfig   `json:"sources"`
}

// Fetcher retrieves one indicator's raw output for one device. vars
// carry the fixed placeholder vocabulary, params the ad-hoc per-call
// keys; params win on collision and unconsumed keys become query
// parameters.
type Fetcher interface {
	Fetch(ctx context.Context, apiName string, vars, params map[string]string) (string, error)
}

var (
	// ErrEndpointNotConfigured indicates the api_name has no endpoint
	// entry.
	ErrEndpointNotConfigured = errors.New("no endpoint configured")
	// ErrSourceNotConfigured indicates an endpoint references an
	// undefined source group.
	ErrSourceNotConfigured = errors.New("no source configured")
	// ErrMissingPlaceholder indicates the path template references a key
	// absent from the merged variable map.
	ErrMissingPlaceholder = errors.New("unresolved placeholder")
	// ErrUnexpectedStatus indicates a non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

const defaultSourceTimeout = 10 * time.Second

// DeviceVars builds the fixed placeholder set for a device. {ip} is an
// alias of {switch_ip}.
func DeviceVars(hostname, ip string, deviceType models.DeviceType, tenantGroup string) map[string]string {
	return map[string]string{
		"switch_ip":    ip,
		"ip":           ip,
		"hostname":     hostname,
		"device_type":  string(deviceType),
		"tenant_group": tenantGroup,
	}
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// HTTPFetcher performs GET requests against configured sources with
// one pooled client per source.
type HTTPFetcher struct {
	endpoints map[string]EndpointConfig
	sources   map[string]SourceConfig
	clients   map[string]*http.Client
	logger    logger.Logger
}

// NewHTTPFetcher builds the fetcher and its per-source clients.
func NewHTTPFetcher(cfg Config, log logger.Logger) *HTTPFetcher {
	clients := make(map[string]*http.Client, len(cfg.Sources))

	for name, source := range cfg.Sources {
		timeout := source.Timeout
		if timeout <= 0 {
			timeout = defaultSourceTimeout
		}

		clients[name] = &http.Client{Timeout: timeout}
	}

	return &HTTPFetcher{
		endpoints: cfg.Endpoints,
		sources:   cfg.Sources,
		clients:   clients,
		logger:    log,
	}
}

// Fetch resolves the endpoint, substitutes placeholders, and performs
// the GET. Any failure comes back as an error with empty output; Fetch
// never panics.
func (f *HTTPFetcher) Fetch(ctx context.Context, apiName string, vars, params map[string]string) (string, error) {
	endpoint, ok := f.endpoints[apiName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrEndpointNotConfigured, apiName)
	}

	source, ok := f.sources[endpoint.Source]
	if !ok {
		return "", fmt.Errorf("%w: %s (endpoint %s)", ErrSourceNotConfigured, endpoint.Source, apiName)
	}

	merged := make(map[string]string, len(vars)+len(params))
	for k, v := range vars {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}

	path, consumed, err := expandTemplate(endpoint.PathTemplate, merged)
	if err != nil {
		return "", fmt.Errorf("endpoint %s: %w", apiName, err)
	}

	requestURL := strings.TrimRight(source.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")

	query := url.Values{}

	for k, v := range merged {
		if consumed[k] || v == "" {
			continue
		}

		// {ip} is an alias of {switch_ip}; don't emit it twice.
		if k == "ip" && merged["switch_ip"] == v {
			continue
		}

		query.Set(k, v)
	}

	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", apiName, err)
	}

	client := f.clients[endpoint.Source]

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s from %s: %w", apiName, endpoint.Source, err)
	}
	defer f.closeBody(resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: %d fetching %s", ErrUnexpectedStatus, resp.StatusCode, apiName)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s response: %w", apiName, err)
	}

	return string(body), nil
}

func (f *HTTPFetcher) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		f.logger.Warn().Err(err).Msg("failed to close response body")
	}
}

// expandTemplate substitutes {key} placeholders from the merged map
// and reports which keys were consumed. A placeholder with no value is
// an error; templates are static configuration and a hole in one is a
// config defect, not a per-device condition.
func expandTemplate(template string, merged map[string]string) (string, map[string]bool, error) {
	consumed := make(map[string]bool)

	var missing []string

	path := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]

		value, ok := merged[key]
		if !ok {
			missing = append(missing, key)
			return match
		}

		consumed[key] = true

		return url.PathEscape(value)
	})

	if len(missing) > 0 {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingPlaceholder, strings.Join(missing, ", "))
	}

	return path, consumed, nil
}
