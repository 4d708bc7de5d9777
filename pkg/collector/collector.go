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

// Package collector implements the SNMP side of indicator collection:
// one collector per indicator, each walking the vendor-appropriate
// MIB tables and emitting the same typed records the CLI parsers do.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

// Collector gathers one indicator from one device. Implementations
// are stateless; per-cycle state lives in the session cache.
type Collector interface {
	APIName() string
	Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (raw string, records []models.Record, err error)
}

// ErrCollectorNotFound indicates the api_name has no SNMP collector;
// the SNMP service falls back to the API path for such indicators.
var ErrCollectorNotFound = errors.New("no collector registered")

var collectors = make(map[string]Collector)

// Register adds a collector under its api_name. Duplicate
// registration is a programmer error and panics at startup.
func Register(c Collector) {
	if _, exists := collectors[c.APIName()]; exists {
		panic(fmt.Sprintf("collector already registered for api_name=%q", c.APIName()))
	}

	collectors[c.APIName()] = c
}

// For resolves the collector for an api_name.
func For(apiName string) (Collector, bool) {
	c, ok := collectors[apiName]
	return c, ok
}

// APINames returns every api_name with an SNMP collector.
func APINames() []string {
	names := make([]string, 0, len(collectors))
	for name := range collectors {
		names = append(names, name)
	}

	return names
}

const retryBackoffUnit = time.Second

// CollectWithRetry runs a collector, retrying timeouts with linear
// backoff (1s, 2s, ...). Non-timeout errors fail immediately; a final
// timeout is reported as retry exhaustion.
func CollectWithRetry(
	ctx context.Context,
	c Collector,
	ip string,
	deviceType models.DeviceType,
	cache *snmp.SessionCache,
	maxRetries int,
) (string, []models.Record, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", nil, fmt.Errorf("%w: %w", snmp.ErrTimeout, ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoffUnit):
			}
		}

		raw, records, err := c.Collect(ctx, ip, deviceType, cache)
		if err == nil {
			return raw, records, nil
		}

		if !errors.Is(err, snmp.ErrTimeout) {
			return "", nil, err
		}

		lastErr = err
	}

	return "", nil, fmt.Errorf("all %d retries exhausted for %s on %s: %w",
		maxRetries, c.APIName(), ip, lastErr)
}
