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

// Package parser turns raw vendor output into typed records.
//
// Each parser registers itself from init() under a composite
// (device type, api name) key. The registry is complete after package
// initialization and is never mutated afterwards.
package parser

import (
	"errors"
	"fmt"
	"sync"

	"github.com/netswap/verifier/pkg/models"
)

// Parser is a stateless translator from raw device output to typed
// records. Parse never fails: unparseable input yields an empty list.
type Parser interface {
	DeviceType() models.DeviceType
	APIName() string
	Parse(raw string) []models.Record
}

// Key is the composite lookup key. DeviceTypeAny entries serve as the
// cross-vendor fallback.
type Key struct {
	DeviceType models.DeviceType
	APIName    string
}

// ErrParserNotFound indicates no parser is registered for the key,
// even after the DeviceTypeAny fallback.
var ErrParserNotFound = errors.New("no parser registered")

type registry struct {
	mu      sync.RWMutex
	parsers map[Key]Parser
}

var defaultRegistry = &registry{parsers: make(map[Key]Parser)}

// Register adds a parser to the process-wide registry. Registering two
// parsers under the same key is a programmer error and panics at
// startup; registration only ever happens from init().
func Register(p Parser) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()

	key := Key{DeviceType: p.DeviceType(), APIName: p.APIName()}
	if _, exists := defaultRegistry.parsers[key]; exists {
		panic(fmt.Sprintf("parser already registered for device_type=%q api_name=%q",
			key.DeviceType, key.APIName))
	}

	defaultRegistry.parsers[key] = p
}

// Get resolves (deviceType, apiName), trying the exact key first and
// falling back to the DeviceTypeAny entry for cross-vendor parsers.
func Get(deviceType models.DeviceType, apiName string) (Parser, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	if p, ok := defaultRegistry.parsers[Key{DeviceType: deviceType, APIName: apiName}]; ok {
		return p, true
	}

	p, ok := defaultRegistry.parsers[Key{DeviceType: models.DeviceTypeAny, APIName: apiName}]

	return p, ok
}

// GetOrError is the mandatory-lookup variant the collection services use.
func GetOrError(deviceType models.DeviceType, apiName string) (Parser, error) {
	p, ok := Get(deviceType, apiName)
	if !ok {
		return nil, fmt.Errorf("%w: device_type=%q api_name=%q", ErrParserNotFound, deviceType, apiName)
	}

	return p, nil
}

// APINames returns every registered api_name, for diagnostics.
func APINames() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	seen := make(map[string]bool)
	names := make([]string, 0, len(defaultRegistry.parsers))

	for key := range defaultRegistry.parsers {
		if !seen[key.APIName] {
			seen[key.APIName] = true
			names = append(names, key.APIName)
		}
	}

	return names
}

// funcParser adapts a bare parse function; most parsers in this
// package are stateless functions.
type funcParser struct {
	deviceType models.DeviceType
	apiName    string
	parse      func(raw string) []models.Record
}

func (f *funcParser) DeviceType() models.DeviceType   { return f.deviceType }
func (f *funcParser) APIName() string                 { return f.apiName }
func (f *funcParser) Parse(raw string) []models.Record { return f.parse(raw) }

func register(deviceType models.DeviceType, apiName string, parse func(raw string) []models.Record) {
	Register(&funcParser{deviceType: deviceType, apiName: apiName, parse: parse})
}
