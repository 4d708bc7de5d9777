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

package snmp

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/netswap/verifier/pkg/logger"
)

// SessionCache is the per-cycle device memory: which community a
// device answers, its ifIndex → ifName map, and its bridge-port →
// ifIndex map. Each is resolved at most once per device per cycle;
// services construct a fresh cache at the start of every cycle.
type SessionCache struct {
	engine      Engine
	communities []string
	timeout     time.Duration
	retries     int
	logger      logger.Logger

	mu      sync.Mutex
	targets map[string]Target
	ifNames map[string]map[int]string
	bridge  map[string]map[int]int
}

// NewSessionCache builds a cache probing the given communities in
// order.
func NewSessionCache(engine Engine, communities []string, timeout time.Duration, retries int, log logger.Logger) *SessionCache {
	if len(communities) == 0 {
		communities = []string{"public"}
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &SessionCache{
		engine:      engine,
		communities: communities,
		timeout:     timeout,
		retries:     retries,
		logger:      log,
		targets:     make(map[string]Target),
		ifNames:     make(map[string]map[int]string),
		bridge:      make(map[string]map[int]int),
	}
}

// Engine exposes the underlying transport for callers that walk
// tables beyond the cached ones (per-VLAN bridge contexts).
func (c *SessionCache) Engine() Engine {
	return c.engine
}

// GetTarget resolves the working community for a device by probing
// sysObjectID.0 with each configured community in order. A timeout
// moves to the next community; exhausting the list yields ErrTimeout.
func (c *SessionCache) GetTarget(ctx context.Context, ip string) (Target, error) {
	c.mu.Lock()
	if t, ok := c.targets[ip]; ok {
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	var lastErr error

	for _, community := range c.communities {
		candidate := Target{
			IP:        ip,
			Community: community,
			Timeout:   c.timeout,
			Retries:   c.retries,
		}

		_, err := c.engine.Get(ctx, candidate, OIDSysObjectID)
		if err == nil {
			c.mu.Lock()
			c.targets[ip] = candidate
			c.mu.Unlock()

			return candidate, nil
		}

		lastErr = err

		c.logger.Debug().
			Str("ip", ip).
			Err(err).
			Msg("community probe failed, trying next")
	}

	return Target{}, fmt.Errorf("%w: %s: %w", ErrNoCommunity, ip, errOrTimeout(lastErr))
}

func errOrTimeout(err error) error {
	if err == nil {
		return ErrTimeout
	}

	return err
}

// IfIndexMap returns the device's ifIndex → ifName map, walking
// IF-MIB::ifName at most once per cycle.
func (c *SessionCache) IfIndexMap(ctx context.Context, ip string) (map[int]string, error) {
	c.mu.Lock()
	if m, ok := c.ifNames[ip]; ok {
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	target, err := c.GetTarget(ctx, ip)
	if err != nil {
		return nil, err
	}

	varbinds, err := c.engine.Walk(ctx, target, OIDIfName)
	if err != nil {
		return nil, err
	}

	m := make(map[int]string, len(varbinds))

	for _, vb := range varbinds {
		idx, convErr := strconv.Atoi(vb.Index(OIDIfName))
		if convErr != nil {
			continue
		}

		m[idx] = vb.AsString()
	}

	c.mu.Lock()
	c.ifNames[ip] = m
	c.mu.Unlock()

	return m, nil
}

// BridgePortMap returns the device's dot1dBasePort → ifIndex map,
// walking BRIDGE-MIB::dot1dBasePortIfIndex at most once per cycle.
func (c *SessionCache) BridgePortMap(ctx context.Context, ip string) (map[int]int, error) {
	c.mu.Lock()
	if m, ok := c.bridge[ip]; ok {
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	target, err := c.GetTarget(ctx, ip)
	if err != nil {
		return nil, err
	}

	varbinds, err := c.engine.Walk(ctx, target, OIDDot1dBasePortIfIndex)
	if err != nil {
		return nil, err
	}

	m := make(map[int]int, len(varbinds))

	for _, vb := range varbinds {
		port, convErr := strconv.Atoi(vb.Index(OIDDot1dBasePortIfIndex))
		if convErr != nil {
			continue
		}

		m[port] = vb.AsInt(0)
	}

	c.mu.Lock()
	c.bridge[ip] = m
	c.mu.Unlock()

	return m, nil
}

// Clear drops every cached entry. Cycles that reuse a cache object
// call this instead of allocating a new one.
func (c *SessionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.targets = make(map[string]Target)
	c.ifNames = make(map[string]map[int]string)
	c.bridge = make(map[string]map[int]int)
}
