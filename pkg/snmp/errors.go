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
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrTimeout marks a request the agent never answered. Collectors
	// retry on this kind; everything else fails the device immediately.
	ErrTimeout = errors.New("snmp request timed out")

	// ErrSNMP is the generic kind for protocol-level failures.
	ErrSNMP = errors.New("snmp request failed")

	// ErrNoCommunity indicates every configured community was tried and
	// none was accepted by the agent.
	ErrNoCommunity = errors.New("no community accepted")
)

// classify folds transport errors onto the package's two error kinds.
// gosnmp reports read timeouts as plain formatted errors, so the
// net.Error check is backed by a message probe.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrSNMP, err)
}
