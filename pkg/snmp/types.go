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

// Package snmp provides the SNMP transport for collection cycles: a
// gosnmp-backed engine, a deterministic mock engine for offline runs,
// and a per-cycle session cache (community probing, interface and
// bridge-port maps).
package snmp

import (
	"strconv"
	"strings"
	"time"
)

// Target is one addressable SNMP agent. Per-VLAN MAC table walks on
// IOS use a derived target whose community is "<community>@<vlan>".
type Target struct {
	IP        string
	Community string
	Port      uint16
	Timeout   time.Duration
	Retries   int
}

// WithCommunity returns a copy of the target using a different
// community string.
func (t Target) WithCommunity(community string) Target {
	t.Community = community
	return t
}

// VarBind is one decoded OID/value pair. Value holds a Go-native
// decoding: int64 for INTEGER, uint64 for the unsigned counter types,
// []byte for OCTET STRING, string for OID and IpAddress values.
type VarBind struct {
	OID   string
	Value any
}

// AsString renders the value as text regardless of wire type.
func (v VarBind) AsString() string {
	switch val := v.Value.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	default:
		return ""
	}
}

// AsInt returns the value as an int, or def when the value is not
// numeric.
func (v VarBind) AsInt(def int) int {
	switch val := v.Value.(type) {
	case int64:
		return int(val)
	case uint64:
		return int(val)
	case []byte:
		if n, err := strconv.Atoi(strings.TrimSpace(string(val))); err == nil {
			return n
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}

	return def
}

// AsUint returns the value as a uint64, or def.
func (v VarBind) AsUint(def uint64) uint64 {
	switch val := v.Value.(type) {
	case uint64:
		return val
	case int64:
		if val >= 0 {
			return uint64(val)
		}
	}

	return def
}

// AsBytes returns the raw octets, or nil for non-octet values.
func (v VarBind) AsBytes() []byte {
	if b, ok := v.Value.([]byte); ok {
		return b
	}

	return nil
}

// Index returns the OID suffix after the given table prefix, e.g.
// Index(".1.3.6.1.2.1.31.1.1.1.1.49", ifName) == "49". Empty when the
// OID is not under the prefix.
func (v VarBind) Index(prefix string) string {
	norm := NormalizeOID(prefix)

	if !strings.HasPrefix(v.OID, norm+".") {
		return ""
	}

	return strings.TrimPrefix(v.OID, norm+".")
}

// NormalizeOID guarantees the canonical leading-dot form gosnmp emits.
func NormalizeOID(oid string) string {
	if strings.HasPrefix(oid, ".") {
		return oid
	}

	return "." + oid
}
