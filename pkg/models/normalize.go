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

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// VLANMin and VLANMax bound usable 802.1Q VLAN IDs.
	VLANMin = 1
	VLANMax = 4094

	macHexDigits = 12
)

var (
	// ErrInvalidMAC indicates the input is not a recognizable MAC address.
	ErrInvalidMAC = errors.New("invalid MAC address")
	// ErrInvalidVLAN indicates a VLAN ID outside 1-4094.
	ErrInvalidVLAN = errors.New("VLAN ID out of range")
)

// NormalizeMAC maps vendor MAC spellings onto the canonical
// upper-case colon-separated form AA:BB:CC:DD:EE:FF. Accepted inputs:
// HPE aabb-ccdd-eeff, Cisco aabb.ccdd.eeff, aa-bb-cc-dd-ee-ff,
// aa:bb:cc:dd:ee:ff, and bare aabbccddeeff. Idempotent.
func NormalizeMAC(s string) (string, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidMAC)
	}

	var hexDigits strings.Builder

	for _, r := range clean {
		switch {
		case r >= '0' && r <= '9':
			hexDigits.WriteRune(r)
		case r >= 'a' && r <= 'f':
			hexDigits.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'F':
			hexDigits.WriteRune(r)
		case r == ':' || r == '-' || r == '.':
			// separator, drop
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidMAC, s)
		}
	}

	hex := hexDigits.String()
	if len(hex) != macHexDigits {
		return "", fmt.Errorf("%w: %q", ErrInvalidMAC, s)
	}

	parts := make([]string, 0, 6)
	for i := 0; i < macHexDigits; i += 2 {
		parts = append(parts, hex[i:i+2])
	}

	return strings.Join(parts, ":"), nil
}

// ValidateVLAN checks the usable 802.1Q range.
func ValidateVLAN(id int) error {
	if id < VLANMin || id > VLANMax {
		return fmt.Errorf("%w: %d", ErrInvalidVLAN, id)
	}

	return nil
}

// Operational status values.
const (
	StatusOK      = "ok"
	StatusGood    = "good"
	StatusNormal  = "normal"
	StatusOnline  = "online"
	StatusActive  = "active"
	StatusFail    = "fail"
	StatusAbsent  = "absent"
	StatusUnknown = "unknown"
)

// NormalizeOperStatus folds vendor status words onto the closed
// operational status set.
func NormalizeOperStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok":
		return StatusOK
	case "good":
		return StatusGood
	case "normal", "normal state":
		return StatusNormal
	case "online", "on":
		return StatusOnline
	case "active":
		return StatusActive
	case "fail", "failed", "failure", "faulty", "fault", "critical", "shutdown":
		return StatusFail
	case "absent", "not present", "notpresent", "n/a", "--":
		return StatusAbsent
	default:
		return StatusUnknown
	}
}

// Link status values.
const (
	LinkUp      = "up"
	LinkDown    = "down"
	LinkUnknown = "unknown"
)

// NormalizeLinkStatus folds vendor link words onto {up, down, unknown}.
func NormalizeLinkStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "connected", "1":
		return LinkUp
	case "down", "notconnect", "notconnected", "disabled", "adm", "admin down", "err-disabled", "2":
		return LinkDown
	default:
		return LinkUnknown
	}
}

// Duplex values.
const (
	DuplexFull    = "full"
	DuplexHalf    = "half"
	DuplexAuto    = "auto"
	DuplexUnknown = "unknown"
)

// NormalizeDuplex folds vendor duplex words onto {full, half, auto, unknown}.
func NormalizeDuplex(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "f", "a-full", "full(a)":
		return DuplexFull
	case "half", "h", "a-half", "half(a)":
		return DuplexHalf
	case "auto", "a":
		return DuplexAuto
	default:
		return DuplexUnknown
	}
}

// Aggregation protocol values.
const (
	AggLACP   = "lacp"
	AggStatic = "static"
	AggPAgP   = "pagp"
	AggNone   = "none"
)

// NormalizeAggProtocol folds vendor aggregation words onto
// {lacp, static, pagp, none}.
func NormalizeAggProtocol(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lacp", "dynamic", "d", "s-d":
		return AggLACP
	case "static", "on", "manual", "s":
		return AggStatic
	case "pagp", "desirable", "auto-pagp":
		return AggPAgP
	default:
		return AggNone
	}
}

// Interface prefix aliases for join keys. Vendors abbreviate the same
// port differently (GigabitEthernet1/0/1, GE1/0/1, Gi1/0/1); the key
// folds each family onto one token so cross-source joins line up.
var ifPrefixAliases = map[string]string{
	"fastethernet":          "fa",
	"fa":                    "fa",
	"gigabitethernet":       "gi",
	"gi":                    "gi",
	"ge":                    "gi",
	"tengigabitethernet":    "te",
	"ten-gigabitethernet":   "te",
	"te":                    "te",
	"xge":                   "te",
	"twentyfivegige":        "twe",
	"twe":                   "twe",
	"fortygige":             "fo",
	"fo":                    "fo",
	"hundredgige":           "hu",
	"hu":                    "hu",
	"ethernet":              "eth",
	"eth":                   "eth",
	"port-channel":          "po",
	"po":                    "po",
	"bridge-aggregation":    "po",
	"bagg":                  "po",
	"route-aggregation":     "po",
	"vlan":                  "vlan",
	"vlan-interface":        "vlan",
	"loopback":              "lo",
	"lo":                    "lo",
	"mgmt":                  "mgmt",
	"management":            "mgmt",
	"m-gigabitethernet":     "mgmt",
	"gigabitethernet-mgmt":  "mgmt",
}

// InterfaceKey canonicalizes an interface name for joining records
// from different sources. Unknown prefixes pass through lowercased.
func InterfaceKey(name string) string {
	trimmed := strings.TrimSpace(name)

	split := len(trimmed)

	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			split = i
			break
		}
	}

	prefix := strings.ToLower(trimmed[:split])
	rest := trimmed[split:]

	if alias, ok := ifPrefixAliases[prefix]; ok {
		return alias + rest
	}

	return prefix + rest
}

// FormatSpeed renders an ifHighSpeed Mbps value the way operators read
// it: 10M / 100M / 1G / 10G / 25G / 40G / 100G. Values that do not land
// on a named tier render as raw Mbps or fractional G.
func FormatSpeed(mbps uint64) string {
	switch {
	case mbps == 0:
		return "unknown"
	case mbps < 1000:
		return fmt.Sprintf("%dM", mbps)
	case mbps%1000 == 0:
		return fmt.Sprintf("%dG", mbps/1000)
	default:
		return fmt.Sprintf("%.1fG", float64(mbps)/1000)
	}
}
