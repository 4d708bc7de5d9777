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

package collector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

// FormatRaw renders walked varbinds as the batch raw_data payload, a
// readable one-line-per-varbind dump.
func FormatRaw(apiName, ip string, deviceType models.DeviceType, varbinds []snmp.VarBind) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s ip=%s device_type=%s\n", apiName, ip, deviceType)

	for _, vb := range varbinds {
		fmt.Fprintf(&b, "%s = %s\n", vb.OID, vb.AsString())
	}

	return b.String()
}

// nonPhysicalPrefixes name interface classes that never carry client
// or uplink traffic directly and are excluded from port-level
// indicators.
var nonPhysicalPrefixes = []string{
	"loopback", "vlan", "null", "tunnel", "mgmt",
	"cpu", "stack", "register", "aux", "inloopback",
}

func isPhysicalInterface(name string) bool {
	if name == "" {
		return false
	}

	lower := strings.ToLower(name)
	for _, prefix := range nonPhysicalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}

	return true
}

// macFromDecimalOctets renders six decimal OID index components as a
// canonical MAC string.
func macFromDecimalOctets(parts []string) (string, error) {
	if len(parts) != 6 {
		return "", fmt.Errorf("%w: %d octets", models.ErrInvalidMAC, len(parts))
	}

	hexParts := make([]string, 6)

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return "", fmt.Errorf("%w: octet %q", models.ErrInvalidMAC, p)
		}

		hexParts[i] = fmt.Sprintf("%02X", n)
	}

	return strings.Join(hexParts, ":"), nil
}

// scaleFactor converts a CISCO-ENTITY-SENSOR scale enum to the
// multiplier that yields base units (9 = units, 8 = milli, ...).
func scaleFactor(scale int) float64 {
	switch scale {
	case 7: // micro
		return 1e-6
	case 8: // milli
		return 1e-3
	case 9: // units
		return 1
	case 10: // kilo
		return 1e3
	default:
		return 1
	}
}

func floatPtr(f float64) *float64 { return &f }
