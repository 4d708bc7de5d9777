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

package parser

import (
	"strings"

	"github.com/netswap/verifier/pkg/models"
)

func init() {
	register(models.DeviceTypeHPE, models.APIInterfaceStatusHPE, parseInterfaceStatusHPE)
	register(models.DeviceTypeCiscoIOS, models.APIInterfaceStatusIOS, parseInterfaceStatusCisco)
	register(models.DeviceTypeCiscoNXOS, models.APIInterfaceStatusNXOS, parseInterfaceStatusCisco)
}

// parseInterfaceStatusHPE reads `display interface brief` bridge-mode
// rows:
//
//	Interface            Link Speed   Duplex Type PVID Description
//	XGE1/0/49            UP   10G     F      T    1    uplink to core
//	GE1/0/1              DOWN auto    A      A    100
func parseInterfaceStatusHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "interface_name", "link_status") {
		return interfaceStatusFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 || strings.EqualFold(fields[0], "Interface") {
			continue
		}

		link := strings.ToUpper(fields[1])
		if link != "UP" && link != "DOWN" && link != "ADM" {
			continue
		}

		description := ""
		if len(fields) > 6 {
			description = strings.Join(fields[6:], " ")
		}

		records = append(records, models.NewInterfaceStatusRecord(
			fields[0], link, fields[2], fields[3], atoiDefault(fields[5], 0), description))
	}

	return records
}

// parseInterfaceStatusCisco reads `show interface status`:
//
//	Port      Name            Status       Vlan   Duplex  Speed Type
//	Gi1/0/1   server42        connected    100    a-full  a-1000 10/100/1000BaseTX
//	Gi1/0/2                   notconnect   1        auto   auto 10/100/1000BaseTX
//
// The Name column may be empty, so rows are parsed right-to-left from
// the fixed trailing columns.
func parseInterfaceStatusCisco(raw string) []models.Record {
	if looksLikeCSV(raw, "interface_name", "link_status") {
		return interfaceStatusFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 6 || strings.EqualFold(fields[0], "Port") {
			continue
		}

		// ... Status Vlan Duplex Speed Type
		n := len(fields)
		speed := normalizeCiscoSpeed(fields[n-2])
		duplex := fields[n-3]
		vlan := atoiDefault(fields[n-4], 0)
		status := fields[n-5]

		name := ""
		if n > 6 {
			name = strings.Join(fields[1:n-5], " ")
		}

		records = append(records, models.NewInterfaceStatusRecord(
			fields[0], status, speed, duplex, vlan, name))
	}

	return records
}

// normalizeCiscoSpeed folds auto-negotiated speed tokens (a-1000,
// a-10G) onto the plain display form.
func normalizeCiscoSpeed(s string) string {
	clean := strings.TrimPrefix(strings.ToLower(s), "a-")

	switch clean {
	case "10":
		return "10M"
	case "100":
		return "100M"
	case "1000":
		return "1G"
	case "10g":
		return "10G"
	case "25g":
		return "25G"
	case "40g":
		return "40G"
	case "100g":
		return "100G"
	case "auto":
		return "auto"
	default:
		return s
	}
}

func interfaceStatusFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 2 || row[0] == "" {
			continue
		}

		speed, duplex, description := "", "", ""
		vlan := 0

		if len(row) > 2 {
			speed = row[2]
		}

		if len(row) > 3 {
			duplex = row[3]
		}

		if len(row) > 4 {
			vlan = atoiDefault(row[4], 0)
		}

		if len(row) > 5 {
			description = row[5]
		}

		records = append(records, models.NewInterfaceStatusRecord(row[0], row[1], speed, duplex, vlan, description))
	}

	return records
}
