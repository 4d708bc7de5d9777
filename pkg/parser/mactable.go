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
	register(models.DeviceTypeHPE, models.APIMacTableHPE, parseMacTableHPE)
	register(models.DeviceTypeCiscoIOS, models.APIMacTableIOS, parseMacTableIOS)
	register(models.DeviceTypeCiscoNXOS, models.APIMacTableNXOS, parseMacTableNXOS)
}

// parseMacTableHPE reads `display mac-address`:
//
//	MAC Address      VLAN ID  State          Port/Nickname            Aging
//	0425-c5aa-01ff   100      Learned        XGE1/0/49                Y
func parseMacTableHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "mac_address", "vlan_id", "interface_name") {
		return macFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		rec, err := models.NewMacTableRecord(fields[0], atoiDefault(fields[1], 0), fields[3])
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}

// parseMacTableIOS reads `show mac address-table`:
//
//	Vlan    Mac Address       Type        Ports
//	----    -----------       --------    -----
//	 100    0425.c5aa.01ff    DYNAMIC     Gi1/0/1
func parseMacTableIOS(raw string) []models.Record {
	if looksLikeCSV(raw, "mac_address", "vlan_id", "interface_name") {
		return macFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		vlan := fields[0]
		if !isDigits(vlan) {
			continue
		}

		rec, err := models.NewMacTableRecord(fields[1], atoiDefault(vlan, 0), fields[3])
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}

// parseMacTableNXOS reads `show mac address-table`; rows carry a
// leading legend marker and the port in the last column:
//
//	* 100     0425.c5aa.01ff   dynamic  0         F      F    Eth1/1
func parseMacTableNXOS(raw string) []models.Record {
	if looksLikeCSV(raw, "mac_address", "vlan_id", "interface_name") {
		return macFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		trimmed := strings.TrimSpace(line)

		// Legend markers: *, +, G, C
		trimmed = strings.TrimLeft(trimmed, "*+GC ")

		fields := strings.Fields(trimmed)
		if len(fields) < 3 || !isDigits(fields[0]) {
			continue
		}

		rec, err := models.NewMacTableRecord(fields[1], atoiDefault(fields[0], 0), fields[len(fields)-1])
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}

func macFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 3 {
			continue
		}

		rec, err := models.NewMacTableRecord(row[0], atoiDefault(row[1], 0), row[2])
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}
