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
	// One cross-vendor parser: Cisco and HPE layouts are distinguished
	// per line. Incomplete entries are skipped.
	register(models.DeviceTypeAny, models.APIArp, parseArp)
}

// parseArp handles both layouts:
//
// Cisco `show ip arp`:
//
//	Protocol  Address     Age (min)  Hardware Addr   Type   Interface
//	Internet  10.0.0.1           0   0425.c5aa.01ff  ARPA   Vlan100
//	Internet  10.0.0.9           -   Incomplete      ARPA
//
// HPE `display arp`:
//
//	IP address      MAC address     VLAN/VSI name Interface   Aging Type
//	10.0.0.1        0425-c5aa-01ff  100           XGE1/0/49   19    D
func parseArp(raw string) []models.Record {
	if looksLikeCSV(raw, "ip_address", "mac_address") {
		return arpFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		var ip, mac, vlanField string

		if strings.EqualFold(fields[0], "Internet") {
			// Cisco layout
			if len(fields) < 4 {
				continue
			}

			ip, mac = fields[1], fields[3]

			vlanField = ""
			if len(fields) >= 6 {
				vlanField = strings.TrimPrefix(fields[5], "Vlan")
			}
		} else if strings.Count(fields[0], ".") == 3 {
			// HPE layout
			ip, mac, vlanField = fields[0], fields[1], fields[2]
		} else {
			continue
		}

		rec, err := models.NewArpRecord(ip, mac, atoiDefault(vlanField, 0), "")
		if err != nil {
			// Covers "Incomplete" hardware addresses.
			continue
		}

		records = append(records, rec)
	}

	return records
}

func arpFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 2 {
			continue
		}

		vlan := 0
		if len(row) > 2 {
			vlan = atoiDefault(row[2], 0)
		}

		source := ""
		if len(row) > 3 {
			source = row[3]
		}

		rec, err := models.NewArpRecord(row[0], row[1], vlan, source)
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}
