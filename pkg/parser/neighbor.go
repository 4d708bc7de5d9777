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
	"regexp"
	"strings"

	"github.com/netswap/verifier/pkg/models"
)

func init() {
	register(models.DeviceTypeHPE, models.APINeighborHPE, parseNeighborHPE)
	register(models.DeviceTypeCiscoIOS, models.APINeighborIOS, parseNeighborCiscoCDP)
	register(models.DeviceTypeCiscoNXOS, models.APINeighborNXOS, parseNeighborCiscoCDP)
}

// parseNeighborHPE reads `display lldp neighbor-information list`:
//
//	System Name          Local Interface Chassis ID      Port ID
//	core-01              XGE1/0/49       00e0-fc00-0001  Ten-GigabitEthernet1/1/1
//
// Entries missing any of the three essential fields are dropped.
func parseNeighborHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "local_interface", "remote_hostname", "remote_interface") {
		return neighborFromCSV(raw, "lldp")
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 || strings.EqualFold(fields[0], "System") {
			continue
		}

		rec, err := models.NewNeighborRecord(fields[1], fields[0], fields[3], "lldp")
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}

var (
	cdpDeviceID  = regexp.MustCompile(`(?m)^Device ID:\s*(\S+)`)
	cdpInterface = regexp.MustCompile(`(?m)^Interface:\s*([^,\s]+),\s*Port ID \(outgoing port\):\s*(\S+)`)
)

// parseNeighborCiscoCDP reads `show cdp neighbors detail`, one block
// per neighbor separated by dashed rules. The remote hostname is
// truncated at the first dot (CDP advertises FQDNs).
func parseNeighborCiscoCDP(raw string) []models.Record {
	if looksLikeCSV(raw, "local_interface", "remote_hostname", "remote_interface") {
		return neighborFromCSV(raw, "cdp")
	}

	var records []models.Record

	for _, block := range strings.Split(raw, "-------------------------") {
		device := cdpDeviceID.FindStringSubmatch(block)
		iface := cdpInterface.FindStringSubmatch(block)

		if device == nil || iface == nil {
			continue
		}

		remote := device[1]
		if idx := strings.Index(remote, "."); idx > 0 {
			remote = remote[:idx]
		}

		rec, err := models.NewNeighborRecord(iface[1], remote, iface[2], "cdp")
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}

func neighborFromCSV(raw, protocol string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 3 {
			continue
		}

		rec, err := models.NewNeighborRecord(row[0], row[1], row[2], protocol)
		if err != nil {
			continue
		}

		records = append(records, rec)
	}

	return records
}
