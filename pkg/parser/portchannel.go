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
	register(models.DeviceTypeHPE, models.APIPortChannelHPE, parsePortChannelHPE)
	register(models.DeviceTypeCiscoIOS, models.APIPortChannelIOS, parsePortChannelCisco)
	register(models.DeviceTypeCiscoNXOS, models.APIPortChannelNXOS, parsePortChannelCisco)
}

var (
	hpeAggHeader = regexp.MustCompile(`^Aggregate Interface:\s*(\S+)`)
	hpeAggMode   = regexp.MustCompile(`^Aggregation Mode:\s*(\S+)`)
)

// parsePortChannelHPE reads `display link-aggregation verbose`.
// Member status S (selected) maps to up, U (unselected) to down.
//
//	Aggregate Interface: Bridge-Aggregation1
//	Aggregation Mode: Dynamic
//	  Port             Status  Priority Oper-Key  Flag
//	  XGE1/0/49        S       32768    1         {ACDEF}
//	  XGE1/0/50        U       32768    1         {AC}
func parsePortChannelHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "port_channel_name", "member_name") {
		return portChannelFromCSV(raw)
	}

	var records []models.Record

	channel, protocol := "", ""

	for _, line := range lines(raw) {
		trimmed := strings.TrimSpace(line)

		if m := hpeAggHeader.FindStringSubmatch(trimmed); m != nil {
			channel = m[1]
			protocol = ""

			continue
		}

		if m := hpeAggMode.FindStringSubmatch(trimmed); m != nil {
			protocol = m[1] // Dynamic = LACP, Static = manual
			continue
		}

		if channel == "" || isNoise(line) {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 2 || strings.EqualFold(fields[0], "Port") {
			continue
		}

		sync := "down"
		if fields[1] == "S" {
			sync = "up"
		}

		records = append(records, models.NewPortChannelMemberRecord(channel, fields[0], sync, protocol))
	}

	return records
}

var (
	ciscoPoName   = regexp.MustCompile(`^Po(\d+)\(([^)]*)\)$`)
	ciscoPoMember = regexp.MustCompile(`^(\S+?)\(([^)]*)\)$`)
)

// parsePortChannelCisco reads `show etherchannel summary` (IOS) and
// `show port-channel summary` (NX-OS). Member flag P (bundled) maps to
// up; everything else (D, I, s, H, w) to down.
//
//	Group  Port-channel  Protocol    Ports
//	------+-------------+-----------+------------------------------
//	1      Po1(SU)         LACP      Gi1/0/49(P) Gi1/0/50(D)
func parsePortChannelCisco(raw string) []models.Record {
	if looksLikeCSV(raw, "port_channel_name", "member_name") {
		return portChannelFromCSV(raw)
	}

	var records []models.Record

	channel, protocol := "", ""

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.EqualFold(fields[0], "Group") {
			continue
		}

		start := 0

		// Rows starting with a group number open a new channel; wrapped
		// continuation rows carry members only.
		if isDigits(fields[0]) && len(fields) >= 3 {
			m := ciscoPoName.FindStringSubmatch(fields[1])
			if m == nil {
				continue
			}

			channel = "Po" + m[1]

			// NX-OS inserts a Type column before Protocol.
			protocol = fields[2]
			start = 3

			if protocol == "Eth" && len(fields) > 3 {
				protocol = fields[3]
				start = 4
			}
		}

		if channel == "" {
			continue
		}

		for _, tok := range fields[start:] {
			m := ciscoPoMember.FindStringSubmatch(tok)
			if m == nil || strings.HasPrefix(m[1], "Po") {
				continue
			}

			sync := "down"
			if strings.Contains(m[2], "P") {
				sync = "up"
			}

			records = append(records, models.NewPortChannelMemberRecord(channel, m[1], sync, protocol))
		}
	}

	return records
}

func portChannelFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 2 {
			continue
		}

		sync, protocol := "", ""

		if len(row) > 2 {
			sync = row[2]
		}

		if len(row) > 3 {
			protocol = row[3]
		}

		records = append(records, models.NewPortChannelMemberRecord(row[0], row[1], sync, protocol))
	}

	return records
}
