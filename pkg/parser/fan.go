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
	register(models.DeviceTypeHPE, models.APIFanHPE, parseFanHPE)
	register(models.DeviceTypeCiscoIOS, models.APIFanIOS, parseFanIOS)
	register(models.DeviceTypeCiscoNXOS, models.APIFanNXOS, parseFanNXOS)
}

var hpeSlotHeader = regexp.MustCompile(`^\s*Slot\s+(\d+)`)

// parseFanHPE reads `display fan` output. Rows are grouped under
// "Slot N:" headers; fan IDs are rendered as "Fan <slot>/<id>".
//
//	Slot 1:
//	 FanID    State           Airflow Direction
//	 1        Normal          Back-to-front
//	 3        Absent          Back-to-front
func parseFanHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "fan_id", "status") {
		return fanFromCSV(raw)
	}

	var records []models.Record

	slot := ""

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		if m := hpeSlotHeader.FindStringSubmatch(line); m != nil {
			slot = m[1]
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		// Header rows name the columns instead of a numeric fan ID.
		if !isDigits(fields[0]) {
			continue
		}

		fanID := "Fan " + fields[0]
		if slot != "" {
			fanID = "Fan " + slot + "/" + fields[0]
		}

		records = append(records, models.NewFanRecord(fanID, fields[1]))
	}

	return records
}

var iosFanLine = regexp.MustCompile(`(?i)^\s*FAN(?:\s+in)?\s+(\S+)\s+is\s+(\S+)`)

// parseFanIOS reads `show env fan` style lines: "FAN 1 is OK",
// "FAN in PS-1 is NOT PRESENT".
func parseFanIOS(raw string) []models.Record {
	if looksLikeCSV(raw, "fan_id", "status") {
		return fanFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		m := iosFanLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		status := m[2]
		if strings.EqualFold(status, "NOT") && strings.Contains(strings.ToUpper(line), "NOT PRESENT") {
			status = "absent"
		}

		records = append(records, models.NewFanRecord("Fan "+strings.TrimSuffix(m[1], ","), status))
	}

	return records
}

// parseFanNXOS reads `show environment fan` tables:
//
//	Fan             Model                Hw     Status
//	Fan1(sys_fan1)  N9K-C9300-FAN2       --     Ok
func parseFanNXOS(raw string) []models.Record {
	if looksLikeCSV(raw, "fan_id", "status") {
		return fanFromCSV(raw)
	}

	var records []models.Record

	inTable := false

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)

		if !inTable {
			if len(fields) > 0 && strings.EqualFold(fields[0], "Fan") {
				inTable = true
			}

			continue
		}

		if len(fields) < 2 || !strings.HasPrefix(strings.ToLower(fields[0]), "fan") {
			continue
		}

		name := fields[0]
		if idx := strings.Index(name, "("); idx > 0 {
			name = name[:idx]
		}

		records = append(records, models.NewFanRecord(name, fields[len(fields)-1]))
	}

	return records
}

func fanFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 2 || row[0] == "" {
			continue
		}

		records = append(records, models.NewFanRecord(row[0], row[1]))
	}

	return records
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
