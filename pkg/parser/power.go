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
	register(models.DeviceTypeHPE, models.APIPowerHPE, parsePowerHPE)
	register(models.DeviceTypeCiscoIOS, models.APIPowerIOS, parsePowerIOS)
	register(models.DeviceTypeCiscoNXOS, models.APIPowerNXOS, parsePowerNXOS)
}

// parsePowerHPE reads `display power` output, grouped under Slot
// headers like the fan table:
//
//	Slot 1:
//	 PowerID State    Mode   Current(A)  Voltage(V)  Power(W)
//	 1       Normal   AC     --          --          450
//	 2       Absent   AC     --          --          --
func parsePowerHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "power_id", "status") {
		return powerFromCSV(raw)
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
		if len(fields) < 2 || !isDigits(fields[0]) {
			continue
		}

		id := "Power " + fields[0]
		if slot != "" {
			id = "Power " + slot + "/" + fields[0]
		}

		watts := 0
		if len(fields) >= 6 {
			watts = atoiDefault(fields[5], 0)
		}

		records = append(records, models.NewPowerRecord(id, fields[1], watts))
	}

	return records
}

// parsePowerIOS reads `show env power` tables:
//
//	SW  PID                 Serial#     Status           Sys Pwr  PoE Pwr  Watts
//	1A  PWR-C1-350WAC       DCB1636C1K0 OK               Good     Good     350
func parsePowerIOS(raw string) []models.Record {
	if looksLikeCSV(raw, "power_id", "status") {
		return powerFromCSV(raw)
	}

	var records []models.Record

	sawHeader := false

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)

		if !sawHeader {
			if len(fields) > 0 && (fields[0] == "SW" || strings.EqualFold(fields[0], "Slot")) {
				sawHeader = true
			}

			continue
		}

		if len(fields) < 4 {
			continue
		}

		watts := 0
		if last := fields[len(fields)-1]; isDigits(last) {
			watts = atoiDefault(last, 0)
		}

		records = append(records, models.NewPowerRecord("Power "+fields[0], fields[3], watts))
	}

	return records
}

// parsePowerNXOS reads `show environment power` supply tables:
//
//	Supply    Model                    Output     Capacity    Status
//	1         N9K-PAC-650W-B            104 W        650 W    Ok
func parsePowerNXOS(raw string) []models.Record {
	if looksLikeCSV(raw, "power_id", "status") {
		return powerFromCSV(raw)
	}

	var records []models.Record

	inTable := false

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)

		if !inTable {
			if len(fields) > 0 && strings.EqualFold(fields[0], "Supply") {
				inTable = true
			}

			continue
		}

		if len(fields) < 3 || !isDigits(fields[0]) {
			continue
		}

		watts := 0

		for i := 1; i < len(fields)-1; i++ {
			if fields[i+1] == "W" && isDigits(fields[i]) {
				watts = atoiDefault(fields[i], 0)
				break
			}
		}

		records = append(records, models.NewPowerRecord("Power "+fields[0], fields[len(fields)-1], watts))
	}

	return records
}

func powerFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 2 || row[0] == "" {
			continue
		}

		watts := 0
		if len(row) >= 3 {
			watts = atoiDefault(row[2], 0)
		}

		records = append(records, models.NewPowerRecord(row[0], row[1], watts))
	}

	return records
}
