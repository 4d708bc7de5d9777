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
	register(models.DeviceTypeHPE, models.APITransceiverHPE, parseTransceiverHPE)
	register(models.DeviceTypeCiscoIOS, models.APITransceiverIOS, parseTransceiverCisco)
	register(models.DeviceTypeCiscoNXOS, models.APITransceiverNXOS, parseTransceiverCisco)
}

var hpeXcvrHeader = regexp.MustCompile(`^(\S+)\s+transceiver diagnostic information:`)

// parseTransceiverHPE reads `display transceiver diagnosis interface`.
// Single-lane optics have one value row; QSFP/QSFP-DD optics have a
// Lane column and one row per lane, each producing its own record.
//
//	Ten-GigabitEthernet1/0/49 transceiver diagnostic information:
//	  Current diagnostic parameters:
//	    Temp.(C) Voltage(V)  Bias(mA)  RX power(dBm)  TX power(dBm)
//	    36       3.31        6.13      -2.27          -2.67
//
//	FortyGigE1/0/54 transceiver diagnostic information:
//	  Current diagnostic parameters:
//	    Lane  Temp.(C)  Voltage(V)  Bias(mA)  RX power(dBm)  TX power(dBm)
//	    1     30        3.29        6.50      -1.56          -0.56
func parseTransceiverHPE(raw string) []models.Record {
	if looksLikeCSV(raw, "interface_name", "lane") {
		return transceiverFromCSV(raw)
	}

	var records []models.Record

	var (
		iface    string
		hasLanes bool
	)

	for _, line := range lines(raw) {
		if m := hpeXcvrHeader.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			iface = m[1]
			hasLanes = false

			continue
		}

		if iface == "" || isNoise(line) {
			continue
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "Lane") {
			hasLanes = true
			continue
		}

		if strings.HasPrefix(trimmed, "Temp.") || strings.HasPrefix(trimmed, "Current diagnostic") {
			continue
		}

		fields := strings.Fields(trimmed)

		if hasLanes {
			// Lane Temp Voltage Bias RX TX
			if len(fields) < 6 || !isDigits(fields[0]) {
				continue
			}

			records = append(records, models.TransceiverRecord{
				InterfaceName: iface,
				Lane:          atoiDefault(fields[0], 0),
				TemperatureC:  parseFloatPtr(fields[1]),
				VoltageV:      parseFloatPtr(fields[2]),
				RxPowerDBM:    parseFloatPtr(fields[4]),
				TxPowerDBM:    parseFloatPtr(fields[5]),
			})

			continue
		}

		// Temp Voltage Bias RX TX
		if len(fields) < 5 || parseFloatPtr(fields[0]) == nil {
			continue
		}

		records = append(records, models.TransceiverRecord{
			InterfaceName: iface,
			Lane:          1,
			TemperatureC:  parseFloatPtr(fields[0]),
			VoltageV:      parseFloatPtr(fields[1]),
			RxPowerDBM:    parseFloatPtr(fields[3]),
			TxPowerDBM:    parseFloatPtr(fields[4]),
		})
	}

	return records
}

// parseTransceiverCisco reads the DOM table shared by
// `show interfaces transceiver` on IOS and NX-OS. Multi-lane optics
// appear as "Et1/1/1" style rows with the lane in the trailing index
// or as repeated rows per lane.
//
//	                           Temperature  Voltage  Current   Tx Power  Rx Power
//	Port       Name            (Celsius)    (Volts)  (mA)      (dBm)     (dBm)
//	Te1/0/1                    29.5         3.28     6.1       -2.5      -3.1
func parseTransceiverCisco(raw string) []models.Record {
	if looksLikeCSV(raw, "interface_name", "lane") {
		return transceiverFromCSV(raw)
	}

	var records []models.Record

	laneCount := make(map[string]int)

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		// Data rows start with an interface token and carry numeric columns.
		temp := parseFloatPtr(fields[len(fields)-5])
		volt := parseFloatPtr(fields[len(fields)-4])
		tx := parseFloatPtr(fields[len(fields)-2])
		rx := parseFloatPtr(fields[len(fields)-1])

		if temp == nil && volt == nil && tx == nil && rx == nil {
			continue
		}

		iface := fields[0]
		if strings.EqualFold(iface, "Port") {
			continue
		}

		laneCount[iface]++

		records = append(records, models.TransceiverRecord{
			InterfaceName: iface,
			Lane:          laneCount[iface],
			TemperatureC:  temp,
			VoltageV:      volt,
			TxPowerDBM:    tx,
			RxPowerDBM:    rx,
		})
	}

	return records
}

func transceiverFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 2 || row[0] == "" {
			continue
		}

		rec := models.TransceiverRecord{
			InterfaceName: row[0],
			Lane:          atoiDefault(row[1], 1),
		}

		if len(row) > 2 {
			rec.TxPowerDBM = parseFloatPtr(row[2])
		}

		if len(row) > 3 {
			rec.RxPowerDBM = parseFloatPtr(row[3])
		}

		if len(row) > 4 {
			rec.TemperatureC = parseFloatPtr(row[4])
		}

		records = append(records, rec)
	}

	return records
}
