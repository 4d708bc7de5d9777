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
	register(models.DeviceTypeAny, models.APIPingBatch, parsePingBatch)
	register(models.DeviceTypeAny, models.APIGnmsPing, parseGnmsPing)
}

// parsePingBatch reads the collector API's batched probe CSV:
//
//	hostname,ip,reachable,rtt_ms
//	client-42,10.1.2.3,true,0.82
func parsePingBatch(raw string) []models.Record {
	if !looksLikeCSV(raw, "hostname", "ip") {
		return nil
	}

	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 3 || row[1] == "" {
			continue
		}

		rec := models.PingRecord{
			Hostname:  row[0],
			IPAddress: row[1],
			Reachable: parseBool(row[2]),
		}

		if len(row) > 3 {
			rec.RTTMillis = parseFloatPtr(row[3])
		}

		records = append(records, rec)
	}

	return records
}

// parseGnmsPing reads single-target probe results, one per line:
//
//	10.1.2.3 alive 0.82
//	10.1.2.4 unreachable
func parseGnmsPing(raw string) []models.Record {
	if looksLikeCSV(raw, "hostname", "ip") {
		return parsePingBatch(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 || strings.Count(fields[0], ".") != 3 {
			continue
		}

		rec := models.PingRecord{
			IPAddress: fields[0],
			Reachable: parseBool(fields[1]) || strings.EqualFold(fields[1], "alive"),
		}

		if len(fields) > 2 {
			rec.RTTMillis = parseFloatPtr(fields[2])
		}

		records = append(records, rec)
	}

	return records
}
