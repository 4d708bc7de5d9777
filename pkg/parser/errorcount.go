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
	"strconv"
	"strings"

	"github.com/netswap/verifier/pkg/models"
)

func init() {
	register(models.DeviceTypeAny, models.APIErrorCount, parseErrorCounts)
}

// parseErrorCounts reads `show interfaces counters errors` style
// tables; the first column is the port, the remaining columns are
// counters in the order Align/FCS, Xmit, Rcv:
//
//	Port        Align-Err   FCS-Err    Xmit-Err    Rcv-Err
//	Gi1/0/1             0         3           0          1
func parseErrorCounts(raw string) []models.Record {
	if looksLikeCSV(raw, "interface_name", "in_errors") {
		return errorCountFromCSV(raw)
	}

	var records []models.Record

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 || strings.EqualFold(fields[0], "Port") {
			continue
		}

		counters := make([]uint64, 0, len(fields)-1)
		numeric := true

		for _, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				numeric = false
				break
			}

			counters = append(counters, v)
		}

		if !numeric || len(counters) < 3 {
			continue
		}

		// Align-Err + FCS-Err fold into CRC; Xmit-Err is out, Rcv-Err is in.
		rec := models.ErrorCountRecord{InterfaceName: fields[0], CRCErrors: counters[0]}

		if len(counters) >= 4 {
			rec.CRCErrors += counters[1]
			rec.OutErrors = counters[2]
			rec.InErrors = counters[3]
		} else {
			rec.OutErrors = counters[1]
			rec.InErrors = counters[2]
		}

		records = append(records, rec)
	}

	return records
}

func errorCountFromCSV(raw string) []models.Record {
	var records []models.Record

	for _, row := range csvRows(raw) {
		if len(row) < 3 || row[0] == "" {
			continue
		}

		rec := models.ErrorCountRecord{InterfaceName: row[0]}

		if v, err := strconv.ParseUint(row[1], 10, 64); err == nil {
			rec.InErrors = v
		}

		if v, err := strconv.ParseUint(row[2], 10, 64); err == nil {
			rec.OutErrors = v
		}

		if len(row) > 3 {
			if v, err := strconv.ParseUint(row[3], 10, 64); err == nil {
				rec.CRCErrors = v
			}
		}

		records = append(records, rec)
	}

	return records
}
