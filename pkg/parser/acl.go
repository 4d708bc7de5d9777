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
	// ACL bindings arrive via the HTTP collector API; the format is the
	// same regardless of vendor.
	register(models.DeviceTypeAny, models.APIStaticACL, parseACLBindings)
	register(models.DeviceTypeAny, models.APIDynamicACL, parseACLBindings)
}

// parseACLBindings accepts the collector API's CSV form
// (interface_name,acl_name,direction) and the CLI form
// "interface <name> ip access-group <acl> <in|out>".
func parseACLBindings(raw string) []models.Record {
	if looksLikeCSV(raw, "interface_name", "acl_name", "direction") {
		var records []models.Record

		for _, row := range csvRows(raw) {
			if len(row) < 3 || row[0] == "" || row[1] == "" {
				continue
			}

			records = append(records, models.AclBindingRecord{
				InterfaceName: row[0],
				ACLName:       row[1],
				Direction:     strings.ToLower(row[2]),
			})
		}

		return records
	}

	var records []models.Record

	iface := ""

	for _, line := range lines(raw) {
		if isNoise(line) {
			continue
		}

		fields := strings.Fields(line)

		if strings.EqualFold(fields[0], "interface") && len(fields) >= 2 {
			iface = fields[1]
			continue
		}

		// "ip access-group ACL-IN in" under an interface stanza
		if len(fields) >= 4 && strings.EqualFold(fields[0], "ip") && strings.EqualFold(fields[1], "access-group") {
			if iface == "" {
				continue
			}

			records = append(records, models.AclBindingRecord{
				InterfaceName: iface,
				ACLName:       fields[2],
				Direction:     strings.ToLower(fields[3]),
			})
		}

		// HPE: "packet-filter 3000 inbound"
		if len(fields) >= 3 && strings.EqualFold(fields[0], "packet-filter") {
			if iface == "" {
				continue
			}

			direction := "in"
			if strings.HasPrefix(strings.ToLower(fields[2]), "out") {
				direction = "out"
			}

			records = append(records, models.AclBindingRecord{
				InterfaceName: iface,
				ACLName:       fields[1],
				Direction:     direction,
			})
		}
	}

	return records
}
