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

package collector

import (
	"context"
	"strconv"
	"strings"

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

func init() {
	for _, name := range []string{models.APINeighborHPE, models.APINeighborIOS, models.APINeighborNXOS} {
		Register(&neighborCollector{apiName: name})
	}
}

type neighborCollector struct {
	apiName string
}

func (c *neighborCollector) APIName() string { return c.apiName }

func (c *neighborCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	// CDP only. HPE Comware devices answer LLDP over the CLI path;
	// over SNMP this indicator yields nothing for them.
	if deviceType == models.DeviceTypeHPE {
		return FormatRaw(c.apiName, ip, deviceType, nil), nil, nil
	}

	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	names, err := cache.IfIndexMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	engine := cache.Engine()

	devices, err := engine.Walk(ctx, target, snmp.OIDCdpCacheDeviceID)
	if err != nil {
		return "", nil, err
	}

	ports, err := engine.Walk(ctx, target, snmp.OIDCdpCacheDevicePort)
	if err != nil {
		return "", nil, err
	}

	portByIndex := make(map[string]string, len(ports))
	for _, vb := range ports {
		portByIndex[vb.Index(snmp.OIDCdpCacheDevicePort)] = vb.AsString()
	}

	var records []models.Record

	for _, vb := range devices {
		idx := vb.Index(snmp.OIDCdpCacheDeviceID)

		// Index is <ifIndex>.<cacheIndex>.
		ifIndexStr, _, found := strings.Cut(idx, ".")
		if !found {
			continue
		}

		ifIndex, convErr := strconv.Atoi(ifIndexStr)
		if convErr != nil {
			continue
		}

		remote := vb.AsString()
		if dot := strings.Index(remote, "."); dot > 0 {
			remote = remote[:dot]
		}

		rec, recErr := models.NewNeighborRecord(names[ifIndex], remote, portByIndex[idx], "cdp")
		if recErr != nil {
			continue
		}

		records = append(records, rec)
	}

	raw := FormatRaw(c.apiName, ip, deviceType, append(devices, ports...))

	return raw, records, nil
}
