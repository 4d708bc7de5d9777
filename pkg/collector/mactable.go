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
	for _, name := range []string{models.APIMacTableHPE, models.APIMacTableIOS, models.APIMacTableNXOS} {
		Register(&macTableCollector{apiName: name})
	}
}

// Cisco reserved legacy VLANs; never walked.
const (
	reservedVlanLow  = 1002
	reservedVlanHigh = 1005
)

type macTableCollector struct {
	apiName string
}

func (c *macTableCollector) APIName() string { return c.apiName }

func (c *macTableCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	names, err := cache.IfIndexMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	if deviceType == models.DeviceTypeCiscoIOS {
		return c.collectPerVlan(ctx, ip, deviceType, target, cache.Engine(), names)
	}

	return c.collectQBridge(ctx, ip, deviceType, target, cache, names)
}

// collectQBridge reads the whole FDB in one walk; the VLAN leads the
// dot1qTpFdbPort index (HPE Comware, NX-OS).
func (c *macTableCollector) collectQBridge(ctx context.Context, ip string, deviceType models.DeviceType, target snmp.Target, cache *snmp.SessionCache, names map[int]string) (string, []models.Record, error) {
	bridge, err := cache.BridgePortMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	varbinds, err := cache.Engine().Walk(ctx, target, snmp.OIDDot1qTpFdbPort)
	if err != nil {
		return "", nil, err
	}

	var records []models.Record

	for _, vb := range varbinds {
		parts := strings.Split(vb.Index(snmp.OIDDot1qTpFdbPort), ".")
		if len(parts) != 7 {
			continue
		}

		vlan, convErr := strconv.Atoi(parts[0])
		if convErr != nil {
			continue
		}

		mac, macErr := macFromDecimalOctets(parts[1:])
		if macErr != nil {
			continue
		}

		rec, recErr := models.NewMacTableRecord(mac, vlan, names[bridge[vb.AsInt(0)]])
		if recErr != nil {
			continue
		}

		records = append(records, rec)
	}

	return FormatRaw(c.apiName, ip, deviceType, varbinds), records, nil
}

// collectPerVlan walks the VLAN list, then reads each data VLAN's
// BRIDGE-MIB context through the community@vlan indexing convention.
// Reserved VLANs 1002-1005 are skipped.
func (c *macTableCollector) collectPerVlan(ctx context.Context, ip string, deviceType models.DeviceType, target snmp.Target, engine snmp.Engine, names map[int]string) (string, []models.Record, error) {
	vlanStates, err := engine.Walk(ctx, target, snmp.OIDVtpVlanState)
	if err != nil {
		return "", nil, err
	}

	var (
		records []models.Record
		rawVbs  []snmp.VarBind
	)

	for _, vb := range vlanStates {
		vlan, convErr := strconv.Atoi(vb.Index(snmp.OIDVtpVlanState))
		if convErr != nil {
			continue
		}

		if vlan >= reservedVlanLow && vlan <= reservedVlanHigh {
			continue
		}

		vlanTarget := target.WithCommunity(target.Community + "@" + strconv.Itoa(vlan))

		// BRIDGE-MIB tables are per-VLAN in this context, so the
		// bridge-port map is walked per VLAN, not through the cycle
		// cache.
		bridgeVbs, walkErr := engine.Walk(ctx, vlanTarget, snmp.OIDDot1dBasePortIfIndex)
		if walkErr != nil {
			return "", nil, walkErr
		}

		bridge := make(map[int]int, len(bridgeVbs))

		for _, bvb := range bridgeVbs {
			if port, portErr := strconv.Atoi(bvb.Index(snmp.OIDDot1dBasePortIfIndex)); portErr == nil {
				bridge[port] = bvb.AsInt(0)
			}
		}

		fdb, walkErr := engine.Walk(ctx, vlanTarget, snmp.OIDDot1dTpFdbPort)
		if walkErr != nil {
			return "", nil, walkErr
		}

		rawVbs = append(rawVbs, fdb...)

		for _, fvb := range fdb {
			parts := strings.Split(fvb.Index(snmp.OIDDot1dTpFdbPort), ".")

			mac, macErr := macFromDecimalOctets(parts)
			if macErr != nil {
				continue
			}

			rec, recErr := models.NewMacTableRecord(mac, vlan, names[bridge[fvb.AsInt(0)]])
			if recErr != nil {
				continue
			}

			records = append(records, rec)
		}
	}

	return FormatRaw(c.apiName, ip, deviceType, rawVbs), records, nil
}
