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

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

func init() {
	for _, name := range []string{models.APIPortChannelHPE, models.APIPortChannelIOS, models.APIPortChannelNXOS} {
		Register(&portChannelCollector{apiName: name})
	}
}

// lacpSyncBit is the Synchronization flag inside
// dot3adAggPortActorOperState (e.g. 0x3d carries it, 0x37 does not).
const lacpSyncBit = 0x08

type portChannelCollector struct {
	apiName string
}

func (c *portChannelCollector) APIName() string { return c.apiName }

func (c *portChannelCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	names, err := cache.IfIndexMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	engine := cache.Engine()

	states, err := engine.Walk(ctx, target, snmp.OIDDot3adAggPortActorOperState)
	if err != nil {
		return "", nil, err
	}

	aggIDs, err := engine.Walk(ctx, target, snmp.OIDDot3adAggPortAttachedAggID)
	if err != nil {
		return "", nil, err
	}

	aggByIndex := indexInts(aggIDs, snmp.OIDDot3adAggPortAttachedAggID)

	var records []models.Record

	for _, vb := range states {
		ifIndex, convErr := strconv.Atoi(vb.Index(snmp.OIDDot3adAggPortActorOperState))
		if convErr != nil {
			continue
		}

		aggID := aggByIndex[ifIndex]
		if aggID == 0 {
			// Port is not attached to any aggregator.
			continue
		}

		records = append(records, models.NewPortChannelMemberRecord(
			c.channelName(deviceType, names, aggID),
			names[ifIndex],
			syncStatus(operStateByte(vb)),
			models.AggLACP,
		))
	}

	raw := FormatRaw(c.apiName, ip, deviceType, append(states, aggIDs...))

	return raw, records, nil
}

// channelName prefers the aggregator's own ifName; devices that do
// not expose the aggregator as an interface get the vendor's default
// naming.
func (c *portChannelCollector) channelName(deviceType models.DeviceType, names map[int]string, aggID int) string {
	if name := names[aggID]; name != "" {
		return name
	}

	if deviceType == models.DeviceTypeHPE {
		return "Bridge-Aggregation" + strconv.Itoa(aggID)
	}

	return "Po" + strconv.Itoa(aggID)
}

func operStateByte(vb snmp.VarBind) byte {
	if b := vb.AsBytes(); len(b) > 0 {
		return b[0]
	}

	return byte(vb.AsInt(0))
}

func syncStatus(state byte) string {
	if state&lacpSyncBit != 0 {
		return models.LinkUp
	}

	return models.LinkDown
}
