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

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

func init() {
	for _, name := range []string{models.APIPowerHPE, models.APIPowerIOS, models.APIPowerNXOS} {
		Register(&powerCollector{apiName: name})
	}
}

type powerCollector struct {
	apiName string
}

func (c *powerCollector) APIName() string { return c.apiName }

func (c *powerCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	engine := cache.Engine()

	if deviceType == models.DeviceTypeHPE {
		varbinds, walkErr := engine.Walk(ctx, target, snmp.OIDHh3cDevMPowerStatus)
		if walkErr != nil {
			return "", nil, walkErr
		}

		records := make([]models.Record, 0, len(varbinds))

		for _, vb := range varbinds {
			idx := vb.Index(snmp.OIDHh3cDevMPowerStatus)
			if idx == "" {
				continue
			}

			// Wattage is not exposed by the state table.
			records = append(records, models.PowerRecord{
				PowerID: "Power " + idx,
				Status:  hh3cFanStatus(vb.AsInt(0)),
			})
		}

		return FormatRaw(c.apiName, ip, deviceType, varbinds), records, nil
	}

	states, err := engine.Walk(ctx, target, snmp.OIDCiscoEnvMonSupplyState)
	if err != nil {
		return "", nil, err
	}

	descrs, err := engine.Walk(ctx, target, snmp.OIDCiscoEnvMonSupplyDescr)
	if err != nil {
		return "", nil, err
	}

	nameByIndex := make(map[string]string, len(descrs))
	for _, vb := range descrs {
		nameByIndex[vb.Index(snmp.OIDCiscoEnvMonSupplyDescr)] = vb.AsString()
	}

	records := make([]models.Record, 0, len(states))

	for _, vb := range states {
		idx := vb.Index(snmp.OIDCiscoEnvMonSupplyState)

		name := nameByIndex[idx]
		if name == "" {
			name = "Power Supply " + idx
		}

		records = append(records, models.PowerRecord{
			PowerID: name,
			Status:  envMonStatus(vb.AsInt(0)),
		})
	}

	return FormatRaw(c.apiName, ip, deviceType, append(descrs, states...)), records, nil
}
