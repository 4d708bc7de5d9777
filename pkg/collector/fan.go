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
	for _, name := range []string{models.APIFanHPE, models.APIFanIOS, models.APIFanNXOS} {
		Register(&fanCollector{apiName: name})
	}
}

type fanCollector struct {
	apiName string
}

func (c *fanCollector) APIName() string { return c.apiName }

func (c *fanCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	if deviceType == models.DeviceTypeHPE {
		return c.collectHPE(ctx, ip, deviceType, target, cache.Engine())
	}

	return c.collectCisco(ctx, ip, deviceType, target, cache.Engine())
}

// hh3cDevMFanStatus: 1 active, 2 deactive, 3 not-installed, 4 unsupported.
func hh3cFanStatus(v int) string {
	switch v {
	case 1:
		return models.StatusNormal
	case 2:
		return models.StatusFail
	case 3:
		return models.StatusAbsent
	default:
		return models.StatusUnknown
	}
}

// CISCO-ENVMON state: 1 normal, 2 warning, 3 critical, 4 shutdown,
// 5 notPresent, 6 notFunctioning.
func envMonStatus(v int) string {
	switch v {
	case 1:
		return models.StatusNormal
	case 2, 3, 4, 6:
		return models.StatusFail
	case 5:
		return models.StatusAbsent
	default:
		return models.StatusUnknown
	}
}

func (c *fanCollector) collectHPE(ctx context.Context, ip string, deviceType models.DeviceType, target snmp.Target, engine snmp.Engine) (string, []models.Record, error) {
	varbinds, err := engine.Walk(ctx, target, snmp.OIDHh3cDevMFanStatus)
	if err != nil {
		return "", nil, err
	}

	records := make([]models.Record, 0, len(varbinds))

	for _, vb := range varbinds {
		idx := vb.Index(snmp.OIDHh3cDevMFanStatus)
		if idx == "" {
			continue
		}

		records = append(records, models.FanRecord{
			FanID:  "Fan " + idx,
			Status: hh3cFanStatus(vb.AsInt(0)),
		})
	}

	return FormatRaw(c.apiName, ip, deviceType, varbinds), records, nil
}

func (c *fanCollector) collectCisco(ctx context.Context, ip string, deviceType models.DeviceType, target snmp.Target, engine snmp.Engine) (string, []models.Record, error) {
	states, err := engine.Walk(ctx, target, snmp.OIDCiscoEnvMonFanState)
	if err != nil {
		return "", nil, err
	}

	descrs, err := engine.Walk(ctx, target, snmp.OIDCiscoEnvMonFanDescr)
	if err != nil {
		return "", nil, err
	}

	nameByIndex := make(map[string]string, len(descrs))
	for _, vb := range descrs {
		nameByIndex[vb.Index(snmp.OIDCiscoEnvMonFanDescr)] = vb.AsString()
	}

	records := make([]models.Record, 0, len(states))

	for _, vb := range states {
		idx := vb.Index(snmp.OIDCiscoEnvMonFanState)

		name := nameByIndex[idx]
		if name == "" {
			name = "Fan " + idx
		}

		records = append(records, models.FanRecord{
			FanID:  name,
			Status: envMonStatus(vb.AsInt(0)),
		})
	}

	raw := FormatRaw(c.apiName, ip, deviceType, append(descrs, states...))

	return raw, records, nil
}
