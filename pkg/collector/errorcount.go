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
	"sort"
	"strconv"

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

func init() {
	Register(&errorCountCollector{})
}

// errorCountCollector is cross-vendor: IF-MIB and EtherLike-MIB
// counters are uniform.
type errorCountCollector struct{}

func (*errorCountCollector) APIName() string { return models.APIErrorCount }

func (c *errorCountCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	names, err := cache.IfIndexMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	engine := cache.Engine()

	inErrs, err := engine.Walk(ctx, target, snmp.OIDIfInErrors)
	if err != nil {
		return "", nil, err
	}

	outErrs, err := engine.Walk(ctx, target, snmp.OIDIfOutErrors)
	if err != nil {
		return "", nil, err
	}

	fcsErrs, err := engine.Walk(ctx, target, snmp.OIDDot3StatsFCSErrors)
	if err != nil {
		return "", nil, err
	}

	outByIndex := indexUints(outErrs, snmp.OIDIfOutErrors)
	fcsByIndex := indexUints(fcsErrs, snmp.OIDDot3StatsFCSErrors)

	var records []models.Record

	for _, vb := range inErrs {
		idx, convErr := strconv.Atoi(vb.Index(snmp.OIDIfInErrors))
		if convErr != nil {
			continue
		}

		name := names[idx]
		if !isPhysicalInterface(name) {
			continue
		}

		records = append(records, models.ErrorCountRecord{
			InterfaceName: name,
			InErrors:      vb.AsUint(0),
			OutErrors:     outByIndex[idx],
			CRCErrors:     fcsByIndex[idx],
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].(models.ErrorCountRecord).InterfaceName <
			records[j].(models.ErrorCountRecord).InterfaceName
	})

	raw := FormatRaw(models.APIErrorCount, ip, deviceType, append(inErrs, outErrs...))

	return raw, records, nil
}

func indexUints(varbinds []snmp.VarBind, prefix string) map[int]uint64 {
	m := make(map[int]uint64, len(varbinds))

	for _, vb := range varbinds {
		if idx, err := strconv.Atoi(vb.Index(prefix)); err == nil {
			m[idx] = vb.AsUint(0)
		}
	}

	return m
}
