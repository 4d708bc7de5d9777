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
	for _, name := range []string{
		models.APIInterfaceStatusHPE,
		models.APIInterfaceStatusIOS,
		models.APIInterfaceStatusNXOS,
	} {
		Register(&interfaceStatusCollector{apiName: name})
	}
}

type interfaceStatusCollector struct {
	apiName string
}

func (c *interfaceStatusCollector) APIName() string { return c.apiName }

func ifOperToLink(v int) string {
	switch v {
	case 1:
		return models.LinkUp
	case 2:
		return models.LinkDown
	default:
		return models.LinkUnknown
	}
}

// dot3StatsDuplexStatus: 1 unknown, 2 half, 3 full.
func dot3Duplex(v int) string {
	switch v {
	case 2:
		return models.DuplexHalf
	case 3:
		return models.DuplexFull
	default:
		return models.DuplexUnknown
	}
}

func (c *interfaceStatusCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	names, err := cache.IfIndexMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	engine := cache.Engine()

	oper, err := engine.Walk(ctx, target, snmp.OIDIfOperStatus)
	if err != nil {
		return "", nil, err
	}

	speeds, err := engine.Walk(ctx, target, snmp.OIDIfHighSpeed)
	if err != nil {
		return "", nil, err
	}

	duplexes, err := engine.Walk(ctx, target, snmp.OIDDot3StatsDuplexStatus)
	if err != nil {
		return "", nil, err
	}

	aliases, err := engine.Walk(ctx, target, snmp.OIDIfAlias)
	if err != nil {
		// Not every platform implements ifAlias; descriptions are
		// optional.
		aliases = nil
	}

	speedByIndex := indexInts(speeds, snmp.OIDIfHighSpeed)
	duplexByIndex := indexInts(duplexes, snmp.OIDDot3StatsDuplexStatus)

	aliasByIndex := make(map[int]string, len(aliases))
	for _, vb := range aliases {
		if idx, convErr := strconv.Atoi(vb.Index(snmp.OIDIfAlias)); convErr == nil {
			aliasByIndex[idx] = vb.AsString()
		}
	}

	var records []models.Record

	for _, vb := range oper {
		idx, convErr := strconv.Atoi(vb.Index(snmp.OIDIfOperStatus))
		if convErr != nil {
			continue
		}

		name := names[idx]
		if !isPhysicalInterface(name) {
			continue
		}

		records = append(records, models.InterfaceStatusRecord{
			InterfaceName: name,
			LinkStatus:    ifOperToLink(vb.AsInt(0)),
			Speed:         models.FormatSpeed(uint64(speedByIndex[idx])),
			Duplex:        dot3Duplex(duplexByIndex[idx]),
			Description:   aliasByIndex[idx],
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].(models.InterfaceStatusRecord).InterfaceName <
			records[j].(models.InterfaceStatusRecord).InterfaceName
	})

	raw := FormatRaw(c.apiName, ip, deviceType, append(oper, speeds...))

	return raw, records, nil
}

func indexInts(varbinds []snmp.VarBind, prefix string) map[int]int {
	m := make(map[int]int, len(varbinds))

	for _, vb := range varbinds {
		if idx, err := strconv.Atoi(vb.Index(prefix)); err == nil {
			m[idx] = vb.AsInt(0)
		}
	}

	return m
}
