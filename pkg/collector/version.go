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
	for _, name := range []string{models.APIVersionHPE, models.APIVersionIOS, models.APIVersionNXOS} {
		Register(&versionCollector{apiName: name})
	}
}

type versionCollector struct {
	apiName string
}

func (c *versionCollector) APIName() string { return c.apiName }

// Collect reads the chassis ENTITY-MIB row. No recognizable version
// yields an empty record list, mirroring the parser contract.
func (c *versionCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	oidSoftware := snmp.OIDEntPhysicalSoftwareRev + ".1"
	oidModel := snmp.OIDEntPhysicalModelName + ".1"

	got, err := cache.Engine().Get(ctx, target, oidSoftware, oidModel, snmp.OIDSysDescr)
	if err != nil {
		return "", nil, err
	}

	varbinds := make([]snmp.VarBind, 0, len(got))
	for _, vb := range got {
		varbinds = append(varbinds, vb)
	}

	raw := FormatRaw(c.apiName, ip, deviceType, varbinds)

	version := got[oidSoftware].AsString()
	if version == "" {
		return raw, nil, nil
	}

	return raw, []models.Record{models.VersionRecord{
		Version: version,
		Model:   got[oidModel].AsString(),
	}}, nil
}
