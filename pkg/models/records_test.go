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

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMacTableRecord(t *testing.T) {
	rec, err := NewMacTableRecord("0425.c5aa.01ff", 100, "GigabitEthernet1/0/1")
	require.NoError(t, err)
	assert.Equal(t, "04:25:C5:AA:01:FF", rec.MACAddress)
	assert.Equal(t, 100, rec.VLANID)

	_, err = NewMacTableRecord("0425.c5aa.01ff", 4095, "Gi1/0/1")
	require.ErrorIs(t, err, ErrInvalidVLAN)

	_, err = NewMacTableRecord("not-a-mac", 100, "Gi1/0/1")
	require.ErrorIs(t, err, ErrInvalidMAC)
}

func TestNewNeighborRecordRequiresAllFields(t *testing.T) {
	_, err := NewNeighborRecord("", "core-01", "Ten1/1", "lldp")
	require.ErrorIs(t, err, ErrMissingField)

	_, err = NewNeighborRecord("Gi1/0/48", "", "Ten1/1", "lldp")
	require.ErrorIs(t, err, ErrMissingField)

	_, err = NewNeighborRecord("Gi1/0/48", "core-01", "", "lldp")
	require.ErrorIs(t, err, ErrMissingField)

	rec, err := NewNeighborRecord("Gi1/0/48", "core-01", "Ten1/1", "lldp")
	require.NoError(t, err)
	assert.Equal(t, "core-01", rec.RemoteHostname)
}

func TestNewArpRecordSkipsBadMAC(t *testing.T) {
	_, err := NewArpRecord("10.0.0.5", "incomplete", 0, "core-01")
	require.Error(t, err)

	rec, err := NewArpRecord("10.0.0.5", "0011.2233.4455", 20, "core-01")
	require.NoError(t, err)
	assert.Equal(t, "00:11:22:33:44:55", rec.MACAddress)
}

func TestClientRecordFingerprintExcludesIdentity(t *testing.T) {
	a := ClientRecord{
		MACAddress:     "AA:BB:CC:DD:EE:FF",
		IPAddress:      "10.1.2.3",
		SwitchHostname: "SW-01",
		InterfaceName:  "Gi1/0/10",
		VLANID:         20,
		LinkStatus:     LinkUp,
	}
	b := a
	b.MACAddress = "00:11:22:33:44:55"
	b.IPAddress = "10.9.9.9"

	assert.Equal(t, a.FingerprintFields(), b.FingerprintFields(),
		"identity fields must not affect the fingerprint")

	c := a
	c.VLANID = 30
	assert.NotEqual(t, a.FingerprintFields(), c.FingerprintFields(),
		"behavior fields must affect the fingerprint")
}

func TestClientRecordFingerprintNilDistinct(t *testing.T) {
	reachable := true

	withNil := ClientRecord{SwitchHostname: "SW-01", InterfaceName: "Gi1/0/1", VLANID: 1}
	withTrue := withNil
	withTrue.PingReachable = &reachable

	assert.NotEqual(t, withNil.FingerprintFields(), withTrue.FingerprintFields())
}

func TestMaintenanceDeviceHasNewDevice(t *testing.T) {
	d := MaintenanceDevice{NewHostname: "SW-01-NEW", NewIPAddress: "10.0.0.1"}
	assert.True(t, d.HasNewDevice())

	assert.False(t, (&MaintenanceDevice{NewHostname: "SW-01-NEW"}).HasNewDevice())
	assert.False(t, (&MaintenanceDevice{NewIPAddress: "10.0.0.1"}).HasNewDevice())
}

func TestParseDeviceType(t *testing.T) {
	assert.Equal(t, DeviceTypeHPE, ParseDeviceType("hpe"))
	assert.Equal(t, DeviceTypeCiscoIOS, ParseDeviceType("cisco_ios"))
	assert.Equal(t, DeviceTypeCiscoNXOS, ParseDeviceType("nxos"))
	assert.Equal(t, DeviceTypeAny, ParseDeviceType("juniper"))
}
