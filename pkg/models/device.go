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

// Package models defines the entities and typed parsed records the
// collection pipeline produces and persists.
package models

import "time"

// DeviceType identifies the vendor/platform of a switch under test.
type DeviceType string

const (
	DeviceTypeHPE       DeviceType = "hpe_comware"
	DeviceTypeCiscoIOS  DeviceType = "cisco_ios"
	DeviceTypeCiscoNXOS DeviceType = "cisco_nxos"

	// DeviceTypeAny marks cross-vendor parsers that apply regardless of
	// platform (ping, ACL, CSV fallbacks).
	DeviceTypeAny DeviceType = ""
)

// ParseDeviceType maps free-form vendor strings from inventory onto a
// DeviceType. Unknown vendors map to DeviceTypeAny.
func ParseDeviceType(s string) DeviceType {
	switch s {
	case "hpe", "hpe_comware", "comware", "h3c":
		return DeviceTypeHPE
	case "cisco_ios", "ios", "cisco":
		return DeviceTypeCiscoIOS
	case "cisco_nxos", "nxos", "nx-os":
		return DeviceTypeCiscoNXOS
	default:
		return DeviceTypeAny
	}
}

// Switch is a device known to the system. Owned by the configuration
// layer; the pipeline only reads it.
type Switch struct {
	Hostname   string     `json:"hostname"`
	IPAddress  string     `json:"ip_address"`
	Vendor     string     `json:"vendor"`
	Platform   string     `json:"platform"`
	Site       string     `json:"site"`
	Active     bool       `json:"active"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	DeviceType DeviceType `json:"device_type"`
}

// MaintenanceDevice binds an OLD device to its NEW replacement within
// one maintenance window. Collection cycles iterate these rows.
type MaintenanceDevice struct {
	MaintenanceID string     `json:"maintenance_id"`
	OldHostname   string     `json:"old_hostname"`
	OldIPAddress  string     `json:"old_ip_address"`
	OldVendor     string     `json:"old_vendor"`
	NewHostname   string     `json:"new_hostname"`
	NewIPAddress  string     `json:"new_ip_address"`
	NewVendor     string     `json:"new_vendor"`
	UseSamePort   bool       `json:"use_same_port"`
	Reachable     bool       `json:"reachable"`
}

// NewDeviceType returns the platform classification of the replacement
// device.
func (m *MaintenanceDevice) NewDeviceType() DeviceType {
	return ParseDeviceType(m.NewVendor)
}

// HasNewDevice reports whether the row names a replacement device.
// Rows without one never enter a collection fan-out.
func (m *MaintenanceDevice) HasNewDevice() bool {
	return m.NewHostname != "" && m.NewIPAddress != ""
}

// UplinkExpectation records the expected neighbor on a local interface.
type UplinkExpectation struct {
	MaintenanceID     string `json:"maintenance_id"`
	Hostname          string `json:"hostname"`
	LocalInterface    string `json:"local_interface"`
	ExpectedNeighbor  string `json:"expected_neighbor"`
	ExpectedInterface string `json:"expected_interface"`
}

// VersionExpectation records the firmware versions acceptable on a device.
type VersionExpectation struct {
	MaintenanceID    string   `json:"maintenance_id"`
	Hostname         string   `json:"hostname"`
	ExpectedVersions []string `json:"expected_versions"`
}

// PortChannelExpectation records expected port-channel membership.
type PortChannelExpectation struct {
	MaintenanceID   string   `json:"maintenance_id"`
	Hostname        string   `json:"hostname"`
	PortChannelName string   `json:"port_channel_name"`
	MemberPorts     []string `json:"member_ports"`
}

// ArpSource is one collection point for ARP data, tried in priority order.
type ArpSource struct {
	MaintenanceID string `json:"maintenance_id"`
	Hostname      string `json:"hostname"`
	IPAddress     string `json:"ip_address"`
	Vendor        string `json:"vendor"`
	Priority      int    `json:"priority"`
}
