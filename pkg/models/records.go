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
	"errors"
	"fmt"
)

// RecordKind tags the closed set of typed parsed records.
type RecordKind string

const (
	KindFan               RecordKind = "fan"
	KindPower             RecordKind = "power"
	KindTransceiver       RecordKind = "transceiver"
	KindMacTable          RecordKind = "mac_table"
	KindNeighbor          RecordKind = "neighbor"
	KindPortChannelMember RecordKind = "port_channel_member"
	KindInterfaceStatus   RecordKind = "interface_status"
	KindAclBinding        RecordKind = "acl_binding"
	KindVersion           RecordKind = "version"
	KindErrorCount        RecordKind = "error_count"
	KindClient            RecordKind = "client"
	KindArp               RecordKind = "arp"
	KindPing              RecordKind = "ping"
)

// Record is one typed parsed item. FingerprintFields returns the
// behavior-meaningful fields, in a canonical order, excluding parent
// identity, device hostnames owned by other entities, and timestamps.
type Record interface {
	Kind() RecordKind
	FingerprintFields() []any
}

var (
	// ErrMissingField indicates a record constructor was given an
	// incomplete entry; callers drop such entries silently.
	ErrMissingField = errors.New("missing required field")
)

// FanRecord is one fan tray slot.
type FanRecord struct {
	FanID  string `json:"fan_id"`
	Status string `json:"status"`
}

// NewFanRecord normalizes the fan status at construction.
func NewFanRecord(fanID, status string) FanRecord {
	return FanRecord{FanID: fanID, Status: NormalizeOperStatus(status)}
}

func (FanRecord) Kind() RecordKind { return KindFan }

func (r FanRecord) FingerprintFields() []any {
	return []any{r.FanID, r.Status}
}

// PowerRecord is one power supply.
type PowerRecord struct {
	PowerID string `json:"power_id"`
	Status  string `json:"status"`
	Watts   int    `json:"watts,omitempty"`
}

func NewPowerRecord(powerID, status string, watts int) PowerRecord {
	return PowerRecord{PowerID: powerID, Status: NormalizeOperStatus(status), Watts: watts}
}

func (PowerRecord) Kind() RecordKind { return KindPower }

func (r PowerRecord) FingerprintFields() []any {
	return []any{r.PowerID, r.Status, r.Watts}
}

// TransceiverRecord is one optical lane of one transceiver. Multi-lane
// optics (QSFP, QSFP-DD) produce one record per lane.
type TransceiverRecord struct {
	InterfaceName string   `json:"interface_name"`
	Lane          int      `json:"lane"`
	TxPowerDBM    *float64 `json:"tx_power_dbm,omitempty"`
	RxPowerDBM    *float64 `json:"rx_power_dbm,omitempty"`
	TemperatureC  *float64 `json:"temperature_c,omitempty"`
	VoltageV      *float64 `json:"voltage_v,omitempty"`
}

func (TransceiverRecord) Kind() RecordKind { return KindTransceiver }

func (r TransceiverRecord) FingerprintFields() []any {
	return []any{r.InterfaceName, r.Lane,
		fpFloat(r.TxPowerDBM), fpFloat(r.RxPowerDBM), fpFloat(r.TemperatureC), fpFloat(r.VoltageV)}
}

// MacTableRecord is one learned MAC entry.
type MacTableRecord struct {
	MACAddress    string `json:"mac_address"`
	VLANID        int    `json:"vlan_id"`
	InterfaceName string `json:"interface_name"`
}

// NewMacTableRecord canonicalizes the MAC and enforces the VLAN range.
func NewMacTableRecord(mac string, vlanID int, ifName string) (MacTableRecord, error) {
	canonical, err := NormalizeMAC(mac)
	if err != nil {
		return MacTableRecord{}, err
	}

	if err := ValidateVLAN(vlanID); err != nil {
		return MacTableRecord{}, err
	}

	return MacTableRecord{MACAddress: canonical, VLANID: vlanID, InterfaceName: ifName}, nil
}

func (MacTableRecord) Kind() RecordKind { return KindMacTable }

func (r MacTableRecord) FingerprintFields() []any {
	return []any{r.MACAddress, r.VLANID, r.InterfaceName}
}

// NeighborData triple: all three fields are mandatory; incomplete
// entries are dropped by the parsers.
type NeighborRecord struct {
	LocalInterface  string `json:"local_interface"`
	RemoteHostname  string `json:"remote_hostname"`
	RemoteInterface string `json:"remote_interface"`
	Protocol        string `json:"protocol,omitempty"`
}

func NewNeighborRecord(localIf, remoteHost, remoteIf, protocol string) (NeighborRecord, error) {
	if localIf == "" || remoteHost == "" || remoteIf == "" {
		return NeighborRecord{}, fmt.Errorf("%w: neighbor requires local_interface, remote_hostname, remote_interface", ErrMissingField)
	}

	return NeighborRecord{
		LocalInterface:  localIf,
		RemoteHostname:  remoteHost,
		RemoteInterface: remoteIf,
		Protocol:        protocol,
	}, nil
}

func (NeighborRecord) Kind() RecordKind { return KindNeighbor }

func (r NeighborRecord) FingerprintFields() []any {
	return []any{r.LocalInterface, r.RemoteHostname, r.RemoteInterface, r.Protocol}
}

// PortChannelMemberRecord is one member port of an aggregation group.
type PortChannelMemberRecord struct {
	PortChannelName string `json:"port_channel_name"`
	MemberName      string `json:"member_name"`
	SyncStatus      string `json:"sync_status"`
	Protocol        string `json:"protocol"`
}

func NewPortChannelMemberRecord(channel, member, syncStatus, protocol string) PortChannelMemberRecord {
	return PortChannelMemberRecord{
		PortChannelName: channel,
		MemberName:      member,
		SyncStatus:      NormalizeLinkStatus(syncStatus),
		Protocol:        NormalizeAggProtocol(protocol),
	}
}

func (PortChannelMemberRecord) Kind() RecordKind { return KindPortChannelMember }

func (r PortChannelMemberRecord) FingerprintFields() []any {
	return []any{r.PortChannelName, r.MemberName, r.SyncStatus, r.Protocol}
}

// InterfaceStatusRecord is the operational state of one physical port.
type InterfaceStatusRecord struct {
	InterfaceName string `json:"interface_name"`
	LinkStatus    string `json:"link_status"`
	Speed         string `json:"speed"`
	Duplex        string `json:"duplex"`
	VLANID        int    `json:"vlan_id,omitempty"`
	Description   string `json:"description,omitempty"`
}

func NewInterfaceStatusRecord(name, link, speed, duplex string, vlanID int, description string) InterfaceStatusRecord {
	return InterfaceStatusRecord{
		InterfaceName: name,
		LinkStatus:    NormalizeLinkStatus(link),
		Speed:         speed,
		Duplex:        NormalizeDuplex(duplex),
		VLANID:        vlanID,
		Description:   description,
	}
}

func (InterfaceStatusRecord) Kind() RecordKind { return KindInterfaceStatus }

func (r InterfaceStatusRecord) FingerprintFields() []any {
	return []any{r.InterfaceName, r.LinkStatus, r.Speed, r.Duplex, r.VLANID, r.Description}
}

// AclBindingRecord is one ACL bound to an interface direction.
type AclBindingRecord struct {
	InterfaceName string `json:"interface_name"`
	ACLName       string `json:"acl_name"`
	Direction     string `json:"direction"`
}

func (AclBindingRecord) Kind() RecordKind { return KindAclBinding }

func (r AclBindingRecord) FingerprintFields() []any {
	return []any{r.InterfaceName, r.ACLName, r.Direction}
}

// VersionRecord is the firmware/software version of the device.
type VersionRecord struct {
	Version   string `json:"version"`
	Model     string `json:"model,omitempty"`
	BootImage string `json:"boot_image,omitempty"`
}

func (VersionRecord) Kind() RecordKind { return KindVersion }

func (r VersionRecord) FingerprintFields() []any {
	return []any{r.Version, r.Model, r.BootImage}
}

// ErrorCountRecord is the error counters of one interface.
type ErrorCountRecord struct {
	InterfaceName string `json:"interface_name"`
	InErrors      uint64 `json:"in_errors"`
	OutErrors     uint64 `json:"out_errors"`
	CRCErrors     uint64 `json:"crc_errors"`
}

func (ErrorCountRecord) Kind() RecordKind { return KindErrorCount }

func (r ErrorCountRecord) FingerprintFields() []any {
	return []any{r.InterfaceName, r.InErrors, r.OutErrors, r.CRCErrors}
}

// ArpRecord is one resolved ARP entry; "incomplete" entries never
// construct one.
type ArpRecord struct {
	IPAddress  string `json:"ip_address"`
	MACAddress string `json:"mac_address"`
	VLANID     int    `json:"vlan_id,omitempty"`
	Source     string `json:"source,omitempty"`
}

func NewArpRecord(ip, mac string, vlanID int, source string) (ArpRecord, error) {
	if ip == "" {
		return ArpRecord{}, fmt.Errorf("%w: arp entry requires ip_address", ErrMissingField)
	}

	canonical, err := NormalizeMAC(mac)
	if err != nil {
		return ArpRecord{}, err
	}

	return ArpRecord{IPAddress: ip, MACAddress: canonical, VLANID: vlanID, Source: source}, nil
}

func (ArpRecord) Kind() RecordKind { return KindArp }

func (r ArpRecord) FingerprintFields() []any {
	return []any{r.IPAddress, r.MACAddress, r.VLANID, r.Source}
}

// PingRecord is one reachability probe result.
type PingRecord struct {
	Hostname  string   `json:"hostname"`
	IPAddress string   `json:"ip_address"`
	Reachable bool     `json:"reachable"`
	RTTMillis *float64 `json:"rtt_ms,omitempty"`
}

func (PingRecord) Kind() RecordKind { return KindPing }

func (r PingRecord) FingerprintFields() []any {
	return []any{r.Hostname, r.IPAddress, r.Reachable, fpFloat(r.RTTMillis)}
}

// ClientRecord describes one client MAC observed on a switch.
//
// MACAddress and IPAddress are identity: a record is per-MAC, so they
// never enter the fingerprint. The behavior fields below do.
type ClientRecord struct {
	MACAddress      string  `json:"mac_address"`
	IPAddress       string  `json:"ip_address,omitempty"`
	SwitchHostname  string  `json:"switch_hostname"`
	InterfaceName   string  `json:"interface_name"`
	VLANID          int     `json:"vlan_id"`
	Speed           string  `json:"speed,omitempty"`
	Duplex          string  `json:"duplex,omitempty"`
	LinkStatus      string  `json:"link_status,omitempty"`
	PingReachable   *bool   `json:"ping_reachable,omitempty"`
	ACLRulesApplied *string `json:"acl_rules_applied,omitempty"`
}

func (ClientRecord) Kind() RecordKind { return KindClient }

func (r ClientRecord) FingerprintFields() []any {
	return []any{
		r.SwitchHostname, r.InterfaceName, r.VLANID,
		r.Speed, r.Duplex, r.LinkStatus,
		fpBool(r.PingReachable), fpString(r.ACLRulesApplied),
	}
}

// Nil pointers fingerprint as a token distinct from every concrete value.
const fpNil = "\x00nil"

func fpBool(v *bool) any {
	if v == nil {
		return fpNil
	}

	return *v
}

func fpString(v *string) any {
	if v == nil {
		return fpNil
	}

	return *v
}

func fpFloat(v *float64) any {
	if v == nil {
		return fpNil
	}

	return *v
}
