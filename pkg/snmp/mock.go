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

package snmp

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/netswap/verifier/pkg/models"
)

// Mock device shape: a 48-port access switch with two uplinks, one SVI
// and one loopback. Values are derived from a hash of (ip, key, minute
// bucket), so repeated walks within the same minute agree and the
// fleet looks stable across cycles.
const (
	mockAccessPorts   = 48
	mockUplinkFirst   = 49
	mockUplinkCount   = 2
	mockAggGroupID    = 100
	mockMacsPerVLAN   = 8
	mockEntPortBase   = 1000
	mockEntSensorBase = 10

	defaultMockFailureRate = 0.05
	defaultMockDefectRate  = 0.02
)

var mockVLANs = []int{1, 10, 20, 1002, 1003, 1004, 1005}

// MockConfig tunes the synthetic fleet.
type MockConfig struct {
	// Communities accepted by every mock agent; empty means {"public"}.
	Communities []string
	// FailureRate is the per-device per-minute probability that the
	// whole agent goes dark (every request times out). Negative means
	// the default 5%; zero disables injection.
	FailureRate float64
	// DefectRate is the per-component probability of a fault (port
	// down, fan failed, LACP member unsynced). Negative means the
	// default 2%.
	DefectRate float64
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// MockEngine is an in-process SNMP fleet. No network traffic.
type MockEngine struct {
	communities map[string]bool
	failureRate float64
	defectRate  float64
	now         func() time.Time

	mu      sync.Mutex
	uplinks map[string][]models.UplinkExpectation
}

// NewMockEngine builds the mock fleet from config.
func NewMockEngine(cfg MockConfig) *MockEngine {
	if len(cfg.Communities) == 0 {
		cfg.Communities = []string{"public"}
	}

	if cfg.FailureRate < 0 {
		cfg.FailureRate = defaultMockFailureRate
	}

	if cfg.DefectRate < 0 {
		cfg.DefectRate = defaultMockDefectRate
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	communities := make(map[string]bool, len(cfg.Communities))
	for _, c := range cfg.Communities {
		communities[c] = true
	}

	return &MockEngine{
		communities: communities,
		failureRate: cfg.FailureRate,
		defectRate:  cfg.DefectRate,
		now:         cfg.Now,
		uplinks:     make(map[string][]models.UplinkExpectation),
	}
}

// SetUplinks registers the expected neighbors of a device so CDP walks
// return the planned topology instead of the built-in defaults.
func (m *MockEngine) SetUplinks(ip string, rows []models.UplinkExpectation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.uplinks[ip] = rows
}

// Get serves point lookups from the synthetic tree.
func (m *MockEngine) Get(ctx context.Context, target Target, oids ...string) (map[string]VarBind, error) {
	if err := m.admit(ctx, target); err != nil {
		return nil, err
	}

	tree := m.buildTree(target)
	out := make(map[string]VarBind, len(oids))

	for _, oid := range oids {
		norm := NormalizeOID(oid)
		if v, ok := tree[norm]; ok {
			out[norm] = VarBind{OID: norm, Value: v}
		}
	}

	return out, nil
}

// Walk serves subtree scans from the synthetic tree in OID order.
func (m *MockEngine) Walk(ctx context.Context, target Target, prefix string) ([]VarBind, error) {
	if err := m.admit(ctx, target); err != nil {
		return nil, err
	}

	tree := m.buildTree(target)
	norm := NormalizeOID(prefix)

	var out []VarBind

	for oid, v := range tree {
		if strings.HasPrefix(oid, norm+".") {
			out = append(out, VarBind{OID: oid, Value: v})
		}
	}

	sort.Slice(out, func(i, j int) bool { return oidLess(out[i].OID, out[j].OID) })

	return out, nil
}

// admit enforces community auth and the per-minute failure injection.
func (m *MockEngine) admit(ctx context.Context, target Target) error {
	if err := ctx.Err(); err != nil {
		return classify(err)
	}

	base, _ := splitCommunity(target.Community)
	if !m.communities[base] {
		return fmt.Errorf("%w: %s did not answer community %q", ErrTimeout, target.IP, base)
	}

	if m.failureRate > 0 {
		if m.roll(target.IP, "device-failure") < m.failureRate {
			return fmt.Errorf("%w: %s is not responding", ErrTimeout, target.IP)
		}
	}

	return nil
}

// roll returns a stable [0,1) draw for (ip, key, minute bucket).
func (m *MockEngine) roll(ip string, key string) float64 {
	bucket := m.now().Unix() / 60
	seed := xxhash.Sum64String(fmt.Sprintf("%s|%s|%d", ip, key, bucket))

	return rand.New(rand.NewSource(int64(seed))).Float64() //nolint:gosec // synthetic data
}

func (m *MockEngine) defect(ip, key string) bool {
	return m.defectRate > 0 && m.roll(ip, "defect|"+key) < m.defectRate
}

func splitCommunity(community string) (base string, vlan int) {
	base = community

	if idx := strings.LastIndex(community, "@"); idx >= 0 {
		base = community[:idx]
		vlan, _ = strconv.Atoi(community[idx+1:])
	}

	return base, vlan
}

// buildTree synthesizes the whole device tree for one request. The
// per-VLAN BRIDGE-MIB view depends on the community suffix.
func (m *MockEngine) buildTree(target Target) map[string]any {
	ip := target.IP
	_, vlan := splitCommunity(target.Community)

	if vlan == 0 {
		vlan = 1
	}

	tree := make(map[string]any, 512)

	m.fillSystem(tree, ip)
	m.fillInterfaces(tree, ip)
	m.fillBridge(tree, ip, vlan)
	m.fillQBridge(tree, ip)
	m.fillVlans(tree)
	m.fillLag(tree, ip)
	m.fillNeighbors(tree, ip)
	m.fillEnvironment(tree, ip)
	m.fillSensors(tree, ip)

	return tree
}

func (m *MockEngine) fillSystem(tree map[string]any, ip string) {
	tree[OIDSysObjectID] = ".1.3.6.1.4.1.8072.3.2.10"
	tree[OIDSysDescr] = []byte("mock access switch " + ip)
	tree[OIDSysName] = []byte("mock-" + strings.ReplaceAll(ip, ".", "-"))

	// ENTITY-MIB chassis row carries model and firmware.
	tree[OIDEntPhysicalModelName+".1"] = []byte("NSW-4850")
	tree[OIDEntPhysicalSoftwareRev+".1"] = []byte("7.1.070 Release 6555P01")
	tree[OIDEntPhysicalDescr+".1"] = []byte("chassis")
}

func mockPortName(ifIndex int) string {
	switch {
	case ifIndex >= 1 && ifIndex <= mockAccessPorts:
		return fmt.Sprintf("GigabitEthernet1/0/%d", ifIndex)
	case ifIndex >= mockUplinkFirst && ifIndex < mockUplinkFirst+mockUplinkCount:
		return fmt.Sprintf("TenGigabitEthernet1/1/%d", ifIndex-mockUplinkFirst+1)
	default:
		return ""
	}
}

func (m *MockEngine) fillInterfaces(tree map[string]any, ip string) {
	for ifIndex := 1; ifIndex < mockUplinkFirst+mockUplinkCount; ifIndex++ {
		suffix := "." + strconv.Itoa(ifIndex)
		name := mockPortName(ifIndex)

		tree[OIDIfName+suffix] = []byte(name)

		speed := uint64(1000)
		if ifIndex >= mockUplinkFirst {
			speed = 10000
		}

		tree[OIDIfHighSpeed+suffix] = speed

		oper := int64(1)
		if ifIndex < mockUplinkFirst && m.defect(ip, "port-down|"+name) {
			oper = 2
		}

		tree[OIDIfOperStatus+suffix] = oper
		tree[OIDDot3StatsDuplexStatus+suffix] = int64(3) // fullDuplex

		var inErr, outErr, fcsErr uint64
		if m.defect(ip, "port-errors|"+name) {
			inErr = uint64(1 + int(m.roll(ip, "in|"+name)*40))
			fcsErr = uint64(int(m.roll(ip, "fcs|"+name) * 10))
		}

		tree[OIDIfInErrors+suffix] = inErr
		tree[OIDIfOutErrors+suffix] = outErr
		tree[OIDDot3StatsFCSErrors+suffix] = fcsErr
	}

	// Non-physical interfaces, to exercise name filtering.
	tree[OIDIfName+".101"] = []byte("Vlan100")
	tree[OIDIfOperStatus+".101"] = int64(1)
	tree[OIDIfHighSpeed+".101"] = uint64(1000)
	tree[OIDIfName+".102"] = []byte("Loopback0")
	tree[OIDIfOperStatus+".102"] = int64(1)
	tree[OIDIfHighSpeed+".102"] = uint64(8000)
}

// fillBridge serves the per-VLAN BRIDGE-MIB view (IOS community@vlan
// indexing). Bridge port N maps to ifIndex N.
func (m *MockEngine) fillBridge(tree map[string]any, ip string, vlan int) {
	for port := 1; port < mockUplinkFirst+mockUplinkCount; port++ {
		tree[OIDDot1dBasePortIfIndex+"."+strconv.Itoa(port)] = int64(port)
	}

	for _, mac := range m.vlanMACs(ip, vlan) {
		tree[OIDDot1dTpFdbPort+"."+macDecimalIndex(mac.addr)] = int64(mac.port)
	}
}

// fillQBridge serves the Q-BRIDGE view (HPE, NX-OS): every VLAN's
// entries in one table, VLAN leading the index.
func (m *MockEngine) fillQBridge(tree map[string]any, ip string) {
	for _, vlan := range mockVLANs {
		for _, mac := range m.vlanMACs(ip, vlan) {
			idx := strconv.Itoa(vlan) + "." + macDecimalIndex(mac.addr)
			tree[OIDDot1qTpFdbPort+"."+idx] = int64(mac.port)
		}
	}
}

func (m *MockEngine) fillVlans(tree map[string]any) {
	for _, vlan := range mockVLANs {
		tree[OIDVtpVlanState+"."+strconv.Itoa(vlan)] = int64(1) // operational
	}
}

func (m *MockEngine) fillLag(tree map[string]any, ip string) {
	for i := 0; i < mockUplinkCount; i++ {
		ifIndex := mockUplinkFirst + i
		suffix := "." + strconv.Itoa(ifIndex)

		state := byte(0x3d) // sync bit set
		if m.defect(ip, "lacp|"+strconv.Itoa(ifIndex)) {
			state = 0x37 // collecting/distributing without sync
		}

		tree[OIDDot3adAggPortActorOperState+suffix] = []byte{state}
		tree[OIDDot3adAggPortAttachedAggID+suffix] = int64(mockAggGroupID)
	}
}

func (m *MockEngine) fillNeighbors(tree map[string]any, ip string) {
	m.mu.Lock()
	rows := m.uplinks[ip]
	m.mu.Unlock()

	if len(rows) == 0 {
		for i := 0; i < mockUplinkCount; i++ {
			idx := fmt.Sprintf(".%d.1", mockUplinkFirst+i)
			tree[OIDCdpCacheDeviceID+idx] = []byte(fmt.Sprintf("core-%02d", i+1))
			tree[OIDCdpCacheDevicePort+idx] = []byte("TenGigabitEthernet1/1/1")
		}

		return
	}

	for i, row := range rows {
		ifIndex := m.ifIndexByName(row.LocalInterface)
		if ifIndex == 0 {
			ifIndex = mockUplinkFirst + i
		}

		idx := fmt.Sprintf(".%d.1", ifIndex)
		tree[OIDCdpCacheDeviceID+idx] = []byte(row.ExpectedNeighbor)
		tree[OIDCdpCacheDevicePort+idx] = []byte(row.ExpectedInterface)
	}
}

func (m *MockEngine) ifIndexByName(name string) int {
	for ifIndex := 1; ifIndex < mockUplinkFirst+mockUplinkCount; ifIndex++ {
		if mockPortName(ifIndex) == name {
			return ifIndex
		}
	}

	return 0
}

func (m *MockEngine) fillEnvironment(tree map[string]any, ip string) {
	// CISCO-ENVMON view.
	for i := 1; i <= 2; i++ {
		suffix := "." + strconv.Itoa(i)
		tree[OIDCiscoEnvMonFanDescr+suffix] = []byte(fmt.Sprintf("Fan %d", i))

		fanState := int64(1) // normal
		if m.defect(ip, "fan|"+strconv.Itoa(i)) {
			fanState = 3 // critical
		}

		tree[OIDCiscoEnvMonFanState+suffix] = fanState

		tree[OIDCiscoEnvMonSupplyDescr+suffix] = []byte(fmt.Sprintf("Power Supply %d", i))

		psuState := int64(1)
		if m.defect(ip, "psu|"+strconv.Itoa(i)) {
			psuState = 3
		}

		tree[OIDCiscoEnvMonSupplyState+suffix] = psuState
		tree[OIDCiscoEnvMonSupplySource+suffix] = int64(2) // ac
	}

	// HH3C view. Slot 3 is an empty fan bay.
	for i := 1; i <= 2; i++ {
		suffix := "." + strconv.Itoa(i)

		fanState := int64(1) // active
		if m.defect(ip, "fan|"+strconv.Itoa(i)) {
			fanState = 2 // deactive
		}

		tree[OIDHh3cDevMFanStatus+suffix] = fanState

		psuState := int64(1)
		if m.defect(ip, "psu|"+strconv.Itoa(i)) {
			psuState = 2
		}

		tree[OIDHh3cDevMPowerStatus+suffix] = psuState
	}

	tree[OIDHh3cDevMFanStatus+".3"] = int64(3) // not installed
}

// fillSensors emits transceiver diagnostics for the uplink optics in
// both vendor shapes: HH3C per-ifIndex hundredths and CISCO-ENTITY-
// SENSOR rows (scale milli) crossed via entPhysicalContainedIn.
func (m *MockEngine) fillSensors(tree map[string]any, ip string) {
	for i := 0; i < mockUplinkCount; i++ {
		ifIndex := mockUplinkFirst + i
		name := mockPortName(ifIndex)
		suffix := "." + strconv.Itoa(ifIndex)

		jitter := int64(m.roll(ip, "xcvr|"+name) * 200)

		tempHundredths := 3000 + jitter   // ~30C
		voltHundredths := int64(331)      // 3.31V
		rxHundredths := -260 + jitter/4   // ~-2.6dBm
		txHundredths := -180 + jitter/8   // ~-1.8dBm

		tree[OIDHh3cTransceiverTemp+suffix] = tempHundredths
		tree[OIDHh3cTransceiverVoltage+suffix] = voltHundredths
		tree[OIDHh3cTransceiverRxPower+suffix] = rxHundredths
		tree[OIDHh3cTransceiverTxPower+suffix] = txHundredths

		portPhys := mockEntPortBase + ifIndex
		tree[OIDEntPhysicalName+"."+strconv.Itoa(portPhys)] = []byte(name)
		tree[OIDEntPhysicalContainedIn+"."+strconv.Itoa(portPhys)] = int64(1)

		sensors := []struct {
			kind  string
			sType int64
			milli int64
		}{
			{"Module Temperature Sensor", 8, tempHundredths * 10},
			{"Supply Voltage Sensor", 4, voltHundredths * 10},
			{"Transmit Power Sensor", 14, txHundredths * 10},
			{"Receive Power Sensor", 14, rxHundredths * 10},
		}

		for j, s := range sensors {
			physIndex := portPhys*mockEntSensorBase + j + 1
			sfx := "." + strconv.Itoa(physIndex)

			tree[OIDEntPhysicalName+sfx] = []byte(name + " " + s.kind)
			tree[OIDEntPhysicalContainedIn+sfx] = int64(portPhys)
			tree[OIDEntSensorType+sfx] = s.sType
			tree[OIDEntSensorScale+sfx] = int64(8) // milli
			tree[OIDEntSensorValue+sfx] = s.milli
		}
	}
}

type mockMac struct {
	addr [6]byte
	port int
}

// vlanMACs returns the stable set of client MACs learned on a VLAN.
// Reserved VLANs and VLAN 1 hold no clients.
func (m *MockEngine) vlanMACs(ip string, vlan int) []mockMac {
	if vlan == 1 || (vlan >= 1002 && vlan <= 1005) {
		return nil
	}

	macs := make([]mockMac, 0, mockMacsPerVLAN)

	for k := 0; k < mockMacsPerVLAN; k++ {
		h := xxhash.Sum64String(fmt.Sprintf("mac|%s|%d|%d", ip, vlan, k))

		var addr [6]byte
		for b := 0; b < 6; b++ {
			addr[b] = byte(h >> (8 * b))
		}

		addr[0] &= 0xFE // unicast

		macs = append(macs, mockMac{
			addr: addr,
			port: 1 + int(h%mockAccessPorts),
		})
	}

	return macs
}

func macDecimalIndex(addr [6]byte) string {
	parts := make([]string, 6)
	for i, b := range addr {
		parts[i] = strconv.Itoa(int(b))
	}

	return strings.Join(parts, ".")
}

// oidLess orders OIDs by numeric component, the order a real agent
// walks in.
func oidLess(a, b string) bool {
	as := strings.Split(strings.TrimPrefix(a, "."), ".")
	bs := strings.Split(strings.TrimPrefix(b, "."), ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, _ := strconv.Atoi(as[i])
		bi, _ := strconv.Atoi(bs[i])

		if ai != bi {
			return ai < bi
		}
	}

	return len(as) < len(bs)
}
