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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netswap/verifier/pkg/models"
)

func newTestMock() *MockEngine {
	fixed := time.Date(2026, 3, 14, 2, 0, 0, 0, time.UTC)

	return NewMockEngine(MockConfig{
		Communities: []string{"public"},
		FailureRate: 0,
		DefectRate:  0,
		Now:         func() time.Time { return fixed },
	})
}

func mockTarget(ip, community string) Target {
	return Target{IP: ip, Community: community, Timeout: time.Second}
}

func TestMockRejectsUnknownCommunity(t *testing.T) {
	m := newTestMock()

	_, err := m.Get(context.Background(), mockTarget("10.0.0.1", "wrong"), OIDSysObjectID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout, "wrong community must look like a silent drop")
}

func TestMockAcceptsPerVlanCommunitySuffix(t *testing.T) {
	m := newTestMock()

	_, err := m.Get(context.Background(), mockTarget("10.0.0.1", "public@10"), OIDSysObjectID)
	require.NoError(t, err)
}

func TestMockFailureInjection(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 2, 0, 0, 0, time.UTC)
	m := NewMockEngine(MockConfig{
		FailureRate: 1.0,
		DefectRate:  0,
		Now:         func() time.Time { return fixed },
	})

	_, err := m.Get(context.Background(), mockTarget("10.0.0.1", "public"), OIDSysObjectID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestMockInterfaceTree(t *testing.T) {
	m := newTestMock()

	names, err := m.Walk(context.Background(), mockTarget("10.0.0.1", "public"), OIDIfName)
	require.NoError(t, err)
	require.Len(t, names, 52, "48 access + 2 uplinks + Vlan100 + Loopback0")

	byIndex := make(map[string]string)
	for _, vb := range names {
		byIndex[vb.Index(OIDIfName)] = vb.AsString()
	}

	assert.Equal(t, "GigabitEthernet1/0/1", byIndex["1"])
	assert.Equal(t, "TenGigabitEthernet1/1/1", byIndex["49"])
	assert.Equal(t, "Vlan100", byIndex["101"])
	assert.Equal(t, "Loopback0", byIndex["102"])
}

func TestMockWalkIsStableWithinMinute(t *testing.T) {
	m := newTestMock()
	target := mockTarget("10.0.0.7", "public@10")

	first, err := m.Walk(context.Background(), target, OIDDot1dTpFdbPort)
	require.NoError(t, err)
	second, err := m.Walk(context.Background(), target, OIDDot1dTpFdbPort)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockPerVlanBridgeView(t *testing.T) {
	m := newTestMock()

	// Data VLANs carry learned MACs.
	entries, err := m.Walk(context.Background(), mockTarget("10.0.0.1", "public@10"), OIDDot1dTpFdbPort)
	require.NoError(t, err)
	assert.Len(t, entries, mockMacsPerVLAN)

	for _, vb := range entries {
		// Index is the MAC as six decimal octets.
		octets := strings.Split(vb.Index(OIDDot1dTpFdbPort), ".")
		assert.Len(t, octets, 6)

		port := vb.AsInt(0)
		assert.GreaterOrEqual(t, port, 1)
		assert.LessOrEqual(t, port, mockAccessPorts)
	}

	// Reserved VLANs and the default VLAN are empty.
	for _, community := range []string{"public@1002", "public@1005", "public"} {
		entries, err := m.Walk(context.Background(), mockTarget("10.0.0.1", community), OIDDot1dTpFdbPort)
		require.NoError(t, err)
		assert.Empty(t, entries, "community %s must see no FDB entries", community)
	}
}

func TestMockQBridgeCarriesVlanInIndex(t *testing.T) {
	m := newTestMock()

	entries, err := m.Walk(context.Background(), mockTarget("10.0.0.1", "public"), OIDDot1qTpFdbPort)
	require.NoError(t, err)
	require.Len(t, entries, 2*mockMacsPerVLAN, "VLANs 10 and 20 populated")

	for _, vb := range entries {
		idx := vb.Index(OIDDot1qTpFdbPort)
		parts := strings.Split(idx, ".")
		require.Len(t, parts, 7, "vlan + six MAC octets")
		assert.Contains(t, []string{"10", "20"}, parts[0])
	}
}

func TestMockVlanStateSkipsNothing(t *testing.T) {
	m := newTestMock()

	entries, err := m.Walk(context.Background(), mockTarget("10.0.0.1", "public"), OIDVtpVlanState)
	require.NoError(t, err)

	vlans := make([]string, 0, len(entries))
	for _, vb := range entries {
		vlans = append(vlans, vb.Index(OIDVtpVlanState))
	}

	// The mock advertises the reserved range; skipping 1002-1005 is the
	// collector's job.
	assert.Contains(t, vlans, "10")
	assert.Contains(t, vlans, "20")
	assert.Contains(t, vlans, "1002")
	assert.Contains(t, vlans, "1005")
}

func TestMockLagOperState(t *testing.T) {
	m := newTestMock()

	entries, err := m.Walk(context.Background(), mockTarget("10.0.0.1", "public"), OIDDot3adAggPortActorOperState)
	require.NoError(t, err)
	require.Len(t, entries, mockUplinkCount)

	for _, vb := range entries {
		b := vb.AsBytes()
		require.Len(t, b, 1)
		assert.Equal(t, byte(0x3d), b[0], "defect-free member must carry the sync bit")
		assert.NotZero(t, b[0]&0x08)
	}
}

func TestMockCdpDefaultsAndUplinkOverride(t *testing.T) {
	m := newTestMock()
	ctx := context.Background()
	target := mockTarget("10.0.0.1", "public")

	devices, err := m.Walk(ctx, target, OIDCdpCacheDeviceID)
	require.NoError(t, err)
	require.Len(t, devices, mockUplinkCount)
	assert.Equal(t, "core-01", devices[0].AsString())

	m.SetUplinks("10.0.0.1", []models.UplinkExpectation{{
		Hostname:          "sw-01",
		LocalInterface:    "TenGigabitEthernet1/1/2",
		ExpectedNeighbor:  "agg-07",
		ExpectedInterface: "Ethernet1/7",
	}})

	devices, err = m.Walk(ctx, target, OIDCdpCacheDeviceID)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "agg-07", devices[0].AsString())
	assert.Equal(t, "50.1", devices[0].Index(OIDCdpCacheDeviceID))

	ports, err := m.Walk(ctx, target, OIDCdpCacheDevicePort)
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "Ethernet1/7", ports[0].AsString())
}

func TestMockEnvironmentTables(t *testing.T) {
	m := newTestMock()
	ctx := context.Background()
	target := mockTarget("10.0.0.1", "public")

	fans, err := m.Walk(ctx, target, OIDHh3cDevMFanStatus)
	require.NoError(t, err)
	require.Len(t, fans, 3)
	assert.Equal(t, 1, fans[0].AsInt(0))
	assert.Equal(t, 3, fans[2].AsInt(0), "slot 3 is an empty bay")

	supplies, err := m.Walk(ctx, target, OIDCiscoEnvMonSupplyState)
	require.NoError(t, err)
	require.Len(t, supplies, 2)
}

func TestMockSensorCrossReference(t *testing.T) {
	m := newTestMock()
	ctx := context.Background()
	target := mockTarget("10.0.0.1", "public")

	values, err := m.Walk(ctx, target, OIDEntSensorValue)
	require.NoError(t, err)
	require.Len(t, values, 4*mockUplinkCount, "four sensors per uplink optic")

	containedIn, err := m.Walk(ctx, target, OIDEntPhysicalContainedIn)
	require.NoError(t, err)

	parents := make(map[string]int)
	for _, vb := range containedIn {
		parents[vb.Index(OIDEntPhysicalContainedIn)] = vb.AsInt(0)
	}

	for _, vb := range values {
		parent, ok := parents[vb.Index(OIDEntSensorValue)]
		require.True(t, ok, "every sensor row needs a containedIn row")
		assert.Greater(t, parent, mockEntPortBase, "sensor parent must be a port physical entity")
	}
}
