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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netswap/verifier/pkg/models"
)

func TestParseFanHPE(t *testing.T) {
	raw := `<SW-01>display fan
Slot 1:
 FanID    State           Airflow Direction
 1        Normal          Back-to-front
 3        Absent          Back-to-front
`

	records := parseFanHPE(raw)
	require.Len(t, records, 2)

	assert.Equal(t, models.FanRecord{FanID: "Fan 1/1", Status: "normal"}, records[0])
	assert.Equal(t, models.FanRecord{FanID: "Fan 1/3", Status: "absent"}, records[1])
}

func TestParseFanHPEMultiSlot(t *testing.T) {
	raw := `Slot 1:
 FanID    State
 1        Normal
Slot 2:
 FanID    State
 1        Fault
`

	records := parseFanHPE(raw)
	require.Len(t, records, 2)

	assert.Equal(t, models.FanRecord{FanID: "Fan 1/1", Status: "normal"}, records[0])
	assert.Equal(t, models.FanRecord{FanID: "Fan 2/1", Status: "fail"}, records[1])
}

func TestParseFanIOS(t *testing.T) {
	raw := `FAN 1 is OK
FAN 2 is FAULTY
FAN in PS-1 is NOT PRESENT
`

	records := parseFanIOS(raw)
	require.Len(t, records, 3)

	assert.Equal(t, models.FanRecord{FanID: "Fan 1", Status: "ok"}, records[0])
	assert.Equal(t, models.FanRecord{FanID: "Fan 2", Status: "fail"}, records[1])
	assert.Equal(t, models.FanRecord{FanID: "Fan PS-1", Status: "absent"}, records[2])
}

func TestParseFanNXOS(t *testing.T) {
	raw := `Fan:
------------------------------------------------------
Fan             Model                Hw     Status
------------------------------------------------------
Fan1(sys_fan1)  N9K-C9300-FAN2       --     Ok
Fan2(sys_fan2)  N9K-C9300-FAN2       --     Failure
`

	records := parseFanNXOS(raw)
	require.Len(t, records, 2)

	assert.Equal(t, models.FanRecord{FanID: "Fan1", Status: "ok"}, records[0])
	assert.Equal(t, models.FanRecord{FanID: "Fan2", Status: "fail"}, records[1])
}

func TestParseFanCSVFallback(t *testing.T) {
	raw := "fan_id,status\nFan 1/1,Normal\nFan 1/2,Absent\n"

	records := parseFanHPE(raw)
	require.Len(t, records, 2)
	assert.Equal(t, models.FanRecord{FanID: "Fan 1/1", Status: "normal"}, records[0])
}

func TestParsePowerHPE(t *testing.T) {
	raw := `Slot 1:
 PowerID State    Mode   Current(A)  Voltage(V)  Power(W)
 1       Normal   AC     --          --          450
 2       Absent   AC     --          --          --
`

	records := parsePowerHPE(raw)
	require.Len(t, records, 2)

	assert.Equal(t, models.PowerRecord{PowerID: "Power 1/1", Status: "normal", Watts: 450}, records[0])
	assert.Equal(t, models.PowerRecord{PowerID: "Power 1/2", Status: "absent"}, records[1])
}

func TestParsePowerIOS(t *testing.T) {
	raw := `SW  PID                 Serial#     Status           Sys Pwr  PoE Pwr  Watts
--  ------------------  ----------  ---------------  -------  -------  -----
1A  PWR-C1-350WAC       DCB1636C1K0 OK               Good     Good     350
1B  Not Present
`

	records := parsePowerIOS(raw)
	require.Len(t, records, 1)

	assert.Equal(t, models.PowerRecord{PowerID: "Power 1A", Status: "ok", Watts: 350}, records[0])
}

func TestParsePowerNXOS(t *testing.T) {
	raw := `Power Supply:
Voltage: 12 Volts
Supply    Model                    Output     Capacity    Status
-------   ------------------       ------     --------    ------
1         N9K-PAC-650W-B            104 W        650 W    Ok
2         N9K-PAC-650W-B              0 W        650 W    Shutdown
`

	records := parsePowerNXOS(raw)
	require.Len(t, records, 2)

	assert.Equal(t, models.PowerRecord{PowerID: "Power 1", Status: "ok", Watts: 104}, records[0])
	assert.Equal(t, models.PowerRecord{PowerID: "Power 2", Status: "fail", Watts: 0}, records[1])
}

func TestParseTransceiverHPESingleLane(t *testing.T) {
	raw := `Ten-GigabitEthernet1/0/49 transceiver diagnostic information:
  Current diagnostic parameters:
    Temp.(C) Voltage(V)  Bias(mA)  RX power(dBm)  TX power(dBm)
    36       3.31        6.13      -2.27          -2.67
`

	records := parseTransceiverHPE(raw)
	require.Len(t, records, 1)

	rec, ok := records[0].(models.TransceiverRecord)
	require.True(t, ok)

	assert.Equal(t, "Ten-GigabitEthernet1/0/49", rec.InterfaceName)
	assert.Equal(t, 1, rec.Lane)
	require.NotNil(t, rec.TemperatureC)
	assert.InDelta(t, 36.0, *rec.TemperatureC, 0.001)
	require.NotNil(t, rec.RxPowerDBM)
	assert.InDelta(t, -2.27, *rec.RxPowerDBM, 0.001)
	require.NotNil(t, rec.TxPowerDBM)
	assert.InDelta(t, -2.67, *rec.TxPowerDBM, 0.001)
}

func TestParseTransceiverHPEMultiLane(t *testing.T) {
	raw := `FortyGigE1/0/54 transceiver diagnostic information:
  Current diagnostic parameters:
    Lane  Temp.(C)  Voltage(V)  Bias(mA)  RX power(dBm)  TX power(dBm)
    1     30        3.29        6.50      -1.56          -0.56
    2     30        3.29        6.48      -1.61          -0.60
    3     30        3.29        6.52      -1.49          -0.58
    4     30        3.29        6.47      -1.70          -0.61
`

	records := parseTransceiverHPE(raw)
	require.Len(t, records, 4)

	for i, r := range records {
		rec, ok := r.(models.TransceiverRecord)
		require.True(t, ok)
		assert.Equal(t, "FortyGigE1/0/54", rec.InterfaceName)
		assert.Equal(t, i+1, rec.Lane)
	}
}

func TestParseTransceiverCisco(t *testing.T) {
	raw := `                           Temperature  Voltage  Current   Tx Power  Rx Power
Port       Name            (Celsius)    (Volts)  (mA)      (dBm)     (dBm)
---------  --------------  -----------  -------  --------  --------  --------
Te1/0/1                    29.5         3.28     6.1       -2.5      -3.1
Te1/0/2                    31.0         3.30     5.9       -2.1      -2.8
`

	records := parseTransceiverCisco(raw)
	require.Len(t, records, 2)

	rec, ok := records[0].(models.TransceiverRecord)
	require.True(t, ok)
	assert.Equal(t, "Te1/0/1", rec.InterfaceName)
	assert.Equal(t, 1, rec.Lane)
	require.NotNil(t, rec.TxPowerDBM)
	assert.InDelta(t, -2.5, *rec.TxPowerDBM, 0.001)
}

func TestParseMacTableHPE(t *testing.T) {
	raw := `MAC Address      VLAN ID  State          Port/Nickname            Aging
0425-c5aa-01ff   100      Learned        XGE1/0/49                Y
d85d-4c11-22aa   200      Learned        GE1/0/1                  Y
`

	records := parseMacTableHPE(raw)
	require.Len(t, records, 2)

	rec, ok := records[0].(models.MacTableRecord)
	require.True(t, ok)
	assert.Equal(t, "04:25:C5:AA:01:FF", rec.MACAddress)
	assert.Equal(t, 100, rec.VLANID)
	assert.Equal(t, "XGE1/0/49", rec.InterfaceName)
}

func TestParseMacTableIOS(t *testing.T) {
	raw := `          Mac Address Table
-------------------------------------------

Vlan    Mac Address       Type        Ports
----    -----------       --------    -----
 100    0425.c5aa.01ff    DYNAMIC     Gi1/0/1
 200    d85d.4c11.22aa    STATIC      Gi1/0/2
`

	records := parseMacTableIOS(raw)
	require.Len(t, records, 2)

	rec, ok := records[0].(models.MacTableRecord)
	require.True(t, ok)
	assert.Equal(t, "04:25:C5:AA:01:FF", rec.MACAddress)
	assert.Equal(t, 100, rec.VLANID)
	assert.Equal(t, "Gi1/0/1", rec.InterfaceName)
}

func TestParseMacTableNXOS(t *testing.T) {
	raw := `Legend:
        * - primary entry, G - Gateway MAC, (R) - Routed MAC
   VLAN     MAC Address      Type      age     Secure NTFY Ports
---------+-----------------+--------+---------+------+----+------
* 100     0425.c5aa.01ff   dynamic  0         F      F    Eth1/1
G 1       d85d.4c11.22aa   static   -         F      F    sup-eth1(R)
`

	records := parseMacTableNXOS(raw)
	require.Len(t, records, 2)

	rec, ok := records[0].(models.MacTableRecord)
	require.True(t, ok)
	assert.Equal(t, "04:25:C5:AA:01:FF", rec.MACAddress)
	assert.Equal(t, 100, rec.VLANID)
	assert.Equal(t, "Eth1/1", rec.InterfaceName)
}

func TestParseMacTableDropsInvalidRows(t *testing.T) {
	raw := `MAC Address      VLAN ID  State          Port/Nickname            Aging
not-a-mac-addr   100      Learned        XGE1/0/49                Y
0425-c5aa-01ff   5000     Learned        XGE1/0/49                Y
0425-c5aa-01ff   100      Learned        XGE1/0/49                Y
`

	records := parseMacTableHPE(raw)
	require.Len(t, records, 1)
}

func TestParseInterfaceStatusHPE(t *testing.T) {
	raw := `Brief information on interfaces in bridge mode:
Interface            Link Speed   Duplex Type PVID Description
XGE1/0/49            UP   10G     F      T    1    uplink to core
GE1/0/1              DOWN auto    A      A    100
GE1/0/2              ADM  auto    A      A    100
`

	records := parseInterfaceStatusHPE(raw)
	require.Len(t, records, 3)

	first, ok := records[0].(models.InterfaceStatusRecord)
	require.True(t, ok)
	assert.Equal(t, "XGE1/0/49", first.InterfaceName)
	assert.Equal(t, "up", first.LinkStatus)
	assert.Equal(t, "10G", first.Speed)
	assert.Equal(t, "full", first.Duplex)
	assert.Equal(t, 1, first.VLANID)
	assert.Equal(t, "uplink to core", first.Description)

	second := records[1].(models.InterfaceStatusRecord)
	assert.Equal(t, "down", second.LinkStatus)

	third := records[2].(models.InterfaceStatusRecord)
	assert.Equal(t, "down", third.LinkStatus)
}

func TestParseInterfaceStatusCisco(t *testing.T) {
	raw := `Port      Name            Status       Vlan   Duplex  Speed Type
Gi1/0/1   server42        connected    100    a-full  a-1000 10/100/1000BaseTX
Gi1/0/2                   notconnect   1      auto    auto 10/100/1000BaseTX
`

	records := parseInterfaceStatusCisco(raw)
	require.Len(t, records, 2)

	first, ok := records[0].(models.InterfaceStatusRecord)
	require.True(t, ok)
	assert.Equal(t, "Gi1/0/1", first.InterfaceName)
	assert.Equal(t, "up", first.LinkStatus)
	assert.Equal(t, "1G", first.Speed)
	assert.Equal(t, "full", first.Duplex)
	assert.Equal(t, 100, first.VLANID)
	assert.Equal(t, "server42", first.Description)

	second := records[1].(models.InterfaceStatusRecord)
	assert.Equal(t, "down", second.LinkStatus)
	assert.Equal(t, "auto", second.Speed)
	assert.Empty(t, second.Description)
}

func TestParseNeighborHPE(t *testing.T) {
	raw := `System Name          Local Interface Chassis ID      Port ID
core-01              XGE1/0/49       00e0-fc00-0001  Ten-GigabitEthernet1/1/1
core-02              XGE1/0/50       00e0-fc00-0002  Ten-GigabitEthernet1/1/1
`

	records := parseNeighborHPE(raw)
	require.Len(t, records, 2)

	rec, ok := records[0].(models.NeighborRecord)
	require.True(t, ok)
	assert.Equal(t, "XGE1/0/49", rec.LocalInterface)
	assert.Equal(t, "core-01", rec.RemoteHostname)
	assert.Equal(t, "Ten-GigabitEthernet1/1/1", rec.RemoteInterface)
	assert.Equal(t, "lldp", rec.Protocol)
}

func TestParseNeighborCiscoCDP(t *testing.T) {
	raw := `-------------------------
Device ID: core-01.example.net
Entry address(es):
  IP address: 10.255.0.1
Platform: cisco WS-C4500X-32,  Capabilities: Router Switch IGMP
Interface: GigabitEthernet1/0/49,  Port ID (outgoing port): TenGigabitEthernet1/1/1
Holdtime : 133 sec
-------------------------
Device ID: core-02
Interface: GigabitEthernet1/0/50,  Port ID (outgoing port): TenGigabitEthernet1/1/1
`

	records := parseNeighborCiscoCDP(raw)
	require.Len(t, records, 2)

	first, ok := records[0].(models.NeighborRecord)
	require.True(t, ok)
	assert.Equal(t, "GigabitEthernet1/0/49", first.LocalInterface)
	assert.Equal(t, "core-01", first.RemoteHostname, "FQDN must be truncated at the first dot")
	assert.Equal(t, "TenGigabitEthernet1/1/1", first.RemoteInterface)
	assert.Equal(t, "cdp", first.Protocol)
}

func TestParseVersionHPE(t *testing.T) {
	raw := `HPE Comware Software, Version 7.1.070, Release 6555P01
Copyright (c) 2010-2021 Hewlett Packard Enterprise Development LP
HPE 5945 48SFP28 Switch uptime is 24 weeks, 3 days, 2 hours
`

	records := parseVersionHPE(raw)
	require.Len(t, records, 1)

	rec, ok := records[0].(models.VersionRecord)
	require.True(t, ok)
	assert.Equal(t, "7.1.070 Release 6555P01", rec.Version)
	assert.Equal(t, "5945 48SFP28", rec.Model)
}

func TestParseVersionIOS(t *testing.T) {
	raw := `Cisco IOS Software, C2960X Software (C2960X-UNIVERSALK9-M), Version 15.2(7)E3, RELEASE SOFTWARE (fc3)
System image file is "flash:/c2960x-universalk9-mz.152-7.E3.bin"
cisco WS-C2960X-48TS-L (APM86XXX) processor (revision D0) with 524288K bytes of memory.
`

	records := parseVersionIOS(raw)
	require.Len(t, records, 1)

	rec, ok := records[0].(models.VersionRecord)
	require.True(t, ok)
	assert.Equal(t, "15.2(7)E3", rec.Version)
	assert.Equal(t, "WS-C2960X-48TS-L", rec.Model)
	assert.Equal(t, "flash:/c2960x-universalk9-mz.152-7.E3.bin", rec.BootImage)
}

func TestParseVersionNXOS(t *testing.T) {
	raw := `Software
  BIOS: version 05.47
  NXOS: version 9.3(10)
  NXOS image file is: bootflash:///nxos.9.3.10.bin
Hardware
  cisco Nexus9000 C93180YC-EX chassis
`

	records := parseVersionNXOS(raw)
	require.Len(t, records, 1)

	rec, ok := records[0].(models.VersionRecord)
	require.True(t, ok)
	assert.Equal(t, "9.3(10)", rec.Version)
	assert.Equal(t, "Nexus9000 C93180YC-EX", rec.Model)
	assert.Equal(t, "bootflash:///nxos.9.3.10.bin", rec.BootImage)
}

func TestParseVersionNoMatchIsEmpty(t *testing.T) {
	raw := "uptime is 24 weeks\nnothing that resembles a version banner\n"

	assert.Empty(t, parseVersionHPE(raw))
	assert.Empty(t, parseVersionIOS(raw))
	assert.Empty(t, parseVersionNXOS(raw))
}

func TestParsePortChannelHPE(t *testing.T) {
	raw := `Aggregate Interface: Bridge-Aggregation1
Aggregation Mode: Dynamic
  Port             Status  Priority Oper-Key  Flag
  XGE1/0/49        S       32768    1         {ACDEF}
  XGE1/0/50        U       32768    1         {AC}
`

	records := parsePortChannelHPE(raw)
	require.Len(t, records, 2)

	first, ok := records[0].(models.PortChannelMemberRecord)
	require.True(t, ok)
	assert.Equal(t, "Bridge-Aggregation1", first.PortChannelName)
	assert.Equal(t, "XGE1/0/49", first.MemberName)
	assert.Equal(t, "up", first.SyncStatus)
	assert.Equal(t, "lacp", first.Protocol)

	second := records[1].(models.PortChannelMemberRecord)
	assert.Equal(t, "down", second.SyncStatus)
}

func TestParsePortChannelIOS(t *testing.T) {
	raw := `Group  Port-channel  Protocol    Ports
------+-------------+-----------+------------------------------
1      Po1(SU)         LACP      Gi1/0/49(P) Gi1/0/50(D)
`

	records := parsePortChannelCisco(raw)
	require.Len(t, records, 2)

	first, ok := records[0].(models.PortChannelMemberRecord)
	require.True(t, ok)
	assert.Equal(t, "Po1", first.PortChannelName)
	assert.Equal(t, "Gi1/0/49", first.MemberName)
	assert.Equal(t, "up", first.SyncStatus)
	assert.Equal(t, "lacp", first.Protocol)

	second := records[1].(models.PortChannelMemberRecord)
	assert.Equal(t, "down", second.SyncStatus)
}

func TestParsePortChannelNXOS(t *testing.T) {
	// NX-OS inserts a Type column; continuation rows carry members only.
	raw := `Group Port-       Type     Protocol  Member Ports
      Channel
--------------------------------------------------------------------------------
1     Po1(SU)     Eth      LACP      Eth1/1(P)    Eth1/2(P)
                                     Eth1/3(D)
`

	records := parsePortChannelCisco(raw)
	require.Len(t, records, 3)

	for _, r := range records {
		rec := r.(models.PortChannelMemberRecord)
		assert.Equal(t, "Po1", rec.PortChannelName)
		assert.Equal(t, "lacp", rec.Protocol)
	}

	assert.Equal(t, "up", records[0].(models.PortChannelMemberRecord).SyncStatus)
	assert.Equal(t, "down", records[2].(models.PortChannelMemberRecord).SyncStatus)
}

func TestParseACLBindingsCSV(t *testing.T) {
	raw := "interface_name,acl_name,direction\nGi1/0/1,ACL-GUEST,IN\nGi1/0/2,ACL-IOT,out\n"

	records := parseACLBindings(raw)
	require.Len(t, records, 2)

	first, ok := records[0].(models.AclBindingRecord)
	require.True(t, ok)
	assert.Equal(t, "Gi1/0/1", first.InterfaceName)
	assert.Equal(t, "ACL-GUEST", first.ACLName)
	assert.Equal(t, "in", first.Direction)
}

func TestParseACLBindingsCLI(t *testing.T) {
	raw := `interface GigabitEthernet1/0/1
 ip access-group ACL-GUEST in
interface Ten-GigabitEthernet1/0/2
 packet-filter 3000 inbound
`

	records := parseACLBindings(raw)
	require.Len(t, records, 2)

	first := records[0].(models.AclBindingRecord)
	assert.Equal(t, "GigabitEthernet1/0/1", first.InterfaceName)
	assert.Equal(t, "ACL-GUEST", first.ACLName)
	assert.Equal(t, "in", first.Direction)

	second := records[1].(models.AclBindingRecord)
	assert.Equal(t, "Ten-GigabitEthernet1/0/2", second.InterfaceName)
	assert.Equal(t, "3000", second.ACLName)
	assert.Equal(t, "in", second.Direction)
}

func TestParsePingBatch(t *testing.T) {
	raw := "hostname,ip,reachable,rtt_ms\nclient-42,10.1.2.3,true,0.82\nclient-43,10.1.2.4,false,\n"

	records := parsePingBatch(raw)
	require.Len(t, records, 2)

	first, ok := records[0].(models.PingRecord)
	require.True(t, ok)
	assert.Equal(t, "client-42", first.Hostname)
	assert.Equal(t, "10.1.2.3", first.IPAddress)
	assert.True(t, first.Reachable)
	require.NotNil(t, first.RTTMillis)
	assert.InDelta(t, 0.82, *first.RTTMillis, 0.001)

	second := records[1].(models.PingRecord)
	assert.False(t, second.Reachable)
	assert.Nil(t, second.RTTMillis)
}

func TestParsePingBatchRequiresCSV(t *testing.T) {
	assert.Empty(t, parsePingBatch("free-form ping output that is not CSV"))
}

func TestParseGnmsPing(t *testing.T) {
	raw := "10.1.2.3 alive 0.82\n10.1.2.4 unreachable\n"

	records := parseGnmsPing(raw)
	require.Len(t, records, 2)

	first := records[0].(models.PingRecord)
	assert.True(t, first.Reachable)
	require.NotNil(t, first.RTTMillis)

	second := records[1].(models.PingRecord)
	assert.False(t, second.Reachable)
	assert.Nil(t, second.RTTMillis)
}

func TestParseArpCisco(t *testing.T) {
	raw := `Protocol  Address          Age (min)  Hardware Addr   Type   Interface
Internet  10.0.0.1                0   0425.c5aa.01ff  ARPA   Vlan100
Internet  10.0.0.9                -   Incomplete      ARPA
`

	records := parseArp(raw)
	require.Len(t, records, 1, "incomplete entries must be dropped")

	rec, ok := records[0].(models.ArpRecord)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", rec.IPAddress)
	assert.Equal(t, "04:25:C5:AA:01:FF", rec.MACAddress)
	assert.Equal(t, 100, rec.VLANID)
}

func TestParseArpHPE(t *testing.T) {
	raw := `IP address      MAC address     VLAN/VSI name Interface   Aging Type
10.0.0.1        0425-c5aa-01ff  100           XGE1/0/49   19    D
`

	records := parseArp(raw)
	require.Len(t, records, 1)

	rec := records[0].(models.ArpRecord)
	assert.Equal(t, "10.0.0.1", rec.IPAddress)
	assert.Equal(t, "04:25:C5:AA:01:FF", rec.MACAddress)
	assert.Equal(t, 100, rec.VLANID)
}

func TestParseErrorCounts(t *testing.T) {
	raw := `Port        Align-Err    FCS-Err   Xmit-Err    Rcv-Err
Gi1/0/1             0          3          0          1
Gi1/0/2             0          0          0          0
`

	records := parseErrorCounts(raw)
	require.Len(t, records, 2)

	rec, ok := records[0].(models.ErrorCountRecord)
	require.True(t, ok)
	assert.Equal(t, "Gi1/0/1", rec.InterfaceName)
	assert.Equal(t, uint64(3), rec.CRCErrors)
	assert.Equal(t, uint64(0), rec.OutErrors)
	assert.Equal(t, uint64(1), rec.InErrors)
}
