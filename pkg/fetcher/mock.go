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

package fetcher

import (
	"context"
	"fmt"

	"github.com/netswap/verifier/pkg/models"
)

// MockFetcher serves canned vendor output so a demo stack runs with no
// devices and no collector API. Selected by USE_MOCK_API.
type MockFetcher struct{}

// NewMockFetcher builds the offline fetcher.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// Fetch returns the canned output for the indicator. Unknown
// indicators behave like an unconfigured endpoint.
func (*MockFetcher) Fetch(_ context.Context, apiName string, vars, _ map[string]string) (string, error) {
	canned, ok := mockOutputs[apiName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrEndpointNotConfigured, apiName)
	}

	switch apiName {
	case models.APIPingBatch:
		return fmt.Sprintf(canned, vars["hostname"], vars["switch_ip"]), nil
	case models.APIGnmsPing:
		return fmt.Sprintf(canned, vars["switch_ip"]), nil
	default:
		return canned, nil
	}
}

// mockOutputs hold one realistic sample per indicator, in the exact
// shape the parsers accept.
var mockOutputs = map[string]string{
	models.APIFanHPE: ` Slot 1:
 FanID    State           Airflow Direction
 1        Normal          Back-to-front
 2        Normal          Back-to-front
`,
	models.APIFanIOS: `FAN in PS-1 is OK
FAN in PS-2 is OK
`,
	models.APIFanNXOS: `Fan             Model                Hw     Status
---------------------------------------------------
Fan1(sys_fan1)  NXA-FAN-30CFM-F      --     Ok
Fan2(sys_fan2)  NXA-FAN-30CFM-F      --     Ok
`,
	models.APIPowerHPE: ` Slot 1:
 PowerID State    Mode   Current(A)  Voltage(V)  Power(W)
 1       Normal   AC     --          --          --
 2       Normal   AC     --          --          --
`,
	models.APIPowerIOS: `SW  PID                 Serial#     Status           Sys Pwr  PoE Pwr  Watts
--  ------------------  ----------  ---------------  -------  -------  -----
1A  PWR-C1-350WAC       ART2216F2XX  OK              Good     Good     350
1B  Not Present
`,
	models.APIPowerNXOS: `Power                             Actual        Actual     Total
Supply    Model                   Output        Input      Capacity   Status
-------   ---------------------   ----------    --------   --------   ------
1         NXA-PAC-500W-PI         104 W         120 W      500 W      Ok
2         NXA-PAC-500W-PI         96 W          112 W      500 W      Ok
`,
	models.APITransceiverHPE: `GigabitEthernet1/0/49 transceiver diagnostic information:
  Current diagnostic parameters:
    Temp.(C) Voltage(V)  Bias(mA)  RX power(dBm)  TX power(dBm)
    31       3.31        6.13      -2.52          -1.83
`,
	models.APITransceiverIOS: `                           Temperature  Voltage  Current   Tx Power  Rx Power
Port       Name            (Celsius)    (Volts)  (mA)      (dBm)     (dBm)
---------  --------------  -----------  -------  --------  --------  --------
Te1/1/1                    31.2         3.31     6.1       -1.8      -2.5
`,
	models.APITransceiverNXOS: `                           Temperature  Voltage  Current   Tx Power  Rx Power
Port       Name            (Celsius)    (Volts)  (mA)      (dBm)     (dBm)
---------  --------------  -----------  -------  --------  --------  --------
Eth1/49                    30.9         3.30     6.4       -1.9      -2.6
`,
	models.APIMacTableHPE: `MAC Address      VLAN ID  State          Port/Nickname            Aging
0425-c5aa-01ff   10       Learned        GE1/0/1                  Y
0425-c5aa-02aa   20       Learned        GE1/0/2                  Y
`,
	models.APIMacTableIOS: `          Mac Address Table
-------------------------------------------
Vlan    Mac Address       Type        Ports
----    -----------       --------    -----
  10    0425.c5aa.01ff    DYNAMIC     Gi1/0/1
  20    0425.c5aa.02aa    DYNAMIC     Gi1/0/2
`,
	models.APIMacTableNXOS: `Legend:
        * - primary entry, G - Gateway MAC, (R) - Routed MAC
   VLAN     MAC Address      Type      age     Secure NTFY Ports
---------+-----------------+--------+---------+------+----+------------------
*   10     0425.c5aa.01ff   dynamic  0         F      F    Eth1/1
*   20     0425.c5aa.02aa   dynamic  0         F      F    Eth1/2
`,
	models.APIInterfaceStatusHPE: `Brief information on interfaces in bridge mode:
Interface            Link Speed    Duplex Type PVID Description
GE1/0/1              UP   1G       F      A    10   office-a
GE1/0/2              DOWN auto     A      A    20
`,
	models.APIInterfaceStatusIOS: `Port      Name               Status       Vlan       Duplex  Speed Type
Gi1/0/1   office-a           connected    10         a-full  a-1000 10/100/1000BaseTX
Gi1/0/2                      notconnect   20           auto   auto 10/100/1000BaseTX
`,
	models.APIInterfaceStatusNXOS: `Port      Name               Status       Vlan       Duplex  Speed Type
Eth1/1    office-a           connected    10         full    1000   1000base-t
Eth1/2    --                 notconnec    20         auto    auto   1000base-t
`,
	models.APINeighborHPE: `System Name          Local Interface Chassis ID        Port ID
core-01              GE1/1/1         0425-c5bb-0001    Ten-GigabitEthernet1/0/7
core-02              GE1/1/2         0425-c5bb-0002    Ten-GigabitEthernet1/0/7
`,
	models.APINeighborIOS: `-------------------------
Device ID: core-01.corp.example.com
Entry address(es):
  IP address: 10.0.254.1
Platform: cisco WS-C4500X,  Capabilities: Router Switch IGMP
Interface: TenGigabitEthernet1/1/1,  Port ID (outgoing port): TenGigabitEthernet1/0/7
`,
	models.APINeighborNXOS: `-------------------------
Device ID: core-01.corp.example.com
Entry address(es):
  IP address: 10.0.254.1
Platform: N9K-C93180YC-EX,  Capabilities: Router Switch IGMP
Interface: Ethernet1/49,  Port ID (outgoing port): Ethernet1/7
`,
	models.APIVersionHPE: `HPE Comware Software, Version 7.1.070, Release 6555P01
Copyright (c) 2010-2021 Hewlett Packard Enterprise Development LP
HPE 5945 48SFP28 Switch uptime is 12 weeks, 3 days, 6 hours
`,
	models.APIVersionIOS: `Cisco IOS Software, C2960X Software (C2960X-UNIVERSALK9-M), Version 15.2(7)E3, RELEASE SOFTWARE (fc3)
System image file is "flash:/c2960x-universalk9-mz.152-7.E3.bin"
cisco WS-C2960X-48TS-L (APM86XXX) processor (revision F0) with 524288K bytes of memory.
`,
	models.APIVersionNXOS: `Cisco Nexus Operating System (NX-OS) Software
  NXOS: version 9.3(10)
  cisco Nexus9000 C93180YC-EX chassis
`,
	models.APIPortChannelHPE: `Aggregate Interface: Bridge-Aggregation100
Aggregation Mode: Dynamic
  Port             Status  Priority Oper-Key  Flag
  XGE1/1/1         S       32768    1         {ACDEF}
  XGE1/1/2         S       32768    1         {ACDEF}
`,
	models.APIPortChannelIOS: `Flags:  D - down        P - bundled in port-channel
        U - in use      N - not in use, no aggregation
Group  Port-channel  Protocol    Ports
------+-------------+-----------+-----------------------------------------------
100    Po100(SU)       LACP      Te1/1/1(P) Te1/1/2(P)
`,
	models.APIPortChannelNXOS: `Flags:  D - Down        P - Up in port-channel (members)
        U - Up (port-channel)
--------------------------------------------------------------------------------
Group Port-       Type     Protocol  Member Ports
      Channel
--------------------------------------------------------------------------------
100   Po100(SU)   Eth      LACP      Eth1/49(P)   Eth1/50(P)
`,
	models.APIErrorCount: `Port        Align-Err     FCS-Err    Xmit-Err     Rcv-Err  UnderSize
Gi1/0/1             0           0           0           0          0
Gi1/0/2             0           3           0           2          0
`,
	models.APIArp: `Protocol  Address          Age (min)  Hardware Addr   Type   Interface
Internet  10.20.30.5              12   0425.c5aa.01ff  ARPA   Vlan10
Internet  10.20.30.6               4   0425.c5aa.02aa  ARPA   Vlan20
`,
	models.APIStaticACL: `interface_name,acl_name,direction
GigabitEthernet1/0/1,CLIENT-IN,in
GigabitEthernet1/0/2,CLIENT-IN,in
`,
	models.APIDynamicACL: `interface_name,acl_name,direction
GigabitEthernet1/0/1,DACL-3001,in
`,
	models.APIGnmsPing: `%s alive 1.20
`,
	models.APIPingBatch: `hostname,ip,reachable,rtt_ms
%s,%s,true,1.42
client-a,10.20.30.5,true,0.87
client-b,10.20.30.6,false,
`,
}
