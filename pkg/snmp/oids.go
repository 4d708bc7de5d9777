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

// OID constants shared by the collectors and the mock engine. Defined
// here once so both sides speak the same tree.
const (
	// SNMPv2-MIB
	OIDSysDescr    = ".1.3.6.1.2.1.1.1.0"
	OIDSysObjectID = ".1.3.6.1.2.1.1.2.0"
	OIDSysName     = ".1.3.6.1.2.1.1.5.0"

	// IF-MIB
	OIDIfOperStatus = ".1.3.6.1.2.1.2.2.1.8"
	OIDIfInErrors   = ".1.3.6.1.2.1.2.2.1.14"
	OIDIfOutErrors  = ".1.3.6.1.2.1.2.2.1.20"
	OIDIfName       = ".1.3.6.1.2.1.31.1.1.1.1"
	OIDIfHighSpeed  = ".1.3.6.1.2.1.31.1.1.1.15"
	OIDIfAlias      = ".1.3.6.1.2.1.31.1.1.1.18"

	// EtherLike-MIB
	OIDDot3StatsDuplexStatus = ".1.3.6.1.2.1.10.7.2.1.19"
	OIDDot3StatsFCSErrors    = ".1.3.6.1.2.1.10.7.2.1.3"

	// BRIDGE-MIB (per-VLAN context on IOS via community@vlan)
	OIDDot1dBasePortIfIndex = ".1.3.6.1.2.1.17.1.4.1.2"
	OIDDot1dTpFdbPort       = ".1.3.6.1.2.1.17.4.3.1.2"

	// Q-BRIDGE-MIB (HPE, NX-OS: VLAN in the index)
	OIDDot1qTpFdbPort = ".1.3.6.1.2.1.17.7.1.2.2.1.2"

	// IEEE8023-LAG-MIB
	OIDDot3adAggPortActorOperState = ".1.2.840.10006.300.43.1.2.1.1.21"
	OIDDot3adAggPortAttachedAggID  = ".1.2.840.10006.300.43.1.2.1.1.13"

	// ENTITY-MIB
	OIDEntPhysicalDescr       = ".1.3.6.1.2.1.47.1.1.1.1.2"
	OIDEntPhysicalContainedIn = ".1.3.6.1.2.1.47.1.1.1.1.4"
	OIDEntPhysicalName        = ".1.3.6.1.2.1.47.1.1.1.1.7"
	OIDEntPhysicalSoftwareRev = ".1.3.6.1.2.1.47.1.1.1.1.10"
	OIDEntPhysicalModelName   = ".1.3.6.1.2.1.47.1.1.1.1.13"

	// CISCO-ENVMON-MIB
	OIDCiscoEnvMonFanDescr     = ".1.3.6.1.4.1.9.9.13.1.4.1.2"
	OIDCiscoEnvMonFanState     = ".1.3.6.1.4.1.9.9.13.1.4.1.3"
	OIDCiscoEnvMonSupplyDescr  = ".1.3.6.1.4.1.9.9.13.1.5.1.2"
	OIDCiscoEnvMonSupplyState  = ".1.3.6.1.4.1.9.9.13.1.5.1.3"
	OIDCiscoEnvMonSupplySource = ".1.3.6.1.4.1.9.9.13.1.5.1.4"

	// CISCO-ENTITY-SENSOR-MIB
	OIDEntSensorType  = ".1.3.6.1.4.1.9.9.91.1.1.1.1.1"
	OIDEntSensorScale = ".1.3.6.1.4.1.9.9.91.1.1.1.1.2"
	OIDEntSensorValue = ".1.3.6.1.4.1.9.9.91.1.1.1.1.4"

	// CISCO-CDP-MIB
	OIDCdpCacheDeviceID   = ".1.3.6.1.4.1.9.9.23.1.2.1.1.6"
	OIDCdpCacheDevicePort = ".1.3.6.1.4.1.9.9.23.1.2.1.1.7"

	// CISCO-VTP-MIB
	OIDVtpVlanState = ".1.3.6.1.4.1.9.9.46.1.3.1.1.2.1"

	// HH3C-ENTITY-EXT-MIB (HPE Comware fan/power state tables)
	OIDHh3cDevMFanStatus   = ".1.3.6.1.4.1.25506.8.35.9.1.1.1.2"
	OIDHh3cDevMPowerStatus = ".1.3.6.1.4.1.25506.8.35.9.1.2.1.2"

	// HH3C-TRANSCEIVER-INFO-MIB (hundredths of a unit)
	OIDHh3cTransceiverTemp    = ".1.3.6.1.4.1.25506.2.70.1.1.1.15"
	OIDHh3cTransceiverVoltage = ".1.3.6.1.4.1.25506.2.70.1.1.1.16"
	OIDHh3cTransceiverRxPower = ".1.3.6.1.4.1.25506.2.70.1.1.1.9"
	OIDHh3cTransceiverTxPower = ".1.3.6.1.4.1.25506.2.70.1.1.1.12"
)
