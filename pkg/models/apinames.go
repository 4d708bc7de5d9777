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

// Canonical indicator identifiers (api names). One parser and one
// collector bind to each; scheduler job names use the same strings.
const (
	APIFanHPE  = "get_fan_hpe_dna"
	APIFanIOS  = "get_fan_ios_dna"
	APIFanNXOS = "get_fan_nxos_dna"

	APIPowerHPE  = "get_power_hpe_dna"
	APIPowerIOS  = "get_power_ios_dna"
	APIPowerNXOS = "get_power_nxos_dna"

	APITransceiverHPE  = "get_transceiver_hpe_dna"
	APITransceiverIOS  = "get_transceiver_ios_dna"
	APITransceiverNXOS = "get_transceiver_nxos_dna"

	APIMacTableHPE  = "get_mac_table_hpe_dna"
	APIMacTableIOS  = "get_mac_table_ios_dna"
	APIMacTableNXOS = "get_mac_table_nxos_dna"

	APIInterfaceStatusHPE  = "get_interface_status_hpe_dna"
	APIInterfaceStatusIOS  = "get_interface_status_ios_dna"
	APIInterfaceStatusNXOS = "get_interface_status_nxos_dna"

	APINeighborHPE  = "get_neighbor_hpe_dna"
	APINeighborIOS  = "get_neighbor_ios_dna"
	APINeighborNXOS = "get_neighbor_nxos_dna"

	APIVersionHPE  = "get_version_hpe_dna"
	APIVersionIOS  = "get_version_ios_dna"
	APIVersionNXOS = "get_version_nxos_dna"

	APIPortChannelHPE  = "get_port_channel_hpe_dna"
	APIPortChannelIOS  = "get_port_channel_ios_dna"
	APIPortChannelNXOS = "get_port_channel_nxos_dna"

	APIErrorCount = "get_error_count_dna"
	APIArp        = "get_arp_dna"

	// API-only indicators; the SNMP-mode service forwards these to the
	// HTTP-mode service (the passthrough set).
	APIStaticACL  = "get_static_acl"
	APIDynamicACL = "get_dynamic_acl"
	APIGnmsPing   = "gnms_ping"
	APIPingBatch  = "ping_batch"

	// JobClientCollection is the scheduler job name that routes to the
	// client-collection service instead of an indicator service.
	JobClientCollection = "client-collection"
)

// PassthroughAPINames is the fixed set the SNMP-mode service delegates
// to the HTTP-mode service because SNMP cannot produce them.
var PassthroughAPINames = map[string]bool{
	APIStaticACL:  true,
	APIDynamicACL: true,
	APIGnmsPing:   true,
	APIPingBatch:  true,
}

// AllAPINames lists every collectible indicator, for default endpoint
// wiring and diagnostics.
var AllAPINames = []string{
	APIFanHPE, APIFanIOS, APIFanNXOS,
	APIPowerHPE, APIPowerIOS, APIPowerNXOS,
	APITransceiverHPE, APITransceiverIOS, APITransceiverNXOS,
	APIMacTableHPE, APIMacTableIOS, APIMacTableNXOS,
	APIInterfaceStatusHPE, APIInterfaceStatusIOS, APIInterfaceStatusNXOS,
	APINeighborHPE, APINeighborIOS, APINeighborNXOS,
	APIVersionHPE, APIVersionIOS, APIVersionNXOS,
	APIPortChannelHPE, APIPortChannelIOS, APIPortChannelNXOS,
	APIErrorCount, APIArp,
	APIStaticACL, APIDynamicACL, APIGnmsPing, APIPingBatch,
}
