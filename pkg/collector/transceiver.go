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
	"sort"
	"strconv"
	"strings"

	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/snmp"
)

func init() {
	for _, name := range []string{models.APITransceiverHPE, models.APITransceiverIOS, models.APITransceiverNXOS} {
		Register(&transceiverCollector{apiName: name})
	}
}

type transceiverCollector struct {
	apiName string
}

func (c *transceiverCollector) APIName() string { return c.apiName }

func (c *transceiverCollector) Collect(ctx context.Context, ip string, deviceType models.DeviceType, cache *snmp.SessionCache) (string, []models.Record, error) {
	target, err := cache.GetTarget(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	if deviceType == models.DeviceTypeHPE {
		return c.collectHPE(ctx, ip, deviceType, target, cache)
	}

	return c.collectCisco(ctx, ip, deviceType, target, cache)
}

// collectHPE reads the HH3C transceiver tables, keyed by ifIndex.
// Values are hundredths of a unit.
func (c *transceiverCollector) collectHPE(ctx context.Context, ip string, deviceType models.DeviceType, target snmp.Target, cache *snmp.SessionCache) (string, []models.Record, error) {
	names, err := cache.IfIndexMap(ctx, ip)
	if err != nil {
		return "", nil, err
	}

	engine := cache.Engine()

	temps, err := engine.Walk(ctx, target, snmp.OIDHh3cTransceiverTemp)
	if err != nil {
		return "", nil, err
	}

	volts, err := engine.Walk(ctx, target, snmp.OIDHh3cTransceiverVoltage)
	if err != nil {
		return "", nil, err
	}

	rx, err := engine.Walk(ctx, target, snmp.OIDHh3cTransceiverRxPower)
	if err != nil {
		return "", nil, err
	}

	tx, err := engine.Walk(ctx, target, snmp.OIDHh3cTransceiverTxPower)
	if err != nil {
		return "", nil, err
	}

	voltByIndex := indexInts(volts, snmp.OIDHh3cTransceiverVoltage)
	rxByIndex := indexInts(rx, snmp.OIDHh3cTransceiverRxPower)
	txByIndex := indexInts(tx, snmp.OIDHh3cTransceiverTxPower)

	var records []models.Record

	for _, vb := range temps {
		ifIndex, convErr := strconv.Atoi(vb.Index(snmp.OIDHh3cTransceiverTemp))
		if convErr != nil {
			continue
		}

		name := names[ifIndex]
		if !isPhysicalInterface(name) {
			continue
		}

		records = append(records, models.TransceiverRecord{
			InterfaceName: name,
			Lane:          1,
			TemperatureC:  floatPtr(float64(vb.AsInt(0)) / 100),
			VoltageV:      floatPtr(float64(voltByIndex[ifIndex]) / 100),
			RxPowerDBM:    floatPtr(float64(rxByIndex[ifIndex]) / 100),
			TxPowerDBM:    floatPtr(float64(txByIndex[ifIndex]) / 100),
		})
	}

	sortTransceivers(records)

	raw := FormatRaw(c.apiName, ip, deviceType, append(temps, append(rx, tx...)...))

	return raw, records, nil
}

// collectCisco crosses CISCO-ENTITY-SENSOR rows with ENTITY-MIB
// containment: each sensor's entPhysicalContainedIn names the port it
// measures, and the sensor's entPhysicalName keyword says what it is.
func (c *transceiverCollector) collectCisco(ctx context.Context, ip string, deviceType models.DeviceType, target snmp.Target, cache *snmp.SessionCache) (string, []models.Record, error) {
	engine := cache.Engine()

	types, err := engine.Walk(ctx, target, snmp.OIDEntSensorType)
	if err != nil {
		return "", nil, err
	}

	scales, err := engine.Walk(ctx, target, snmp.OIDEntSensorScale)
	if err != nil {
		return "", nil, err
	}

	values, err := engine.Walk(ctx, target, snmp.OIDEntSensorValue)
	if err != nil {
		return "", nil, err
	}

	physNames, err := engine.Walk(ctx, target, snmp.OIDEntPhysicalName)
	if err != nil {
		return "", nil, err
	}

	contained, err := engine.Walk(ctx, target, snmp.OIDEntPhysicalContainedIn)
	if err != nil {
		return "", nil, err
	}

	scaleByIndex := indexInts(scales, snmp.OIDEntSensorScale)
	valueByIndex := indexInts(values, snmp.OIDEntSensorValue)
	parentByIndex := indexInts(contained, snmp.OIDEntPhysicalContainedIn)

	nameByIndex := make(map[int]string, len(physNames))
	for _, vb := range physNames {
		if idx, convErr := strconv.Atoi(vb.Index(snmp.OIDEntPhysicalName)); convErr == nil {
			nameByIndex[idx] = vb.AsString()
		}
	}

	// One record per port, filled in as its sensors stream past.
	byPort := make(map[int]*models.TransceiverRecord)

	var portOrder []int

	for _, vb := range types {
		sensorIdx, convErr := strconv.Atoi(vb.Index(snmp.OIDEntSensorType))
		if convErr != nil {
			continue
		}

		parent := parentByIndex[sensorIdx]

		portName := nameByIndex[parent]
		if !isPhysicalInterface(portName) {
			continue
		}

		rec, ok := byPort[parent]
		if !ok {
			rec = &models.TransceiverRecord{InterfaceName: portName, Lane: 1}
			byPort[parent] = rec
			portOrder = append(portOrder, parent)
		}

		value := float64(valueByIndex[sensorIdx]) * scaleFactor(scaleByIndex[sensorIdx])

		assignSensor(rec, nameByIndex[sensorIdx], value)
	}

	records := make([]models.Record, 0, len(byPort))
	for _, parent := range portOrder {
		records = append(records, *byPort[parent])
	}

	sortTransceivers(records)

	raw := FormatRaw(c.apiName, ip, deviceType, append(types, values...))

	return raw, records, nil
}

// assignSensor routes one sensor reading into the record slot named by
// the sensor's entPhysicalName keyword. Optics that label their power
// sensors ambiguously fall back to alternating Tx then Rx.
func assignSensor(rec *models.TransceiverRecord, sensorName string, value float64) {
	lower := strings.ToLower(sensorName)

	switch {
	case strings.Contains(lower, "transmit") || strings.Contains(lower, "tx"):
		rec.TxPowerDBM = floatPtr(value)
	case strings.Contains(lower, "receive") || strings.Contains(lower, "rx"):
		rec.RxPowerDBM = floatPtr(value)
	case strings.Contains(lower, "temperature") || strings.Contains(lower, "temp"):
		rec.TemperatureC = floatPtr(value)
	case strings.Contains(lower, "voltage") || strings.Contains(lower, "volt"):
		rec.VoltageV = floatPtr(value)
	case rec.TxPowerDBM == nil:
		rec.TxPowerDBM = floatPtr(value)
	case rec.RxPowerDBM == nil:
		rec.RxPowerDBM = floatPtr(value)
	}
}

func sortTransceivers(records []models.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].(models.TransceiverRecord).InterfaceName <
			records[j].(models.TransceiverRecord).InterfaceName
	})
}
