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
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/netswap/verifier/pkg/logger"
)

// Engine is the transport the collectors and session cache run on.
// Walk returns every varbind strictly under prefix, in lexical OID
// order; Get omits entries the agent answered with
// noSuchObject/noSuchInstance/endOfMibView.
type Engine interface {
	Get(ctx context.Context, target Target, oids ...string) (map[string]VarBind, error)
	Walk(ctx context.Context, target Target, prefix string) ([]VarBind, error)
}

const (
	defaultPort           = 161
	defaultTimeout        = 3 * time.Second
	defaultRetries        = 1
	defaultMaxRepetitions = 25
	defaultWalkTimeout    = 60 * time.Second
)

// GosnmpEngine speaks SNMPv2c over UDP. Walks use GETBULK with
// configurable max-repetitions and a whole-walk deadline so a slow
// agent cannot stall a collection cycle indefinitely.
type GosnmpEngine struct {
	maxRepetitions uint32
	walkTimeout    time.Duration
	logger         logger.Logger
}

// NewGosnmpEngine builds the production engine. Zero arguments fall
// back to defaults (25 repetitions, 60s walk deadline).
func NewGosnmpEngine(maxRepetitions int, walkTimeout time.Duration, log logger.Logger) *GosnmpEngine {
	if maxRepetitions <= 0 {
		maxRepetitions = defaultMaxRepetitions
	}

	if walkTimeout <= 0 {
		walkTimeout = defaultWalkTimeout
	}

	return &GosnmpEngine{
		maxRepetitions: uint32(maxRepetitions),
		walkTimeout:    walkTimeout,
		logger:         log,
	}
}

func (e *GosnmpEngine) client(target Target) *gosnmp.GoSNMP {
	port := target.Port
	if port == 0 {
		port = defaultPort
	}

	timeout := target.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retries := target.Retries
	if retries < 0 {
		retries = defaultRetries
	}

	return &gosnmp.GoSNMP{
		Target:             target.IP,
		Port:               port,
		Community:          target.Community,
		Version:            gosnmp.Version2c,
		Timeout:            timeout,
		Retries:            retries,
		MaxOids:            gosnmp.MaxOids,
		MaxRepetitions:     e.maxRepetitions,
		ExponentialTimeout: true,
	}
}

// Get issues a single GET for the given OIDs.
func (e *GosnmpEngine) Get(ctx context.Context, target Target, oids ...string) (map[string]VarBind, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}

	client := e.client(target)
	if err := client.Connect(); err != nil {
		return nil, classify(err)
	}
	defer client.Conn.Close()

	packet, err := client.Get(oids)
	if err != nil {
		return nil, classify(err)
	}

	out := make(map[string]VarBind, len(packet.Variables))

	for _, pdu := range packet.Variables {
		if exceptional(pdu.Type) {
			continue
		}

		vb := decode(pdu)
		out[vb.OID] = vb
	}

	return out, nil
}

// Walk retrieves the subtree under prefix via repeated GETBULK,
// stopping at end-of-MIB, subtree exit, or the walk deadline.
func (e *GosnmpEngine) Walk(ctx context.Context, target Target, prefix string) ([]VarBind, error) {
	client := e.client(target)
	if err := client.Connect(); err != nil {
		return nil, classify(err)
	}
	defer client.Conn.Close()

	var (
		out      []VarBind
		norm     = NormalizeOID(prefix)
		current  = norm
		deadline = time.Now().Add(e.walkTimeout)
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, classify(err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: walk of %s on %s exceeded %s",
				ErrTimeout, prefix, target.IP, e.walkTimeout)
		}

		packet, err := client.GetBulk([]string{current}, 0, e.maxRepetitions)
		if err != nil {
			return nil, classify(err)
		}

		progressed := false

		for _, pdu := range packet.Variables {
			if pdu.Type == gosnmp.EndOfMibView {
				return out, nil
			}

			if !strings.HasPrefix(pdu.Name, norm+".") {
				return out, nil
			}

			if !exceptional(pdu.Type) {
				out = append(out, decode(pdu))
			}

			current = pdu.Name
			progressed = true
		}

		if !progressed {
			return out, nil
		}
	}
}

func exceptional(t gosnmp.Asn1BER) bool {
	switch t {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return true
	default:
		return false
	}
}

func decode(pdu gosnmp.SnmpPDU) VarBind {
	var value any

	switch pdu.Type {
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			value = b
		}
	case gosnmp.Integer:
		value = gosnmp.ToBigInt(pdu.Value).Int64()
	case gosnmp.Counter32, gosnmp.Counter64, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Uinteger32:
		value = gosnmp.ToBigInt(pdu.Value).Uint64()
	case gosnmp.ObjectIdentifier, gosnmp.IPAddress:
		if s, ok := pdu.Value.(string); ok {
			value = s
		}
	default:
		value = pdu.Value
	}

	return VarBind{OID: pdu.Name, Value: value}
}
