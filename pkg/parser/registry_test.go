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

func TestGetExactMatch(t *testing.T) {
	p, ok := Get(models.DeviceTypeHPE, models.APIFanHPE)
	require.True(t, ok)
	assert.Equal(t, models.DeviceTypeHPE, p.DeviceType())
	assert.Equal(t, models.APIFanHPE, p.APIName())
}

func TestGetFallsBackToAny(t *testing.T) {
	// ARP is registered once under DeviceTypeAny; a vendor-specific
	// lookup must land on it.
	p, ok := Get(models.DeviceTypeCiscoIOS, models.APIArp)
	require.True(t, ok)
	assert.Equal(t, models.DeviceTypeAny, p.DeviceType())
}

func TestGetExactWinsOverAny(t *testing.T) {
	p, ok := Get(models.DeviceTypeHPE, models.APIMacTableHPE)
	require.True(t, ok)
	assert.Equal(t, models.DeviceTypeHPE, p.DeviceType())
}

func TestGetOrErrorUnknown(t *testing.T) {
	_, err := GetOrError(models.DeviceTypeHPE, "get_nonexistent_dna")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParserNotFound)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	first := &funcParser{
		deviceType: models.DeviceTypeHPE,
		apiName:    "test_duplicate_key",
		parse:      func(string) []models.Record { return nil },
	}

	require.NotPanics(t, func() { Register(first) })
	require.Panics(t, func() { Register(first) })
}

func TestAPINamesCoverEveryIndicator(t *testing.T) {
	names := APINames()

	want := []string{
		models.APIFanHPE, models.APIFanIOS, models.APIFanNXOS,
		models.APIPowerHPE, models.APIPowerIOS, models.APIPowerNXOS,
		models.APITransceiverHPE, models.APITransceiverIOS, models.APITransceiverNXOS,
		models.APIMacTableHPE, models.APIMacTableIOS, models.APIMacTableNXOS,
		models.APIInterfaceStatusHPE, models.APIInterfaceStatusIOS, models.APIInterfaceStatusNXOS,
		models.APINeighborHPE, models.APINeighborIOS, models.APINeighborNXOS,
		models.APIVersionHPE, models.APIVersionIOS, models.APIVersionNXOS,
		models.APIPortChannelHPE, models.APIPortChannelIOS, models.APIPortChannelNXOS,
		models.APIErrorCount, models.APIArp,
		models.APIStaticACL, models.APIDynamicACL,
		models.APIGnmsPing, models.APIPingBatch,
	}

	for _, name := range want {
		assert.Contains(t, names, name)
	}
}

// Every registered parser must swallow garbage without panicking and
// without emitting records.
func TestParsersNeverFailOnGarbage(t *testing.T) {
	garbage := []string{
		"",
		"\x00\x01\x02\xff",
		"%%%% unrecognized command %%%%",
		"<SW-01>display something\n     ^\n % Unrecognized command found at '^' position.",
	}

	lookups := []struct {
		deviceType models.DeviceType
		apiName    string
	}{
		{models.DeviceTypeHPE, models.APIFanHPE},
		{models.DeviceTypeCiscoIOS, models.APIFanIOS},
		{models.DeviceTypeCiscoNXOS, models.APIFanNXOS},
		{models.DeviceTypeHPE, models.APIPowerHPE},
		{models.DeviceTypeCiscoIOS, models.APIPowerIOS},
		{models.DeviceTypeCiscoNXOS, models.APIPowerNXOS},
		{models.DeviceTypeHPE, models.APITransceiverHPE},
		{models.DeviceTypeCiscoIOS, models.APITransceiverIOS},
		{models.DeviceTypeHPE, models.APIMacTableHPE},
		{models.DeviceTypeCiscoIOS, models.APIMacTableIOS},
		{models.DeviceTypeCiscoNXOS, models.APIMacTableNXOS},
		{models.DeviceTypeHPE, models.APIInterfaceStatusHPE},
		{models.DeviceTypeCiscoIOS, models.APIInterfaceStatusIOS},
		{models.DeviceTypeHPE, models.APINeighborHPE},
		{models.DeviceTypeCiscoIOS, models.APINeighborIOS},
		{models.DeviceTypeHPE, models.APIVersionHPE},
		{models.DeviceTypeCiscoIOS, models.APIVersionIOS},
		{models.DeviceTypeCiscoNXOS, models.APIVersionNXOS},
		{models.DeviceTypeHPE, models.APIPortChannelHPE},
		{models.DeviceTypeCiscoIOS, models.APIPortChannelIOS},
		{models.DeviceTypeAny, models.APIErrorCount},
		{models.DeviceTypeAny, models.APIArp},
		{models.DeviceTypeAny, models.APIStaticACL},
		{models.DeviceTypeAny, models.APIPingBatch},
		{models.DeviceTypeAny, models.APIGnmsPing},
	}

	for _, l := range lookups {
		p, ok := Get(l.deviceType, l.apiName)
		require.True(t, ok, "missing parser for %s/%s", l.deviceType, l.apiName)

		for _, raw := range garbage {
			assert.NotPanics(t, func() {
				records := p.Parse(raw)
				assert.Empty(t, records, "%s should yield no records for garbage", l.apiName)
			})
		}
	}
}
