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
	"regexp"
	"strings"

	"github.com/netswap/verifier/pkg/models"
)

func init() {
	register(models.DeviceTypeHPE, models.APIVersionHPE, parseVersionHPE)
	register(models.DeviceTypeCiscoIOS, models.APIVersionIOS, parseVersionIOS)
	register(models.DeviceTypeCiscoNXOS, models.APIVersionNXOS, parseVersionNXOS)
}

// Version parsers return an empty list when no version pattern
// matches; they never emit a record with an empty version.

var (
	hpeVersionLine = regexp.MustCompile(`Comware Software, Version ([\d.]+), (Release \S+)`)
	hpeModelLine   = regexp.MustCompile(`^(?:HPE|H3C)\s+(\S+(?:\s\S+)?)\s+Switch`)
)

// parseVersionHPE reads `display version`:
//
//	HPE Comware Software, Version 7.1.070, Release 6555P01
//	HPE 5945 48SFP28 Switch uptime is ...
func parseVersionHPE(raw string) []models.Record {
	version, model := "", ""

	for _, line := range lines(raw) {
		trimmed := strings.TrimSpace(line)

		if m := hpeVersionLine.FindStringSubmatch(trimmed); m != nil {
			version = m[1] + " " + m[2]
		}

		if m := hpeModelLine.FindStringSubmatch(trimmed); m != nil && model == "" {
			model = m[1]
		}
	}

	if version == "" {
		return nil
	}

	return []models.Record{models.VersionRecord{Version: version, Model: model}}
}

var (
	iosVersionLine = regexp.MustCompile(`Cisco IOS(?:-XE)? Software.*Version ([^,\s]+)`)
	iosModelLine   = regexp.MustCompile(`(?mi)^cisco\s+(\S+)\s+\(`)
	iosBootLine    = regexp.MustCompile(`(?m)^System image file is "([^"]+)"`)
)

// parseVersionIOS reads `show version` on IOS / IOS-XE.
func parseVersionIOS(raw string) []models.Record {
	m := iosVersionLine.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	rec := models.VersionRecord{Version: m[1]}

	if mm := iosModelLine.FindStringSubmatch(raw); mm != nil {
		rec.Model = mm[1]
	}

	if mb := iosBootLine.FindStringSubmatch(raw); mb != nil {
		rec.BootImage = mb[1]
	}

	return []models.Record{rec}
}

var (
	nxosVersionLine = regexp.MustCompile(`(?m)^\s*NXOS:\s*version\s+(\S+)`)
	nxosModelLine   = regexp.MustCompile(`(?m)^\s*cisco\s+(Nexus\S*\s+\S+)\s+[Cc]hassis`)
	nxosBootLine    = regexp.MustCompile(`(?m)^\s*NXOS image file is:\s*(\S+)`)
)

// parseVersionNXOS reads `show version` on NX-OS.
func parseVersionNXOS(raw string) []models.Record {
	m := nxosVersionLine.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	rec := models.VersionRecord{Version: m[1]}

	if mm := nxosModelLine.FindStringSubmatch(raw); mm != nil {
		rec.Model = mm[1]
	}

	if mb := nxosBootLine.FindStringSubmatch(raw); mb != nil {
		rec.BootImage = mb[1]
	}

	return []models.Record{rec}
}
