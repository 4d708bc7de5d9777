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
	"bufio"
	"strconv"
	"strings"
)

// lines splits raw output into trimmed-right lines, tolerating CRLF.
func lines(raw string) []string {
	var out []string

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		out = append(out, strings.TrimRight(scanner.Text(), " \t\r"))
	}

	return out
}

// isNoise reports whether a line is a banner, separator rule, or prompt
// echo that every vendor sprinkles through CLI output.
func isNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}

	// Separator rules: ----, ====, ---+---
	sep := true

	for _, r := range trimmed {
		if r != '-' && r != '=' && r != '+' && r != '*' && r != ' ' {
			sep = false
			break
		}
	}

	if sep {
		return true
	}

	// CLI error lines: "% Unrecognized command found at ..."
	if strings.HasPrefix(trimmed, "%") {
		return true
	}

	// Prompt echoes like "<SW-01>display fan" or "SW-01# show version"
	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">") {
		return true
	}

	if idx := strings.IndexAny(trimmed, "#>"); idx > 0 && idx < 40 {
		rest := strings.TrimSpace(trimmed[idx+1:])
		if strings.HasPrefix(rest, "show ") || strings.HasPrefix(rest, "display ") {
			return true
		}
	}

	return false
}

// looksLikeCSV reports whether the fetcher pre-processed the output
// into CSV with the given header fields (order-sensitive, case folded).
func looksLikeCSV(raw string, header ...string) bool {
	first := ""

	for _, l := range lines(raw) {
		if strings.TrimSpace(l) != "" {
			first = l
			break
		}
	}

	if first == "" {
		return false
	}

	cols := strings.Split(first, ",")
	if len(cols) < len(header) {
		return false
	}

	for i, want := range header {
		if !strings.EqualFold(strings.TrimSpace(cols[i]), want) {
			return false
		}
	}

	return true
}

// csvRows returns the data rows of a CSV body, skipping the header and
// blank lines. Quoting is not handled; fetcher CSV never quotes.
func csvRows(raw string) [][]string {
	var rows [][]string

	sawHeader := false

	for _, l := range lines(raw) {
		if strings.TrimSpace(l) == "" {
			continue
		}

		if !sawHeader {
			sawHeader = true
			continue
		}

		cols := strings.Split(l, ",")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		rows = append(rows, cols)
	}

	return rows
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}

	return n
}

func parseFloatPtr(s string) *float64 {
	clean := strings.TrimSpace(s)
	if clean == "" || clean == "--" || clean == "N/A" {
		return nil
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}

	return &f
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "ok", "reachable", "up":
		return true
	default:
		return false
	}
}
