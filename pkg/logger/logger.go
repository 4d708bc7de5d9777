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

// Package logger provides JSON structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string `json:"level"`
	Debug  bool   `json:"debug"`
	Output string `json:"output"`
}

// Logger is the logging surface the rest of the codebase depends on.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) Logger
}

type zerologLogger struct {
	l zerolog.Logger
}

// New builds a Logger writing JSON lines to stdout (or stderr).
func New(config Config) (Logger, error) {
	var output io.Writer = os.Stdout

	if config.Output == "stderr" {
		output = os.Stderr
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zerologLogger{l: l}, nil
}

func (z *zerologLogger) Trace() *zerolog.Event { return z.l.Trace() }
func (z *zerologLogger) Debug() *zerolog.Event { return z.l.Debug() }
func (z *zerologLogger) Info() *zerolog.Event  { return z.l.Info() }
func (z *zerologLogger) Warn() *zerolog.Event  { return z.l.Warn() }
func (z *zerologLogger) Error() *zerolog.Event { return z.l.Error() }
func (z *zerologLogger) Fatal() *zerolog.Event { return z.l.Fatal() }
func (z *zerologLogger) With() zerolog.Context { return z.l.With() }

func (z *zerologLogger) WithComponent(component string) Logger {
	return &zerologLogger{l: z.l.With().Str("component", component).Logger()}
}

// NewTestLogger creates a no-op logger for testing that discards all output.
func NewTestLogger() Logger {
	return &zerologLogger{l: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}
