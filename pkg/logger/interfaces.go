/*
 * Copyright 2025 Carver Automation Corporation.
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

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	Panic() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) Logger
	WithFields(fields map[string]interface{}) Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// NewTestLogger creates a no-op logger for testing that discards all output
func NewTestLogger() Logger {
	return &zeroLogger{logger: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

// NewWriterLogger builds a logger that writes JSON lines to w at debug level.
// Tests use it to assert on emitted events.
func NewWriterLogger(w io.Writer) Logger {
	return &zeroLogger{logger: zerolog.New(w).Level(zerolog.DebugLevel)}
}
