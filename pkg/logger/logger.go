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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// zeroLogger implements Logger on top of a zerolog.Logger value.
type zeroLogger struct {
	logger zerolog.Logger
}

// New builds a Logger from config. The returned logger also becomes the
// zerolog global so that third-party code using zerolog/log stays consistent.
// An OTel sink that cannot be created is reported and skipped.
func New(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

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

	var otelErr error

	if config.OTel != nil && config.OTel.Enabled {
		w, err := NewOTelWriter(context.Background(), *config.OTel)
		if err != nil {
			otelErr = err
		} else {
			output = zerolog.MultiLevelWriter(output, w)
			setActiveOTel(w)
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = zlog

	if otelErr != nil {
		zlog.Warn().Err(otelErr).Msg("OTel log export disabled")
	}

	return &zeroLogger{logger: zlog}, nil
}

func (z *zeroLogger) Trace() *zerolog.Event { return z.logger.Trace() }
func (z *zeroLogger) Debug() *zerolog.Event { return z.logger.Debug() }
func (z *zeroLogger) Info() *zerolog.Event  { return z.logger.Info() }
func (z *zeroLogger) Warn() *zerolog.Event  { return z.logger.Warn() }
func (z *zeroLogger) Error() *zerolog.Event { return z.logger.Error() }
func (z *zeroLogger) Fatal() *zerolog.Event { return z.logger.Fatal() }
func (z *zeroLogger) Panic() *zerolog.Event { return z.logger.Panic() }
func (z *zeroLogger) With() zerolog.Context { return z.logger.With() }

func (z *zeroLogger) WithComponent(component string) Logger {
	return &zeroLogger{logger: z.logger.With().Str("component", component).Logger()}
}

func (z *zeroLogger) WithFields(fields map[string]interface{}) Logger {
	ctx := z.logger.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}

	return &zeroLogger{logger: ctx.Logger()}
}

func (z *zeroLogger) SetLevel(level zerolog.Level) {
	z.logger = z.logger.Level(level)
}

func (z *zeroLogger) SetDebug(debug bool) {
	if debug {
		z.SetLevel(zerolog.DebugLevel)
	} else {
		z.SetLevel(zerolog.InfoLevel)
	}
}

// GetLevel reports the effective level of l when it is backed by zerolog.
func GetLevel(l Logger) zerolog.Level {
	if z, ok := l.(*zeroLogger); ok {
		return z.logger.GetLevel()
	}

	return zerolog.GlobalLevel()
}
