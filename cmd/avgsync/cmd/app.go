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

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/avgsync/pkg/avg"
	"github.com/carverauto/avgsync/pkg/basedir"
	"github.com/carverauto/avgsync/pkg/config"
	"github.com/carverauto/avgsync/pkg/logger"
	"github.com/carverauto/avgsync/pkg/natsutil"
	"github.com/carverauto/avgsync/pkg/output"
	"github.com/carverauto/avgsync/pkg/watermark"
)

// loadConfig reads the configuration with the --base-dir override applied.
// With validate false only defaults are applied, so credentials are optional.
func (o *rootOptions) loadConfig(ctx context.Context, validate bool) (*avg.Config, logger.Logger, error) {
	cfg := &avg.Config{BaseDirOverride: o.baseDir}
	loader := config.NewConfig(o.logger)

	if validate {
		if err := loader.LoadAndValidate(ctx, o.configPath, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := loader.Load(ctx, o.configPath, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.ApplyDefaults(); err != nil {
			return nil, nil, err
		}
	}

	log, err := o.newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func (o *rootOptions) newLogger(cfg *avg.Config) (logger.Logger, error) {
	if o.logger != nil {
		return o.logger, nil
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	if o.debug {
		logCfg.Debug = true
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return log, nil
}

func (o *rootOptions) watermarkStore(cfg *avg.Config) *watermark.FileStore {
	return watermark.NewFileStore(o.fs, cfg.WatermarkFile)
}

// newSyncer creates the output and watermark directories and wires a Syncer.
// The returned cleanup closes the NATS connection when one was opened.
func (o *rootOptions) newSyncer(
	ctx context.Context, cfg *avg.Config, log logger.Logger, metrics avg.Metrics) (*avg.Syncer, func(), error) {
	if err := basedir.Ensure(o.fs, cfg.LogsDir, filepath.Dir(cfg.WatermarkFile)); err != nil {
		return nil, nil, err
	}

	var writer avg.RecordWriter = output.NewFileWriter(o.fs, cfg.LogsDir, cfg.FilenameMode, log)

	cleanup := func() {}

	if cfg.NATS != nil {
		pub, nc, err := natsutil.Connect(ctx, &natsutil.Options{
			URL:       cfg.NATS.URL,
			Stream:    cfg.NATS.Stream,
			Subject:   cfg.NATS.Subject,
			CredsFile: cfg.NATS.CredsFile,
			CAFile:    cfg.NATS.CAFile,
			CertFile:  cfg.NATS.CertFile,
			KeyFile:   cfg.NATS.KeyFile,
		}, log.WithComponent("nats"))
		if err != nil {
			return nil, nil, err
		}

		writer = output.NewPublishingWriter(writer, pub, log)
		cleanup = func() { drain(nc, log) }
	}

	client := avg.NewClient(cfg, log, metrics)
	syncer := avg.NewSyncer(cfg, client, writer, o.watermarkStore(cfg), log, metrics)

	log.Info().
		Str("logs_dir", cfg.LogsDir).
		Str("watermark_file", cfg.WatermarkFile).
		Str("endpoint", cfg.Endpoint).
		Msg("Configured alert sync")

	return syncer, cleanup, nil
}

func drain(nc *nats.Conn, log logger.Logger) {
	if err := nc.Drain(); err != nil {
		log.Warn().Err(err).Msg("Failed to drain NATS connection")
		nc.Close()
	}
}
