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

// Package cmd contains the avgsync CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/carverauto/avgsync/pkg/logger"
)

type rootOptions struct {
	configPath string
	baseDir    string
	debug      bool

	fs afero.Fs
	// logger overrides the configured logger when set.
	logger logger.Logger
}

// NewRootCommand builds the command tree operating on fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	return newRootCommand(&rootOptions{fs: fs})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "avgsync",
		Short: "Incremental AVG Business alert downloader",
		Long: `avgsync downloads security alerts from the AVG / Avast Business API,
joins each alert with its device record and writes one JSON file per alert.

Only alerts created after the stored watermark are fetched, so repeated runs
pick up where the previous one stopped.

Examples:
  # Download new alerts once
  avgsync sync --config /etc/avgsync/config.yaml

  # Poll every poll_interval and serve Prometheus metrics
  avgsync watch --config /etc/avgsync/config.yaml

  # Start over from the first alert
  avgsync watermark reset`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a JSON or YAML config file")
	root.PersistentFlags().StringVar(&opts.baseDir, "base-dir", "", "override the base directory for output and watermark")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newSyncCommand(opts),
		newWatchCommand(opts),
		newWatermarkCommand(opts),
		newVersionCommand(),
	)

	return root
}

// Execute runs the CLI against the OS filesystem.
func Execute(ctx context.Context) error {
	err := NewRootCommand(afero.NewOsFs()).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	return err
}
