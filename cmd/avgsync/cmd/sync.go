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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carverauto/avgsync/pkg/watermark"
)

func newSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download alerts created since the last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, log, err := opts.loadConfig(ctx, true)
			if err != nil {
				return err
			}

			syncer, cleanup, err := opts.newSyncer(ctx, cfg, log, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := syncer.Run(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Alert sync failed")
				return err
			}

			wm := "unchanged"
			if result.NewWatermark != nil {
				wm = watermark.Format(*result.NewWatermark)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved=%d failed=%d skipped=%d watermark=%s\n",
				result.Saved, result.Failed, result.Skipped, wm)

			return nil
		},
	}
}
