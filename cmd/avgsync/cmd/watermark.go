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

func newWatermarkCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watermark",
		Short: "Inspect or change the stored watermark",
		Long: `The watermark is the creation time of the newest alert already downloaded.
The next sync only requests alerts created after it.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored watermark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, _, err := opts.loadConfig(cmd.Context(), false)
				if err != nil {
					return err
				}

				t, ok, err := opts.watermarkStore(cfg).Load(cmd.Context())
				if err != nil {
					return err
				}

				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "no watermark")
					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), watermark.Format(t))

				return nil
			},
		},
		&cobra.Command{
			Use:   "set <timestamp>",
			Short: "Overwrite the watermark with an ISO-8601 timestamp",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := opts.loadConfig(cmd.Context(), false)
				if err != nil {
					return err
				}

				t, err := watermark.Parse(args[0])
				if err != nil {
					return err
				}

				store := opts.watermarkStore(cfg)
				if err := store.Save(cmd.Context(), t); err != nil {
					return err
				}

				log.Info().Str("watermark", watermark.Format(t)).Str("path", store.Path()).Msg("Watermark set")
				fmt.Fprintln(cmd.OutOrStdout(), watermark.Format(t))

				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Remove the watermark so the next sync fetches every alert",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := opts.loadConfig(cmd.Context(), false)
				if err != nil {
					return err
				}

				store := opts.watermarkStore(cfg)
				if err := store.Reset(cmd.Context()); err != nil {
					return err
				}

				log.Info().Str("path", store.Path()).Msg("Watermark reset")

				return nil
			},
		},
	)

	return cmd
}
