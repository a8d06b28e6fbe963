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
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/avgsync/pkg/avg"
	"github.com/carverauto/avgsync/pkg/metrics"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the sync every poll_interval until interrupted",
		Long: `Run the sync immediately and then every poll_interval. Each run fetches a
fresh token and device list. A failed run is logged and retried on the next
tick. When metrics_addr is set, Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, log, err := opts.loadConfig(ctx, true)
			if err != nil {
				return err
			}

			collector := metrics.NewCollector()

			syncer, cleanup, err := opts.newSyncer(ctx, cfg, log, collector)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := avg.NewService(syncer, cfg.PollInterval.Std(), log)

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return svc.Start(gctx)
			})

			if cfg.MetricsAddr != "" {
				srv := metrics.NewServer(cfg.MetricsAddr, collector.Registry(), log)

				g.Go(func() error {
					return srv.Run(gctx)
				})
			}

			return g.Wait()
		},
	}
}
