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

package avg

import (
	"context"
	"time"

	"github.com/carverauto/avgsync/pkg/logger"
)

// Service repeats a Runner on a fixed interval until its context ends.
// Each run is independent; a failed run is logged and the next tick retries.
type Service struct {
	Runner   Runner
	Interval time.Duration
	Clock    Clock
	Logger   logger.Logger
}

// NewService returns a Service polling runner every interval.
func NewService(runner Runner, interval time.Duration, log logger.Logger) *Service {
	return &Service{
		Runner:   runner,
		Interval: interval,
		Clock:    RealClock(),
		Logger:   log.WithComponent("avg-service"),
	}
}

// Start runs immediately, then on every tick. It returns nil when ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.Logger.Info().Dur("interval", s.Interval).Msg("Starting alert sync service")

	s.runOnce(ctx)

	ticker := s.Clock.Ticker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info().Msg("Stopping alert sync service")
			return nil
		case <-ticker.Chan():
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	result, err := s.Runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}

		s.Logger.Error().Err(err).Msg("Alert sync run failed")

		return
	}

	s.Logger.Debug().
		Str("run_id", result.RunID).
		Int("saved", result.Saved).
		Msg("Alert sync run finished")
}
