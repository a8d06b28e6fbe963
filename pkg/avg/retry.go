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
	"errors"
	"fmt"
	"time"
)

// retryOnRateLimit calls fn until it returns something other than a 429.
// With the default policy this loops for as long as the API keeps
// answering 429; MaxRetries and MaxWait bound it when set.
func retryOnRateLimit[T any](ctx context.Context, s *Syncer, endpoint string, page int, fn func() (T, error)) (T, error) {
	policy := s.Config.RateLimitPolicy()

	var (
		zero   T
		waited time.Duration
	)

	for attempt := 1; ; attempt++ {
		v, err := fn()
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return v, err
		}

		s.Metrics.RecordRateLimited(endpoint)

		if policy.MaxRetries > 0 && attempt > policy.MaxRetries {
			return zero, fmt.Errorf("%w: %s page %d after %d attempts: %w",
				ErrRateLimitExhausted, endpoint, page, attempt, err)
		}

		if policy.MaxWait > 0 && waited+policy.Delay > policy.MaxWait {
			return zero, fmt.Errorf("%w: %s page %d after waiting %s: %w",
				ErrRateLimitExhausted, endpoint, page, waited, err)
		}

		s.Logger.Warn().
			Str("endpoint", endpoint).
			Int("page", page).
			Int("attempt", attempt).
			Dur("delay", policy.Delay).
			Msg("Rate limited, waiting before retry")

		if err := s.Clock.Sleep(ctx, policy.Delay); err != nil {
			return zero, err
		}

		waited += policy.Delay
	}
}
