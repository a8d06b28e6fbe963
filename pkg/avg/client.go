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
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carverauto/avgsync/pkg/logger"
	"golang.org/x/time/rate"
)

const (
	endpointToken       = "token"
	endpointCompanies   = "companies"
	endpointDevices     = "devices"
	endpointAlertSearch = "alerts_search"
	endpointAlertDetail = "alert_detail"
)

// Client talks to the AVG Business API. It implements TokenProvider,
// CompanyResolver, DeviceFetcher and AlertFetcher.
type Client struct {
	Config     *Config
	HTTPClient HTTPClient
	Limiter    *rate.Limiter
	Metrics    Metrics
	Logger     logger.Logger
}

// NewClient builds a Client from cfg. RequestsPerSecond of zero disables
// client-side pacing; RequestTimeout of zero leaves transport defaults.
func NewClient(cfg *Config, log logger.Logger, metrics Metrics) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	if metrics == nil {
		metrics = NoOpMetrics{}
	}

	return &Client{
		Config:     cfg,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout.Std()},
		Limiter:    limiter,
		Metrics:    metrics,
		Logger:     log.WithComponent("avg-client"),
	}
}

// do sends req and returns the status and body. Non-2xx responses come back
// as a *StatusError together with the body.
func (c *Client) do(ctx context.Context, endpoint string, req *http.Request) (int, []byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	c.Metrics.RecordAPICall(endpoint, resp.StatusCode, time.Since(start))

	c.Logger.Debug().
		Str("endpoint", endpoint).
		Str("url", req.URL.Redacted()).
		Int("status_code", resp.StatusCode).
		Msg("API response")

	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read %s response body: %w", endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, body, newStatusError(endpoint, resp.StatusCode, body)
	}

	return resp.StatusCode, body, nil
}

func (c *Client) newAuthorizedRequest(ctx context.Context, method, url, accessToken string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	return req, nil
}
