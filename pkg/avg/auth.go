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

// Package avg pkg/avg/auth.go provides an integration with the AVG Business API.
package avg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GetAccessToken exchanges the configured client credentials for a bearer token.
// Any non-success status is fatal; auth failures are not retried.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	c.Logger.Info().Msg("Getting access token")

	// Form data must be application/x-www-form-urlencoded
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", c.Config.ClientID)
	data.Set("client_secret", c.Config.ClientSecret)
	data.Set("scope", c.Config.Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.TokenURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	_, body, err := c.do(ctx, endpointToken, req)
	if err != nil {
		return "", err
	}

	var tokenResp TokenResponse

	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", ErrAuthFailed
	}

	c.Logger.Info().Msg("Access token received")

	return tokenResp.AccessToken, nil
}
