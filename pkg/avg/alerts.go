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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SearchAlertsPage runs one page of the alert search.
func (c *Client) SearchAlertsPage(
	ctx context.Context, accessToken, companyID string, page, size int, search *AlertSearchRequest) (*AlertSearchPage, error) {
	reqURL := fmt.Sprintf("%s/api/v1/companies/%s/alerts/search?page=%d&size=%d",
		c.Config.Endpoint, url.PathEscape(companyID), page, size)

	payload, err := json.Marshal(search)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert search: %w", err)
	}

	req, err := c.newAuthorizedRequest(ctx, http.MethodPost, reqURL, accessToken, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	c.Logger.Info().
		Int("page", page).
		Str("url", reqURL).
		Msg("Requesting alerts")

	_, body, err := c.do(ctx, endpointAlertSearch, req)
	if err != nil {
		return nil, err
	}

	var searchPage AlertSearchPage

	if err := json.Unmarshal(body, &searchPage); err != nil {
		return nil, fmt.Errorf("failed to parse alert search response: %w", err)
	}

	return &searchPage, nil
}

// GetAlertDetail fetches the full alert. Anything other than 200 is
// returned as a *StatusError.
func (c *Client) GetAlertDetail(ctx context.Context, accessToken, companyID string, alertID ID) (*AlertDetail, error) {
	reqURL := fmt.Sprintf("%s/api/v1/companies/%s/alerts/%s",
		c.Config.Endpoint, url.PathEscape(companyID), url.PathEscape(alertID.String()))

	req, err := c.newAuthorizedRequest(ctx, http.MethodGet, reqURL, accessToken, http.NoBody)
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(ctx, endpointAlertDetail, req)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, newStatusError(endpointAlertDetail, status, body)
	}

	var fields alertDetailFields

	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse alert detail %s: %w", alertID, err)
	}

	return &AlertDetail{
		ID:       fields.ID,
		Name:     fields.Name,
		DeviceID: fields.DeviceID,
		Raw:      json.RawMessage(body),
	}, nil
}
