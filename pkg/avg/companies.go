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
	"encoding/json"
	"fmt"
	"net/http"
)

// ResolveCompanyID returns the first company visible to the token. Only
// single-company credentials are supported; extra companies are ignored.
func (c *Client) ResolveCompanyID(ctx context.Context, accessToken string) (string, error) {
	c.Logger.Info().Msg("Retrieving company ID")

	req, err := c.newAuthorizedRequest(ctx, http.MethodGet,
		c.Config.Endpoint+"/api/v1/users/companies", accessToken, http.NoBody)
	if err != nil {
		return "", err
	}

	_, body, err := c.do(ctx, endpointCompanies, req)
	if err != nil {
		return "", err
	}

	var companies CompaniesResponse

	if err := json.Unmarshal(body, &companies); err != nil {
		return "", fmt.Errorf("failed to parse companies response: %w", err)
	}

	if len(companies.Data) == 0 {
		return "", ErrNoCompanies
	}

	if companies.Data[0].ID == "" {
		return "", fmt.Errorf("%w: first company has no id", ErrNoCompanies)
	}

	c.Logger.Info().
		Int("company_count", len(companies.Data)).
		Str("company_id", companies.Data[0].ID.String()).
		Msg("Companies found")

	return companies.Data[0].ID.String(), nil
}
