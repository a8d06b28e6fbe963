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

// Package avg pkg/avg/devices.go
package avg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// FetchDevicesPage fetches a single page of the company's devices.
func (c *Client) FetchDevicesPage(ctx context.Context, accessToken, companyID string, page, size int) (*DevicePage, error) {
	reqURL := fmt.Sprintf("%s/api/v1/companies/%s/devices?page=%d&size=%d",
		c.Config.Endpoint, url.PathEscape(companyID), page, size)

	req, err := c.newAuthorizedRequest(ctx, http.MethodGet, reqURL, accessToken, http.NoBody)
	if err != nil {
		return nil, err
	}

	_, body, err := c.do(ctx, endpointDevices, req)
	if err != nil {
		return nil, err
	}

	var devicePage DevicePage

	if err := json.Unmarshal(body, &devicePage); err != nil {
		return nil, fmt.Errorf("failed to parse devices response: %w", err)
	}

	return &devicePage, nil
}

// FetchAllDevices pages through the device inventory until a page comes back
// empty. A 500 ends the listing early with whatever was collected; a 429 is
// retried per the rate-limit policy; any other failure is returned.
func (s *Syncer) FetchAllDevices(ctx context.Context, accessToken, companyID string) (DeviceMap, error) {
	s.Logger.Info().Msg("Downloading device list")

	devices := make(DeviceMap)
	dropped := 0

	for page := 0; ; page++ {
		devicePage, err := retryOnRateLimit(ctx, s, endpointDevices, page, func() (*DevicePage, error) {
			return s.DeviceFetcher.FetchDevicesPage(ctx, accessToken, companyID, page, s.Config.DevicePageSize)
		})
		if err != nil {
			if StatusCode(err) == http.StatusInternalServerError {
				s.Logger.Warn().
					Int("page", page).
					Int("devices_so_far", len(devices)).
					Msg("Device API internal server error, continuing with partial device list")

				break
			}

			return nil, fmt.Errorf("failed to fetch devices (page %d): %w", page, err)
		}

		if len(devicePage.Data) == 0 {
			break
		}

		for _, raw := range devicePage.Data {
			var ref struct {
				ID ID `json:"id"`
			}

			if err := json.Unmarshal(raw, &ref); err != nil || ref.ID == "" {
				dropped++
				continue
			}

			devices[ref.ID] = raw
		}

		s.Logger.Debug().
			Int("page", page).
			Int("page_devices", len(devicePage.Data)).
			Int("total_devices", len(devices)).
			Msg("Fetched device page")

		if err := s.Clock.Sleep(ctx, s.Config.PageDelayDuration()); err != nil {
			return nil, err
		}
	}

	s.Metrics.RecordDevicesFetched(len(devices))

	s.Logger.Info().
		Int("device_count", len(devices)).
		Int("dropped_without_id", dropped).
		Msg("Devices found")

	return devices, nil
}
