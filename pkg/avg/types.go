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
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/avgsync/pkg/watermark"
)

// ID is an identifier that the API may encode as a JSON string or number.
// null decodes to the empty ID, which is treated as absent.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s", errInvalidID, string(b))
	}

	*id = ID(n.String())

	return nil
}

func (id ID) String() string {
	return string(id)
}

// TokenResponse is the body of a successful client-credentials grant.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Company is one entry of the companies visible to a token.
type Company struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// CompaniesResponse is the body of the company listing.
type CompaniesResponse struct {
	Data []Company `json:"data"`
}

// DevicePage is one page of the device inventory. Devices are kept raw so
// output records carry every attribute the API returned.
type DevicePage struct {
	Data []json.RawMessage `json:"data"`
}

// DeviceMap maps device id to the raw device object.
type DeviceMap map[ID]json.RawMessage

var emptyObject = json.RawMessage(`{}`)

// Lookup returns the device for id, or an empty object when id is absent or unknown.
func (m DeviceMap) Lookup(id ID) json.RawMessage {
	if id == "" {
		return emptyObject
	}

	if d, ok := m[id]; ok {
		return d
	}

	return emptyObject
}

// SortSpec orders alert search results.
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// AlertSearchRequest is the body of the alert search call.
type AlertSearchRequest struct {
	Sorts         []SortSpec `json:"sorts"`
	CreatedOnFrom string     `json:"createdOnFrom,omitempty"`
}

// NewAlertSearchRequest sorts by category and filters on since when set.
func NewAlertSearchRequest(since *time.Time) *AlertSearchRequest {
	req := &AlertSearchRequest{
		Sorts: []SortSpec{{Field: "CATEGORY", Direction: "ASC"}},
	}

	if since != nil {
		req.CreatedOnFrom = watermark.Format(*since)
	}

	return req
}

// AlertSummary is one entry of an alert search page.
type AlertSummary struct {
	ID        ID     `json:"id"`
	CreatedOn string `json:"createdOn"`
	Category  string `json:"category"`
}

// PageInfo carries the search endpoint's continuation flag.
type PageInfo struct {
	HasNext bool `json:"hasNext"`
}

// AlertSearchPage is one page of alert search results.
type AlertSearchPage struct {
	Data []AlertSummary `json:"data"`
	Page PageInfo       `json:"page"`
}

// AlertDetail is the full alert as returned by the detail endpoint.
type AlertDetail struct {
	ID       ID
	Name     string
	DeviceID ID
	Raw      json.RawMessage
}

type alertDetailFields struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	DeviceID ID     `json:"deviceId"`
}

// CombinedRecord is the persisted output: the alert detail joined with its device.
type CombinedRecord struct {
	AlertData  json.RawMessage `json:"alert_data"`
	DeviceInfo json.RawMessage `json:"device_info"`

	AlertID   ID     `json:"-"`
	AlertName string `json:"-"`
}

// SyncResult summarizes one alert sync pass.
type SyncResult struct {
	RunID          string
	Devices        int
	Pages          int
	Saved          int
	Failed         int
	Skipped        int
	StartWatermark *time.Time
	NewWatermark   *time.Time
}
