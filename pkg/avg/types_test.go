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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: `"abc-123"`, want: "abc-123"},
		{in: `12345`, want: "12345"},
		{in: `null`, want: ""},
		{in: `true`, wantErr: true},
		{in: `{"x":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id ID

			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNewAlertSearchRequest(t *testing.T) {
	since := time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))

	req := NewAlertSearchRequest(&since)
	assert.Equal(t, "2024-01-01T00:00:00Z", req.CreatedOnFrom)

	out, err := json.Marshal(NewAlertSearchRequest(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sorts":[{"field":"CATEGORY","direction":"ASC"}]}`, string(out))
}

func TestCombinedRecordEncoding(t *testing.T) {
	rec := CombinedRecord{
		AlertData:  json.RawMessage(`{"id":"a1"}`),
		DeviceInfo: json.RawMessage(`{}`),
		AlertID:    "a1",
		AlertName:  "x",
	}

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"alert_data":{"id":"a1"},"device_info":{}}`, string(out))
}
