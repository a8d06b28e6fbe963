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
	"net/http"
	"time"
)

//go:generate mockgen -destination=mock_avg.go -package=avg github.com/carverauto/avgsync/pkg/avg HTTPClient,TokenProvider,CompanyResolver,DeviceFetcher,AlertFetcher,RecordWriter

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenProvider defines the interface for obtaining access tokens.
type TokenProvider interface {
	GetAccessToken(ctx context.Context) (string, error)
}

// CompanyResolver resolves the single company visible to a token.
type CompanyResolver interface {
	ResolveCompanyID(ctx context.Context, accessToken string) (string, error)
}

// DeviceFetcher fetches one page of the device inventory.
type DeviceFetcher interface {
	FetchDevicesPage(ctx context.Context, accessToken, companyID string, page, size int) (*DevicePage, error)
}

// AlertFetcher searches alerts and fetches their details.
type AlertFetcher interface {
	SearchAlertsPage(ctx context.Context, accessToken, companyID string, page, size int, req *AlertSearchRequest) (*AlertSearchPage, error)
	GetAlertDetail(ctx context.Context, accessToken, companyID string, alertID ID) (*AlertDetail, error)
}

// RecordWriter persists one combined record and returns where it went.
type RecordWriter interface {
	Write(ctx context.Context, record *CombinedRecord) (string, error)
}

// Clock defines an interface for time-related operations.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
	Ticker(d time.Duration) Ticker
}

// Ticker defines an interface for the ticker used in polling.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Runner performs one complete sync run.
type Runner interface {
	Run(ctx context.Context) (*SyncResult, error)
}
