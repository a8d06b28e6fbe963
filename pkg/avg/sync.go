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

	"github.com/carverauto/avgsync/pkg/logger"
	"github.com/carverauto/avgsync/pkg/watermark"
	"github.com/google/uuid"
)

// Syncer runs the incremental alert sync: token, company, devices, alerts.
type Syncer struct {
	Config          *Config
	TokenProvider   TokenProvider
	CompanyResolver CompanyResolver
	DeviceFetcher   DeviceFetcher
	AlertFetcher    AlertFetcher
	Writer          RecordWriter
	Watermarks      watermark.Store
	Clock           Clock
	Metrics         Metrics
	Logger          logger.Logger
}

// NewSyncer wires a Syncer whose API calls all go through client.
func NewSyncer(cfg *Config, client *Client, writer RecordWriter, store watermark.Store,
	log logger.Logger, metrics Metrics) *Syncer {
	if metrics == nil {
		metrics = NoOpMetrics{}
	}

	return &Syncer{
		Config:          cfg,
		TokenProvider:   client,
		CompanyResolver: client,
		DeviceFetcher:   client,
		AlertFetcher:    client,
		Writer:          writer,
		Watermarks:      store,
		Clock:           RealClock(),
		Metrics:         metrics,
		Logger:          log.WithComponent("avg-sync"),
	}
}

// Run performs one complete pass. Token and device inventory are fetched
// fresh every time; only the watermark carries over between runs.
func (s *Syncer) Run(ctx context.Context) (result *SyncResult, err error) {
	runID := uuid.NewString()
	start := s.Clock.Now()

	defer func() {
		s.Metrics.RecordRun(s.Clock.Now().Sub(start), err)
	}()

	since, err := s.loadWatermark(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.TokenProvider.GetAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	companyID, err := s.CompanyResolver.ResolveCompanyID(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company: %w", err)
	}

	devices, err := s.FetchAllDevices(ctx, token, companyID)
	if err != nil {
		return nil, err
	}

	result, err = s.SyncAlerts(ctx, token, companyID, devices, since)
	if result != nil {
		result.RunID = runID
		result.Devices = len(devices)
	}

	if err != nil {
		return result, err
	}

	event := s.Logger.Info().
		Str("run_id", runID).
		Int("saved", result.Saved).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("pages", result.Pages).
		Dur("duration", s.Clock.Now().Sub(start))

	if result.NewWatermark != nil {
		event = event.Str("watermark", watermark.Format(*result.NewWatermark))
	}

	event.Msg("Download complete")

	return result, nil
}

func (s *Syncer) loadWatermark(ctx context.Context) (*time.Time, error) {
	t, ok, err := s.Watermarks.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load watermark: %w", err)
	}

	if !ok {
		s.Logger.Info().Msg("No watermark found, requesting all alerts")
		return nil, nil
	}

	s.Logger.Info().Str("watermark", watermark.Format(t)).Msg("Resuming from watermark")

	return &t, nil
}

// SyncAlerts pages through alerts created after since, writes one combined
// record per new alert and advances the watermark once the pass completes.
//
// Results are sorted by category rather than time, so the newest creation
// time seen anywhere in the pass becomes the new watermark, and any alert at
// or before since is skipped wherever it appears.
func (s *Syncer) SyncAlerts(
	ctx context.Context, accessToken, companyID string, devices DeviceMap, since *time.Time) (*SyncResult, error) {
	s.Logger.Info().Str("company_id", companyID).Msg("Downloading full alerts")

	result := &SyncResult{StartWatermark: since}
	search := NewAlertSearchRequest(since)

	var (
		newest time.Time
		seen   bool
	)

	for page := 0; ; page++ {
		alertPage, err := retryOnRateLimit(ctx, s, endpointAlertSearch, page, func() (*AlertSearchPage, error) {
			return s.AlertFetcher.SearchAlertsPage(ctx, accessToken, companyID, page, s.Config.AlertPageSize, search)
		})
		if err != nil {
			return result, fmt.Errorf("failed to search alerts (page %d): %w", page, err)
		}

		result.Pages++

		if len(alertPage.Data) == 0 {
			s.Logger.Info().Int("page", page).Msg("No new alerts found")
			break
		}

		for i := range alertPage.Data {
			alert := &alertPage.Data[i]

			createdOn, err := watermark.Parse(alert.CreatedOn)
			if err != nil {
				return result, fmt.Errorf("alert %s: %w", alert.ID, err)
			}

			if since != nil && !createdOn.After(*since) {
				result.Skipped++
				s.Metrics.RecordAlertSkipped()

				continue
			}

			if !seen || createdOn.After(newest) {
				newest = createdOn
				seen = true
			}

			if err := s.processAlert(ctx, accessToken, companyID, alert, devices, result); err != nil {
				return result, err
			}
		}

		if !alertPage.Page.HasNext {
			break
		}

		if err := s.Clock.Sleep(ctx, s.Config.PageDelayDuration()); err != nil {
			return result, err
		}
	}

	if seen {
		if err := s.Watermarks.Save(ctx, newest); err != nil {
			return result, fmt.Errorf("failed to save watermark: %w", err)
		}

		result.NewWatermark = &newest
		s.Metrics.RecordWatermark(newest)
	}

	return result, nil
}

// processAlert fetches one alert's detail and writes it joined with its
// device. A failed detail fetch is logged and skipped.
func (s *Syncer) processAlert(ctx context.Context, accessToken, companyID string,
	alert *AlertSummary, devices DeviceMap, result *SyncResult) error {
	detail, err := s.AlertFetcher.GetAlertDetail(ctx, accessToken, companyID, alert.ID)
	if err != nil {
		if !errors.Is(err, ErrUnexpectedStatusCode) {
			return fmt.Errorf("failed to get alert detail %s: %w", alert.ID, err)
		}

		result.Failed++
		s.Metrics.RecordAlertDetailFailure()
		s.Logger.Warn().
			Str("alert_id", alert.ID.String()).
			Int("status_code", StatusCode(err)).
			Msg("Failed to get alert detail")

		return nil
	}

	name := detail.Name
	if name == "" {
		name = "unknown"
	}

	record := &CombinedRecord{
		AlertData:  detail.Raw,
		DeviceInfo: devices.Lookup(detail.DeviceID),
		AlertID:    alert.ID,
		AlertName:  name,
	}

	path, err := s.Writer.Write(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to write alert %s: %w", alert.ID, err)
	}

	result.Saved++
	s.Metrics.RecordAlertSaved()
	s.Logger.Info().
		Str("alert_id", alert.ID.String()).
		Str("path", path).
		Msg("Saved alert")

	return s.Clock.Sleep(ctx, s.Config.RecordDelayDuration())
}
