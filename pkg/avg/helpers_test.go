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
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/avgsync/pkg/logger"
	"github.com/carverauto/avgsync/pkg/watermark"
)

const (
	testToken     = "test-token"
	testCompanyID = "company-1"
	testWMPath    = "/avgcloud/last_created_on.txt"
)

// fakeClock records sleeps instead of blocking.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	ticker *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ticker: &fakeTicker{ch: make(chan time.Time, 1)},
	}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	c.mu.Unlock()

	return ctx.Err()
}

func (c *fakeClock) Ticker(time.Duration) Ticker {
	return c.ticker
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]time.Duration(nil), c.sleeps...)
}

func (c *fakeClock) count(d time.Duration) int {
	n := 0

	for _, s := range c.Sleeps() {
		if s == d {
			n++
		}
	}

	return n
}

type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) Chan() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()                  { t.stopped = true }

func testConfig() *Config {
	return &Config{
		TokenURL:       DefaultTokenURL,
		Endpoint:       "https://api.example.test",
		ClientID:       "id",
		ClientSecret:   "secret",
		Scope:          DefaultScope,
		LogsDir:        "/avgcloud/logs",
		WatermarkFile:  testWMPath,
		FilenameMode:   FilenameTimestamped,
		DevicePageSize: DefaultDevicePageSize,
		AlertPageSize:  DefaultAlertPageSize,
		RateLimitDelay: durationPtr(defaultRateLimitDelay),
		PageDelay:      durationPtr(defaultPageDelay),
		RecordDelay:    durationPtr(defaultRecordDelay),
	}
}

type syncerFixture struct {
	syncer   *Syncer
	tokens   *MockTokenProvider
	resolver *MockCompanyResolver
	devices  *MockDeviceFetcher
	alerts   *MockAlertFetcher
	writer   *MockRecordWriter
	store    *watermark.FileStore
	fs       afero.Fs
	clock    *fakeClock
}

func newSyncerFixture(t *testing.T) *syncerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/avgcloud", 0o755))

	f := &syncerFixture{
		tokens:   NewMockTokenProvider(ctrl),
		resolver: NewMockCompanyResolver(ctrl),
		devices:  NewMockDeviceFetcher(ctrl),
		alerts:   NewMockAlertFetcher(ctrl),
		writer:   NewMockRecordWriter(ctrl),
		store:    watermark.NewFileStore(fs, testWMPath),
		fs:       fs,
		clock:    newFakeClock(),
	}

	f.syncer = &Syncer{
		Config:          testConfig(),
		TokenProvider:   f.tokens,
		CompanyResolver: f.resolver,
		DeviceFetcher:   f.devices,
		AlertFetcher:    f.alerts,
		Writer:          f.writer,
		Watermarks:      f.store,
		Clock:           f.clock,
		Metrics:         NoOpMetrics{},
		Logger:          logger.NewTestLogger(),
	}

	return f
}

func (f *syncerFixture) setWatermark(t *testing.T, value string) {
	t.Helper()

	require.NoError(t, afero.WriteFile(f.fs, testWMPath, []byte(value), 0o644))
}

func (f *syncerFixture) watermarkFile(t *testing.T) string {
	t.Helper()

	data, err := afero.ReadFile(f.fs, testWMPath)
	require.NoError(t, err)

	return string(data)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()

	ts, err := watermark.Parse(value)
	require.NoError(t, err)

	return ts
}

func statusErr(code int) error {
	return newStatusError("test", code, []byte("error"))
}
