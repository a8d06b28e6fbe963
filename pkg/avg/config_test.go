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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/avgsync/pkg/basedir"
	"github.com/carverauto/avgsync/pkg/models"
)

func TestConfigApplyDefaults(t *testing.T) {
	base := t.TempDir()
	cfg := &Config{BaseDirProvider: basedir.Static(base)}

	require.NoError(t, cfg.ApplyDefaults())

	assert.Equal(t, DefaultTokenURL, cfg.TokenURL)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, "https://api-gateway.prod-europe-west3.smbrm.avast.com", cfg.Endpoint)
	assert.Equal(t, DefaultScope, cfg.Scope)
	assert.Equal(t, FilenameTimestamped, cfg.FilenameMode)
	assert.Equal(t, DefaultDevicePageSize, cfg.DevicePageSize)
	assert.Equal(t, DefaultAlertPageSize, cfg.AlertPageSize)
	assert.Equal(t, 5*time.Second, cfg.RateLimitPolicy().Delay)
	assert.Equal(t, time.Second, cfg.PageDelayDuration())
	assert.Equal(t, 300*time.Millisecond, cfg.RecordDelayDuration())
	assert.Equal(t, 5*time.Minute, cfg.PollInterval.Std())
	assert.Equal(t, base, cfg.BaseDir)
	assert.Equal(t, filepath.Join(base, "logs"), cfg.LogsDir)
	assert.Equal(t, filepath.Join(base, "last_created_on.txt"), cfg.WatermarkFile)
}

func TestConfigApplyDefaults_RegionAndOverrides(t *testing.T) {
	cfg := &Config{
		Region:        "us-east1",
		BaseDir:       "/data/avg",
		WatermarkFile: "/state/wm.txt",
		PageDelay:     durationPtr(2 * time.Second),
		NATS:          &NATSConfig{URL: "nats://localhost:4222"},
	}

	require.NoError(t, cfg.ApplyDefaults())

	assert.Equal(t, "https://api-gateway.prod-us-east1.smbrm.avast.com", cfg.Endpoint)
	assert.Equal(t, filepath.Join("/data/avg", "logs"), cfg.LogsDir)
	assert.Equal(t, "/state/wm.txt", cfg.WatermarkFile)
	assert.Equal(t, 2*time.Second, cfg.PageDelayDuration())
	assert.Equal(t, defaultNATSStream, cfg.NATS.Stream)
	assert.Equal(t, defaultNATSSubject, cfg.NATS.Subject)
}

func TestConfigApplyDefaults_ExplicitZeroDelaysKept(t *testing.T) {
	var cfg Config

	require.NoError(t, json.Unmarshal([]byte(`{"page_delay":"0s","record_delay":0,"rate_limit_delay":"0s"}`), &cfg))

	cfg.BaseDirProvider = basedir.Static(t.TempDir())
	require.NoError(t, cfg.ApplyDefaults())

	assert.Zero(t, cfg.PageDelayDuration())
	assert.Zero(t, cfg.RecordDelayDuration())
	assert.Zero(t, cfg.RateLimitPolicy().Delay)
}

func TestConfigValidate(t *testing.T) {
	t.Setenv(envClientID, "")
	t.Setenv(envClientSecret, "")

	tests := []struct {
		name    string
		cfg     Config
		env     map[string]string
		wantErr bool
	}{
		{
			name: "credentials in config",
			cfg:  Config{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name: "credentials from environment",
			env:  map[string]string{envClientID: "env-id", envClientSecret: "env-secret"},
		},
		{
			name:    "missing credentials",
			wantErr: true,
		},
		{
			name:    "bad filename mode",
			cfg:     Config{ClientID: "id", ClientSecret: "secret", FilenameMode: "random"},
			wantErr: true,
		},
		{
			name:    "negative page size",
			cfg:     Config{ClientID: "id", ClientSecret: "secret", AlertPageSize: -1},
			wantErr: true,
		},
		{
			name:    "bad metrics address",
			cfg:     Config{ClientID: "id", ClientSecret: "secret", MetricsAddr: "not an address"},
			wantErr: true,
		},
		{
			name:    "nats without url",
			cfg:     Config{ClientID: "id", ClientSecret: "secret", NATS: &NATSConfig{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := tt.cfg
			cfg.BaseDirProvider = basedir.Static(t.TempDir())

			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidConfig)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestConfigRateLimitPolicy(t *testing.T) {
	cfg := &Config{
		RateLimitDelay:      durationPtr(time.Second),
		MaxRateLimitRetries: 4,
		MaxRateLimitWait:    models.Duration(time.Minute),
	}

	assert.Equal(t, RateLimitPolicy{Delay: time.Second, MaxRetries: 4, MaxWait: time.Minute}, cfg.RateLimitPolicy())
}
