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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/carverauto/avgsync/pkg/basedir"
	"github.com/carverauto/avgsync/pkg/logger"
	"github.com/carverauto/avgsync/pkg/models"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultTokenURL       = "https://business-auth.prod.smbrm.avast.com/token"
	DefaultRegion         = "europe-west3"
	DefaultScope          = "console"
	DefaultDevicePageSize = 100
	DefaultAlertPageSize  = 50

	defaultRateLimitDelay = 5 * time.Second
	defaultPageDelay      = time.Second
	defaultRecordDelay    = 300 * time.Millisecond
	defaultPollInterval   = 5 * time.Minute

	defaultLogsDirName       = "logs"
	defaultWatermarkFileName = "last_created_on.txt"

	defaultNATSStream  = "AVG_ALERTS"
	defaultNATSSubject = "avg.alerts"

	// FilenameTimestamped names files {name}_{id}_{YYYYmmdd_HHMMSS}.txt.
	FilenameTimestamped = "timestamped"
	// FilenameAlertID names files {id}.txt and overwrites on re-save.
	FilenameAlertID = "alert_id"

	envClientID     = "AVG_CLIENT_ID"
	envClientSecret = "AVG_CLIENT_SECRET"
)

// Config is the complete avgsync configuration.
type Config struct {
	TokenURL     string `json:"token_url" yaml:"token_url" validate:"required,url"`
	Region       string `json:"region" yaml:"region"`
	Endpoint     string `json:"endpoint" yaml:"endpoint" validate:"required,url"`
	ClientID     string `json:"client_id" yaml:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" yaml:"client_secret" validate:"required"`
	Scope        string `json:"scope" yaml:"scope" validate:"required"`

	BaseDir       string `json:"base_dir" yaml:"base_dir"`
	LogsDir       string `json:"logs_dir" yaml:"logs_dir" validate:"required"`
	WatermarkFile string `json:"watermark_file" yaml:"watermark_file" validate:"required"`
	FilenameMode  string `json:"filename_mode" yaml:"filename_mode" validate:"oneof=timestamped alert_id"`

	DevicePageSize int `json:"device_page_size" yaml:"device_page_size" validate:"gte=1"`
	AlertPageSize  int `json:"alert_page_size" yaml:"alert_page_size" validate:"gte=1"`

	// The three delays are pointers so that an explicit 0 disables the wait
	// while an absent value gets the default.
	RateLimitDelay      *models.Duration `json:"rate_limit_delay" yaml:"rate_limit_delay" validate:"omitempty,gte=0"`
	MaxRateLimitRetries int              `json:"max_rate_limit_retries" yaml:"max_rate_limit_retries" validate:"gte=0"`
	MaxRateLimitWait    models.Duration  `json:"max_rate_limit_wait" yaml:"max_rate_limit_wait" validate:"gte=0"`
	PageDelay           *models.Duration `json:"page_delay" yaml:"page_delay" validate:"omitempty,gte=0"`
	RecordDelay         *models.Duration `json:"record_delay" yaml:"record_delay" validate:"omitempty,gte=0"`
	RequestsPerSecond   float64          `json:"requests_per_second" yaml:"requests_per_second" validate:"gte=0"`
	RequestTimeout      models.Duration  `json:"request_timeout" yaml:"request_timeout" validate:"gte=0"`

	PollInterval models.Duration `json:"poll_interval" yaml:"poll_interval" validate:"gte=0"`
	MetricsAddr  string          `json:"metrics_addr" yaml:"metrics_addr" validate:"omitempty,hostname_port"`

	NATS    *NATSConfig    `json:"nats" yaml:"nats" validate:"omitempty"`
	Logging *logger.Config `json:"logging" yaml:"logging"`

	// BaseDirOverride replaces BaseDir when set. It carries the --base-dir flag
	// through loading, so it wins over the file and the environment.
	BaseDirOverride string `json:"-" yaml:"-"`

	// BaseDirProvider resolves BaseDir when it is empty. Defaults to the platform location.
	BaseDirProvider basedir.Provider `json:"-" yaml:"-"`
}

// NATSConfig enables publishing each written record to JetStream.
type NATSConfig struct {
	URL       string `json:"url" yaml:"url" validate:"required"`
	Stream    string `json:"stream" yaml:"stream" validate:"required"`
	Subject   string `json:"subject" yaml:"subject" validate:"required"`
	CredsFile string `json:"creds_file" yaml:"creds_file"`
	CAFile    string `json:"ca_file" yaml:"ca_file"`
	CertFile  string `json:"cert_file" yaml:"cert_file" validate:"required_with=KeyFile"`
	KeyFile   string `json:"key_file" yaml:"key_file" validate:"required_with=CertFile"`
}

// RateLimitPolicy controls the 429 retry loop. Zero bounds mean retry forever.
type RateLimitPolicy struct {
	Delay      time.Duration
	MaxRetries int
	MaxWait    time.Duration
}

// ApplyDefaults fills unset fields and resolves the directory layout.
// It does not check credentials, so operator commands can use it without them.
func (c *Config) ApplyDefaults() error {
	if c.BaseDirOverride != "" {
		c.BaseDir = c.BaseDirOverride
	}

	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}

	if c.Region == "" {
		c.Region = DefaultRegion
	}

	if c.Endpoint == "" {
		c.Endpoint = fmt.Sprintf("https://api-gateway.prod-%s.smbrm.avast.com", c.Region)
	}

	if c.ClientID == "" {
		c.ClientID = os.Getenv(envClientID)
	}

	if c.ClientSecret == "" {
		c.ClientSecret = os.Getenv(envClientSecret)
	}

	if c.Scope == "" {
		c.Scope = DefaultScope
	}

	if c.FilenameMode == "" {
		c.FilenameMode = FilenameTimestamped
	}

	if c.DevicePageSize == 0 {
		c.DevicePageSize = DefaultDevicePageSize
	}

	if c.AlertPageSize == 0 {
		c.AlertPageSize = DefaultAlertPageSize
	}

	if c.RateLimitDelay == nil {
		c.RateLimitDelay = durationPtr(defaultRateLimitDelay)
	}

	if c.PageDelay == nil {
		c.PageDelay = durationPtr(defaultPageDelay)
	}

	if c.RecordDelay == nil {
		c.RecordDelay = durationPtr(defaultRecordDelay)
	}

	if c.PollInterval == 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if c.NATS != nil {
		if c.NATS.Stream == "" {
			c.NATS.Stream = defaultNATSStream
		}

		if c.NATS.Subject == "" {
			c.NATS.Subject = defaultNATSSubject
		}
	}

	return c.resolvePaths()
}

func (c *Config) resolvePaths() error {
	if c.LogsDir != "" && c.WatermarkFile != "" {
		return nil
	}

	base, err := basedir.Resolve(c.BaseDir, c.BaseDirProvider)
	if err != nil {
		return err
	}

	c.BaseDir = base

	if c.LogsDir == "" {
		c.LogsDir = filepath.Join(base, defaultLogsDirName)
	}

	if c.WatermarkFile == "" {
		c.WatermarkFile = filepath.Join(base, defaultWatermarkFileName)
	}

	return nil
}

// Validate applies defaults and checks the result.
func (c *Config) Validate() error {
	if err := c.ApplyDefaults(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	return nil
}

// RateLimitPolicy returns the 429 retry settings.
func (c *Config) RateLimitPolicy() RateLimitPolicy {
	return RateLimitPolicy{
		Delay:      optionalDuration(c.RateLimitDelay),
		MaxRetries: c.MaxRateLimitRetries,
		MaxWait:    c.MaxRateLimitWait.Std(),
	}
}

// PageDelayDuration is the pause between result pages.
func (c *Config) PageDelayDuration() time.Duration {
	return optionalDuration(c.PageDelay)
}

// RecordDelayDuration is the pause after each processed alert.
func (c *Config) RecordDelayDuration() time.Duration {
	return optionalDuration(c.RecordDelay)
}

func durationPtr(d time.Duration) *models.Duration {
	md := models.Duration(d)

	return &md
}

func optionalDuration(d *models.Duration) time.Duration {
	if d == nil {
		return 0
	}

	return d.Std()
}
