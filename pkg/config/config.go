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

// Package config loads service configuration from files or the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/carverauto/avgsync/pkg/logger"
)

var (
	errInvalidConfigSource = errors.New("invalid CONFIG_SOURCE value")
	errInvalidConfigPtr    = errors.New("config must be a non-nil pointer")
)

const (
	configSourceFile = "file"
	configSourceEnv  = "env"

	defaultEnvPrefix = "AVGSYNC_"
)

// ConfigLoader fills dst from some configuration source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configs that normalize and check themselves after loading.
type Validator interface {
	Validate() error
}

// Config holds the configuration loading dependencies.
type Config struct {
	defaultLoader ConfigLoader
	logger        logger.Logger
}

// NewConfig initializes a new Config instance with a default file loader.
// A nil logger discards loader diagnostics.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		defaultLoader: NewFileConfigLoader(log),
		logger:        log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// Load fills cfg from the source selected by CONFIG_SOURCE (file by default)
// without validating it. An empty path with the file source leaves cfg untouched.
func (c *Config) Load(ctx context.Context, path string, cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errInvalidConfigPtr
	}

	loader, err := c.loaderForSource()
	if err != nil {
		return err
	}

	if path == "" && loader == c.defaultLoader {
		c.logger.Debug().Msg("No configuration file given, using defaults")
		return nil
	}

	return loader.Load(ctx, path, cfg)
}

// LoadAndValidate is Load followed by validation.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if err := c.Load(ctx, path, cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}

func (c *Config) loaderForSource() (ConfigLoader, error) {
	source := strings.ToLower(os.Getenv("CONFIG_SOURCE"))

	switch source {
	case configSourceEnv:
		prefix := os.Getenv("CONFIG_ENV_PREFIX")
		if prefix == "" {
			prefix = defaultEnvPrefix
		}

		return NewEnvConfigLoader(c.logger, prefix), nil
	case configSourceFile, "":
		return c.defaultLoader, nil
	default:
		return nil, fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidConfigSource, source, configSourceFile, configSourceEnv)
	}
}
