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

// Package basedir resolves the writable base directory that holds the
// watermark file and the alert output directory.
package basedir

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const appDirName = "avgcloud"

// Provider returns the base directory for persisted state.
type Provider interface {
	BaseDir() (string, error)
}

// Static is a Provider that always returns the same directory.
type Static string

func (s Static) BaseDir() (string, error) {
	return string(s), nil
}

// Platform is the default Provider: {WindowsDrive}\avgcloud on Windows and
// /opt/avgcloud elsewhere.
type Platform struct{}

func (Platform) BaseDir() (string, error) {
	root, err := platformRoot()
	if err != nil {
		return "", fmt.Errorf("failed to resolve platform base directory: %w", err)
	}

	return filepath.Join(root, appDirName), nil
}

// Resolve picks override when non-empty, otherwise asks the provider.
func Resolve(override string, p Provider) (string, error) {
	if override != "" {
		return override, nil
	}

	if p == nil {
		p = Platform{}
	}

	return p.BaseDir()
}

// Ensure creates every directory in dirs (and parents) on fs.
func Ensure(fs afero.Fs, dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}

		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
