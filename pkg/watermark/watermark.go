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

// Package watermark persists the creation time of the newest alert that a
// sync pass has processed.
package watermark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
)

var (
	// ErrInvalidTimestamp is returned when a timestamp cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// layouts accepted by Parse, tried in order. Values without a zone are UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Parse parses an ISO-8601 timestamp as emitted by the alert API.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// Format renders t the way the store persists it and the search filter sends it.
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Store reads and writes the watermark.
type Store interface {
	// Load returns the stored watermark; ok is false when none exists.
	Load(ctx context.Context) (t time.Time, ok bool, err error)
	Save(ctx context.Context, t time.Time) error
}

// FileStore keeps the watermark as plain text in a single file.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a store backed by path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the watermark file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the watermark. A missing or blank file means no watermark.
func (s *FileStore) Load(_ context.Context) (time.Time, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}

		return time.Time{}, false, fmt.Errorf("failed to read watermark %s: %w", s.path, err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return time.Time{}, false, nil
	}

	t, err := Parse(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("watermark %s: %w", s.path, err)
	}

	return t, true, nil
}

// Save overwrites the file with t.
func (s *FileStore) Save(_ context.Context, t time.Time) error {
	if err := afero.WriteFile(s.fs, s.path, []byte(Format(t)), 0o644); err != nil {
		return fmt.Errorf("failed to write watermark %s: %w", s.path, err)
	}

	return nil
}

// Reset removes the watermark so the next pass starts from the beginning.
func (s *FileStore) Reset(_ context.Context) error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove watermark %s: %w", s.path, err)
	}

	return nil
}
