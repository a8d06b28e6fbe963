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

// Package output persists combined alert records.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/afero"

	"github.com/carverauto/avgsync/pkg/avg"
	"github.com/carverauto/avgsync/pkg/logger"
)

const (
	fileExt         = ".txt"
	timestampLayout = "20060102_150405"
	unknownName     = "unknown"
)

// FileWriter writes one compact JSON file per record into a directory.
type FileWriter struct {
	fs   afero.Fs
	dir  string
	mode string
	// Now returns the save time embedded in timestamped file names.
	Now    func() time.Time
	logger logger.Logger
}

// NewFileWriter returns a writer for dir. mode is avg.FilenameTimestamped or
// avg.FilenameAlertID.
func NewFileWriter(fs afero.Fs, dir, mode string, log logger.Logger) *FileWriter {
	return &FileWriter{
		fs:     fs,
		dir:    dir,
		mode:   mode,
		Now:    time.Now,
		logger: log.WithComponent("output"),
	}
}

// Write serializes record and writes it under a name derived from the alert.
// Timestamped names are not unique within one second; a collision overwrites.
func (w *FileWriter) Write(_ context.Context, record *avg.CombinedRecord) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record %s: %w", record.AlertID, err)
	}

	path := filepath.Join(w.dir, w.fileName(record))

	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write record %s: %w", record.AlertID, err)
	}

	w.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote alert record")

	return path, nil
}

func (w *FileWriter) fileName(record *avg.CombinedRecord) string {
	id := sanitize(record.AlertID.String())
	if id == "" {
		id = unknownName
	}

	if w.mode == avg.FilenameAlertID {
		return id + fileExt
	}

	name := sanitize(record.AlertName)
	if name == "" {
		name = unknownName
	}

	return fmt.Sprintf("%s_%s_%s%s", name, id, w.Now().Format(timestampLayout), fileExt)
}

// sanitize replaces characters that are not allowed in file names on
// Windows or POSIX with '_'.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}

		if unicode.IsControl(r) {
			return '_'
		}

		return r
	}, s)

	s = strings.TrimSpace(s)
	if s == "." || s == ".." {
		return strings.Repeat("_", len(s))
	}

	return s
}
