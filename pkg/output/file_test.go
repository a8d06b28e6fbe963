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

package output

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/avgsync/pkg/avg"
	"github.com/carverauto/avgsync/pkg/logger"
)

const testDir = "/avgcloud/logs"

func newTestWriter(t *testing.T, mode string) (*FileWriter, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0o755))

	w := NewFileWriter(fs, testDir, mode, logger.NewTestLogger())
	w.Now = func() time.Time { return time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local) }

	return w, fs
}

func testRecord(id, name string) *avg.CombinedRecord {
	return &avg.CombinedRecord{
		AlertData:  json.RawMessage(`{"id":"` + id + `", "name": "` + name + `"}`),
		DeviceInfo: json.RawMessage(`{}`),
		AlertID:    avg.ID(id),
		AlertName:  name,
	}
}

func TestFileWriter_TimestampedName(t *testing.T) {
	w, fs := newTestWriter(t, avg.FilenameTimestamped)

	path, err := w.Write(context.Background(), testRecord("a1", "Threat detected"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testDir, "Threat detected_a1_20240102_150405.txt"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, `{"alert_data":{"id":"a1","name":"Threat detected"},"device_info":{}}`, string(data))
}

func TestFileWriter_AlertIDNameOverwrites(t *testing.T) {
	w, fs := newTestWriter(t, avg.FilenameAlertID)

	first, err := w.Write(context.Background(), testRecord("a1", "one"))
	require.NoError(t, err)

	second, err := w.Write(context.Background(), testRecord("a1", "two"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(testDir, "a1.txt"), first)
	assert.Equal(t, first, second)

	data, err := afero.ReadFile(fs, second)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"two"`)

	entries, err := afero.ReadDir(fs, testDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriter_MissingDirectoryFails(t *testing.T) {
	w := NewFileWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), testDir, avg.FilenameTimestamped, logger.NewTestLogger())

	_, err := w.Write(context.Background(), testRecord("a1", "x"))
	require.Error(t, err)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a/b\\c", want: "a_b_c"},
		{in: `x:y*z?"<>|`, want: "x_y_z_____"},
		{in: "tab\there", want: "tab_here"},
		{in: "..", want: "__"},
		{in: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}

func TestFileWriter_UnsafeNameStaysInDirectory(t *testing.T) {
	w, _ := newTestWriter(t, avg.FilenameTimestamped)

	path, err := w.Write(context.Background(), testRecord("../../etc", "../passwd"))
	require.NoError(t, err)
	assert.Equal(t, testDir, filepath.Dir(path))
}
