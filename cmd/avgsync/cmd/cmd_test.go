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

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/avgsync/pkg/logger"
)

const testBaseDir = "/data/avgcloud"

func runCommand(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv("AVG_CLIENT_ID", "")
	t.Setenv("AVG_CLIENT_SECRET", "")

	root := newRootCommand(&rootOptions{fs: fs, logger: logger.NewTestLogger()})

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestWatermarkCommands(t *testing.T) {
	fs := afero.NewMemMapFs()
	wmPath := filepath.Join(testBaseDir, "last_created_on.txt")
	require.NoError(t, fs.MkdirAll(testBaseDir, 0o755))

	out, err := runCommand(t, fs, "watermark", "show", "--base-dir", testBaseDir)
	require.NoError(t, err)
	assert.Equal(t, "no watermark\n", out)

	out, err = runCommand(t, fs, "watermark", "set", "2024-01-02T03:04:05+02:00", "--base-dir", testBaseDir)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T01:04:05Z\n", out)

	data, err := afero.ReadFile(fs, wmPath)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T01:04:05Z", string(data))

	out, err = runCommand(t, fs, "watermark", "show", "--base-dir", testBaseDir)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T01:04:05Z\n", out)

	_, err = runCommand(t, fs, "watermark", "reset", "--base-dir", testBaseDir)
	require.NoError(t, err)

	exists, err := afero.Exists(fs, wmPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBaseDirFlagOverridesConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testBaseDir, 0o755))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("base_dir: /from/file\n"), 0o600))

	_, err := runCommand(t, fs, "watermark", "set", "2024-03-01T00:00:00Z", "--config", cfgPath, "--base-dir", testBaseDir)
	require.NoError(t, err)

	exists, err := afero.Exists(fs, filepath.Join(testBaseDir, "last_created_on.txt"))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, filepath.Join("/from/file", "last_created_on.txt"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWatermarkSetRejectsInvalidTimestamp(t *testing.T) {
	_, err := runCommand(t, afero.NewMemMapFs(), "watermark", "set", "tomorrow", "--base-dir", testBaseDir)
	require.Error(t, err)
}

func TestSyncRequiresCredentials(t *testing.T) {
	_, err := runCommand(t, afero.NewMemMapFs(), "sync", "--base-dir", testBaseDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClientID")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, afero.NewMemMapFs(), "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
}

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	})
	mux.HandleFunc("GET /api/v1/users/companies", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"c1"}]}`))
	})
	mux.HandleFunc("GET /api/v1/companies/c1/devices", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "0" {
			_, _ = w.Write([]byte(`{"data":[{"id":"d1","name":"laptop"}]}`))
			return
		}

		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	mux.HandleFunc("POST /api/v1/companies/c1/alerts/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"id":"a1","createdOn":"2024-01-01T00:00:00Z"},
			{"id":"a2","createdOn":"2024-01-02T00:00:00Z"}
		],"page":{"hasNext":false}}`))
	})
	mux.HandleFunc("GET /api/v1/companies/c1/alerts/a2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"a2","name":"Threat","deviceId":"d1"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestSyncCommandEndToEnd(t *testing.T) {
	server := newFakeAPI(t)
	fs := afero.NewMemMapFs()

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	cfgJSON := fmt.Sprintf(`{
		"token_url": %q,
		"endpoint": %q,
		"client_id": "id",
		"client_secret": "secret",
		"filename_mode": "alert_id",
		"page_delay": "1ms",
		"record_delay": "1ms"
	}`, server.URL+"/token", server.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgJSON), 0o600))

	require.NoError(t, fs.MkdirAll(testBaseDir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testBaseDir, "last_created_on.txt"),
		[]byte("2024-01-01T00:00:00Z"), 0o644))

	out, err := runCommand(t, fs, "sync", "--config", cfgPath, "--base-dir", testBaseDir)
	require.NoError(t, err)
	assert.Equal(t, "saved=1 failed=0 skipped=1 watermark=2024-01-02T00:00:00Z\n", out)

	record, err := afero.ReadFile(fs, filepath.Join(testBaseDir, "logs", "a2.txt"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"alert_data":{"id":"a2","name":"Threat","deviceId":"d1"},"device_info":{"id":"d1","name":"laptop"}}`,
		string(record))

	wm, err := afero.ReadFile(fs, filepath.Join(testBaseDir, "last_created_on.txt"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T00:00:00Z", strings.TrimSpace(string(wm)))
}
