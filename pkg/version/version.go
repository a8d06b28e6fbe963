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

// Package version reports build information injected at link time.
package version

import "runtime"

// These variables are set via ldflags during build
//
//nolint:gochecknoglobals // These are intentionally global for ldflags injection
var (
	version = "dev"
	buildID = "dev"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	BuildID   string `json:"build_id"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   version,
		BuildID:   buildID,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns version with build ID
func (i Info) String() string {
	return "avgsync " + i.Version + " (build: " + i.BuildID + ", " + i.GoVersion + " " + i.Platform + ")"
}
