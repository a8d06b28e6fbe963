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

import "time"

// Metrics defines the interface for collecting sync metrics.
type Metrics interface {
	RecordAPICall(endpoint string, statusCode int, duration time.Duration)
	RecordRateLimited(endpoint string)
	RecordDevicesFetched(count int)
	RecordAlertSaved()
	RecordAlertSkipped()
	RecordAlertDetailFailure()
	RecordWatermark(t time.Time)
	RecordRun(duration time.Duration, err error)
}

// NoOpMetrics provides a no-op implementation of the Metrics interface
type NoOpMetrics struct{}

func (NoOpMetrics) RecordAPICall(string, int, time.Duration) {}
func (NoOpMetrics) RecordRateLimited(string)                 {}
func (NoOpMetrics) RecordDevicesFetched(int)                 {}
func (NoOpMetrics) RecordAlertSaved()                        {}
func (NoOpMetrics) RecordAlertSkipped()                      {}
func (NoOpMetrics) RecordAlertDetailFailure()                {}
func (NoOpMetrics) RecordWatermark(time.Time)                {}
func (NoOpMetrics) RecordRun(time.Duration, error)           {}
