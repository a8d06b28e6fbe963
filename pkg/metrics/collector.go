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

// Package metrics exposes sync activity as Prometheus metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/carverauto/avgsync/pkg/avg"
)

const namespace = "avgsync"

// Collector records sync activity on its own registry.
type Collector struct {
	registry *prometheus.Registry

	apiRequests      *prometheus.CounterVec
	apiDuration      *prometheus.HistogramVec
	rateLimited      *prometheus.CounterVec
	devices          prometheus.Gauge
	alertsSaved      prometheus.Counter
	alertsSkipped    prometheus.Counter
	detailFailures   prometheus.Counter
	watermark        prometheus.Gauge
	runs             *prometheus.CounterVec
	runDuration      prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
}

var _ avg.Metrics = (*Collector)(nil)

// NewCollector creates and registers all collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total AVG API requests by endpoint and status code",
		}, []string{"endpoint", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "AVG API request latency in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Total HTTP 429 responses by endpoint",
		}, []string{"endpoint"}),
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "devices",
			Help:      "Devices in the inventory fetched by the last run",
		}),
		alertsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "alerts_saved_total",
			Help:      "Total alert records written",
		}),
		alertsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "alerts_skipped_total",
			Help:      "Total alerts skipped as not newer than the watermark",
		}),
		detailFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "alert_detail_failures_total",
			Help:      "Total alerts dropped because the detail fetch failed",
		}),
		watermark: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "watermark_timestamp_seconds",
			Help:      "Creation time of the newest processed alert",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Total sync runs by result",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "run_duration_seconds",
			Help:      "Sync run duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	c.registry.MustRegister(
		c.apiRequests,
		c.apiDuration,
		c.rateLimited,
		c.devices,
		c.alertsSaved,
		c.alertsSkipped,
		c.detailFailures,
		c.watermark,
		c.runs,
		c.runDuration,
		c.lastRunTimestamp,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the registry holding every collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) RecordAPICall(endpoint string, statusCode int, duration time.Duration) {
	c.apiRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	c.apiDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (c *Collector) RecordRateLimited(endpoint string) {
	c.rateLimited.WithLabelValues(endpoint).Inc()
}

func (c *Collector) RecordDevicesFetched(count int) {
	c.devices.Set(float64(count))
}

func (c *Collector) RecordAlertSaved() {
	c.alertsSaved.Inc()
}

func (c *Collector) RecordAlertSkipped() {
	c.alertsSkipped.Inc()
}

func (c *Collector) RecordAlertDetailFailure() {
	c.detailFailures.Inc()
}

func (c *Collector) RecordWatermark(t time.Time) {
	c.watermark.Set(float64(t.Unix()))
}

func (c *Collector) RecordRun(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	c.runs.WithLabelValues(result).Inc()
	c.runDuration.Observe(duration.Seconds())
	c.lastRunTimestamp.SetToCurrentTime()
}
