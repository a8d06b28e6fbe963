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

package logger

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.31.0"
	"google.golang.org/grpc/credentials"

	"github.com/carverauto/avgsync/pkg/models"
	"github.com/carverauto/avgsync/pkg/version"
)

var (
	ErrOTelLoggingDisabled  = errors.New("OTel logging is disabled")
	ErrOTelEndpointRequired = errors.New("OTel endpoint is required when enabled")
	errFailedToParseCACert  = errors.New("failed to parse CA certificate")
)

const (
	defaultOTelServiceName  = "avgsync"
	defaultOTelScope        = "avgsync"
	defaultOTelBatchTimeout = 5 * time.Second
	maxAttributeValueLength = 4096
)

// OTelConfig enables exporting log records over OTLP/gRPC next to the console output.
type OTelConfig struct {
	Enabled      bool              `json:"enabled" yaml:"enabled"`
	Endpoint     string            `json:"endpoint" yaml:"endpoint"`
	Headers      map[string]string `json:"headers" yaml:"headers"`
	ServiceName  string            `json:"service_name" yaml:"service_name"`
	BatchTimeout models.Duration   `json:"batch_timeout" yaml:"batch_timeout"`
	Insecure     bool              `json:"insecure" yaml:"insecure"`
	TLS          *TLSConfig        `json:"tls,omitempty" yaml:"tls,omitempty"`
}

type TLSConfig struct {
	CertFile string `json:"cert_file" yaml:"cert_file"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
	CAFile   string `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
}

// OTelWriter turns zerolog JSON lines into OTel log records. The "component"
// field selects the instrumentation scope.
type OTelWriter struct {
	provider *sdklog.LoggerProvider
	ctx      context.Context

	mu      sync.Mutex
	loggers map[string]otellog.Logger
}

//nolint:gochecknoglobals // flushed by Shutdown on exit
var (
	activeMu   sync.Mutex
	activeOTel *OTelWriter
)

func NewOTelWriter(ctx context.Context, config OTelConfig) (*OTelWriter, error) {
	if !config.Enabled {
		return nil, ErrOTelLoggingDisabled
	}

	if config.Endpoint == "" {
		return nil, ErrOTelEndpointRequired
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(config.Endpoint)}

	if config.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	} else if config.TLS != nil {
		tlsConfig, err := setupTLSConfig(config.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to setup TLS configuration: %w", err)
		}

		opts = append(opts, otlploggrpc.WithTLSCredentials(credentials.NewTLS(tlsConfig)))
	}

	if len(config.Headers) > 0 {
		opts = append(opts, otlploggrpc.WithHeaders(config.Headers))
	}

	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	batchTimeout := config.BatchTimeout.Std()
	if batchTimeout <= 0 {
		batchTimeout = defaultOTelBatchTimeout
	}

	return newOTelWriter(ctx, config, sdklog.NewBatchProcessor(exporter, sdklog.WithExportTimeout(batchTimeout)))
}

func newOTelWriter(ctx context.Context, config OTelConfig, processor sdklog.Processor) (*OTelWriter, error) {
	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = defaultOTelServiceName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version.Get().Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(processor),
	)

	global.SetLoggerProvider(provider)

	return &OTelWriter{
		provider: provider,
		ctx:      ctx,
		loggers:  make(map[string]otellog.Logger),
	}, nil
}

// Write emits one record per zerolog line. Lines that are not JSON objects are dropped.
func (w *OTelWriter) Write(p []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()

	entry := make(map[string]interface{})
	if err := dec.Decode(&entry); err != nil {
		return len(p), nil
	}

	var record otellog.Record

	if ts, ok := entry["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			record.SetTimestamp(parsed)
			delete(entry, "time")
		}
	}

	if level, ok := entry["level"].(string); ok {
		record.SetSeverity(mapZerologLevelToOTel(level))
		record.SetSeverityText(level)
		delete(entry, "level")
	}

	if msg, ok := entry["message"].(string); ok {
		record.SetBody(otellog.StringValue(msg))
		delete(entry, "message")
	}

	scope := defaultOTelScope
	if component, ok := entry["component"].(string); ok && component != "" {
		scope = component

		delete(entry, "component")
	}

	keys := make([]string, 0, len(entry))
	for key := range entry {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		record.AddAttributes(attributeFor(key, entry[key]))
	}

	w.scopeLogger(scope).Emit(w.ctx, record)

	return len(p), nil
}

func (w *OTelWriter) scopeLogger(scope string) otellog.Logger {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.loggers[scope]
	if !ok {
		l = w.provider.Logger(scope)
		w.loggers[scope] = l
	}

	return l
}

// Shutdown flushes pending records and stops the exporter.
func (w *OTelWriter) Shutdown(ctx context.Context) error {
	return w.provider.Shutdown(ctx)
}

func attributeFor(key string, value interface{}) otellog.KeyValue {
	switch v := value.(type) {
	case nil:
		return otellog.String(key, "null")
	case string:
		return otellog.String(key, truncateAttribute(v))
	case bool:
		return otellog.Bool(key, v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return otellog.Int64(key, i)
		}

		if f, err := v.Float64(); err == nil {
			return otellog.Float64(key, f)
		}

		return otellog.String(key, v.String())
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return otellog.String(key, truncateAttribute(fmt.Sprint(v)))
		}

		return otellog.String(key, truncateAttribute(string(b)))
	}
}

// truncateAttribute cuts s to maxAttributeValueLength bytes on a rune boundary.
func truncateAttribute(s string) string {
	if len(s) <= maxAttributeValueLength {
		return s
	}

	n := maxAttributeValueLength - len("...")
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n] + "..."
}

func mapZerologLevelToOTel(level string) otellog.Severity {
	switch strings.ToLower(level) {
	case "trace":
		return otellog.SeverityTrace
	case "debug":
		return otellog.SeverityDebug
	case "info":
		return otellog.SeverityInfo
	case "warn", "warning":
		return otellog.SeverityWarn
	case "error":
		return otellog.SeverityError
	case "fatal", "panic":
		return otellog.SeverityFatal
	default:
		return otellog.SeverityInfo
	}
}

func setActiveOTel(w *OTelWriter) {
	activeMu.Lock()
	prev := activeOTel
	activeOTel = w
	activeMu.Unlock()

	if prev != nil && prev != w {
		_ = prev.Shutdown(context.Background())
	}
}

// Shutdown flushes the OTel writer installed by New, if any.
func Shutdown(ctx context.Context) error {
	activeMu.Lock()
	w := activeOTel
	activeOTel = nil
	activeMu.Unlock()

	if w == nil {
		return nil
	}

	return w.Shutdown(ctx)
}

func setupTLSConfig(tlsConfig *TLSConfig) (*tls.Config, error) {
	config := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}

		config.Certificates = []tls.Certificate{cert}
	}

	if tlsConfig.CAFile != "" {
		caCert, err := os.ReadFile(tlsConfig.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errFailedToParseCACert
		}

		config.RootCAs = pool
	}

	return config, nil
}
