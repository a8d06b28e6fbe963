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

package natsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/avgsync/pkg/logger"
)

var (
	// ErrCAParsingFailed is returned when CA certificate cannot be parsed
	ErrCAParsingFailed = errors.New("failed to parse CA certificate")
	// ErrIncompleteTLS is returned when only one of cert/key is configured
	ErrIncompleteTLS = errors.New("cert_file and key_file must be set together")
)

// Options describes how to reach the broker.
type Options struct {
	URL       string
	Stream    string
	Subject   string
	CredsFile string
	CAFile    string
	CertFile  string
	KeyFile   string
}

// TLSConfig builds a tls.Config for connecting to NATS. It returns nil when
// no TLS material is configured.
func (o *Options) TLSConfig() (*tls.Config, error) {
	if o.CAFile == "" && o.CertFile == "" && o.KeyFile == "" {
		return nil, nil
	}

	if (o.CertFile == "") != (o.KeyFile == "") {
		return nil, ErrIncompleteTLS
	}

	tlsConf := &tls.Config{MinVersion: tls.VersionTLS12}

	if o.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}

		tlsConf.Certificates = []tls.Certificate{cert}
	}

	if o.CAFile != "" {
		caCert, err := os.ReadFile(o.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, ErrCAParsingFailed
		}

		tlsConf.RootCAs = caPool
	}

	return tlsConf, nil
}

func (o *Options) natsOptions(log logger.Logger) ([]nats.Option, error) {
	opts := []nats.Option{
		nats.Name("avgsync"),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	tlsConf, err := o.TLSConfig()
	if err != nil {
		return nil, err
	}

	if tlsConf != nil {
		opts = append(opts, nats.Secure(tlsConf))
	}

	if o.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(o.CredsFile))
	}

	return opts, nil
}
