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
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/avgsync/pkg/logger"
)

var errTestFixture = errors.New("fixture")

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}

	srv, err := server.NewServer(opts)
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	require.Eventually(t, func() bool {
		return srv.JetStreamEnabled()
	}, 5*time.Second, 50*time.Millisecond, "embedded NATS server not ready for JetStream")

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestEnsureSubjectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subjects []string
		subject  string
		want     []string
	}{
		{
			name:    "adds subject when list empty",
			subject: "avg.alerts.>",
			want:    []string{"avg.alerts.>"},
		},
		{
			name:     "keeps list when greater wildcard matches",
			subjects: []string{"avg.>"},
			subject:  "avg.alerts.>",
			want:     []string{"avg.>"},
		},
		{
			name:     "keeps list when identical",
			subjects: []string{"avg.alerts.>"},
			subject:  "avg.alerts.>",
			want:     []string{"avg.alerts.>"},
		},
		{
			name:     "appends when unmatched",
			subjects: []string{"logs.syslog.*"},
			subject:  "avg.alerts.>",
			want:     []string{"logs.syslog.*", "avg.alerts.>"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := ensureSubjectList(append([]string(nil), tc.subjects...), tc.subject)
			assert.Equal(t, tc.want, result)
		})
	}
}

func TestMatchesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		subject  string
		expected bool
	}{
		{"exact match", "avg.alerts.a1", "avg.alerts.a1", true},
		{"single wildcard", "avg.*.a1", "avg.alerts.a1", true},
		{"greater wildcard", "avg.>", "avg.alerts.a1", true},
		{"greater needs a token", "avg.alerts.>", "avg.alerts", false},
		{"no match length", "avg.*", "avg.alerts.a1", false},
		{"no match tokens", "logs.syslog.*", "avg.alerts.a1", false},
		{"single wildcard does not cover greater", "avg.*", "avg.>", false},
		{"greater covers greater", "avg.>", "avg.alerts.>", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, matchesSubject(tc.pattern, tc.subject))
		})
	}
}

func TestIsStreamMissingErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"jetstream no stream response", jetstream.ErrNoStreamResponse, true},
		{"jetstream stream not found", jetstream.ErrStreamNotFound, true},
		{"nats stream not found", nats.ErrStreamNotFound, true},
		{"nats no responders", nats.ErrNoResponders, true},
		{"other error", errTestFixture, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, isStreamMissingErr(tc.err))
		})
	}
}

func TestSubjectToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc-123", subjectToken("abc-123"))
	assert.Equal(t, "a_b_c_d", subjectToken("a.b*c>d"))
	assert.Equal(t, "with_space", subjectToken("with space"))
}

func TestOptionsTLSConfig(t *testing.T) {
	t.Parallel()

	conf, err := (&Options{}).TLSConfig()
	require.NoError(t, err)
	assert.Nil(t, conf)

	_, err = (&Options{CertFile: "client.pem"}).TLSConfig()
	require.ErrorIs(t, err, ErrIncompleteTLS)

	_, err = (&Options{CAFile: "/does/not/exist.pem"}).TLSConfig()
	require.Error(t, err)
}

func TestConnectAndPublishAlert(t *testing.T) {
	srv := runJetStreamServer(t)
	ctx := context.Background()

	publisher, nc, err := Connect(ctx, &Options{
		URL:     srv.ClientURL(),
		Stream:  "AVG_ALERTS",
		Subject: "avg.alerts",
	}, logger.NewTestLogger())
	require.NoError(t, err)

	defer nc.Close()

	record := []byte(`{"alert_data":{"id":"a1"},"device_info":{}}`)
	require.NoError(t, publisher.PublishAlert(ctx, "a1", record))

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, "AVG_ALERTS")
	require.NoError(t, err)

	msg, err := stream.GetLastMsgForSubject(ctx, "avg.alerts.a1")
	require.NoError(t, err)

	var event CloudEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, eventSource, event.Source)
	assert.Equal(t, eventType, event.Type)
	assert.Equal(t, "avg.alerts.a1", event.Subject)
	assert.JSONEq(t, string(record), string(event.Data))
}

func TestCreateEventPublisherExtendsExistingStream(t *testing.T) {
	srv := runJetStreamServer(t)
	ctx := context.Background()

	nc, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)

	defer nc.Close()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{Name: "EVENTS", Subjects: []string{"other.>"}})
	require.NoError(t, err)

	publisher, err := CreateEventPublisher(ctx, nc, "EVENTS", "avg.alerts", logger.NewTestLogger())
	require.NoError(t, err)

	stream, err := js.Stream(ctx, "EVENTS")
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"other.>", "avg.alerts.>"}, info.Config.Subjects)

	require.NoError(t, publisher.PublishAlert(ctx, "", []byte(`{}`)))

	_, err = stream.GetLastMsgForSubject(ctx, "avg.alerts.unknown")
	require.NoError(t, err)
}
