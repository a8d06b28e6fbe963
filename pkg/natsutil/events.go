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

// Package natsutil publishes alert records to NATS JetStream.
package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/avgsync/pkg/logger"
)

const (
	eventSource = "avgsync"
	eventType   = "com.avast.business.alert"
)

// CloudEvent is the envelope every published alert is wrapped in.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	DataContentType string          `json:"datacontenttype"`
	Subject         string          `json:"subject"`
	Time            *time.Time      `json:"time,omitempty"`
	Data            json.RawMessage `json:"data"`
}

// EventPublisher publishes alert events to a JetStream subject.
type EventPublisher struct {
	js      jetstream.JetStream
	stream  string
	subject string
	now     func() time.Time
	logger  logger.Logger
}

// NewEventPublisher creates a publisher for subject on an existing JetStream context.
func NewEventPublisher(js jetstream.JetStream, streamName, subject string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:      js,
		stream:  streamName,
		subject: subject,
		now:     time.Now,
		logger:  log,
	}
}

// PublishAlert wraps record in a CloudEvent and publishes it on
// {subject}.{alertID}.
func (p *EventPublisher) PublishAlert(ctx context.Context, alertID string, record []byte) error {
	now := p.now().UTC()
	token := subjectToken(alertID)
	if token == "" {
		token = "unknown"
	}

	subject := p.subject + "." + token

	event := CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &now,
		Data:            record,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	ack, err := p.js.Publish(ctx, subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish alert event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", subject).
		Uint64("seq", ack.Sequence).
		Msg("Published alert event")

	return nil
}

// subjectToken makes s usable as a single NATS subject token.
func subjectToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}

		return r
	}, s)
}

// Connect dials NATS, ensures the stream covers subject and returns a publisher.
// The caller owns the returned connection.
func Connect(ctx context.Context, opts *Options, log logger.Logger) (*EventPublisher, *nats.Conn, error) {
	natsOpts, err := opts.natsOptions(log)
	if err != nil {
		return nil, nil, err
	}

	nc, err := nats.Connect(opts.URL, natsOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher, err := CreateEventPublisher(ctx, nc, opts.Stream, opts.Subject, log)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return publisher, nc, nil
}

// CreateEventPublisher creates an EventPublisher for an existing NATS connection.
func CreateEventPublisher(ctx context.Context, nc *nats.Conn, streamName, subject string, log logger.Logger) (*EventPublisher, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(ctx, js, streamName, subject+".>", log); err != nil {
		return nil, err
	}

	return NewEventPublisher(js, streamName, subject, log), nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, streamName, subject string, log logger.Logger) error {
	stream, err := js.Stream(ctx, streamName)
	if err != nil {
		if !isStreamMissingErr(err) {
			return fmt.Errorf("failed to get stream %s: %w", streamName, err)
		}

		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}

		log.Info().Str("stream", streamName).Str("subject", subject).Msg("Created NATS JetStream stream")

		return nil
	}

	cfg := stream.CachedInfo().Config

	subjects := ensureSubjectList(append([]string(nil), cfg.Subjects...), subject)
	if len(subjects) == len(cfg.Subjects) {
		return nil
	}

	cfg.Subjects = subjects

	if _, err := js.UpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("failed to add subject %s to stream %s: %w", subject, streamName, err)
	}

	log.Info().Str("stream", streamName).Str("subject", subject).Msg("Added subject to NATS JetStream stream")

	return nil
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}

// ensureSubjectList appends subject unless an existing pattern already covers it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject reports whether pattern (which may use * and >) covers subject.
func matchesSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")

	for i, tok := range pt {
		if tok == ">" {
			return len(st) > i
		}

		if i >= len(st) {
			return false
		}

		if tok == "*" {
			if st[i] == ">" {
				return false
			}

			continue
		}

		if tok != st[i] {
			return false
		}
	}

	return len(pt) == len(st)
}
