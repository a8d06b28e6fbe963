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
	"fmt"

	"github.com/carverauto/avgsync/pkg/avg"
	"github.com/carverauto/avgsync/pkg/logger"
)

// Publisher sends a serialized record somewhere after it is written.
type Publisher interface {
	PublishAlert(ctx context.Context, alertID string, record []byte) error
}

// PublishingWriter writes through to Next and then publishes the record.
// Publish failures are logged and never fail the write, so a broker outage
// cannot hold back the watermark.
type PublishingWriter struct {
	Next      avg.RecordWriter
	Publisher Publisher
	logger    logger.Logger
}

// NewPublishingWriter wraps next with publication via pub.
func NewPublishingWriter(next avg.RecordWriter, pub Publisher, log logger.Logger) *PublishingWriter {
	return &PublishingWriter{
		Next:      next,
		Publisher: pub,
		logger:    log.WithComponent("output"),
	}
}

func (w *PublishingWriter) Write(ctx context.Context, record *avg.CombinedRecord) (string, error) {
	path, err := w.Next.Write(ctx, record)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return path, fmt.Errorf("failed to marshal record %s: %w", record.AlertID, err)
	}

	if err := w.Publisher.PublishAlert(ctx, record.AlertID.String(), data); err != nil {
		w.logger.Warn().
			Err(err).
			Str("alert_id", record.AlertID.String()).
			Msg("Failed to publish alert record")
	}

	return path, nil
}
