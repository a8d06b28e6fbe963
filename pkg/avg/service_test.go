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

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/avgsync/pkg/logger"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
	ran   chan struct{}
}

func (r *countingRunner) Run(context.Context) (*SyncResult, error) {
	r.calls.Add(1)
	r.ran <- struct{}{}

	if r.err != nil {
		return nil, r.err
	}

	return &SyncResult{RunID: "run"}, nil
}

func TestService_RunsImmediatelyAndOnEachTick(t *testing.T) {
	runner := &countingRunner{ran: make(chan struct{}, 4)}
	clock := newFakeClock()

	svc := NewService(runner, time.Minute, logger.NewTestLogger())
	svc.Clock = clock

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- svc.Start(ctx) }()

	<-runner.ran

	clock.ticker.ch <- time.Now()
	<-runner.ran

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("service did not stop")
	}

	assert.Equal(t, int32(2), runner.calls.Load())
	assert.True(t, clock.ticker.stopped)
}

func TestService_FailedRunDoesNotStopService(t *testing.T) {
	runner := &countingRunner{ran: make(chan struct{}, 4), err: errors.New("boom")}
	clock := newFakeClock()

	svc := NewService(runner, time.Minute, logger.NewTestLogger())
	svc.Clock = clock

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- svc.Start(ctx) }()

	<-runner.ran

	clock.ticker.ch <- time.Now()
	<-runner.ran

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), runner.calls.Load())
}
