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

// Package avg pkg/avg/errors.go
package avg

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

var (
	// ErrUnexpectedStatusCode matches every *StatusError.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrRateLimited matches a *StatusError carrying HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrRateLimitExhausted is returned when a configured retry bound is hit.
	ErrRateLimitExhausted = errors.New("rate limit retries exhausted")
	ErrAuthFailed         = errors.New("authentication failed")
	ErrNoCompanies        = errors.New("no company found")
	errInvalidID          = errors.New("invalid identifier")
	errInvalidConfig      = errors.New("invalid configuration")
)

const maxErrorBody = 512

// StatusError reports a non-success HTTP response from the API.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func newStatusError(endpoint string, statusCode int, body []byte) *StatusError {
	if len(body) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}

		body = append(body[:n:n], "..."...)
	}

	return &StatusError{Endpoint: endpoint, StatusCode: statusCode, Body: string(body)}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d, response: %s", ErrUnexpectedStatusCode, e.Endpoint, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatusCode:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}

	return 0
}
