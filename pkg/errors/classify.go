// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/TakaiSaisei/dadata/pkg/redact"
)

// Canonical transport failure messages.
const (
	MessageTimeout          = "Request timed out"
	MessageConnectionFailed = "Failed to connect"
	MessageRequestFailed    = "Request failed"
)

// UnknownStatus is the description for codes missing from the status table.
const UnknownStatus = "Unknown error"

var statusText = map[int]string{
	200: "Request processed successfully",
	400: "Invalid request (invalid JSON or XML)",
	401: "Missing API key or secret key, or non-existent key used",
	403: "Invalid API key, unconfirmed email, or daily request limit exceeded",
	404: "Service not found",
	405: "Request method other than POST used",
	413: "Request too long or too many conditions",
	429: "Too many requests per second or new connections per minute",
	500: "Internal service error",
}

// StatusText returns the service's description of an HTTP status code.
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return UnknownStatus
}

// Classify maps a non-2xx response to an *APIError. body is the parsed
// response body (may be nil); a "detail" or "message" field, when present,
// is redacted and kept as Detail.
//
// Callers never pass 2xx codes: successful responses bypass classification.
func Classify(statusCode int, body any) *APIError {
	var kind Kind
	switch statusCode {
	case 400:
		kind = KindBadRequest
	case 401, 403:
		kind = KindAuthentication
	case 404:
		kind = KindNotFound
	case 429:
		kind = KindRateLimit
	default:
		kind = KindAPI
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    StatusText(statusCode),
		Kind:       kind,
		Detail:     detailFrom(body),
	}
}

func detailFrom(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"detail", "message"} {
		if s, ok := m[key].(string); ok && s != "" {
			return redact.SanitizeMessage(s)
		}
	}
	return ""
}

// ClassifyTransport maps a transport-level failure to a *ConnectionError
// carrying only the canonical message for its kind.
func ClassifyTransport(err error) *ConnectionError {
	switch {
	case isTimeout(err):
		return &ConnectionError{Kind: KindTimeout, Message: MessageTimeout, Cause: err}
	case isConnectFailure(err):
		return &ConnectionError{Kind: KindConnectionFailed, Message: MessageConnectionFailed, Cause: err}
	default:
		return &ConnectionError{Kind: KindConnection, Message: MessageRequestFailed, Cause: err}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isConnectFailure reports failures to establish a connection: refused
// dials, DNS failures and unreachable networks.
func isConnectFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}
