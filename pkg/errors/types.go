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

// Package errors defines the failure taxonomy returned by the DaData client.
//
// Callers get one of three families:
//   - *APIError: the service answered with a non-2xx status ("your request was rejected")
//   - *ConnectionError: no HTTP status was obtained ("the service was unreachable")
//   - *ConfigError: the client configuration is invalid, detected before any network call
//
// Every type matches sentinel values through errors.Is, so callers can branch
// without type assertions:
//
//	if errors.Is(err, dderrors.ErrRateLimit) {
//	    // back off
//	}
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for routing and retry decisions.
type Kind string

const (
	// KindBadRequest is HTTP 400.
	KindBadRequest Kind = "bad_request"

	// KindAuthentication is HTTP 401 or 403.
	KindAuthentication Kind = "authentication"

	// KindNotFound is HTTP 404.
	KindNotFound Kind = "not_found"

	// KindRateLimit is HTTP 429.
	KindRateLimit Kind = "rate_limit"

	// KindAPI is any other non-2xx status.
	KindAPI Kind = "api"

	// KindTimeout is a transport timeout.
	KindTimeout Kind = "timeout"

	// KindConnectionFailed is a failure to establish the connection.
	KindConnectionFailed Kind = "connection_failed"

	// KindConnection is any other transport failure.
	KindConnection Kind = "connection"

	// KindConfig is an invalid configuration.
	KindConfig Kind = "config"
)

// Sentinels for errors.Is matching.
var (
	// ErrAPI matches every *APIError.
	ErrAPI = errors.New("dadata api error")

	ErrBadRequest     = errors.New("bad request")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("service not found")
	ErrRateLimit      = errors.New("rate limit exceeded")

	// ErrConnection matches every *ConnectionError.
	ErrConnection = errors.New("connection error")

	ErrTimeout          = errors.New("request timed out")
	ErrConnectionFailed = errors.New("failed to connect")

	// ErrInvalidConfig matches every *ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the canonical description for StatusCode (see StatusText).
	Message string

	// Kind is derived from StatusCode.
	Kind Kind

	// Detail is the server-supplied explanation, redacted. May be empty.
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("dadata api error (status %d): %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("dadata api error (status %d): %s", e.StatusCode, e.Message)
}

// Is matches ErrAPI and the sentinel for the error's kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAPI:
		return true
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrRateLimit:
		return e.Kind == KindRateLimit
	}
	return false
}

// IsAuthentication reports whether the service rejected the credentials.
func (e *APIError) IsAuthentication() bool {
	return e.Kind == KindAuthentication
}

// IsRateLimit reports whether the service throttled the request.
func (e *APIError) IsRateLimit() bool {
	return e.Kind == KindRateLimit
}

// ErrorType implements ErrorClassifier.
func (e *APIError) ErrorType() string {
	return string(e.Kind)
}

// IsRetryable implements ErrorClassifier. Only throttling is worth retrying
// at the caller's layer.
func (e *APIError) IsRetryable() bool {
	return e.Kind == KindRateLimit
}

// IsUserVisible implements UserVisibleError.
func (e *APIError) IsUserVisible() bool {
	return true
}

// UserMessage implements UserVisibleError.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Suggestion implements UserVisibleError.
func (e *APIError) Suggestion() string {
	switch e.Kind {
	case KindAuthentication:
		return "Check the API key and secret key, and the daily request limit of the account"
	case KindRateLimit:
		return "Reduce request frequency or configure a client-side rate limit"
	case KindBadRequest:
		return "Check the request parameters"
	}
	return ""
}

// ConnectionError is a transport failure: no HTTP status was obtained.
// Error returns only the canonical message; the underlying transport error
// is reachable through Unwrap for errors.Is checks but is never formatted.
type ConnectionError struct {
	// Kind is KindTimeout, KindConnectionFailed or KindConnection.
	Kind Kind

	// Message is one of "Request timed out", "Failed to connect", "Request failed".
	Message string

	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is matches ErrConnection and the sentinel for the error's kind.
func (e *ConnectionError) Is(target error) bool {
	switch target {
	case ErrConnection:
		return true
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrConnectionFailed:
		return e.Kind == KindConnectionFailed
	}
	return false
}

// ErrorType implements ErrorClassifier.
func (e *ConnectionError) ErrorType() string {
	return string(e.Kind)
}

// IsRetryable implements ErrorClassifier.
func (e *ConnectionError) IsRetryable() bool {
	return true
}

// IsUserVisible implements UserVisibleError.
func (e *ConnectionError) IsUserVisible() bool {
	return true
}

// UserMessage implements UserVisibleError.
func (e *ConnectionError) UserMessage() string {
	return e.Message
}

// Suggestion implements UserVisibleError.
func (e *ConnectionError) Suggestion() string {
	if e.Kind == KindTimeout {
		return "Increase the client timeout or retry later"
	}
	return "Check network connectivity to the DaData API"
}

// ConfigError represents configuration problems.
// It is returned before any network call is made.
type ConfigError struct {
	// Key is the configuration field that has the problem (e.g., "api_key", "timeout")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is matches ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ErrorType implements ErrorClassifier.
func (e *ConfigError) ErrorType() string {
	return string(KindConfig)
}

// IsRetryable implements ErrorClassifier.
func (e *ConfigError) IsRetryable() bool {
	return false
}

// IsUserVisible implements UserVisibleError.
func (e *ConfigError) IsUserVisible() bool {
	return true
}

// UserMessage implements UserVisibleError.
func (e *ConfigError) UserMessage() string {
	return e.Error()
}

// Suggestion implements UserVisibleError.
func (e *ConfigError) Suggestion() string {
	switch e.Key {
	case "api_key":
		return "Set DADATA_API_KEY or api_key in the config file"
	case "secret_key":
		return "Set DADATA_SECRET_KEY or secret_key in the config file"
	}
	return ""
}
