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
	"errors"
	"fmt"
)

// Wrap creates a new error that wraps the given error with additional context.
// If err is nil, returns nil.
//
// Usage:
//
//	if err := cfg.Validate(); err != nil {
//	    return errors.Wrap(err, "creating cleaner")
//	}
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf creates a new error that wraps the given error with formatted context.
// If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target type.
// This is a convenience wrapper around errors.As from the standard library.
//
// Usage:
//
//	var apiErr *errors.APIError
//	if errors.As(err, &apiErr) {
//	    log.Printf("rejected with status %d", apiErr.StatusCode)
//	}
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// StatusCode returns the HTTP status carried by an *APIError in err's tree,
// or 0 when there is none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// KindOf returns the Kind of the first taxonomy error in err's tree,
// or "" for errors outside the taxonomy.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Kind
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return KindConfig
	}
	return ""
}

// IsRetryable reports whether err is worth retrying at the caller's layer.
func IsRetryable(err error) bool {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.IsRetryable()
	}
	return false
}
