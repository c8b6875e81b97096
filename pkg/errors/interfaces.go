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

// UserVisibleError is implemented by errors that carry a message and a
// suggestion fit for the CLI.
type UserVisibleError interface {
	error

	// IsUserVisible returns true if this error should be shown to users.
	IsUserVisible() bool

	// UserMessage returns a user-friendly error message.
	UserMessage() string

	// Suggestion returns actionable guidance, or "".
	Suggestion() string
}

// ErrorClassifier is implemented by every error in the taxonomy.
type ErrorClassifier interface {
	error

	// ErrorType returns the Kind as a string.
	ErrorType() string

	// IsRetryable returns true if the caller may retry later.
	IsRetryable() bool
}

var (
	_ ErrorClassifier  = (*APIError)(nil)
	_ ErrorClassifier  = (*ConnectionError)(nil)
	_ ErrorClassifier  = (*ConfigError)(nil)
	_ UserVisibleError = (*APIError)(nil)
	_ UserVisibleError = (*ConnectionError)(nil)
	_ UserVisibleError = (*ConfigError)(nil)
)
