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

package tracing

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// RequestID identifies one Submit call across its attempts and log entries.
// It uses RFC 4122 UUID format (36 characters).
type RequestID string

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// HeaderRequestID carries the request ID on outbound requests.
const HeaderRequestID = "X-Request-ID"

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// NewRequestID generates a new request ID.
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// String returns the string representation of the request ID.
func (r RequestID) String() string {
	return string(r)
}

// IsValid checks if the request ID is a valid UUID.
func (r RequestID) IsValid() bool {
	return uuidRegex.MatchString(string(r))
}

// ToContext stores a caller-chosen request ID so that Submit reuses it.
func ToContext(ctx context.Context, id RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// FromContext returns the request ID in ctx, generating a new one if absent.
func FromContext(ctx context.Context) RequestID {
	if id := FromContextOrEmpty(ctx); id != "" {
		return id
	}
	return NewRequestID()
}

// FromContextOrEmpty returns the request ID in ctx, or "".
func FromContextOrEmpty(ctx context.Context) RequestID {
	if id, ok := ctx.Value(requestIDKey).(RequestID); ok {
		return id
	}
	return ""
}

// InjectIntoRequest sets the X-Request-ID header from the request context.
func InjectIntoRequest(req *http.Request) {
	if id := FromContextOrEmpty(req.Context()); id != "" {
		req.Header.Set(HeaderRequestID, id.String())
	}
}
