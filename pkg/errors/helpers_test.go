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

package errors_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		original := dderrors.Classify(429, nil)
		wrapped := dderrors.Wrap(original, "suggest address")

		if !strings.Contains(wrapped.Error(), "suggest address") {
			t.Errorf("wrapped error should contain context, got: %s", wrapped)
		}
		if !errors.Is(wrapped, dderrors.ErrRateLimit) {
			t.Error("wrapped error should still match its sentinel")
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		if wrapped := dderrors.Wrap(nil, "context"); wrapped != nil {
			t.Errorf("Wrap(nil, _) should return nil, got: %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	original := errors.New("boom")
	wrapped := dderrors.Wrapf(original, "clean %s", "address")

	if !strings.HasPrefix(wrapped.Error(), "clean address: ") {
		t.Errorf("unexpected message: %s", wrapped)
	}
	if dderrors.Wrapf(nil, "x %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestAs(t *testing.T) {
	wrapped := dderrors.Wrap(dderrors.Classify(403, nil), "profile balance")

	var apiErr *dderrors.APIError
	if !dderrors.As(wrapped, &apiErr) {
		t.Fatal("As should find APIError in chain")
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
}

func TestStatusCode(t *testing.T) {
	if got := dderrors.StatusCode(dderrors.Wrap(dderrors.Classify(404, nil), "x")); got != 404 {
		t.Errorf("StatusCode = %d, want 404", got)
	}
	if got := dderrors.StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode = %d, want 0", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want dderrors.Kind
	}{
		{"api", dderrors.Classify(500, nil), dderrors.KindAPI},
		{"connection", dderrors.ClassifyTransport(context.DeadlineExceeded), dderrors.KindTimeout},
		{"config", &dderrors.ConfigError{Key: "timeout", Reason: "must be > 0"}, dderrors.KindConfig},
		{"foreign", errors.New("other"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dderrors.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !dderrors.IsRetryable(dderrors.Classify(429, nil)) {
		t.Error("429 should be retryable")
	}
	if dderrors.IsRetryable(dderrors.Classify(401, nil)) {
		t.Error("401 should not be retryable")
	}
	if !dderrors.IsRetryable(dderrors.ClassifyTransport(errors.New("reset"))) {
		t.Error("connection errors should be retryable")
	}
	if dderrors.IsRetryable(errors.New("plain")) {
		t.Error("foreign errors should not be retryable")
	}
}
