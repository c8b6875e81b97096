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

package redact

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	inner := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewHandler(inner)), buf
}

func TestHandler_RedactsMessage(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Info("sending Authorization: Token leaked-token")

	out := buf.String()
	assert.NotContains(t, out, "leaked-token")
	assert.Contains(t, out, "Authorization: [FILTERED]")
}

func TestHandler_RedactsAttributes(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Error("request failed",
		"headers", "Authorization: Token tok-one, X-Secret: sec-one",
		"error", errors.New("dial failed with API-Key: key-one"),
		"X-Secret", "raw-secret",
		slog.Group("nested", slog.String("detail", "Authorization: Token tok-two")),
	)

	out := buf.String()
	for _, leak := range []string{"tok-one", "sec-one", "key-one", "raw-secret", "tok-two"} {
		assert.NotContains(t, out, leak)
	}
	assert.Contains(t, out, `"X-Secret":"[FILTERED]"`)
}

type endpoint struct {
	URL     string
	Headers map[string]string
}

type credential string

func (c credential) String() string { return "API-Key: " + string(c) }

func TestHandler_RedactsStructuredValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
		leak  string
		want  string
	}{
		{
			name:  "http header",
			value: http.Header{"Authorization": {"Token hdr-token"}, "Api-Key": {"hdr-key"}, "Accept": {"application/json"}},
			leak:  "hdr-token",
			want:  `"Authorization":["[FILTERED]"]`,
		},
		{
			name:  "canonical api key header",
			value: http.Header{"Api-Key": {"hdr-key"}},
			leak:  "hdr-key",
			want:  `"Api-Key":["[FILTERED]"]`,
		},
		{
			name:  "string map",
			value: map[string]string{"X-Secret": "map-secret", "Content-Type": "application/json"},
			leak:  "map-secret",
			want:  `"X-Secret":"[FILTERED]"`,
		},
		{
			name:  "multi-value map",
			value: map[string][]string{"X-Secret": {"multi-secret"}},
			leak:  "multi-secret",
			want:  `"X-Secret":["[FILTERED]"]`,
		},
		{
			name:  "struct",
			value: endpoint{URL: "https://example.com", Headers: map[string]string{"Authorization": "Token struct-token"}},
			leak:  "struct-token",
			want:  "Authorization: [FILTERED]",
		},
		{
			name:  "stringer",
			value: credential("stringer-key"),
			leak:  "stringer-key",
			want:  "API-Key: [FILTERED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()

			logger.Info("x", "value", tt.value)

			out := buf.String()
			assert.NotContains(t, out, tt.leak)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestHandler_KeepsPlainMapValues(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Info("x", "headers", http.Header{"Accept": {"application/json"}})

	assert.Contains(t, buf.String(), `"headers":{"Accept":["application/json"]}`)
}

func TestHandler_WithAttrs(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.With("Authorization", "Token preset").Info("hello")

	assert.NotContains(t, buf.String(), "preset")
}

func TestHandler_WithGroup(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.WithGroup("req").Info("x", "h", "API-Key: grouped")

	out := buf.String()
	assert.NotContains(t, out, "grouped")
	assert.Contains(t, out, `"req"`)
}

func TestHandler_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewHandler_DoesNotDoubleWrap(t *testing.T) {
	inner := NewHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
	require.Same(t, inner, NewHandler(inner))
}

func TestWrapLogger(t *testing.T) {
	t.Run("nil logger discards", func(t *testing.T) {
		logger := WrapLogger(nil)
		require.NotNil(t, logger)
		assert.True(t, IsWrapped(logger))
		logger.Info("nothing happens")
	})

	t.Run("plain logger gets wrapped", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := WrapLogger(slog.New(slog.NewTextHandler(buf, nil)))
		assert.True(t, IsWrapped(logger))

		logger.Info("X-Secret: abc")
		assert.NotContains(t, buf.String(), "abc")
	})

	t.Run("wrapped logger returned as is", func(t *testing.T) {
		logger := WrapLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		assert.Same(t, logger, WrapLogger(logger))
	})
}
