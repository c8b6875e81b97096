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
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/textproto"
)

// Handler is a slog.Handler that sanitizes every record before forwarding it
// to the wrapped handler. Messages and string attributes go through
// SanitizeMessage. Attributes keyed by a sensitive name are replaced
// outright, as are sensitive entries of header maps. Any other value is
// rendered with fmt.Sprint and sanitized as text.
type Handler struct {
	next slog.Handler
}

// NewHandler wraps next. Wrapping an existing *Handler returns it unchanged.
func NewHandler(next slog.Handler) *Handler {
	if h, ok := next.(*Handler); ok {
		return h
	}
	return &Handler{next: next}
}

// WrapLogger returns a logger whose handler redacts. A nil logger yields a
// logger that discards everything.
func WrapLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(NewHandler(slog.NewTextHandler(io.Discard, nil)))
	}
	if IsWrapped(logger) {
		return logger
	}
	return slog.New(NewHandler(logger.Handler()))
}

// IsWrapped reports whether logger already redacts.
func IsWrapped(logger *slog.Logger) bool {
	if logger == nil {
		return false
	}
	_, ok := logger.Handler().(*Handler)
	return ok
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, SanitizeMessage(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.next.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = sanitizeAttr(a)
	}
	return &Handler{next: h.next.WithAttrs(clean)}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if IsSensitive(a.Key) {
		return slog.String(a.Key, Filtered)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, SanitizeMessage(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		clean := make([]slog.Attr, len(group))
		for i, g := range group {
			clean[i] = sanitizeAttr(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	case slog.KindAny:
		return slog.Any(a.Key, sanitizeAny(a.Value.Any()))
	}
	return a
}

func sanitizeAny(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case error:
		return SanitizeMessage(v.Error())
	case http.Header:
		return http.Header(sanitizeMultiMap(v))
	case map[string][]string:
		return sanitizeMultiMap(v)
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if isSensitiveKey(k) {
				out[k] = Filtered
				continue
			}
			out[k] = SanitizeMessage(val)
		}
		return out
	default:
		return SanitizeMessage(fmt.Sprint(v))
	}
}

func sanitizeMultiMap(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, vals := range m {
		clean := make([]string, len(vals))
		for i, val := range vals {
			if isSensitiveKey(k) {
				clean[i] = Filtered
				continue
			}
			clean[i] = SanitizeMessage(val)
		}
		out[k] = clean
	}
	return out
}

// isSensitiveKey matches map keys exactly or in canonical header form, so
// http.Header's "Api-Key" is caught too.
func isSensitiveKey(k string) bool {
	if IsSensitive(k) {
		return true
	}
	canonical := textproto.CanonicalMIMEHeaderKey(k)
	for _, name := range sensitiveNames {
		if canonical == textproto.CanonicalMIMEHeaderKey(name) {
			return true
		}
	}
	return false
}
