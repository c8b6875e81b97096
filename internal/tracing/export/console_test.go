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

package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewConsoleExporter(t *testing.T) {
	tests := []struct {
		name        string
		prettyPrint bool
		wantIndent  bool
	}{
		{"compact", false, false},
		{"pretty", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter, err := NewConsoleExporter(ConsoleConfig{Writer: &buf, PrettyPrint: tt.prettyPrint})
			if err != nil {
				t.Fatalf("NewConsoleExporter() error = %v", err)
			}

			tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
			_, span := tp.Tracer("test").Start(context.Background(), "dadata POST /suggest/address")
			span.End()
			if err := tp.Shutdown(context.Background()); err != nil {
				t.Fatalf("Shutdown() error = %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "dadata POST /suggest/address") {
				t.Errorf("expected span name in output, got %s", out)
			}
			if got := strings.Contains(out, "\n\t") || strings.Contains(out, "\n  "); got != tt.wantIndent {
				t.Errorf("indented = %v, want %v", got, tt.wantIndent)
			}
		})
	}
}

func TestNewConsoleExporter_DefaultWriter(t *testing.T) {
	exporter, err := NewConsoleExporter(ConsoleConfig{})
	if err != nil {
		t.Fatalf("NewConsoleExporter() error = %v", err)
	}
	if err := exporter.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
