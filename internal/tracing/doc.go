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

// Package tracing carries request correlation and OpenTelemetry setup for
// outbound DaData calls.
//
// Every request gets an X-Request-ID, taken from the context when the
// caller set one with ToContext, and W3C trace context headers when a
// span is active. NewProvider installs an SDK tracer provider for the
// command-line tool; library users bring their own provider instead.
package tracing
