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

// Package httpclient is the request pipeline behind every DaData endpoint
// client. It turns a call into an authenticated HTTP exchange, retries
// transport failures, classifies the outcome and keeps credentials out of
// logs.
//
// # Usage
//
//	cfg := config.New(config.Options{APIKey: key, SecretKey: secret})
//	client, err := httpclient.New(cfg, config.DefaultCleanerURL)
//	if err != nil {
//	    return err
//	}
//	result, err := client.Submit(ctx, "clean/address", []string{"мск сухонска 11/-89"}, http.MethodPost, 0)
//
// # Headers
//
// Every request carries Content-Type and Accept set to application/json,
// "Authorization: Token <api key>", and "X-Secret: <secret key>" when a
// secret key is configured. The instrumented transport adds User-Agent,
// X-Request-ID and W3C trace context.
//
// # Retry Behavior
//
// Only transport failures are retried: dial errors, timeouts and I/O errors
// while reading the response. A response with any status code, 4xx and 5xx
// included, ends the call. The default policy allows 2 retries after the
// first attempt with a 50ms base interval, factor 2 and ±50% jitter. POST is
// retried like GET; callers that need exactly-once semantics must not rely
// on Submit for it.
//
// Each attempt has its own deadline (the per-call timeout or the configured
// default). An attempt that times out is retried; a cancelled or expired
// parent context stops the loop.
//
// # Errors
//
// Non-2xx responses fail with *errors.APIError; exhausted retries fail with
// *errors.ConnectionError, whose message is one of "Request timed out",
// "Failed to connect" or "Request failed".
//
// # Logging
//
// Each attempt writes one debug entry (method, path, payload, redacted
// headers, attempt, request_id). Each terminal failure writes one error
// entry with the redacted error text and redacted headers. Successful calls
// write nothing else. The payload is logged as sent.
//
// # Thread Safety
//
// A Client is safe for concurrent use. Calls share the connection pool and
// the configuration; nothing else is shared between them.
package httpclient
