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

package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/TakaiSaisei/dadata/internal/tracing"
	"github.com/TakaiSaisei/dadata/pkg/metrics"
)

// newPooledTransport returns the connection pool shared by every call made
// through one Client. poolSize caps connections per host; poolTimeout bounds
// dialing and the TLS handshake.
func newPooledTransport(poolSize int, poolTimeout time.Duration) *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: poolSize,
		MaxConnsPerHost:     poolSize,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   poolTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   poolTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}

// instrumentedTransport wraps an http.RoundTripper to add:
// - User-Agent header injection
// - X-Request-ID and W3C trace context propagation
// - per-attempt metrics
type instrumentedTransport struct {
	base      http.RoundTripper
	userAgent string
	host      string
	metrics   *metrics.Collector
}

func newInstrumentedTransport(base http.RoundTripper, userAgent, host string, m *metrics.Collector) *instrumentedTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &instrumentedTransport{
		base:      base,
		userAgent: userAgent,
		host:      host,
		metrics:   m,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	tracing.InjectIntoRequest(req)
	tracing.InjectHTTPHeaders(req.Context(), req)

	resp, err := t.base.RoundTrip(req)

	code := 0
	if err == nil {
		code = resp.StatusCode
	}
	t.metrics.ObserveAttempt(t.host, req.Method, code, time.Since(start))

	return resp, err
}
