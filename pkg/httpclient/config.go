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
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/TakaiSaisei/dadata/pkg/metrics"
)

// RetryPolicy bounds retries of transport failures.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Default: 2 (3 attempts total). Must be >= 0.
	MaxRetries int

	// BaseInterval is the delay before the first retry. Default: 50ms.
	BaseInterval time.Duration

	// Jitter randomizes each delay by ±Jitter of its value. Default: 0.5.
	// Must be in [0, 1].
	Jitter float64

	// Factor multiplies the delay after each retry. Default: 2. Must be >= 1.
	Factor float64
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   2,
		BaseInterval: 50 * time.Millisecond,
		Jitter:       0.5,
		Factor:       2,
	}
}

// Validate checks if the policy is valid.
func (p RetryPolicy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", p.MaxRetries)
	}

	if p.MaxRetries > 0 && p.BaseInterval <= 0 {
		return fmt.Errorf("base_interval must be > 0 when max_retries > 0, got %v", p.BaseInterval)
	}

	if p.Jitter < 0 || p.Jitter > 1 {
		return fmt.Errorf("jitter must be within [0, 1], got %v", p.Jitter)
	}

	if p.Factor < 1 {
		return fmt.Errorf("factor must be >= 1, got %v", p.Factor)
	}

	return nil
}

// Option customizes a Client.
type Option func(*Client) error

// WithHTTPClient replaces the pooled HTTP client. The client's Timeout is
// ignored in favour of per-attempt deadlines.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithRetryPolicy overrides DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) error {
		if err := p.Validate(); err != nil {
			return err
		}
		c.retry = p
		return nil
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) error {
		c.metrics = m
		return nil
	}
}

// WithTracerProvider sets the tracer provider. Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) error {
		if tp == nil {
			return fmt.Errorf("tracer provider cannot be nil")
		}
		c.tracer = tp.Tracer(instrumentationName)
		return nil
	}
}

// WithRateLimiter shares a limiter between clients. It takes precedence
// over the configured RequestsPerSecond.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) error {
		c.limiter = l
		return nil
	}
}
