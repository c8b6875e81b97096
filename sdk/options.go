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

package sdk

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/TakaiSaisei/dadata/pkg/httpclient"
	"github.com/TakaiSaisei/dadata/pkg/metrics"
)

// Option is a functional option for Client construction.
type Option func(*settings) error

type settings struct {
	httpClient *http.Client
	metrics    *metrics.Collector
	tracer     trace.TracerProvider
	retry      *httpclient.RetryPolicy
	limiter    *rate.Limiter
}

func (s *settings) httpOptions() []httpclient.Option {
	var opts []httpclient.Option
	if s.httpClient != nil {
		opts = append(opts, httpclient.WithHTTPClient(s.httpClient))
	}
	if s.metrics != nil {
		opts = append(opts, httpclient.WithMetrics(s.metrics))
	}
	if s.tracer != nil {
		opts = append(opts, httpclient.WithTracerProvider(s.tracer))
	}
	if s.retry != nil {
		opts = append(opts, httpclient.WithRetryPolicy(*s.retry))
	}
	if s.limiter != nil {
		opts = append(opts, httpclient.WithRateLimiter(s.limiter))
	}
	return opts
}

// WithHTTPClient replaces the pooled HTTP client used for every host.
//
// Example:
//
//	client, err := sdk.New(cfg, sdk.WithHTTPClient(&http.Client{Transport: myTransport}))
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		s.httpClient = hc
		return nil
	}
}

// WithMetrics registers request metrics on reg. Clients built with the same
// registerer share the collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *settings) error {
		if reg == nil {
			return fmt.Errorf("registerer cannot be nil")
		}
		m, err := metrics.New(reg)
		if err != nil {
			return err
		}
		s.metrics = m
		return nil
	}
}

// WithTracerProvider sets the tracer provider used for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) error {
		if tp == nil {
			return fmt.Errorf("tracer provider cannot be nil")
		}
		s.tracer = tp
		return nil
	}
}

// WithRetryPolicy overrides the default transport retry policy.
func WithRetryPolicy(p httpclient.RetryPolicy) Option {
	return func(s *settings) error {
		if err := p.Validate(); err != nil {
			return err
		}
		s.retry = &p
		return nil
	}
}

// WithRateLimit shares one limiter of rps requests per second across all
// three API hosts. It takes precedence over RequestsPerSecond in the
// configuration, which limits each host separately.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *settings) error {
		if rps <= 0 {
			return fmt.Errorf("rate limit must be > 0, got %v", rps)
		}
		if burst < 1 {
			return fmt.Errorf("burst must be >= 1, got %d", burst)
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}
