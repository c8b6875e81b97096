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

// Package metrics exposes Prometheus collectors for DaData requests.
//
// Collectors are registered on a caller-supplied Registerer so that several
// clients (or tests) never collide on the default registry. A nil *Collector
// is valid and records nothing.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records request metrics.
type Collector struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	retries        *prometheus.CounterVec
	errorsByKind   *prometheus.CounterVec
	rateLimitWaits prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
}

// New registers the collectors on reg. Collectors that reg already holds
// from an earlier New are reused, so clients sharing a registry share
// series. A conflicting collector with the same name is an error.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, errors.New("registerer cannot be nil")
	}

	c := &Collector{}
	var err error

	if c.requests, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dadata_requests_total",
			Help: "Total HTTP exchanges with the DaData API by status code",
		},
		[]string{"host", "method", "code"},
	)); err != nil {
		return nil, err
	}
	if c.duration, err = register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dadata_request_duration_seconds",
			Help:    "Duration of single HTTP attempts against the DaData API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host", "method"},
	)); err != nil {
		return nil, err
	}
	if c.retries, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dadata_request_retries_total",
			Help: "Total retried attempts after transport failures",
		},
		[]string{"host"},
	)); err != nil {
		return nil, err
	}
	if c.errorsByKind, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dadata_errors_total",
			Help: "Total terminal request failures by error kind",
		},
		[]string{"kind"},
	)); err != nil {
		return nil, err
	}
	if c.rateLimitWaits, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dadata_rate_limit_wait_seconds",
		Help:    "Time spent waiting on the client-side rate limiter",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	})); err != nil {
		return nil, err
	}
	if c.cacheLookups, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dadata_cache_lookups_total",
			Help: "Suggestions cache lookups by result",
		},
		[]string{"result"},
	)); err != nil {
		return nil, err
	}

	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return col, fmt.Errorf("register metrics: %w", err)
}

// ObserveAttempt records one HTTP attempt. code is 0 when no response was
// received.
func (c *Collector) ObserveAttempt(host, method string, code int, d time.Duration) {
	if c == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	c.requests.WithLabelValues(host, method, label).Inc()
	c.duration.WithLabelValues(host, method).Observe(d.Seconds())
}

// IncRetry records a retried attempt.
func (c *Collector) IncRetry(host string) {
	if c == nil {
		return
	}
	c.retries.WithLabelValues(host).Inc()
}

// IncError records a terminal failure.
func (c *Collector) IncError(kind string) {
	if c == nil || kind == "" {
		return
	}
	c.errorsByKind.WithLabelValues(kind).Inc()
}

// ObserveRateLimitWait records time blocked on the rate limiter.
func (c *Collector) ObserveRateLimitWait(d time.Duration) {
	if c == nil {
		return
	}
	c.rateLimitWaits.Observe(d.Seconds())
}

// CacheHit records a suggestions cache hit.
func (c *Collector) CacheHit() {
	if c == nil {
		return
	}
	c.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss records a suggestions cache miss.
func (c *Collector) CacheMiss() {
	if c == nil {
		return
	}
	c.cacheLookups.WithLabelValues("miss").Inc()
}
