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
	"context"
	"math"
	"math/rand"
	"time"
)

// attemptFunc performs one HTTP exchange. Any error it returns is a
// transport failure; well-formed responses of any status are not errors.
type attemptFunc func(ctx context.Context, attempt int) (*response, error)

// withRetry runs fn until it succeeds, the policy is exhausted, or ctx is
// done. Every method is retried the same way; callers own idempotency.
func (c *Client) withRetry(ctx context.Context, fn attemptFunc) (*response, error) {
	maxAttempts := c.retry.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.metrics.IncRetry(c.host)
			if err := sleep(ctx, c.retry.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		resp, err := fn(ctx, attempt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(ctx) {
			return nil, err
		}
	}

	return nil, lastErr
}

// shouldRetry reports whether another attempt may run. Per-attempt
// deadlines are retried; a done parent context is not.
func shouldRetry(ctx context.Context) bool {
	return ctx.Err() == nil
}

// backoff returns the delay before the given retry (1-based):
// BaseInterval * Factor^(retry-1), randomized by ±Jitter.
func (p RetryPolicy) backoff(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	d := float64(p.BaseInterval) * math.Pow(p.Factor, float64(retry-1))

	if p.Jitter > 0 {
		d *= 1 + p.Jitter*(2*rand.Float64()-1)
	}

	return time.Duration(d)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
