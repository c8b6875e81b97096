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

// Package profile queries the DaData account: balance, usage statistics and
// reference data versions.
package profile

import (
	"context"
	"net/http"
	"time"

	"github.com/TakaiSaisei/dadata/pkg/config"
	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
	"github.com/TakaiSaisei/dadata/pkg/httpclient"
)

// DateLayout is the date format of the stats endpoint.
const DateLayout = "2006-01-02"

// Client calls the profile API.
type Client struct {
	http *httpclient.Client
	now  func() time.Time
}

// New creates a Client for the configured profile URL. The balance and
// stats endpoints require the secret key.
func New(cfg *config.Config, opts ...httpclient.Option) (*Client, error) {
	if cfg == nil {
		return nil, &dderrors.ConfigError{Reason: "config is nil"}
	}
	hc, err := httpclient.New(cfg, cfg.Snapshot().ProfileURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(hc), nil
}

// NewWithClient wraps an existing pipeline client.
func NewWithClient(hc *httpclient.Client) *Client {
	return &Client{http: hc, now: time.Now}
}

// Balance returns the account balance in rubles.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var resp balanceResponse
	if err := c.http.SubmitInto(ctx, "profile/balance", nil, http.MethodGet, 0, &resp); err != nil {
		return 0, c.http.Fail(ctx, "balance", err)
	}
	return resp.Balance, nil
}

// DailyStats returns usage for date. A zero date means today.
func (c *Client) DailyStats(ctx context.Context, date time.Time) (*DailyStats, error) {
	if date.IsZero() {
		date = c.now()
	}

	var stats DailyStats
	params := map[string]string{"date": date.Format(DateLayout)}
	if err := c.http.SubmitInto(ctx, "stat/daily", params, http.MethodGet, 0, &stats); err != nil {
		return nil, c.http.Fail(ctx, "daily_stats", err)
	}
	return &stats, nil
}

// Versions returns the data release of each service.
func (c *Client) Versions(ctx context.Context) (*Versions, error) {
	var v Versions
	if err := c.http.SubmitInto(ctx, "version", nil, http.MethodGet, 0, &v); err != nil {
		return nil, c.http.Fail(ctx, "versions", err)
	}
	return &v, nil
}
