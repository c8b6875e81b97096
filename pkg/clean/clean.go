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

// Package clean standardizes addresses, phones, names and other values
// through the DaData cleaning API.
//
// The cleaning API requires both the API key and the secret key.
package clean

import (
	"context"
	"net/http"

	"github.com/TakaiSaisei/dadata/pkg/config"
	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
	"github.com/TakaiSaisei/dadata/pkg/httpclient"
)

// Client calls the cleaning API.
type Client struct {
	http *httpclient.Client
}

// New creates a Client for the configured cleaner URL.
func New(cfg *config.Config, opts ...httpclient.Option) (*Client, error) {
	if cfg == nil {
		return nil, &dderrors.ConfigError{Reason: "config is nil"}
	}
	hc, err := httpclient.New(cfg, cfg.Snapshot().CleanerURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(hc), nil
}

// NewWithClient wraps an existing pipeline client.
func NewWithClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// Clean standardizes one value. It returns nil when the service returns no
// record.
func (c *Client) Clean(ctx context.Context, kind Kind, source string) (Result, error) {
	results, err := c.clean(ctx, kind, []string{source})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// CleanMany standardizes several values of one kind in a single request.
// Results are in input order.
func (c *Client) CleanMany(ctx context.Context, kind Kind, sources []string) ([]Result, error) {
	return c.clean(ctx, kind, sources)
}

func (c *Client) clean(ctx context.Context, kind Kind, sources []string) ([]Result, error) {
	op := "clean_" + string(kind)

	if !c.http.Config().HasSecretKey() {
		return nil, c.http.Fail(ctx, op, &dderrors.ConfigError{
			Key:    "secret_key",
			Reason: "is required by the cleaning API",
		})
	}

	var results []Result
	if err := c.http.SubmitInto(ctx, "clean/"+string(kind), sources, http.MethodPost, 0, &results); err != nil {
		return nil, c.http.Fail(ctx, op, err)
	}
	return results, nil
}

// Address standardizes a postal address.
func (c *Client) Address(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindAddress, source)
}

// Phone standardizes a phone number.
func (c *Client) Phone(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindPhone, source)
}

// Passport checks a passport number against the invalid passports registry.
func (c *Client) Passport(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindPassport, source)
}

// Name standardizes a full name.
func (c *Client) Name(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindName, source)
}

// Email standardizes an email address.
func (c *Client) Email(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindEmail, source)
}

// Birthdate standardizes a date of birth.
func (c *Client) Birthdate(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindBirthdate, source)
}

// Vehicle standardizes a vehicle make and model.
func (c *Client) Vehicle(ctx context.Context, source string) (Result, error) {
	return c.Clean(ctx, KindVehicle, source)
}
