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

// Package suggest wraps the DaData suggestions API: autocomplete, lookup by
// identifier, affiliated companies, reverse geocoding and IP geolocation.
//
// Results can be cached in memory by setting SuggestionsCacheTTL in the
// configuration. Only successful responses are cached.
package suggest

import (
	"context"
	"net/http"

	"github.com/TakaiSaisei/dadata/pkg/config"
	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
	"github.com/TakaiSaisei/dadata/pkg/httpclient"
)

// Client calls the suggestions API.
type Client struct {
	http  *httpclient.Client
	cfg   *config.Config
	cache *responseCache
}

// New creates a Client for the configured suggestions URL.
func New(cfg *config.Config, opts ...httpclient.Option) (*Client, error) {
	if cfg == nil {
		return nil, &dderrors.ConfigError{Reason: "config is nil"}
	}
	hc, err := httpclient.New(cfg, cfg.Snapshot().SuggestionsURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(hc), nil
}

// NewWithClient wraps an existing pipeline client.
func NewWithClient(hc *httpclient.Client) *Client {
	cfg := hc.Config()
	return &Client{
		http:  hc,
		cfg:   cfg,
		cache: newResponseCache(cfg.Snapshot().SuggestionsCacheTTL, hc.Metrics()),
	}
}

// Suggest returns autocomplete suggestions for query.
func (c *Client) Suggest(ctx context.Context, resource Resource, query string, opts *Options) ([]Suggestion, error) {
	payload := opts.payload(query, c.cfg.SuggestionsCountCeiling(opts.count()))
	return c.list(ctx, "suggest_"+string(resource), "suggest/"+string(resource), payload)
}

// FindByID looks up records by identifier: INN or OGRN for party, BIC for
// bank, FIAS or KLADR code for address.
func (c *Client) FindByID(ctx context.Context, resource Resource, query string, opts *Options) ([]Suggestion, error) {
	payload := opts.payload(query, c.cfg.SuggestionsCountCeiling(opts.count()))
	return c.list(ctx, "find_by_id_"+string(resource), "findById/"+string(resource), payload)
}

// FindAffiliated returns companies affiliated with the given INN.
func (c *Client) FindAffiliated(ctx context.Context, query string, opts *Options) ([]Suggestion, error) {
	payload := opts.payload(query, c.cfg.SuggestionsCountCeiling(opts.count()))
	return c.list(ctx, "find_affiliated", "findAffiliated/"+string(ResourceParty), payload)
}

// Geolocate returns the objects nearest to the given coordinates.
func (c *Client) Geolocate(ctx context.Context, resource Resource, lat, lon float64, opts *GeoOptions) ([]Suggestion, error) {
	payload := opts.payload(lat, lon, c.cfg.SuggestionsCountCeiling(opts.count()))
	return c.list(ctx, "geolocate_"+string(resource), "geolocate/"+string(resource), payload)
}

// IPLocate returns the city of an IP address, or nil when unknown. Only
// opts.Language and opts.Extra are used.
func (c *Client) IPLocate(ctx context.Context, ip string, opts *Options) (*Suggestion, error) {
	params := map[string]any{"ip": ip}
	if opts != nil {
		if opts.Language != "" {
			params["language"] = opts.Language
		}
		for k, v := range opts.Extra {
			params[k] = v
		}
	}

	var resp locationResponse
	if err := c.http.SubmitInto(ctx, "iplocate/address", params, http.MethodGet, 0, &resp); err != nil {
		return nil, c.http.Fail(ctx, "iplocate", err)
	}
	return resp.Location, nil
}

// FlushCache drops every cached response.
func (c *Client) FlushCache() {
	c.cache.flush()
}

func (c *Client) list(ctx context.Context, op, path string, payload map[string]any) ([]Suggestion, error) {
	var key string
	cacheable := false
	if c.cache != nil {
		key, cacheable = cacheKey(c.cfg.APIKey(), http.MethodPost, path, payload)
	}
	if cacheable {
		if cached, ok := c.cache.get(key); ok {
			return cached, nil
		}
	}

	var resp suggestionsResponse
	if err := c.http.SubmitInto(ctx, path, payload, http.MethodPost, 0, &resp); err != nil {
		return nil, c.http.Fail(ctx, op, err)
	}

	if cacheable {
		c.cache.set(key, resp.Suggestions)
	}
	return resp.Suggestions, nil
}
