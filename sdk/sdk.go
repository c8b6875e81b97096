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
	"sync"

	"github.com/TakaiSaisei/dadata/pkg/clean"
	"github.com/TakaiSaisei/dadata/pkg/config"
	"github.com/TakaiSaisei/dadata/pkg/httpclient"
	"github.com/TakaiSaisei/dadata/pkg/profile"
	"github.com/TakaiSaisei/dadata/pkg/suggest"
)

// Client bundles the endpoint clients built from one configuration.
// Each API host gets its own connection pool; all three share the
// configuration by reference.
type Client struct {
	cfg *config.Config

	pipelines []*httpclient.Client

	clean   *clean.Client
	suggest *suggest.Client
	profile *profile.Client

	closeMu sync.Mutex
	closed  bool
}

// New validates cfg and creates the endpoint clients. An invalid
// configuration fails with *errors.ConfigError before any network call.
//
// Example:
//
//	cfg := config.New(config.Options{
//		APIKey:    os.Getenv("DADATA_API_KEY"),
//		SecretKey: os.Getenv("DADATA_SECRET_KEY"),
//	})
//	client, err := sdk.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	result, err := client.Clean().Address(ctx, "мск сухонска 11/-89")
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	httpOpts := s.httpOptions()

	snap := cfg.Snapshot()
	c := &Client{cfg: cfg}

	newPipeline := func(baseURL string) (*httpclient.Client, error) {
		hc, err := httpclient.New(cfg, baseURL, httpOpts...)
		if err != nil {
			return nil, err
		}
		c.pipelines = append(c.pipelines, hc)
		return hc, nil
	}

	cleaner, err := newPipeline(snap.CleanerURL)
	if err != nil {
		return nil, fmt.Errorf("create cleaner client: %w", err)
	}
	suggestions, err := newPipeline(snap.SuggestionsURL)
	if err != nil {
		return nil, fmt.Errorf("create suggestions client: %w", err)
	}
	prof, err := newPipeline(snap.ProfileURL)
	if err != nil {
		return nil, fmt.Errorf("create profile client: %w", err)
	}

	c.clean = clean.NewWithClient(cleaner)
	c.suggest = suggest.NewWithClient(suggestions)
	c.profile = profile.NewWithClient(prof)

	return c, nil
}

// Config returns the shared configuration.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Clean returns the cleaning API client.
func (c *Client) Clean() *clean.Client {
	return c.clean
}

// Suggest returns the suggestions API client.
func (c *Client) Suggest() *suggest.Client {
	return c.suggest
}

// Profile returns the profile API client.
func (c *Client) Profile() *profile.Client {
	return c.profile
}

// Close releases idle pooled connections. In-flight calls are not
// interrupted. Close is safe to call multiple times.
func (c *Client) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return nil
	}
	for _, hc := range c.pipelines {
		hc.CloseIdleConnections()
	}
	c.suggest.FlushCache()
	c.closed = true
	return nil
}
