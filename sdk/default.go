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
	"sync"

	"github.com/TakaiSaisei/dadata/pkg/config"
)

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// Configure builds a Client and installs it as the default instance,
// closing the previous one. On error the previous default stays in place.
//
// The default instance is a convenience for applications with a single
// account; libraries should pass a *Client explicitly.
func Configure(cfg *config.Config, opts ...Option) error {
	c, err := New(cfg, opts...)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	prev := defaultClient
	defaultClient = c
	defaultMu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Default returns the instance installed by Configure.
func Default() (*Client, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	if defaultClient == nil {
		return nil, ErrNotConfigured
	}
	return defaultClient, nil
}

// resetDefault clears the default instance. Used by tests.
func resetDefault() {
	defaultMu.Lock()
	prev := defaultClient
	defaultClient = nil
	defaultMu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
}
