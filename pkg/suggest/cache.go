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

package suggest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/TakaiSaisei/dadata/pkg/metrics"
)

// responseCache keeps successful suggestion lists in memory.
type responseCache struct {
	store   *gocache.Cache
	metrics *metrics.Collector
}

func newResponseCache(ttl time.Duration, m *metrics.Collector) *responseCache {
	if ttl <= 0 {
		return nil
	}
	return &responseCache{
		store:   gocache.New(ttl, 2*ttl),
		metrics: m,
	}
}

// cacheKey identifies a request by account, method, path and payload. The
// API key is hashed so entries from one account are never served to
// another and the raw key is not kept. Map keys are marshalled in sorted
// order, so equal payloads give equal keys.
func cacheKey(apiKey, method, path string, payload any) (string, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:8]) + " " + method + " " + path + " " + string(data), true
}

func (c *responseCache) get(key string) ([]Suggestion, bool) {
	if c == nil {
		return nil, false
	}
	if v, found := c.store.Get(key); found {
		c.metrics.CacheHit()
		return cloneSuggestions(v.([]Suggestion)), true
	}
	c.metrics.CacheMiss()
	return nil, false
}

func (c *responseCache) set(key string, value []Suggestion) {
	if c == nil {
		return
	}
	c.store.Set(key, cloneSuggestions(value), gocache.DefaultExpiration)
}

func (c *responseCache) flush() {
	if c == nil {
		return
	}
	c.store.Flush()
}

// cloneSuggestions copies the slice so callers cannot mutate cached entries
// through it. Data maps are shared.
func cloneSuggestions(in []Suggestion) []Suggestion {
	if in == nil {
		return nil
	}
	out := make([]Suggestion, len(in))
	copy(out, in)
	return out
}
