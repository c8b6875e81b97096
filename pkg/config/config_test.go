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

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
	"github.com/TakaiSaisei/dadata/pkg/redact"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(Options{APIKey: "key"})

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
	assert.Equal(t, DefaultSuggestionsCount, cfg.SuggestionsCount())
	assert.False(t, cfg.HasSecretKey())
	assert.True(t, redact.IsWrapped(cfg.Logger()))

	snap := cfg.Snapshot()
	assert.Equal(t, DefaultCleanerURL, snap.CleanerURL)
	assert.Equal(t, DefaultSuggestionsURL, snap.SuggestionsURL)
	assert.Equal(t, DefaultProfileURL, snap.ProfileURL)
	assert.Equal(t, DefaultPoolSize, snap.PoolSize)
	assert.Equal(t, DefaultPoolTimeout, snap.PoolTimeout)
	assert.Equal(t, DefaultUserAgent, snap.UserAgent)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantKey string
	}{
		{
			name: "valid",
			opts: Options{APIKey: "key", SecretKey: "secret"},
		},
		{
			name:    "missing api key",
			opts:    Options{},
			wantKey: "api_key",
		},
		{
			name:    "blank api key",
			opts:    Options{APIKey: "   "},
			wantKey: "api_key",
		},
		{
			name:    "negative timeout",
			opts:    Options{APIKey: "key", Timeout: -time.Second},
			wantKey: "timeout",
		},
		{
			name:    "negative suggestions count",
			opts:    Options{APIKey: "key", SuggestionsCount: -1},
			wantKey: "suggestions_count",
		},
		{
			name:    "invalid base url",
			opts:    Options{APIKey: "key", CleanerURL: "not a url"},
			wantKey: "cleaner_url",
		},
		{
			name:    "negative rate",
			opts:    Options{APIKey: "key", RequestsPerSecond: -1},
			wantKey: "requests_per_second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.opts).Validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *dderrors.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.True(t, errors.Is(err, dderrors.ErrInvalidConfig))
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	var cfg *Config
	assert.ErrorIs(t, cfg.Validate(), dderrors.ErrInvalidConfig)
}

func TestSuggestionsCount_Clamp(t *testing.T) {
	cfg := New(Options{APIKey: "key", SuggestionsCount: 25})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.SuggestionsCount())

	require.NoError(t, cfg.SetSuggestionsCount(25))
	assert.Equal(t, 20, cfg.SuggestionsCount())

	for _, bad := range []int{0, -5} {
		err := cfg.SetSuggestionsCount(bad)
		assert.ErrorIs(t, err, dderrors.ErrInvalidConfig, "count %d", bad)
	}
	assert.Equal(t, 20, cfg.SuggestionsCount(), "rejected setter must not change the value")
}

func TestSuggestionsCountCeiling(t *testing.T) {
	cfg := New(Options{APIKey: "key"})

	assert.Equal(t, 10, cfg.SuggestionsCountCeiling(0))
	assert.Equal(t, 5, cfg.SuggestionsCountCeiling(5))
	assert.Equal(t, 10, cfg.SuggestionsCountCeiling(15))

	require.NoError(t, cfg.SetSuggestionsCount(20))
	assert.Equal(t, 20, cfg.SuggestionsCountCeiling(50))
}

func TestSetters(t *testing.T) {
	cfg := New(Options{APIKey: "key"})

	require.NoError(t, cfg.SetAPIKey("other"))
	assert.Equal(t, "other", cfg.APIKey())

	err := cfg.SetAPIKey("")
	assert.ErrorIs(t, err, dderrors.ErrInvalidConfig)
	assert.Equal(t, "other", cfg.APIKey())

	require.NoError(t, cfg.SetSecretKey("secret"))
	assert.True(t, cfg.HasSecretKey())

	require.NoError(t, cfg.SetTimeout(10*time.Second))
	assert.Equal(t, 10*time.Second, cfg.Timeout())

	assert.Error(t, cfg.SetTimeout(0))
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}

func TestSetLogger_Redacts(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := New(Options{APIKey: "key"})
	require.NoError(t, cfg.SetLogger(slog.New(slog.NewTextHandler(buf, nil))))

	cfg.Logger().Info("Authorization: Token plain-key")
	assert.NotContains(t, buf.String(), "plain-key")
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := New(Options{APIKey: "key"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = cfg.SetSuggestionsCount(n%20 + 1)
		}(i)
		go func() {
			defer wg.Done()
			_ = cfg.SuggestionsCountCeiling(7)
			_ = cfg.APIKey()
		}()
	}
	wg.Wait()

	assert.NoError(t, cfg.Validate())
}
