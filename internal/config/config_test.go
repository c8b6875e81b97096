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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
)

// isolate clears every variable Load reads and points XDG at an empty
// directory, so the developer's own config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()

	for _, key := range []string{
		EnvAPIKey, EnvSecretKey, EnvTimeout, EnvSuggestionsCount,
		EnvRequestsPerSec, EnvCacheTTL, EnvConfig,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_FromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
api_key: file-key
secret_key: file-secret
timeout: 5s
suggestions_count: 7
requests_per_second: 2.5
suggestions_cache_ttl: 1m
cleaner_url: https://cleaner.example.com/api/v1
`)

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", opts.APIKey)
	assert.Equal(t, "file-secret", opts.SecretKey)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, 7, opts.SuggestionsCount)
	assert.Equal(t, 2.5, opts.RequestsPerSecond)
	assert.Equal(t, time.Minute, opts.SuggestionsCacheTTL)
	assert.Equal(t, "https://cleaner.example.com/api/v1", opts.CleanerURL)
}

func TestLoad_FileDurationsInSeconds(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "seconds.yaml")
	writeFile(t, path, "timeout: 3\npool_timeout: 2.5\nsuggestions_cache_ttl: 1500ms\n")

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, opts.Timeout)
	assert.Equal(t, 2500*time.Millisecond, opts.PoolTimeout)
	assert.Equal(t, 1500*time.Millisecond, opts.SuggestionsCacheTTL)
}

func TestLoad_FileRejectsNonPositive(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{"zero suggestions count", "suggestions_count: 0\n", "suggestions_count"},
		{"negative suggestions count", "suggestions_count: -1\n", "suggestions_count"},
		{"zero timeout", "timeout: 0\n", "timeout"},
		{"zero pool timeout", "pool_timeout: 0s\n", "pool_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var cfgErr *dderrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.ErrorIs(t, err, dderrors.ErrInvalidConfig)
		})
	}
}

func TestLoad_FileBadDuration(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "timeout: soon\n")

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *dderrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "config_file", cfgErr.Key)
}

func TestLoad_DefaultPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "dadata", "config.yaml"), "api_key: xdg-key\n")

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "xdg-key", opts.APIKey)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	isolate(t)

	opts, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, opts.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)

	var cfgErr *dderrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "config_file", cfgErr.Key)
	assert.ErrorIs(t, err, dderrors.ErrInvalidConfig)
}

func TestLoad_UnknownField(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "api_kee: typo\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config_file")
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "empty.yaml")
	writeFile(t, path, "")

	_, err := Load(path)
	require.NoError(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "api_key: file-key\ntimeout: 5s\n")

	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvTimeout, "1.5")
	t.Setenv(EnvSuggestionsCount, "15")
	t.Setenv(EnvRequestsPerSec, "4")
	t.Setenv(EnvCacheTTL, "30s")

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", opts.APIKey)
	assert.Equal(t, 1500*time.Millisecond, opts.Timeout)
	assert.Equal(t, 15, opts.SuggestionsCount)
	assert.Equal(t, 4.0, opts.RequestsPerSecond)
	assert.Equal(t, 30*time.Second, opts.SuggestionsCacheTTL)
}

func TestLoad_ConfigEnvVar(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "from-env.yaml")
	writeFile(t, path, "api_key: pointed-key\n")
	t.Setenv(EnvConfig, path)

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pointed-key", opts.APIKey)
}

func TestLoad_InvalidEnvValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantKey string
	}{
		{"timeout", EnvTimeout, "soon", "timeout"},
		{"suggestions count", EnvSuggestionsCount, "ten", "suggestions_count"},
		{"requests per second", EnvRequestsPerSec, "fast", "requests_per_second"},
		{"cache ttl", EnvCacheTTL, "forever", "suggestions_cache_ttl"},
		{"zero timeout", EnvTimeout, "0", "timeout"},
		{"negative timeout", EnvTimeout, "-2s", "timeout"},
		{"zero suggestions count", EnvSuggestionsCount, "0", "suggestions_count"},
		{"negative suggestions count", EnvSuggestionsCount, "-3", "suggestions_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			require.Error(t, err)

			var cfgErr *dderrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "DADATA_API_KEY=dotenv-key\nDADATA_SECRET_KEY=dotenv-secret\n")
	t.Cleanup(func() {
		os.Unsetenv(EnvAPIKey)
		os.Unsetenv(EnvSecretKey)
	})

	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", opts.APIKey)
	assert.Equal(t, "dotenv-secret", opts.SecretKey)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.env")
	writeFile(t, path, "DADATA_API_KEY=dotenv-key\n")
	t.Setenv(EnvAPIKey, "real-key")

	opts, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "real-key", opts.APIKey)
}

func TestLoad_MissingExplicitDotEnv(t *testing.T) {
	dir := isolate(t)

	_, err := Load("", filepath.Join(dir, "missing.env"))
	require.Error(t, err)

	var cfgErr *dderrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "dotenv", cfgErr.Key)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "dadata", "config.yaml"), path)
}
