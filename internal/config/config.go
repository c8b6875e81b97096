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

// Package config loads client settings for the dadata command from a
// YAML file, a .env file and the environment, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	dadataconfig "github.com/TakaiSaisei/dadata/pkg/config"
	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
)

// Environment variables read by Load.
const (
	EnvAPIKey           = "DADATA_API_KEY"
	EnvSecretKey        = "DADATA_SECRET_KEY"
	EnvTimeout          = "DADATA_TIMEOUT"
	EnvSuggestionsCount = "DADATA_SUGGESTIONS_COUNT"
	EnvRequestsPerSec   = "DADATA_RPS"
	EnvCacheTTL         = "DADATA_CACHE_TTL"
	EnvConfig           = "DADATA_CONFIG"
)

// Load builds client options. Sources are applied in order, later ones
// winning:
//
//  1. the YAML file at configPath, or DADATA_CONFIG, or the XDG default
//     path if it exists
//  2. variables from dotenv files (only those not already set)
//  3. DADATA_* environment variables
//
// The result is not validated; the client constructors do that.
func Load(configPath string, dotenvFiles ...string) (dadataconfig.Options, error) {
	var opts dadataconfig.Options

	path, explicit, err := resolvePath(configPath)
	if err != nil {
		return opts, err
	}
	if path != "" {
		if err := loadFromFile(path, &opts); err != nil {
			var cfgErr *dderrors.ConfigError
			if errors.As(err, &cfgErr) {
				return opts, err
			}
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return opts, &dderrors.ConfigError{
					Key:    "config_file",
					Reason: fmt.Sprintf("failed to load from %s", path),
					Cause:  err,
				}
			}
		}
	}

	if err := loadDotEnv(dotenvFiles); err != nil {
		return opts, &dderrors.ConfigError{
			Key:    "dotenv",
			Reason: "failed to load .env file",
			Cause:  err,
		}
	}

	if err := loadFromEnv(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// resolvePath reports the config file to read and whether the caller
// asked for it explicitly.
func resolvePath(configPath string) (string, bool, error) {
	if configPath == "" {
		configPath = os.Getenv(EnvConfig)
	}
	if configPath != "" {
		expanded, err := expandHome(configPath)
		return expanded, true, err
	}

	path, err := ConfigPath()
	if err != nil {
		// No home directory: run on environment only.
		return "", false, nil
	}
	return path, false, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// fileOptions is the YAML form of dadataconfig.Options. Durations accept
// bare seconds as well as Go duration strings. Pointer fields record keys
// that were set, so an explicit zero is told apart from an absent key.
type fileOptions struct {
	APIKey              string   `yaml:"api_key"`
	SecretKey           string   `yaml:"secret_key"`
	Timeout             *seconds `yaml:"timeout"`
	SuggestionsCount    *int     `yaml:"suggestions_count"`
	CleanerURL          string   `yaml:"cleaner_url"`
	SuggestionsURL      string   `yaml:"suggestions_url"`
	ProfileURL          string   `yaml:"profile_url"`
	PoolSize            int      `yaml:"pool_size"`
	PoolTimeout         *seconds `yaml:"pool_timeout"`
	RequestsPerSecond   float64  `yaml:"requests_per_second"`
	SuggestionsCacheTTL *seconds `yaml:"suggestions_cache_ttl"`
	UserAgent           string   `yaml:"user_agent"`
}

// seconds decodes "3", "2.5" or "1500ms".
type seconds time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a duration", node.Line)
	}
	d, err := parseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = seconds(d)
	return nil
}

func loadFromFile(path string, opts *dadataconfig.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file fileOptions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		// Empty file.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	opts.APIKey = file.APIKey
	opts.SecretKey = file.SecretKey
	opts.CleanerURL = file.CleanerURL
	opts.SuggestionsURL = file.SuggestionsURL
	opts.ProfileURL = file.ProfileURL
	opts.PoolSize = file.PoolSize
	opts.RequestsPerSecond = file.RequestsPerSecond
	opts.UserAgent = file.UserAgent

	if file.Timeout != nil {
		if *file.Timeout <= 0 {
			return nonPositive("timeout", path)
		}
		opts.Timeout = time.Duration(*file.Timeout)
	}
	if file.SuggestionsCount != nil {
		if *file.SuggestionsCount <= 0 {
			return nonPositive("suggestions_count", path)
		}
		opts.SuggestionsCount = *file.SuggestionsCount
	}
	if file.PoolTimeout != nil {
		if *file.PoolTimeout <= 0 {
			return nonPositive("pool_timeout", path)
		}
		opts.PoolTimeout = time.Duration(*file.PoolTimeout)
	}
	if file.SuggestionsCacheTTL != nil {
		opts.SuggestionsCacheTTL = time.Duration(*file.SuggestionsCacheTTL)
	}
	return nil
}

// loadDotEnv reads dotenv files without overriding variables that are
// already set. A missing ".env" in the working directory is not an error;
// a missing explicitly named file is.
func loadDotEnv(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		return godotenv.Load(".env")
	}
	return godotenv.Load(files...)
}

func loadFromEnv(opts *dadataconfig.Options) error {
	if val := os.Getenv(EnvAPIKey); val != "" {
		opts.APIKey = val
	}
	if val := os.Getenv(EnvSecretKey); val != "" {
		opts.SecretKey = val
	}

	if val := os.Getenv(EnvTimeout); val != "" {
		d, err := parseDuration(val)
		if err != nil {
			return envError("timeout", EnvTimeout, err)
		}
		if d <= 0 {
			return nonPositive("timeout", EnvTimeout)
		}
		opts.Timeout = d
	}

	if val := os.Getenv(EnvSuggestionsCount); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return envError("suggestions_count", EnvSuggestionsCount, err)
		}
		if n <= 0 {
			return nonPositive("suggestions_count", EnvSuggestionsCount)
		}
		opts.SuggestionsCount = n
	}

	if val := os.Getenv(EnvRequestsPerSec); val != "" {
		rps, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return envError("requests_per_second", EnvRequestsPerSec, err)
		}
		opts.RequestsPerSecond = rps
	}

	if val := os.Getenv(EnvCacheTTL); val != "" {
		d, err := parseDuration(val)
		if err != nil {
			return envError("suggestions_cache_ttl", EnvCacheTTL, err)
		}
		opts.SuggestionsCacheTTL = d
	}

	return nil
}

// parseDuration accepts Go durations ("1.5s") and bare seconds ("3").
func parseDuration(val string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(val, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(val)
}

func envError(key, variable string, cause error) error {
	return &dderrors.ConfigError{
		Key:    key,
		Reason: fmt.Sprintf("invalid value in %s", variable),
		Cause:  cause,
	}
}

// nonPositive rejects an explicit zero or negative value. The library treats
// a zero option as "use the default", so it has to be caught here.
func nonPositive(key, source string) error {
	return &dderrors.ConfigError{
		Key:    key,
		Reason: fmt.Sprintf("must be greater than 0 in %s", source),
	}
}
