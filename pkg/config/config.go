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

// Package config holds the credentials and tuning shared by every DaData
// endpoint client.
//
// A Config is built once by the caller and passed by reference into each
// client. It is safe for concurrent use; the only way to change it after
// construction is through the Set* methods, which validate the new value
// before applying it.
package config

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
	"github.com/TakaiSaisei/dadata/pkg/redact"
)

// Defaults.
const (
	DefaultTimeout          = 3 * time.Second
	DefaultSuggestionsCount = 10
	MaxSuggestionsCount     = 20
	DefaultPoolSize         = 10
	DefaultPoolTimeout      = 5 * time.Second
	DefaultUserAgent        = "dadata-go/1.0"

	DefaultCleanerURL     = "https://cleaner.dadata.ru/api/v1"
	DefaultSuggestionsURL = "https://suggestions.dadata.ru/suggestions/api/4_1/rs"
	DefaultProfileURL     = "https://dadata.ru/api/v2"
)

// Options are the caller-supplied settings. Zero values take the defaults
// above; a zero SuggestionsCount means "use the default", not "zero".
type Options struct {
	// APIKey is sent as "Authorization: Token <key>". Required.
	APIKey string `yaml:"api_key" validate:"notblank"`

	// SecretKey is sent as "X-Secret" when set. Required by the cleaning API.
	SecretKey string `yaml:"secret_key"`

	// Timeout bounds each request attempt. Default: 3s. Must be > 0.
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`

	// SuggestionsCount is the default and upper bound for suggestion counts.
	// Values above 20 are clamped to 20. Default: 10.
	SuggestionsCount int `yaml:"suggestions_count" validate:"min=1,max=20"`

	// Logger receives debug and error entries. It is always wrapped so that
	// every message is redacted. Default: discard.
	Logger *slog.Logger `yaml:"-" validate:"-"`

	// Base URLs of the three API hosts.
	CleanerURL     string `yaml:"cleaner_url" validate:"required,url"`
	SuggestionsURL string `yaml:"suggestions_url" validate:"required,url"`
	ProfileURL     string `yaml:"profile_url" validate:"required,url"`

	// PoolSize caps connections per host in the shared pool. Default: 10.
	PoolSize int `yaml:"pool_size" validate:"gte=1"`

	// PoolTimeout bounds establishing a pooled connection (dial and TLS
	// handshake). Default: 5s.
	PoolTimeout time.Duration `yaml:"pool_timeout" validate:"gt=0"`

	// RequestsPerSecond enables a client-side rate limiter. 0 disables it.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`

	// SuggestionsCacheTTL enables the suggestions response cache. 0 disables it.
	SuggestionsCacheTTL time.Duration `yaml:"suggestions_cache_ttl" validate:"gte=0"`

	// UserAgent is sent with every request. Default: dadata-go/1.0.
	UserAgent string `yaml:"user_agent"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// Report yaml names so errors match the config file keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Config is the validated, shared configuration.
type Config struct {
	mu   sync.RWMutex
	opts Options
}

// New applies defaults and clamping to opts. It does not validate; call
// Validate, or let the client constructors do it.
func New(opts Options) *Config {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SuggestionsCount == 0 {
		opts.SuggestionsCount = DefaultSuggestionsCount
	}
	if opts.SuggestionsCount > MaxSuggestionsCount {
		opts.SuggestionsCount = MaxSuggestionsCount
	}
	if opts.CleanerURL == "" {
		opts.CleanerURL = DefaultCleanerURL
	}
	if opts.SuggestionsURL == "" {
		opts.SuggestionsURL = DefaultSuggestionsURL
	}
	if opts.ProfileURL == "" {
		opts.ProfileURL = DefaultProfileURL
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.PoolTimeout == 0 {
		opts.PoolTimeout = DefaultPoolTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	opts.Logger = redact.WrapLogger(opts.Logger)

	return &Config{opts: opts}
}

// Validate checks the configuration. It returns a *errors.ConfigError
// naming the first invalid field.
func (c *Config) Validate() error {
	if c == nil {
		return &dderrors.ConfigError{Reason: "config is nil"}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return validateOptions(&c.opts)
}

func validateOptions(opts *Options) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return &dderrors.ConfigError{Reason: "invalid configuration", Cause: err}
	}

	fe := fieldErrs[0]
	return &dderrors.ConfigError{
		Key:    fe.Field(),
		Reason: reasonFor(fe),
		Cause:  err,
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "must not be blank"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// Snapshot returns a copy of the current options.
func (c *Config) Snapshot() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// APIKey returns the API key.
func (c *Config) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.APIKey
}

// SecretKey returns the secret key, or "" when none is configured.
func (c *Config) SecretKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.SecretKey
}

// HasSecretKey reports whether a secret key is configured.
func (c *Config) HasSecretKey() bool {
	return strings.TrimSpace(c.SecretKey()) != ""
}

// Timeout returns the default per-attempt timeout.
func (c *Config) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.Timeout
}

// SuggestionsCount returns the configured suggestions count.
func (c *Config) SuggestionsCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.SuggestionsCount
}

// SuggestionsCountCeiling returns the count to send for a request asking
// for requested suggestions: min(requested, configured, 20). A requested
// value below 1 means "use the configured count".
func (c *Config) SuggestionsCountCeiling(requested int) int {
	configured := c.SuggestionsCount()
	if requested < 1 {
		return min(configured, MaxSuggestionsCount)
	}
	return min(requested, configured, MaxSuggestionsCount)
}

// Logger returns the redacting logger.
func (c *Config) Logger() *slog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.Logger
}

// SetAPIKey replaces the API key.
func (c *Config) SetAPIKey(key string) error {
	return c.update(func(o *Options) { o.APIKey = key })
}

// SetSecretKey replaces the secret key. An empty key removes it.
func (c *Config) SetSecretKey(key string) error {
	return c.update(func(o *Options) { o.SecretKey = key })
}

// SetTimeout replaces the default timeout.
func (c *Config) SetTimeout(timeout time.Duration) error {
	return c.update(func(o *Options) { o.Timeout = timeout })
}

// SetSuggestionsCount replaces the suggestions count. Values above 20 are
// clamped; values below 1 are rejected.
func (c *Config) SetSuggestionsCount(count int) error {
	if count > MaxSuggestionsCount {
		count = MaxSuggestionsCount
	}
	return c.update(func(o *Options) { o.SuggestionsCount = count })
}

// SetLogger replaces the logger. The new logger is wrapped to redact.
func (c *Config) SetLogger(logger *slog.Logger) error {
	wrapped := redact.WrapLogger(logger)
	return c.update(func(o *Options) { o.Logger = wrapped })
}

// update applies fn to a copy, validates it, and commits only on success.
func (c *Config) update(fn func(*Options)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.opts
	fn(&next)
	if err := validateOptions(&next); err != nil {
		return err
	}
	c.opts = next
	return nil
}
