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

package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/TakaiSaisei/dadata/internal/tracing"
	"github.com/TakaiSaisei/dadata/pkg/config"
	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
	"github.com/TakaiSaisei/dadata/pkg/metrics"
	"github.com/TakaiSaisei/dadata/pkg/redact"
)

const instrumentationName = "github.com/TakaiSaisei/dadata/pkg/httpclient"

// Outbound header names.
const (
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderAuth        = redact.HeaderAuthorization
	HeaderSecret      = redact.HeaderSecret

	contentTypeJSON = "application/json"
)

// Client submits requests to one DaData API host. It is safe for
// concurrent use; all calls share one connection pool.
type Client struct {
	cfg     *config.Config
	baseURL *url.URL
	host    string

	http    *http.Client
	retry   RetryPolicy
	limiter *rate.Limiter
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// New creates a Client for the API rooted at baseURL. The configuration is
// validated first and shared by reference, so later Set* calls on it take
// effect on the next request.
func New(cfg *config.Config, baseURL string, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &dderrors.ConfigError{Key: "base_url", Reason: "must be an absolute URL", Cause: err}
	}

	c := &Client{
		cfg:     cfg,
		baseURL: u,
		host:    u.Host,
		retry:   DefaultRetryPolicy(),
		tracer:  otel.GetTracerProvider().Tracer(instrumentationName),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	snap := cfg.Snapshot()

	var base http.RoundTripper
	hc := &http.Client{}
	if c.http != nil {
		*hc = *c.http
		base = c.http.Transport
	} else {
		base = newPooledTransport(snap.PoolSize, snap.PoolTimeout)
	}
	// Deadlines are per attempt, set on the request context.
	hc.Timeout = 0
	hc.Transport = newInstrumentedTransport(base, snap.UserAgent, c.host, c.metrics)
	c.http = hc

	if c.limiter == nil && snap.RequestsPerSecond > 0 {
		burst := int(math.Max(1, math.Ceil(snap.RequestsPerSecond)))
		c.limiter = rate.NewLimiter(rate.Limit(snap.RequestsPerSecond), burst)
	}

	return c, nil
}

// Config returns the shared configuration.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Metrics returns the collector, or nil.
func (c *Client) Metrics() *metrics.Collector {
	return c.metrics
}

// Fail logs a failed endpoint operation and returns err unchanged so that
// callers can still match on its type.
func (c *Client) Fail(ctx context.Context, operation string, err error) error {
	if err == nil {
		return nil
	}
	c.cfg.Logger().ErrorContext(ctx, "dadata operation failed",
		"operation", operation,
		"error", redact.SanitizeMessage(err.Error()),
	)
	return err
}

// Submit sends payload to path and returns the decoded JSON body: nil for an
// empty body, the raw text for a non-JSON body.
//
// GET sends payload as query parameters; other methods send it as a JSON
// body. An empty method means POST. timeout bounds each attempt; zero means
// the configured default.
//
// Failures are *errors.APIError for non-2xx responses and
// *errors.ConnectionError once transport retries are exhausted.
func (c *Client) Submit(ctx context.Context, path string, payload any, method string, timeout time.Duration) (any, error) {
	res, err := c.do(ctx, path, payload, method, timeout)
	if err != nil {
		return nil, err
	}
	return res.decode()
}

// SubmitInto is Submit decoding the JSON body into out. An empty body
// leaves out untouched.
func (c *Client) SubmitInto(ctx context.Context, path string, payload any, method string, timeout time.Duration, out any) error {
	res, err := c.do(ctx, path, payload, method, timeout)
	if err != nil {
		return err
	}
	if res.empty() {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, payload any, method string, timeout time.Duration) (*response, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodPost
	}
	if timeout <= 0 {
		timeout = c.cfg.Timeout()
	}

	target, body, err := c.prepare(path, method, payload)
	if err != nil {
		return nil, err
	}

	logger := c.cfg.Logger()
	headers := c.headers()
	safeHeaders := redact.SanitizeHeaders(headers)

	requestID := tracing.FromContext(ctx)
	ctx = tracing.ToContext(ctx, requestID)

	ctx, span := c.tracer.Start(ctx, "dadata "+method+" "+target.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", sanitizeURL(target)),
			attribute.String("server.address", c.host),
			attribute.String("dadata.request_id", requestID.String()),
		),
	)
	defer span.End()

	logArgs := []any{"method", method, "path", path}
	if repr := payloadRepr(method, target, body); repr != "" {
		logArgs = append(logArgs, "payload", repr)
	}
	logArgs = append(logArgs, "headers", safeHeaders, "request_id", requestID.String())

	res, err := c.withRetry(ctx, func(ctx context.Context, attempt int) (*response, error) {
		span.AddEvent("attempt", trace.WithAttributes(attribute.Int("attempt", attempt)))
		logger.DebugContext(ctx, "dadata request", append(logArgs[:len(logArgs):len(logArgs)], "attempt", attempt)...)
		return c.attempt(ctx, method, target.String(), body, headers, timeout)
	})
	if err != nil {
		connErr := dderrors.ClassifyTransport(err)
		logger.ErrorContext(ctx, "dadata request failed",
			"method", method,
			"path", path,
			"error", redact.SanitizeMessage(err.Error()),
			"headers", safeHeaders,
			"request_id", requestID.String(),
		)
		c.metrics.IncError(connErr.ErrorType())
		span.SetStatus(codes.Error, connErr.Message)
		return nil, connErr
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.status))

	if res.status < 200 || res.status > 299 {
		apiErr := dderrors.Classify(res.status, res.parsed())
		logger.ErrorContext(ctx, "dadata request rejected",
			"method", method,
			"path", path,
			"status", res.status,
			"error", redact.SanitizeMessage(apiErr.Error()),
			"headers", safeHeaders,
			"request_id", requestID.String(),
		)
		c.metrics.IncError(apiErr.ErrorType())
		span.SetStatus(codes.Error, apiErr.Message)
		return nil, apiErr
	}

	return res, nil
}

// attempt performs one exchange bounded by timeout, reading the whole body
// inside the deadline.
func (c *Client) attempt(ctx context.Context, method, target string, body []byte, headers map[string]string, timeout time.Duration) (*response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get(HeaderContentType),
		body:        data,
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	start := time.Now()
	err := c.limiter.Wait(ctx)
	c.metrics.ObserveRateLimitWait(time.Since(start))
	return err
}

// headers builds the outbound header set from the current configuration.
func (c *Client) headers() map[string]string {
	h := map[string]string{
		HeaderContentType: contentTypeJSON,
		HeaderAccept:      contentTypeJSON,
		HeaderAuth:        "Token " + c.cfg.APIKey(),
	}
	if c.cfg.HasSecretKey() {
		h[HeaderSecret] = c.cfg.SecretKey()
	}
	return h
}

// prepare resolves path against the base URL and encodes payload.
func (c *Client) prepare(path, method string, payload any) (*url.URL, []byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	target := *c.baseURL
	target.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	target.RawPath = ""
	query := ref.Query()

	if method == http.MethodGet {
		params, err := queryParams(payload)
		if err != nil {
			return nil, nil, err
		}
		for k, vs := range params {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		target.RawQuery = query.Encode()
		return &target, nil, nil
	}

	target.RawQuery = query.Encode()
	if payload == nil {
		return &target, nil, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding payload for %s: %w", path, err)
	}
	return &target, body, nil
}

// queryParams converts a GET payload to query parameters.
func queryParams(payload any) (url.Values, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		v := make(url.Values, len(p))
		for k, s := range p {
			v.Set(k, s)
		}
		return v, nil
	case map[string]any:
		v := make(url.Values, len(p))
		for k, val := range p {
			if val == nil {
				continue
			}
			v.Set(k, fmt.Sprint(val))
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported GET payload type %T", payload)
	}
}

// payloadRepr renders the payload for the debug log, or "" when empty.
// The payload is not a sensitive field and is logged as sent.
func payloadRepr(method string, target *url.URL, body []byte) string {
	if method == http.MethodGet {
		return target.RawQuery
	}
	switch s := string(bytes.TrimSpace(body)); s {
	case "", "null", "{}", "[]":
		return ""
	default:
		return s
	}
}

// response is one completed exchange.
type response struct {
	status      int
	contentType string
	body        []byte
}

func (r *response) empty() bool {
	return len(bytes.TrimSpace(r.body)) == 0
}

func (r *response) isJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.contentType)
	if err != nil {
		return false
	}
	return strings.HasSuffix(mediaType, "/json") || strings.HasSuffix(mediaType, "+json")
}

// decode returns the body as a JSON value, nil when empty, or raw text when
// the response is not JSON.
func (r *response) decode() (any, error) {
	if r.empty() {
		return nil, nil
	}
	if !r.isJSON() {
		return string(r.body), nil
	}
	var v any
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}

// parsed is a best-effort decode for error classification.
func (r *response) parsed() any {
	if r.empty() {
		return nil
	}
	var v any
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil
	}
	return v
}

// CloseIdleConnections closes pooled connections that are not in use.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}
