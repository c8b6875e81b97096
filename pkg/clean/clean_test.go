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

package clean

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TakaiSaisei/dadata/pkg/config"
	dderrors "github.com/TakaiSaisei/dadata/pkg/errors"
)

func newTestClient(t *testing.T, serverURL, secret string) (*Client, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	cfg := config.New(config.Options{
		APIKey:     "clean-api-key",
		SecretKey:  secret,
		CleanerURL: serverURL,
		Logger:     slog.New(slog.NewJSONHandler(logs, nil)),
	})

	client, err := New(cfg)
	require.NoError(t, err)
	return client, logs
}

func TestClean_ReturnsFirstElement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clean/address", r.URL.Path)
		assert.Equal(t, "clean-secret", r.Header.Get("X-Secret"))

		var body []string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"мск сухонска 11/-89"}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"source":"мск сухонска 11/-89","result":"г Москва, ул Сухонская, д 11, кв 89","qc":0}]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "clean-secret")

	result, err := client.Address(context.Background(), "мск сухонска 11/-89")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "г Москва, ул Сухонская, д 11, кв 89", result.String("result"))
	assert.Equal(t, float64(0), result["qc"])
}

func TestClean_EmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "clean-secret")

	result, err := client.Phone(context.Background(), "+7 000")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestClean_ConvenienceMethodPaths(t *testing.T) {
	var lastPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{}]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "clean-secret")
	ctx := context.Background()

	calls := map[string]func(context.Context, string) (Result, error){
		"/clean/address":   client.Address,
		"/clean/phone":     client.Phone,
		"/clean/passport":  client.Passport,
		"/clean/name":      client.Name,
		"/clean/email":     client.Email,
		"/clean/birthdate": client.Birthdate,
		"/clean/vehicle":   client.Vehicle,
	}

	for path, call := range calls {
		_, err := call(ctx, "x")
		require.NoError(t, err, path)
		assert.Equal(t, path, lastPath.Load())
	}
}

func TestCleanMany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"result":"a"},{"result":"b"}]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "clean-secret")

	results, err := client.CleanMany(context.Background(), KindName, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[1].String("result"))
}

func TestClean_RequiresSecretKey(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client, logs := newTestClient(t, server.URL, "")

	_, err := client.Address(context.Background(), "москва")
	require.Error(t, err)

	var cfgErr *dderrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "secret_key", cfgErr.Key)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "no request without a secret key")
	assert.Contains(t, logs.String(), `"operation":"clean_address"`)
}

func TestClean_PropagatesAPIErrorUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, logs := newTestClient(t, server.URL, "clean-secret")

	_, err := client.Clean(context.Background(), KindEmail, "someone@example")
	require.Error(t, err)

	var apiErr *dderrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.ErrorIs(t, err, dderrors.ErrAuthentication)

	out := logs.String()
	assert.Contains(t, out, `"msg":"dadata operation failed"`)
	assert.Contains(t, out, `"operation":"clean_email"`)
	assert.NotContains(t, out, "clean-api-key")
	assert.NotContains(t, out, "clean-secret")
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"address", KindAddress, false},
		{" Phone ", KindPhone, false},
		{"VEHICLE", KindVehicle, false},
		{"planet", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	assert.Len(t, Kinds(), 7)
	assert.Equal(t, KindAddress, Kinds()[0])
}
