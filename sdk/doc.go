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

// Package sdk is the entry point of the DaData client library.
//
// # Quick Start
//
//	cfg := config.New(config.Options{
//		APIKey:    os.Getenv("DADATA_API_KEY"),
//		SecretKey: os.Getenv("DADATA_SECRET_KEY"),
//		Logger:    slog.Default(),
//	})
//
//	client, err := sdk.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	addr, err := client.Clean().Address(ctx, "мск сухонска 11/-89")
//	suggestions, err := client.Suggest().Suggest(ctx, suggest.ResourceParty, "сбербанк", nil)
//	balance, err := client.Profile().Balance(ctx)
//
// # Errors
//
// Every failure is one of three types from pkg/errors:
//
//   - *errors.ConfigError: the configuration is invalid; nothing was sent.
//   - *errors.APIError: the service rejected the request (non-2xx status).
//     errors.Is matches ErrAuthentication for 401/403 and ErrRateLimit for 429.
//   - *errors.ConnectionError: the service was unreachable after retries.
//
// # Logging
//
// The logger in the configuration is wrapped so that the Authorization,
// X-Secret and API-Key values never reach it, on success or error paths.
//
// # Default Instance
//
// Applications with one account may call Configure once and Default
// afterwards instead of passing a *Client around.
package sdk
