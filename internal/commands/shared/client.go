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

package shared

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	internalconfig "github.com/TakaiSaisei/dadata/internal/config"
	"github.com/TakaiSaisei/dadata/internal/log"
	"github.com/TakaiSaisei/dadata/internal/tracing"
	"github.com/TakaiSaisei/dadata/internal/tracing/export"
	"github.com/TakaiSaisei/dadata/pkg/config"
	"github.com/TakaiSaisei/dadata/sdk"
)

// Session is a configured client for one command invocation.
type Session struct {
	Client *sdk.Client

	provider *tracing.Provider
}

// Close releases the client and flushes spans when tracing is on.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.Client != nil {
		_ = s.Client.Close()
	}
	if s.provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.provider.Shutdown(ctx)
	}
}

// NewSession loads configuration from the global flags and environment
// and builds a client. Logs and spans go to the command's stderr.
func NewSession(cmd *cobra.Command) (*Session, error) {
	var dotenv []string
	if f := GetEnvFile(); f != "" {
		dotenv = append(dotenv, f)
	}

	opts, err := internalconfig.Load(GetConfigPath(), dotenv...)
	if err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	opts.Logger = newLogger(stderr)

	cfg := config.New(opts)

	var sdkOpts []sdk.Option
	session := &Session{}

	if GetTrace() {
		provider, err := newTraceProvider(stderr)
		if err != nil {
			return nil, err
		}
		session.provider = provider
		sdkOpts = append(sdkOpts, sdk.WithTracerProvider(provider.TracerProvider()))
	}

	client, err := sdk.New(cfg, sdkOpts...)
	if err != nil {
		session.Close()
		return nil, err
	}
	session.Client = client

	return session, nil
}

func newLogger(w io.Writer) *slog.Logger {
	logCfg := log.FromEnv()
	logCfg.Output = w
	if GetVerbose() {
		logCfg.Level = "debug"
	}
	return log.New(logCfg)
}

func newTraceProvider(w io.Writer) (*tracing.Provider, error) {
	exporter, err := export.NewConsoleExporter(export.ConsoleConfig{
		Writer:      w,
		PrettyPrint: isTerminal(w),
	})
	if err != nil {
		return nil, err
	}

	v, _, _ := GetVersion()
	provider, err := tracing.NewProvider("dadata", v, exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to start tracing: %w", err)
	}
	return provider, nil
}
