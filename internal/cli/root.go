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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/TakaiSaisei/dadata/internal/commands/clean"
	"github.com/TakaiSaisei/dadata/internal/commands/profile"
	"github.com/TakaiSaisei/dadata/internal/commands/shared"
	"github.com/TakaiSaisei/dadata/internal/commands/suggest"
	versioncmd "github.com/TakaiSaisei/dadata/internal/commands/version"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dadata",
		Short: "dadata - command-line client for the DaData API",
		Long: `dadata cleans, autocompletes and looks up Russian addresses, companies,
banks, names and other reference data through the DaData API.

Credentials are read from DADATA_API_KEY and DADATA_SECRET_KEY, a .env file
in the working directory, or the config file
(default: ~/.config/dadata/config.yaml).`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	flags := shared.RegisterFlagPointers()

	cmd.PersistentFlags().BoolVarP(flags.Verbose, "verbose", "v", false, "Log requests at debug level to stderr")
	cmd.PersistentFlags().BoolVar(flags.JSON, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVar(flags.Trace, "trace", false, "Print OpenTelemetry spans to stderr")
	cmd.PersistentFlags().StringVar(flags.Config, "config", "", "Path to config file (default: ~/.config/dadata/config.yaml)")
	cmd.PersistentFlags().StringVar(flags.EnvFile, "env-file", "", "Load variables from this dotenv file instead of ./.env")

	cmd.AddGroup(
		&cobra.Group{ID: "data", Title: "Data Commands:"},
		&cobra.Group{ID: "account", Title: "Account Commands:"},
	)

	for _, sub := range []*cobra.Command{
		clean.NewCommand(),
		suggest.NewSuggestCommand(),
		suggest.NewFindCommand(),
		suggest.NewGeolocateCommand(),
		suggest.NewIPLocateCommand(),
	} {
		sub.GroupID = "data"
		cmd.AddCommand(sub)
	}

	for _, sub := range []*cobra.Command{
		profile.NewBalanceCommand(),
		profile.NewStatsCommand(),
		profile.NewVersionsCommand(),
	} {
		sub.GroupID = "account"
		cmd.AddCommand(sub)
	}

	cmd.AddCommand(versioncmd.NewVersionCommand())

	return cmd
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
