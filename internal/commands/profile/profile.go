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

// Package profile implements the account commands: balance, stats and
// versions.
package profile

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/TakaiSaisei/dadata/internal/commands/shared"
	ddprofile "github.com/TakaiSaisei/dadata/pkg/profile"
)

// NewBalanceCommand creates the balance command
func NewBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance in rubles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			balance, err := session.Client.Profile().Balance(cmd.Context())
			if err != nil {
				return shared.NewCallError("balance", err)
			}

			if shared.GetJSON() {
				return shared.EmitJSONIndent(cmd.OutOrStdout(), map[string]float64{"balance": balance})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %.2f\n", shared.NewStyles(out).RenderLabel("Balance:"), balance)
			return nil
		},
	}
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "Show the number of requests made on a day",
		Example: `  dadata stats --date 2024-03-15`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var day time.Time
			if date != "" {
				parsed, err := time.Parse(ddprofile.DateLayout, date)
				if err != nil {
					return shared.NewUsageError("invalid --date, expected YYYY-MM-DD", err)
				}
				day = parsed
			}

			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			stats, err := session.Client.Profile().DailyStats(cmd.Context(), day)
			if err != nil {
				return shared.NewCallError("stats", err)
			}

			if shared.GetJSON() {
				return shared.EmitJSONIndent(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			styles := shared.NewStyles(out)

			// Header lines carry no tab, so they do not widen the columns.
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, styles.RenderHeader("Requests on "+stats.Date))
			for _, row := range []struct {
				name  string
				count int
			}{
				{"clean", stats.Services.Clean},
				{"suggestions", stats.Services.Suggestions},
				{"merging", stats.Services.Merging},
			} {
				fmt.Fprintf(w, "  %s\t%d\n", styles.RenderLabel(row.name), row.count)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day in YYYY-MM-DD format (default: today)")
	return cmd
}

// NewVersionsCommand creates the versions command
func NewVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Show DaData service releases and reference data dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			versions, err := session.Client.Profile().Versions(cmd.Context())
			if err != nil {
				return shared.NewCallError("versions", err)
			}

			if shared.GetJSON() {
				return shared.EmitJSONIndent(cmd.OutOrStdout(), versions)
			}

			out := cmd.OutOrStdout()
			styles := shared.NewStyles(out)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, svc := range []struct {
				name string
				info ddprofile.VersionInfo
			}{
				{"dadata", versions.Dadata},
				{"suggestions", versions.Suggestions},
				{"factor", versions.Factor},
			} {
				fmt.Fprintln(w, styles.RenderHeader(svc.name)+" "+svc.info.Version)
				for _, name := range sortedKeys(svc.info.Resources) {
					fmt.Fprintf(w, "  %s\t%s\n", styles.RenderLabel(name), svc.info.Resources[name])
				}
			}
			return w.Flush()
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
