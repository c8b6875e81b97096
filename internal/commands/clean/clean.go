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

// Package clean implements the "dadata clean" command.
package clean

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TakaiSaisei/dadata/internal/commands/shared"
	ddclean "github.com/TakaiSaisei/dadata/pkg/clean"
)

// NewCommand creates the clean command
func NewCommand() *cobra.Command {
	kinds := make([]string, 0, len(ddclean.Kinds()))
	for _, k := range ddclean.Kinds() {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:   "clean <kind> <source> [source...]",
		Short: "Standardize addresses, phones, names and other values",
		Long: fmt.Sprintf(`Send values to the DaData cleaning API and print the standardized
records as JSON. Several sources of the same kind are cleaned in one request.

Kinds: %s

The cleaning API requires both DADATA_API_KEY and DADATA_SECRET_KEY.`, strings.Join(kinds, ", ")),
		Example: `  dadata clean address "мск сухонска 11/-89"
  dadata clean phone "raz dva tri" "+7 916 823-3454"`,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: kinds,
		RunE:      runClean,
	}

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	kind, err := ddclean.ParseKind(args[0])
	if err != nil {
		return shared.NewUsageError("invalid kind", err)
	}

	session, err := shared.NewSession(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := cmd.Context()
	sources := args[1:]

	if len(sources) == 1 {
		result, err := session.Client.Clean().Clean(ctx, kind, sources[0])
		if err != nil {
			return shared.NewCallError("clean "+string(kind), err)
		}
		return emit(cmd, result)
	}

	results, err := session.Client.Clean().CleanMany(ctx, kind, sources)
	if err != nil {
		return shared.NewCallError("clean "+string(kind), err)
	}
	return emit(cmd, results)
}

func emit(cmd *cobra.Command, v any) error {
	if shared.GetJSON() {
		return shared.EmitJSONIndent(cmd.OutOrStdout(), v)
	}
	return shared.EmitJSON(cmd.OutOrStdout(), v)
}
