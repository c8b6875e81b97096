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

// Package suggest implements the suggestion commands: suggest, find,
// geolocate and iplocate.
package suggest

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TakaiSaisei/dadata/internal/commands/shared"
	ddsuggest "github.com/TakaiSaisei/dadata/pkg/suggest"
)

type queryFlags struct {
	count     int
	language  string
	filters   map[string]string
	locations map[string]string
	fromBound string
	toBound   string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "Number of suggestions (default from config, max 20)")
	cmd.Flags().StringVar(&f.language, "language", "", "Response language: ru or en")
	cmd.Flags().StringToStringVar(&f.filters, "filter", nil, "Filter as key=value (party, bank)")
	cmd.Flags().StringToStringVar(&f.locations, "location", nil, "Restrict addresses to a location as key=value")
	cmd.Flags().StringVar(&f.fromBound, "from-bound", "", "Smallest address part to suggest (region, city, street, house)")
	cmd.Flags().StringVar(&f.toBound, "to-bound", "", "Largest address part to suggest")
}

func (f *queryFlags) options() *ddsuggest.Options {
	opts := &ddsuggest.Options{
		Count:     f.count,
		Language:  f.language,
		FromBound: f.fromBound,
		ToBound:   f.toBound,
	}
	if len(f.filters) > 0 {
		opts.Filters = []map[string]any{toAny(f.filters)}
	}
	if len(f.locations) > 0 {
		opts.Locations = []map[string]any{toAny(f.locations)}
	}
	return opts
}

func toAny(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// NewSuggestCommand creates the suggest command
func NewSuggestCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "suggest <resource> <query>",
		Short: "Autocomplete addresses, companies, banks, names and more",
		Long: `Query a DaData suggestions dictionary. Without --json, one suggestion
value is printed per line.

Resources: address, party, bank, fio, email, fms_unit, fns_unit, postal_unit,
country, currency, okved2, okpd2, metro, car_brand, region_court.`,
		Example: `  dadata suggest address "москва хабар" --count 5
  dadata suggest party сбербанк --filter status=ACTIVE --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			results, err := session.Client.Suggest().Suggest(cmd.Context(), ddsuggest.Resource(args[0]), args[1], flags.options())
			if err != nil {
				return shared.NewCallError("suggest "+args[0], err)
			}
			return printSuggestions(cmd, results)
		},
	}

	flags.register(cmd)
	return cmd
}

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	var (
		flags      queryFlags
		affiliated bool
	)

	cmd := &cobra.Command{
		Use:   "find <resource> <id>",
		Short: "Find a record by its identifier (INN, OGRN, BIC, FIAS id)",
		Long: `Look up a record by identifier. With --affiliated the resource must be
"party" and the id is a person's INN; companies where that person is a
founder or director are returned.`,
		Example: `  dadata find party 7707083893
  dadata find party 773006366201 --affiliated`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource := ddsuggest.Resource(args[0])
			if affiliated && resource != ddsuggest.ResourceParty {
				return shared.NewUsageError(fmt.Sprintf("--affiliated requires resource %q, got %q", ddsuggest.ResourceParty, resource), nil)
			}

			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			var results []ddsuggest.Suggestion
			if affiliated {
				results, err = session.Client.Suggest().FindAffiliated(cmd.Context(), args[1], flags.options())
			} else {
				results, err = session.Client.Suggest().FindByID(cmd.Context(), resource, args[1], flags.options())
			}
			if err != nil {
				return shared.NewCallError("find "+args[0], err)
			}
			return printSuggestions(cmd, results)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&affiliated, "affiliated", false, "Find companies affiliated with a person's INN")
	return cmd
}

// NewGeolocateCommand creates the geolocate command
func NewGeolocateCommand() *cobra.Command {
	var (
		resource string
		opts     ddsuggest.GeoOptions
	)

	cmd := &cobra.Command{
		Use:     "geolocate <lat> <lon>",
		Short:   "Find addresses near coordinates",
		Example: `  dadata geolocate 55.878 37.653 --radius 50`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return shared.NewUsageError("invalid latitude", err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return shared.NewUsageError("invalid longitude", err)
			}

			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			results, err := session.Client.Suggest().Geolocate(cmd.Context(), ddsuggest.Resource(resource), lat, lon, &opts)
			if err != nil {
				return shared.NewCallError("geolocate", err)
			}
			return printSuggestions(cmd, results)
		},
	}

	cmd.Flags().StringVar(&resource, "resource", string(ddsuggest.ResourceAddress), "Resource to search (address or postal_unit)")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "Number of results (default from config, max 20)")
	cmd.Flags().IntVar(&opts.RadiusMeters, "radius", 0, "Search radius in meters")
	cmd.Flags().StringVar(&opts.Language, "language", "", "Response language: ru or en")
	return cmd
}

// NewIPLocateCommand creates the iplocate command
func NewIPLocateCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:     "iplocate <ip>",
		Short:   "Find the city of an IP address",
		Example: `  dadata iplocate 46.226.227.20`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shared.NewSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			location, err := session.Client.Suggest().IPLocate(cmd.Context(), args[0], &ddsuggest.Options{Language: language})
			if err != nil {
				return shared.NewCallError("iplocate", err)
			}

			if shared.GetJSON() {
				return shared.EmitJSONIndent(cmd.OutOrStdout(), location)
			}
			if location == nil {
				cmd.PrintErrln("No location found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), location.Value)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Response language: ru or en")
	return cmd
}

func printSuggestions(cmd *cobra.Command, results []ddsuggest.Suggestion) error {
	if shared.GetJSON() {
		if results == nil {
			results = []ddsuggest.Suggestion{}
		}
		return shared.EmitJSONIndent(cmd.OutOrStdout(), results)
	}
	for _, s := range results {
		fmt.Fprintln(cmd.OutOrStdout(), s.Value)
	}
	return nil
}
