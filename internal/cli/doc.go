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

/*
Package cli provides the root command of the dadata tool.

# Command Tree

	dadata
	├── clean       Standardize addresses, phones, names and other values
	├── suggest     Autocomplete from a suggestions dictionary
	├── find        Find a record by identifier
	├── geolocate   Find addresses near coordinates
	├── iplocate    Find the city of an IP address
	├── balance     Account balance
	├── stats       Daily request counts
	├── versions    Service and reference data releases
	└── version     Show version

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

	--verbose, -v    Log requests at debug level
	--json           Output in JSON format
	--trace          Print spans to stderr
	--config         Path to config file
	--env-file       Dotenv file to load

# Exit Codes

	0  success
	1  failure (including invalid arguments)
	2  configuration error
	3  the API rejected the request
	4  the API could not be reached
*/
package cli
