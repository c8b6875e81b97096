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

package profile

// DailyStats is the number of requests made on one day, per service.
type DailyStats struct {
	Date     string        `json:"date"`
	Services ServiceCounts `json:"services"`
}

// ServiceCounts holds request counts per API.
type ServiceCounts struct {
	Clean       int `json:"clean"`
	Merging     int `json:"merging"`
	Suggestions int `json:"suggestions"`
}

// Versions reports the data release of each service.
type Versions struct {
	Dadata      VersionInfo `json:"dadata"`
	Suggestions VersionInfo `json:"suggestions"`
	Factor      VersionInfo `json:"factor"`
}

// VersionInfo is the release of one service. Resources maps each reference
// dataset to its release date.
type VersionInfo struct {
	Version   string            `json:"version"`
	Resources map[string]string `json:"resources,omitempty"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}
