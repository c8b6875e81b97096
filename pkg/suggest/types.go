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

package suggest

// Resource is a suggestions dictionary. It is the last path segment of the
// suggest, findById and geolocate endpoints.
type Resource string

const (
	ResourceAddress     Resource = "address"
	ResourceParty       Resource = "party"
	ResourceBank        Resource = "bank"
	ResourceFIO         Resource = "fio"
	ResourceEmail       Resource = "email"
	ResourceFMSUnit     Resource = "fms_unit"
	ResourceFNSUnit     Resource = "fns_unit"
	ResourcePostalUnit  Resource = "postal_unit"
	ResourceCountry     Resource = "country"
	ResourceCurrency    Resource = "currency"
	ResourceOKVED2      Resource = "okved2"
	ResourceOKPD2       Resource = "okpd2"
	ResourceMetro       Resource = "metro"
	ResourceCarBrand    Resource = "car_brand"
	ResourceRegionCourt Resource = "region_court"
)

// Suggestion is one entry of a suggestions response.
type Suggestion struct {
	Value             string         `json:"value"`
	UnrestrictedValue string         `json:"unrestricted_value"`
	Data              map[string]any `json:"data"`
}

// DataString returns a Data field as a string, or "".
func (s Suggestion) DataString(field string) string {
	v, _ := s.Data[field].(string)
	return v
}

type suggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type locationResponse struct {
	Location *Suggestion `json:"location"`
}
