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
	"fmt"
	"sort"
	"strings"
)

// Kind is the type of value to standardize. It is the last path segment of
// the cleaning endpoint.
type Kind string

const (
	KindAddress   Kind = "address"
	KindPhone     Kind = "phone"
	KindPassport  Kind = "passport"
	KindName      Kind = "name"
	KindEmail     Kind = "email"
	KindBirthdate Kind = "birthdate"
	KindVehicle   Kind = "vehicle"
)

var kinds = map[Kind]struct{}{
	KindAddress:   {},
	KindPhone:     {},
	KindPassport:  {},
	KindName:      {},
	KindEmail:     {},
	KindBirthdate: {},
	KindVehicle:   {},
}

// Kinds returns every supported kind, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("unknown clean kind %q", s)
	}
	return k, nil
}

// Result is one standardized record. Its fields depend on the Kind; for an
// address they include "result", "postal_code", "geo_lat" and "qc".
type Result map[string]any

// String returns the field as a string, or "" when absent or not a string.
func (r Result) String(field string) string {
	s, _ := r[field].(string)
	return s
}
