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

// Options are the optional parameters of suggest, findById and
// findAffiliated requests. Zero values are omitted from the request.
type Options struct {
	// Count is the number of suggestions wanted. It is capped by the
	// configured suggestions count and by 20; 0 means the configured count.
	Count int

	// Language is "ru" (default) or "en".
	Language string

	// Filters restrict party and bank suggestions, e.g.
	// {"status": ["ACTIVE"], "type": "LEGAL"}.
	Filters []map[string]any

	// Locations restrict address suggestions, e.g. {"region": "москва"}.
	Locations []map[string]any

	// LocationsBoost ranks matches in these locations first, e.g.
	// {"kladr_id": "77"}.
	LocationsBoost []map[string]any

	// FromBound and ToBound limit the address granularity ("region",
	// "city", "street", "house", ...).
	FromBound string
	ToBound   string

	// Extra holds any other API parameter. It is merged last and overrides
	// the fields above.
	Extra map[string]any
}

func (o *Options) payload(query string, count int) map[string]any {
	p := map[string]any{
		"query": query,
		"count": count,
	}
	if o == nil {
		return p
	}

	if o.Language != "" {
		p["language"] = o.Language
	}
	if len(o.Filters) > 0 {
		p["filters"] = o.Filters
	}
	if len(o.Locations) > 0 {
		p["locations"] = o.Locations
	}
	if len(o.LocationsBoost) > 0 {
		p["locations_boost"] = o.LocationsBoost
	}
	if o.FromBound != "" {
		p["from_bound"] = map[string]string{"value": o.FromBound}
	}
	if o.ToBound != "" {
		p["to_bound"] = map[string]string{"value": o.ToBound}
	}
	for k, v := range o.Extra {
		p[k] = v
	}
	return p
}

func (o *Options) count() int {
	if o == nil {
		return 0
	}
	return o.Count
}

// GeoOptions are the optional parameters of geolocate requests.
type GeoOptions struct {
	// Count is capped like Options.Count.
	Count int

	// RadiusMeters is the search radius. The service default is 100.
	RadiusMeters int

	Language string

	// Extra is merged last.
	Extra map[string]any
}

func (o *GeoOptions) payload(lat, lon float64, count int) map[string]any {
	p := map[string]any{
		"lat":   lat,
		"lon":   lon,
		"count": count,
	}
	if o == nil {
		return p
	}

	if o.RadiusMeters > 0 {
		p["radius_meters"] = o.RadiusMeters
	}
	if o.Language != "" {
		p["language"] = o.Language
	}
	for k, v := range o.Extra {
		p[k] = v
	}
	return p
}

func (o *GeoOptions) count() int {
	if o == nil {
		return 0
	}
	return o.Count
}
