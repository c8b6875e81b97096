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

// Package redact strips credentials from text and headers before they reach
// a log sink or an error message.
package redact

import (
	"regexp"
	"sort"
	"strings"
)

// Filtered replaces every sensitive value.
const Filtered = "[FILTERED]"

// Sensitive header and field names. Matching is case-sensitive, except for
// keys of header maps logged through Handler, which also match canonically.
const (
	HeaderAuthorization = "Authorization"
	HeaderSecret        = "X-Secret"
	HeaderAPIKey        = "API-Key"
)

var sensitiveNames = [...]string{HeaderAuthorization, HeaderSecret, HeaderAPIKey}

// Pattern pairs a sensitive name with the expression matching
// "<Name>: <value>" occurrences in free text.
type Pattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// patterns is built once; the set never changes at runtime.
var patterns = buildPatterns()

func buildPatterns() []Pattern {
	out := make([]Pattern, 0, len(sensitiveNames))
	for _, name := range sensitiveNames {
		out = append(out, Pattern{
			Name: name,
			// value runs up to the next comma or newline; a value that
			// starts on the following line is taken from there
			Regex:       regexp.MustCompile(regexp.QuoteMeta(name) + `[ \t]*:[ \t]*(?:\r?\n[ \t]*)?[^,\r\n]*`),
			Replacement: name + ": " + Filtered,
		})
	}
	return out
}

// SensitiveNames returns a copy of the sensitive name set.
func SensitiveNames() []string {
	names := make([]string, len(sensitiveNames))
	copy(names, sensitiveNames[:])
	return names
}

// IsSensitive reports whether name is one of the sensitive header names.
func IsSensitive(name string) bool {
	for _, s := range sensitiveNames {
		if s == name {
			return true
		}
	}
	return false
}

// SanitizeHeaders renders headers as "k: v, k: v" with the value of every
// sensitive key replaced by Filtered. Keys are sorted so the output is stable.
// A nil or empty map yields "".
func SanitizeHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := headers[k]
		if IsSensitive(k) {
			v = Filtered
		}
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, ", ")
}

// SanitizeMessage rewrites every "<Name>: <value>" occurrence of a sensitive
// name in text to "<Name>: [FILTERED]". Applying it twice gives the same
// result as applying it once.
func SanitizeMessage(text string) string {
	if text == "" {
		return ""
	}
	result := text
	for _, p := range patterns {
		if !strings.Contains(result, p.Name) {
			continue
		}
		result = p.Regex.ReplaceAllLiteralString(result, p.Replacement)
	}
	return result
}

// SanitizeValue is SanitizeMessage for values of unknown type.
// Anything that is not a string yields "".
func SanitizeValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return SanitizeMessage(s)
}
