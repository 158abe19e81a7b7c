// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index canonicalizes citation identifiers and maps them to the
// internal keys of an input paper set.
package index

import (
	"strings"

	"github.com/pdiddy/graphavalanche/pkg/types"
)

// doiPrefixes are stripped from the front of an identifier, checked in
// order. Stripping repeats until no prefix matches so that stacked forms
// such as "https://doi.org/doi:10.1/x" still reach a fixed point.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://dx.doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"doi:",
}

// Normalize returns the canonical comparison key for a raw citation
// identifier: lower-cased, trimmed, with a known DOI URL or scheme prefix
// removed. Anything else is only lower-cased and trimmed. Normalize is
// idempotent and never fails; empty input yields "".
func Normalize(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	for stripped := true; stripped; {
		stripped = false
		for _, p := range doiPrefixes {
			if strings.HasPrefix(d, p) {
				d = strings.TrimSpace(d[len(p):])
				stripped = true
				break
			}
		}
	}
	return d
}

// NormalizeValue normalizes a decoded field value of any type. A nil value
// normalizes to "".
func NormalizeValue(v any) string {
	return Normalize(types.Stringify(v))
}
