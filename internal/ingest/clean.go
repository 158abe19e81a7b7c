// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"

	"github.com/pdiddy/graphavalanche/internal/index"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

// aliases maps capitalized column names to the lower-case names the
// pipeline prefers.
var aliases = map[string]string{
	"DOI":   "doi",
	"ID":    "id",
	"Title": "title",
	"Label": "label",
	"Year":  "year",
	"Date":  "date",
}

// Clean returns standardized copies of records. Capitalized fields are
// copied to their lower-case names unless those are already set, the doi
// field is normalized, and a CSL issued date fills in a missing date. The
// input is not modified.
func Clean(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		c := make(types.Record, len(r))
		for k, v := range r {
			c[k] = v
		}
		for from, to := range aliases {
			v, ok := c[from]
			if !ok {
				continue
			}
			if existing := types.Stringify(c[to]); existing == "" {
				c[to] = v
			}
		}
		if doi := index.NormalizeValue(c["doi"]); doi != "" {
			c["doi"] = doi
		}
		if c.Date() == "" {
			if d, ok := parseCSLDate(c[cslIssuedField]); ok && d.String() != "" {
				c["date"] = d.String()
			}
		}
		out[i] = c
	}
	return out
}

// Problem describes a record that cannot take part in linking.
type Problem struct {
	Row     int      `json:"row" yaml:"row"`
	Key     string   `json:"key,omitempty" yaml:"key,omitempty"`
	Missing []string `json:"missing" yaml:"missing"`
}

func (p Problem) String() string {
	if p.Key != "" {
		return fmt.Sprintf("row %d (%s): missing %v", p.Row, p.Key, p.Missing)
	}
	return fmt.Sprintf("row %d: missing %v", p.Row, p.Missing)
}

// Validate reports every record lacking a DOI or an ID. Rows are numbered
// from 1. An empty result means every record can be indexed.
func Validate(records []types.Record) []Problem {
	var problems []Problem
	for i, r := range records {
		var missing []string
		if index.Normalize(r.Identifier()) == "" {
			missing = append(missing, "doi")
		}
		if r.Key() == "" {
			missing = append(missing, "id")
		}
		if len(missing) > 0 {
			problems = append(problems, Problem{Row: i + 1, Key: r.Key(), Missing: missing})
		}
	}
	return problems
}
