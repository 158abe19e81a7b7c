// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the graphavalanche pipeline:
// input paper records, citation connections, and stage configuration.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Field-name variants checked, in order, when reading a Record. Spreadsheet
// exports use either casing, so both are accepted.
var (
	IdentifierFields = []string{"doi", "DOI"}
	KeyFields        = []string{"id", "ID"}
	LabelFields      = []string{"label", "Label", "title", "Title"}
	DateFields       = []string{"date", "Date", "year", "Year"}
)

// Record is one input paper as produced by the ingestion layer. It is a
// string-keyed mapping owned by the caller; the pipeline only reads it.
type Record map[string]any

// Identifier returns the raw citation identifier (usually a DOI), or "" when
// the record has none.
func (r Record) Identifier() string { return r.first(IdentifierFields) }

// Key returns the caller-assigned internal key, or "" when absent.
func (r Record) Key() string { return r.first(KeyFields) }

// Label returns the display label, falling back to the title.
func (r Record) Label() string { return r.first(LabelFields) }

// Date returns the publication date, falling back to the year.
func (r Record) Date() string { return r.first(DateFields) }

// first returns the first non-empty value among fields, rendered as a string.
func (r Record) first(fields []string) string {
	for _, f := range fields {
		v, ok := r[f]
		if !ok {
			continue
		}
		if s := strings.TrimSpace(Stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

// Stringify renders a decoded field value as text. Integral floats (JSON
// numbers) within int64 range print without a fractional part; larger
// ones print in full decimal form. Dates print as YYYY-MM-DD.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if !math.IsNaN(x) && !math.IsInf(x, 0) && x == math.Trunc(x) && math.Abs(x) < 1<<63 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return Stringify(float64(x))
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

// Connection is a directed citation between two input papers: Source cites
// Target. Both fields hold internal keys.
type Connection struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}
