// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// cslIssuedField holds the publication date in CSL-JSON and CSL-YAML
// bibliographies exported by reference managers.
const cslIssuedField = "issued"

// CSLDate is a CSL date in date-parts form: [[year, month, day]] with month
// and day optional.
type CSLDate struct {
	DateParts [][]int `json:"date-parts" yaml:"date-parts"`
}

// String renders the first date-parts entry as YYYY, YYYY-MM, or
// YYYY-MM-DD. It returns "" when no year is present.
func (d CSLDate) String() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 || d.DateParts[0][0] == 0 {
		return ""
	}
	p := d.DateParts[0]
	switch {
	case len(p) >= 3 && p[1] > 0 && p[2] > 0:
		return fmt.Sprintf("%04d-%02d-%02d", p[0], p[1], p[2])
	case len(p) >= 2 && p[1] > 0:
		return fmt.Sprintf("%04d-%02d", p[0], p[1])
	default:
		return fmt.Sprintf("%04d", p[0])
	}
}

// parseCSLDate reads a decoded issued value. Both the date-parts form and
// the literal form ({"literal": "2020"}) are accepted.
func parseCSLDate(v any) (CSLDate, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return CSLDate{}, false
	}
	if lit, ok := m["literal"].(string); ok {
		if y, err := strconv.Atoi(strings.TrimSpace(lit)); err == nil {
			return CSLDate{DateParts: [][]int{{y}}}, true
		}
	}
	outer, ok := m["date-parts"].([]any)
	if !ok || len(outer) == 0 {
		return CSLDate{}, false
	}
	inner, ok := outer[0].([]any)
	if !ok {
		return CSLDate{}, false
	}
	parts := make([]int, 0, len(inner))
	for _, x := range inner {
		n, ok := toInt(x)
		if !ok {
			break
		}
		parts = append(parts, n)
	}
	if len(parts) == 0 {
		return CSLDate{}, false
	}
	return CSLDate{DateParts: [][]int{parts}}, true
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		return n, err == nil
	default:
		return 0, false
	}
}
