// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import "github.com/pdiddy/graphavalanche/pkg/types"

// Index maps canonical identifiers to internal keys for one pipeline run.
// When two records share a canonical identifier the later record wins.
type Index struct {
	byID  map[string]string
	byKey map[string]string
	order []string

	duplicates int
	skipped    int
}

// Build indexes records by canonical identifier. Records missing an
// identifier or key are skipped. Build has no side effects and returns an
// equal Index for equal input.
func Build(records []types.Record) *Index {
	idx := &Index{
		byID:  make(map[string]string, len(records)),
		byKey: make(map[string]string, len(records)),
	}
	for _, r := range records {
		key := r.Key()
		id := Normalize(r.Identifier())
		if key == "" || id == "" {
			idx.skipped++
			continue
		}
		if _, ok := idx.byID[id]; ok {
			idx.duplicates++
		} else {
			idx.order = append(idx.order, id)
		}
		idx.byID[id] = key
		idx.byKey[key] = id
	}
	return idx
}

// Lookup returns the internal key for a canonical identifier.
func (x *Index) Lookup(canonical string) (string, bool) {
	key, ok := x.byID[canonical]
	return key, ok
}

// Contains reports whether canonical belongs to the input set.
func (x *Index) Contains(canonical string) bool {
	_, ok := x.byID[canonical]
	return ok
}

// Identifier returns the canonical identifier recorded for an internal key.
func (x *Index) Identifier(key string) (string, bool) {
	id, ok := x.byKey[key]
	return id, ok
}

// Identifiers returns the indexed canonical identifiers in first-insertion
// order. The slice is a copy.
func (x *Index) Identifiers() []string {
	return append([]string(nil), x.order...)
}

// Len returns the number of canonical identifiers in the index.
func (x *Index) Len() int { return len(x.byID) }

// Duplicates returns how many records overwrote an earlier record with the
// same canonical identifier.
func (x *Index) Duplicates() int { return x.duplicates }

// Skipped returns how many records lacked an identifier or key.
func (x *Index) Skipped() int { return x.skipped }
