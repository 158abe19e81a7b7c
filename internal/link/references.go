// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

// References maps canonical identifiers to the external identifiers they
// reference. Iteration follows first-insertion order; Set on an existing
// key replaces its list in place.
type References struct {
	order []string
	refs  map[string][]string
}

// NewReferences returns an empty References.
func NewReferences() *References {
	return &References{refs: make(map[string][]string)}
}

// Set stores a copy of externalIDs for canonical, replacing any prior list.
func (r *References) Set(canonical string, externalIDs []string) {
	if _, ok := r.refs[canonical]; !ok {
		r.order = append(r.order, canonical)
	}
	r.refs[canonical] = append([]string{}, externalIDs...)
}

// Get returns the external identifiers recorded for canonical.
func (r *References) Get(canonical string) ([]string, bool) {
	ids, ok := r.refs[canonical]
	return ids, ok
}

// Keys returns the canonical identifiers in insertion order.
func (r *References) Keys() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of canonical identifiers with a reference list.
func (r *References) Len() int { return len(r.order) }

// ExternalIDs returns the deduplicated union of all referenced external
// identifiers, in first-seen order.
func (r *References) ExternalIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range r.order {
		for _, id := range r.refs[k] {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
