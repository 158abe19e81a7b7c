// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"github.com/pdiddy/graphavalanche/internal/index"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

// BuildConnections turns reference lists into citing→cited edges between
// members of idx. References that do not resolve, or resolve outside the
// input set, are dropped. Output order follows refs, then each reference
// list. Duplicates are kept.
func BuildConnections(refs *References, resolved map[string]string, idx *index.Index) []types.Connection {
	var conns []types.Connection
	for _, src := range refs.Keys() {
		srcKey, ok := idx.Lookup(src)
		if !ok {
			continue
		}
		ids, _ := refs.Get(src)
		for _, ext := range ids {
			tgt, ok := resolved[ext]
			if !ok {
				continue
			}
			tgtKey, ok := idx.Lookup(tgt)
			if !ok {
				continue
			}
			conns = append(conns, types.Connection{Source: srcKey, Target: tgtKey})
		}
	}
	return conns
}
