// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"context"

	"github.com/pdiddy/graphavalanche/internal/index"
	"github.com/pdiddy/graphavalanche/internal/openalex"
)

// ResolveExternalIDs translates external identifiers into canonical
// identifiers by querying the service's native id field in batches. Works
// without a DOI are left unresolved. Failure handling matches
// FetchReferences.
func ResolveExternalIDs(ctx context.Context, src WorkSource, externalIDs []string, opts BatchOptions) (map[string]string, []BatchFailure, error) {
	resolved := make(map[string]string)
	query := func(ctx context.Context, batch []string) ([]openalex.Work, error) {
		return src.WorksByID(ctx, batch, opts.Size)
	}
	failures, err := runBatches(ctx, StageResolve, externalIDs, opts, query, func(w openalex.Work) {
		doi := index.Normalize(w.DOI)
		if w.ID == "" || doi == "" {
			return
		}
		resolved[w.ID] = doi
	})
	return resolved, failures, err
}
