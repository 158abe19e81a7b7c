// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"context"

	"github.com/pdiddy/graphavalanche/internal/index"
	"github.com/pdiddy/graphavalanche/internal/openalex"
)

// WorkSource is the bibliographic service queried by the linking stages.
// *openalex.Client implements it.
type WorkSource interface {
	WorksByDOI(ctx context.Context, dois []string, perPage int) ([]openalex.Work, error)
	WorksByID(ctx context.Context, ids []string, perPage int) ([]openalex.Work, error)
}

// FetchReferences looks up each canonical identifier in batches and returns
// the reference list of every work the service returned, keyed by the
// work's normalized DOI. A failed batch is skipped and reported; it is not
// retried. The error is non-nil only for invalid options or cancellation.
func FetchReferences(ctx context.Context, src WorkSource, ids []string, opts BatchOptions) (*References, []BatchFailure, error) {
	refs := NewReferences()
	query := func(ctx context.Context, batch []string) ([]openalex.Work, error) {
		return src.WorksByDOI(ctx, batch, opts.Size)
	}
	failures, err := runBatches(ctx, StageFetch, ids, opts, query, func(w openalex.Work) {
		doi := index.Normalize(w.DOI)
		if doi == "" {
			return
		}
		refs.Set(doi, w.ReferencedWorks)
	})
	return refs, failures, err
}
