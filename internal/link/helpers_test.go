// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"context"
	"sync/atomic"

	"github.com/pdiddy/graphavalanche/internal/openalex"
)

// fakeSource serves works from maps and fails selected calls by call index.
type fakeSource struct {
	byDOI map[string]openalex.Work
	byID  map[string]openalex.Work

	failDOI map[int]error
	failID  map[int]error

	doiCalls [][]string
	idCalls  [][]string
	perPage  []int
}

func (f *fakeSource) WorksByDOI(_ context.Context, dois []string, perPage int) ([]openalex.Work, error) {
	call := len(f.doiCalls)
	f.doiCalls = append(f.doiCalls, append([]string(nil), dois...))
	f.perPage = append(f.perPage, perPage)
	if err := f.failDOI[call]; err != nil {
		return nil, err
	}
	var out []openalex.Work
	for _, d := range dois {
		if w, ok := f.byDOI[d]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeSource) WorksByID(_ context.Context, ids []string, perPage int) ([]openalex.Work, error) {
	call := len(f.idCalls)
	f.idCalls = append(f.idCalls, append([]string(nil), ids...))
	f.perPage = append(f.perPage, perPage)
	if err := f.failID[call]; err != nil {
		return nil, err
	}
	var out []openalex.Work
	for _, id := range ids {
		if w, ok := f.byID[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// countingPacer records how often it was waited on.
type countingPacer struct{ waits atomic.Int32 }

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits.Add(1)
	return ctx.Err()
}

func work(id, doi string, refs ...string) openalex.Work {
	return openalex.Work{ID: id, DOI: doi, ReferencedWorks: refs}
}
