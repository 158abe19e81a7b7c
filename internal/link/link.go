// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package link discovers citation relationships between the papers of an
// input set and assembles them into a directed graph. A run normalizes and
// indexes identifiers, fetches reference lists in batches, resolves the
// referenced works back to DOIs, keeps the edges whose endpoints are both
// in the input set, and builds the graph.
package link

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/graphavalanche/internal/graph"
	"github.com/pdiddy/graphavalanche/internal/index"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

// Linker runs the citation-linking pipeline against one bibliographic
// service. Each call to Link creates an independent Run; nothing is shared
// between runs.
type Linker struct {
	src    WorkSource
	cfg    types.LinkConfig
	logger *slog.Logger

	// newPacer is replaced in tests to observe pacing.
	newPacer func(time.Duration) Pacer
}

// NewLinker validates cfg and returns a Linker. A nil logger discards output.
func NewLinker(src WorkSource, cfg types.LinkConfig, logger *slog.Logger) (*Linker, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, cfg.BatchSize)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Linker{
		src:      src,
		cfg:      cfg,
		logger:   logger,
		newPacer: func(d time.Duration) Pacer { return NewPacer(d) },
	}, nil
}

// Run holds the state accumulated by one pipeline run.
type Run struct {
	ID          string
	Index       *index.Index
	References  *References
	Resolved    map[string]string
	Connections []types.Connection
	Graph       *graph.Graph
	Stats       graph.Stats
	Report      Report
}

// Report summarizes a run, including the diagnostics of degraded batches.
type Report struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	Records     int            `json:"records" yaml:"records"`
	Indexed     int            `json:"indexed" yaml:"indexed"`
	Skipped     int            `json:"skipped" yaml:"skipped"`
	Duplicates  int            `json:"duplicates" yaml:"duplicates"`
	Fetched     int            `json:"fetched" yaml:"fetched"`
	Unmatched   int            `json:"unmatched" yaml:"unmatched"`
	ExternalIDs int            `json:"external_ids" yaml:"external_ids"`
	Resolved    int            `json:"resolved" yaml:"resolved"`
	Connections int            `json:"connections" yaml:"connections"`
	Failures    []BatchFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Elapsed     time.Duration  `json:"elapsed" yaml:"elapsed"`
}

// Degraded reports whether any batch was skipped.
func (r Report) Degraded() bool { return len(r.Failures) > 0 }

// Link runs the full pipeline over records. Service failures degrade the
// result instead of failing it. Link returns an error only when no record
// can be indexed or ctx is cancelled.
func (l *Linker) Link(ctx context.Context, records []types.Record) (*Run, error) {
	start := time.Now()
	run := &Run{ID: uuid.NewString()}
	log := l.logger.With("run", run.ID)

	run.Index = index.Build(records)
	run.Report = Report{
		RunID:      run.ID,
		Records:    len(records),
		Indexed:    run.Index.Len(),
		Skipped:    run.Index.Skipped(),
		Duplicates: run.Index.Duplicates(),
	}
	if run.Index.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	if run.Index.Duplicates() > 0 {
		log.Warn("duplicate identifiers overwritten, later record kept", "count", run.Index.Duplicates())
	}
	log.Info("indexed records", "records", len(records), "indexed", run.Index.Len(), "skipped", run.Index.Skipped())

	opts := BatchOptions{
		Size:   l.cfg.BatchSize,
		Pacer:  l.newPacer(l.cfg.Pace),
		Logger: log,
	}

	refs, failures, err := FetchReferences(ctx, l.src, run.Index.Identifiers(), opts)
	run.Report.Failures = append(run.Report.Failures, failures...)
	if err != nil {
		return nil, fmt.Errorf("fetching references: %w", err)
	}
	run.References = refs
	external := refs.ExternalIDs()
	run.Report.Fetched = refs.Len()
	for _, doi := range refs.Keys() {
		if !run.Index.Contains(doi) {
			run.Report.Unmatched++
		}
	}
	if run.Report.Unmatched > 0 {
		log.Warn("fetched works with a DOI outside the input set", "count", run.Report.Unmatched)
	}
	run.Report.ExternalIDs = len(external)
	log.Info("fetched references", "works", refs.Len(), "external_ids", len(external), "failed_batches", len(failures))

	resolved, failures, err := ResolveExternalIDs(ctx, l.src, external, opts)
	run.Report.Failures = append(run.Report.Failures, failures...)
	if err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}
	run.Resolved = resolved
	run.Report.Resolved = len(resolved)
	log.Info("resolved references", "resolved", len(resolved), "failed_batches", len(failures))

	run.Connections = BuildConnections(refs, resolved, run.Index)
	run.Report.Connections = len(run.Connections)

	run.Graph, run.Stats = graph.Build(records, run.Connections)
	run.Report.Elapsed = time.Since(start)
	log.Info("graph built",
		"connections", len(run.Connections),
		"nodes", run.Stats.Nodes,
		"edges", run.Stats.Edges,
		"density", run.Stats.Density,
		"degraded", run.Report.Degraded())

	return run, nil
}
