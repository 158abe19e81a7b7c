// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/graphavalanche/internal/httputil"
)

// Stage names a batched linking stage in diagnostics.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageResolve Stage = "resolve"
)

// Pacer spaces outbound batch queries.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer waits a full interval each time Wait is called, measured
// from the call, so a slow batch is still followed by the whole pause. The
// limiter caps the overall rate when several callers share one pacer.
type IntervalPacer struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// NewPacer returns a pacer that pauses for interval after every batch. A
// non-positive interval disables pacing.
func NewPacer(interval time.Duration) *IntervalPacer {
	p := &IntervalPacer{interval: interval, limiter: rate.NewLimiter(rate.Inf, 1)}
	if interval > 0 {
		p.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return p
}

// Wait blocks for the pacing interval or until ctx is done.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	return p.limiter.Wait(ctx)
}

// BatchOptions controls how identifiers are grouped and paced.
type BatchOptions struct {
	// Size is the maximum number of identifiers per query; also the page size.
	Size int

	// Pacer is waited on after every batch, whatever its outcome. Nil
	// disables pacing.
	Pacer Pacer

	// Logger receives per-batch debug and warning lines. Nil discards.
	Logger *slog.Logger
}

func (o BatchOptions) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, o.Size)
	}
	return nil
}

func (o BatchOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o BatchOptions) pace(ctx context.Context) error {
	if o.Pacer == nil {
		return nil
	}
	if err := o.Pacer.Wait(ctx); err != nil {
		return fmt.Errorf("pacing: %w", err)
	}
	return nil
}

// Partition splits ids into consecutive batches of at most size elements.
// Every id appears in exactly one batch, in input order. It returns nil for
// empty input or a non-positive size.
func Partition(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end:end])
	}
	return batches
}

// BatchFailure records a skipped batch. The pipeline continues past it.
type BatchFailure struct {
	Stage      Stage                `json:"stage" yaml:"stage"`
	Batch      int                  `json:"batch" yaml:"batch"`
	Size       int                  `json:"size" yaml:"size"`
	Kind       httputil.FailureKind `json:"kind" yaml:"kind"`
	StatusCode int                  `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Message    string               `json:"message" yaml:"message"`
}

func newFailure(stage Stage, batch int, ids []string, err error) BatchFailure {
	f := BatchFailure{
		Stage:   stage,
		Batch:   batch,
		Size:    len(ids),
		Kind:    httputil.KindOf(err),
		Message: err.Error(),
	}
	if f.Kind == "" {
		f.Kind = httputil.FailureTransport
	}
	var re *httputil.RequestError
	if errors.As(err, &re) {
		f.StatusCode = re.StatusCode
	}
	return f
}

// runBatches queries each batch in order and hands successful results to
// accept. Failed batches become BatchFailures. Context cancellation stops
// the loop and is returned.
func runBatches[T any](
	ctx context.Context,
	stage Stage,
	ids []string,
	opts BatchOptions,
	query func(context.Context, []string) ([]T, error),
	accept func(T),
) ([]BatchFailure, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.logger().With("stage", string(stage))

	var failures []BatchFailure
	batches := Partition(ids, opts.Size)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return failures, err
		}
		results, err := query(ctx, batch)
		switch {
		case err != nil && ctx.Err() != nil:
			return failures, ctx.Err()
		case err != nil:
			f := newFailure(stage, i, batch, err)
			failures = append(failures, f)
			log.Warn("batch skipped", "batch", i+1, "of", len(batches), "size", len(batch), "kind", f.Kind, "error", err)
		default:
			for _, r := range results {
				accept(r)
			}
			log.Debug("batch done", "batch", i+1, "of", len(batches), "size", len(batch), "results", len(results))
		}
		if err := opts.pace(ctx); err != nil {
			return failures, err
		}
	}
	return failures, nil
}
