// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// FailureKind classifies why an outbound request produced no usable result.
type FailureKind string

const (
	FailureTimeout   FailureKind = "timeout"
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailureMalformed FailureKind = "malformed"
	FailureCanceled  FailureKind = "canceled"
)

// RequestError is returned by Get and by decoders built on it. Callers
// inspect Kind with errors.As or KindOf.
type RequestError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case FailureStatus:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	default:
		if e.Err == nil {
			return string(e.Kind)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// KindOf returns the failure kind carried by err, or "" when err is nil or
// not a RequestError.
func KindOf(err error) FailureKind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// Malformed wraps a decoding error as a RequestError.
func Malformed(err error) error {
	return &RequestError{Kind: FailureMalformed, Err: err}
}

// Get executes req once with no retry. A response with a status other than
// 200 is drained, closed, and reported as FailureStatus. Transport errors
// are split into timeouts, cancellations, and other transport failures.
// On success the caller owns the response body.
func Get(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, classify(ctx, err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &RequestError{Kind: FailureStatus, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func classify(ctx context.Context, err error) *RequestError {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &RequestError{Kind: FailureCanceled, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &RequestError{Kind: FailureTimeout, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &RequestError{Kind: FailureTimeout, Err: err}
	}
	return &RequestError{Kind: FailureTransport, Err: err}
}
