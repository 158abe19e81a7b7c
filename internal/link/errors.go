// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import "errors"

// Errors returned to the caller. Service failures never surface here; they
// are reported as BatchFailures.
var (
	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrEmptyIndex indicates that no input record had both an identifier
	// and an internal key.
	ErrEmptyIndex = errors.New("no indexable records: each record needs a DOI and an ID")

	// ErrNoSource indicates that no bibliographic service was configured.
	ErrNoSource = errors.New("no bibliographic service configured")
)
