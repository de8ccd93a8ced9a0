/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "errors"

// Error definitions
var (
	// ErrMissingArtifact indicates a required capture or snapshot file is absent.
	ErrMissingArtifact = errors.New("required artifact does not exist")
	// ErrInsufficientEvidence indicates decoding succeeded but no data matched the invariant.
	ErrInsufficientEvidence = errors.New("no matching evidence to evaluate")
	// ErrMalformed indicates inconsistent framing within an otherwise readable buffer.
	ErrMalformed = errors.New("malformed encoding")
)
