// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrMissingSignature is returned when a hash key is configured and a
	// push arrives without a HashSHA256 header.
	ErrMissingSignature = errors.New("missing `HashSHA256` header")

	// ErrSignatureMismatch is returned when the HashSHA256 header does not
	// match the request body.
	ErrSignatureMismatch = errors.New("integrity check failed")

	// ErrInvalidCursor is returned for a lastPulledAt that is not a
	// non-negative epoch millisecond value.
	ErrInvalidCursor = errors.New("invalid `lastPulledAt` query parameter")

	// ErrInvalidJSON wraps body decoding failures.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
