package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingAPIKey indicates no embedding/chat credential is configured.
	// Adapters must return this before attempting any network call, so
	// callers can degrade instead of discovering it as a transport failure.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrInvalidChunking indicates chunk size/overlap parameters that would
	// break window termination (size < 1 or overlap outside [0, size)).
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrEmptyDocument indicates a document yielded no usable text.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
