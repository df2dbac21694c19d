package app

import "errors"

// Error kinds surfaced to the HTTP layer. Every failure is terminal for the
// request; nothing here is retried.
var (
	// ErrInvalidArgument marks rejected input: empty payloads, non-positive
	// IDs or pagination values, empty deletion reasons.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict marks duplicate ISBN/title on books or duplicate library
	// card numbers on users.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks an ID that does not resolve, including books hidden
	// by the soft-delete filter.
	ErrNotFound = errors.New("not found")
)
