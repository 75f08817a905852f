package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrRemoteSave reports a persistence or publish failure after an
	// event was already applied to the in-memory ledger. The local state
	// is deliberately kept; the scorekeeper retries the save, not the
	// goal.
	ErrRemoteSave = errors.New("remote save failed")
)
