package scoring

import "errors"

var (
	// ErrLedgerFinalized rejects any mutation after Finalize.
	ErrLedgerFinalized = errors.New("game ledger is finalized")

	// ErrInvalidEvent rejects malformed scoresheet entries.
	ErrInvalidEvent = errors.New("invalid game event")

	// ErrEventNotFound is returned for edits or deletes of unknown ids.
	ErrEventNotFound = errors.New("game event not found")

	// ErrPlayerEjected rejects penalties for a player already ejected,
	// before any escalation rule is consulted.
	ErrPlayerEjected = errors.New("player already ejected from game")

	// ErrGoalLimitReached flags a goal past the per-player cap. The
	// ledger itself never refuses the append; callers that block on the
	// advisory ruling wrap this sentinel.
	ErrGoalLimitReached = errors.New("player goal limit reached")
)
