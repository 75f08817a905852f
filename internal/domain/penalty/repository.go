package penalty

import "context"

// Repository persists penalty tracking rows.
type Repository interface {
	GetByPlayerAndGame(ctx context.Context, playerID, gameID string) (Tracking, bool, error)
	// ListByPlayer returns tracking rows most recent first.
	ListByPlayer(ctx context.Context, playerID string) ([]Tracking, error)
	Upsert(ctx context.Context, t Tracking) error
}
