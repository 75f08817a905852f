package playerstats

import "context"

// Repository persists season stat lines.
type Repository interface {
	GetByPlayer(ctx context.Context, playerID string) (SeasonStats, bool, error)
	List(ctx context.Context) ([]SeasonStats, error)
	Upsert(ctx context.Context, stats SeasonStats) error
	// Reset clears all season lines ahead of a full recalculation.
	Reset(ctx context.Context) error
}
