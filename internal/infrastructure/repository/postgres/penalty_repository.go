package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/obhl/rinkside/internal/domain/penalty"
	qb "github.com/obhl/rinkside/internal/platform/querybuilder"
)

type penaltyTrackingTableModel struct {
	ID                int64     `db:"id"`
	PublicID          string    `db:"public_id"`
	PlayerID          string    `db:"player_public_id"`
	GameID            string    `db:"game_public_id"`
	PenaltyCount      int       `db:"penalty_count"`
	Ejected           bool      `db:"ejected"`
	SuspendedNextGame bool      `db:"suspended_next_game"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type PenaltyTrackingRepository struct {
	db *sqlx.DB
}

func NewPenaltyTrackingRepository(db *sqlx.DB) *PenaltyTrackingRepository {
	return &PenaltyTrackingRepository{db: db}
}

func (r *PenaltyTrackingRepository) GetByPlayerAndGame(ctx context.Context, playerID, gameID string) (penalty.Tracking, bool, error) {
	query, args, err := qb.Select("*").From("penalty_tracking").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("game_public_id", gameID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return penalty.Tracking{}, false, fmt.Errorf("build select penalty tracking query: %w", err)
	}

	var row penaltyTrackingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return penalty.Tracking{}, false, nil
		}
		return penalty.Tracking{}, false, fmt.Errorf("select penalty tracking: %w", err)
	}

	return trackingFromRow(row), true, nil
}

func (r *PenaltyTrackingRepository) ListByPlayer(ctx context.Context, playerID string) ([]penalty.Tracking, error) {
	query, args, err := qb.Select("*").From("penalty_tracking").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select penalty tracking by player query: %w", err)
	}

	var rows []penaltyTrackingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select penalty tracking by player: %w", err)
	}

	out := make([]penalty.Tracking, 0, len(rows))
	for _, row := range rows {
		out = append(out, trackingFromRow(row))
	}

	return out, nil
}

func (r *PenaltyTrackingRepository) Upsert(ctx context.Context, t penalty.Tracking) error {
	query, args, err := qb.InsertInto("penalty_tracking").
		Columns(
			"public_id", "player_public_id", "game_public_id",
			"penalty_count", "ejected", "suspended_next_game",
		).
		Values(
			t.ID, t.PlayerID, t.GameID,
			t.PenaltyCount, t.Ejected, t.SuspendedNextGame,
		).
		Suffix(`ON CONFLICT (player_public_id, game_public_id) DO UPDATE SET
			penalty_count = EXCLUDED.penalty_count,
			ejected = EXCLUDED.ejected,
			suspended_next_game = EXCLUDED.suspended_next_game,
			updated_at = now()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert penalty tracking query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert penalty tracking: %w", err)
	}

	return nil
}

func trackingFromRow(row penaltyTrackingTableModel) penalty.Tracking {
	return penalty.Tracking{
		ID:                row.PublicID,
		PlayerID:          row.PlayerID,
		GameID:            row.GameID,
		PenaltyCount:      row.PenaltyCount,
		Ejected:           row.Ejected,
		SuspendedNextGame: row.SuspendedNextGame,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
