package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/obhl/rinkside/internal/domain/game"
	qb "github.com/obhl/rinkside/internal/platform/querybuilder"
)

type GameEventRepository struct {
	db *sqlx.DB
}

func NewGameEventRepository(db *sqlx.DB) *GameEventRepository {
	return &GameEventRepository{db: db}
}

func (r *GameEventRepository) ListByGame(ctx context.Context, gameID string) ([]game.Event, error) {
	query, args, err := qb.Select("*").From("game_events").
		Where(
			qb.Eq("game_public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game events query: %w", err)
	}

	var rows []gameEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game events: %w", err)
	}

	out := make([]game.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}

	return out, nil
}

func (r *GameEventRepository) Insert(ctx context.Context, e game.Event) error {
	query, args, err := qb.InsertInto("game_events").
		Columns(
			"public_id", "game_public_id", "team_public_id", "player_public_id",
			"event_type", "period", "time_minutes", "time_seconds", "description",
			"assist1_player_public_id", "assist2_player_public_id", "penalty_minutes",
		).
		Values(
			e.ID, e.GameID, e.TeamID, e.PlayerID,
			e.Type, e.Period, e.TimeMinutes, e.TimeSeconds, stringToNullString(e.Description),
			stringToNullString(e.Assist1PlayerID), stringToNullString(e.Assist2PlayerID), e.PenaltyMinutes,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert game event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert game event: %w", err)
	}

	return nil
}

func (r *GameEventRepository) Update(ctx context.Context, e game.Event) error {
	query, args, err := qb.Update("game_events").
		Set("team_public_id", e.TeamID).
		Set("player_public_id", e.PlayerID).
		Set("event_type", e.Type).
		Set("period", e.Period).
		Set("time_minutes", e.TimeMinutes).
		Set("time_seconds", e.TimeSeconds).
		Set("description", stringToNullString(e.Description)).
		Set("assist1_player_public_id", stringToNullString(e.Assist1PlayerID)).
		Set("assist2_player_public_id", stringToNullString(e.Assist2PlayerID)).
		Set("penalty_minutes", e.PenaltyMinutes).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", e.ID),
			qb.Eq("game_public_id", e.GameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game event query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update game event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update game event: not found")
	}

	return nil
}

func (r *GameEventRepository) Delete(ctx context.Context, gameID, eventID string) error {
	query, args, err := qb.Update("game_events").
		SetExpr("deleted_at", "now()").
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", eventID),
			qb.Eq("game_public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game event query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete game event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete game event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete game event: not found")
	}

	return nil
}

func eventFromRow(row gameEventTableModel) game.Event {
	return game.Event{
		ID:              row.PublicID,
		GameID:          row.GameID,
		TeamID:          row.TeamID,
		PlayerID:        row.PlayerID,
		Type:            row.EventType,
		Period:          row.Period,
		TimeMinutes:     row.TimeMinutes,
		TimeSeconds:     row.TimeSeconds,
		Description:     nullStringToString(row.Description),
		Assist1PlayerID: nullStringToString(row.Assist1PlayerID),
		Assist2PlayerID: nullStringToString(row.Assist2PlayerID),
		PenaltyMinutes:  row.PenaltyMinutes,
	}
}
