package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/obhl/rinkside/internal/domain/game"
	qb "github.com/obhl/rinkside/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.IsNull("deleted_at")).
		OrderBy("scheduled_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) ListByStatus(ctx context.Context, status string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("status", status),
			qb.IsNull("deleted_at"),
		).
		OrderBy("scheduled_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by status query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by status: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	query, args, err := qb.InsertInto("games").
		Columns(
			"public_id", "home_team_public_id", "away_team_public_id", "week", "rink",
			"game_type", "scheduled_at", "status", "home_score", "away_score",
			"ended_in_ot", "home_team_points", "away_team_points", "completed_at",
		).
		Values(
			g.ID, g.HomeTeamID, g.AwayTeamID, g.Week, stringToNullString(g.Rink),
			g.GameType, g.ScheduledAt, g.Status, g.HomeScore, g.AwayScore,
			g.EndedInOT, g.HomeTeamPoints, g.AwayTeamPoints, ptrToNullTime(g.CompletedAt),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	return nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	query, args, err := qb.Update("games").
		Set("week", g.Week).
		Set("rink", stringToNullString(g.Rink)).
		Set("game_type", g.GameType).
		Set("scheduled_at", g.ScheduledAt).
		Set("status", g.Status).
		Set("home_score", g.HomeScore).
		Set("away_score", g.AwayScore).
		Set("ended_in_ot", g.EndedInOT).
		Set("home_team_points", g.HomeTeamPoints).
		Set("away_team_points", g.AwayTeamPoints).
		Set("completed_at", ptrToNullTime(g.CompletedAt)).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", g.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update game: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update game: not found")
	}

	return nil
}

func gamesFromRows(rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:             row.PublicID,
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		Week:           row.Week,
		Rink:           nullStringToString(row.Rink),
		GameType:       row.GameType,
		ScheduledAt:    row.ScheduledAt,
		Status:         row.Status,
		HomeScore:      row.HomeScore,
		AwayScore:      row.AwayScore,
		EndedInOT:      row.EndedInOT,
		HomeTeamPoints: row.HomeTeamPoints,
		AwayTeamPoints: row.AwayTeamPoints,
		CompletedAt:    nullTimeToPtr(row.CompletedAt),
	}
}
