package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/obhl/rinkside/internal/domain/playerstats"
	qb "github.com/obhl/rinkside/internal/platform/querybuilder"
)

type seasonStatsTableModel struct {
	PlayerID       string    `db:"player_public_id"`
	GamesPlayed    int       `db:"games_played"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	Points         int       `db:"points"`
	PenaltyMinutes int       `db:"penalty_minutes"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type SeasonStatsRepository struct {
	db *sqlx.DB
}

func NewSeasonStatsRepository(db *sqlx.DB) *SeasonStatsRepository {
	return &SeasonStatsRepository{db: db}
}

func (r *SeasonStatsRepository) GetByPlayer(ctx context.Context, playerID string) (playerstats.SeasonStats, bool, error) {
	query, args, err := qb.Select("*").From("player_season_stats").
		Where(qb.Eq("player_public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerstats.SeasonStats{}, false, fmt.Errorf("build select season stats query: %w", err)
	}

	var row seasonStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.SeasonStats{}, false, nil
		}
		return playerstats.SeasonStats{}, false, fmt.Errorf("select season stats: %w", err)
	}

	return seasonStatsFromRow(row), true, nil
}

func (r *SeasonStatsRepository) List(ctx context.Context) ([]playerstats.SeasonStats, error) {
	query, args, err := qb.Select("*").From("player_season_stats").
		OrderBy("points DESC", "goals DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season stats list query: %w", err)
	}

	var rows []seasonStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season stats list: %w", err)
	}

	out := make([]playerstats.SeasonStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonStatsFromRow(row))
	}

	return out, nil
}

func (r *SeasonStatsRepository) Upsert(ctx context.Context, stats playerstats.SeasonStats) error {
	query, args, err := qb.InsertInto("player_season_stats").
		Columns(
			"player_public_id", "games_played", "goals", "assists", "points", "penalty_minutes",
		).
		Values(
			stats.PlayerID, stats.GamesPlayed, stats.Goals, stats.Assists, stats.Points, stats.PenaltyMinutes,
		).
		Suffix(`ON CONFLICT (player_public_id) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			penalty_minutes = EXCLUDED.penalty_minutes,
			updated_at = now()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert season stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season stats: %w", err)
	}

	return nil
}

func (r *SeasonStatsRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE TABLE player_season_stats"); err != nil {
		return fmt.Errorf("reset season stats: %w", err)
	}
	return nil
}

func seasonStatsFromRow(row seasonStatsTableModel) playerstats.SeasonStats {
	return playerstats.SeasonStats{
		PlayerID:       row.PlayerID,
		GamesPlayed:    row.GamesPlayed,
		Goals:          row.Goals,
		Assists:        row.Assists,
		Points:         row.Points,
		PenaltyMinutes: row.PenaltyMinutes,
	}
}
