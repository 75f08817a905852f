package usecase

import (
	"context"
	"fmt"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/standings"
	"github.com/obhl/rinkside/internal/domain/team"
)

// TableRow is a standings row joined with its team's display fields.
type TableRow struct {
	standings.Row
	TeamName string
}

// StandingsService serves the league table. The table is recomputed
// from completed games on every request; there is deliberately no cache
// here, since a scoresheet edit must show up on the very next read.
type StandingsService struct {
	teamRepo team.Repository
	gameRepo game.Repository
}

func NewStandingsService(teamRepo team.Repository, gameRepo game.Repository) *StandingsService {
	return &StandingsService{
		teamRepo: teamRepo,
		gameRepo: gameRepo,
	}
}

func (s *StandingsService) Table(ctx context.Context) ([]TableRow, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.Table")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	completed, err := s.gameRepo.ListByStatus(ctx, game.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list completed games: %w", err)
	}

	teamIDs := make([]string, 0, len(teams))
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
		names[t.ID] = t.Name
	}

	rows := standings.Compute(teamIDs, completed)
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, TableRow{Row: r, TeamName: names[r.TeamID]})
	}

	return out, nil
}
