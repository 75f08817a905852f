package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/schedule"
	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/platform/id"
	"github.com/obhl/rinkside/internal/platform/logging"
)

// gameSlotInterval spaces consecutive games on the same night.
const gameSlotInterval = 75 * time.Minute

// GenerateScheduleRequest describes one season's schedule run.
type GenerateScheduleRequest struct {
	Weeks   int
	StartAt time.Time
	Rink    string
}

// ScheduleService builds a season of round-robin games.
type ScheduleService struct {
	teamRepo team.Repository
	gameRepo game.Repository
	idGen    id.Generator
	logger   *logging.Logger
}

func NewScheduleService(teamRepo team.Repository, gameRepo game.Repository, idGen id.Generator, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		teamRepo: teamRepo,
		gameRepo: gameRepo,
		idGen:    idGen,
		logger:   logger,
	}
}

// Generate lays out Weeks rounds of games, one round a week, cycling
// the round-robin pairings once the single round robin is exhausted. It
// refuses to run while scheduled games already exist.
func (s *ScheduleService) Generate(ctx context.Context, req GenerateScheduleRequest) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.Generate")
	defer span.End()

	if req.Weeks < 1 {
		return nil, fmt.Errorf("%w: weeks must be at least 1", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	existing, err := s.gameRepo.ListByStatus(ctx, game.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("list scheduled games: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: a schedule already exists, reset it first", ErrInvalidInput)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	base, err := schedule.RoundRobin(teamIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	gamesPerWeek := len(teamIDs) / 2
	matchups := schedule.Cycle(base, req.Weeks*gamesPerWeek)

	games := make([]game.Game, 0, len(matchups))
	for i, m := range matchups {
		week := i/gamesPerWeek + 1
		slot := i % gamesPerWeek

		gameID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate game id: %w", err)
		}

		g := game.Game{
			ID:          gameID,
			HomeTeamID:  m.HomeTeamID,
			AwayTeamID:  m.AwayTeamID,
			Week:        week,
			Rink:        req.Rink,
			GameType:    game.TypeRegularSeason,
			ScheduledAt: req.StartAt.AddDate(0, 0, (week-1)*7).Add(time.Duration(slot) * gameSlotInterval),
			Status:      game.StatusScheduled,
		}
		if err := s.gameRepo.Create(ctx, g); err != nil {
			return nil, fmt.Errorf("create scheduled game: %w", err)
		}
		games = append(games, g)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"teams", len(teamIDs),
		"weeks", req.Weeks,
		"games", len(games),
	)

	return games, nil
}
