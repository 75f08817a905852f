package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/platform/id"
)

type GameService struct {
	gameRepo  game.Repository
	eventRepo game.EventRepository
	teamRepo  team.Repository
	idGen     id.Generator
}

func NewGameService(gameRepo game.Repository, eventRepo game.EventRepository, teamRepo team.Repository, idGen id.Generator) *GameService {
	return &GameService{
		gameRepo:  gameRepo,
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
		idGen:     idGen,
	}
}

func (s *GameService) List(ctx context.Context, status string) ([]game.Game, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		items, err := s.gameRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		return items, nil
	}

	switch status {
	case game.StatusScheduled, game.StatusInProgress, game.StatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown game status %s", ErrInvalidInput, status)
	}

	items, err := s.gameRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list games by status: %w", err)
	}
	return items, nil
}

func (s *GameService) Get(ctx context.Context, gameID string) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	return g, nil
}

func (s *GameService) Create(ctx context.Context, g game.Game) (game.Game, error) {
	newID, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	g.ID = newID
	if g.Status == "" {
		g.Status = game.StatusScheduled
	}
	if g.GameType == "" {
		g.GameType = game.TypeRegularSeason
	}

	if err := g.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return game.Game{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return game.Game{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	if err := s.gameRepo.Create(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}

	return g, nil
}

// Start moves a scheduled game to in progress so events can be taken.
func (s *GameService) Start(ctx context.Context, gameID string) (game.Game, error) {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	switch g.Status {
	case game.StatusScheduled:
	case game.StatusInProgress:
		return g, nil
	default:
		return game.Game{}, fmt.Errorf("%w: game %s is already completed", ErrInvalidInput, gameID)
	}

	g.Status = game.StatusInProgress
	if err := s.gameRepo.Update(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}

	return g, nil
}

// Events lists the persisted scoresheet for a game in display order.
func (s *GameService) Events(ctx context.Context, gameID string) ([]game.Event, error) {
	if _, err := s.Get(ctx, gameID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}

	game.SortForDisplay(events)
	return events, nil
}
