package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	idGen      id.Generator
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository, idGen id.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
	}
}

func (s *PlayerService) List(ctx context.Context, teamID string) ([]player.Player, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		return items, nil
	}

	items, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *PlayerService) Create(ctx context.Context, p player.Player) (player.Player, error) {
	newID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	p.ID = newID

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, p.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, p.TeamID)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return p, nil
}

func (s *PlayerService) Update(ctx context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, p.ID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, p.ID)
	}

	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return p, nil
}
