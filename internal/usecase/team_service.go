package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/platform/id"
)

type TeamService struct {
	teamRepo team.Repository
	idGen    id.Generator
}

func NewTeamService(teamRepo team.Repository, idGen id.Generator) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

func (s *TeamService) Create(ctx context.Context, t team.Team) (team.Team, error) {
	newID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	t.ID = newID

	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return t, nil
}

func (s *TeamService) Update(ctx context.Context, t team.Team) (team.Team, error) {
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, t.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, t.ID)
	}

	if err := s.teamRepo.Update(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return t, nil
}
