package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/team"
	gamemock "github.com/obhl/rinkside/internal/mocks/domain/game"
	teammock "github.com/obhl/rinkside/internal/mocks/domain/team"
)

func TestStandingsService_Table_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	gameRepo := gamemock.NewRepository(t)

	teamRepo.
		On("List", mock.Anything).
		Return([]team.Team{
			{ID: "t1", Name: "Ice Hawks"},
			{ID: "t2", Name: "Polar Kings"},
		}, nil).
		Once()
	gameRepo.
		On("ListByStatus", mock.Anything, game.StatusCompleted).
		Return([]game.Game{
			{ID: "g1", HomeTeamID: "t1", AwayTeamID: "t2", Status: game.StatusCompleted, HomeScore: 2, AwayScore: 3, EndedInOT: true},
		}, nil).
		Once()

	svc := NewStandingsService(teamRepo, gameRepo)
	rows, err := svc.Table(ctx)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	if rows[0].TeamID != "t2" || rows[0].OvertimeWins != 1 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
	if rows[1].TeamID != "t1" || rows[1].OvertimeLosses != 1 || rows[1].Points != 1 {
		t.Fatalf("unexpected trailing row: %+v", rows[1])
	}
}

func TestStandingsService_Table_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	gameRepo := gamemock.NewRepository(t)

	teamRepo.
		On("List", mock.Anything).
		Return(nil, errors.New("store offline")).
		Once()

	svc := NewStandingsService(teamRepo, gameRepo)
	if _, err := svc.Table(context.Background()); err == nil {
		t.Fatalf("expected error when the team store is down")
	}
}
