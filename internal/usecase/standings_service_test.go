package usecase

import (
	"context"
	"testing"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/infrastructure/repository/memory"
)

func TestStandingsTableJoinsTeamNames(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: "t1", Name: "Ice Hawks"},
		{ID: "t2", Name: "Polar Kings"},
	})
	gameRepo := memory.NewGameRepository([]game.Game{
		{ID: "g1", HomeTeamID: "t1", AwayTeamID: "t2", Status: game.StatusCompleted, HomeScore: 3, AwayScore: 1},
	})

	svc := NewStandingsService(teamRepo, gameRepo)
	rows, err := svc.Table(context.Background())
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].TeamID != "t1" || rows[0].TeamName != "Ice Hawks" {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[0].Points != 2 || rows[1].Points != 0 {
		t.Fatalf("points = (%d, %d), want (2, 0)", rows[0].Points, rows[1].Points)
	}
}

func TestStandingsTableIsNeverCached(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: "t1", Name: "Ice Hawks"},
		{ID: "t2", Name: "Polar Kings"},
	})
	g := game.Game{ID: "g1", HomeTeamID: "t1", AwayTeamID: "t2", Status: game.StatusCompleted, HomeScore: 1, AwayScore: 0}
	gameRepo := memory.NewGameRepository([]game.Game{g})

	svc := NewStandingsService(teamRepo, gameRepo)
	rows, err := svc.Table(context.Background())
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if rows[0].TeamID != "t1" {
		t.Fatalf("leader = %s, want t1", rows[0].TeamID)
	}

	// A corrected scoresheet flips the result; the very next read must
	// see it.
	g.HomeScore, g.AwayScore = 0, 1
	if err := gameRepo.Update(context.Background(), g); err != nil {
		t.Fatalf("update game: %v", err)
	}

	rows, err = svc.Table(context.Background())
	if err != nil {
		t.Fatalf("table after edit: %v", err)
	}
	if rows[0].TeamID != "t2" {
		t.Fatalf("leader after edit = %s, want t2", rows[0].TeamID)
	}
}
