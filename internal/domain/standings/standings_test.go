package standings

import (
	"testing"

	"github.com/obhl/rinkside/internal/domain/game"
)

func completedGame(home, away string, homeScore, awayScore int, endedInOT bool) game.Game {
	return game.Game{
		ID:         home + "-" + away,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     game.StatusCompleted,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		EndedInOT:  endedInOT,
	}
}

func rowFor(t *testing.T, rows []Row, teamID string) Row {
	t.Helper()
	for _, r := range rows {
		if r.TeamID == teamID {
			return r
		}
	}
	t.Fatalf("no row for team %s", teamID)
	return Row{}
}

func TestComputeAccumulatesResults(t *testing.T) {
	t.Parallel()

	teams := []string{"t1", "t2", "t3", "t4"}
	games := []game.Game{
		completedGame("t1", "t2", 4, 2, false),
		completedGame("t3", "t1", 2, 3, true),
		completedGame("t2", "t3", 1, 1, false),
		{ID: "live", HomeTeamID: "t1", AwayTeamID: "t4", Status: game.StatusInProgress, HomeScore: 9, AwayScore: 0},
	}

	rows := Compute(teams, games)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	t1 := rowFor(t, rows, "t1")
	if t1.GamesPlayed != 2 || t1.Wins != 1 || t1.OvertimeWins != 1 || t1.Points != 4 {
		t.Fatalf("unexpected t1 row: %+v", t1)
	}
	if t1.GoalsFor != 7 || t1.GoalsAgainst != 4 || t1.GoalDiff != 3 {
		t.Fatalf("unexpected t1 goal totals: %+v", t1)
	}

	t3 := rowFor(t, rows, "t3")
	if t3.OvertimeLosses != 1 || t3.Ties != 1 || t3.Points != 2 {
		t.Fatalf("unexpected t3 row: %+v", t3)
	}

	t2 := rowFor(t, rows, "t2")
	if t2.Losses != 1 || t2.Ties != 1 || t2.Points != 1 {
		t.Fatalf("unexpected t2 row: %+v", t2)
	}

	// Team with no completed games still appears, zeroed.
	t4 := rowFor(t, rows, "t4")
	if t4.GamesPlayed != 0 || t4.Points != 0 {
		t.Fatalf("unexpected t4 row: %+v", t4)
	}
}

func TestComputeSortOrder(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d"}
	games := []game.Game{
		// a and b both finish on 4 points and 2 regulation wins, but b
		// concedes fewer.
		completedGame("a", "c", 3, 1, false),
		completedGame("a", "d", 3, 2, false),
		completedGame("b", "c", 2, 0, false),
		completedGame("b", "d", 2, 1, false),
	}

	rows := Compute(teams, games)
	if rows[0].TeamID != "b" {
		t.Fatalf("rank 1 = %s, want b (fewer goals against)", rows[0].TeamID)
	}
	if rows[1].TeamID != "a" {
		t.Fatalf("rank 2 = %s, want a", rows[1].TeamID)
	}
	if rows[0].Rank != 1 || rows[1].Rank != 2 {
		t.Fatalf("ranks not assigned in order: %+v", rows[:2])
	}
}

func TestComputeTiebreakGoalsFor(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d"}
	games := []game.Game{
		// Equal points, wins, and goals against; a out-scores b.
		completedGame("a", "c", 5, 2, false),
		completedGame("b", "d", 3, 2, false),
	}

	rows := Compute(teams, games)
	if rows[0].TeamID != "a" || rows[1].TeamID != "b" {
		t.Fatalf("tiebreak order = %s, %s, want a, b", rows[0].TeamID, rows[1].TeamID)
	}
}

func TestComputeOvertimeWinIsNotARegulationWin(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d"}
	games := []game.Game{
		// Same points, but a's win came in regulation.
		completedGame("a", "c", 2, 1, false),
		completedGame("b", "d", 2, 1, true),
	}

	rows := Compute(teams, games)
	if rows[0].TeamID != "a" {
		t.Fatalf("rank 1 = %s, want a (regulation wins break the tie)", rows[0].TeamID)
	}

	b := rowFor(t, rows, "b")
	if b.Wins != 0 || b.OvertimeWins != 1 || b.Points != 2 {
		t.Fatalf("unexpected b row: %+v", b)
	}
	d := rowFor(t, rows, "d")
	if d.OvertimeLosses != 1 || d.Points != 1 {
		t.Fatalf("unexpected d row: %+v", d)
	}
}

func TestComputeSkipsUnknownTeams(t *testing.T) {
	t.Parallel()

	rows := Compute([]string{"a", "b"}, []game.Game{
		completedGame("a", "ghost", 5, 0, false),
		completedGame("a", "b", 1, 0, false),
	})

	a := rowFor(t, rows, "a")
	if a.GamesPlayed != 1 || a.GoalsFor != 1 {
		t.Fatalf("game against unknown team must be skipped: %+v", a)
	}
}
