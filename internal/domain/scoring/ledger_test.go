package scoring

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/obhl/rinkside/internal/domain/game"
)

func newTestLedger() *Ledger {
	return NewLedger(game.Game{
		ID:         "g1",
		HomeTeamID: "home",
		AwayTeamID: "away",
		Status:     game.StatusInProgress,
	}, nil)
}

func goalEvent(id, teamID, playerID string, period, minutes, seconds int) game.Event {
	return game.Event{
		ID:          id,
		GameID:      "g1",
		TeamID:      teamID,
		PlayerID:    playerID,
		Type:        game.EventGoal,
		Period:      period,
		TimeMinutes: minutes,
		TimeSeconds: seconds,
	}
}

func penaltyEvent(id, teamID, playerID string) game.Event {
	return game.Event{
		ID:             id,
		GameID:         "g1",
		TeamID:         teamID,
		PlayerID:       playerID,
		Type:           game.EventPenalty,
		Period:         1,
		TimeMinutes:    10,
		PenaltyMinutes: 2,
	}
}

func TestLedgerRecordGoalRecountsScores(t *testing.T) {
	t.Parallel()

	l := newTestLedger()

	if _, err := l.RecordGoal(goalEvent("e1", "home", "p1", 1, 12, 30), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if _, err := l.RecordGoal(goalEvent("e2", "away", "p2", 2, 8, 0), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if _, err := l.RecordGoal(goalEvent("e3", "home", "p1", 3, 5, 45), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}

	home, away := l.Scores()
	if home != 2 || away != 1 {
		t.Fatalf("scores = (%d, %d), want (2, 1)", home, away)
	}
	if got := l.GoalsBy("p1"); got != 2 {
		t.Fatalf("GoalsBy(p1) = %d, want 2", got)
	}
}

func TestLedgerGoalCapRulingIsAdvisory(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	for i := 0; i < 3; i++ {
		// Keep the opponent close so the mercy rule never kicks in.
		if _, err := l.RecordGoal(goalEvent(fmt.Sprintf("a%d", i), "away", "p9", 1, 15, i), 5); err != nil {
			t.Fatalf("record opposing goal: %v", err)
		}
		if _, err := l.RecordGoal(goalEvent(fmt.Sprintf("h%d", i), "home", "p1", 1, 14, i), 5); err != nil {
			t.Fatalf("record goal %d: %v", i, err)
		}
	}

	// The standalone check rules against a fourth goal.
	ruling, err := l.CheckGoal("home", "p1", 5)
	if err != nil {
		t.Fatalf("check goal: %v", err)
	}
	if ruling.Allowed {
		t.Fatalf("ruling should not allow a fourth goal")
	}
	if ruling.Message != "Player has reached goal limit (3/3 goals)" {
		t.Fatalf("unexpected message %q", ruling.Message)
	}

	// The append still goes through; honoring the ruling is the caller's call.
	ruling, err = l.RecordGoal(goalEvent("h4", "home", "p1", 2, 10, 0), 5)
	if err != nil {
		t.Fatalf("record goal past the cap: %v", err)
	}
	if ruling.Allowed {
		t.Fatalf("returned ruling should still flag the capped goal")
	}

	home, _ := l.Scores()
	if home != 4 {
		t.Fatalf("recorded goal must count, home = %d", home)
	}
	if got := l.GoalsBy("p1"); got != 4 {
		t.Fatalf("GoalsBy(p1) = %d, want 4", got)
	}
}

func TestLedgerMercyRuleWaivesCap(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	for i := 0; i < 4; i++ {
		if _, err := l.RecordGoal(goalEvent(fmt.Sprintf("a%d", i), "away", fmt.Sprintf("q%d", i), 1, 15, i), 5); err != nil {
			t.Fatalf("record opposing goal: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := l.RecordGoal(goalEvent(fmt.Sprintf("h%d", i), "home", "p1", 2, 12, i), 5); err != nil {
			t.Fatalf("record goal %d: %v", i, err)
		}
	}

	// Home still trails 3 to 4; the gap is only 1 now so the cap is back.
	if ruling, err := l.CheckGoal("home", "p1", 5); err != nil || ruling.Allowed {
		t.Fatalf("expected cap to return once the gap closes, ruling = %+v, err = %v", ruling, err)
	}

	// Widen the gap back to 4 and the cap lifts again.
	for i := 4; i < 8; i++ {
		if _, err := l.RecordGoal(goalEvent(fmt.Sprintf("a%d", i), "away", fmt.Sprintf("q%d", i), 3, 9, i), 5); err != nil {
			t.Fatalf("record opposing goal: %v", err)
		}
	}

	ruling, err := l.RecordGoal(goalEvent("h5", "home", "p1", 3, 5, 0), 5)
	if err != nil {
		t.Fatalf("mercy rule goal should be allowed: %v", err)
	}
	if !ruling.MercyRule {
		t.Fatalf("expected mercy rule ruling")
	}
	if got := l.GoalsBy("p1"); got != 4 {
		t.Fatalf("GoalsBy(p1) = %d, want 4", got)
	}
}

func TestLedgerEditKeepsIDAndRecounts(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	if _, err := l.RecordGoal(goalEvent("e1", "home", "p1", 1, 12, 0), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}

	// Flip the goal to the away side; totals must follow.
	edited := goalEvent("e1", "away", "p2", 1, 12, 0)
	if err := l.EditEvent(edited); err != nil {
		t.Fatalf("edit event: %v", err)
	}

	home, away := l.Scores()
	if home != 0 || away != 1 {
		t.Fatalf("scores after edit = (%d, %d), want (0, 1)", home, away)
	}

	got, ok := l.EventByID("e1")
	if !ok {
		t.Fatalf("edited event lost its id")
	}
	if got.PlayerID != "p2" {
		t.Fatalf("edited event player = %q, want p2", got.PlayerID)
	}

	if err := l.EditEvent(goalEvent("missing", "home", "p1", 1, 1, 0)); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestLedgerDeleteEventRecounts(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	if _, err := l.RecordGoal(goalEvent("e1", "home", "p1", 1, 12, 0), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if err := l.DeleteEvent("e1"); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	home, away := l.Scores()
	if home != 0 || away != 0 {
		t.Fatalf("scores after delete = (%d, %d), want (0, 0)", home, away)
	}

	if err := l.DeleteEvent("e1"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestLedgerRejectsEjectedPlayerBeforeEscalation(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	l.MarkEjected("p1")

	err := l.RecordPenalty(penaltyEvent("e1", "home", "p1"))
	if !errors.Is(err, ErrPlayerEjected) {
		t.Fatalf("expected ErrPlayerEjected, got %v", err)
	}
	if got := l.PenaltiesBy("p1"); got != 0 {
		t.Fatalf("rejected penalty must not be recorded, got %d", got)
	}
}

func TestLedgerFinalizeForcesOvertimeFlag(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	if _, err := l.RecordGoal(goalEvent("e1", "home", "p1", game.PeriodOvertime, 4, 30), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}

	endedInOT, err := l.Finalize(false)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !endedInOT {
		t.Fatalf("an overtime goal must force endedInOT")
	}

	if _, err := l.RecordGoal(goalEvent("e2", "home", "p1", 1, 3, 0), 5); !errors.Is(err, ErrLedgerFinalized) {
		t.Fatalf("expected ErrLedgerFinalized, got %v", err)
	}
	if err := l.EditEvent(goalEvent("e1", "home", "p1", 1, 3, 0)); !errors.Is(err, ErrLedgerFinalized) {
		t.Fatalf("expected ErrLedgerFinalized on edit, got %v", err)
	}
	if _, err := l.Finalize(false); !errors.Is(err, ErrLedgerFinalized) {
		t.Fatalf("expected ErrLedgerFinalized on second finalize, got %v", err)
	}
}

func TestLedgerFinalizeHonorsCallerFlagWithoutOvertimeGoal(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	if _, err := l.RecordGoal(goalEvent("e1", "home", "p1", 2, 10, 0), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}

	endedInOT, err := l.Finalize(true)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !endedInOT {
		t.Fatalf("caller flag should stand when no overtime goal exists")
	}
}

func TestLedgerEventsDisplayOrder(t *testing.T) {
	t.Parallel()

	l := newTestLedger()
	if _, err := l.RecordGoal(goalEvent("first", "home", "p1", 1, 10, 0), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if _, err := l.RecordGoal(goalEvent("ot", "away", "p2", game.PeriodOvertime, 4, 59), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if _, err := l.RecordGoal(goalEvent("late", "home", "p3", 1, 2, 15), 5); err != nil {
		t.Fatalf("record goal: %v", err)
	}

	events := l.Events()
	want := []string{"ot", "late", "first"}
	for i, id := range want {
		if events[i].ID != id {
			t.Fatalf("events[%d] = %q, want %q", i, events[i].ID, id)
		}
	}
}

func TestLedgerRejectsForeignEvents(t *testing.T) {
	t.Parallel()

	l := newTestLedger()

	e := goalEvent("e1", "home", "p1", 1, 10, 0)
	e.GameID = "other"
	if _, err := l.RecordGoal(e, 5); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for wrong game, got %v", err)
	}

	e = goalEvent("e2", "nobody", "p1", 1, 10, 0)
	if _, err := l.RecordGoal(e, 5); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for foreign team, got %v", err)
	}
}

func TestLedgerSerializesConcurrentWriters(t *testing.T) {
	t.Parallel()

	l := newTestLedger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("e%d", i)
			team, player := "home", fmt.Sprintf("hp%d", i)
			if i%2 == 1 {
				team, player = "away", fmt.Sprintf("ap%d", i)
			}
			if _, err := l.RecordGoal(goalEvent(id, team, player, 1, i%20, i%60), 5); err != nil {
				t.Errorf("record goal %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	home, away := l.Scores()
	if home+away != 20 {
		t.Fatalf("total goals = %d, want 20", home+away)
	}
	if home != 10 || away != 10 {
		t.Fatalf("scores = (%d, %d), want (10, 10)", home, away)
	}
}
