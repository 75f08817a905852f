package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/penalty"
	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/domain/scoring"
	"github.com/obhl/rinkside/internal/infrastructure/repository/memory"
)

type seqIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%03d", g.next), nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []game.Game
	fail      bool
}

func (p *recordingPublisher) PublishResult(_ context.Context, g game.Game) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("league office unreachable")
	}
	p.published = append(p.published, g)
	return nil
}

type failingEventRepo struct {
	game.EventRepository
	failInsert bool
}

func (r *failingEventRepo) Insert(ctx context.Context, e game.Event) error {
	if r.failInsert {
		return errors.New("connection reset")
	}
	return r.EventRepository.Insert(ctx, e)
}

type failingGameRepo struct {
	*memory.GameRepository
	failUpdate bool
}

func (r *failingGameRepo) Update(ctx context.Context, g game.Game) error {
	if r.failUpdate {
		return errors.New("connection reset")
	}
	return r.GameRepository.Update(ctx, g)
}

// slowTrackingRepo widens the window between reading a tracking row and
// writing it back, so interleaved submissions would lose counts.
type slowTrackingRepo struct {
	penalty.Repository
}

func (r *slowTrackingRepo) GetByPlayerAndGame(ctx context.Context, playerID, gameID string) (penalty.Tracking, bool, error) {
	time.Sleep(2 * time.Millisecond)
	return r.Repository.GetByPlayerAndGame(ctx, playerID, gameID)
}

type outageValidator struct{}

func (outageValidator) ValidatePenalty(context.Context, string, string) (penalty.Ruling, error) {
	return penalty.Ruling{}, errors.New("tracking store down")
}

func (outageValidator) Ejections(context.Context, string, []string) ([]string, error) {
	return nil, nil
}

type scorekeepingFixture struct {
	svc         *ScorekeepingService
	penaltySvc  *PenaltyService
	gameRepo    *failingGameRepo
	eventRepo   *failingEventRepo
	penaltyRepo *memory.PenaltyRepository
	statsRepo   *memory.PlayerStatsRepository
	publisher   *recordingPublisher
}

func newScorekeepingFixture(t *testing.T) *scorekeepingFixture {
	t.Helper()

	gameRepo := &failingGameRepo{GameRepository: memory.NewGameRepository([]game.Game{
		{
			ID:         "g1",
			HomeTeamID: "home",
			AwayTeamID: "away",
			Status:     game.StatusInProgress,
		},
		{
			ID:         "g0",
			HomeTeamID: "home",
			AwayTeamID: "away",
			Status:     game.StatusCompleted,
		},
	})}
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: "elite", TeamID: "home", Name: "Elite Center", Position: player.PositionCenter, JerseyNumber: 9, SkillRating: 9},
		{ID: "grinder", TeamID: "home", Name: "Fourth Liner", Position: player.PositionLeftWing, JerseyNumber: 17, SkillRating: 5},
		{ID: "visitor", TeamID: "away", Name: "Visiting Wing", Position: player.PositionRightWing, JerseyNumber: 11, SkillRating: 5},
	})

	idGen := &seqIDGenerator{}
	eventRepo := &failingEventRepo{EventRepository: memory.NewEventRepository()}
	penaltyRepo := memory.NewPenaltyRepository()
	statsRepo := memory.NewPlayerStatsRepository()
	publisher := &recordingPublisher{}

	penaltySvc := NewPenaltyService(penaltyRepo, idGen)
	statsSvc := NewStatsService(statsRepo, gameRepo, eventRepo, nil)

	svc := NewScorekeepingService(gameRepo, eventRepo, playerRepo, penaltySvc, statsSvc, publisher, idGen, nil)

	return &scorekeepingFixture{
		svc:         svc,
		penaltySvc:  penaltySvc,
		gameRepo:    gameRepo,
		eventRepo:   eventRepo,
		penaltyRepo: penaltyRepo,
		statsRepo:   statsRepo,
		publisher:   publisher,
	}
}

func (f *scorekeepingFixture) goal(t *testing.T, teamID, playerID string, period, minutes int) GoalOutcome {
	t.Helper()
	out, err := f.svc.RecordGoal(context.Background(), "g1", GoalInput{
		TeamID:      teamID,
		PlayerID:    playerID,
		Period:      period,
		TimeMinutes: minutes,
	})
	if err != nil {
		t.Fatalf("record goal for %s: %v", playerID, err)
	}
	return out
}

func (f *scorekeepingFixture) penalty(t *testing.T, teamID, playerID string) (PenaltyOutcome, error) {
	t.Helper()
	return f.svc.RecordPenalty(context.Background(), "g1", PenaltyInput{
		TeamID:         teamID,
		PlayerID:       playerID,
		Period:         1,
		TimeMinutes:    10,
		PenaltyMinutes: 2,
	})
}

func TestRecordGoalPersistsEventAndScore(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	out := f.goal(t, "home", "grinder", 1, 12)
	if out.HomeScore != 1 || out.AwayScore != 0 {
		t.Fatalf("scores = (%d, %d), want (1, 0)", out.HomeScore, out.AwayScore)
	}
	if out.Ruling.Message != "Goal allowed (1/3 goals)" {
		t.Fatalf("unexpected ruling message %q", out.Ruling.Message)
	}

	events, err := f.eventRepo.ListByGame(context.Background(), "g1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].PlayerID != "grinder" {
		t.Fatalf("persisted events = %+v", events)
	}

	g, _, err := f.gameRepo.GetByID(context.Background(), "g1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if g.HomeScore != 1 {
		t.Fatalf("game row home score = %d, want 1", g.HomeScore)
	}
}

func TestRecordGoalEliteCapUsesRoster(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	f.goal(t, "home", "elite", 1, 15)
	out := f.goal(t, "home", "elite", 1, 10)
	if out.Ruling.Severity != scoring.SeverityWarning {
		t.Fatalf("second elite goal should warn, got %q", out.Ruling.Severity)
	}

	_, err := f.svc.RecordGoal(context.Background(), "g1", GoalInput{
		TeamID: "home", PlayerID: "elite", Period: 2, TimeMinutes: 14,
	})
	if !errors.Is(err, scoring.ErrGoalLimitReached) {
		t.Fatalf("expected elite cap at 2, got %v", err)
	}

	events, _ := f.eventRepo.ListByGame(context.Background(), "g1")
	if len(events) != 2 {
		t.Fatalf("blocked goal must not be persisted, have %d events", len(events))
	}
}

func TestCheckGoalLimitRulesWithoutRecording(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	ruling, err := f.svc.CheckGoalLimit(context.Background(), "g1", "home", "grinder")
	if err != nil {
		t.Fatalf("check goal limit: %v", err)
	}
	if !ruling.Allowed || ruling.Message != "Goal allowed (1/3 goals)" {
		t.Fatalf("fresh player should be allowed, ruling = %+v", ruling)
	}

	f.goal(t, "home", "elite", 1, 15)
	f.goal(t, "home", "elite", 1, 10)

	ruling, err = f.svc.CheckGoalLimit(context.Background(), "g1", "home", "elite")
	if err != nil {
		t.Fatalf("check goal limit: %v", err)
	}
	if ruling.Allowed {
		t.Fatalf("elite player at the cap should be refused, ruling = %+v", ruling)
	}

	// The check itself records nothing.
	events, _ := f.eventRepo.ListByGame(context.Background(), "g1")
	if len(events) != 2 {
		t.Fatalf("check must not add events, have %d", len(events))
	}
	home, _, _ := f.svc.Scores(context.Background(), "g1")
	if home != 2 {
		t.Fatalf("check must not change the score, home = %d", home)
	}
}

func TestRecordGoalOverrideGoesPastCap(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	for i := 0; i < 3; i++ {
		f.goal(t, "home", "grinder", 1, 15-i)
	}

	_, err := f.svc.RecordGoal(context.Background(), "g1", GoalInput{
		TeamID: "home", PlayerID: "grinder", Period: 2, TimeMinutes: 12,
	})
	if !errors.Is(err, scoring.ErrGoalLimitReached) {
		t.Fatalf("expected cap refusal without override, got %v", err)
	}

	out, err := f.svc.RecordGoal(context.Background(), "g1", GoalInput{
		TeamID: "home", PlayerID: "grinder", Period: 2, TimeMinutes: 11, Override: true,
	})
	if err != nil {
		t.Fatalf("override goal: %v", err)
	}
	if out.Ruling.Allowed {
		t.Fatalf("ruling should still flag the capped goal")
	}
	if out.HomeScore != 4 {
		t.Fatalf("override goal must count, home = %d", out.HomeScore)
	}

	events, _ := f.eventRepo.ListByGame(context.Background(), "g1")
	if len(events) != 4 {
		t.Fatalf("override goal must be persisted, have %d events", len(events))
	}
}

func TestRecordGoalRemoteSaveFailureKeepsLedger(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	f.eventRepo.failInsert = true
	out, err := f.svc.RecordGoal(context.Background(), "g1", GoalInput{
		TeamID: "home", PlayerID: "grinder", Period: 1, TimeMinutes: 9,
	})
	if !errors.Is(err, ErrRemoteSave) {
		t.Fatalf("expected ErrRemoteSave, got %v", err)
	}
	if out.HomeScore != 1 {
		t.Fatalf("outcome should carry the applied score, got %d", out.HomeScore)
	}

	// The ledger keeps the goal even though the save failed.
	home, away, err := f.svc.Scores(context.Background(), "g1")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if home != 1 || away != 0 {
		t.Fatalf("ledger scores = (%d, %d), want (1, 0)", home, away)
	}

	events, _ := f.eventRepo.ListByGame(context.Background(), "g1")
	if len(events) != 0 {
		t.Fatalf("failed save should leave the store empty, have %d", len(events))
	}
}

func TestRecordPenaltyEscalatesToEjection(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	for i := 0; i < 2; i++ {
		out, err := f.penalty(t, "home", "grinder")
		if err != nil {
			t.Fatalf("penalty %d: %v", i+1, err)
		}
		if out.Ruling.WarningType != penalty.WarningNormal {
			t.Fatalf("penalty %d warning = %q, want NORMAL", i+1, out.Ruling.WarningType)
		}
	}

	out, err := f.penalty(t, "home", "grinder")
	if err != nil {
		t.Fatalf("third penalty: %v", err)
	}
	if out.Ruling.WarningType != penalty.WarningEjection {
		t.Fatalf("third penalty warning = %q, want EJECTION", out.Ruling.WarningType)
	}
	if !out.Ruling.Ejected {
		t.Fatalf("third penalty should eject")
	}

	// The fourth attempt is refused before any escalation rule runs.
	_, err = f.penalty(t, "home", "grinder")
	if !errors.Is(err, scoring.ErrPlayerEjected) {
		t.Fatalf("expected ErrPlayerEjected, got %v", err)
	}
}

func TestRecordPenaltySubmissionsSerialize(t *testing.T) {
	t.Parallel()

	gameRepo := memory.NewGameRepository([]game.Game{
		{ID: "g1", HomeTeamID: "home", AwayTeamID: "away", Status: game.StatusInProgress},
	})
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: "grinder", TeamID: "home", Name: "Fourth Liner", Position: player.PositionLeftWing, JerseyNumber: 17, SkillRating: 5},
	})
	penaltyRepo := memory.NewPenaltyRepository()
	penaltySvc := NewPenaltyService(&slowTrackingRepo{Repository: penaltyRepo}, &seqIDGenerator{})
	svc := NewScorekeepingService(gameRepo, memory.NewEventRepository(), playerRepo, penaltySvc, nil, nil, &seqIDGenerator{next: 50}, nil)

	outcomes := make([]PenaltyOutcome, 3)
	errs := make([]error, 3)
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = svc.RecordPenalty(context.Background(), "g1", PenaltyInput{
				TeamID: "home", PlayerID: "grinder", Period: 1, TimeMinutes: i + 1, PenaltyMinutes: 2,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("penalty %d: %v", i, err)
		}
	}

	tracking, exists, err := penaltyRepo.GetByPlayerAndGame(context.Background(), "grinder", "g1")
	if err != nil || !exists {
		t.Fatalf("tracking row missing (exists=%v err=%v)", exists, err)
	}
	if tracking.PenaltyCount != 3 {
		t.Fatalf("tracking count = %d, want 3", tracking.PenaltyCount)
	}
	if !tracking.Ejected {
		t.Fatalf("third penalty should have ejected the player")
	}

	ejections := 0
	for _, out := range outcomes {
		if out.Ruling.Ejected {
			ejections++
		}
	}
	if ejections != 1 {
		t.Fatalf("exactly one submission should carry the ejection, got %d", ejections)
	}
}

func TestRecordPenaltyValidatorOutageRecordsNothing(t *testing.T) {
	t.Parallel()

	gameRepo := memory.NewGameRepository([]game.Game{
		{ID: "g1", HomeTeamID: "home", AwayTeamID: "away", Status: game.StatusInProgress},
	})
	eventRepo := memory.NewEventRepository()
	svc := NewScorekeepingService(gameRepo, eventRepo, memory.NewPlayerRepository(nil), outageValidator{}, nil, nil, &seqIDGenerator{}, nil)

	_, err := svc.RecordPenalty(context.Background(), "g1", PenaltyInput{
		TeamID: "home", PlayerID: "grinder", Period: 1, TimeMinutes: 10, PenaltyMinutes: 2,
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	// No ruling means no entry, neither on the live sheet nor in the store.
	events, err := svc.Events(context.Background(), "g1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("outage must leave the scoresheet empty, have %d", len(events))
	}
	stored, _ := eventRepo.ListByGame(context.Background(), "g1")
	if len(stored) != 0 {
		t.Fatalf("outage must leave the store empty, have %d", len(stored))
	}
}

func TestRecordPenaltyCrossGameSuspension(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	// Two penalties carried over from the previous game.
	if err := f.penaltyRepo.Upsert(context.Background(), penalty.Tracking{
		ID:           "prev",
		PlayerID:     "grinder",
		GameID:       "g0",
		PenaltyCount: 2,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
	}); err != nil {
		t.Fatalf("seed tracking: %v", err)
	}

	if _, err := f.penalty(t, "home", "grinder"); err != nil {
		t.Fatalf("first penalty: %v", err)
	}

	out, err := f.penalty(t, "home", "grinder")
	if err != nil {
		t.Fatalf("second penalty: %v", err)
	}
	if out.Ruling.WarningType != penalty.WarningEjectionAndSuspended {
		t.Fatalf("warning = %q, want EJECTION_AND_SUSPENSION", out.Ruling.WarningType)
	}
	if !out.Ruling.Suspended {
		t.Fatalf("four penalties across two games should suspend")
	}

	suspended, err := f.penaltySvc.IsPlayerSuspended(context.Background(), "grinder")
	if err != nil {
		t.Fatalf("is suspended: %v", err)
	}
	if !suspended {
		t.Fatalf("player should be flagged suspended")
	}

	if err := f.penaltySvc.ClearSuspension(context.Background(), "grinder"); err != nil {
		t.Fatalf("clear suspension: %v", err)
	}
	suspended, _ = f.penaltySvc.IsPlayerSuspended(context.Background(), "grinder")
	if suspended {
		t.Fatalf("suspension should be cleared")
	}
}

func TestEditEventMovesGoalAcrossTeams(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	out := f.goal(t, "home", "grinder", 1, 12)

	edited := out.Event
	edited.TeamID = "away"
	edited.PlayerID = "visitor"

	res, err := f.svc.EditEvent(context.Background(), "g1", edited)
	if err != nil {
		t.Fatalf("edit event: %v", err)
	}
	if res.HomeScore != 0 || res.AwayScore != 1 {
		t.Fatalf("scores after edit = (%d, %d), want (0, 1)", res.HomeScore, res.AwayScore)
	}

	g, _, _ := f.gameRepo.GetByID(context.Background(), "g1")
	if g.HomeScore != 0 || g.AwayScore != 1 {
		t.Fatalf("game row after edit = (%d, %d), want (0, 1)", g.HomeScore, g.AwayScore)
	}

	events, _ := f.eventRepo.ListByGame(context.Background(), "g1")
	if len(events) != 1 || events[0].ID != out.Event.ID || events[0].PlayerID != "visitor" {
		t.Fatalf("stored event should keep its id with new fields: %+v", events)
	}
}

func TestDeleteEventRecountsAndPersists(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	out := f.goal(t, "home", "grinder", 1, 12)
	f.goal(t, "away", "visitor", 2, 8)

	if err := f.svc.DeleteEvent(context.Background(), "g1", out.Event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	home, away, _ := f.svc.Scores(context.Background(), "g1")
	if home != 0 || away != 1 {
		t.Fatalf("scores after delete = (%d, %d), want (0, 1)", home, away)
	}

	if err := f.svc.DeleteEvent(context.Background(), "g1", "nope"); !errors.Is(err, scoring.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestFinalizeSettlesPointsStatsAndPublishes(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	f.goal(t, "home", "grinder", 3, 2)
	f.goal(t, "away", "visitor", 3, 1)
	ot := f.goal(t, "home", "elite", game.PeriodOvertime, 4)
	if ot.Event.Period != game.PeriodOvertime {
		t.Fatalf("overtime goal period = %d", ot.Event.Period)
	}

	// The scorekeeper forgets the OT flag; the ledger forces it anyway.
	g, err := f.svc.Finalize(context.Background(), "g1", false)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !g.EndedInOT {
		t.Fatalf("overtime goal must force endedInOT")
	}
	if g.Status != game.StatusCompleted {
		t.Fatalf("status = %s, want completed", g.Status)
	}
	if g.HomeTeamPoints != 2 || g.AwayTeamPoints != 1 {
		t.Fatalf("points = (%d, %d), want (2, 1)", g.HomeTeamPoints, g.AwayTeamPoints)
	}
	if g.CompletedAt == nil {
		t.Fatalf("completedAt should be set")
	}

	stats, exists, _ := f.statsRepo.GetByPlayer(context.Background(), "elite")
	if !exists || stats.Goals != 1 || stats.Points != 1 {
		t.Fatalf("elite season stats = %+v (exists=%v)", stats, exists)
	}

	if len(f.publisher.published) != 1 {
		t.Fatalf("result should be published once, got %d", len(f.publisher.published))
	}

	if _, err := f.svc.RecordGoal(context.Background(), "g1", GoalInput{
		TeamID: "home", PlayerID: "grinder", Period: 1, TimeMinutes: 5,
	}); !errors.Is(err, scoring.ErrLedgerFinalized) {
		t.Fatalf("expected ErrLedgerFinalized after finalize, got %v", err)
	}
	if _, err := f.svc.Finalize(context.Background(), "g1", false); !errors.Is(err, scoring.ErrLedgerFinalized) {
		t.Fatalf("expected ErrLedgerFinalized on second finalize, got %v", err)
	}
}

func TestFinalizePublishFailureSurfacesRemoteSave(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)
	f.publisher.fail = true

	f.goal(t, "home", "grinder", 1, 12)

	g, err := f.svc.Finalize(context.Background(), "g1", false)
	if !errors.Is(err, ErrRemoteSave) {
		t.Fatalf("expected ErrRemoteSave, got %v", err)
	}

	// The game is still completed locally; only the publish failed.
	if g.Status != game.StatusCompleted {
		t.Fatalf("status = %s, want completed", g.Status)
	}
	stored, _, _ := f.gameRepo.GetByID(context.Background(), "g1")
	if stored.Status != game.StatusCompleted {
		t.Fatalf("stored status = %s, want completed", stored.Status)
	}
}

func TestFinalizeRetriesAfterSaveFailure(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	f.goal(t, "home", "grinder", 3, 2)

	f.gameRepo.failUpdate = true
	if _, err := f.svc.Finalize(context.Background(), "g1", false); !errors.Is(err, ErrRemoteSave) {
		t.Fatalf("expected ErrRemoteSave, got %v", err)
	}
	stored, _, _ := f.gameRepo.GetByID(context.Background(), "g1")
	if stored.Status != game.StatusInProgress {
		t.Fatalf("failed save must leave the row untouched, status = %s", stored.Status)
	}
	if len(f.publisher.published) != 0 {
		t.Fatalf("nothing should be published before the save lands")
	}

	// The ledger is sealed but the row is not settled; a second call
	// finishes the job instead of refusing.
	f.gameRepo.failUpdate = false
	g, err := f.svc.Finalize(context.Background(), "g1", false)
	if err != nil {
		t.Fatalf("retry finalize: %v", err)
	}
	if g.Status != game.StatusCompleted {
		t.Fatalf("status = %s, want completed", g.Status)
	}
	if g.HomeTeamPoints != 2 || g.AwayTeamPoints != 0 {
		t.Fatalf("points = (%d, %d), want (2, 0)", g.HomeTeamPoints, g.AwayTeamPoints)
	}
	if len(f.publisher.published) != 1 {
		t.Fatalf("result should be published once, got %d", len(f.publisher.published))
	}

	if _, err := f.svc.Finalize(context.Background(), "g1", false); !errors.Is(err, scoring.ErrLedgerFinalized) {
		t.Fatalf("expected ErrLedgerFinalized once settled, got %v", err)
	}
}

func TestFinalizeDropsLiveLedger(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	f.goal(t, "home", "grinder", 1, 12)
	if _, err := f.svc.Finalize(context.Background(), "g1", false); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	f.svc.mu.Lock()
	_, live := f.svc.ledgers["g1"]
	_, queued := f.svc.submissions["g1"]
	f.svc.mu.Unlock()
	if live || queued {
		t.Fatalf("finalize should drop the live ledger and its lock (ledger=%v lock=%v)", live, queued)
	}
}

func TestLedgerRebuildFromPersistedEvents(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	f.goal(t, "home", "grinder", 1, 12)
	f.goal(t, "away", "visitor", 2, 6)

	// Mark the visitor ejected in tracking, as a crashed process would
	// have left it.
	if err := f.penaltyRepo.Upsert(context.Background(), penalty.Tracking{
		ID: "t1", PlayerID: "visitor", GameID: "g1", PenaltyCount: 3, Ejected: true,
	}); err != nil {
		t.Fatalf("seed tracking: %v", err)
	}
	if err := f.eventRepo.Insert(context.Background(), game.Event{
		ID: "pen-1", GameID: "g1", TeamID: "away", PlayerID: "visitor",
		Type: game.EventPenalty, Period: 2, TimeMinutes: 5, PenaltyMinutes: 2,
	}); err != nil {
		t.Fatalf("seed penalty event: %v", err)
	}

	// Fresh service, same stores: the ledger is rebuilt on first touch.
	rebuilt := NewScorekeepingService(f.gameRepo, f.eventRepo, memory.NewPlayerRepository(nil), f.penaltySvc, nil, nil, &seqIDGenerator{next: 100}, nil)

	home, away, err := rebuilt.Scores(context.Background(), "g1")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if home != 1 || away != 1 {
		t.Fatalf("rebuilt scores = (%d, %d), want (1, 1)", home, away)
	}

	_, err = rebuilt.RecordPenalty(context.Background(), "g1", PenaltyInput{
		TeamID: "away", PlayerID: "visitor", Period: 3, TimeMinutes: 10, PenaltyMinutes: 2,
	})
	if !errors.Is(err, scoring.ErrPlayerEjected) {
		t.Fatalf("rebuilt ledger should remember the ejection, got %v", err)
	}
}

func TestLedgersAreIndependentAcrossGames(t *testing.T) {
	t.Parallel()
	f := newScorekeepingFixture(t)

	if err := f.gameRepo.Create(context.Background(), game.Game{
		ID: "g2", HomeTeamID: "home", AwayTeamID: "away", Status: game.StatusInProgress,
	}); err != nil {
		t.Fatalf("create second game: %v", err)
	}

	f.goal(t, "home", "grinder", 1, 12)

	if _, err := f.svc.RecordGoal(context.Background(), "g2", GoalInput{
		TeamID: "away", PlayerID: "visitor", Period: 1, TimeMinutes: 8,
	}); err != nil {
		t.Fatalf("goal in second game: %v", err)
	}

	h1, a1, _ := f.svc.Scores(context.Background(), "g1")
	h2, a2, _ := f.svc.Scores(context.Background(), "g2")
	if h1 != 1 || a1 != 0 || h2 != 0 || a2 != 1 {
		t.Fatalf("ledgers bled across games: g1=(%d,%d) g2=(%d,%d)", h1, a1, h2, a2)
	}
}
