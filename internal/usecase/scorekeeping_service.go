package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/penalty"
	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/domain/scoring"
	"github.com/obhl/rinkside/internal/platform/id"
	"github.com/obhl/rinkside/internal/platform/logging"
	"github.com/obhl/rinkside/internal/platform/resilience"
)

// fallbackSkillRating stands in when a scorer is missing from the
// roster; a mid-tier rating keeps the standard three goal cap.
const fallbackSkillRating = 5

// PenaltyValidator rules on escalation for each recorded penalty.
type PenaltyValidator interface {
	ValidatePenalty(ctx context.Context, playerID, gameID string) (penalty.Ruling, error)
	Ejections(ctx context.Context, gameID string, playerIDs []string) ([]string, error)
}

// StatsRecorder folds a finalized game into season stat lines.
type StatsRecorder interface {
	ApplyGame(ctx context.Context, events []game.Event) error
}

// ResultPublisher pushes finalized results to the league office.
type ResultPublisher interface {
	PublishResult(ctx context.Context, g game.Game) error
}

// GoalInput is a scorekeeper's goal submission. Override records the
// goal even when the cap ruling says blocked, for consoles that let a
// scorekeeper overrule the advisory check.
type GoalInput struct {
	TeamID          string
	PlayerID        string
	Period          int
	TimeMinutes     int
	TimeSeconds     int
	Description     string
	Assist1PlayerID string
	Assist2PlayerID string
	Override        bool
}

// PenaltyInput is a scorekeeper's penalty submission.
type PenaltyInput struct {
	TeamID         string
	PlayerID       string
	Period         int
	TimeMinutes    int
	TimeSeconds    int
	Description    string
	PenaltyMinutes int
}

// GoalOutcome reports the ruling and the derived score after a goal.
type GoalOutcome struct {
	Ruling    scoring.GoalRuling
	Event     game.Event
	HomeScore int
	AwayScore int
}

// PenaltyOutcome reports the escalation ruling after a penalty.
type PenaltyOutcome struct {
	Ruling    penalty.Ruling
	Event     game.Event
	HomeScore int
	AwayScore int
}

// ScorekeepingService owns the live ledgers. Each game gets exactly one
// ledger and one submission lock. The lock is held for the whole of a
// submission, the local apply plus the saves and the escalation ruling,
// so two scorekeepers hammering the same game cannot interleave partial
// updates while different games never contend.
//
// Every mutation is applied to the ledger first and persisted second.
// A failed save surfaces ErrRemoteSave but never unwinds the ledger;
// the scoresheet on the bench stays authoritative.
type ScorekeepingService struct {
	gameRepo   game.Repository
	eventRepo  game.EventRepository
	playerRepo player.Repository
	penalties  PenaltyValidator
	stats      StatsRecorder
	publisher  ResultPublisher
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time

	mu          sync.Mutex
	ledgers     map[string]*scoring.Ledger
	submissions map[string]*sync.Mutex
	loads       resilience.SingleFlight
}

func NewScorekeepingService(
	gameRepo game.Repository,
	eventRepo game.EventRepository,
	playerRepo player.Repository,
	penalties PenaltyValidator,
	stats StatsRecorder,
	publisher ResultPublisher,
	idGen id.Generator,
	logger *logging.Logger,
) *ScorekeepingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScorekeepingService{
		gameRepo:    gameRepo,
		eventRepo:   eventRepo,
		playerRepo:  playerRepo,
		penalties:   penalties,
		stats:       stats,
		publisher:   publisher,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
		ledgers:     make(map[string]*scoring.Ledger),
		submissions: make(map[string]*sync.Mutex),
	}
}

// CheckGoalLimit rules on a prospective goal without recording it. The
// check and the recording are deliberately separate operations so a
// console can warn, block, or let the scorekeeper overrule.
func (s *ScorekeepingService) CheckGoalLimit(ctx context.Context, gameID, teamID, playerID string) (scoring.GoalRuling, error) {
	ctx, span := startUsecaseSpan(ctx, "ScorekeepingService.CheckGoalLimit")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	playerID = strings.TrimSpace(playerID)
	if teamID == "" || playerID == "" {
		return scoring.GoalRuling{}, fmt.Errorf("%w: team id and player id are required", ErrInvalidInput)
	}

	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return scoring.GoalRuling{}, err
	}

	return ledger.CheckGoal(teamID, playerID, s.skillRating(ctx, playerID))
}

// RecordGoal rules on the cap, applies the goal locally, then saves it.
// A blocked ruling refuses the submission unless Override is set; the
// ruling comes back either way so the bench sees the exact message.
func (s *ScorekeepingService) RecordGoal(ctx context.Context, gameID string, input GoalInput) (GoalOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "ScorekeepingService.RecordGoal")
	defer span.End()

	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return GoalOutcome{}, err
	}

	lock := s.submission(gameID)
	lock.Lock()
	defer lock.Unlock()

	eventID, err := s.idGen.NewID()
	if err != nil {
		return GoalOutcome{}, fmt.Errorf("generate event id: %w", err)
	}

	e := game.Event{
		ID:              eventID,
		GameID:          gameID,
		TeamID:          strings.TrimSpace(input.TeamID),
		PlayerID:        strings.TrimSpace(input.PlayerID),
		Type:            game.EventGoal,
		Period:          input.Period,
		TimeMinutes:     input.TimeMinutes,
		TimeSeconds:     input.TimeSeconds,
		Description:     input.Description,
		Assist1PlayerID: strings.TrimSpace(input.Assist1PlayerID),
		Assist2PlayerID: strings.TrimSpace(input.Assist2PlayerID),
	}

	skill := s.skillRating(ctx, e.PlayerID)

	if !input.Override && !ledger.Finalized() {
		ruling, err := ledger.CheckGoal(e.TeamID, e.PlayerID, skill)
		if err != nil {
			return GoalOutcome{}, err
		}
		if !ruling.Allowed {
			return GoalOutcome{Ruling: ruling}, fmt.Errorf("%w: %s", scoring.ErrGoalLimitReached, ruling.Message)
		}
	}

	ruling, err := ledger.RecordGoal(e, skill)
	if err != nil {
		return GoalOutcome{Ruling: ruling}, err
	}
	if !ruling.Allowed {
		s.logger.InfoContext(ctx, "goal recorded past the cap by override",
			"game_id", gameID,
			"player_id", e.PlayerID,
		)
	}

	home, away := ledger.Scores()
	outcome := GoalOutcome{Ruling: ruling, Event: e, HomeScore: home, AwayScore: away}

	if err := s.saveEvent(ctx, ledger, e, false); err != nil {
		return outcome, err
	}

	return outcome, nil
}

// RecordPenalty refuses an already ejected player up front, consults the
// escalation rules, then applies and saves the penalty. The entry that
// triggers an ejection is still recorded; the player is marked ejected
// either way so the next submission is refused immediately.
func (s *ScorekeepingService) RecordPenalty(ctx context.Context, gameID string, input PenaltyInput) (PenaltyOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "ScorekeepingService.RecordPenalty")
	defer span.End()

	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return PenaltyOutcome{}, err
	}

	lock := s.submission(gameID)
	lock.Lock()
	defer lock.Unlock()

	if ledger.Finalized() {
		return PenaltyOutcome{}, scoring.ErrLedgerFinalized
	}

	playerID := strings.TrimSpace(input.PlayerID)
	if ledger.IsEjected(playerID) {
		return PenaltyOutcome{}, fmt.Errorf("%w: %s", scoring.ErrPlayerEjected, playerID)
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return PenaltyOutcome{}, fmt.Errorf("generate event id: %w", err)
	}

	e := game.Event{
		ID:             eventID,
		GameID:         gameID,
		TeamID:         strings.TrimSpace(input.TeamID),
		PlayerID:       playerID,
		Type:           game.EventPenalty,
		Period:         input.Period,
		TimeMinutes:    input.TimeMinutes,
		TimeSeconds:    input.TimeSeconds,
		Description:    input.Description,
		PenaltyMinutes: input.PenaltyMinutes,
	}

	// The escalation ruling comes before the append: a validator outage
	// leaves no recorded penalty behind, never a penalty without a
	// ruling.
	ruling, err := s.penalties.ValidatePenalty(ctx, playerID, gameID)
	if err != nil {
		return PenaltyOutcome{}, fmt.Errorf("%w: validate penalty: %v", ErrDependencyUnavailable, err)
	}

	appendErr := ledger.RecordPenalty(e)
	if ruling.Ejected {
		// The ejection sticks whether or not the append went through.
		ledger.MarkEjected(playerID)
	}
	if appendErr != nil {
		return PenaltyOutcome{Ruling: ruling}, appendErr
	}

	home, away := ledger.Scores()
	outcome := PenaltyOutcome{Ruling: ruling, Event: e, HomeScore: home, AwayScore: away}

	if err := s.saveEvent(ctx, ledger, e, false); err != nil {
		return outcome, err
	}

	return outcome, nil
}

// EditEvent swaps in the replacement event under its stable id and
// recounts.
func (s *ScorekeepingService) EditEvent(ctx context.Context, gameID string, e game.Event) (GoalOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "ScorekeepingService.EditEvent")
	defer span.End()

	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return GoalOutcome{}, err
	}

	lock := s.submission(gameID)
	lock.Lock()
	defer lock.Unlock()

	e.GameID = gameID
	if err := ledger.EditEvent(e); err != nil {
		return GoalOutcome{}, err
	}

	home, away := ledger.Scores()
	outcome := GoalOutcome{Event: e, HomeScore: home, AwayScore: away}

	if err := s.saveEvent(ctx, ledger, e, true); err != nil {
		return outcome, err
	}

	return outcome, nil
}

// DeleteEvent removes an event and recounts.
func (s *ScorekeepingService) DeleteEvent(ctx context.Context, gameID, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "ScorekeepingService.DeleteEvent")
	defer span.End()

	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return err
	}

	lock := s.submission(gameID)
	lock.Lock()
	defer lock.Unlock()

	if err := ledger.DeleteEvent(eventID); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, gameID, eventID); err != nil {
		return fmt.Errorf("%w: delete event: %v", ErrRemoteSave, err)
	}
	if err := s.syncGameRow(ctx, ledger); err != nil {
		return err
	}

	return nil
}

// Events returns the live scoresheet in display order.
func (s *ScorekeepingService) Events(ctx context.Context, gameID string) ([]game.Event, error) {
	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return ledger.Events(), nil
}

// Scores returns the derived score for a game.
func (s *ScorekeepingService) Scores(ctx context.Context, gameID string) (home, away int, err error) {
	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return 0, 0, err
	}
	home, away = ledger.Scores()
	return home, away, nil
}

// Finalize freezes the ledger, settles points and the overtime flag,
// folds the game into season stats, and pushes the result out. A failed
// save surfaces ErrRemoteSave with the ledger left sealed; calling
// Finalize again retries the settle phase until the game row is
// completed, after which the operation is refused for good. On full
// success the live ledger is dropped, superseded by the stored record.
func (s *ScorekeepingService) Finalize(ctx context.Context, gameID string, endedInOT bool) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScorekeepingService.Finalize")
	defer span.End()

	ledger, err := s.ledger(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	lock := s.submission(gameID)
	lock.Lock()
	defer lock.Unlock()

	settledOT, sealErr := ledger.Finalize(endedInOT)
	alreadySealed := errors.Is(sealErr, scoring.ErrLedgerFinalized)
	if sealErr != nil && !alreadySealed {
		return game.Game{}, sealErr
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	if alreadySealed {
		if g.Completed() {
			return game.Game{}, sealErr
		}
		// The seal took but the save did not; pick the settle phase
		// back up with the flag decided the first time around.
		settledOT = ledger.EndedInOT()
	}

	g.HomeScore, g.AwayScore = ledger.Scores()
	g.EndedInOT = settledOT
	g.HomeTeamPoints, g.AwayTeamPoints = scoring.MatchPoints(g.HomeScore, g.AwayScore, settledOT)
	g.Status = game.StatusCompleted
	completedAt := s.now()
	g.CompletedAt = &completedAt

	if err := s.gameRepo.Update(ctx, g); err != nil {
		return g, fmt.Errorf("%w: save final game: %v", ErrRemoteSave, err)
	}

	if s.stats != nil {
		if err := s.stats.ApplyGame(ctx, ledger.Events()); err != nil {
			s.logger.WarnContext(ctx, "season stats aggregation failed",
				"game_id", gameID,
				"error", err,
			)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishResult(ctx, g); err != nil {
			return g, fmt.Errorf("%w: publish result: %v", ErrRemoteSave, err)
		}
	}

	s.mu.Lock()
	delete(s.ledgers, gameID)
	delete(s.submissions, gameID)
	s.mu.Unlock()

	return g, nil
}

// ledger returns the live ledger for a game, rebuilding it from
// persisted events on first touch. Concurrent first touches collapse
// into a single load.
func (s *ScorekeepingService) ledger(ctx context.Context, gameID string) (*scoring.Ledger, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	if l, ok := s.ledgers[gameID]; ok {
		s.mu.Unlock()
		return l, nil
	}
	s.mu.Unlock()

	val, err, _ := s.loads.Do("ledger:"+gameID, func() (any, error) {
		return s.loadLedger(ctx, gameID)
	})
	if err != nil {
		return nil, err
	}

	l := val.(*scoring.Ledger)
	s.mu.Lock()
	if existing, ok := s.ledgers[gameID]; ok {
		l = existing
	} else {
		s.ledgers[gameID] = l
	}
	s.mu.Unlock()

	return l, nil
}

// submission hands out the per-game lock held across a whole submission,
// the single-writer queue for one ledger.
func (s *ScorekeepingService) submission(gameID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.submissions[gameID]
	if !ok {
		m = &sync.Mutex{}
		s.submissions[gameID] = m
	}
	return m
}

func (s *ScorekeepingService) loadLedger(ctx context.Context, gameID string) (*scoring.Ledger, error) {
	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	events, err := s.eventRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}

	ledger := scoring.NewLedger(g, events)

	if s.penalties != nil {
		playerIDs := penalizedPlayers(events)
		ejected, err := s.penalties.Ejections(ctx, gameID, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("load ejections: %w", err)
		}
		for _, playerID := range ejected {
			ledger.MarkEjected(playerID)
		}
	}

	return ledger, nil
}

// saveEvent persists one applied event plus the refreshed game row.
// Failures are reported as ErrRemoteSave; nothing is unwound locally.
func (s *ScorekeepingService) saveEvent(ctx context.Context, ledger *scoring.Ledger, e game.Event, isEdit bool) error {
	var err error
	if isEdit {
		err = s.eventRepo.Update(ctx, e)
	} else {
		err = s.eventRepo.Insert(ctx, e)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "event save failed, local ledger retained",
			"game_id", e.GameID,
			"event_id", e.ID,
			"error", err,
		)
		return fmt.Errorf("%w: save event: %v", ErrRemoteSave, err)
	}

	return s.syncGameRow(ctx, ledger)
}

// syncGameRow rewrites the stored game's derived score.
func (s *ScorekeepingService) syncGameRow(ctx context.Context, ledger *scoring.Ledger) error {
	gameID := ledger.GameID()
	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("%w: refresh game: %v", ErrRemoteSave, err)
	}
	if !exists {
		return fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	g.HomeScore, g.AwayScore = ledger.Scores()
	if g.Status == game.StatusScheduled {
		g.Status = game.StatusInProgress
	}
	if err := s.gameRepo.Update(ctx, g); err != nil {
		return fmt.Errorf("%w: save game score: %v", ErrRemoteSave, err)
	}

	return nil
}

func (s *ScorekeepingService) skillRating(ctx context.Context, playerID string) int {
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil || !exists {
		s.logger.WarnContext(ctx, "player lookup failed, using fallback skill rating",
			"player_id", playerID,
			"error", err,
		)
		return fallbackSkillRating
	}
	return p.SkillRating
}

func penalizedPlayers(events []game.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		if e.Type != game.EventPenalty {
			continue
		}
		if _, ok := seen[e.PlayerID]; ok {
			continue
		}
		seen[e.PlayerID] = struct{}{}
		out = append(out, e.PlayerID)
	}
	return out
}
