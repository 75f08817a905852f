package scoring

import (
	"fmt"
	"sync"

	"github.com/obhl/rinkside/internal/domain/game"
)

// Ledger is the authoritative in-memory scoresheet for one game. All
// mutations funnel through its mutex, so there is exactly one writer per
// game; ledgers for different games never contend.
//
// Scores are never patched in place. After every mutation the full event
// list is recounted, so an edit that flips a goal to the other team, or a
// delete, can never leave a stale total behind.
type Ledger struct {
	mu sync.Mutex

	gameID     string
	homeTeamID string
	awayTeamID string

	events    []game.Event
	ejected   map[string]struct{}
	finalized bool
	endedInOT bool

	homeScore int
	awayScore int
}

// NewLedger rebuilds a ledger from persisted events, typically when a
// scorekeeper reopens an in-progress game.
func NewLedger(g game.Game, events []game.Event) *Ledger {
	l := &Ledger{
		gameID:     g.ID,
		homeTeamID: g.HomeTeamID,
		awayTeamID: g.AwayTeamID,
		events:     append([]game.Event(nil), events...),
		ejected:    make(map[string]struct{}),
		finalized:  g.Completed(),
		endedInOT:  g.EndedInOT,
	}
	l.recount()

	return l
}

func (l *Ledger) GameID() string { return l.gameID }

// Scores returns the derived home and away goal totals.
func (l *Ledger) Scores() (home, away int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.homeScore, l.awayScore
}

func (l *Ledger) Finalized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.finalized
}

// EndedInOT returns the overtime flag settled at Finalize, so a caller
// retrying a failed final save does not have to resubmit it.
func (l *Ledger) EndedInOT() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.endedInOT
}

// Events returns a copy of the scoresheet in display order: overtime
// above regulation, and within a period the most recent entry first.
func (l *Ledger) Events() []game.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := append([]game.Event(nil), l.events...)
	game.SortForDisplay(out)

	return out
}

func (l *Ledger) EventByID(eventID string) (game.Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.events {
		if e.ID == eventID {
			return e, true
		}
	}
	return game.Event{}, false
}

// GoalsBy counts goal events credited to one player.
func (l *Ledger) GoalsBy(playerID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.goalsBy(playerID)
}

func (l *Ledger) IsEjected(playerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.ejected[playerID]
	return ok
}

// MarkEjected records an ejection so later penalty entries for the same
// player are refused up front.
func (l *Ledger) MarkEjected(playerID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ejected[playerID] = struct{}{}
}

// CheckGoal rules on a prospective goal without recording anything. The
// ruling is advisory: RecordGoal appends regardless of it, so strict
// consoles block on the ruling while override consoles go past the cap.
func (l *Ledger) CheckGoal(teamID, playerID string, skillRating int) (GoalRuling, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if teamID != l.homeTeamID && teamID != l.awayTeamID {
		return GoalRuling{}, fmt.Errorf("%w: team %s is not playing in this game", ErrInvalidEvent, teamID)
	}

	return l.checkGoalLocked(teamID, playerID, skillRating), nil
}

func (l *Ledger) checkGoalLocked(teamID, playerID string, skillRating int) GoalRuling {
	teamScore, opponentScore := l.homeScore, l.awayScore
	if teamID == l.awayTeamID {
		teamScore, opponentScore = l.awayScore, l.homeScore
	}

	return CheckGoalLimit(GoalAttempt{
		GoalsScored:   l.goalsBy(playerID),
		SkillRating:   skillRating,
		TeamScore:     teamScore,
		OpponentScore: opponentScore,
	})
}

// RecordGoal appends the goal and recounts. The cap ruling is computed
// at the moment of the append and returned, but it never blocks the
// recording; whether to honor it is the caller's call.
func (l *Ledger) RecordGoal(e game.Event, skillRating int) (GoalRuling, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized {
		return GoalRuling{}, ErrLedgerFinalized
	}
	if err := l.checkEvent(e, game.EventGoal); err != nil {
		return GoalRuling{}, err
	}

	ruling := l.checkGoalLocked(e.TeamID, e.PlayerID, skillRating)

	l.events = append(l.events, e)
	l.recount()

	return ruling, nil
}

// RecordPenalty appends a penalty entry. A player already ejected is
// refused here before any escalation rule runs.
func (l *Ledger) RecordPenalty(e game.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized {
		return ErrLedgerFinalized
	}
	if err := l.checkEvent(e, game.EventPenalty); err != nil {
		return err
	}
	if _, ok := l.ejected[e.PlayerID]; ok {
		return fmt.Errorf("%w: %s", ErrPlayerEjected, e.PlayerID)
	}

	l.events = append(l.events, e)
	l.recount()

	return nil
}

// PenaltiesBy counts penalty events charged to one player.
func (l *Ledger) PenaltiesBy(playerID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, e := range l.events {
		if e.Type == game.EventPenalty && e.PlayerID == playerID {
			count++
		}
	}
	return count
}

// EditEvent replaces the stored event that shares the incoming id. The
// id is stable across edits; everything else is taken from the
// replacement, then scores and goal counts are recounted from scratch.
func (l *Ledger) EditEvent(e game.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized {
		return ErrLedgerFinalized
	}
	if e.ID == "" {
		return fmt.Errorf("%w: missing event id", ErrInvalidEvent)
	}
	if err := l.checkEvent(e, e.Type); err != nil {
		return err
	}

	for i := range l.events {
		if l.events[i].ID == e.ID {
			l.events[i] = e
			l.recount()
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrEventNotFound, e.ID)
}

// DeleteEvent removes an entry by id and recounts.
func (l *Ledger) DeleteEvent(eventID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized {
		return ErrLedgerFinalized
	}

	for i := range l.events {
		if l.events[i].ID == eventID {
			l.events = append(l.events[:i], l.events[i+1:]...)
			l.recount()
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
}

// Finalize freezes the ledger and settles the overtime flag: any goal in
// an overtime or shootout period forces endedInOT regardless of what the
// scorekeeper submitted. A tie with no overtime goal keeps the submitted
// flag.
func (l *Ledger) Finalize(endedInOT bool) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized {
		return false, ErrLedgerFinalized
	}

	for _, e := range l.events {
		if e.IsGoal() && e.IsOvertime() {
			endedInOT = true
			break
		}
	}

	l.finalized = true
	l.endedInOT = endedInOT
	return endedInOT, nil
}

func (l *Ledger) checkEvent(e game.Event, wantType string) error {
	if e.GameID != l.gameID {
		return fmt.Errorf("%w: event belongs to game %s", ErrInvalidEvent, e.GameID)
	}
	if e.Type != wantType {
		return fmt.Errorf("%w: expected %s event", ErrInvalidEvent, wantType)
	}
	if e.TeamID != l.homeTeamID && e.TeamID != l.awayTeamID {
		return fmt.Errorf("%w: team %s is not playing in this game", ErrInvalidEvent, e.TeamID)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	return nil
}

func (l *Ledger) goalsBy(playerID string) int {
	count := 0
	for _, e := range l.events {
		if e.IsGoal() && e.PlayerID == playerID {
			count++
		}
	}
	return count
}

// recount rebuilds both team totals from the event list. Callers hold
// the mutex.
func (l *Ledger) recount() {
	home, away := 0, 0
	for _, e := range l.events {
		if !e.IsGoal() {
			continue
		}
		switch e.TeamID {
		case l.homeTeamID:
			home++
		case l.awayTeamID:
			away++
		}
	}
	l.homeScore, l.awayScore = home, away
}
