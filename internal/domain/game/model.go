package game

import (
	"fmt"
	"sort"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	TypeRegularSeason = "REGULAR_SEASON"
	TypePlayoff       = "PLAYOFF"
)

const (
	EventGoal    = "goal"
	EventPenalty = "penalty"
)

// Periods 1 to 3 are regulation, 4 is overtime, 5 is a shootout.
const (
	PeriodOvertime = 4
	PeriodShootout = 5
)

// The league hands out a fixed menu of penalty lengths.
var validPenaltyMinutes = map[int]struct{}{
	2: {}, 3: {}, 4: {}, 6: {}, 10: {},
}

// Game is one scheduled or played match between two teams.
// Scores are derived from the event list and rewritten on every change,
// never adjusted incrementally.
type Game struct {
	ID             string
	HomeTeamID     string
	AwayTeamID     string
	Week           int
	Rink           string
	GameType       string
	ScheduledAt    time.Time
	Status         string
	HomeScore      int
	AwayScore      int
	EndedInOT      bool
	HomeTeamPoints int
	AwayTeamPoints int
	CompletedAt    *time.Time
}

func (g Game) Completed() bool {
	return g.Status == StatusCompleted
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.HomeTeamID == "" || g.AwayTeamID == "" {
		return fmt.Errorf("game requires both team ids")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game teams must differ")
	}
	switch g.Status {
	case StatusScheduled, StatusInProgress, StatusCompleted:
	default:
		return fmt.Errorf("invalid game status: %s", g.Status)
	}

	return nil
}

// Event is a single scoresheet entry, either a goal or a penalty.
type Event struct {
	ID              string
	GameID          string
	TeamID          string
	PlayerID        string
	Type            string
	Period          int
	TimeMinutes     int
	TimeSeconds     int
	Description     string
	Assist1PlayerID string
	Assist2PlayerID string
	PenaltyMinutes  int
}

func (e Event) IsGoal() bool {
	return e.Type == EventGoal
}

func (e Event) IsOvertime() bool {
	return e.Period >= PeriodOvertime
}

func (e Event) Validate() error {
	if e.GameID == "" {
		return fmt.Errorf("event game id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("event team id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("event player id is required")
	}
	switch e.Type {
	case EventGoal, EventPenalty:
	default:
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Period < 1 || e.Period > PeriodShootout {
		return fmt.Errorf("event period must be between 1 and %d", PeriodShootout)
	}
	if e.TimeMinutes < 0 || e.TimeMinutes > 59 || e.TimeSeconds < 0 || e.TimeSeconds > 59 {
		return fmt.Errorf("event clock time is out of range")
	}
	if e.Type == EventPenalty {
		if _, ok := validPenaltyMinutes[e.PenaltyMinutes]; !ok {
			return fmt.Errorf("penalty minutes must be one of 2, 3, 4, 6 or 10")
		}
	}

	return nil
}

// MoreRecent orders events for display: later periods first, and inside a
// period the lower remaining clock time first since rec league clocks count
// down.
func MoreRecent(a, b Event) bool {
	if a.Period != b.Period {
		return a.Period > b.Period
	}
	return a.TimeMinutes*60+a.TimeSeconds < b.TimeMinutes*60+b.TimeSeconds
}

// SortForDisplay orders a scoresheet in place, most recent entry first.
func SortForDisplay(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return MoreRecent(events[i], events[j])
	})
}
