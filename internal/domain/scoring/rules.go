package scoring

import "fmt"

const (
	// Players rated 9 or above are capped at 2 goals a game, everyone
	// else at 3.
	eliteSkillRating = 9
	eliteGoalLimit   = 2
	defaultGoalLimit = 3

	// MercyGoalGap is the deficit at which goal caps stop applying for
	// the trailing team.
	MercyGoalGap = 4
)

const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// GoalAttempt carries everything the cap rule needs at the moment a goal
// is submitted. Scores are the attempting player's team versus the
// opponent, as derived from the ledger right before the attempt.
type GoalAttempt struct {
	GoalsScored   int
	SkillRating   int
	TeamScore     int
	OpponentScore int
}

// GoalRuling is the outcome of a cap check.
type GoalRuling struct {
	Allowed     bool
	Severity    string
	Message     string
	MercyRule   bool
	GoalsScored int
	Limit       int
}

// GoalLimitFor returns the per-game cap for a skill rating.
func GoalLimitFor(skillRating int) int {
	if skillRating >= eliteSkillRating {
		return eliteGoalLimit
	}
	return defaultGoalLimit
}

// CheckGoalLimit applies the cap and mercy rules to one attempt. The cap
// is waived entirely while the attempting team trails by MercyGoalGap or
// more.
func CheckGoalLimit(attempt GoalAttempt) GoalRuling {
	limit := GoalLimitFor(attempt.SkillRating)

	if attempt.OpponentScore-attempt.TeamScore >= MercyGoalGap {
		return GoalRuling{
			Allowed:     true,
			Severity:    SeveritySuccess,
			Message:     "Goal allowed (Mercy Rule active - no goal limits)",
			MercyRule:   true,
			GoalsScored: attempt.GoalsScored,
			Limit:       limit,
		}
	}

	if attempt.GoalsScored >= limit {
		return GoalRuling{
			Severity:    SeverityError,
			Message:     fmt.Sprintf("Player has reached goal limit (%d/%d goals)", attempt.GoalsScored, limit),
			GoalsScored: attempt.GoalsScored,
			Limit:       limit,
		}
	}

	if attempt.GoalsScored == limit-1 {
		return GoalRuling{
			Allowed:     true,
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("Warning: This is player's final goal (%d/%d)", attempt.GoalsScored+1, limit),
			GoalsScored: attempt.GoalsScored,
			Limit:       limit,
		}
	}

	return GoalRuling{
		Allowed:     true,
		Severity:    SeveritySuccess,
		Message:     fmt.Sprintf("Goal allowed (%d/%d goals)", attempt.GoalsScored+1, limit),
		GoalsScored: attempt.GoalsScored,
		Limit:       limit,
	}
}
