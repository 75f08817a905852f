package playerstats

// SeasonStats accumulates a player's season line. Points is always
// goals plus assists.
type SeasonStats struct {
	PlayerID       string
	GamesPlayed    int
	Goals          int
	Assists        int
	Points         int
	PenaltyMinutes int
}

// GameLine is what one finalized game contributed to a player.
type GameLine struct {
	PlayerID       string
	Goals          int
	Assists        int
	PenaltyMinutes int
}

// Add folds one game line into the season totals.
func (s *SeasonStats) Add(line GameLine) {
	s.GamesPlayed++
	s.Goals += line.Goals
	s.Assists += line.Assists
	s.PenaltyMinutes += line.PenaltyMinutes
	s.Points = s.Goals + s.Assists
}
