package scoring

// Standings points per completed game: a win is worth 2 whether it came
// in regulation or overtime, an overtime loss 1, a tie 1, a regulation
// loss 0.
const (
	PointsWin            = 2
	PointsOvertimeLoss   = 1
	PointsTie            = 1
	PointsRegulationLoss = 0
)

// MatchPoints returns the home and away standings points for a final
// score.
func MatchPoints(homeScore, awayScore int, endedInOT bool) (home, away int) {
	switch {
	case homeScore > awayScore:
		home = PointsWin
		away = PointsRegulationLoss
		if endedInOT {
			away = PointsOvertimeLoss
		}
	case awayScore > homeScore:
		away = PointsWin
		home = PointsRegulationLoss
		if endedInOT {
			home = PointsOvertimeLoss
		}
	default:
		home = PointsTie
		away = PointsTie
	}

	return home, away
}
