package standings

import (
	"sort"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/scoring"
)

// Row is one team's line in the league table. Wins and Losses count
// regulation results only; overtime results land in their own columns.
type Row struct {
	Rank           int
	TeamID         string
	GamesPlayed    int
	Wins           int
	Losses         int
	Ties           int
	OvertimeWins   int
	OvertimeLosses int
	Points         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDiff       int
}

// Compute builds the league table from scratch on every call. Every team
// gets a row even before its first game; only completed games count, and
// games referencing a team outside the list are skipped. Results are
// never cached so an edited scoresheet is reflected immediately.
func Compute(teamIDs []string, games []game.Game) []Row {
	byTeam := make(map[string]*Row, len(teamIDs))
	rows := make([]Row, 0, len(teamIDs))
	for _, id := range teamIDs {
		byTeam[id] = &Row{TeamID: id}
	}

	for _, g := range games {
		if !g.Completed() {
			continue
		}

		home, okHome := byTeam[g.HomeTeamID]
		away, okAway := byTeam[g.AwayTeamID]
		if !okHome || !okAway {
			continue
		}

		home.GamesPlayed++
		away.GamesPlayed++
		home.GoalsFor += g.HomeScore
		home.GoalsAgainst += g.AwayScore
		away.GoalsFor += g.AwayScore
		away.GoalsAgainst += g.HomeScore

		tally(home, g.HomeScore, g.AwayScore, g.EndedInOT)
		tally(away, g.AwayScore, g.HomeScore, g.EndedInOT)
	}

	for _, id := range teamIDs {
		r := byTeam[id]
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		rows = append(rows, *r)
	}

	sortRows(rows)
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}

func tally(r *Row, scored, conceded int, endedInOT bool) {
	switch {
	case scored > conceded:
		r.Points += scoring.PointsWin
		if endedInOT {
			r.OvertimeWins++
		} else {
			r.Wins++
		}
	case scored < conceded:
		if endedInOT {
			r.OvertimeLosses++
			r.Points += scoring.PointsOvertimeLoss
		} else {
			r.Losses++
			r.Points += scoring.PointsRegulationLoss
		}
	default:
		r.Ties++
		r.Points += scoring.PointsTie
	}
}

// sortRows applies the league tiebreak order: points, then regulation
// wins, then fewest goals against, then most goals for.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GoalsAgainst != b.GoalsAgainst {
			return a.GoalsAgainst < b.GoalsAgainst
		}
		return a.GoalsFor > b.GoalsFor
	})
}
