package schedule

import "fmt"

// Matchup pairs two teams for one game.
type Matchup struct {
	HomeTeamID string
	AwayTeamID string
}

// RoundRobin builds matchups with the circle method: the first team
// stays fixed while the rest rotate, giving n-1 rounds of n/2 games.
// Home and away alternate so no team stacks up home dates. An odd team
// count is rejected rather than padded with byes.
func RoundRobin(teamIDs []string) ([]Matchup, error) {
	n := len(teamIDs)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 teams to build a schedule")
	}
	if n%2 != 0 {
		return nil, fmt.Errorf("need an even number of teams for round-robin scheduling")
	}

	teams := append([]string(nil), teamIDs...)
	matchups := make([]Matchup, 0, (n-1)*n/2)

	for round := 0; round < n-1; round++ {
		for game := 0; game < n/2; game++ {
			home := teams[game]
			away := teams[n-1-game]

			if (round+game)%2 == 0 {
				matchups = append(matchups, Matchup{HomeTeamID: home, AwayTeamID: away})
			} else {
				matchups = append(matchups, Matchup{HomeTeamID: away, AwayTeamID: home})
			}
		}

		// Rotate: last team moves to position 1, first team stays put.
		last := teams[n-1]
		copy(teams[2:], teams[1:n-1])
		teams[1] = last
	}

	return matchups, nil
}

// Cycle repeats the base matchups until total games are filled, flipping
// home and away on every other pass through the list.
func Cycle(base []Matchup, total int) []Matchup {
	if len(base) == 0 || total <= 0 {
		return nil
	}

	out := make([]Matchup, 0, total)
	for i := 0; len(out) < total; i++ {
		m := base[i%len(base)]
		if (i/len(base))%2 == 1 {
			m = Matchup{HomeTeamID: m.AwayTeamID, AwayTeamID: m.HomeTeamID}
		}
		out = append(out, m)
	}

	return out
}
