package schedule

import "testing"

func TestRoundRobinCoversEveryPairing(t *testing.T) {
	t.Parallel()

	teams := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	matchups, err := RoundRobin(teams)
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}

	// n-1 rounds of n/2 games.
	if len(matchups) != 15 {
		t.Fatalf("matchups = %d, want 15", len(matchups))
	}

	seen := make(map[[2]string]int)
	perTeam := make(map[string]int)
	for _, m := range matchups {
		if m.HomeTeamID == m.AwayTeamID {
			t.Fatalf("team paired with itself: %+v", m)
		}
		pair := [2]string{m.HomeTeamID, m.AwayTeamID}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		seen[pair]++
		perTeam[m.HomeTeamID]++
		perTeam[m.AwayTeamID]++
	}

	if len(seen) != 15 {
		t.Fatalf("distinct pairings = %d, want 15", len(seen))
	}
	for pair, count := range seen {
		if count != 1 {
			t.Fatalf("pairing %v appears %d times", pair, count)
		}
	}
	for team, count := range perTeam {
		if count != 5 {
			t.Fatalf("team %s plays %d games, want 5", team, count)
		}
	}
}

func TestRoundRobinFourTeamRounds(t *testing.T) {
	t.Parallel()

	matchups, err := RoundRobin([]string{"t1", "t2", "t3", "t4"})
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}

	want := []Matchup{
		{HomeTeamID: "t1", AwayTeamID: "t4"},
		{HomeTeamID: "t3", AwayTeamID: "t2"},
		{HomeTeamID: "t3", AwayTeamID: "t1"},
		{HomeTeamID: "t4", AwayTeamID: "t2"},
		{HomeTeamID: "t1", AwayTeamID: "t2"},
		{HomeTeamID: "t4", AwayTeamID: "t3"},
	}
	if len(matchups) != len(want) {
		t.Fatalf("matchups = %d, want %d", len(matchups), len(want))
	}
	for i, m := range want {
		if matchups[i] != m {
			t.Fatalf("matchups[%d] = %+v, want %+v", i, matchups[i], m)
		}
	}
}

func TestRoundRobinRejectsOddTeamCounts(t *testing.T) {
	t.Parallel()

	if _, err := RoundRobin([]string{"t1", "t2", "t3"}); err == nil {
		t.Fatalf("expected error for odd team count")
	}
	if _, err := RoundRobin([]string{"t1"}); err == nil {
		t.Fatalf("expected error for a single team")
	}
}

func TestCycleFlipsHomeAwayOnSecondPass(t *testing.T) {
	t.Parallel()

	base := []Matchup{
		{HomeTeamID: "t1", AwayTeamID: "t2"},
		{HomeTeamID: "t3", AwayTeamID: "t4"},
	}

	out := Cycle(base, 5)
	if len(out) != 5 {
		t.Fatalf("cycled matchups = %d, want 5", len(out))
	}
	if out[2].HomeTeamID != "t2" || out[2].AwayTeamID != "t1" {
		t.Fatalf("second pass should flip sides, got %+v", out[2])
	}
	if out[4].HomeTeamID != "t1" {
		t.Fatalf("third pass should flip back, got %+v", out[4])
	}
}
