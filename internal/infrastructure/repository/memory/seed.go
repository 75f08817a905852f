package memory

import (
	"time"

	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/domain/team"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "ice-hawks", Name: "Ice Hawks", Short: "HWK", Division: "North", HomeRink: "Rink A"},
		{ID: "polar-kings", Name: "Polar Kings", Short: "PLK", Division: "North", HomeRink: "Rink A"},
		{ID: "river-rats", Name: "River Rats", Short: "RVR", Division: "South", HomeRink: "Rink B"},
		{ID: "steel-blades", Name: "Steel Blades", Short: "STB", Division: "South", HomeRink: "Rink B"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "hwk-09", TeamID: "ice-hawks", Name: "Marcus Lindberg", Position: player.PositionCenter, JerseyNumber: 9, SkillRating: 9},
		{ID: "hwk-17", TeamID: "ice-hawks", Name: "Davey O'Rourke", Position: player.PositionLeftWing, JerseyNumber: 17, SkillRating: 6},
		{ID: "hwk-04", TeamID: "ice-hawks", Name: "Sam Tremblay", Position: player.PositionDefense, JerseyNumber: 4, SkillRating: 5},
		{ID: "hwk-31", TeamID: "ice-hawks", Name: "Pete Kowalski", Position: player.PositionGoalie, JerseyNumber: 31, SkillRating: 7},
		{ID: "plk-22", TeamID: "polar-kings", Name: "Janne Virtanen", Position: player.PositionCenter, JerseyNumber: 22, SkillRating: 10},
		{ID: "plk-11", TeamID: "polar-kings", Name: "Chris Delaney", Position: player.PositionRightWing, JerseyNumber: 11, SkillRating: 4},
		{ID: "plk-06", TeamID: "polar-kings", Name: "Tony Marchetti", Position: player.PositionDefense, JerseyNumber: 6, SkillRating: 5},
		{ID: "plk-30", TeamID: "polar-kings", Name: "Gord Simmons", Position: player.PositionGoalie, JerseyNumber: 30, SkillRating: 6},
		{ID: "rvr-91", TeamID: "river-rats", Name: "Alexei Fedorov", Position: player.PositionCenter, JerseyNumber: 91, SkillRating: 8},
		{ID: "rvr-13", TeamID: "river-rats", Name: "Benny Castillo", Position: player.PositionLeftWing, JerseyNumber: 13, SkillRating: 5},
		{ID: "rvr-02", TeamID: "river-rats", Name: "Hank Berger", Position: player.PositionDefense, JerseyNumber: 2, SkillRating: 3},
		{ID: "rvr-35", TeamID: "river-rats", Name: "Olek Nowak", Position: player.PositionGoalie, JerseyNumber: 35, SkillRating: 6},
		{ID: "stb-88", TeamID: "steel-blades", Name: "Ray Donahue", Position: player.PositionCenter, JerseyNumber: 88, SkillRating: 9},
		{ID: "stb-19", TeamID: "steel-blades", Name: "Mick Harmon", Position: player.PositionRightWing, JerseyNumber: 19, SkillRating: 5},
		{ID: "stb-07", TeamID: "steel-blades", Name: "Joey Price", Position: player.PositionDefense, JerseyNumber: 7, SkillRating: 4},
		{ID: "stb-29", TeamID: "steel-blades", Name: "Walt Jenkins", Position: player.PositionGoalie, JerseyNumber: 29, SkillRating: 5},
	}
}

func SeedGames() []game.Game {
	firstPuckDrop := time.Date(2026, time.September, 13, 19, 30, 0, 0, time.UTC)

	return []game.Game{
		{
			ID:          "wk1-hawks-kings",
			HomeTeamID:  "ice-hawks",
			AwayTeamID:  "polar-kings",
			Week:        1,
			Rink:        "Rink A",
			GameType:    game.TypeRegularSeason,
			ScheduledAt: firstPuckDrop,
			Status:      game.StatusScheduled,
		},
		{
			ID:          "wk1-rats-blades",
			HomeTeamID:  "river-rats",
			AwayTeamID:  "steel-blades",
			Week:        1,
			Rink:        "Rink B",
			GameType:    game.TypeRegularSeason,
			ScheduledAt: firstPuckDrop.Add(75 * time.Minute),
			Status:      game.StatusScheduled,
		},
	}
}
