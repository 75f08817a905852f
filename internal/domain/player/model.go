package player

import "fmt"

// Position represents hockey position categories.
type Position string

const (
	PositionCenter    Position = "C"
	PositionLeftWing  Position = "LW"
	PositionRightWing Position = "RW"
	PositionDefense   Position = "D"
	PositionGoalie    Position = "G"
)

var AllPositions = map[Position]struct{}{
	PositionCenter:    {},
	PositionLeftWing:  {},
	PositionRightWing: {},
	PositionDefense:   {},
	PositionGoalie:    {},
}

// Player is a rostered skater or goalie. SkillRating runs 1 to 10 and
// drives the per-game goal cap for elite players.
type Player struct {
	ID           string
	TeamID       string
	Name         string
	Position     Position
	JerseyNumber int
	SkillRating  int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.SkillRating < 1 || p.SkillRating > 10 {
		return fmt.Errorf("player skill rating must be between 1 and 10")
	}

	return nil
}
