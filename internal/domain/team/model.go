package team

import "fmt"

// Team is one club in the recreational league.
type Team struct {
	ID       string
	Name     string
	Short    string
	Division string
	HomeRink string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
