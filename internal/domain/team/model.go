package team

import "fmt"

// Team is a side registered in one tournament.
type Team struct {
	ID           string
	TournamentID string
	Name         string
	Short        string
	// Seed orders knockout draws; 1 is the strongest. Zero means unseeded.
	Seed int
	// Unavailable lists calendar days the team cannot play.
	Unavailable []string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.TournamentID == "" {
		return fmt.Errorf("team tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
