package tournament

import (
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Tournament is one competition and the rules it is played under.
type Tournament struct {
	ID          string
	Name        string
	Sport       string
	Format      string
	DoubleRound bool
	Status      Status
	StartDate   time.Time
	EndDate     time.Time
	VenueIDs    []string
	Points      standing.PointsTable
	// QualificationSpots is how many table places advance; zero means four.
	QualificationSpots int
	// KnockoutTiePolicy is home_team or reject.
	KnockoutTiePolicy string
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("tournament end date is before start date")
	}

	return nil
}

// PointsTable falls back to the standard table when none is configured.
func (t Tournament) PointsTable() standing.PointsTable {
	if t.Points == (standing.PointsTable{}) {
		return standing.DefaultPointsTable()
	}
	return t.Points
}

// QualificationRule derives the table rule from the tournament settings.
func (t Tournament) QualificationRule() standing.QualificationRule {
	rule := standing.DefaultQualificationRule()
	if t.QualificationSpots > 0 {
		rule.Spots = t.QualificationSpots
	}
	rule.WinPoints = t.PointsTable().Win
	return rule
}
