package standing

import (
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
)

// PointsTable maps match outcomes to table points.
type PointsTable struct {
	Win      int
	Loss     int
	Tie      int
	NoResult int
}

func DefaultPointsTable() PointsTable {
	return PointsTable{Win: 2, Loss: 0, Tie: 1, NoResult: 1}
}

// Standing is one team's table row inside a tournament, or inside one group
// of a group-stage tournament.
type Standing struct {
	ID           string
	TournamentID string
	TeamID       string
	Group        string

	Played   int
	Won      int
	Lost     int
	Tied     int
	NoResult int
	Points   int

	RunsFor      int
	OversFor     cricket.Overs
	RunsAgainst  int
	OversAgainst cricket.Overs
	NetRunRate   float64

	Position   int
	Qualified  bool
	Eliminated bool
	UpdatedAt  time.Time
}

func New(tournamentID, teamID, group string) Standing {
	return Standing{TournamentID: tournamentID, TeamID: teamID, Group: group}
}

// Reset clears every tallied value, keeping identity and group.
func (s Standing) Reset() Standing {
	return Standing{
		ID:           s.ID,
		TournamentID: s.TournamentID,
		TeamID:       s.TeamID,
		Group:        s.Group,
		UpdatedAt:    s.UpdatedAt,
	}
}
