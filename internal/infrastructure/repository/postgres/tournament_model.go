package postgres

import (
	"time"

	"github.com/lib/pq"
)

type tournamentTableModel struct {
	PublicID           string         `db:"public_id"`
	Name               string         `db:"name"`
	Sport              string         `db:"sport"`
	Format             string         `db:"format"`
	DoubleRound        bool           `db:"double_round"`
	Status             string         `db:"status"`
	StartDate          time.Time      `db:"start_date"`
	EndDate            time.Time      `db:"end_date"`
	VenueIDs           pq.StringArray `db:"venue_public_ids"`
	PointsTable        string         `db:"points_table"`
	QualificationSpots int            `db:"qualification_spots"`
	KnockoutTiePolicy  string         `db:"knockout_tie_policy"`
}

type pointsTableRecord struct {
	Win      int `json:"win"`
	Loss     int `json:"loss"`
	Tie      int `json:"tie"`
	NoResult int `json:"no_result"`
}

type teamTableModel struct {
	PublicID     string         `db:"public_id"`
	TournamentID string         `db:"tournament_public_id"`
	Name         string         `db:"name"`
	Short        string         `db:"short_name"`
	Seed         int            `db:"seed"`
	Unavailable  pq.StringArray `db:"unavailable_dates"`
}

type venueTableModel struct {
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	City        string         `db:"city"`
	Capacity    int            `db:"capacity"`
	Unavailable pq.StringArray `db:"unavailable_dates"`
}
