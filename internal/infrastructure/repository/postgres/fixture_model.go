package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	PublicID        string         `db:"public_id"`
	TournamentID    string         `db:"tournament_public_id"`
	MatchID         string         `db:"match_public_id"`
	HomeSlot        string         `db:"home_slot"`
	HomeTeamID      string         `db:"home_team_public_id"`
	AwaySlot        string         `db:"away_slot"`
	AwayTeamID      string         `db:"away_team_public_id"`
	HomeSource      sql.NullString `db:"home_source"`
	AwaySource      sql.NullString `db:"away_source"`
	Round           int            `db:"round"`
	MatchNumber     int            `db:"match_number"`
	Stage           string         `db:"stage"`
	Group           string         `db:"group_label"`
	BracketPosition int            `db:"bracket_position"`
	IsPlayoff       bool           `db:"is_playoff"`
	ScheduledDate   sql.NullTime   `db:"scheduled_date"`
	ScheduledTime   string         `db:"scheduled_time"`
	VenueID         string         `db:"venue_public_id"`
	Degraded        bool           `db:"degraded"`
	ResultApplied   bool           `db:"result_applied"`
}

type fixtureWriteModel struct {
	fixtureTableModel
	UpdatedAt time.Time `db:"updated_at"`
}

type sourceRecord struct {
	Kind        string `json:"kind"`
	Group       string `json:"group,omitempty"`
	Position    int    `json:"position,omitempty"`
	MatchNumber int    `json:"match_number,omitempty"`
}
