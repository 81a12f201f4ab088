package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	PublicID     string       `db:"public_id"`
	TournamentID string       `db:"tournament_public_id"`
	HomeTeamID   string       `db:"home_team_public_id"`
	AwayTeamID   string       `db:"away_team_public_id"`
	Status       string       `db:"status"`
	HomeScore    string       `db:"home_score"`
	AwayScore    string       `db:"away_score"`
	Result       string       `db:"result"`
	VenueID      string       `db:"venue_public_id"`
	ScheduledAt  sql.NullTime `db:"scheduled_at"`
	CompletedAt  sql.NullTime `db:"completed_at"`
	Performances string       `db:"performances"`
}

type matchWriteModel struct {
	matchTableModel
	UpdatedAt time.Time `db:"updated_at"`
}

type performanceRecord struct {
	PlayerID     string `json:"player_id"`
	TeamID       string `json:"team_id"`
	Batted       bool   `json:"batted"`
	Runs         int    `json:"runs"`
	BallsFaced   int    `json:"balls_faced"`
	Fours        int    `json:"fours"`
	Sixes        int    `json:"sixes"`
	NotOut       bool   `json:"not_out"`
	OversBowled  string `json:"overs_bowled"`
	RunsConceded int    `json:"runs_conceded"`
	Wickets      int    `json:"wickets"`
	Maidens      int    `json:"maidens"`
	Catches      int    `json:"catches"`
	Stumpings    int    `json:"stumpings"`
	RunOuts      int    `json:"run_outs"`
}
