package postgres

import "time"

type standingTableModel struct {
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	TeamID       string    `db:"team_public_id"`
	Group        string    `db:"group_label"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Lost         int       `db:"lost"`
	Tied         int       `db:"tied"`
	NoResult     int       `db:"no_result"`
	Points       int       `db:"points"`
	RunsFor      int       `db:"runs_for"`
	BallsFor     int       `db:"balls_for"`
	RunsAgainst  int       `db:"runs_against"`
	BallsAgainst int       `db:"balls_against"`
	NetRunRate   float64   `db:"net_run_rate"`
	Position     int       `db:"position"`
	Qualified    bool      `db:"qualified"`
	Eliminated   bool      `db:"eliminated"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type playerStatsTableModel struct {
	TournamentID       string    `db:"tournament_public_id"`
	PlayerID           string    `db:"player_public_id"`
	TeamID             string    `db:"team_public_id"`
	Matches            int       `db:"matches"`
	Innings            int       `db:"innings"`
	NotOuts            int       `db:"not_outs"`
	Runs               int       `db:"runs"`
	BallsFaced         int       `db:"balls_faced"`
	HighestScore       int       `db:"highest_score"`
	Fours              int       `db:"fours"`
	Sixes              int       `db:"sixes"`
	Fifties            int       `db:"fifties"`
	Hundreds           int       `db:"hundreds"`
	BallsBowled        int       `db:"balls_bowled"`
	RunsConceded       int       `db:"runs_conceded"`
	Wickets            int       `db:"wickets"`
	Maidens            int       `db:"maidens"`
	BestBowlingWickets int       `db:"best_bowling_wickets"`
	BestBowlingRuns    int       `db:"best_bowling_runs"`
	Catches            int       `db:"catches"`
	Stumpings          int       `db:"stumpings"`
	RunOuts            int       `db:"run_outs"`
	BattingAverage     float64   `db:"batting_average"`
	StrikeRate         float64   `db:"strike_rate"`
	Economy            float64   `db:"economy"`
	BowlingAverage     float64   `db:"bowling_average"`
	UpdatedAt          time.Time `db:"updated_at"`
}
