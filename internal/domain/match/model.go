package match

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

func NormalizeStatus(value string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsFinal reports whether the match will not change state again.
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

type Result string

const (
	ResultHomeWin  Result = "home_win"
	ResultAwayWin  Result = "away_win"
	ResultTie      Result = "tie"
	ResultNoResult Result = "no_result"
)

func NormalizeResult(value string) Result {
	return Result(strings.ToLower(strings.TrimSpace(value)))
}

func (r Result) IsValid() bool {
	switch r {
	case ResultHomeWin, ResultAwayWin, ResultTie, ResultNoResult:
		return true
	default:
		return false
	}
}

var (
	ErrNotCompleted  = crerr.New("match is not completed")
	ErrMissingTeam   = crerr.New("match is missing a team")
	ErrUnknownResult = crerr.New("unknown match result")
)

// Match is one game between two teams with its scorecard summary.
type Match struct {
	ID           string
	TournamentID string
	HomeTeamID   string
	AwayTeamID   string
	Status       Status
	// HomeScore and AwayScore use "runs/wickets (overs)" notation.
	HomeScore    string
	AwayScore    string
	Result       Result
	ScheduledAt  *time.Time
	VenueID      string
	CompletedAt  *time.Time
	Performances []playerstats.Performance
}

// ValidateCompleted checks the match can feed standings and progression.
func (m Match) ValidateCompleted() error {
	if m.Status != StatusCompleted {
		return crerr.Wrapf(ErrNotCompleted, "match %s status %s", m.ID, m.Status)
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return crerr.Wrapf(ErrMissingTeam, "match %s", m.ID)
	}
	if m.Result != "" && !m.Result.IsValid() {
		return crerr.Wrapf(ErrUnknownResult, "match %s result %q", m.ID, m.Result)
	}
	return nil
}

// Decide returns the recorded result, or derives it by comparing runs when
// no result was recorded.
func (m Match) Decide() (Result, error) {
	if m.Result != "" {
		if !m.Result.IsValid() {
			return "", crerr.Wrapf(ErrUnknownResult, "%q", m.Result)
		}
		return m.Result, nil
	}

	home, err := cricket.ParseScore(m.HomeScore)
	if err != nil {
		return "", crerr.Wrapf(err, "home score of match %s", m.ID)
	}
	away, err := cricket.ParseScore(m.AwayScore)
	if err != nil {
		return "", crerr.Wrapf(err, "away score of match %s", m.ID)
	}

	switch {
	case home.Runs > away.Runs:
		return ResultHomeWin, nil
	case away.Runs > home.Runs:
		return ResultAwayWin, nil
	default:
		return ResultTie, nil
	}
}

// Scores parses both innings. ok is false when either side has no score.
func (m Match) Scores() (home, away cricket.Score, ok bool, err error) {
	home, err = cricket.ParseScore(m.HomeScore)
	if crerr.Is(err, cricket.ErrEmptyScore) {
		return cricket.Score{}, cricket.Score{}, false, nil
	}
	if err != nil {
		return cricket.Score{}, cricket.Score{}, false, err
	}
	away, err = cricket.ParseScore(m.AwayScore)
	if crerr.Is(err, cricket.ErrEmptyScore) {
		return cricket.Score{}, cricket.Score{}, false, nil
	}
	if err != nil {
		return cricket.Score{}, cricket.Score{}, false, err
	}
	return home, away, true, nil
}
