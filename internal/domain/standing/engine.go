package standing

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
)

var ErrTeamNotInMatch = crerr.New("team did not play in match")

// Outcome is a match result seen from one team's side.
type Outcome uint8

const (
	OutcomeWin Outcome = iota + 1
	OutcomeLoss
	OutcomeTie
	OutcomeNoResult
)

// OutcomeFor classifies the match for the given team.
func OutcomeFor(m match.Match, teamID string) (Outcome, error) {
	if teamID != m.HomeTeamID && teamID != m.AwayTeamID {
		return 0, crerr.Wrapf(ErrTeamNotInMatch, "team %s match %s", teamID, m.ID)
	}
	result, err := m.Decide()
	if err != nil {
		return 0, err
	}

	home := teamID == m.HomeTeamID
	switch result {
	case match.ResultTie:
		return OutcomeTie, nil
	case match.ResultNoResult:
		return OutcomeNoResult, nil
	case match.ResultHomeWin:
		if home {
			return OutcomeWin, nil
		}
		return OutcomeLoss, nil
	case match.ResultAwayWin:
		if home {
			return OutcomeLoss, nil
		}
		return OutcomeWin, nil
	default:
		return 0, crerr.Wrapf(match.ErrUnknownResult, "%q", result)
	}
}

// Apply folds a completed match into one team's standing. A no result adds
// points but leaves runs and overs untouched so net run rate is unaffected.
func Apply(s Standing, m match.Match, points PointsTable) (Standing, error) {
	if err := m.ValidateCompleted(); err != nil {
		return s, err
	}
	outcome, err := OutcomeFor(m, s.TeamID)
	if err != nil {
		return s, err
	}

	s.Played++
	switch outcome {
	case OutcomeWin:
		s.Won++
		s.Points += points.Win
	case OutcomeLoss:
		s.Lost++
		s.Points += points.Loss
	case OutcomeTie:
		s.Tied++
		s.Points += points.Tie
	case OutcomeNoResult:
		s.NoResult++
		s.Points += points.NoResult
		return s, nil
	}

	home, away, ok, err := m.Scores()
	if err != nil {
		return s, crerr.Wrapf(err, "match %s", m.ID)
	}
	if !ok {
		return s, nil
	}

	own, opponent := home, away
	if s.TeamID == m.AwayTeamID {
		own, opponent = away, home
	}
	s.RunsFor += own.Runs
	s.OversFor = s.OversFor.Add(own.Overs)
	s.RunsAgainst += opponent.Runs
	s.OversAgainst = s.OversAgainst.Add(opponent.Overs)
	s.NetRunRate = cricket.NetRunRate(s.RunsFor, s.OversFor, s.RunsAgainst, s.OversAgainst)
	return s, nil
}
