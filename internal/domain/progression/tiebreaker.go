package progression

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
)

const (
	TiePolicyHomeTeam = "home_team"
	TiePolicyReject   = "reject"
)

var (
	ErrUnresolvedTie     = crerr.New("knockout match ended level and needs a super over result")
	ErrUnknownTiePolicy  = crerr.New("unknown knockout tie policy")
	ErrSlotAlreadyFilled = crerr.New("bracket slot already holds a different team")
)

// TieBreaker picks a winner for a knockout match that ended level or
// produced no result.
type TieBreaker interface {
	BreakTie(m match.Match, f fixture.Fixture) (homeWins bool, err error)
}

// HomeTeamTieBreaker advances the home side.
type HomeTeamTieBreaker struct{}

func (HomeTeamTieBreaker) BreakTie(match.Match, fixture.Fixture) (bool, error) {
	return true, nil
}

// RejectTieBreaker refuses to guess; the result must be re-recorded as a win.
type RejectTieBreaker struct{}

func (RejectTieBreaker) BreakTie(m match.Match, _ fixture.Fixture) (bool, error) {
	return false, crerr.Wrapf(ErrUnresolvedTie, "match %s", m.ID)
}

func TieBreakerFor(policy string) (TieBreaker, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", TiePolicyHomeTeam:
		return HomeTeamTieBreaker{}, nil
	case TiePolicyReject:
		return RejectTieBreaker{}, nil
	default:
		return nil, crerr.Wrapf(ErrUnknownTiePolicy, "%q", policy)
	}
}

// Decide returns the winner and loser of a completed knockout match.
func Decide(m match.Match, f fixture.Fixture, tb TieBreaker) (winner, loser string, err error) {
	if err := m.ValidateCompleted(); err != nil {
		return "", "", err
	}
	result, err := m.Decide()
	if err != nil {
		return "", "", err
	}

	switch result {
	case match.ResultHomeWin:
		return m.HomeTeamID, m.AwayTeamID, nil
	case match.ResultAwayWin:
		return m.AwayTeamID, m.HomeTeamID, nil
	}

	if tb == nil {
		tb = HomeTeamTieBreaker{}
	}
	homeWins, err := tb.BreakTie(m, f)
	if err != nil {
		return "", "", err
	}
	if homeWins {
		return m.HomeTeamID, m.AwayTeamID, nil
	}
	return m.AwayTeamID, m.HomeTeamID, nil
}
