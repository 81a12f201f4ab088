package progression

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
)

// Change is a fixture whose slot was filled.
type Change struct {
	Index   int
	Fixture fixture.Fixture
}

// AdvanceKnockout moves the winner (and, for page playoffs, the loser) of a
// completed knockout fixture into the slots that depend on it. It returns the
// updated fixture list and the fixtures that changed. The final, or any
// target slot already holding the same team, is a no-op.
func AdvanceKnockout(fixtures []fixture.Fixture, completed fixture.Fixture, m match.Match, tb TieBreaker) ([]fixture.Fixture, []Change, error) {
	out := make([]fixture.Fixture, len(fixtures))
	copy(out, fixtures)

	if completed.Stage.IsRoundRobin() {
		return out, nil, nil
	}

	winner, loser, err := Decide(m, completed, tb)
	if err != nil {
		return out, nil, err
	}

	changes := make([]Change, 0, 2)
	fill := func(index int, home bool, teamID string) error {
		target := out[index]
		current := target.Side(home)
		if id, ok := current.TeamID(); ok {
			if id == teamID {
				return nil
			}
			return crerr.Wrapf(ErrSlotAlreadyFilled, "match %d holds %s, cannot place %s", target.MatchNumber, id, teamID)
		}
		out[index] = target.WithSide(home, bracket.Assigned(teamID))
		changes = append(changes, Change{Index: index, Fixture: out[index]})
		return nil
	}

	// explicit sources first: page playoffs and anything else wired by match number.
	linked := false
	for i, f := range out {
		for _, home := range []bool{true, false} {
			src := f.HomeSource
			if !home {
				src = f.AwaySource
			}
			if src.MatchNumber != completed.MatchNumber {
				continue
			}
			switch src.Kind {
			case fixture.SourceMatchWinner:
				linked = true
				if err := fill(i, home, winner); err != nil {
					return fixtures, nil, err
				}
			case fixture.SourceMatchLoser:
				linked = true
				if err := fill(i, home, loser); err != nil {
					return fixtures, nil, err
				}
			}
		}
	}
	if linked || completed.IsPlayoff {
		return out, changes, nil
	}

	next, home := bracket.NextSlot(completed.BracketPosition)
	for i, f := range out {
		if f.IsPlayoff || f.Stage.IsRoundRobin() {
			continue
		}
		if f.Round != completed.Round+1 || f.BracketPosition != next {
			continue
		}
		if err := fill(i, home, winner); err != nil {
			return fixtures, nil, err
		}
		break
	}
	return out, changes, nil
}

// RoundRobinComplete reports whether every round-robin fixture has a final
// match status. Abandoned matches count as finished.
func RoundRobinComplete(fixtures []fixture.Fixture, statuses map[string]match.Status) bool {
	for _, f := range fixtures {
		if !f.Stage.IsRoundRobin() {
			continue
		}
		if !statuses[f.MatchID].IsFinal() {
			return false
		}
	}
	return true
}

// FillFromStandings resolves every slot sourced from a final ranking.
// ranked holds each group's ordered table; the league table uses the empty
// group label. Missing positions are left pending.
func FillFromStandings(fixtures []fixture.Fixture, ranked map[string][]standing.Standing) ([]fixture.Fixture, []Change, error) {
	out := make([]fixture.Fixture, len(fixtures))
	copy(out, fixtures)

	changes := make([]Change, 0)
	for i := range out {
		changed := false
		for _, home := range []bool{true, false} {
			src := out[i].HomeSource
			if !home {
				src = out[i].AwaySource
			}
			if src.Kind != fixture.SourceStandingPosition {
				continue
			}
			table := ranked[src.Group]
			if src.Position < 1 || src.Position > len(table) {
				continue
			}
			teamID := table[src.Position-1].TeamID

			current := out[i].Side(home)
			if id, ok := current.TeamID(); ok {
				if id == teamID {
					continue
				}
				return fixtures, nil, crerr.Wrapf(ErrSlotAlreadyFilled, "match %d holds %s, cannot place %s", out[i].MatchNumber, id, teamID)
			}
			out[i] = out[i].WithSide(home, bracket.Assigned(teamID))
			changed = true
		}
		if changed {
			changes = append(changes, Change{Index: i, Fixture: out[i]})
		}
	}
	return out, changes, nil
}
