package progression

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
)

func roster(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("team-%02d", i))
	}
	return out
}

func completedFor(f fixture.Fixture, result match.Result) match.Match {
	home, away, _ := f.Teams()
	return match.Match{
		ID:         fmt.Sprintf("m-%d", f.MatchNumber),
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     match.StatusCompleted,
		Result:     result,
	}
}

func byNumber(fixtures []fixture.Fixture, number int) fixture.Fixture {
	for _, f := range fixtures {
		if f.MatchNumber == number {
			return f
		}
	}
	return fixture.Fixture{}
}

func TestAdvanceKnockout_WinnerMovesToNextRound(t *testing.T) {
	t.Parallel()

	fixtures, err := fixture.NewGenerator(nil).Generate(context.Background(), roster(8), fixture.FormatKnockout, fixture.Options{})
	require.NoError(t, err)

	// bracket position 3 feeds the away side of semi-final position 1.
	opener := byNumber(fixtures, 4)
	require.Equal(t, 3, opener.BracketPosition)

	out, changes, err := AdvanceKnockout(fixtures, opener, completedFor(opener, match.ResultAwayWin), HomeTeamTieBreaker{})
	require.NoError(t, err)
	require.Len(t, changes, 1)

	semi := out[changes[0].Index]
	assert.Equal(t, fixture.StageSemiFinal, semi.Stage)
	assert.Equal(t, 1, semi.BracketPosition)
	assert.True(t, semi.Home.IsPending())
	_, awayTeam, _ := opener.Teams()
	got, ok := semi.Away.TeamID()
	require.True(t, ok)
	assert.Equal(t, awayTeam, got)

	// replaying the same result is a no-op.
	_, again, err := AdvanceKnockout(out, opener, completedFor(opener, match.ResultAwayWin), HomeTeamTieBreaker{})
	require.NoError(t, err)
	assert.Empty(t, again)

	// a different winner for the same slot is a conflict.
	_, _, err = AdvanceKnockout(out, opener, completedFor(opener, match.ResultHomeWin), HomeTeamTieBreaker{})
	assert.True(t, errors.Is(err, ErrSlotAlreadyFilled))
}

func TestAdvanceKnockout_FinalIsNoop(t *testing.T) {
	t.Parallel()

	final := fixture.Fixture{
		MatchNumber: 7,
		Round:       3,
		Stage:       fixture.StageFinal,
		Home:        bracket.Assigned("team-01"),
		Away:        bracket.Assigned("team-02"),
	}
	out, changes, err := AdvanceKnockout([]fixture.Fixture{final}, final, completedFor(final, match.ResultHomeWin), nil)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Len(t, out, 1)
}

func TestAdvanceKnockout_TiePolicy(t *testing.T) {
	t.Parallel()

	fixtures, err := fixture.NewGenerator(nil).Generate(context.Background(), roster(4), fixture.FormatKnockout, fixture.Options{})
	require.NoError(t, err)
	opener := byNumber(fixtures, 1)

	_, _, err = AdvanceKnockout(fixtures, opener, completedFor(opener, match.ResultTie), RejectTieBreaker{})
	assert.True(t, errors.Is(err, ErrUnresolvedTie))

	out, changes, err := AdvanceKnockout(fixtures, opener, completedFor(opener, match.ResultNoResult), HomeTeamTieBreaker{})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	home, _, _ := opener.Teams()
	got, _ := out[changes[0].Index].Home.TeamID()
	assert.Equal(t, home, got)
}

func TestPlayoffs_PageSystem(t *testing.T) {
	t.Parallel()

	fixtures, err := fixture.NewGenerator(nil).Generate(context.Background(), roster(4), fixture.FormatIPL, fixture.Options{})
	require.NoError(t, err)

	table := standing.Rank([]standing.Standing{
		{TeamID: "team-01", Points: 10},
		{TeamID: "team-02", Points: 8},
		{TeamID: "team-03", Points: 6},
		{TeamID: "team-04", Points: 0},
	})
	fixtures, changes, err := FillFromStandings(fixtures, map[string][]standing.Standing{"": table})
	require.NoError(t, err)
	require.Len(t, changes, 2)

	q1 := byNumber(fixtures, 13)
	elim := byNumber(fixtures, 14)
	home, away, ok := q1.Teams()
	require.True(t, ok)
	assert.Equal(t, "team-01", home)
	assert.Equal(t, "team-02", away)

	fixtures, _, err = AdvanceKnockout(fixtures, q1, completedFor(q1, match.ResultAwayWin), nil)
	require.NoError(t, err)
	fixtures, _, err = AdvanceKnockout(fixtures, elim, completedFor(elim, match.ResultHomeWin), nil)
	require.NoError(t, err)

	q2 := byNumber(fixtures, 15)
	home, away, ok = q2.Teams()
	require.True(t, ok)
	assert.Equal(t, "team-01", home, "loser of qualifier 1 hosts qualifier 2")
	assert.Equal(t, "team-03", away)

	final := byNumber(fixtures, 16)
	got, ok := final.Home.TeamID()
	require.True(t, ok)
	assert.Equal(t, "team-02", got)
	assert.True(t, final.Away.IsPending())
}

func TestFillFromStandings_GroupQualifiers(t *testing.T) {
	t.Parallel()

	fixtures, err := fixture.NewGenerator(nil).Generate(context.Background(), roster(8), fixture.FormatGroupKnockout, fixture.Options{})
	require.NoError(t, err)

	ranked := map[string][]standing.Standing{
		"A": {{TeamID: "a1"}, {TeamID: "a2"}, {TeamID: "a3"}, {TeamID: "a4"}},
		"B": {{TeamID: "b1"}, {TeamID: "b2"}, {TeamID: "b3"}, {TeamID: "b4"}},
	}
	out, changes, err := FillFromStandings(fixtures, ranked)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	home, away, ok := out[changes[0].Index].Teams()
	require.True(t, ok)
	assert.Equal(t, "a1", home)
	assert.Equal(t, "b2", away)
	home, away, _ = out[changes[1].Index].Teams()
	assert.Equal(t, "b1", home)
	assert.Equal(t, "a2", away)
}

func TestRoundRobinComplete(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{MatchID: "m1", Stage: fixture.StageLeague},
		{MatchID: "m2", Stage: fixture.StageLeague},
		{MatchID: "m3", Stage: fixture.StageFinal},
	}
	statuses := map[string]match.Status{"m1": match.StatusCompleted, "m2": match.StatusLive}
	assert.False(t, RoundRobinComplete(fixtures, statuses))

	statuses["m2"] = match.StatusAbandoned
	assert.True(t, RoundRobinComplete(fixtures, statuses))
}

func TestTieBreakerFor(t *testing.T) {
	t.Parallel()

	tb, err := TieBreakerFor("")
	require.NoError(t, err)
	assert.IsType(t, HomeTeamTieBreaker{}, tb)

	tb, err = TieBreakerFor("REJECT")
	require.NoError(t, err)
	assert.IsType(t, RejectTieBreaker{}, tb)

	_, err = TieBreakerFor("coin_toss")
	assert.True(t, errors.Is(err, ErrUnknownTiePolicy))
}
