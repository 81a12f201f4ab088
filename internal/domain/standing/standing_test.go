package standing

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
)

func completed(home, away, homeScore, awayScore string, result match.Result) match.Match {
	return match.Match{
		ID:         home + "-" + away,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     match.StatusCompleted,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Result:     result,
	}
}

func TestApply_HomeWinTouchesOnlyThatSide(t *testing.T) {
	t.Parallel()

	m := completed("team-a", "team-b", "180/5 (20)", "160/9 (20)", match.ResultHomeWin)
	home, err := Apply(New("t1", "team-a", ""), m, PointsTable{Win: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, home.Played)
	assert.Equal(t, 1, home.Won)
	assert.Equal(t, 2, home.Points)
	assert.Equal(t, 180, home.RunsFor)
	assert.Equal(t, 160, home.RunsAgainst)
	assert.InDelta(t, 1.0, home.NetRunRate, 1e-9)

	away, err := Apply(New("t1", "team-b", ""), m, PointsTable{Win: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, away.Lost)
	assert.Equal(t, 0, away.Points)
	assert.InDelta(t, -1.0, away.NetRunRate, 1e-9)
}

func TestApply_NoResultLeavesRunRateAlone(t *testing.T) {
	t.Parallel()

	m := completed("team-a", "team-b", "40/1 (5)", "", match.ResultNoResult)
	got, err := Apply(New("t1", "team-a", ""), m, DefaultPointsTable())
	require.NoError(t, err)
	assert.Equal(t, 1, got.NoResult)
	assert.Equal(t, 1, got.Points)
	assert.Equal(t, 0, got.RunsFor)
	assert.True(t, got.OversFor.IsZero())
	assert.Zero(t, got.NetRunRate)
}

func TestApply_DerivesResultFromRuns(t *testing.T) {
	t.Parallel()

	m := completed("team-a", "team-b", "150/8 (20)", "151/4 (18.3)", "")
	got, err := Apply(New("t1", "team-b", ""), m, DefaultPointsTable())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Won)
	assert.Equal(t, "18.3", got.OversFor.String())
}

func TestApply_RejectsBadInput(t *testing.T) {
	t.Parallel()

	live := completed("team-a", "team-b", "", "", "")
	live.Status = match.StatusLive
	_, err := Apply(New("t1", "team-a", ""), live, DefaultPointsTable())
	assert.True(t, errors.Is(err, match.ErrNotCompleted))

	m := completed("team-a", "team-b", "1/0", "0/0", match.ResultHomeWin)
	_, err = Apply(New("t1", "team-z", ""), m, DefaultPointsTable())
	assert.True(t, errors.Is(err, ErrTeamNotInMatch))

	bad := completed("team-a", "team-b", "oops", "12/1 (2)", match.ResultHomeWin)
	_, err = Apply(New("t1", "team-a", ""), bad, DefaultPointsTable())
	assert.True(t, errors.Is(err, cricket.ErrInvalidScore))
}

func TestRank_TieBreakOrder(t *testing.T) {
	t.Parallel()

	ranked := Rank([]Standing{
		{TeamID: "team-d", Points: 4, NetRunRate: 0.5, Won: 2},
		{TeamID: "team-c", Points: 4, NetRunRate: 0.5004, Won: 1},
		{TeamID: "team-b", Points: 6, NetRunRate: -1.2, Won: 3},
		{TeamID: "team-a", Points: 4, NetRunRate: 0.9, Won: 2},
		{TeamID: "team-e", Points: 4, NetRunRate: 0.5, Won: 2},
	})

	order := make([]string, 0, len(ranked))
	for i, row := range ranked {
		order = append(order, row.TeamID)
		assert.Equal(t, i+1, row.Position)
	}
	// c and d/e sit within the net run rate tolerance, so wins decide, then id.
	assert.Equal(t, []string{"team-b", "team-a", "team-d", "team-e", "team-c"}, order)
}

func TestRank_OrderIndependentOfInput(t *testing.T) {
	t.Parallel()

	// each neighbouring pair is under a thousandth apart but a and c are not.
	rows := []Standing{
		{TeamID: "team-a", Points: 4, NetRunRate: 0, Won: 3},
		{TeamID: "team-b", Points: 4, NetRunRate: 0.0008, Won: 2},
		{TeamID: "team-c", Points: 4, NetRunRate: 0.0016, Won: 1},
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	var want []string
	for _, perm := range perms {
		input := make([]Standing, 0, len(perm))
		for _, i := range perm {
			input = append(input, rows[i])
		}
		got := make([]string, 0, len(input))
		for _, row := range Rank(input) {
			got = append(got, row.TeamID)
		}
		if want == nil {
			want = got
			continue
		}
		if !slices.Equal(got, want) {
			t.Fatalf("input order %v ranked %v, want %v", perm, got, want)
		}
	}
	assert.Equal(t, []string{"team-c", "team-b", "team-a"}, want)

	for _, x := range rows {
		for _, y := range rows {
			for _, z := range rows {
				if compare(x, y) < 0 && compare(y, z) < 0 && compare(x, z) >= 0 {
					t.Fatalf("%s < %s < %s but not %s < %s", x.TeamID, y.TeamID, z.TeamID, x.TeamID, z.TeamID)
				}
			}
		}
	}
}

func TestRankByGroup(t *testing.T) {
	t.Parallel()

	grouped := RankByGroup([]Standing{
		{TeamID: "a1", Group: "A", Points: 2},
		{TeamID: "b1", Group: "B", Points: 4},
		{TeamID: "a2", Group: "A", Points: 4},
	})
	require.Len(t, grouped, 2)
	assert.Equal(t, "a2", grouped["A"][0].TeamID)
	assert.Equal(t, 1, grouped["B"][0].Position)

	flat := Flatten(grouped)
	require.Len(t, flat, 3)
	assert.Equal(t, "A", flat[0].Group)
	assert.Equal(t, "B", flat[2].Group)
}

func TestEvaluateQualification(t *testing.T) {
	t.Parallel()

	ranked := Rank([]Standing{
		{TeamID: "t1", Points: 12},
		{TeamID: "t2", Points: 10},
		{TeamID: "t3", Points: 8},
		{TeamID: "t4", Points: 8},
		{TeamID: "t5", Points: 6},
		{TeamID: "t6", Points: 2},
	})
	remaining := map[string]int{"t1": 0, "t2": 1, "t3": 0, "t4": 0, "t5": 1, "t6": 2}

	got := EvaluateQualification(ranked, remaining, QualificationRule{Spots: 4, WinPoints: 2})
	byTeam := map[string]Standing{}
	for _, row := range got {
		byTeam[row.TeamID] = row
	}

	assert.True(t, byTeam["t1"].Qualified)
	assert.False(t, byTeam["t2"].Qualified, "a team with matches left is not yet qualified")
	assert.True(t, byTeam["t3"].Qualified)
	assert.True(t, byTeam["t4"].Qualified)
	assert.False(t, byTeam["t5"].Eliminated, "6 + 2 can still reach the cutoff of 8")
	assert.True(t, byTeam["t6"].Eliminated, "2 + 4 cannot reach the cutoff of 8")
	for _, row := range got {
		assert.False(t, row.Qualified && row.Eliminated)
	}
}
