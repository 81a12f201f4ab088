package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
)

const testTournamentID = "cup-2026"

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type testEnv struct {
	fixtures  *FixtureService
	standings *StandingService
	matches   *memory.MatchRepository
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T, format string, teamCount int, policy string) testEnv {
	t.Helper()

	teams := make([]team.Team, 0, teamCount)
	for i := 0; i < teamCount; i++ {
		id := fmt.Sprintf("team-%c", 'a'+i)
		teams = append(teams, team.Team{ID: id, TournamentID: testTournamentID, Name: id, Seed: i + 1})
	}
	tournaments := memory.NewTournamentRepository([]tournament.Tournament{{
		ID:                testTournamentID,
		Name:              "Test Cup",
		Format:            format,
		Status:            tournament.StatusLive,
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		VenueIDs:          []string{"v1", "v2"},
		Points:            standing.DefaultPointsTable(),
		KnockoutTiePolicy: policy,
	}})
	venues := memory.NewVenueRepository([]venue.Venue{{ID: "v1", Name: "One"}, {ID: "v2", Name: "Two"}})
	matches := memory.NewMatchRepository(idgen.NewSequenceGenerator("match"))
	fixtureRepo := memory.NewFixtureRepository(idgen.NewSequenceGenerator("fixture"))
	standingRepo := memory.NewStandingRepository(idgen.NewSequenceGenerator("standing"))
	publisher := &recordingPublisher{}
	locks := NewTournamentLocks()

	fixtureSvc := NewFixtureService(FixtureRepositories{
		Tournaments: tournaments,
		Teams:       memory.NewTeamRepository(teams),
		Venues:      venues,
		Matches:     matches,
		Fixtures:    fixtureRepo,
		Standings:   standingRepo,
	}, schedule.DefaultConstraints(), publisher, locks, nil)
	standingSvc := NewStandingService(StandingRepositories{
		Tournaments: tournaments,
		Matches:     matches,
		Fixtures:    fixtureRepo,
		Standings:   standingRepo,
		PlayerStats: memory.NewPlayerStatsRepository(),
	}, schedule.DefaultConstraints(), publisher, locks, nil)

	return testEnv{fixtures: fixtureSvc, standings: standingSvc, matches: matches, publisher: publisher}
}

// scoreFor makes the alphabetically smaller team win every game.
func scoreFor(f fixture.Fixture) (home, away string) {
	h, a, _ := f.Teams()
	if h < a {
		return "160/5 (20)", "140/8 (20)"
	}
	return "140/8 (20)", "160/5 (20)"
}

func byMatchNumber(t *testing.T, env testEnv, number int) fixture.Fixture {
	t.Helper()
	items, err := env.fixtures.ListByTournament(context.Background(), testTournamentID)
	require.NoError(t, err)
	for _, f := range items {
		if f.MatchNumber == number {
			return f
		}
	}
	t.Fatalf("fixture %d not found", number)
	return fixture.Fixture{}
}

func TestStandingService_PlayoffFormatEndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t, "ipl", 4, "home_team")

	generated, err := env.fixtures.GenerateFixtures(ctx, GenerateFixturesInput{TournamentID: testTournamentID})
	require.NoError(t, err)
	require.Len(t, generated.Fixtures, 16)
	sortByMatchNumber(generated.Fixtures)
	assert.Empty(t, generated.Degraded)
	assert.Equal(t, 1, env.publisher.count(EventFixturesGenerated))

	rows, err := env.standings.ListByTournament(ctx, testTournamentID, "")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// playoff matches cannot be scored before their teams are known.
	q1 := generated.Fixtures[12]
	_, err = env.standings.RecordResult(ctx, RecordResultInput{TournamentID: testTournamentID, MatchID: q1.MatchID, Result: "home_win"})
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	var last ProcessResult
	for i, f := range generated.Fixtures[:12] {
		home, away := scoreFor(f)
		input := RecordResultInput{TournamentID: testTournamentID, MatchID: f.MatchID, HomeScore: home, AwayScore: away}
		if i == 0 {
			homeID, _, _ := f.Teams()
			overs, _ := cricket.ParseOvers("4")
			input.Performances = []playerstats.Performance{
				{PlayerID: "p-1", TeamID: homeID, Batted: true, Runs: 72, BallsFaced: 48, OversBowled: overs, RunsConceded: 24, Wickets: 2},
			}
		}
		last, err = env.standings.RecordResult(ctx, input)
		require.NoError(t, err, "match %d", f.MatchNumber)
	}

	require.Len(t, last.Advanced, 2, "final league match seeds qualifier 1 and the eliminator")
	require.Len(t, last.Standings, 4)
	wantOrder := []string{"team-a", "team-b", "team-c", "team-d"}
	wantPoints := []int{12, 8, 4, 0}
	for i, row := range last.Standings {
		assert.Equal(t, wantOrder[i], row.TeamID)
		assert.Equal(t, wantPoints[i], row.Points)
		assert.Equal(t, i+1, row.Position)
		assert.Equal(t, 6, row.Played)
		assert.True(t, row.Qualified)
	}
	assert.InDelta(t, 1.0, last.Standings[0].NetRunRate, 1e-9)

	q1 = byMatchNumber(t, env, 13)
	home, away, ok := q1.Teams()
	require.True(t, ok)
	assert.Equal(t, "team-a", home)
	assert.Equal(t, "team-b", away)
	q1Match, found, err := env.matches.GetByID(ctx, q1.MatchID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "team-a", q1Match.HomeTeamID)

	// applying a result twice is rejected.
	_, err = env.standings.ProcessCompletedMatch(ctx, testTournamentID, generated.Fixtures[0].MatchID)
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	res, err := env.standings.RecordResult(ctx, RecordResultInput{
		TournamentID: testTournamentID,
		MatchID:      q1.MatchID,
		HomeScore:    "150/9 (20)",
		AwayScore:    "151/2 (17.1)",
	})
	require.NoError(t, err)
	require.Len(t, res.Advanced, 2)

	q2 := byMatchNumber(t, env, 15)
	q2Home, _ := q2.Home.TeamID()
	assert.Equal(t, "team-a", q2Home, "loser of qualifier 1 drops into qualifier 2")
	final := byMatchNumber(t, env, 16)
	finalHome, _ := final.Home.TeamID()
	assert.Equal(t, "team-b", finalHome)
	assert.True(t, final.Away.IsPending())

	stats, err := env.standings.GetPlayerStats(ctx, testTournamentID, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 72, stats.Runs)
	assert.Equal(t, 150.0, stats.StrikeRate)
	assert.Equal(t, 6.0, stats.Economy)

	_, err = env.standings.GetPlayerStats(ctx, testTournamentID, "p-unknown")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 2, env.publisher.count(EventBracketAdvanced))
	assert.Equal(t, 13, env.publisher.count(EventResultApplied))
}

func TestStandingService_RecalculateMatchesIncremental(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t, "league", 5, "")

	generated, err := env.fixtures.GenerateFixtures(ctx, GenerateFixturesInput{TournamentID: testTournamentID})
	require.NoError(t, err)
	require.Len(t, generated.Fixtures, 10)
	sortByMatchNumber(generated.Fixtures)

	for i, f := range generated.Fixtures[:7] {
		home, away := scoreFor(f)
		input := RecordResultInput{TournamentID: testTournamentID, MatchID: f.MatchID, HomeScore: home, AwayScore: away}
		if i == 3 {
			input = RecordResultInput{TournamentID: testTournamentID, MatchID: f.MatchID, Result: "no_result"}
		}
		_, err := env.standings.RecordResult(ctx, input)
		require.NoError(t, err)
	}

	incremental, err := env.standings.ListByTournament(ctx, testTournamentID, "")
	require.NoError(t, err)

	recalculated, err := env.standings.Recalculate(ctx, testTournamentID)
	require.NoError(t, err)
	require.Len(t, recalculated, len(incremental))
	for i := range incremental {
		assert.Equal(t, incremental[i].TeamID, recalculated[i].TeamID)
		assert.Equal(t, incremental[i].Points, recalculated[i].Points)
		assert.Equal(t, incremental[i].Played, recalculated[i].Played)
		assert.Equal(t, incremental[i].NoResult, recalculated[i].NoResult)
		assert.InDelta(t, incremental[i].NetRunRate, recalculated[i].NetRunRate, 1e-9)
	}

	summary, err := env.standings.RecalculateAll(ctx, RecalculationInput{MaxWorkers: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TournamentCount)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.WorkerCount)
}

func TestStandingService_RecalculateWithoutStandings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "league", 4, "")
	_, err := env.standings.Recalculate(context.Background(), testTournamentID)
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	summary, err := env.standings.RecalculateAll(context.Background(), RecalculationInput{TournamentIDs: []string{testTournamentID}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SkippedCount)
}

func TestStandingService_KnockoutTieRejectedLeavesNoTrace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t, "knockout", 4, "reject")

	generated, err := env.fixtures.GenerateFixtures(ctx, GenerateFixturesInput{TournamentID: testTournamentID})
	require.NoError(t, err)
	require.Len(t, generated.Fixtures, 3)
	sortByMatchNumber(generated.Fixtures)

	semi := generated.Fixtures[0]
	_, err = env.standings.RecordResult(ctx, RecordResultInput{
		TournamentID: testTournamentID,
		MatchID:      semi.MatchID,
		HomeScore:    "150/7 (20)",
		AwayScore:    "150/9 (20)",
	})
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	stored, _, err := env.matches.GetByID(ctx, semi.MatchID)
	require.NoError(t, err)
	assert.NotEqual(t, "completed", string(stored.Status), "rejected result must not be stored")

	res, err := env.standings.RecordResult(ctx, RecordResultInput{
		TournamentID: testTournamentID,
		MatchID:      semi.MatchID,
		HomeScore:    "150/7 (20)",
		AwayScore:    "150/9 (20)",
		Result:       "away_win",
	})
	require.NoError(t, err)
	require.Len(t, res.Advanced, 1)
	home, _ := res.Advanced[0].Home.TeamID()
	_, awayTeam, _ := semi.Teams()
	assert.Equal(t, awayTeam, home)
}

func TestStandingService_RecordResultValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t, "league", 4, "")
	generated, err := env.fixtures.GenerateFixtures(ctx, GenerateFixturesInput{TournamentID: testTournamentID})
	require.NoError(t, err)

	matchID := generated.Fixtures[0].MatchID
	_, err = env.standings.RecordResult(ctx, RecordResultInput{TournamentID: testTournamentID, MatchID: matchID, Result: "draw"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = env.standings.RecordResult(ctx, RecordResultInput{TournamentID: testTournamentID, MatchID: matchID, HomeScore: "12x", AwayScore: "10/1"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = env.standings.RecordResult(ctx, RecordResultInput{TournamentID: testTournamentID, MatchID: "missing", Result: "tie"})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = env.standings.ProcessCompletedMatch(ctx, testTournamentID, matchID)
	assert.True(t, errors.Is(err, ErrConflict), "scheduled match cannot be processed: %v", err)

	_, err = env.standings.ListByTournament(ctx, "unknown", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStandingService_KnockoutRoundsGetDatedAsTheyFill(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t, "knockout", 6, "home_team")

	generated, err := env.fixtures.GenerateFixtures(ctx, GenerateFixturesInput{TournamentID: testTournamentID})
	require.NoError(t, err)
	require.Len(t, generated.Fixtures, 5)
	sortByMatchNumber(generated.Fixtures)
	for _, f := range generated.Fixtures[2:] {
		require.False(t, f.IsScheduled(), "match %d has a pending slot", f.MatchNumber)
	}

	for number := 1; number <= 5; number++ {
		f := byMatchNumber(t, env, number)
		require.True(t, f.IsScheduled(), "match %d is dated once both teams are known", number)

		stored, found, err := env.matches.GetByID(ctx, f.MatchID)
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, stored.ScheduledAt, "match %d", number)
		assert.Equal(t, f.VenueID, stored.VenueID)

		home, away := scoreFor(f)
		_, err = env.standings.RecordResult(ctx, RecordResultInput{TournamentID: testTournamentID, MatchID: f.MatchID, HomeScore: home, AwayScore: away})
		require.NoError(t, err, "match %d", number)
	}

	final := byMatchNumber(t, env, 5)
	for _, number := range []int{3, 4} {
		semi := byMatchNumber(t, env, number)
		if !final.ScheduledDate.After(semi.ScheduledDate) {
			t.Fatalf("final on %s, want after semi-final %d on %s", final.ScheduledDate.Format(time.DateOnly), number, semi.ScheduledDate.Format(time.DateOnly))
		}
	}
	assert.Zero(t, env.publisher.count(EventScheduleDegraded))
}
