package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	standingmock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/standing"
	tournamentmock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/tournament"
	venuemock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/venue"
)

func TestTournamentRepository_GetByIDLoadsOnce(t *testing.T) {
	t.Parallel()

	next := tournamentmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "ipl-2026").
		Return(tournament.Tournament{ID: "ipl-2026", VenueIDs: []string{"wankhede"}}, true, nil).
		Once()
	next.On("GetByID", mock.Anything, "missing").
		Return(tournament.Tournament{}, false, nil).
		Once()

	repo := NewTournamentRepository(next, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		item, found, err := repo.GetByID(ctx, "ipl-2026")
		require.NoError(t, err)
		require.True(t, found)
		item.VenueIDs[0] = "mutated"
	}

	item, _, err := repo.GetByID(ctx, "ipl-2026")
	require.NoError(t, err)
	assert.Equal(t, []string{"wankhede"}, item.VenueIDs)

	for i := 0; i < 2; i++ {
		_, found, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	}
}

func TestTournamentRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := tournamentmock.NewRepository(t)
	next.On("ListByStatus", mock.Anything, tournament.StatusLive).
		Return(nil, errors.New("db down")).
		Once()
	next.On("ListByStatus", mock.Anything, tournament.StatusLive).
		Return([]tournament.Tournament{{ID: "ipl-2026"}}, nil).
		Once()

	repo := NewTournamentRepository(next, time.Minute)
	_, err := repo.ListByStatus(context.Background(), tournament.StatusLive)
	require.Error(t, err)

	items, err := repo.ListByStatus(context.Background(), tournament.StatusLive)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestVenueRepository_ListByIDsKeyIgnoresOrder(t *testing.T) {
	t.Parallel()

	next := venuemock.NewRepository(t)
	next.On("ListByIDs", mock.Anything, []string{"chepauk", "wankhede"}).
		Return([]venue.Venue{{ID: "chepauk"}, {ID: "wankhede"}}, nil).
		Once()

	repo := NewVenueRepository(next, time.Minute)
	first, err := repo.ListByIDs(context.Background(), []string{"wankhede", "chepauk"})
	require.NoError(t, err)
	second, err := repo.ListByIDs(context.Background(), []string{"chepauk", "wankhede"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStandingRepository_WriteInvalidatesTable(t *testing.T) {
	t.Parallel()

	next := standingmock.NewRepository(t)
	before := []standing.Standing{{ID: "st-1", TournamentID: "ipl-2026", TeamID: "mi", Points: 2}}
	after := []standing.Standing{{ID: "st-1", TournamentID: "ipl-2026", TeamID: "mi", Points: 4}}
	next.On("ListByTournament", mock.Anything, "ipl-2026").Return(before, nil).Once()
	next.On("Update", mock.Anything, after[0]).Return(nil).Once()
	next.On("ListByTournament", mock.Anything, "ipl-2026").Return(after, nil).Once()

	repo := NewStandingRepository(next, time.Minute)
	ctx := context.Background()

	got, err := repo.ListByTournament(ctx, "ipl-2026")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Points)
	got, err = repo.ListByTournament(ctx, "ipl-2026")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Points)

	require.NoError(t, repo.Update(ctx, after[0]))

	got, err = repo.ListByTournament(ctx, "ipl-2026")
	require.NoError(t, err)
	assert.Equal(t, 4, got[0].Points)
}
