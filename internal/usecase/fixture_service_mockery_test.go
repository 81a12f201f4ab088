package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	fixturemock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/fixture"
	teammock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/team"
	tournamentmock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/tournament"
	venuemock "github.com/riskibarqy/tournament-engine/internal/mocks/domain/venue"
)

func newMockedFixtureService(t *testing.T) (*FixtureService, *tournamentmock.Repository, *teammock.Repository, *venuemock.Repository, *fixturemock.Repository) {
	t.Helper()

	tournamentRepo := tournamentmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	venueRepo := venuemock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	service := NewFixtureService(FixtureRepositories{
		Tournaments: tournamentRepo,
		Teams:       teamRepo,
		Venues:      venueRepo,
		Fixtures:    fixtureRepo,
	}, schedule.DefaultConstraints(), nil, NewTournamentLocks(), nil)
	return service, tournamentRepo, teamRepo, venueRepo, fixtureRepo
}

func TestFixtureService_ListByTournament_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	service, tournamentRepo, _, _, fixtureRepo := newMockedFixtureService(t)
	tournamentID := "ipl-2026"

	tournamentRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), tournamentID).
		Return(tournament.Tournament{ID: tournamentID}, true, nil).
		Once()
	fixtureRepo.
		On("ListByTournament", mock.Anything, tournamentID).
		Return([]fixture.Fixture{
			{ID: "fx-2", TournamentID: tournamentID, MatchNumber: 2},
			{ID: "fx-1", TournamentID: tournamentID, MatchNumber: 1},
		}, nil).
		Once()

	got, err := service.ListByTournament(ctx, tournamentID)
	if err != nil {
		t.Fatalf("list fixtures by tournament: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected fixture count: got=%d want=%d", len(got), 2)
	}
	if got[0].ID != "fx-1" {
		t.Fatalf("fixtures must be ordered by match number: got=%s want=%s", got[0].ID, "fx-1")
	}
}

func TestFixtureService_ListByTournament_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	service, tournamentRepo, _, _, _ := newMockedFixtureService(t)
	tournamentRepo.
		On("GetByID", mock.Anything, "missing").
		Return(tournament.Tournament{}, false, nil).
		Once()

	_, err := service.ListByTournament(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFixtureService_GenerateFixtures_RejectsExistingWithoutReplace(t *testing.T) {
	t.Parallel()

	service, tournamentRepo, teamRepo, venueRepo, fixtureRepo := newMockedFixtureService(t)
	tournamentID := "ipl-2026"
	item := tournament.Tournament{
		ID:        tournamentID,
		Format:    "league",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		VenueIDs:  []string{"wankhede"},
	}

	tournamentRepo.On("GetByID", mock.Anything, tournamentID).Return(item, true, nil).Once()
	teamRepo.On("ListByTournament", mock.Anything, tournamentID).
		Return([]team.Team{{ID: "mi"}, {ID: "csk"}}, nil).
		Once()
	venueRepo.On("ListByIDs", mock.Anything, []string{"wankhede"}).
		Return([]venue.Venue{{ID: "wankhede"}}, nil).
		Once()
	fixtureRepo.On("ListByTournament", mock.Anything, tournamentID).
		Return([]fixture.Fixture{{ID: "fx-1", TournamentID: tournamentID, MatchNumber: 1}}, nil).
		Once()

	_, err := service.GenerateFixtures(context.Background(), GenerateFixturesInput{TournamentID: tournamentID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestFixtureService_GenerateFixtures_UnknownVenue(t *testing.T) {
	t.Parallel()

	service, tournamentRepo, teamRepo, venueRepo, _ := newMockedFixtureService(t)
	tournamentID := "ipl-2026"
	item := tournament.Tournament{
		ID:        tournamentID,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}

	tournamentRepo.On("GetByID", mock.Anything, tournamentID).Return(item, true, nil).Once()
	teamRepo.On("ListByTournament", mock.Anything, tournamentID).
		Return([]team.Team{{ID: "mi"}, {ID: "csk"}}, nil).
		Once()
	venueRepo.On("ListByIDs", mock.Anything, []string{"nowhere"}).
		Return([]venue.Venue{}, nil).
		Once()

	_, err := service.GenerateFixtures(context.Background(), GenerateFixturesInput{
		TournamentID: tournamentID,
		VenueIDs:     []string{"nowhere"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_GenerateFixtures_TooFewTeams(t *testing.T) {
	t.Parallel()

	service, tournamentRepo, teamRepo, _, _ := newMockedFixtureService(t)
	tournamentRepo.On("GetByID", mock.Anything, "solo").
		Return(tournament.Tournament{ID: "solo"}, true, nil).
		Once()
	teamRepo.On("ListByTournament", mock.Anything, "solo").
		Return([]team.Team{{ID: "mi"}}, nil).
		Once()

	_, err := service.GenerateFixtures(context.Background(), GenerateFixturesInput{TournamentID: "solo"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
