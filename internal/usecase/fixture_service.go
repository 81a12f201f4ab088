package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

type FixtureRepositories struct {
	Tournaments tournament.Repository
	Teams       team.Repository
	Venues      venue.Repository
	Matches     match.Repository
	Fixtures    fixture.Repository
	Standings   standing.Repository
}

type FixtureService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	venueRepo      venue.Repository
	matchRepo      match.Repository
	fixtureRepo    fixture.Repository
	standingRepo   standing.Repository
	generator      *fixture.Generator
	constraints    schedule.Constraints
	publisher      EventPublisher
	locks          *TournamentLocks
	logger         *logging.Logger
	now            func() time.Time
}

func NewFixtureService(
	repos FixtureRepositories,
	constraints schedule.Constraints,
	publisher EventPublisher,
	locks *TournamentLocks,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = NewNopEventPublisher()
	}
	return &FixtureService{
		tournamentRepo: repos.Tournaments,
		teamRepo:       repos.Teams,
		venueRepo:      repos.Venues,
		matchRepo:      repos.Matches,
		fixtureRepo:    repos.Fixtures,
		standingRepo:   repos.Standings,
		generator:      fixture.NewGenerator(logger),
		constraints:    constraints,
		publisher:      publisher,
		locks:          locks,
		logger:         logger,
		now:            time.Now,
	}
}

type GenerateFixturesInput struct {
	TournamentID string
	// Format overrides the tournament's configured format when set.
	Format      string
	DoubleRound *bool
	StartDate   *time.Time
	EndDate     *time.Time
	VenueIDs    []string
	// Seed makes group assignment reproducible.
	Seed        *uint64
	Replace     bool
	Constraints *schedule.Constraints
}

type GenerateFixturesResult struct {
	Fixtures []fixture.Fixture
	Warnings []string
	Degraded []int
	Skipped  int
}

func (s *FixtureService) ListByTournament(ctx context.Context, tournamentID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by tournament: %w", err)
	}
	sortByMatchNumber(fixtures)

	return fixtures, nil
}

// GenerateFixtures builds, schedules and persists the full fixture list of a
// tournament and initializes a standing row for every team.
func (s *FixtureService) GenerateFixtures(ctx context.Context, input GenerateFixturesInput) (GenerateFixturesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GenerateFixtures")
	defer span.End()

	tournamentID := strings.TrimSpace(input.TournamentID)
	if tournamentID == "" {
		return GenerateFixturesResult{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	unlock := s.locks.lock(tournamentID)
	defer unlock()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return GenerateFixturesResult{}, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return GenerateFixturesResult{}, fmt.Errorf("list teams by tournament: %w", err)
	}
	if len(teams) < 2 {
		return GenerateFixturesResult{}, fmt.Errorf("%w: tournament=%s needs at least two teams, has %d", ErrInvalidInput, tournamentID, len(teams))
	}

	window, err := resolveWindow(item, input)
	if err != nil {
		return GenerateFixturesResult{}, err
	}

	venues, err := s.resolveVenues(ctx, item, input.VenueIDs)
	if err != nil {
		return GenerateFixturesResult{}, err
	}
	venueIDs := make([]string, 0, len(venues))
	for _, v := range venues {
		venueIDs = append(venueIDs, v.ID)
	}

	existing, err := s.fixtureRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return GenerateFixturesResult{}, fmt.Errorf("list existing fixtures: %w", err)
	}
	if len(existing) > 0 {
		if !input.Replace {
			return GenerateFixturesResult{}, fmt.Errorf("%w: tournament=%s already has %d fixtures", ErrConflict, tournamentID, len(existing))
		}
		for _, f := range existing {
			if f.ResultApplied {
				return GenerateFixturesResult{}, fmt.Errorf("%w: tournament=%s match %d already has a result", ErrConflict, tournamentID, f.MatchNumber)
			}
		}
	}

	format := fixture.NormalizeFormat(item.Format)
	if strings.TrimSpace(input.Format) != "" {
		format = fixture.NormalizeFormat(input.Format)
	}
	doubleRound := item.DoubleRound
	if input.DoubleRound != nil {
		doubleRound = *input.DoubleRound
	}

	seed := uint64(s.now().UnixNano())
	if input.Seed != nil {
		seed = *input.Seed
	}

	generated, err := s.generator.Generate(ctx, team.SeededIDs(teams), format, fixture.Options{
		DoubleRound: doubleRound,
		VenueIDs:    venueIDs,
		Rand:        rand.New(rand.NewPCG(seed, seed>>1|1)),
	})
	if err != nil {
		return GenerateFixturesResult{}, fmt.Errorf("generate fixtures: %w", classifyDomainError(err))
	}

	constraints := s.constraints
	if input.Constraints != nil {
		constraints = *input.Constraints
	}
	constraints.TeamUnavailable = s.unavailableDays(ctx, teamBlackouts(teams))
	constraints.VenueUnavailable = s.unavailableDays(ctx, venueBlackouts(venues))

	scheduled, err := schedule.Schedule(generated, window, venueIDs, constraints)
	if err != nil {
		return GenerateFixturesResult{}, fmt.Errorf("schedule fixtures: %w", classifyDomainError(err))
	}

	for _, f := range existing {
		if err := s.fixtureRepo.Delete(ctx, tournamentID, f.ID); err != nil {
			return GenerateFixturesResult{}, fmt.Errorf("delete fixture %s: %w", f.ID, err)
		}
	}

	persisted := make([]fixture.Fixture, 0, len(scheduled.Fixtures))
	for _, f := range scheduled.Fixtures {
		f.TournamentID = tournamentID
		created, err := s.persistFixture(ctx, f)
		if err != nil {
			return GenerateFixturesResult{}, err
		}
		persisted = append(persisted, created)
	}

	if err := s.initStandings(ctx, tournamentID, teams, persisted, input.Replace); err != nil {
		return GenerateFixturesResult{}, err
	}

	for _, warning := range scheduled.Warnings {
		s.logger.WarnContext(ctx, "fixture scheduled with degraded constraints",
			"tournament_id", tournamentID,
			"warning", warning,
		)
	}
	s.logger.InfoContext(ctx, "fixtures generated",
		"tournament_id", tournamentID,
		"format", string(format),
		"fixtures", len(persisted),
		"skipped", scheduled.Skipped,
		"degraded", len(scheduled.Degraded),
	)
	s.publish(ctx, Event{
		Type:         EventFixturesGenerated,
		TournamentID: tournamentID,
		OccurredAt:   s.now().UTC(),
		Payload: map[string]any{
			"format":   string(format),
			"fixtures": len(persisted),
			"degraded": scheduled.Degraded,
		},
	})
	if len(scheduled.Degraded) > 0 {
		s.publish(ctx, Event{
			Type:         EventScheduleDegraded,
			TournamentID: tournamentID,
			OccurredAt:   s.now().UTC(),
			Payload: map[string]any{
				"match_numbers": scheduled.Degraded,
				"warnings":      scheduled.Warnings,
			},
		})
	}

	return GenerateFixturesResult{
		Fixtures: persisted,
		Warnings: scheduled.Warnings,
		Degraded: scheduled.Degraded,
		Skipped:  scheduled.Skipped,
	}, nil
}

func (s *FixtureService) getTournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return item, nil
}

func (s *FixtureService) resolveVenues(ctx context.Context, item tournament.Tournament, requested []string) ([]venue.Venue, error) {
	ids := requested
	if len(ids) == 0 {
		ids = item.VenueIDs
	}

	if len(ids) == 0 {
		venues, err := s.venueRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list venues: %w", err)
		}
		if len(venues) == 0 {
			return nil, fmt.Errorf("%w: no venues configured", ErrInvalidInput)
		}
		return venues, nil
	}

	venues, err := s.venueRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list venues by ids: %w", err)
	}
	found := make(map[string]venue.Venue, len(venues))
	for _, v := range venues {
		found[v.ID] = v
	}
	ordered := make([]venue.Venue, 0, len(ids))
	for _, id := range ids {
		v, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown venue=%s", ErrInvalidInput, id)
		}
		ordered = append(ordered, v)
	}
	return ordered, nil
}

func (s *FixtureService) persistFixture(ctx context.Context, f fixture.Fixture) (fixture.Fixture, error) {
	home, _ := f.Home.TeamID()
	away, _ := f.Away.TeamID()
	created, err := s.matchRepo.Create(ctx, match.Match{
		TournamentID: f.TournamentID,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Status:       match.StatusScheduled,
		ScheduledAt:  scheduledAt(f.ScheduledDate, f.ScheduledTime),
		VenueID:      f.VenueID,
	})
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("create match for fixture %d: %w", f.MatchNumber, err)
	}

	f.MatchID = created.ID
	stored, err := s.fixtureRepo.Create(ctx, f)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture %d: %w", f.MatchNumber, err)
	}
	return stored, nil
}

func (s *FixtureService) initStandings(ctx context.Context, tournamentID string, teams []team.Team, fixtures []fixture.Fixture, replace bool) error {
	groups := make(map[string]string, len(teams))
	for _, f := range fixtures {
		if f.Stage != fixture.StageGroup {
			continue
		}
		if home, ok := f.Home.TeamID(); ok {
			groups[home] = f.Group
		}
		if away, ok := f.Away.TeamID(); ok {
			groups[away] = f.Group
		}
	}

	now := s.now().UTC()
	for _, item := range teams {
		row, exists, err := s.standingRepo.GetByTeam(ctx, tournamentID, item.ID)
		if err != nil {
			return fmt.Errorf("get standing team=%s: %w", item.ID, err)
		}
		if !exists {
			fresh := standing.New(tournamentID, item.ID, groups[item.ID])
			fresh.UpdatedAt = now
			if _, err := s.standingRepo.Create(ctx, fresh); err != nil {
				return fmt.Errorf("create standing team=%s: %w", item.ID, err)
			}
			continue
		}
		if !replace && row.Group == groups[item.ID] {
			continue
		}
		row = row.Reset()
		row.Group = groups[item.ID]
		row.UpdatedAt = now
		if err := s.standingRepo.Update(ctx, row); err != nil {
			return fmt.Errorf("reset standing team=%s: %w", item.ID, err)
		}
	}
	return nil
}

func (s *FixtureService) unavailableDays(ctx context.Context, raw map[string][]string) map[string][]time.Time {
	out := make(map[string][]time.Time, len(raw))
	for key, days := range raw {
		for _, value := range days {
			parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
			if err != nil {
				s.logger.WarnContext(ctx, "ignoring malformed unavailable day", "owner", key, "value", value)
				continue
			}
			out[key] = append(out[key], parsed)
		}
	}
	return out
}

func (s *FixtureService) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish event failed",
			"event", event.Type,
			"tournament_id", event.TournamentID,
			"error", err,
		)
	}
}

func resolveWindow(item tournament.Tournament, input GenerateFixturesInput) (schedule.Window, error) {
	window := schedule.Window{Start: item.StartDate, End: item.EndDate}
	if input.StartDate != nil {
		window.Start = *input.StartDate
	}
	if input.EndDate != nil {
		window.End = *input.EndDate
	}
	if window.Start.IsZero() || window.End.IsZero() {
		return schedule.Window{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	return window, nil
}

func teamBlackouts(teams []team.Team) map[string][]string {
	out := make(map[string][]string, len(teams))
	for _, item := range teams {
		if len(item.Unavailable) > 0 {
			out[item.ID] = item.Unavailable
		}
	}
	return out
}

func venueBlackouts(venues []venue.Venue) map[string][]string {
	out := make(map[string][]string, len(venues))
	for _, item := range venues {
		if len(item.Unavailable) > 0 {
			out[item.ID] = item.Unavailable
		}
	}
	return out
}

// scheduledAt joins a calendar day and an "HH:MM" slot. Unscheduled fixtures
// return nil.
func scheduledAt(date time.Time, slot string) *time.Time {
	if date.IsZero() {
		return nil
	}
	at := date
	if clock, err := time.Parse("15:04", slot); err == nil {
		at = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	}
	return &at
}

func sortByMatchNumber(fixtures []fixture.Fixture) {
	slices.SortStableFunc(fixtures, func(a, b fixture.Fixture) int {
		return a.MatchNumber - b.MatchNumber
	})
}
