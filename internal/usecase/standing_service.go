package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
	"github.com/riskibarqy/tournament-engine/internal/domain/progression"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

type StandingRepositories struct {
	Tournaments tournament.Repository
	Matches     match.Repository
	Fixtures    fixture.Repository
	Standings   standing.Repository
	PlayerStats playerstats.Repository
}

type StandingService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	fixtureRepo    fixture.Repository
	standingRepo   standing.Repository
	statsRepo      playerstats.Repository
	constraints    schedule.Constraints
	publisher      EventPublisher
	locks          *TournamentLocks
	logger         *logging.Logger
	now            func() time.Time
}

func NewStandingService(
	repos StandingRepositories,
	constraints schedule.Constraints,
	publisher EventPublisher,
	locks *TournamentLocks,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = NewNopEventPublisher()
	}
	return &StandingService{
		tournamentRepo: repos.Tournaments,
		matchRepo:      repos.Matches,
		fixtureRepo:    repos.Fixtures,
		standingRepo:   repos.Standings,
		statsRepo:      repos.PlayerStats,
		constraints:    constraints,
		publisher:      publisher,
		locks:          locks,
		logger:         logger,
		now:            time.Now,
	}
}

// RecordResultInput carries a finished scorecard.
type RecordResultInput struct {
	TournamentID string
	MatchID      string
	HomeScore    string
	AwayScore    string
	// Result may be empty when the scores decide the match.
	Result       string
	Performances []playerstats.Performance
}

type ProcessResult struct {
	Match     match.Match
	Standings []standing.Standing
	Advanced  []fixture.Fixture
}

func (s *StandingService) ListByTournament(ctx context.Context, tournamentID, group string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	rows, err := s.standingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list standings by tournament: %w", err)
	}

	group = strings.ToUpper(strings.TrimSpace(group))
	if group != "" {
		rows = slices.DeleteFunc(rows, func(row standing.Standing) bool {
			return row.Group != group
		})
	}

	return standing.Flatten(standing.RankByGroup(rows)), nil
}

func (s *StandingService) GetPlayerStats(ctx context.Context, tournamentID, playerID string) (playerstats.Stat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.GetPlayerStats")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	playerID = strings.TrimSpace(playerID)
	if tournamentID == "" || playerID == "" {
		return playerstats.Stat{}, fmt.Errorf("%w: tournament id and player id are required", ErrInvalidInput)
	}

	stat, exists, err := s.statsRepo.Get(ctx, tournamentID, playerID)
	if err != nil {
		return playerstats.Stat{}, fmt.Errorf("get player stats: %w", err)
	}
	if !exists {
		return playerstats.Stat{}, fmt.Errorf("%w: player=%s tournament=%s", ErrNotFound, playerID, tournamentID)
	}
	return stat, nil
}

// RecordResult stores a finished scorecard on the match and then processes it.
func (s *StandingService) RecordResult(ctx context.Context, input RecordResultInput) (ProcessResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecordResult")
	defer span.End()

	tournamentID := strings.TrimSpace(input.TournamentID)
	matchID := strings.TrimSpace(input.MatchID)
	if tournamentID == "" || matchID == "" {
		return ProcessResult{}, fmt.Errorf("%w: tournament id and match id are required", ErrInvalidInput)
	}

	result := match.NormalizeResult(input.Result)
	if result != "" && !result.IsValid() {
		return ProcessResult{}, fmt.Errorf("%w: unknown result %q", ErrInvalidInput, input.Result)
	}

	unlock := s.locks.lock(tournamentID)
	defer unlock()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return ProcessResult{}, err
	}

	m, err := s.getMatch(ctx, tournamentID, matchID)
	if err != nil {
		return ProcessResult{}, err
	}
	if m.Status == match.StatusCompleted {
		return ProcessResult{}, fmt.Errorf("%w: match=%s is already completed", ErrConflict, matchID)
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return ProcessResult{}, fmt.Errorf("%w: match=%s teams are not decided yet", ErrConflict, matchID)
	}

	completedAt := s.now().UTC()
	m.Status = match.StatusCompleted
	m.HomeScore = strings.TrimSpace(input.HomeScore)
	m.AwayScore = strings.TrimSpace(input.AwayScore)
	m.Result = result
	m.Performances = input.Performances
	m.CompletedAt = &completedAt
	if _, err := m.Decide(); err != nil {
		return ProcessResult{}, fmt.Errorf("decide match: %w", classifyDomainError(err))
	}
	if _, _, _, err := m.Scores(); err != nil {
		return ProcessResult{}, fmt.Errorf("parse scores: %w", classifyDomainError(err))
	}

	return s.process(ctx, item, m, true)
}

// ProcessCompletedMatch applies an already completed match to standings,
// player stats and the bracket. Each match is applied at most once.
func (s *StandingService) ProcessCompletedMatch(ctx context.Context, tournamentID, matchID string) (ProcessResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ProcessCompletedMatch")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	matchID = strings.TrimSpace(matchID)
	if tournamentID == "" || matchID == "" {
		return ProcessResult{}, fmt.Errorf("%w: tournament id and match id are required", ErrInvalidInput)
	}

	unlock := s.locks.lock(tournamentID)
	defer unlock()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return ProcessResult{}, err
	}
	m, err := s.getMatch(ctx, tournamentID, matchID)
	if err != nil {
		return ProcessResult{}, err
	}
	return s.process(ctx, item, m, false)
}

// process applies a completed match. saveMatch stores the match itself
// first, once every check has passed.
func (s *StandingService) process(ctx context.Context, item tournament.Tournament, m match.Match, saveMatch bool) (ProcessResult, error) {
	if err := m.ValidateCompleted(); err != nil {
		return ProcessResult{}, classifyDomainError(err)
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("list fixtures by tournament: %w", err)
	}
	sortByMatchNumber(fixtures)

	idx := slices.IndexFunc(fixtures, func(f fixture.Fixture) bool { return f.MatchID == m.ID })
	if idx < 0 {
		return ProcessResult{}, fmt.Errorf("%w: no fixture for match=%s", ErrNotFound, m.ID)
	}
	current := fixtures[idx]
	if current.ResultApplied {
		return ProcessResult{}, fmt.Errorf("%w: result of match=%s already applied", ErrConflict, m.ID)
	}

	rows, err := s.standingRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("list standings by tournament: %w", err)
	}

	// everything below is computed before the first write so a rejected
	// result leaves no partial state behind.
	points := item.PointsTable()
	now := s.now().UTC()
	if current.Stage.IsRoundRobin() {
		for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
			i := slices.IndexFunc(rows, func(row standing.Standing) bool { return row.TeamID == teamID })
			if i < 0 {
				rows = append(rows, standing.New(item.ID, teamID, current.Group))
				i = len(rows) - 1
			}
			updated, err := standing.Apply(rows[i], m, points)
			if err != nil {
				return ProcessResult{}, fmt.Errorf("apply result team=%s: %w", teamID, classifyDomainError(err))
			}
			updated.UpdatedAt = now
			rows[i] = updated
		}
	}

	var changes []progression.Change
	if !current.Stage.IsRoundRobin() {
		tb, err := progression.TieBreakerFor(item.KnockoutTiePolicy)
		if err != nil {
			return ProcessResult{}, classifyDomainError(err)
		}
		fixtures, changes, err = progression.AdvanceKnockout(fixtures, current, m, tb)
		if err != nil {
			return ProcessResult{}, fmt.Errorf("advance bracket: %w", classifyDomainError(err))
		}
	}

	statuses, err := s.matchStatuses(ctx, item.ID)
	if err != nil {
		return ProcessResult{}, err
	}
	statuses[m.ID] = m.Status

	ranked, grouped := rankAndQualify(item, rows, fixtures, statuses)
	if current.Stage.IsRoundRobin() && progression.RoundRobinComplete(fixtures, statuses) {
		var filled []progression.Change
		fixtures, filled, err = progression.FillFromStandings(fixtures, grouped)
		if err != nil {
			return ProcessResult{}, fmt.Errorf("seed playoffs from standings: %w", classifyDomainError(err))
		}
		changes = append(changes, filled...)
	}

	if saveMatch {
		if err := s.matchRepo.Update(ctx, m); err != nil {
			return ProcessResult{}, fmt.Errorf("update match: %w", err)
		}
	}
	if err := s.saveStandings(ctx, ranked); err != nil {
		return ProcessResult{}, err
	}
	if err := s.accumulatePlayerStats(ctx, item.ID, m); err != nil {
		return ProcessResult{}, err
	}

	current = fixtures[idx]
	current.ResultApplied = true
	fixtures[idx] = current
	if err := s.fixtureRepo.Update(ctx, current); err != nil {
		return ProcessResult{}, fmt.Errorf("mark fixture applied: %w", err)
	}

	changes = append(changes, s.scheduleReady(ctx, item, fixtures)...)
	advanced, err := s.saveProgression(ctx, fixtures, changes)
	if err != nil {
		return ProcessResult{}, err
	}

	s.logger.InfoContext(ctx, "match result applied",
		"tournament_id", item.ID,
		"match_id", m.ID,
		"stage", string(current.Stage),
		"advanced", len(advanced),
	)
	s.publish(ctx, Event{
		Type:         EventResultApplied,
		TournamentID: item.ID,
		OccurredAt:   now,
		Payload: map[string]any{
			"match_id":     m.ID,
			"match_number": current.MatchNumber,
			"result":       string(m.Result),
		},
	})
	if current.Stage.IsRoundRobin() {
		s.publish(ctx, Event{Type: EventStandingsUpdated, TournamentID: item.ID, OccurredAt: now})
	}
	if len(advanced) > 0 {
		numbers := make([]int, 0, len(advanced))
		for _, f := range advanced {
			numbers = append(numbers, f.MatchNumber)
		}
		s.publish(ctx, Event{
			Type:         EventBracketAdvanced,
			TournamentID: item.ID,
			OccurredAt:   now,
			Payload:      map[string]any{"match_numbers": numbers},
		})
	}

	return ProcessResult{Match: m, Standings: ranked, Advanced: advanced}, nil
}

// Recalculate rebuilds every standing row of a tournament by replaying all
// completed round-robin matches, then re-evaluates qualification and any
// bracket slots that depend on the final table.
func (s *StandingService) Recalculate(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Recalculate")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	unlock := s.locks.lock(tournamentID)
	defer unlock()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	rows, err := s.standingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list standings by tournament: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: tournament=%s has no standings to recalculate", ErrConflict, tournamentID)
	}

	fixtures, err := s.fixtureRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by tournament: %w", err)
	}
	sortByMatchNumber(fixtures)

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list matches by tournament: %w", err)
	}
	byID := make(map[string]match.Match, len(matches))
	statuses := make(map[string]match.Status, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
		statuses[m.ID] = m.Status
	}

	byTeam := make(map[string]int, len(rows))
	for i := range rows {
		rows[i] = rows[i].Reset()
		byTeam[rows[i].TeamID] = i
	}

	now := s.now().UTC()
	points := item.PointsTable()
	applied := make([]int, 0)
	for i, f := range fixtures {
		m, ok := byID[f.MatchID]
		if !ok || m.Status != match.StatusCompleted {
			continue
		}
		if !f.ResultApplied {
			applied = append(applied, i)
		}
		if !f.Stage.IsRoundRobin() {
			continue
		}
		for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
			ri, ok := byTeam[teamID]
			if !ok {
				rows = append(rows, standing.New(tournamentID, teamID, f.Group))
				ri = len(rows) - 1
				byTeam[teamID] = ri
			}
			updated, err := standing.Apply(rows[ri], m, points)
			if err != nil {
				return nil, fmt.Errorf("replay match=%s team=%s: %w", m.ID, teamID, classifyDomainError(err))
			}
			rows[ri] = updated
		}
	}
	for i := range rows {
		rows[i].UpdatedAt = now
	}

	ranked, grouped := rankAndQualify(item, rows, fixtures, statuses)
	changes := make([]progression.Change, 0)
	if progression.RoundRobinComplete(fixtures, statuses) {
		fixtures, changes, err = progression.FillFromStandings(fixtures, grouped)
		if err != nil {
			return nil, fmt.Errorf("seed playoffs from standings: %w", classifyDomainError(err))
		}
	}

	tb, err := progression.TieBreakerFor(item.KnockoutTiePolicy)
	if err != nil {
		return nil, classifyDomainError(err)
	}
	for _, f := range fixtures {
		if f.Stage.IsRoundRobin() {
			continue
		}
		m, ok := byID[f.MatchID]
		if !ok || m.Status != match.StatusCompleted {
			continue
		}
		var advancedNow []progression.Change
		fixtures, advancedNow, err = progression.AdvanceKnockout(fixtures, f, m, tb)
		if err != nil {
			s.logger.WarnContext(ctx, "skip bracket replay for match",
				"tournament_id", tournamentID,
				"match_id", m.ID,
				"error", err,
			)
			continue
		}
		changes = append(changes, advancedNow...)
	}

	if err := s.saveStandings(ctx, ranked); err != nil {
		return nil, err
	}
	for _, i := range applied {
		fixtures[i].ResultApplied = true
		changes = append(changes, progression.Change{Index: i, Fixture: fixtures[i]})
	}
	changes = append(changes, s.scheduleReady(ctx, item, fixtures)...)
	if _, err := s.saveProgression(ctx, fixtures, changes); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "standings recalculated",
		"tournament_id", tournamentID,
		"rows", len(ranked),
	)
	s.publish(ctx, Event{Type: EventStandingsUpdated, TournamentID: tournamentID, OccurredAt: now})

	return ranked, nil
}

// rankAndQualify ranks each group, flags qualification and returns both the
// flattened rows and the per-group tables.
func rankAndQualify(item tournament.Tournament, rows []standing.Standing, fixtures []fixture.Fixture, statuses map[string]match.Status) ([]standing.Standing, map[string][]standing.Standing) {
	remaining := make(map[string]int)
	for _, f := range fixtures {
		if !f.Stage.IsRoundRobin() || statuses[f.MatchID].IsFinal() {
			continue
		}
		if home, ok := f.Home.TeamID(); ok {
			remaining[home]++
		}
		if away, ok := f.Away.TeamID(); ok {
			remaining[away]++
		}
	}

	rule := item.QualificationRule()
	grouped := standing.RankByGroup(rows)
	for group, table := range grouped {
		groupRule := rule
		if group != "" && groupRule.Spots > 2 {
			// group stages send their top two through.
			groupRule.Spots = 2
		}
		grouped[group] = standing.EvaluateQualification(table, remaining, groupRule)
	}
	return standing.Flatten(grouped), grouped
}

// saveStandings creates rows without an id and updates the rest. Positions
// and qualification flags can move for any row, so every row is written.
func (s *StandingService) saveStandings(ctx context.Context, rows []standing.Standing) error {
	for i, row := range rows {
		if row.ID == "" {
			created, err := s.standingRepo.Create(ctx, row)
			if err != nil {
				return fmt.Errorf("create standing team=%s: %w", row.TeamID, err)
			}
			rows[i] = created
			continue
		}
		if err := s.standingRepo.Update(ctx, row); err != nil {
			return fmt.Errorf("update standing team=%s: %w", row.TeamID, err)
		}
	}
	return nil
}

// saveProgression persists filled slots on both the fixture and its match.
func (s *StandingService) saveProgression(ctx context.Context, fixtures []fixture.Fixture, changes []progression.Change) ([]fixture.Fixture, error) {
	seen := make(map[int]bool, len(changes))
	out := make([]fixture.Fixture, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		change := changes[i]
		if seen[change.Index] {
			continue
		}
		seen[change.Index] = true
		f := fixtures[change.Index]

		if err := s.fixtureRepo.Update(ctx, f); err != nil {
			return nil, fmt.Errorf("update fixture %d: %w", f.MatchNumber, err)
		}
		if err := s.syncMatch(ctx, f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	sortByMatchNumber(out)
	return out, nil
}

// scheduleReady dates fixtures whose last pending slot has just been filled.
// Placed fixtures are written back into fixtures and returned as changes.
func (s *StandingService) scheduleReady(ctx context.Context, item tournament.Tournament, fixtures []fixture.Fixture) []progression.Change {
	ready := false
	for _, f := range fixtures {
		if !f.IsScheduled() && f.Home.IsAssigned() && f.Away.IsAssigned() {
			ready = true
			break
		}
	}
	if !ready {
		return nil
	}

	window, venueIDs := playWindow(item, fixtures)
	placed, err := schedule.PlaceReady(fixtures, window, venueIDs, s.constraints)
	if err != nil {
		s.logger.WarnContext(ctx, "leave ready fixtures undated",
			"tournament_id", item.ID,
			"error", err,
		)
		return nil
	}

	var changes []progression.Change
	for i, f := range placed.Fixtures {
		if fixtures[i].IsScheduled() || !f.IsScheduled() {
			continue
		}
		fixtures[i] = f
		changes = append(changes, progression.Change{Index: i, Fixture: f})
	}
	for _, warning := range placed.Warnings {
		s.logger.WarnContext(ctx, "fixture scheduled with degraded constraints",
			"tournament_id", item.ID,
			"warning", warning,
		)
	}
	if len(placed.Degraded) > 0 {
		s.publish(ctx, Event{
			Type:         EventScheduleDegraded,
			TournamentID: item.ID,
			OccurredAt:   s.now().UTC(),
			Payload: map[string]any{
				"match_numbers": placed.Degraded,
				"warnings":      placed.Warnings,
			},
		})
	}
	return changes
}

// playWindow is the tournament's date range and venue list, widened to the
// days and venues its dated fixtures already use.
func playWindow(item tournament.Tournament, fixtures []fixture.Fixture) (schedule.Window, []string) {
	window := schedule.Window{Start: item.StartDate, End: item.EndDate}
	venueIDs := slices.Clone(item.VenueIDs)
	for _, f := range fixtures {
		if !f.IsScheduled() {
			continue
		}
		if window.Start.IsZero() || f.ScheduledDate.Before(window.Start) {
			window.Start = f.ScheduledDate
		}
		if f.ScheduledDate.After(window.End) {
			window.End = f.ScheduledDate
		}
		if f.VenueID != "" && !slices.Contains(venueIDs, f.VenueID) {
			venueIDs = append(venueIDs, f.VenueID)
		}
	}
	if window.End.Before(window.Start) {
		window.End = window.Start
	}
	return window, venueIDs
}

// syncMatch copies a fixture's teams, date and venue onto its match.
func (s *StandingService) syncMatch(ctx context.Context, f fixture.Fixture) error {
	if f.MatchID == "" {
		return nil
	}
	m, exists, err := s.matchRepo.GetByID(ctx, f.MatchID)
	if err != nil {
		return fmt.Errorf("get match %s: %w", f.MatchID, err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, f.MatchID)
	}

	home, _ := f.Home.TeamID()
	away, _ := f.Away.TeamID()
	at := scheduledAt(f.ScheduledDate, f.ScheduledTime)
	if m.HomeTeamID == home && m.AwayTeamID == away && m.VenueID == f.VenueID && sameTime(m.ScheduledAt, at) {
		return nil
	}
	m.HomeTeamID = home
	m.AwayTeamID = away
	m.VenueID = f.VenueID
	m.ScheduledAt = at
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("update match %s: %w", m.ID, err)
	}
	return nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (s *StandingService) accumulatePlayerStats(ctx context.Context, tournamentID string, m match.Match) error {
	now := s.now().UTC()
	for _, perf := range m.Performances {
		if strings.TrimSpace(perf.PlayerID) == "" {
			continue
		}
		stat, exists, err := s.statsRepo.Get(ctx, tournamentID, perf.PlayerID)
		if err != nil {
			return fmt.Errorf("get player stats player=%s: %w", perf.PlayerID, err)
		}
		if !exists {
			stat = playerstats.Stat{TournamentID: tournamentID, PlayerID: perf.PlayerID}
		}
		stat = stat.Accumulate(perf)
		stat.UpdatedAt = now

		if !exists {
			err = s.statsRepo.Create(ctx, stat)
		} else {
			err = s.statsRepo.Update(ctx, stat)
		}
		if err != nil {
			return fmt.Errorf("save player stats player=%s: %w", perf.PlayerID, err)
		}
	}
	return nil
}

func (s *StandingService) matchStatuses(ctx context.Context, tournamentID string) (map[string]match.Status, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list matches by tournament: %w", err)
	}
	out := make(map[string]match.Status, len(matches))
	for _, m := range matches {
		out[m.ID] = m.Status
	}
	return out, nil
}

func (s *StandingService) getTournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return item, nil
}

func (s *StandingService) getMatch(ctx context.Context, tournamentID, matchID string) (match.Match, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists || m.TournamentID != tournamentID {
		return match.Match{}, fmt.Errorf("%w: match=%s tournament=%s", ErrNotFound, matchID, tournamentID)
	}
	return m, nil
}

func (s *StandingService) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish event failed",
			"event", event.Type,
			"tournament_id", event.TournamentID,
			"error", err,
		)
	}
}
