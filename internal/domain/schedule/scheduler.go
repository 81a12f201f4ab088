package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
)

var (
	ErrInvertedWindow   = crerr.New("end date is before start date")
	ErrNoVenues         = crerr.New("at least one venue is required")
	ErrInsufficientDays = crerr.New("not enough match days in window")
)

const day = 24 * time.Hour

// Window is the inclusive range of calendar days fixtures may use.
type Window struct {
	Start time.Time
	End   time.Time
}

// Constraints tune placement.
type Constraints struct {
	MaxMatchesPerDay   int
	AllowWeekdays      bool
	PrioritizeWeekends bool
	AvoidBackToBack    bool
	// Cooldown is the minimum gap between two matches of one team when
	// AvoidBackToBack is set. It is applied in whole days.
	Cooldown       time.Duration
	MatineeSlot    string
	EveningSlot    string
	PlayoffGapDays int
	// TeamUnavailable and VenueUnavailable block specific calendar days.
	TeamUnavailable  map[string][]time.Time
	VenueUnavailable map[string][]time.Time
}

func DefaultConstraints() Constraints {
	return Constraints{
		MaxMatchesPerDay: 2,
		AllowWeekdays:    true,
		AvoidBackToBack:  true,
		Cooldown:         24 * time.Hour,
		MatineeSlot:      "14:00",
		EveningSlot:      "19:30",
		PlayoffGapDays:   2,
	}
}

func (c Constraints) normalized() Constraints {
	defaults := DefaultConstraints()
	if c.MaxMatchesPerDay <= 0 {
		c.MaxMatchesPerDay = defaults.MaxMatchesPerDay
	}
	if c.MatineeSlot == "" {
		c.MatineeSlot = defaults.MatineeSlot
	}
	if c.EveningSlot == "" {
		c.EveningSlot = defaults.EveningSlot
	}
	if c.PlayoffGapDays <= 0 {
		c.PlayoffGapDays = defaults.PlayoffGapDays
	}
	if c.Cooldown < 0 {
		c.Cooldown = 0
	}
	return c
}

// Result is the scheduled fixture list plus any soft-constraint violations.
type Result struct {
	Fixtures []fixture.Fixture
	Warnings []string
	// Degraded lists match numbers placed in breach of a constraint.
	Degraded []int
	// Skipped counts fixtures left unscheduled because a slot is still a
	// bye or waiting on an earlier result.
	Skipped int
}

func (r Result) IsDegraded() bool {
	return len(r.Degraded) > 0
}

// Schedule assigns a date, time slot and venue to every fixture whose teams
// are known, greedily in round order, then appends playoffs after the last
// regular match. It never fails on soft constraints: a fixture with no
// eligible day is forced onto the end date and reported as degraded.
func Schedule(fixtures []fixture.Fixture, window Window, venueIDs []string, c Constraints) (Result, error) {
	c = c.normalized()
	start := DateOf(window.Start)
	end := DateOf(window.End)
	if end.Before(start) {
		return Result{}, crerr.Wrapf(ErrInvertedWindow, "%s > %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if len(venueIDs) == 0 {
		return Result{}, ErrNoVenues
	}

	out := make([]fixture.Fixture, len(fixtures))
	copy(out, fixtures)

	regular := make([]int, 0, len(out))
	playoffs := make([]int, 0)
	skipped := 0
	for i, f := range out {
		switch {
		case f.IsPlayoff:
			playoffs = append(playoffs, i)
		case f.Home.IsAssigned() && f.Away.IsAssigned():
			regular = append(regular, i)
		default:
			skipped++
		}
	}
	slices.SortStableFunc(regular, func(a, b int) int {
		fa, fb := out[a], out[b]
		if r := cmp.Compare(fa.Round, fb.Round); r != 0 {
			return r
		}
		if p := cmp.Compare(fa.Stage.Priority(), fb.Stage.Priority()); p != 0 {
			return p
		}
		return cmp.Compare(fa.MatchNumber, fb.MatchNumber)
	})

	s := newState(start, end, venueIDs, c)
	if capacity := s.capacity(); capacity < len(regular) {
		return Result{}, crerr.Wrapf(ErrInsufficientDays, "%d fixtures, room for %d", len(regular), capacity)
	}

	result := Result{Skipped: skipped}
	for n, idx := range regular {
		f := &out[idx]
		if s.placeEarliest(f, len(regular)-n) {
			continue
		}
		s.force(f, end)
		result.Degraded = append(result.Degraded, f.MatchNumber)
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"match %d: no eligible day between %s and %s, forced onto %s",
			f.MatchNumber, start.Format(time.DateOnly), end.Format(time.DateOnly), end.Format(time.DateOnly)))
	}

	if len(playoffs) > 0 {
		slices.SortStableFunc(playoffs, func(a, b int) int {
			return cmp.Compare(out[a].MatchNumber, out[b].MatchNumber)
		})
		next := start
		if last, ok := s.lastBooked(); ok {
			next = last.AddDate(0, 0, c.PlayoffGapDays)
		}
		for _, idx := range playoffs {
			f := &out[idx]
			s.placePlayoff(f, next)
			if next.After(end) {
				result.Degraded = append(result.Degraded, f.MatchNumber)
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"match %d: playoff on %s falls after end date %s",
					f.MatchNumber, next.Format(time.DateOnly), end.Format(time.DateOnly)))
			}
			next = next.AddDate(0, 0, c.PlayoffGapDays)
		}
	}

	result.Fixtures = out
	return result, nil
}

// DateOf truncates to the calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
