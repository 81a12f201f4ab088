package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
)

// PlaceReady dates fixtures that were left unscheduled while a slot was
// pending and now hold two teams. Fixtures that already carry a date keep it
// and block their day, venue and teams. A ready fixture goes on the first
// eligible day after every lower numbered dated fixture. When the window has
// no such day it is placed on the following day, or on the end date if that
// is later, and reported as degraded.
func PlaceReady(fixtures []fixture.Fixture, window Window, venueIDs []string, c Constraints) (Result, error) {
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

	s := newState(start, end, venueIDs, c)
	for _, f := range out {
		if f.IsScheduled() {
			s.reserve(f)
		}
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(out[a].MatchNumber, out[b].MatchNumber)
	})

	result := Result{}
	for _, i := range order {
		f := &out[i]
		if f.IsScheduled() {
			continue
		}
		if !f.Home.IsAssigned() || !f.Away.IsAssigned() {
			result.Skipped++
			continue
		}

		from := start
		if prior, ok := latestBefore(out, f.MatchNumber); ok && !prior.Before(from) {
			from = prior.AddDate(0, 0, 1)
		}
		if s.placeFrom(f, from, 1, false) {
			continue
		}

		forced := from
		if forced.Before(end) {
			forced = end
		}
		venueID, ok := s.pickVenue(f, forced)
		if !ok {
			venueID = s.venues[s.rotation%len(s.venues)]
		}
		s.book(f, forced, venueID, s.pickTime(forced))
		f.Degraded = true
		result.Degraded = append(result.Degraded, f.MatchNumber)
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"match %d: no eligible day from %s to %s, placed on %s",
			f.MatchNumber, from.Format(time.DateOnly), end.Format(time.DateOnly), forced.Format(time.DateOnly)))
	}

	result.Fixtures = out
	return result, nil
}

func latestBefore(fixtures []fixture.Fixture, matchNumber int) (time.Time, bool) {
	var latest time.Time
	for _, f := range fixtures {
		if f.MatchNumber >= matchNumber || !f.IsScheduled() {
			continue
		}
		if d := DateOf(f.ScheduledDate); d.After(latest) {
			latest = d
		}
	}
	return latest, !latest.IsZero()
}
