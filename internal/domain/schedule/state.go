package schedule

import (
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
)

type venueDay struct {
	venueID string
	date    time.Time
}

// state tracks bookings while fixtures are placed.
type state struct {
	start, end  time.Time
	venues      []string
	c           Constraints
	cooldown    int
	dayCount    map[time.Time]int
	dayTimes    map[time.Time]map[string]bool
	venueBooked map[venueDay]bool
	teamDays    map[string][]time.Time
	teamBlocked map[string]map[time.Time]bool
	venueClosed map[string]map[time.Time]bool
	rotation    int
	last        time.Time
}

func newState(start, end time.Time, venues []string, c Constraints) *state {
	cooldown := 0
	if c.AvoidBackToBack {
		cooldown = int((c.Cooldown + day - 1) / day)
	}
	return &state{
		start:       start,
		end:         end,
		venues:      venues,
		c:           c,
		cooldown:    cooldown,
		dayCount:    make(map[time.Time]int),
		dayTimes:    make(map[time.Time]map[string]bool),
		venueBooked: make(map[venueDay]bool),
		teamDays:    make(map[string][]time.Time),
		teamBlocked: dayIndex(c.TeamUnavailable),
		venueClosed: dayIndex(c.VenueUnavailable),
	}
}

func dayIndex(in map[string][]time.Time) map[string]map[time.Time]bool {
	out := make(map[string]map[time.Time]bool, len(in))
	for key, days := range in {
		set := make(map[time.Time]bool, len(days))
		for _, d := range days {
			set[DateOf(d)] = true
		}
		out[key] = set
	}
	return out
}

func (s *state) days() []time.Time {
	out := make([]time.Time, 0)
	for d := s.start; !d.After(s.end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func (s *state) openDay(d time.Time) bool {
	return s.c.AllowWeekdays || IsWeekend(d)
}

// perDay is the most matches one day can hold: the configured cap, bounded
// by one match per venue.
func (s *state) perDay() int {
	return min(s.c.MaxMatchesPerDay, len(s.venues))
}

func (s *state) capacity() int {
	total := 0
	for _, d := range s.days() {
		if s.openDay(d) {
			total += s.perDay()
		}
	}
	return total
}

// weekendRoom is the unused weekend capacity from d to the end of the window.
func (s *state) weekendRoom(from time.Time) int {
	room := 0
	for d := from; !d.After(s.end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			room += max(0, s.perDay()-s.dayCount[d])
		}
	}
	return room
}

func (s *state) teamFree(teamID string, d time.Time) bool {
	if s.teamBlocked[teamID][d] {
		return false
	}
	for _, booked := range s.teamDays[teamID] {
		gap := int(absDuration(d.Sub(booked)) / day)
		if gap == 0 || gap <= s.cooldown {
			return false
		}
	}
	return true
}

func (s *state) venueFree(venueID string, d time.Time) bool {
	return !s.venueBooked[venueDay{venueID: venueID, date: d}] && !s.venueClosed[venueID][d]
}

func (s *state) pickVenue(f *fixture.Fixture, d time.Time) (string, bool) {
	if f.VenueID != "" {
		return f.VenueID, s.venueFree(f.VenueID, d)
	}
	for k := range s.venues {
		candidate := s.venues[(s.rotation+k)%len(s.venues)]
		if s.venueFree(candidate, d) {
			return candidate, true
		}
	}
	return "", false
}

func (s *state) slotOrder(d time.Time) []string {
	if IsWeekend(d) {
		return []string{s.c.MatineeSlot, s.c.EveningSlot}
	}
	return []string{s.c.EveningSlot, s.c.MatineeSlot}
}

func (s *state) pickTime(d time.Time) string {
	order := s.slotOrder(d)
	for _, slot := range order {
		if !s.dayTimes[d][slot] {
			return slot
		}
	}
	return order[len(order)-1]
}

// placeEarliest books the first eligible day. remaining counts the regular
// fixtures still to place, this one included. Weekend room ignores team
// cooldowns, so when holding weekdays back leaves no day at all the window
// is walked again without weekend priority.
func (s *state) placeEarliest(f *fixture.Fixture, remaining int) bool {
	if s.placeFrom(f, s.start, remaining, s.c.PrioritizeWeekends) {
		return true
	}
	return s.c.PrioritizeWeekends && s.placeFrom(f, s.start, remaining, false)
}

func (s *state) placeFrom(f *fixture.Fixture, from time.Time, remaining int, preferWeekends bool) bool {
	for d := from; !d.After(s.end); d = d.AddDate(0, 0, 1) {
		if preferWeekends && !IsWeekend(d) && s.weekendRoom(d) >= remaining {
			continue
		}
		if s.tryDay(f, d) {
			return true
		}
	}
	return false
}

// tryDay books f on d when every hard constraint allows it.
func (s *state) tryDay(f *fixture.Fixture, d time.Time) bool {
	if !s.openDay(d) || s.dayCount[d] >= s.perDay() {
		return false
	}
	home, away, _ := f.Teams()
	if !s.teamFree(home, d) || !s.teamFree(away, d) {
		return false
	}
	venueID, ok := s.pickVenue(f, d)
	if !ok {
		return false
	}
	s.book(f, d, venueID, s.pickTime(d))
	return true
}

func (s *state) force(f *fixture.Fixture, d time.Time) {
	venueID := f.VenueID
	if venueID == "" {
		venueID = s.venues[s.rotation%len(s.venues)]
	}
	s.book(f, d, venueID, s.pickTime(d))
	f.Degraded = true
}

func (s *state) placePlayoff(f *fixture.Fixture, d time.Time) {
	venueID, ok := s.pickVenue(f, d)
	if !ok {
		venueID = s.venues[s.rotation%len(s.venues)]
	}
	s.book(f, d, venueID, s.pickTime(d))
	if d.After(s.end) {
		f.Degraded = true
	}
}

func (s *state) book(f *fixture.Fixture, d time.Time, venueID, slot string) {
	f.ScheduledDate = d
	f.ScheduledTime = slot
	f.VenueID = venueID
	s.reserve(*f)
	s.rotation++
}

// reserve records an already dated fixture against its day, venue and teams.
func (s *state) reserve(f fixture.Fixture) {
	d := DateOf(f.ScheduledDate)
	slot := f.ScheduledTime
	venueID := f.VenueID

	s.dayCount[d]++
	if s.dayTimes[d] == nil {
		s.dayTimes[d] = make(map[string]bool)
	}
	s.dayTimes[d][slot] = true
	s.venueBooked[venueDay{venueID: venueID, date: d}] = true
	if home, ok := f.Home.TeamID(); ok {
		s.teamDays[home] = append(s.teamDays[home], d)
	}
	if away, ok := f.Away.TeamID(); ok {
		s.teamDays[away] = append(s.teamDays[away], d)
	}
	if d.After(s.last) {
		s.last = d
	}
}

func (s *state) lastBooked() (time.Time, bool) {
	return s.last, !s.last.IsZero()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
