package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
)

const dateLayout = "2006-01-02"

// roster is the YAML input: one tournament with its teams and venues.
type roster struct {
	Tournament  string             `yaml:"tournament"`
	Format      string             `yaml:"format"`
	DoubleRound bool               `yaml:"double_round"`
	StartDate   string             `yaml:"start_date"`
	EndDate     string             `yaml:"end_date"`
	Seed        *uint64            `yaml:"seed"`
	Teams       []rosterTeam       `yaml:"teams"`
	Venues      []rosterVenue      `yaml:"venues"`
	Constraints *rosterConstraints `yaml:"constraints"`
}

type rosterTeam struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Seed        int      `yaml:"seed"`
	Unavailable []string `yaml:"unavailable"`
}

type rosterVenue struct {
	ID          string   `yaml:"id"`
	Unavailable []string `yaml:"unavailable"`
}

type rosterConstraints struct {
	MaxMatchesPerDay   *int    `yaml:"max_matches_per_day"`
	AllowWeekdays      *bool   `yaml:"allow_weekdays"`
	PrioritizeWeekends *bool   `yaml:"prioritize_weekends"`
	AvoidBackToBack    *bool   `yaml:"avoid_back_to_back"`
	CooldownDays       *int    `yaml:"cooldown_days"`
	MatineeSlot        *string `yaml:"matinee_slot"`
	EveningSlot        *string `yaml:"evening_slot"`
	PlayoffGapDays     *int    `yaml:"playoff_gap_days"`
}

func decodeRoster(r io.Reader) (roster, error) {
	var out roster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return roster{}, fmt.Errorf("decode roster: %w", err)
	}
	if err := out.validate(); err != nil {
		return roster{}, err
	}
	return out, nil
}

func (r roster) validate() error {
	if len(r.Teams) < 2 {
		return fmt.Errorf("roster needs at least two teams, has %d", len(r.Teams))
	}
	if len(r.Venues) == 0 {
		return fmt.Errorf("roster needs at least one venue")
	}
	seen := make(map[string]struct{}, len(r.Teams))
	for i, item := range r.Teams {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("team #%d has no id", i+1)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate team id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (r roster) window() (schedule.Window, error) {
	start, err := time.Parse(dateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return schedule.Window{}, fmt.Errorf("parse start_date %q: expected YYYY-MM-DD", r.StartDate)
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(r.EndDate))
	if err != nil {
		return schedule.Window{}, fmt.Errorf("parse end_date %q: expected YYYY-MM-DD", r.EndDate)
	}
	return schedule.Window{Start: start, End: end}, nil
}

func (r roster) teams() []team.Team {
	out := make([]team.Team, 0, len(r.Teams))
	for _, item := range r.Teams {
		out = append(out, team.Team{
			ID:           strings.TrimSpace(item.ID),
			TournamentID: r.Tournament,
			Name:         item.Name,
			Seed:         item.Seed,
			Unavailable:  item.Unavailable,
		})
	}
	return out
}

func (r roster) venueIDs() []string {
	out := make([]string, 0, len(r.Venues))
	for _, item := range r.Venues {
		out = append(out, strings.TrimSpace(item.ID))
	}
	return out
}

// constraints overlays the roster's overrides on the scheduler defaults and
// resolves team and venue blackout days.
func (r roster) constraints() (schedule.Constraints, error) {
	out := schedule.DefaultConstraints()
	if c := r.Constraints; c != nil {
		if c.MaxMatchesPerDay != nil {
			out.MaxMatchesPerDay = *c.MaxMatchesPerDay
		}
		if c.AllowWeekdays != nil {
			out.AllowWeekdays = *c.AllowWeekdays
		}
		if c.PrioritizeWeekends != nil {
			out.PrioritizeWeekends = *c.PrioritizeWeekends
		}
		if c.AvoidBackToBack != nil {
			out.AvoidBackToBack = *c.AvoidBackToBack
		}
		if c.CooldownDays != nil {
			out.Cooldown = time.Duration(*c.CooldownDays) * 24 * time.Hour
		}
		if c.MatineeSlot != nil {
			out.MatineeSlot = *c.MatineeSlot
		}
		if c.EveningSlot != nil {
			out.EveningSlot = *c.EveningSlot
		}
		if c.PlayoffGapDays != nil {
			out.PlayoffGapDays = *c.PlayoffGapDays
		}
	}

	teamDays := make(map[string][]time.Time)
	for _, item := range r.Teams {
		days, err := parseDays(item.Unavailable)
		if err != nil {
			return schedule.Constraints{}, fmt.Errorf("team %s: %w", item.ID, err)
		}
		if len(days) > 0 {
			teamDays[strings.TrimSpace(item.ID)] = days
		}
	}
	venueDays := make(map[string][]time.Time)
	for _, item := range r.Venues {
		days, err := parseDays(item.Unavailable)
		if err != nil {
			return schedule.Constraints{}, fmt.Errorf("venue %s: %w", item.ID, err)
		}
		if len(days) > 0 {
			venueDays[strings.TrimSpace(item.ID)] = days
		}
	}
	out.TeamUnavailable = teamDays
	out.VenueUnavailable = venueDays
	return out, nil
}

func parseDays(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, raw := range values {
		day, err := time.Parse(dateLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse unavailable day %q: expected YYYY-MM-DD", raw)
		}
		out = append(out, day)
	}
	return out, nil
}
