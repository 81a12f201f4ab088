package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

// plan is the YAML output document.
type plan struct {
	Tournament string       `yaml:"tournament,omitempty"`
	Format     string       `yaml:"format"`
	Seed       uint64       `yaml:"seed"`
	Fixtures   []fixtureRow `yaml:"fixtures"`
	Warnings   []string     `yaml:"warnings,omitempty"`
	Skipped    int          `yaml:"skipped,omitempty"`
}

type fixtureRow struct {
	Match    int    `yaml:"match"`
	Stage    string `yaml:"stage"`
	Round    int    `yaml:"round"`
	Group    string `yaml:"group,omitempty"`
	Home     string `yaml:"home"`
	Away     string `yaml:"away"`
	Date     string `yaml:"date,omitempty"`
	Time     string `yaml:"time,omitempty"`
	Venue    string `yaml:"venue,omitempty"`
	Degraded bool   `yaml:"degraded,omitempty"`
}

// buildPlan generates and schedules fixtures for a roster. seed is used when
// the roster does not pin one.
func buildPlan(ctx context.Context, in roster, seed uint64, logger *logging.Logger) (plan, error) {
	window, err := in.window()
	if err != nil {
		return plan{}, err
	}
	constraints, err := in.constraints()
	if err != nil {
		return plan{}, err
	}
	if in.Seed != nil {
		seed = *in.Seed
	}

	format := fixture.NormalizeFormat(in.Format)
	if format == "" {
		format = fixture.FormatLeague
	}
	venueIDs := in.venueIDs()

	generated, err := fixture.NewGenerator(logger).Generate(ctx, team.SeededIDs(in.teams()), format, fixture.Options{
		DoubleRound: in.DoubleRound,
		VenueIDs:    venueIDs,
		Rand:        rand.New(rand.NewPCG(seed, seed>>1|1)),
	})
	if err != nil {
		return plan{}, fmt.Errorf("generate fixtures: %w", err)
	}

	scheduled, err := schedule.Schedule(generated, window, venueIDs, constraints)
	if err != nil {
		return plan{}, fmt.Errorf("schedule fixtures: %w", err)
	}
	for _, warning := range scheduled.Warnings {
		logger.WarnContext(ctx, "fixture scheduled with degraded constraints", "warning", warning)
	}
	logger.InfoContext(ctx, "fixtures generated",
		"tournament", in.Tournament,
		"format", string(format),
		"fixtures", len(scheduled.Fixtures),
		"degraded", len(scheduled.Degraded),
		"skipped", scheduled.Skipped,
	)

	rows := make([]fixtureRow, 0, len(scheduled.Fixtures))
	for _, f := range scheduled.Fixtures {
		rows = append(rows, toRow(f))
	}
	return plan{
		Tournament: in.Tournament,
		Format:     string(format),
		Seed:       seed,
		Fixtures:   rows,
		Warnings:   scheduled.Warnings,
		Skipped:    scheduled.Skipped,
	}, nil
}

func toRow(f fixture.Fixture) fixtureRow {
	row := fixtureRow{
		Match:    f.MatchNumber,
		Stage:    string(f.Stage),
		Round:    f.Round,
		Group:    f.Group,
		Home:     sideLabel(f, true),
		Away:     sideLabel(f, false),
		Time:     f.ScheduledTime,
		Venue:    f.VenueID,
		Degraded: f.Degraded,
	}
	if f.IsScheduled() {
		row.Date = f.ScheduledDate.Format(dateLayout)
	}
	return row
}

// sideLabel prints a team id, or the placeholder it is waiting on.
func sideLabel(f fixture.Fixture, home bool) string {
	slot := f.Side(home)
	if id, ok := slot.TeamID(); ok {
		return id
	}
	if slot.IsBye() {
		return "bye"
	}
	source := f.AwaySource
	if home {
		source = f.HomeSource
	}
	if label := strings.TrimSpace(source.String()); label != "" {
		return label
	}
	return "tbd"
}

func writePlan(w io.Writer, p plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}
