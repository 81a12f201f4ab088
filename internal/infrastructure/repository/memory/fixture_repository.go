package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
)

type FixtureRepository struct {
	mu                   sync.RWMutex
	ids                  idgen.Generator
	fixturesByTournament map[string][]fixture.Fixture
}

func NewFixtureRepository(ids idgen.Generator) *FixtureRepository {
	return &FixtureRepository{
		ids:                  ids,
		fixturesByTournament: make(map[string][]fixture.Fixture),
	}
}

func (r *FixtureRepository) ListByTournament(_ context.Context, tournamentID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesByTournament[tournamentID]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)

	return out, nil
}

func (r *FixtureRepository) Create(_ context.Context, item fixture.Fixture) (fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
		}
		item.ID = id
	}
	for _, existing := range r.fixturesByTournament[item.TournamentID] {
		if existing.MatchNumber == item.MatchNumber {
			return fixture.Fixture{}, fmt.Errorf("fixture number %d already exists in tournament %s", item.MatchNumber, item.TournamentID)
		}
	}

	r.fixturesByTournament[item.TournamentID] = append(r.fixturesByTournament[item.TournamentID], item)
	return item, nil
}

func (r *FixtureRepository) Update(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.fixturesByTournament[item.TournamentID]
	for idx := range rows {
		if rows[idx].ID == item.ID {
			rows[idx] = item
			return nil
		}
	}
	return fmt.Errorf("fixture %s not found", item.ID)
}

func (r *FixtureRepository) Delete(_ context.Context, tournamentID, fixtureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.fixturesByTournament[tournamentID]
	for idx := range rows {
		if rows[idx].ID == fixtureID {
			r.fixturesByTournament[tournamentID] = append(rows[:idx:idx], rows[idx+1:]...)
			return nil
		}
	}
	return nil
}
