package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
)

type StandingRepository struct {
	mu     sync.RWMutex
	ids    idgen.Generator
	byTeam map[string]map[string]standing.Standing
	order  map[string][]string
}

func NewStandingRepository(ids idgen.Generator) *StandingRepository {
	return &StandingRepository{
		ids:    ids,
		byTeam: make(map[string]map[string]standing.Standing),
		order:  make(map[string][]string),
	}
}

func (r *StandingRepository) ListByTournament(_ context.Context, tournamentID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byTeam[tournamentID]
	out := make([]standing.Standing, 0, len(rows))
	for _, teamID := range r.order[tournamentID] {
		out = append(out, rows[teamID])
	}
	return out, nil
}

func (r *StandingRepository) GetByTeam(_ context.Context, tournamentID, teamID string) (standing.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byTeam[tournamentID][teamID]
	return row, ok, nil
}

func (r *StandingRepository) Create(_ context.Context, item standing.Standing) (standing.Standing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.byTeam[item.TournamentID]
	if rows == nil {
		rows = make(map[string]standing.Standing)
		r.byTeam[item.TournamentID] = rows
	}
	if _, exists := rows[item.TeamID]; exists {
		return standing.Standing{}, fmt.Errorf("standing for team %s already exists in tournament %s", item.TeamID, item.TournamentID)
	}
	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return standing.Standing{}, fmt.Errorf("generate standing id: %w", err)
		}
		item.ID = id
	}

	rows[item.TeamID] = item
	r.order[item.TournamentID] = append(r.order[item.TournamentID], item.TeamID)
	return item, nil
}

func (r *StandingRepository) Update(_ context.Context, item standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.byTeam[item.TournamentID]
	if _, exists := rows[item.TeamID]; !exists {
		return fmt.Errorf("standing for team %s not found in tournament %s", item.TeamID, item.TournamentID)
	}
	rows[item.TeamID] = item
	return nil
}
