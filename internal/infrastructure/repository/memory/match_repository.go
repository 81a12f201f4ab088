package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
)

type MatchRepository struct {
	mu    sync.RWMutex
	ids   idgen.Generator
	byID  map[string]match.Match
	order []string
}

func NewMatchRepository(ids idgen.Generator) *MatchRepository {
	return &MatchRepository{
		ids:  ids,
		byID: make(map[string]match.Match),
	}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.order {
		if item := r.byID[id]; item.TournamentID == tournamentID {
			out = append(out, cloneMatch(item))
		}
	}
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return match.Match{}, fmt.Errorf("generate match id: %w", err)
		}
		item.ID = id
	}
	if _, exists := r.byID[item.ID]; exists {
		return match.Match{}, fmt.Errorf("match %s already exists", item.ID)
	}

	r.byID[item.ID] = cloneMatch(item)
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[item.ID]; !exists {
		return fmt.Errorf("match %s not found", item.ID)
	}
	r.byID[item.ID] = cloneMatch(item)
	return nil
}

func cloneMatch(item match.Match) match.Match {
	item.Performances = slices.Clone(item.Performances)
	return item
}
