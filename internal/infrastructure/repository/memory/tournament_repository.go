package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

type TournamentRepository struct {
	mu   sync.RWMutex
	byID map[string]tournament.Tournament
}

func NewTournamentRepository(items []tournament.Tournament) *TournamentRepository {
	byID := make(map[string]tournament.Tournament, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &TournamentRepository{byID: byID}
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	item.VenueIDs = slices.Clone(item.VenueIDs)
	return item, true, nil
}

func (r *TournamentRepository) ListByStatus(_ context.Context, status tournament.Status) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0)
	for _, item := range r.byID {
		if item.Status == status {
			item.VenueIDs = slices.Clone(item.VenueIDs)
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
