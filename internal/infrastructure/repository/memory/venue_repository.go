package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
)

type VenueRepository struct {
	mu   sync.RWMutex
	byID map[string]venue.Venue
}

func NewVenueRepository(items []venue.Venue) *VenueRepository {
	byID := make(map[string]venue.Venue, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &VenueRepository{byID: byID}
}

func (r *VenueRepository) List(_ context.Context) ([]venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]venue.Venue, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *VenueRepository) ListByIDs(_ context.Context, ids []string) ([]venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]venue.Venue, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
