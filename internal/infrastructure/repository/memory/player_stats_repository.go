package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu   sync.RWMutex
	rows map[string]playerstats.Stat
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{rows: make(map[string]playerstats.Stat)}
}

func playerStatsKey(tournamentID, playerID string) string {
	return tournamentID + "|" + playerID
}

func (r *PlayerStatsRepository) Get(_ context.Context, tournamentID, playerID string) (playerstats.Stat, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[playerStatsKey(tournamentID, playerID)]
	return row, ok, nil
}

func (r *PlayerStatsRepository) Create(_ context.Context, item playerstats.Stat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerStatsKey(item.TournamentID, item.PlayerID)
	if _, exists := r.rows[key]; exists {
		return fmt.Errorf("player stats %s already exist", key)
	}
	r.rows[key] = item
	return nil
}

func (r *PlayerStatsRepository) Update(_ context.Context, item playerstats.Stat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := playerStatsKey(item.TournamentID, item.PlayerID)
	if _, exists := r.rows[key]; !exists {
		return fmt.Errorf("player stats %s not found", key)
	}
	r.rows[key] = item
	return nil
}
