package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-engine/internal/domain/team"
)

type TeamRepository struct {
	mu                sync.RWMutex
	teamsByTournament map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	teamsByTournament := make(map[string][]team.Team)
	for _, item := range teams {
		teamsByTournament[item.TournamentID] = append(teamsByTournament[item.TournamentID], item)
	}

	return &TeamRepository{teamsByTournament: teamsByTournament}
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsByTournament[tournamentID]
	out := make([]team.Team, 0, len(teams))
	out = append(out, teams...)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, tournamentID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teamsByTournament[tournamentID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}
