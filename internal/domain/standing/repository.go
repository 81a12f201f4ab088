package standing

import "context"

type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Standing, error)
	GetByTeam(ctx context.Context, tournamentID, teamID string) (Standing, bool, error)
	Create(ctx context.Context, item Standing) (Standing, error)
	Update(ctx context.Context, item Standing) error
}
