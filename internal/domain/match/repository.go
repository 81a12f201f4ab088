package match

import "context"

// Repository persists matches.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Match, error)
	Create(ctx context.Context, item Match) (Match, error)
	Update(ctx context.Context, item Match) error
}
