package fixture

import "context"

// Repository persists the tournament to match links that carry fixture metadata.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Fixture, error)
	Create(ctx context.Context, item Fixture) (Fixture, error)
	Update(ctx context.Context, item Fixture) error
	Delete(ctx context.Context, tournamentID, fixtureID string) error
}
