package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	ListByStatus(ctx context.Context, status Status) ([]Tournament, error)
}
