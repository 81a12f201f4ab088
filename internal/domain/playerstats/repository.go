package playerstats

import "context"

type Repository interface {
	Get(ctx context.Context, tournamentID, playerID string) (Stat, bool, error)
	Create(ctx context.Context, item Stat) error
	Update(ctx context.Context, item Stat) error
}
