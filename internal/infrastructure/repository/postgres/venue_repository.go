package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

var venueColumns = qb.Columns(venueTableModel{})

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) List(ctx context.Context) ([]venue.Venue, error) {
	query, args, err := qb.Select(venueColumns...).From("venues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *VenueRepository) ListByIDs(ctx context.Context, ids []string) ([]venue.Venue, error) {
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := qb.Select(venueColumns...).From("venues").
		Where(
			qb.In("public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues by ids query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *VenueRepository) list(ctx context.Context, query string, args []any) ([]venue.Venue, error) {
	var rows []venueTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, venue.Venue{
			ID:          row.PublicID,
			Name:        row.Name,
			City:        row.City,
			Capacity:    row.Capacity,
			Unavailable: []string(row.Unavailable),
		})
	}
	return out, nil
}
