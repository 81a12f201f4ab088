package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

var tournamentColumns = qb.Columns(tournamentTableModel{})

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(
			qb.Eq("public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build select tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament by id: %w", err)
	}

	item, err := tournamentFromRow(row)
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return item, true, nil
}

func (r *TournamentRepository) ListByStatus(ctx context.Context, status tournament.Status) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(
			qb.Eq("status", string(status)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tournaments by status query: %w", err)
	}

	var rows []tournamentTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments by status: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		item, err := tournamentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func tournamentFromRow(row tournamentTableModel) (tournament.Tournament, error) {
	var points pointsTableRecord
	if row.PointsTable != "" {
		if err := sonic.UnmarshalString(row.PointsTable, &points); err != nil {
			return tournament.Tournament{}, fmt.Errorf("decode points table tournament=%s: %w", row.PublicID, err)
		}
	}

	return tournament.Tournament{
		ID:          row.PublicID,
		Name:        row.Name,
		Sport:       row.Sport,
		Format:      row.Format,
		DoubleRound: row.DoubleRound,
		Status:      tournament.Status(row.Status),
		StartDate:   row.StartDate.UTC(),
		EndDate:     row.EndDate.UTC(),
		VenueIDs:    []string(row.VenueIDs),
		Points: standing.PointsTable{
			Win:      points.Win,
			Loss:     points.Loss,
			Tie:      points.Tie,
			NoResult: points.NoResult,
		},
		QualificationSpots: row.QualificationSpots,
		KnockoutTiePolicy:  row.KnockoutTiePolicy,
	}, nil
}
