package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo tournaments into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, v := range memory.SeedVenues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO venues (public_id, name, city, capacity, unavailable_dates)
VALUES (:public_id, :name, :city, :capacity, :unavailable_dates)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":         v.ID,
			"name":              v.Name,
			"city":              v.City,
			"capacity":          v.Capacity,
			"unavailable_dates": stringsOrEmpty(v.Unavailable),
		})
		if err != nil {
			return fmt.Errorf("bind seed venue %s query: %w", v.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed venue %s: %w", v.ID, err)
		}
	}

	for _, t := range memory.SeedTournaments() {
		points, err := sonic.MarshalString(pointsTableRecord{
			Win:      t.Points.Win,
			Loss:     t.Points.Loss,
			Tie:      t.Points.Tie,
			NoResult: t.Points.NoResult,
		})
		if err != nil {
			return fmt.Errorf("encode points table tournament=%s: %w", t.ID, err)
		}

		sqlQuery, args, err := sqlx.Named(`
INSERT INTO tournaments (public_id, name, sport, format, double_round, status, start_date, end_date,
    venue_public_ids, points_table, qualification_spots, knockout_tie_policy)
VALUES (:public_id, :name, :sport, :format, :double_round, :status, :start_date, :end_date,
    :venue_public_ids, CAST(:points_table AS JSONB), :qualification_spots, :knockout_tie_policy)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           t.ID,
			"name":                t.Name,
			"sport":               t.Sport,
			"format":              t.Format,
			"double_round":        t.DoubleRound,
			"status":              string(t.Status),
			"start_date":          t.StartDate.UTC(),
			"end_date":            t.EndDate.UTC(),
			"venue_public_ids":    stringsOrEmpty(t.VenueIDs),
			"points_table":        points,
			"qualification_spots": t.QualificationSpots,
			"knockout_tie_policy": t.KnockoutTiePolicy,
		})
		if err != nil {
			return fmt.Errorf("bind seed tournament %s query: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed tournament %s: %w", t.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, tournament_public_id, name, short_name, seed, unavailable_dates)
VALUES (:public_id, :tournament_public_id, :name, :short_name, :seed, :unavailable_dates)
ON CONFLICT (tournament_public_id, public_id) DO NOTHING`, map[string]any{
			"public_id":            t.ID,
			"tournament_public_id": t.TournamentID,
			"name":                 t.Name,
			"short_name":           t.Short,
			"seed":                 t.Seed,
			"unavailable_dates":    stringsOrEmpty(t.Unavailable),
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
