package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

var fixtureColumns = qb.Columns(fixtureTableModel{})

type FixtureRepository struct {
	db  *sqlx.DB
	ids idgen.Generator
	now func() time.Time
}

func NewFixtureRepository(db *sqlx.DB, ids idgen.Generator) *FixtureRepository {
	return &FixtureRepository{db: db, ids: ids, now: time.Now}
}

func (r *FixtureRepository) ListByTournament(ctx context.Context, tournamentID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by tournament query: %w", err)
	}

	var rows []fixtureTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by tournament: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		item, err := fixtureFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) (fixture.Fixture, error) {
	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
		}
		item.ID = id
	}

	row, err := fixtureToRow(item)
	if err != nil {
		return fixture.Fixture{}, err
	}
	query, args, err := qb.InsertModel("fixtures", row, "")
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("build insert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fixture.Fixture{}, fmt.Errorf("fixture %d already exists for tournament=%s: %w", item.MatchNumber, item.TournamentID, err)
		}
		return fixture.Fixture{}, fmt.Errorf("insert fixture %d: %w", item.MatchNumber, err)
	}
	return item, nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	row, err := fixtureToRow(item)
	if err != nil {
		return err
	}
	query, args, err := qb.UpdateModel("fixtures", fixtureWriteModel{
		fixtureTableModel: row,
		UpdatedAt:         r.now().UTC(),
	}, "tournament_public_id", "public_id")
	if err != nil {
		return fmt.Errorf("build update fixture query: %w", err)
	}

	found, err := execExpectingRow(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update fixture %s: %w", item.ID, err)
	}
	if !found {
		return fmt.Errorf("fixture %s not found", item.ID)
	}
	return nil
}

// Delete soft deletes a fixture so the match number can be reused by a
// regenerated schedule.
func (r *FixtureRepository) Delete(ctx context.Context, tournamentID, fixtureID string) error {
	query, args, err := qb.Update("fixtures").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete fixture %s: %w", fixtureID, err)
	}
	return nil
}

func fixtureToRow(item fixture.Fixture) (fixtureTableModel, error) {
	homeSource, err := encodeSource(item.HomeSource)
	if err != nil {
		return fixtureTableModel{}, fmt.Errorf("encode home source fixture=%d: %w", item.MatchNumber, err)
	}
	awaySource, err := encodeSource(item.AwaySource)
	if err != nil {
		return fixtureTableModel{}, fmt.Errorf("encode away source fixture=%d: %w", item.MatchNumber, err)
	}
	homeTeam, _ := item.Home.TeamID()
	awayTeam, _ := item.Away.TeamID()

	return fixtureTableModel{
		PublicID:        item.ID,
		TournamentID:    item.TournamentID,
		MatchID:         item.MatchID,
		HomeSlot:        item.Home.Kind().String(),
		HomeTeamID:      homeTeam,
		AwaySlot:        item.Away.Kind().String(),
		AwayTeamID:      awayTeam,
		HomeSource:      homeSource,
		AwaySource:      awaySource,
		Round:           item.Round,
		MatchNumber:     item.MatchNumber,
		Stage:           string(item.Stage),
		Group:           item.Group,
		BracketPosition: item.BracketPosition,
		IsPlayoff:       item.IsPlayoff,
		ScheduledDate:   dateToNullTime(item.ScheduledDate),
		ScheduledTime:   item.ScheduledTime,
		VenueID:         item.VenueID,
		Degraded:        item.Degraded,
		ResultApplied:   item.ResultApplied,
	}, nil
}

func fixtureFromRow(row fixtureTableModel) (fixture.Fixture, error) {
	homeSource, err := decodeSource(row.HomeSource)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("decode home source fixture=%s: %w", row.PublicID, err)
	}
	awaySource, err := decodeSource(row.AwaySource)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("decode away source fixture=%s: %w", row.PublicID, err)
	}

	item := fixture.Fixture{
		ID:              row.PublicID,
		TournamentID:    row.TournamentID,
		MatchID:         row.MatchID,
		Home:            bracket.ParseSlot(row.HomeSlot, row.HomeTeamID),
		Away:            bracket.ParseSlot(row.AwaySlot, row.AwayTeamID),
		HomeSource:      homeSource,
		AwaySource:      awaySource,
		Round:           row.Round,
		MatchNumber:     row.MatchNumber,
		Stage:           fixture.Stage(row.Stage),
		Group:           row.Group,
		BracketPosition: row.BracketPosition,
		IsPlayoff:       row.IsPlayoff,
		ScheduledTime:   row.ScheduledTime,
		VenueID:         row.VenueID,
		Degraded:        row.Degraded,
		ResultApplied:   row.ResultApplied,
	}
	if row.ScheduledDate.Valid {
		d := row.ScheduledDate.Time
		item.ScheduledDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return item, nil
}

func encodeSource(src fixture.Source) (sql.NullString, error) {
	if src.IsZero() {
		return sql.NullString{}, nil
	}
	raw, err := sonic.MarshalString(sourceRecord{
		Kind:        src.Kind.String(),
		Group:       src.Group,
		Position:    src.Position,
		MatchNumber: src.MatchNumber,
	})
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: raw, Valid: true}, nil
}

func decodeSource(raw sql.NullString) (fixture.Source, error) {
	if !raw.Valid || raw.String == "" {
		return fixture.Source{}, nil
	}
	var rec sourceRecord
	if err := sonic.UnmarshalString(raw.String, &rec); err != nil {
		return fixture.Source{}, err
	}
	return fixture.Source{
		Kind:        fixture.ParseSourceKind(rec.Kind),
		Group:       rec.Group,
		Position:    rec.Position,
		MatchNumber: rec.MatchNumber,
	}, nil
}
