package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

var standingColumns = qb.Columns(standingTableModel{})

type StandingRepository struct {
	db  *sqlx.DB
	ids idgen.Generator
	now func() time.Time
}

func NewStandingRepository(db *sqlx.DB, ids idgen.Generator) *StandingRepository {
	return &StandingRepository{db: db, ids: ids, now: time.Now}
}

func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	query, args, err := qb.Select(standingColumns...).From("standings").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("group_label", "position", "points DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromRow(row))
	}
	return out, nil
}

func (r *StandingRepository) GetByTeam(ctx context.Context, tournamentID, teamID string) (standing.Standing, bool, error) {
	query, args, err := qb.Select(standingColumns...).From("standings").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build select standing by team query: %w", err)
	}

	var row standingTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, fmt.Errorf("select standing by team: %w", err)
	}
	return standingFromRow(row), true, nil
}

func (r *StandingRepository) Create(ctx context.Context, item standing.Standing) (standing.Standing, error) {
	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return standing.Standing{}, fmt.Errorf("generate standing id: %w", err)
		}
		item.ID = id
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = r.now().UTC()
	}

	query, args, err := qb.InsertModel("standings", standingToRow(item), "")
	if err != nil {
		return standing.Standing{}, fmt.Errorf("build insert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return standing.Standing{}, fmt.Errorf("insert standing team=%s: %w", item.TeamID, err)
	}
	return item, nil
}

func (r *StandingRepository) Update(ctx context.Context, item standing.Standing) error {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = r.now().UTC()
	}
	query, args, err := qb.UpdateModel("standings", standingToRow(item), "tournament_public_id", "public_id")
	if err != nil {
		return fmt.Errorf("build update standing query: %w", err)
	}

	found, err := execExpectingRow(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update standing team=%s: %w", item.TeamID, err)
	}
	if !found {
		return fmt.Errorf("standing %s not found", item.ID)
	}
	return nil
}

func standingToRow(item standing.Standing) standingTableModel {
	return standingTableModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		TeamID:       item.TeamID,
		Group:        item.Group,
		Played:       item.Played,
		Won:          item.Won,
		Lost:         item.Lost,
		Tied:         item.Tied,
		NoResult:     item.NoResult,
		Points:       item.Points,
		RunsFor:      item.RunsFor,
		BallsFor:     item.OversFor.Balls(),
		RunsAgainst:  item.RunsAgainst,
		BallsAgainst: item.OversAgainst.Balls(),
		NetRunRate:   item.NetRunRate,
		Position:     item.Position,
		Qualified:    item.Qualified,
		Eliminated:   item.Eliminated,
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func standingFromRow(row standingTableModel) standing.Standing {
	return standing.Standing{
		ID:           row.PublicID,
		TournamentID: row.TournamentID,
		TeamID:       row.TeamID,
		Group:        row.Group,
		Played:       row.Played,
		Won:          row.Won,
		Lost:         row.Lost,
		Tied:         row.Tied,
		NoResult:     row.NoResult,
		Points:       row.Points,
		RunsFor:      row.RunsFor,
		OversFor:     cricket.OversFromBalls(row.BallsFor),
		RunsAgainst:  row.RunsAgainst,
		OversAgainst: cricket.OversFromBalls(row.BallsAgainst),
		NetRunRate:   row.NetRunRate,
		Position:     row.Position,
		Qualified:    row.Qualified,
		Eliminated:   row.Eliminated,
		UpdatedAt:    row.UpdatedAt,
	}
}
