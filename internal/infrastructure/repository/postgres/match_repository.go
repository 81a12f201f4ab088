package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

var matchColumns = qb.Columns(matchTableModel{})

type MatchRepository struct {
	db  *sqlx.DB
	ids idgen.Generator
	now func() time.Time
}

func NewMatchRepository(db *sqlx.DB, ids idgen.Generator) *MatchRepository {
	return &MatchRepository{db: db, ids: ids, now: time.Now}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by tournament query: %w", err)
	}

	var rows []matchTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by tournament: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return match.Match{}, fmt.Errorf("generate match id: %w", err)
		}
		item.ID = id
	}

	row, err := matchToRow(item)
	if err != nil {
		return match.Match{}, err
	}
	query, args, err := qb.InsertModel("matches", row, "")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match %s: %w", item.ID, err)
	}
	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	row, err := matchToRow(item)
	if err != nil {
		return err
	}
	query, args, err := qb.UpdateModel("matches", matchWriteModel{
		matchTableModel: row,
		UpdatedAt:       r.now().UTC(),
	}, "public_id")
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	found, err := execExpectingRow(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update match %s: %w", item.ID, err)
	}
	if !found {
		return fmt.Errorf("match %s not found", item.ID)
	}
	return nil
}

func matchToRow(item match.Match) (matchTableModel, error) {
	records := make([]performanceRecord, 0, len(item.Performances))
	for _, p := range item.Performances {
		records = append(records, performanceRecord{
			PlayerID:     p.PlayerID,
			TeamID:       p.TeamID,
			Batted:       p.Batted,
			Runs:         p.Runs,
			BallsFaced:   p.BallsFaced,
			Fours:        p.Fours,
			Sixes:        p.Sixes,
			NotOut:       p.NotOut,
			OversBowled:  p.OversBowled.String(),
			RunsConceded: p.RunsConceded,
			Wickets:      p.Wickets,
			Maidens:      p.Maidens,
			Catches:      p.Catches,
			Stumpings:    p.Stumpings,
			RunOuts:      p.RunOuts,
		})
	}
	performances, err := sonic.MarshalString(records)
	if err != nil {
		return matchTableModel{}, fmt.Errorf("encode performances match=%s: %w", item.ID, err)
	}

	return matchTableModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		Status:       string(item.Status),
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		Result:       string(item.Result),
		VenueID:      item.VenueID,
		ScheduledAt:  timePtrToNullTime(item.ScheduledAt),
		CompletedAt:  timePtrToNullTime(item.CompletedAt),
		Performances: performances,
	}, nil
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	var records []performanceRecord
	if row.Performances != "" {
		if err := sonic.UnmarshalString(row.Performances, &records); err != nil {
			return match.Match{}, fmt.Errorf("decode performances match=%s: %w", row.PublicID, err)
		}
	}

	performances := make([]playerstats.Performance, 0, len(records))
	for _, rec := range records {
		overs, err := cricket.ParseOvers(rec.OversBowled)
		if err != nil {
			return match.Match{}, fmt.Errorf("decode overs player=%s match=%s: %w", rec.PlayerID, row.PublicID, err)
		}
		performances = append(performances, playerstats.Performance{
			PlayerID:     rec.PlayerID,
			TeamID:       rec.TeamID,
			Batted:       rec.Batted,
			Runs:         rec.Runs,
			BallsFaced:   rec.BallsFaced,
			Fours:        rec.Fours,
			Sixes:        rec.Sixes,
			NotOut:       rec.NotOut,
			OversBowled:  overs,
			RunsConceded: rec.RunsConceded,
			Wickets:      rec.Wickets,
			Maidens:      rec.Maidens,
			Catches:      rec.Catches,
			Stumpings:    rec.Stumpings,
			RunOuts:      rec.RunOuts,
		})
	}

	return match.Match{
		ID:           row.PublicID,
		TournamentID: row.TournamentID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		Status:       match.Status(row.Status),
		HomeScore:    row.HomeScore,
		AwayScore:    row.AwayScore,
		Result:       match.Result(row.Result),
		ScheduledAt:  nullTimeToTimePtr(row.ScheduledAt),
		VenueID:      row.VenueID,
		CompletedAt:  nullTimeToTimePtr(row.CompletedAt),
		Performances: performances,
	}, nil
}
