package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
	qb "github.com/riskibarqy/tournament-engine/internal/platform/querybuilder"
)

var playerStatsColumns = qb.Columns(playerStatsTableModel{})

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) Get(ctx context.Context, tournamentID, playerID string) (playerstats.Stat, bool, error) {
	query, args, err := qb.Select(playerStatsColumns...).From("player_tournament_stats").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("player_public_id", playerID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerstats.Stat{}, false, fmt.Errorf("build select player stats query: %w", err)
	}

	var row playerStatsTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.Stat{}, false, nil
		}
		return playerstats.Stat{}, false, fmt.Errorf("select player stats: %w", err)
	}
	return playerStatsFromRow(row), true, nil
}

func (r *PlayerStatsRepository) Create(ctx context.Context, item playerstats.Stat) error {
	query, args, err := qb.InsertModel("player_tournament_stats", playerStatsToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player stats player=%s: %w", item.PlayerID, err)
	}
	return nil
}

func (r *PlayerStatsRepository) Update(ctx context.Context, item playerstats.Stat) error {
	query, args, err := qb.UpdateModel("player_tournament_stats", playerStatsToRow(item), "tournament_public_id", "player_public_id")
	if err != nil {
		return fmt.Errorf("build update player stats query: %w", err)
	}

	found, err := execExpectingRow(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update player stats player=%s: %w", item.PlayerID, err)
	}
	if !found {
		return fmt.Errorf("player stats player=%s tournament=%s not found", item.PlayerID, item.TournamentID)
	}
	return nil
}

func playerStatsToRow(item playerstats.Stat) playerStatsTableModel {
	return playerStatsTableModel{
		TournamentID:       item.TournamentID,
		PlayerID:           item.PlayerID,
		TeamID:             item.TeamID,
		Matches:            item.Matches,
		Innings:            item.Innings,
		NotOuts:            item.NotOuts,
		Runs:               item.Runs,
		BallsFaced:         item.BallsFaced,
		HighestScore:       item.HighestScore,
		Fours:              item.Fours,
		Sixes:              item.Sixes,
		Fifties:            item.Fifties,
		Hundreds:           item.Hundreds,
		BallsBowled:        item.OversBowled.Balls(),
		RunsConceded:       item.RunsConceded,
		Wickets:            item.Wickets,
		Maidens:            item.Maidens,
		BestBowlingWickets: item.BestBowlingWickets,
		BestBowlingRuns:    item.BestBowlingRuns,
		Catches:            item.Catches,
		Stumpings:          item.Stumpings,
		RunOuts:            item.RunOuts,
		BattingAverage:     item.BattingAverage,
		StrikeRate:         item.StrikeRate,
		Economy:            item.Economy,
		BowlingAverage:     item.BowlingAverage,
		UpdatedAt:          item.UpdatedAt.UTC(),
	}
}

func playerStatsFromRow(row playerStatsTableModel) playerstats.Stat {
	return playerstats.Stat{
		TournamentID:       row.TournamentID,
		PlayerID:           row.PlayerID,
		TeamID:             row.TeamID,
		Matches:            row.Matches,
		Innings:            row.Innings,
		NotOuts:            row.NotOuts,
		Runs:               row.Runs,
		BallsFaced:         row.BallsFaced,
		HighestScore:       row.HighestScore,
		Fours:              row.Fours,
		Sixes:              row.Sixes,
		Fifties:            row.Fifties,
		Hundreds:           row.Hundreds,
		OversBowled:        cricket.OversFromBalls(row.BallsBowled),
		RunsConceded:       row.RunsConceded,
		Wickets:            row.Wickets,
		Maidens:            row.Maidens,
		BestBowlingWickets: row.BestBowlingWickets,
		BestBowlingRuns:    row.BestBowlingRuns,
		Catches:            row.Catches,
		Stumpings:          row.Stumpings,
		RunOuts:            row.RunOuts,
		BattingAverage:     row.BattingAverage,
		StrikeRate:         row.StrikeRate,
		Economy:            row.Economy,
		BowlingAverage:     row.BowlingAverage,
		UpdatedAt:          row.UpdatedAt,
	}
}
