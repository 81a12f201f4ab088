package httpapi

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

const dateLayout = "2006-01-02"

type generateFixturesRequest struct {
	Format      string   `json:"format" validate:"omitempty,oneof=league knockout group_knockout ipl"`
	DoubleRound *bool    `json:"double_round"`
	StartDate   string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	VenueIDs    []string `json:"venue_ids" validate:"omitempty,dive,required"`
	Seed        *uint64  `json:"seed"`
	Replace     bool     `json:"replace"`
}

type completeMatchRequest struct {
	HomeScore    string               `json:"home_score" validate:"required_with=AwayScore"`
	AwayScore    string               `json:"away_score" validate:"required_with=HomeScore"`
	Result       string               `json:"result" validate:"omitempty,oneof=home_win away_win tie no_result"`
	Performances []performanceRequest `json:"performances" validate:"omitempty,dive"`
}

// isEmpty reports a body that only asks to process an already stored result.
func (r completeMatchRequest) isEmpty() bool {
	return strings.TrimSpace(r.HomeScore) == "" &&
		strings.TrimSpace(r.AwayScore) == "" &&
		strings.TrimSpace(r.Result) == "" &&
		len(r.Performances) == 0
}

type performanceRequest struct {
	PlayerID     string `json:"player_id" validate:"required"`
	TeamID       string `json:"team_id" validate:"required"`
	Batted       bool   `json:"batted"`
	Runs         int    `json:"runs" validate:"gte=0"`
	BallsFaced   int    `json:"balls_faced" validate:"gte=0"`
	Fours        int    `json:"fours" validate:"gte=0"`
	Sixes        int    `json:"sixes" validate:"gte=0"`
	NotOut       bool   `json:"not_out"`
	OversBowled  string `json:"overs_bowled"`
	RunsConceded int    `json:"runs_conceded" validate:"gte=0"`
	Wickets      int    `json:"wickets" validate:"gte=0,lte=10"`
	Maidens      int    `json:"maidens" validate:"gte=0"`
	Catches      int    `json:"catches" validate:"gte=0"`
	Stumpings    int    `json:"stumpings" validate:"gte=0"`
	RunOuts      int    `json:"run_outs" validate:"gte=0"`
}

type recalculateJobRequest struct {
	TournamentIDs []string `json:"tournament_ids" validate:"omitempty,dive,required"`
	MaxWorkers    int      `json:"max_workers" validate:"gte=0,lte=32"`
}

type slotDTO struct {
	Kind   string `json:"kind"`
	TeamID string `json:"team_id,omitempty"`
	Source string `json:"source,omitempty"`
}

type fixtureDTO struct {
	ID              string  `json:"id"`
	MatchID         string  `json:"match_id,omitempty"`
	MatchNumber     int     `json:"match_number"`
	Round           int     `json:"round"`
	Stage           string  `json:"stage"`
	Group           string  `json:"group,omitempty"`
	BracketPosition int     `json:"bracket_position,omitempty"`
	IsPlayoff       bool    `json:"is_playoff"`
	Home            slotDTO `json:"home"`
	Away            slotDTO `json:"away"`
	ScheduledDate   string  `json:"scheduled_date,omitempty"`
	ScheduledTime   string  `json:"scheduled_time,omitempty"`
	VenueID         string  `json:"venue_id,omitempty"`
	Degraded        bool    `json:"degraded,omitempty"`
	ResultApplied   bool    `json:"result_applied"`
}

type generateFixturesDTO struct {
	Fixtures []fixtureDTO `json:"fixtures"`
	Warnings []string     `json:"warnings"`
	Degraded []int        `json:"degraded_match_numbers"`
	Skipped  int          `json:"skipped"`
}

type standingDTO struct {
	Position     int     `json:"position"`
	TeamID       string  `json:"team_id"`
	Group        string  `json:"group,omitempty"`
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	Lost         int     `json:"lost"`
	Tied         int     `json:"tied"`
	NoResult     int     `json:"no_result"`
	Points       int     `json:"points"`
	RunsFor      int     `json:"runs_for"`
	OversFor     string  `json:"overs_for"`
	RunsAgainst  int     `json:"runs_against"`
	OversAgainst string  `json:"overs_against"`
	NetRunRate   float64 `json:"net_run_rate"`
	Qualified    bool    `json:"qualified"`
	Eliminated   bool    `json:"eliminated"`
}

type matchDTO struct {
	ID          string `json:"id"`
	HomeTeamID  string `json:"home_team_id"`
	AwayTeamID  string `json:"away_team_id"`
	Status      string `json:"status"`
	HomeScore   string `json:"home_score,omitempty"`
	AwayScore   string `json:"away_score,omitempty"`
	Result      string `json:"result,omitempty"`
	VenueID     string `json:"venue_id,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type completeMatchDTO struct {
	Match     matchDTO      `json:"match"`
	Standings []standingDTO `json:"standings"`
	Advanced  []fixtureDTO  `json:"advanced"`
}

type playerStatsDTO struct {
	PlayerID       string  `json:"player_id"`
	TeamID         string  `json:"team_id"`
	Matches        int     `json:"matches"`
	Innings        int     `json:"innings"`
	NotOuts        int     `json:"not_outs"`
	Runs           int     `json:"runs"`
	BallsFaced     int     `json:"balls_faced"`
	HighestScore   int     `json:"highest_score"`
	Fours          int     `json:"fours"`
	Sixes          int     `json:"sixes"`
	Fifties        int     `json:"fifties"`
	Hundreds       int     `json:"hundreds"`
	BattingAverage float64 `json:"batting_average"`
	StrikeRate     float64 `json:"strike_rate"`
	OversBowled    string  `json:"overs_bowled"`
	RunsConceded   int     `json:"runs_conceded"`
	Wickets        int     `json:"wickets"`
	Maidens        int     `json:"maidens"`
	BestBowling    string  `json:"best_bowling,omitempty"`
	Economy        float64 `json:"economy"`
	BowlingAverage float64 `json:"bowling_average"`
	Catches        int     `json:"catches"`
	Stumpings      int     `json:"stumpings"`
	RunOuts        int     `json:"run_outs"`
}

func (r generateFixturesRequest) toInput(ctx context.Context, tournamentID string) (usecase.GenerateFixturesInput, error) {
	_, span := startSpan(ctx, "httpapi.generateFixturesRequest.toInput")
	defer span.End()

	input := usecase.GenerateFixturesInput{
		TournamentID: tournamentID,
		Format:       r.Format,
		DoubleRound:  r.DoubleRound,
		VenueIDs:     r.VenueIDs,
		Seed:         r.Seed,
		Replace:      r.Replace,
	}

	var err error
	if input.StartDate, err = parseOptionalDate("start_date", r.StartDate); err != nil {
		return usecase.GenerateFixturesInput{}, err
	}
	if input.EndDate, err = parseOptionalDate("end_date", r.EndDate); err != nil {
		return usecase.GenerateFixturesInput{}, err
	}
	return input, nil
}

func (r completeMatchRequest) toInput(tournamentID, matchID string) (usecase.RecordResultInput, error) {
	performances := make([]playerstats.Performance, 0, len(r.Performances))
	for _, p := range r.Performances {
		overs, err := parseOptionalOvers(p.OversBowled)
		if err != nil {
			return usecase.RecordResultInput{}, fmt.Errorf("%w: player %s overs_bowled: %v", usecase.ErrInvalidInput, p.PlayerID, err)
		}
		performances = append(performances, playerstats.Performance{
			PlayerID:     strings.TrimSpace(p.PlayerID),
			TeamID:       strings.TrimSpace(p.TeamID),
			Batted:       p.Batted,
			Runs:         p.Runs,
			BallsFaced:   p.BallsFaced,
			Fours:        p.Fours,
			Sixes:        p.Sixes,
			NotOut:       p.NotOut,
			OversBowled:  overs,
			RunsConceded: p.RunsConceded,
			Wickets:      p.Wickets,
			Maidens:      p.Maidens,
			Catches:      p.Catches,
			Stumpings:    p.Stumpings,
			RunOuts:      p.RunOuts,
		})
	}

	return usecase.RecordResultInput{
		TournamentID: tournamentID,
		MatchID:      matchID,
		HomeScore:    r.HomeScore,
		AwayScore:    r.AwayScore,
		Result:       r.Result,
		Performances: performances,
	}, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must use YYYY-MM-DD", usecase.ErrInvalidInput, field)
	}
	return &value, nil
}

func parseOptionalOvers(raw string) (cricket.Overs, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cricket.Overs{}, nil
	}
	return cricket.ParseOvers(raw)
}

func slotToDTO(slot bracket.Slot, source fixture.Source) slotDTO {
	out := slotDTO{Kind: slot.Kind().String()}
	if teamID, ok := slot.TeamID(); ok {
		out.TeamID = teamID
	}
	if !source.IsZero() {
		out.Source = source.String()
	}
	return out
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	out := fixtureDTO{
		ID:              f.ID,
		MatchID:         f.MatchID,
		MatchNumber:     f.MatchNumber,
		Round:           f.Round,
		Stage:           string(f.Stage),
		Group:           f.Group,
		BracketPosition: f.BracketPosition,
		IsPlayoff:       f.IsPlayoff,
		Home:            slotToDTO(f.Home, f.HomeSource),
		Away:            slotToDTO(f.Away, f.AwaySource),
		ScheduledTime:   f.ScheduledTime,
		VenueID:         f.VenueID,
		Degraded:        f.Degraded,
		ResultApplied:   f.ResultApplied,
	}
	if f.IsScheduled() {
		out.ScheduledDate = f.ScheduledDate.Format(dateLayout)
	}
	return out
}

func fixturesToDTO(ctx context.Context, items []fixture.Fixture) []fixtureDTO {
	_, span := startSpan(ctx, "httpapi.fixturesToDTO")
	defer span.End()

	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}
	return out
}

func standingsToDTO(ctx context.Context, rows []standing.Standing) []standingDTO {
	_, span := startSpan(ctx, "httpapi.standingsToDTO")
	defer span.End()

	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{
			Position:     row.Position,
			TeamID:       row.TeamID,
			Group:        row.Group,
			Played:       row.Played,
			Won:          row.Won,
			Lost:         row.Lost,
			Tied:         row.Tied,
			NoResult:     row.NoResult,
			Points:       row.Points,
			RunsFor:      row.RunsFor,
			OversFor:     row.OversFor.String(),
			RunsAgainst:  row.RunsAgainst,
			OversAgainst: row.OversAgainst.String(),
			NetRunRate:   round3(row.NetRunRate),
			Qualified:    row.Qualified,
			Eliminated:   row.Eliminated,
		})
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:         m.ID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Status:     string(m.Status),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Result:     string(m.Result),
		VenueID:    m.VenueID,
	}
	if m.CompletedAt != nil {
		out.CompletedAt = m.CompletedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func processResultToDTO(ctx context.Context, result usecase.ProcessResult) completeMatchDTO {
	return completeMatchDTO{
		Match:     matchToDTO(result.Match),
		Standings: standingsToDTO(ctx, result.Standings),
		Advanced:  fixturesToDTO(ctx, result.Advanced),
	}
}

func playerStatsToDTO(stat playerstats.Stat) playerStatsDTO {
	out := playerStatsDTO{
		PlayerID:       stat.PlayerID,
		TeamID:         stat.TeamID,
		Matches:        stat.Matches,
		Innings:        stat.Innings,
		NotOuts:        stat.NotOuts,
		Runs:           stat.Runs,
		BallsFaced:     stat.BallsFaced,
		HighestScore:   stat.HighestScore,
		Fours:          stat.Fours,
		Sixes:          stat.Sixes,
		Fifties:        stat.Fifties,
		Hundreds:       stat.Hundreds,
		BattingAverage: round2(stat.BattingAverage),
		StrikeRate:     round2(stat.StrikeRate),
		OversBowled:    stat.OversBowled.String(),
		RunsConceded:   stat.RunsConceded,
		Wickets:        stat.Wickets,
		Maidens:        stat.Maidens,
		Economy:        round2(stat.Economy),
		BowlingAverage: round2(stat.BowlingAverage),
		Catches:        stat.Catches,
		Stumpings:      stat.Stumpings,
		RunOuts:        stat.RunOuts,
	}
	if stat.HasBestBowling() {
		out.BestBowling = fmt.Sprintf("%d/%d", stat.BestBowlingWickets, stat.BestBowlingRuns)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
