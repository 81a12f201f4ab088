package playerstats

import (
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
)

// Performance is one player's line from a single scorecard.
type Performance struct {
	PlayerID string
	TeamID   string

	Batted     bool
	Runs       int
	BallsFaced int
	Fours      int
	Sixes      int
	NotOut     bool

	OversBowled  cricket.Overs
	RunsConceded int
	Wickets      int
	Maidens      int

	Catches   int
	Stumpings int
	RunOuts   int
}

// Stat is a player's running tournament aggregate.
type Stat struct {
	TournamentID string
	PlayerID     string
	TeamID       string

	Matches      int
	Innings      int
	NotOuts      int
	Runs         int
	BallsFaced   int
	HighestScore int
	Fours        int
	Sixes        int
	Fifties      int
	Hundreds     int

	OversBowled        cricket.Overs
	RunsConceded       int
	Wickets            int
	Maidens            int
	BestBowlingWickets int
	BestBowlingRuns    int

	Catches   int
	Stumpings int
	RunOuts   int

	BattingAverage float64
	StrikeRate     float64
	Economy        float64
	BowlingAverage float64

	UpdatedAt time.Time
}

// Accumulate folds one performance into the aggregate and refreshes the
// derived rates.
func (s Stat) Accumulate(p Performance) Stat {
	s.Matches++
	if p.TeamID != "" {
		s.TeamID = p.TeamID
	}

	if p.Batted {
		s.Innings++
		if p.NotOut {
			s.NotOuts++
		}
		s.Runs += p.Runs
		s.BallsFaced += p.BallsFaced
		s.Fours += p.Fours
		s.Sixes += p.Sixes
		s.HighestScore = max(s.HighestScore, p.Runs)
		switch {
		case p.Runs >= 100:
			s.Hundreds++
		case p.Runs >= 50:
			s.Fifties++
		}
	}

	if !p.OversBowled.IsZero() {
		first := !s.HasBestBowling()
		s.OversBowled = s.OversBowled.Add(p.OversBowled)
		s.RunsConceded += p.RunsConceded
		s.Wickets += p.Wickets
		s.Maidens += p.Maidens
		if first || betterFigures(p.Wickets, p.RunsConceded, s.BestBowlingWickets, s.BestBowlingRuns) {
			s.BestBowlingWickets = p.Wickets
			s.BestBowlingRuns = p.RunsConceded
		}
	}

	s.Catches += p.Catches
	s.Stumpings += p.Stumpings
	s.RunOuts += p.RunOuts

	return s.withRates()
}

func (s Stat) withRates() Stat {
	s.BattingAverage = 0
	if dismissals := s.Innings - s.NotOuts; dismissals > 0 {
		s.BattingAverage = float64(s.Runs) / float64(dismissals)
	}
	s.StrikeRate = 0
	if s.BallsFaced > 0 {
		s.StrikeRate = float64(s.Runs) * 100 / float64(s.BallsFaced)
	}
	s.Economy = cricket.RunRate(s.RunsConceded, s.OversBowled)
	s.BowlingAverage = 0
	if s.Wickets > 0 {
		s.BowlingAverage = float64(s.RunsConceded) / float64(s.Wickets)
	}
	return s
}

// HasBestBowling reports whether the player has bowled, so the best figures
// hold a real spell even when they read 0/0.
func (s Stat) HasBestBowling() bool {
	return !s.OversBowled.IsZero()
}

// more wickets, then fewer runs.
func betterFigures(wickets, runs, bestWickets, bestRuns int) bool {
	if wickets != bestWickets {
		return wickets > bestWickets
	}
	return runs < bestRuns
}
