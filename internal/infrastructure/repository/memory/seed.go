package memory

import (
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
)

const (
	TournamentIDPremierT20 = "ipl-2026"
	TournamentIDWorldCup   = "t20-world-cup-2026"
)

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:                 TournamentIDPremierT20,
			Name:               "Premier T20 2026",
			Sport:              "cricket",
			Format:             "ipl",
			DoubleRound:        true,
			Status:             tournament.StatusLive,
			StartDate:          time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
			EndDate:            time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
			VenueIDs:           []string{"wankhede", "chepauk", "eden-gardens", "chinnaswamy"},
			Points:             standing.DefaultPointsTable(),
			QualificationSpots: 4,
			KnockoutTiePolicy:  "home_team",
		},
		{
			ID:                TournamentIDWorldCup,
			Name:              "T20 World Cup 2026",
			Sport:             "cricket",
			Format:            "group_knockout",
			Status:            tournament.StatusDraft,
			StartDate:         time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC),
			EndDate:           time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
			VenueIDs:          []string{"lords", "mcg", "eden-gardens"},
			Points:            standing.DefaultPointsTable(),
			KnockoutTiePolicy: "reject",
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "mi", TournamentID: TournamentIDPremierT20, Name: "Mumbai Indians", Short: "MI", Seed: 1},
		{ID: "csk", TournamentID: TournamentIDPremierT20, Name: "Chennai Super Kings", Short: "CSK", Seed: 2},
		{ID: "kkr", TournamentID: TournamentIDPremierT20, Name: "Kolkata Knight Riders", Short: "KKR", Seed: 3},
		{ID: "rcb", TournamentID: TournamentIDPremierT20, Name: "Royal Challengers Bengaluru", Short: "RCB", Seed: 4},
		{ID: "srh", TournamentID: TournamentIDPremierT20, Name: "Sunrisers Hyderabad", Short: "SRH"},
		{ID: "rr", TournamentID: TournamentIDPremierT20, Name: "Rajasthan Royals", Short: "RR"},

		{ID: "ind", TournamentID: TournamentIDWorldCup, Name: "India", Short: "IND", Seed: 1},
		{ID: "aus", TournamentID: TournamentIDWorldCup, Name: "Australia", Short: "AUS", Seed: 2},
		{ID: "eng", TournamentID: TournamentIDWorldCup, Name: "England", Short: "ENG", Seed: 3},
		{ID: "pak", TournamentID: TournamentIDWorldCup, Name: "Pakistan", Short: "PAK", Seed: 4},
		{ID: "nz", TournamentID: TournamentIDWorldCup, Name: "New Zealand", Short: "NZ"},
		{ID: "sa", TournamentID: TournamentIDWorldCup, Name: "South Africa", Short: "SA"},
		{ID: "sl", TournamentID: TournamentIDWorldCup, Name: "Sri Lanka", Short: "SL"},
		{ID: "wi", TournamentID: TournamentIDWorldCup, Name: "West Indies", Short: "WI"},
	}
}

func SeedVenues() []venue.Venue {
	return []venue.Venue{
		{ID: "wankhede", Name: "Wankhede Stadium", City: "Mumbai", Capacity: 33000},
		{ID: "chepauk", Name: "M. A. Chidambaram Stadium", City: "Chennai", Capacity: 38000},
		{ID: "eden-gardens", Name: "Eden Gardens", City: "Kolkata", Capacity: 68000},
		{ID: "chinnaswamy", Name: "M. Chinnaswamy Stadium", City: "Bengaluru", Capacity: 40000},
		{ID: "lords", Name: "Lord's", City: "London", Capacity: 31100},
		{ID: "mcg", Name: "Melbourne Cricket Ground", City: "Melbourne", Capacity: 100024},
	}
}
