package fixture

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
)

// Stage names the phase of a tournament a fixture belongs to.
type Stage string

const (
	StageLeague       Stage = "league"
	StageGroup        Stage = "group"
	StageQuarterFinal Stage = "quarter-final"
	StageSemiFinal    Stage = "semi-final"
	StageFinal        Stage = "final"
	StageQualifier1   Stage = "qualifier-1"
	StageEliminator   Stage = "eliminator"
	StageQualifier2   Stage = "qualifier-2"
)

func RoundStage(round int) Stage {
	return Stage(fmt.Sprintf("round-%d", round))
}

func (s Stage) IsRoundRobin() bool {
	return s == StageLeague || s == StageGroup
}

// Priority orders stages when scheduling: round robin first, knockout after.
func (s Stage) Priority() int {
	if s.IsRoundRobin() {
		return 0
	}
	return 1
}

// Format selects the fixture generation strategy.
type Format string

const (
	FormatLeague        Format = "league"
	FormatKnockout      Format = "knockout"
	FormatGroupKnockout Format = "group_knockout"
	FormatIPL           Format = "ipl"
)

func NormalizeFormat(value string) Format {
	return Format(strings.ToLower(strings.TrimSpace(value)))
}

func (f Format) IsValid() bool {
	switch f {
	case FormatLeague, FormatKnockout, FormatGroupKnockout, FormatIPL:
		return true
	default:
		return false
	}
}

// SourceKind describes where a placeholder slot's team will come from.
type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceStandingPosition
	SourceMatchWinner
	SourceMatchLoser
)

var sourceKindNames = map[SourceKind]string{
	SourceNone:             "none",
	SourceStandingPosition: "standing",
	SourceMatchWinner:      "winner",
	SourceMatchLoser:       "loser",
}

func (k SourceKind) String() string {
	return sourceKindNames[k]
}

func ParseSourceKind(value string) SourceKind {
	for kind, name := range sourceKindNames {
		if name == value {
			return kind
		}
	}
	return SourceNone
}

// Source links a placeholder slot to a final ranking or an earlier match.
type Source struct {
	Kind        SourceKind
	Group       string
	Position    int
	MatchNumber int
}

func FromStanding(group string, position int) Source {
	return Source{Kind: SourceStandingPosition, Group: group, Position: position}
}

func WinnerOf(matchNumber int) Source {
	return Source{Kind: SourceMatchWinner, MatchNumber: matchNumber}
}

func LoserOf(matchNumber int) Source {
	return Source{Kind: SourceMatchLoser, MatchNumber: matchNumber}
}

func (s Source) IsZero() bool {
	return s.Kind == SourceNone
}

func (s Source) String() string {
	switch s.Kind {
	case SourceStandingPosition:
		if s.Group == "" {
			return fmt.Sprintf("league #%d", s.Position)
		}
		return fmt.Sprintf("%s%d", s.Group, s.Position)
	case SourceMatchWinner:
		return fmt.Sprintf("winner of match %d", s.MatchNumber)
	case SourceMatchLoser:
		return fmt.Sprintf("loser of match %d", s.MatchNumber)
	default:
		return ""
	}
}

// Fixture is one generated match slot inside a tournament.
type Fixture struct {
	ID              string
	TournamentID    string
	MatchID         string
	Home            bracket.Slot
	Away            bracket.Slot
	HomeSource      Source
	AwaySource      Source
	Round           int
	MatchNumber     int
	Stage           Stage
	Group           string
	BracketPosition int
	IsPlayoff       bool
	ScheduledDate   time.Time
	ScheduledTime   string
	VenueID         string
	Degraded        bool
	ResultApplied   bool
}

func (f Fixture) IsScheduled() bool {
	return !f.ScheduledDate.IsZero()
}

// Teams returns both team ids when both slots hold real teams.
func (f Fixture) Teams() (home, away string, ok bool) {
	home, homeOK := f.Home.TeamID()
	away, awayOK := f.Away.TeamID()
	return home, away, homeOK && awayOK
}

func (f Fixture) Involves(teamID string) bool {
	home, _ := f.Home.TeamID()
	away, _ := f.Away.TeamID()
	return teamID != "" && (home == teamID || away == teamID)
}

// Side returns the slot on the requested side.
func (f Fixture) Side(home bool) bracket.Slot {
	if home {
		return f.Home
	}
	return f.Away
}

// WithSide returns a copy with one side replaced.
func (f Fixture) WithSide(home bool, slot bracket.Slot) Fixture {
	if home {
		f.Home = slot
	} else {
		f.Away = slot
	}
	return f
}
