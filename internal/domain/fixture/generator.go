package fixture

import (
	"context"
	"math/rand/v2"
	"slices"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

// PlayoffTeams is how many league finishers enter the IPL-style playoffs.
const PlayoffTeams = 4

var ErrTooFewTeamsForPlayoffs = crerr.New("playoff format needs at least four teams")

// Options tunes generation.
type Options struct {
	DoubleRound bool
	// VenueIDs are rotated across round-robin fixtures in emission order.
	VenueIDs []string
	// Rand shuffles teams into groups. Nil keeps roster order.
	Rand *rand.Rand
}

// Generator turns a roster and a format into an ordered fixture list.
type Generator struct {
	logger *logging.Logger
}

func NewGenerator(logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{logger: logger}
}

// Generate emits fixtures for the format. teamIDs is treated as the seeding
// order for knockout brackets. Unknown formats fall back to a league.
func (g *Generator) Generate(ctx context.Context, teamIDs []string, format Format, opts Options) ([]Fixture, error) {
	switch format {
	case FormatLeague:
		return g.league(teamIDs, opts)
	case FormatKnockout:
		return g.knockout(teamIDs)
	case FormatGroupKnockout:
		return g.groupKnockout(teamIDs, opts)
	case FormatIPL:
		return g.ipl(teamIDs, opts)
	default:
		g.logger.WarnContext(ctx, "unknown tournament format, falling back to league",
			"format", string(format),
			"teams", len(teamIDs),
		)
		return g.league(teamIDs, opts)
	}
}

func (g *Generator) league(teamIDs []string, opts Options) ([]Fixture, error) {
	pairings, err := bracket.RoundRobin(teamIDs, opts.DoubleRound)
	if err != nil {
		return nil, err
	}

	out := make([]Fixture, 0, len(pairings))
	for _, p := range pairings {
		out = append(out, Fixture{
			Home:        bracket.Assigned(p.Home),
			Away:        bracket.Assigned(p.Away),
			Round:       p.Round,
			MatchNumber: len(out) + 1,
			Stage:       StageLeague,
			VenueID:     rotate(opts.VenueIDs, len(out)),
		})
	}
	return out, nil
}

// knockout emits the playable first-round fixtures plus placeholders for
// every later round. Teams drawing a bye are written straight into their
// round-two slot.
func (g *Generator) knockout(teamIDs []string) ([]Fixture, error) {
	pairs, err := bracket.FirstRound(teamIDs)
	if err != nil {
		return nil, err
	}

	size := bracket.Size(len(teamIDs))
	rounds := placeholderRounds(size, 0)

	playable := make([]bool, len(rounds[0]))
	for _, p := range pairs {
		first := &rounds[0][p.Position]
		first.Home, first.Away = p.Home, p.Away

		winner, ok := p.Resolve()
		if ok {
			playable[p.Position] = true
			continue
		}
		if len(rounds) > 1 {
			next, home := bracket.NextSlot(p.Position)
			rounds[1][next] = rounds[1][next].WithSide(home, winner)
		}
	}

	out := make([]Fixture, 0, size-1)
	for i, f := range rounds[0] {
		if playable[i] {
			out = append(out, f)
		}
	}
	for _, round := range rounds[1:] {
		out = append(out, round...)
	}
	return numberFrom(out, 1), nil
}

// groupKnockout splits the roster into groups that each play a round robin,
// then seeds the group qualifiers into a cross-group bracket.
func (g *Generator) groupKnockout(teamIDs []string, opts Options) ([]Fixture, error) {
	if err := bracket.ValidateRoster(teamIDs); err != nil {
		return nil, err
	}

	groupCount := GroupCount(len(teamIDs))
	shuffled := slices.Clone(teamIDs)
	if opts.Rand != nil {
		opts.Rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	}

	labels := make([]string, groupCount)
	groups := make([][]string, groupCount)
	for i := range labels {
		labels[i] = GroupLabel(i)
	}
	for i, id := range shuffled {
		groups[i%groupCount] = append(groups[i%groupCount], id)
	}

	out := make([]Fixture, 0)
	lastGroupRound := 0
	for gi, members := range groups {
		pairings, err := bracket.RoundRobin(members, opts.DoubleRound)
		if err != nil {
			return nil, crerr.Wrapf(err, "group %s", labels[gi])
		}
		for _, p := range pairings {
			out = append(out, Fixture{
				Home:    bracket.Assigned(p.Home),
				Away:    bracket.Assigned(p.Away),
				Round:   p.Round,
				Stage:   StageGroup,
				Group:   labels[gi],
				VenueID: rotate(opts.VenueIDs, len(out)),
			})
			lastGroupRound = max(lastGroupRound, p.Round)
		}
	}

	advance := min(2, len(teamIDs)/groupCount)
	sources := crossGroupSources(labels, advance)
	if len(sources) == 0 {
		return numberFrom(out, 1), nil
	}

	rounds := placeholderRounds(bracket.Size(len(sources)*2), lastGroupRound)
	for i, pair := range sources {
		rounds[0][i].HomeSource = pair[0]
		rounds[0][i].AwaySource = pair[1]
	}
	for _, round := range rounds {
		out = append(out, round...)
	}
	return numberFrom(out, 1), nil
}

// ipl plays a double round robin and then the four-team page playoff:
// 1v2 (qualifier 1), 3v4 (eliminator), loser Q1 v winner eliminator
// (qualifier 2), winner Q1 v winner Q2 (final).
func (g *Generator) ipl(teamIDs []string, opts Options) ([]Fixture, error) {
	if len(teamIDs) < PlayoffTeams {
		if err := bracket.ValidateRoster(teamIDs); err != nil {
			return nil, err
		}
		return nil, crerr.Wrapf(ErrTooFewTeamsForPlayoffs, "got %d", len(teamIDs))
	}

	opts.DoubleRound = true
	out, err := g.league(teamIDs, opts)
	if err != nil {
		return nil, err
	}

	lastRound := 0
	for _, f := range out {
		lastRound = max(lastRound, f.Round)
	}

	next := len(out) + 1
	q1 := Fixture{
		Stage:       StageQualifier1,
		Round:       lastRound + 1,
		MatchNumber: next,
		HomeSource:  FromStanding("", 1),
		AwaySource:  FromStanding("", 2),
		IsPlayoff:   true,
	}
	eliminator := Fixture{
		Stage:       StageEliminator,
		Round:       lastRound + 1,
		MatchNumber: next + 1,
		HomeSource:  FromStanding("", 3),
		AwaySource:  FromStanding("", 4),
		IsPlayoff:   true,
	}
	q2 := Fixture{
		Stage:       StageQualifier2,
		Round:       lastRound + 2,
		MatchNumber: next + 2,
		HomeSource:  LoserOf(q1.MatchNumber),
		AwaySource:  WinnerOf(eliminator.MatchNumber),
		IsPlayoff:   true,
	}
	final := Fixture{
		Stage:       StageFinal,
		Round:       lastRound + 3,
		MatchNumber: next + 3,
		HomeSource:  WinnerOf(q1.MatchNumber),
		AwaySource:  WinnerOf(q2.MatchNumber),
		IsPlayoff:   true,
	}
	return append(out, q1, eliminator, q2, final), nil
}

// GroupCount picks two groups up to eight teams, four up to sixteen and eight
// beyond, never leaving a group with fewer than two teams.
func GroupCount(teams int) int {
	groups := 8
	switch {
	case teams <= 8:
		groups = 2
	case teams <= 16:
		groups = 4
	}
	for groups > 1 && teams/groups < 2 {
		groups /= 2
	}
	return groups
}

func GroupLabel(index int) string {
	return string(rune('A' + index))
}

// crossGroupSources pairs group winners against runners-up of the
// neighbouring group so that teams from one group land in opposite halves:
// A1vB2, C1vD2, ..., B1vA2, D1vC2.
func crossGroupSources(labels []string, advance int) [][2]Source {
	switch {
	case advance <= 0:
		return nil
	case len(labels) == 1:
		if advance < 2 {
			return nil
		}
		return [][2]Source{{FromStanding(labels[0], 1), FromStanding(labels[0], 2)}}
	case advance == 1:
		out := make([][2]Source, 0, len(labels)/2)
		for i := 0; i+1 < len(labels); i += 2 {
			out = append(out, [2]Source{FromStanding(labels[i], 1), FromStanding(labels[i+1], 1)})
		}
		return out
	}

	top := make([][2]Source, 0, len(labels)/2)
	bottom := make([][2]Source, 0, len(labels)/2)
	for i := 0; i+1 < len(labels); i += 2 {
		a, b := labels[i], labels[i+1]
		top = append(top, [2]Source{FromStanding(a, 1), FromStanding(b, 2)})
		bottom = append(bottom, [2]Source{FromStanding(b, 1), FromStanding(a, 2)})
	}
	return append(top, bottom...)
}

// placeholderRounds builds pending fixtures for a bracket of the given size.
// Round numbers continue after roundOffset.
func placeholderRounds(size, roundOffset int) [][]Fixture {
	total := bracket.Rounds(size)
	rounds := make([][]Fixture, total)
	for r := 1; r <= total; r++ {
		count := size >> r
		round := make([]Fixture, count)
		for i := range round {
			round[i] = Fixture{
				Round:           roundOffset + r,
				Stage:           knockoutStage(r, total),
				BracketPosition: i,
			}
		}
		rounds[r-1] = round
	}
	return rounds
}

func knockoutStage(round, total int) Stage {
	return Stage(bracket.RoundName(round, total))
}

func numberFrom(fixtures []Fixture, first int) []Fixture {
	for i := range fixtures {
		fixtures[i].MatchNumber = first + i
	}
	return fixtures
}

func rotate(ids []string, i int) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[i%len(ids)]
}
