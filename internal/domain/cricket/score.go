package cricket

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const MaxWickets = 10

var (
	ErrEmptyScore   = crerr.New("score is empty")
	ErrInvalidScore = crerr.New("invalid score")
)

// runs, optional "/wickets", optional "(overs)" with an optional "ov" suffix.
var scorePattern = regexp.MustCompile(`^(\d+)(?:\s*/\s*(\d+))?(?:\s*\(\s*(\d+(?:\.\d)?)\s*(?:ov|overs)?\s*\))?$`)

// Score is one side's innings total.
type Score struct {
	Runs    int
	Wickets int
	Overs   Overs
}

// ParseScore reads "156/7 (19.4)". Wickets and overs are optional.
func ParseScore(raw string) (Score, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Score{}, ErrEmptyScore
	}

	parts := scorePattern.FindStringSubmatch(raw)
	if parts == nil {
		return Score{}, crerr.Wrapf(ErrInvalidScore, "%q", raw)
	}

	runs, err := strconv.Atoi(parts[1])
	if err != nil {
		return Score{}, crerr.Wrapf(ErrInvalidScore, "runs %q", parts[1])
	}

	score := Score{Runs: runs}
	if parts[2] != "" {
		wickets, err := strconv.Atoi(parts[2])
		if err != nil || wickets > MaxWickets {
			return Score{}, crerr.Wrapf(ErrInvalidScore, "wickets %q", parts[2])
		}
		score.Wickets = wickets
	}
	if parts[3] != "" {
		overs, err := ParseOvers(parts[3])
		if err != nil {
			return Score{}, crerr.Wrapf(ErrInvalidScore, "%q: %v", raw, err)
		}
		score.Overs = overs
	}
	return score, nil
}

func (s Score) String() string {
	if s.Overs.IsZero() {
		return fmt.Sprintf("%d/%d", s.Runs, s.Wickets)
	}
	return fmt.Sprintf("%d/%d (%s)", s.Runs, s.Wickets, s.Overs)
}
