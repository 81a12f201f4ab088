package cricket

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const BallsPerOver = 6

var ErrInvalidOvers = crerr.New("invalid overs notation")

// Overs counts legal deliveries. Its text form is cricket notation, where
// 19.4 means nineteen completed overs plus four balls.
type Overs struct {
	balls int
}

func OversFromBalls(balls int) Overs {
	if balls < 0 {
		balls = 0
	}
	return Overs{balls: balls}
}

func NewOvers(completed, balls int) (Overs, error) {
	if completed < 0 || balls < 0 || balls >= BallsPerOver {
		return Overs{}, crerr.Wrapf(ErrInvalidOvers, "%d.%d", completed, balls)
	}
	return Overs{balls: completed*BallsPerOver + balls}, nil
}

// ParseOvers reads "19.4" style notation. An empty string is zero overs.
func ParseOvers(raw string) (Overs, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Overs{}, nil
	}

	whole, fraction, hasFraction := strings.Cut(raw, ".")
	completed, err := strconv.Atoi(whole)
	if err != nil {
		return Overs{}, crerr.Wrapf(ErrInvalidOvers, "%q", raw)
	}
	if !hasFraction {
		return NewOvers(completed, 0)
	}
	if len(fraction) != 1 {
		return Overs{}, crerr.Wrapf(ErrInvalidOvers, "%q", raw)
	}
	balls, err := strconv.Atoi(fraction)
	if err != nil {
		return Overs{}, crerr.Wrapf(ErrInvalidOvers, "%q", raw)
	}
	return NewOvers(completed, balls)
}

// OversFromNotation converts a decimal-looking notation value (19.4) into overs.
func OversFromNotation(v float64) (Overs, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Overs{}, crerr.Wrapf(ErrInvalidOvers, "%v", v)
	}
	completed := math.Floor(v)
	balls := math.Round((v - completed) * 10)
	return NewOvers(int(completed), int(balls))
}

func (o Overs) Balls() int {
	return o.balls
}

func (o Overs) Completed() int {
	return o.balls / BallsPerOver
}

func (o Overs) Remainder() int {
	return o.balls % BallsPerOver
}

func (o Overs) IsZero() bool {
	return o.balls == 0
}

func (o Overs) Add(other Overs) Overs {
	return Overs{balls: o.balls + other.balls}
}

// Decimal is the true fractional over count used for rates: 19.4 is 19.666...
func (o Overs) Decimal() float64 {
	return float64(o.balls) / BallsPerOver
}

func (o Overs) String() string {
	return fmt.Sprintf("%d.%d", o.Completed(), o.Remainder())
}

func (o Overs) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Overs) UnmarshalText(text []byte) error {
	parsed, err := ParseOvers(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
