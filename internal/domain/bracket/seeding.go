package bracket

import (
	"fmt"
	"math/bits"
)

// Size is the smallest power of two holding n teams.
func Size(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// Byes is the number of empty bracket positions for n teams.
func Byes(n int) int {
	return Size(n) - n
}

// Rounds is log2 of the bracket size.
func Rounds(size int) int {
	if size <= 1 {
		return 0
	}
	return bits.Len(uint(Size(size))) - 1
}

// SeedOrder lists seeds in bracket-line order so that seeds 1 and 2 can only
// meet in the final. Each step expands seed s into s and size+1-s.
func SeedOrder(size int) []int {
	size = Size(size)
	order := []int{1}
	for current := 1; current < size; current <<= 1 {
		next := make([]int, 0, current*2)
		for _, seed := range order {
			next = append(next, seed, current*2+1-seed)
		}
		order = next
	}
	return order
}

// SeedPair is one first-round bracket pairing.
type SeedPair struct {
	Position int
	Home     Slot
	Away     Slot
}

// Resolve reports whether the pairing needs to be played. When it does not,
// winner is the slot that advances without playing.
func (p SeedPair) Resolve() (winner Slot, playable bool) {
	switch {
	case p.Home.IsAssigned() && p.Away.IsAssigned():
		return Pending(), true
	case p.Home.IsAssigned():
		return p.Home, false
	case p.Away.IsAssigned():
		return p.Away, false
	default:
		return Bye(), false
	}
}

// FirstRound pairs a seeded roster (index 0 is seed 1) over a bracket of
// Size(len(seeded)). Seeds past the roster become byes, so the top seeds
// are the ones that skip round one.
func FirstRound(seeded []string) ([]SeedPair, error) {
	if err := ValidateRoster(seeded); err != nil {
		return nil, err
	}

	order := SeedOrder(len(seeded))
	slotFor := func(seed int) Slot {
		if seed > len(seeded) {
			return Bye()
		}
		return Assigned(seeded[seed-1])
	}

	pairs := make([]SeedPair, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		pairs = append(pairs, SeedPair{
			Position: i / 2,
			Home:     slotFor(order[i]),
			Away:     slotFor(order[i+1]),
		})
	}
	return pairs, nil
}

// NextSlot maps a bracket position to its place in the following round.
func NextSlot(position int) (next int, home bool) {
	return position / 2, position%2 == 0
}

// RoundName labels a knockout round by its distance from the final.
func RoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "final"
	case 1:
		return "semi-final"
	case 2:
		return "quarter-final"
	default:
		return fmt.Sprintf("round-%d", round)
	}
}
