package bracket

import (
	"errors"
	"fmt"
	"testing"
)

func teamIDs(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("team-%02d", i))
	}
	return out
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestRoundRobin_EveryPairMeetsOnce(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 4, 5, 6, 7, 8, 10, 13} {
		n := n
		t.Run(fmt.Sprintf("teams=%d", n), func(t *testing.T) {
			t.Parallel()

			got, err := RoundRobin(teamIDs(n), false)
			if err != nil {
				t.Fatalf("round robin: %v", err)
			}
			want := n * (n - 1) / 2
			if len(got) != want {
				t.Fatalf("unexpected pairing count: got=%d want=%d", len(got), want)
			}

			seen := make(map[string]int, want)
			for _, p := range got {
				if p.Home == p.Away {
					t.Fatalf("team paired with itself: %+v", p)
				}
				seen[pairKey(p.Home, p.Away)]++
			}
			for key, count := range seen {
				if count != 1 {
					t.Fatalf("pair %s met %d times", key, count)
				}
			}
		})
	}
}

func TestRoundRobin_NoTeamTwiceInRound(t *testing.T) {
	t.Parallel()

	got, err := RoundRobin(teamIDs(7), false)
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}

	byRound := make(map[int]map[string]bool)
	for _, p := range got {
		if byRound[p.Round] == nil {
			byRound[p.Round] = make(map[string]bool)
		}
		for _, id := range []string{p.Home, p.Away} {
			if byRound[p.Round][id] {
				t.Fatalf("team %s plays twice in round %d", id, p.Round)
			}
			byRound[p.Round][id] = true
		}
	}
	if len(byRound) != 7 {
		t.Fatalf("unexpected round count: got=%d want=%d", len(byRound), 7)
	}
	for round, teams := range byRound {
		// one team sits out each round with an odd roster.
		if len(teams) != 6 {
			t.Fatalf("round %d has %d teams, want 6", round, len(teams))
		}
	}
}

func TestRoundRobin_DoubleRoundMirrorsHomeAway(t *testing.T) {
	t.Parallel()

	got, err := RoundRobin(teamIDs(4), true)
	if err != nil {
		t.Fatalf("round robin: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("unexpected pairing count: got=%d want=%d", len(got), 12)
	}

	ordered := make(map[string]int, len(got))
	maxRound := 0
	for _, p := range got {
		ordered[p.Home+">"+p.Away]++
		if p.Round > maxRound {
			maxRound = p.Round
		}
	}
	for key, count := range ordered {
		if count != 1 {
			t.Fatalf("ordered pair %s appears %d times", key, count)
		}
	}
	if maxRound != 6 {
		t.Fatalf("unexpected last round: got=%d want=%d", maxRound, 6)
	}
	if got[6].Round != 4 || got[6].Home != got[0].Away || got[6].Away != got[0].Home {
		t.Fatalf("second leg does not mirror first leg: first=%+v mirror=%+v", got[0], got[6])
	}
}

func TestRoundRobin_RejectsBadRoster(t *testing.T) {
	t.Parallel()

	if _, err := RoundRobin([]string{"solo"}, false); !errors.Is(err, ErrTooFewTeams) {
		t.Fatalf("expected ErrTooFewTeams, got %v", err)
	}
	if _, err := RoundRobin([]string{"a", "a"}, false); !errors.Is(err, ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
	if _, err := RoundRobin([]string{"a", ""}, false); !errors.Is(err, ErrEmptyTeamID) {
		t.Fatalf("expected ErrEmptyTeamID, got %v", err)
	}
}
