package bracket

import (
	"reflect"
	"testing"
)

func TestSize(t *testing.T) {
	t.Parallel()

	cases := map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 6: 8, 8: 8, 9: 16, 16: 16, 17: 32}
	for n, want := range cases {
		if got := Size(n); got != want {
			t.Fatalf("Size(%d): got=%d want=%d", n, got, want)
		}
	}
	if got := Byes(6); got != 2 {
		t.Fatalf("Byes(6): got=%d want=%d", got, 2)
	}
	if got := Rounds(8); got != 3 {
		t.Fatalf("Rounds(8): got=%d want=%d", got, 3)
	}
}

func TestSeedOrder(t *testing.T) {
	t.Parallel()

	if got, want := SeedOrder(4), []int{1, 4, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SeedOrder(4): got=%v want=%v", got, want)
	}
	if got, want := SeedOrder(8), []int{1, 8, 4, 5, 2, 7, 3, 6}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SeedOrder(8): got=%v want=%v", got, want)
	}
}

func TestFirstRound_TopSeedsReceiveByes(t *testing.T) {
	t.Parallel()

	pairs, err := FirstRound(teamIDs(6))
	if err != nil {
		t.Fatalf("first round: %v", err)
	}
	if len(pairs) != 4 {
		t.Fatalf("unexpected pairing count: got=%d want=%d", len(pairs), 4)
	}

	playable := 0
	advanced := make([]string, 0, 2)
	for _, p := range pairs {
		winner, ok := p.Resolve()
		if ok {
			playable++
			continue
		}
		id, assigned := winner.TeamID()
		if !assigned {
			t.Fatalf("bye pairing advanced a non-team slot: %+v", p)
		}
		advanced = append(advanced, id)
	}
	if playable != 2 {
		t.Fatalf("unexpected playable count: got=%d want=%d", playable, 2)
	}
	if want := []string{"team-01", "team-02"}; !reflect.DeepEqual(advanced, want) {
		t.Fatalf("unexpected bye recipients: got=%v want=%v", advanced, want)
	}
}

func TestNextSlotAndRoundName(t *testing.T) {
	t.Parallel()

	next, home := NextSlot(3)
	if next != 1 || home {
		t.Fatalf("NextSlot(3): got=(%d,%t) want=(1,false)", next, home)
	}
	next, home = NextSlot(2)
	if next != 1 || !home {
		t.Fatalf("NextSlot(2): got=(%d,%t) want=(1,true)", next, home)
	}

	names := []string{RoundName(1, 4), RoundName(2, 4), RoundName(3, 4), RoundName(4, 4)}
	want := []string{"round-1", "quarter-final", "semi-final", "final"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected round names: got=%v want=%v", names, want)
	}
}
