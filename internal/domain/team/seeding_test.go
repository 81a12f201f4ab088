package team

import (
	"reflect"
	"testing"
)

func TestSeededIDs(t *testing.T) {
	t.Parallel()

	got := SeededIDs([]Team{
		{ID: "t-d"},
		{ID: "t-b", Seed: 2},
		{ID: "t-c"},
		{ID: "t-a", Seed: 1},
	})
	want := []string{"t-a", "t-b", "t-c", "t-d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected seeding: got=%v want=%v", got, want)
	}
}
