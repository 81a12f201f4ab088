package team

import (
	"cmp"
	"slices"
)

// SeededIDs orders teams by seed, unseeded teams last, ties by id.
func SeededIDs(teams []Team) []string {
	sorted := slices.Clone(teams)
	slices.SortStableFunc(sorted, func(a, b Team) int {
		if (a.Seed == 0) != (b.Seed == 0) {
			if a.Seed == 0 {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.Seed, b.Seed); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]string, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, item.ID)
	}
	return out
}
