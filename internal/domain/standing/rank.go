package standing

import (
	"cmp"
	"math"
	"slices"
)

// nrrPrecision is the number of net run rate steps per unit. Rates that
// round to the same three decimal places are level.
const nrrPrecision = 1000

func nrrStep(nrr float64) float64 {
	return math.Round(nrr * nrrPrecision)
}

func compare(a, b Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(nrrStep(b.NetRunRate), nrrStep(a.NetRunRate)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Won, a.Won); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamID, b.TeamID)
}

// Rank orders one table by points, net run rate, wins and finally team id,
// and assigns 1-based positions.
func Rank(items []Standing) []Standing {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compare)
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// RankByGroup ranks every group independently, keyed by group label. The
// ungrouped table uses the empty label.
func RankByGroup(items []Standing) map[string][]Standing {
	grouped := make(map[string][]Standing)
	for _, item := range items {
		grouped[item.Group] = append(grouped[item.Group], item)
	}
	for group, rows := range grouped {
		grouped[group] = Rank(rows)
	}
	return grouped
}

// Flatten joins grouped tables in group label order.
func Flatten(grouped map[string][]Standing) []Standing {
	groups := make([]string, 0, len(grouped))
	for group := range grouped {
		groups = append(groups, group)
	}
	slices.Sort(groups)

	out := make([]Standing, 0)
	for _, group := range groups {
		out = append(out, grouped[group]...)
	}
	return out
}
