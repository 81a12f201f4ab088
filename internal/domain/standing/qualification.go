package standing

// QualificationRule sets how many places qualify and how much a remaining
// match is worth at most.
type QualificationRule struct {
	Spots     int
	WinPoints int
}

func DefaultQualificationRule() QualificationRule {
	return QualificationRule{Spots: 4, WinPoints: DefaultPointsTable().Win}
}

// EvaluateQualification flags ranked rows as mathematically qualified or
// eliminated. remaining holds each team's unplayed round-robin matches.
//
// A team inside the spots is qualified once it has nothing left to play and
// its points are at least the points of the last qualifying place. A team
// outside the spots is eliminated when even winning every remaining match
// cannot lift it past that place.
func EvaluateQualification(ranked []Standing, remaining map[string]int, rule QualificationRule) []Standing {
	out := make([]Standing, len(ranked))
	copy(out, ranked)

	spots := rule.Spots
	if spots <= 0 {
		spots = DefaultQualificationRule().Spots
	}
	if len(out) == 0 {
		return out
	}

	cutoffIndex := min(spots, len(out)) - 1
	cutoff := out[cutoffIndex].Points

	for i := range out {
		left := remaining[out[i].TeamID]
		out[i].Qualified = false
		out[i].Eliminated = false

		if i < spots {
			out[i].Qualified = left == 0 && out[i].Points >= cutoff
			continue
		}
		out[i].Eliminated = out[i].Points+left*rule.WinPoints < cutoff
	}
	return out
}
