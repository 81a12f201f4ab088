package cricket

import "math"

// RunRate is runs per over. Zero overs yields zero.
func RunRate(runs int, overs Overs) float64 {
	if overs.IsZero() {
		return 0
	}
	return float64(runs) / overs.Decimal()
}

// NetRunRate is the run rate scored minus the run rate conceded. Each term
// is zero while its overs total is zero.
func NetRunRate(runsFor int, oversFor Overs, runsAgainst int, oversAgainst Overs) float64 {
	return RunRate(runsFor, oversFor) - RunRate(runsAgainst, oversAgainst)
}

// RoundRate rounds a rate to three decimals for display.
func RoundRate(v float64) float64 {
	return math.Round(v*1000) / 1000
}
