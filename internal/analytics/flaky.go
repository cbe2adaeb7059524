package analytics

import "math"

// flakeDecay is the per-step weight multiplier for the recency-weighted
// failure score: the most recent execution weighs 1, the next 0.7, then
// 0.49, and so on.
const flakeDecay = 0.7

// CountFlips counts pass<->fail transitions in a most-recent-first
// execution window. Each adjacent pair where the success flag changes
// counts as one flip.
func CountFlips(execs []Execution) int {
	flips := 0
	for i := 1; i < len(execs); i++ {
		if execs[i].IsSuccess != execs[i-1].IsSuccess {
			flips++
		}
	}
	return flips
}

// PriorityScore computes a recency-weighted instability score in [0,1]
// used purely to rank flaky candidates for display. execs must be
// ordered most-recent-first. The score averages two normalized signals:
// how recently failures occurred (decay-weighted) and how often the
// outcome flipped across the sampled window of consecutive runs.
func PriorityScore(execs []Execution, flipCount, consecutiveRuns int) float64 {
	recencyScore := 0.0
	weight := 1.0
	for _, e := range execs {
		if e.IsFailure {
			recencyScore += weight
		}
		weight *= flakeDecay
	}

	// Geometric series sum: the score of a window that failed every time.
	maxScore := 1.0
	if n := len(execs); n > 0 {
		maxScore = (1 - math.Pow(flakeDecay, float64(n))) / (1 - flakeDecay)
	}

	normalizedRecency := 0.0
	if maxScore > 0 {
		normalizedRecency = recencyScore / maxScore
	}

	denom := consecutiveRuns - 1
	if denom < 1 {
		denom = 1
	}
	normalizedFlips := float64(flipCount) / float64(denom)

	return normalizedFlips*0.5 + normalizedRecency*0.5
}
