package analytics

// Valid ranges for report tuning parameters. Out-of-range values are
// silently clamped rather than rejected so malformed client state
// degrades gracefully instead of failing reports.
const (
	MinStaleDays = 7
	MaxStaleDays = 90

	MinExecutionsFloor = 3
	MinExecutionsCeil  = 20

	MinLookbackDays = 30
	MaxLookbackDays = 365
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampStaleDays clamps a staleness threshold to [7, 90] days.
func ClampStaleDays(v int) int {
	return clamp(v, MinStaleDays, MaxStaleDays)
}

// ClampMinExecutions clamps the minimum sample size for pass-rate
// judgments to [3, 20].
func ClampMinExecutions(v int) int {
	return clamp(v, MinExecutionsFloor, MinExecutionsCeil)
}

// ClampLookbackDays clamps a lookback window to [30, 365] days.
// Zero is the all-time sentinel and passes through unchanged.
func ClampLookbackDays(v int) int {
	if v == 0 {
		return 0
	}
	return clamp(v, MinLookbackDays, MaxLookbackDays)
}
