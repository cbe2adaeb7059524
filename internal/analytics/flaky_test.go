package analytics

import (
	"math"
	"testing"
)

func outcomes(pattern ...bool) []Execution {
	// true = pass, false = fail; most recent first.
	execs := make([]Execution, len(pattern))
	for i, pass := range pattern {
		at := ts("2024-06-01T00:00:00Z").AddDate(0, 0, -i)
		t := at
		execs[i] = Execution{RecordID: uint(i + 1), ExecutedAt: &t, IsSuccess: pass, IsFailure: !pass}
	}
	return execs
}

func TestCountFlips(t *testing.T) {
	tests := []struct {
		pattern []bool
		flips   int
	}{
		{[]bool{}, 0},
		{[]bool{true}, 0},
		{[]bool{true, true, true}, 0},
		{[]bool{false, true, false}, 2},
		{[]bool{true, false, true, false}, 3},
		{[]bool{false, false, true, true}, 1},
	}

	for _, tt := range tests {
		if got := CountFlips(outcomes(tt.pattern...)); got != tt.flips {
			t.Errorf("CountFlips(%v) = %d, expected %d", tt.pattern, got, tt.flips)
		}
	}
}

func TestPriorityScore_Example(t *testing.T) {
	// [fail, pass, fail] most-recent-first with decay 0.7:
	// recency = 1 + 0 + 0.49 = 1.49, max = (1-0.7^3)/0.3 = 2.19,
	// flips = 2/2 = 1, priority = 0.5 + 0.5*1.49/2.19 ~= 0.8402.
	execs := outcomes(false, true, false)
	score := PriorityScore(execs, 2, 3)

	if math.Abs(score-0.8402) > 0.001 {
		t.Errorf("priority = %.4f, expected ~0.8402", score)
	}
}

func TestPriorityScore_EmptyWindow(t *testing.T) {
	if score := PriorityScore(nil, 0, 0); score != 0 {
		t.Errorf("priority of empty window = %f, expected 0", score)
	}
}

func TestPriorityScore_AllFailuresMaxesRecency(t *testing.T) {
	execs := outcomes(false, false, false, false)
	score := PriorityScore(execs, 0, 4)

	// normalizedRecency = 1, flips = 0 -> priority = 0.5.
	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("priority = %f, expected 0.5", score)
	}
}

func TestPriorityScore_RecentFailureOutweighsOldFailure(t *testing.T) {
	recent := PriorityScore(outcomes(false, true, true, true), 1, 4)
	old := PriorityScore(outcomes(true, true, true, false), 1, 4)

	if recent <= old {
		t.Errorf("recent failure score %.4f should exceed old failure score %.4f", recent, old)
	}
}

func TestPriorityScore_RanksFlakierTestsHigher(t *testing.T) {
	flaky := outcomes(false, true, false, true, false)
	stable := outcomes(true, true, true, true, false)

	flakyScore := PriorityScore(flaky, CountFlips(flaky), 5)
	stableScore := PriorityScore(stable, CountFlips(stable), 5)
	if flakyScore <= stableScore {
		t.Errorf("flaky %.4f should outrank stable %.4f", flakyScore, stableScore)
	}
}
