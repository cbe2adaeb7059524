package analytics

import (
	"testing"
	"time"
)

func healthExecs(now time.Time, daysAgo int, passes, fails int) []Execution {
	at := now.AddDate(0, 0, -daysAgo)
	var execs []Execution
	id := uint(1)
	for i := 0; i < passes; i++ {
		t := at
		execs = append(execs, Execution{RecordID: id, ExecutedAt: &t, IsSuccess: true, Source: SourceManual})
		id++
	}
	for i := 0; i < fails; i++ {
		t := at
		execs = append(execs, Execution{RecordID: id, ExecutedAt: &t, IsFailure: true, Source: SourceManual})
		id++
	}
	return execs
}

func TestScoreHealth_NeverExecuted(t *testing.T) {
	m := ScoreHealth(nil, HealthParams{Now: ts("2024-06-01T00:00:00Z"), StaleDaysThreshold: 30, MinExecutionsForRate: 5})

	if m.HealthStatus != HealthNeverExecuted {
		t.Errorf("status = %s, expected never_executed", m.HealthStatus)
	}
	if m.IsStale {
		t.Error("a never-executed case must not be stale")
	}
	if m.DaysSinceLastExecution != nil {
		t.Errorf("daysSinceLastExecution = %d, expected nil", *m.DaysSinceLastExecution)
	}
	if m.HealthScore != 50 {
		t.Errorf("score = %d, expected 50", m.HealthScore)
	}
	if m.PassRate != 0 {
		t.Errorf("passRate = %d, expected 0", m.PassRate)
	}
}

func TestScoreHealth_AlwaysPassingExample(t *testing.T) {
	// 10 passes 5 days ago with minExecutionsForRate=5: always_passing,
	// not stale, score 100 - 5 (suspicious pass rate) = 95.
	now := ts("2024-06-01T00:00:00Z")
	m := ScoreHealth(healthExecs(now, 5, 10, 0), HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5})

	if m.HealthStatus != HealthAlwaysPassing {
		t.Errorf("status = %s, expected always_passing", m.HealthStatus)
	}
	if m.IsStale {
		t.Error("5 days since execution should not be stale at threshold 30")
	}
	if m.HealthScore != 95 {
		t.Errorf("score = %d, expected 95", m.HealthScore)
	}
	if m.PassRate != 100 {
		t.Errorf("passRate = %d, expected 100", m.PassRate)
	}
}

func TestScoreHealth_AlwaysFailing(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	m := ScoreHealth(healthExecs(now, 2, 0, 6), HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5})

	if m.HealthStatus != HealthAlwaysFailing {
		t.Errorf("status = %s, expected always_failing", m.HealthStatus)
	}
	// 100 - 30 (0% pass rate over enough samples)
	if m.HealthScore != 70 {
		t.Errorf("score = %d, expected 70", m.HealthScore)
	}
}

func TestScoreHealth_TooFewExecutionsStaysHealthy(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	m := ScoreHealth(healthExecs(now, 2, 0, 2), HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5})

	if m.HealthStatus != HealthHealthy {
		t.Errorf("status = %s, expected healthy below the sample threshold", m.HealthStatus)
	}
	// No pass-rate deduction (sample too small), but low-frequency -10.
	if m.HealthScore != 90 {
		t.Errorf("score = %d, expected 90", m.HealthScore)
	}
}

func TestScoreHealth_StalenessIndependentOfStatus(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	m := ScoreHealth(healthExecs(now, 45, 3, 3), HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5})

	if !m.IsStale {
		t.Error("45 days since execution should be stale at threshold 30")
	}
	if m.HealthStatus != HealthHealthy {
		t.Errorf("status = %s, staleness must not change the classification", m.HealthStatus)
	}
}

func TestScoreHealth_StalenessTiers(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	p := HealthParams{Now: now, StaleDaysThreshold: 90, MinExecutionsForRate: 5}

	tests := []struct {
		daysAgo int
		score   int
	}{
		{10, 95},  // no staleness deduction, -5 suspicious pass
		{31, 85},  // -10
		{61, 70},  // -25
		{91, 55},  // -40, tiers are exclusive
		{400, 55}, // still just the top tier
	}

	for _, tt := range tests {
		m := ScoreHealth(healthExecs(now, tt.daysAgo, 10, 0), p)
		if m.HealthScore != tt.score {
			t.Errorf("daysAgo=%d: score = %d, expected %d", tt.daysAgo, m.HealthScore, tt.score)
		}
	}
}

func TestScoreHealth_MonotonicInStaleness(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	p := HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5}

	prev := 101
	for _, daysAgo := range []int{1, 15, 30, 31, 60, 61, 90, 91, 200} {
		m := ScoreHealth(healthExecs(now, daysAgo, 7, 3), p)
		if m.HealthScore > prev {
			t.Errorf("score increased from %d to %d at daysAgo=%d", prev, m.HealthScore, daysAgo)
		}
		prev = m.HealthScore
	}
}

func TestScoreHealth_ScoreFloorAtZero(t *testing.T) {
	// Ancient, always-failing, low-frequency: 100 -40 -30 -10 would leave
	// 20; pile on by shrinking the sample threshold so every deduction hits.
	now := ts("2024-06-01T00:00:00Z")
	m := ScoreHealth(healthExecs(now, 120, 0, 2), HealthParams{Now: now, StaleDaysThreshold: 7, MinExecutionsForRate: 2})

	if m.HealthScore < 0 || m.HealthScore > 100 {
		t.Errorf("score %d outside [0,100]", m.HealthScore)
	}
	if m.HealthScore != 20 {
		t.Errorf("score = %d, expected 20", m.HealthScore)
	}
}

func TestScoreHealth_Idempotent(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	execs := healthExecs(now, 40, 4, 6)
	p := HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5}

	first := ScoreHealth(execs, p)
	second := ScoreHealth(execs, p)
	if first.HealthScore != second.HealthScore || first.HealthStatus != second.HealthStatus ||
		first.PassRate != second.PassRate || first.IsStale != second.IsStale {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}

func TestScoreHealth_PassRateRounding(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	m := ScoreHealth(healthExecs(now, 1, 2, 1), HealthParams{Now: now, StaleDaysThreshold: 30, MinExecutionsForRate: 5})

	// 2/3 -> 66.67 rounds to 67.
	if m.PassRate != 67 {
		t.Errorf("passRate = %d, expected 67", m.PassRate)
	}
}
