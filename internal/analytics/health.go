package analytics

import (
	"math"
	"time"
)

// HealthStatus classifies a test case's execution pattern.
type HealthStatus string

const (
	HealthHealthy       HealthStatus = "healthy"
	HealthNeverExecuted HealthStatus = "never_executed"
	HealthAlwaysPassing HealthStatus = "always_passing"
	HealthAlwaysFailing HealthStatus = "always_failing"
)

// HealthParams are the tunable inputs to the health scorer. Now must be
// supplied by the caller; the scorer never reads the clock.
type HealthParams struct {
	Now                  time.Time
	StaleDaysThreshold   int
	MinExecutionsForRate int
}

// HealthMetrics is the derived health view of one test case. Computed
// fresh per report invocation and never persisted.
type HealthMetrics struct {
	TotalExecutions        int          `json:"total_executions"`
	PassCount              int          `json:"pass_count"`
	FailCount              int          `json:"fail_count"`
	LastExecutedAt         *time.Time   `json:"last_executed_at"`
	DaysSinceLastExecution *int         `json:"days_since_last_execution"`
	PassRate               int          `json:"pass_rate"`
	HealthStatus           HealthStatus `json:"health_status"`
	IsStale                bool         `json:"is_stale"`
	HealthScore            int          `json:"health_score"`
}

// ScoreHealth computes HealthMetrics from a fused execution timeline.
// The input must contain qualifying executions only (see Fuse); order is
// irrelevant. A case with zero executions is never_executed and never
// stale; staleness is otherwise computed independently of the status
// classification.
func ScoreHealth(execs []Execution, p HealthParams) HealthMetrics {
	m := HealthMetrics{TotalExecutions: len(execs)}

	var last *time.Time
	for _, e := range execs {
		if e.IsSuccess {
			m.PassCount++
		} else if e.IsFailure {
			m.FailCount++
		}
		if e.ExecutedAt != nil && (last == nil || e.ExecutedAt.After(*last)) {
			t := *e.ExecutedAt
			last = &t
		}
	}
	m.LastExecutedAt = last

	if last != nil {
		days := int(p.Now.UTC().Sub(last.UTC()).Hours() / 24)
		if days < 0 {
			days = 0
		}
		m.DaysSinceLastExecution = &days
	}

	if m.TotalExecutions > 0 {
		m.PassRate = int(math.Round(float64(m.PassCount) / float64(m.TotalExecutions) * 100))
	}

	m.HealthStatus = classifyHealth(&m, p.MinExecutionsForRate)
	m.IsStale = m.DaysSinceLastExecution != nil && *m.DaysSinceLastExecution > p.StaleDaysThreshold
	m.HealthScore = healthScore(&m, p.MinExecutionsForRate)
	return m
}

func classifyHealth(m *HealthMetrics, minExecutions int) HealthStatus {
	if m.TotalExecutions == 0 {
		return HealthNeverExecuted
	}
	if m.TotalExecutions >= minExecutions {
		if m.PassCount == 0 && m.FailCount > 0 {
			return HealthAlwaysFailing
		}
		// 100% pass over enough samples is flagged: the test may not discriminate.
		if m.PassCount == m.TotalExecutions && m.FailCount == 0 {
			return HealthAlwaysPassing
		}
	}
	return HealthHealthy
}

// healthScore deducts from a base of 100. Never-executed short-circuits
// at 50; staleness tiers are mutually exclusive; pass-rate deductions
// apply only once the sample is large enough to judge a pattern.
func healthScore(m *HealthMetrics, minExecutions int) int {
	if m.TotalExecutions == 0 {
		return 50
	}

	score := 100

	if m.DaysSinceLastExecution != nil {
		switch days := *m.DaysSinceLastExecution; {
		case days > 90:
			score -= 40
		case days > 60:
			score -= 25
		case days > 30:
			score -= 10
		}
	}

	if m.TotalExecutions >= minExecutions {
		rate := float64(m.PassCount) / float64(m.TotalExecutions) * 100
		switch {
		case rate == 100:
			score -= 5 // suspicious: never fails
		case rate == 0:
			score -= 30 // broken: never passes
		case rate < 50:
			score -= 20
		}
	}

	if m.TotalExecutions < 3 {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
