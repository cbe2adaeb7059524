package analytics

import (
	"math"
	"sort"
)

// CoverageRow is one issue<->test-case link with the linked case's fused
// latest execution, as fetched pre-joined by the caller.
type CoverageRow struct {
	IssueID      uint
	IssueKey     string
	IssueTitle   string
	TestCaseID   uint
	HasExecution bool
	IsSuccess    bool
	IsFailure    bool
}

// IssueCoverageSummary is the derived coverage view of one issue.
// LinkedTestCases always equals passed + failed + untested.
type IssueCoverageSummary struct {
	IssueID           uint   `json:"issue_id"`
	IssueKey          string `json:"issue_key"`
	IssueTitle        string `json:"issue_title"`
	LinkedTestCases   int    `json:"linked_test_cases"`
	PassedTestCases   int    `json:"passed_test_cases"`
	FailedTestCases   int    `json:"failed_test_cases"`
	UntestedTestCases int    `json:"untested_test_cases"`
	PassRate          int    `json:"pass_rate"`
}

// AggregateCoverage computes one summary per distinct issue. Pass rate is
// over tested cases only (passed+failed as denominator), 0 when nothing
// has been tested. Output ordering is a display contract: most failures
// first, then lowest pass rate, then most linked cases; issue ID breaks
// remaining ties deterministically.
func AggregateCoverage(rows []CoverageRow) []IssueCoverageSummary {
	byIssue := make(map[uint]*IssueCoverageSummary)
	order := make([]uint, 0)

	for _, row := range rows {
		s, ok := byIssue[row.IssueID]
		if !ok {
			s = &IssueCoverageSummary{
				IssueID:    row.IssueID,
				IssueKey:   row.IssueKey,
				IssueTitle: row.IssueTitle,
			}
			byIssue[row.IssueID] = s
			order = append(order, row.IssueID)
		}

		s.LinkedTestCases++
		switch {
		case row.HasExecution && row.IsSuccess:
			s.PassedTestCases++
		case row.HasExecution && row.IsFailure:
			s.FailedTestCases++
		default:
			s.UntestedTestCases++
		}
	}

	summaries := make([]IssueCoverageSummary, 0, len(order))
	for _, id := range order {
		s := byIssue[id]
		if tested := s.PassedTestCases + s.FailedTestCases; tested > 0 {
			s.PassRate = int(math.Round(float64(s.PassedTestCases) / float64(tested) * 100))
		}
		summaries = append(summaries, *s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].FailedTestCases != summaries[j].FailedTestCases {
			return summaries[i].FailedTestCases > summaries[j].FailedTestCases
		}
		if summaries[i].PassRate != summaries[j].PassRate {
			return summaries[i].PassRate < summaries[j].PassRate
		}
		if summaries[i].LinkedTestCases != summaries[j].LinkedTestCases {
			return summaries[i].LinkedTestCases > summaries[j].LinkedTestCases
		}
		return summaries[i].IssueID < summaries[j].IssueID
	})
	return summaries
}
