package services

import (
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"gorm.io/gorm"
)

// manualExecRow is the joined shape of one manual result with the status
// flags needed to classify it.
type manualExecRow struct {
	TestCaseID uint
	ResultID   uint
	ExecutedAt *time.Time
	IsSuccess  bool
	IsFailure  bool
}

// automatedExecRow carries the JUnit result type plus the optional
// explicit status mapping. When StatusID is set the status flags win;
// otherwise the result type is classified.
type automatedExecRow struct {
	TestCaseID uint
	ResultID   uint
	ExecutedAt *time.Time
	ResultType string
	StatusID   *uint
	IsSuccess  bool
	IsFailure  bool
}

// fetchManualExecutions loads all manual executions for a project's test
// cases, optionally bounded below by since (zero time means all-time).
// The SQL stays coarse on purpose: it filters by project and window only
// and leaves qualification and fusion to the analytics layer.
func fetchManualExecutions(db *gorm.DB, projectID uint, since time.Time) (map[uint][]analytics.Execution, error) {
	query := db.Table("test_run_results").
		Select(`test_run_cases.test_case_id AS test_case_id,
			test_run_results.id AS result_id,
			test_run_results.executed_at AS executed_at,
			statuses.is_success AS is_success,
			statuses.is_failure AS is_failure`).
		Joins("JOIN test_run_cases ON test_run_cases.id = test_run_results.test_run_case_id").
		Joins("JOIN test_runs ON test_runs.id = test_run_cases.test_run_id AND test_runs.deleted_at IS NULL").
		Joins("JOIN statuses ON statuses.id = test_run_results.status_id").
		Where("test_runs.project_id = ?", projectID)
	if !since.IsZero() {
		query = query.Where("test_run_results.executed_at >= ?", since)
	}

	var rows []manualExecRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	byCase := make(map[uint][]analytics.Execution)
	for _, r := range rows {
		byCase[r.TestCaseID] = append(byCase[r.TestCaseID], analytics.Execution{
			TestCaseID: r.TestCaseID,
			RecordID:   r.ResultID,
			ExecutedAt: r.ExecutedAt,
			IsSuccess:  r.IsSuccess,
			IsFailure:  r.IsFailure,
			Source:     analytics.SourceManual,
		})
	}
	return byCase, nil
}

// fetchAutomatedExecutions loads all automated executions for a project,
// optionally bounded below by since.
func fetchAutomatedExecutions(db *gorm.DB, projectID uint, since time.Time) (map[uint][]analytics.Execution, error) {
	query := db.Table("automated_results").
		Select(`automated_results.test_case_id AS test_case_id,
			automated_results.id AS result_id,
			automated_results.executed_at AS executed_at,
			automated_results.result_type AS result_type,
			automated_results.status_id AS status_id,
			COALESCE(statuses.is_success, 0) AS is_success,
			COALESCE(statuses.is_failure, 0) AS is_failure`).
		Joins("JOIN automated_runs ON automated_runs.id = automated_results.automated_run_id AND automated_runs.deleted_at IS NULL").
		Joins("LEFT JOIN statuses ON statuses.id = automated_results.status_id").
		Where("automated_runs.project_id = ?", projectID)
	if !since.IsZero() {
		query = query.Where("automated_results.executed_at >= ?", since)
	}

	var rows []automatedExecRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	byCase := make(map[uint][]analytics.Execution)
	for _, r := range rows {
		success, failure := r.IsSuccess, r.IsFailure
		if r.StatusID == nil {
			var ok bool
			if success, failure, ok = analytics.ClassifyResultType(r.ResultType); !ok {
				success, failure = false, false
			}
		}
		byCase[r.TestCaseID] = append(byCase[r.TestCaseID], analytics.Execution{
			TestCaseID: r.TestCaseID,
			RecordID:   r.ResultID,
			ExecutedAt: r.ExecutedAt,
			IsSuccess:  success,
			IsFailure:  failure,
			Source:     analytics.SourceAutomated,
		})
	}
	return byCase, nil
}

// fuseProjectExecutions builds the per-case fused timeline for a whole
// project in two queries.
func fuseProjectExecutions(db *gorm.DB, projectID uint, since time.Time) (map[uint][]analytics.Execution, error) {
	manual, err := fetchManualExecutions(db, projectID, since)
	if err != nil {
		return nil, err
	}
	automated, err := fetchAutomatedExecutions(db, projectID, since)
	if err != nil {
		return nil, err
	}

	fused := make(map[uint][]analytics.Execution, len(manual)+len(automated))
	for id, execs := range manual {
		fused[id] = analytics.Fuse(execs, automated[id])
	}
	for id, execs := range automated {
		if _, done := manual[id]; !done {
			fused[id] = analytics.Fuse(nil, execs)
		}
	}
	return fused, nil
}
