package services

import (
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

type CoverageReportService struct {
	db *gorm.DB
}

func NewCoverageReportService(db *gorm.DB) *CoverageReportService {
	return &CoverageReportService{db: db}
}

type CoverageReportRequest struct {
	ProjectID    uint `json:"project_id" binding:"required"`
	LookbackDays int  `json:"lookback_days"`
}

type CoverageReportResponse struct {
	Items        []analytics.IssueCoverageSummary `json:"items"`
	Total        int                              `json:"total"`
	LookbackDays int                              `json:"lookback_days"`
}

type issueLinkRow struct {
	IssueID    uint
	IssueKey   string
	IssueTitle string
	TestCaseID uint
}

func (s *CoverageReportService) Generate(req *CoverageReportRequest) (*CoverageReportResponse, error) {
	return s.generate(req, time.Now())
}

func (s *CoverageReportService) generate(req *CoverageReportRequest, now time.Time) (*CoverageReportResponse, error) {
	if req.LookbackDays == 0 {
		req.LookbackDays = reportDefaults().LookbackDays
	}
	lookback := analytics.ClampLookbackDays(req.LookbackDays)
	var since time.Time
	if lookback > 0 {
		since = now.UTC().AddDate(0, 0, -lookback)
	}

	var links []issueLinkRow
	err := s.db.Model(&models.IssueTestCase{}).
		Select(`issues.id AS issue_id,
			issues.key AS issue_key,
			issues.title AS issue_title,
			issue_test_cases.test_case_id AS test_case_id`).
		Joins("JOIN issues ON issues.id = issue_test_cases.issue_id AND issues.deleted_at IS NULL").
		Joins("JOIN test_cases ON test_cases.id = issue_test_cases.test_case_id AND test_cases.deleted_at IS NULL").
		Where("issues.project_id = ?", req.ProjectID).
		Order("issue_test_cases.id").
		Scan(&links).Error
	if err != nil {
		return nil, err
	}

	fused, err := fuseProjectExecutions(s.db, req.ProjectID, since)
	if err != nil {
		return nil, err
	}

	rows := make([]analytics.CoverageRow, 0, len(links))
	for _, link := range links {
		row := analytics.CoverageRow{
			IssueID:    link.IssueID,
			IssueKey:   link.IssueKey,
			IssueTitle: link.IssueTitle,
			TestCaseID: link.TestCaseID,
		}
		if execs := fused[link.TestCaseID]; len(execs) > 0 {
			row.HasExecution = true
			row.IsSuccess = execs[0].IsSuccess
			row.IsFailure = execs[0].IsFailure
		}
		rows = append(rows, row)
	}

	items := analytics.AggregateCoverage(rows)
	return &CoverageReportResponse{
		Items:        items,
		Total:        len(items),
		LookbackDays: lookback,
	}, nil
}
