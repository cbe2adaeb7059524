package services

import (
	"sort"
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/config"
	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

type HealthReportService struct {
	db *gorm.DB
}

func NewHealthReportService(db *gorm.DB) *HealthReportService {
	return &HealthReportService{db: db}
}

// AutomatedFilter narrows a report to automated or manual test cases.
type AutomatedFilter string

const (
	FilterAll       AutomatedFilter = "all"
	FilterAutomated AutomatedFilter = "automated"
	FilterManual    AutomatedFilter = "manual"
)

func parseAutomatedFilter(s string) AutomatedFilter {
	switch AutomatedFilter(s) {
	case FilterAutomated, FilterManual:
		return AutomatedFilter(s)
	}
	return FilterAll
}

type HealthReportRequest struct {
	ProjectID            uint     `json:"project_id" binding:"required"`
	LookbackDays         int      `json:"lookback_days"`
	StaleDaysThreshold   int      `json:"stale_days_threshold"`
	MinExecutionsForRate int      `json:"min_executions_for_rate"`
	AutomatedFilter      string   `json:"automated_filter"`
	HealthStatus         string   `json:"health_status"`
	Page                 int      `json:"page"`
	PageSize             PageSize `json:"page_size"`
}

type TestCaseHealth struct {
	TestCaseID  uint   `json:"test_case_id"`
	Title       string `json:"title"`
	IsAutomated bool   `json:"is_automated"`
	analytics.HealthMetrics
}

type HealthReportResponse struct {
	Items                []TestCaseHealth `json:"items"`
	Total                int              `json:"total"`
	Page                 int              `json:"page"`
	PageSize             PageSize         `json:"page_size"`
	LookbackDays         int              `json:"lookback_days"`
	StaleDaysThreshold   int              `json:"stale_days_threshold"`
	MinExecutionsForRate int              `json:"min_executions_for_rate"`
}

func (s *HealthReportService) Generate(req *HealthReportRequest) (*HealthReportResponse, error) {
	return s.generate(req, time.Now())
}

// reportDefaults returns the configured report defaults, falling back
// to built-ins when no config has been loaded.
func reportDefaults() config.ReportsConfig {
	if config.GlobalConfig != nil {
		return config.GlobalConfig.Reports
	}
	return config.DefaultConfig().Reports
}

func (s *HealthReportService) generate(req *HealthReportRequest, now time.Time) (*HealthReportResponse, error) {
	defaults := reportDefaults()
	if req.LookbackDays == 0 {
		req.LookbackDays = defaults.LookbackDays
	}
	if req.StaleDaysThreshold == 0 {
		req.StaleDaysThreshold = defaults.StaleDaysThreshold
	}
	if req.MinExecutionsForRate == 0 {
		req.MinExecutionsForRate = defaults.MinExecutionsForRate
	}

	lookback := analytics.ClampLookbackDays(req.LookbackDays)
	params := analytics.HealthParams{
		Now:                  now,
		StaleDaysThreshold:   analytics.ClampStaleDays(req.StaleDaysThreshold),
		MinExecutionsForRate: analytics.ClampMinExecutions(req.MinExecutionsForRate),
	}

	caseQuery := s.db.Where("project_id = ?", req.ProjectID)
	switch parseAutomatedFilter(req.AutomatedFilter) {
	case FilterAutomated:
		caseQuery = caseQuery.Where("is_automated = ?", true)
	case FilterManual:
		caseQuery = caseQuery.Where("is_automated = ?", false)
	}

	var cases []models.TestCase
	if err := caseQuery.Order("id").Find(&cases).Error; err != nil {
		return nil, err
	}

	var since time.Time
	if lookback > 0 {
		since = now.UTC().AddDate(0, 0, -lookback)
	}
	fused, err := fuseProjectExecutions(s.db, req.ProjectID, since)
	if err != nil {
		return nil, err
	}

	statusFilter := analytics.HealthStatus(req.HealthStatus)
	items := make([]TestCaseHealth, 0, len(cases))
	for _, tc := range cases {
		metrics := analytics.ScoreHealth(fused[tc.ID], params)
		if statusFilter != "" && metrics.HealthStatus != statusFilter {
			continue
		}
		items = append(items, TestCaseHealth{
			TestCaseID:    tc.ID,
			Title:         tc.Title,
			IsAutomated:   tc.IsAutomated,
			HealthMetrics: metrics,
		})
	}

	// Worst health first; case ID keeps equal scores stable.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].HealthScore != items[j].HealthScore {
			return items[i].HealthScore < items[j].HealthScore
		}
		return items[i].TestCaseID < items[j].TestCaseID
	})

	size := req.PageSize.normalize()
	page := req.Page
	if page < 1 {
		page = 1
	}

	return &HealthReportResponse{
		Items:                paginate(items, page, size),
		Total:                len(items),
		Page:                 page,
		PageSize:             PageSize(size),
		LookbackDays:         lookback,
		StaleDaysThreshold:   params.StaleDaysThreshold,
		MinExecutionsForRate: params.MinExecutionsForRate,
	}, nil
}
