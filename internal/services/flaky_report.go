package services

import (
	"sort"
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

type FlakyReportService struct {
	db *gorm.DB
}

func NewFlakyReportService(db *gorm.DB) *FlakyReportService {
	return &FlakyReportService{db: db}
}

type FlakyReportRequest struct {
	ProjectID       uint `json:"project_id" binding:"required"`
	LookbackDays    int  `json:"lookback_days"`
	ConsecutiveRuns int  `json:"consecutive_runs"`
	Limit           int  `json:"limit"`
}

type FlakyTestCase struct {
	TestCaseID     uint       `json:"test_case_id"`
	Title          string     `json:"title"`
	IsAutomated    bool       `json:"is_automated"`
	FlipCount      int        `json:"flip_count"`
	WindowSize     int        `json:"window_size"`
	PriorityScore  float64    `json:"priority_score"`
	LastExecutedAt *time.Time `json:"last_executed_at"`
}

type FlakyReportResponse struct {
	Items           []FlakyTestCase `json:"items"`
	Total           int             `json:"total"`
	LookbackDays    int             `json:"lookback_days"`
	ConsecutiveRuns int             `json:"consecutive_runs"`
	Limit           int             `json:"limit"`
}

func (s *FlakyReportService) Generate(req *FlakyReportRequest) (*FlakyReportResponse, error) {
	return s.generate(req, time.Now())
}

func (s *FlakyReportService) generate(req *FlakyReportRequest, now time.Time) (*FlakyReportResponse, error) {
	defaults := reportDefaults()
	if req.LookbackDays == 0 {
		req.LookbackDays = defaults.LookbackDays
	}
	if req.ConsecutiveRuns <= 0 {
		req.ConsecutiveRuns = defaults.ConsecutiveRuns
	}
	if req.Limit <= 0 {
		req.Limit = defaults.FlakyDisplayCap
	}

	lookback := analytics.ClampLookbackDays(req.LookbackDays)
	var since time.Time
	if lookback > 0 {
		since = now.UTC().AddDate(0, 0, -lookback)
	}

	fused, err := fuseProjectExecutions(s.db, req.ProjectID, since)
	if err != nil {
		return nil, err
	}

	var cases []models.TestCase
	if err := s.db.Where("project_id = ?", req.ProjectID).Order("id").Find(&cases).Error; err != nil {
		return nil, err
	}

	items := make([]FlakyTestCase, 0)
	for _, tc := range cases {
		execs := fused[tc.ID]
		if len(execs) > req.ConsecutiveRuns {
			execs = execs[:req.ConsecutiveRuns]
		}
		flips := analytics.CountFlips(execs)
		if flips == 0 {
			continue
		}
		items = append(items, FlakyTestCase{
			TestCaseID:     tc.ID,
			Title:          tc.Title,
			IsAutomated:    tc.IsAutomated,
			FlipCount:      flips,
			WindowSize:     len(execs),
			PriorityScore:  analytics.PriorityScore(execs, flips, req.ConsecutiveRuns),
			LastExecutedAt: execs[0].ExecutedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PriorityScore != items[j].PriorityScore {
			return items[i].PriorityScore > items[j].PriorityScore
		}
		return items[i].TestCaseID < items[j].TestCaseID
	})

	total := len(items)
	if len(items) > req.Limit {
		items = items[:req.Limit]
	}

	return &FlakyReportResponse{
		Items:           items,
		Total:           total,
		LookbackDays:    lookback,
		ConsecutiveRuns: req.ConsecutiveRuns,
		Limit:           req.Limit,
	}, nil
}
