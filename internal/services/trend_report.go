package services

import (
	"sort"
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

type TrendReportService struct {
	db *gorm.DB
}

func NewTrendReportService(db *gorm.DB) *TrendReportService {
	return &TrendReportService{db: db}
}

type TrendReportRequest struct {
	ProjectIDs    []uint `json:"project_ids" binding:"required,min=1"`
	StartDate     string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate       string `json:"end_date" binding:"required"`   // YYYY-MM-DD
	DateGrouping  string `json:"date_grouping"`
	SortColumn    string `json:"sort_column"`
	SortDirection string `json:"sort_direction"` // asc|desc
}

// TrendReportRow is one flattened period row. Alongside period_start and
// period_end it carries, per dimension key K, the columns K_automated,
// K_manual, K_total, K_percent_automated, K_automated_change and
// K_manual_change (change columns absent on the first period).
type TrendReportRow map[string]interface{}

type TrendReportResponse struct {
	Rows         []TrendReportRow `json:"rows"`
	Total        int              `json:"total"`
	Dimensions   []string         `json:"dimensions"`
	DateGrouping string           `json:"date_grouping"`
}

func (s *TrendReportService) Generate(req *TrendReportRequest) (*TrendReportResponse, error) {
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := s.db.Where("id IN ?", req.ProjectIDs).Find(&projects).Error; err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(projects))
	for _, p := range projects {
		nameByID[p.ID] = p.Name
	}

	var cases []models.TestCase
	if err := s.db.Where("project_id IN ?", req.ProjectIDs).Find(&cases).Error; err != nil {
		return nil, err
	}

	entities := make([]analytics.TrendEntity, 0, len(cases))
	for _, tc := range cases {
		entities = append(entities, analytics.TrendEntity{
			Dimension: nameByID[tc.ProjectID],
			Automated: tc.IsAutomated,
			CreatedAt: tc.CreatedAt,
		})
	}

	grouping := analytics.ParseDateGrouping(req.DateGrouping)
	buckets := analytics.BucketRange(start, end, grouping)
	pivoted := analytics.PivotTrend(entities, buckets)

	dims := make([]string, 0, len(projects))
	seen := make(map[string]bool)
	for _, p := range projects {
		k := analytics.DimensionKey(p.Name)
		if !seen[k] {
			seen[k] = true
			dims = append(dims, k)
		}
	}
	sort.Strings(dims)

	rows := flattenTrendRows(pivoted)
	sortTrendRows(rows, req.SortColumn, req.SortDirection)

	return &TrendReportResponse{
		Rows:         rows,
		Total:        len(rows),
		Dimensions:   dims,
		DateGrouping: string(grouping),
	}, nil
}

// flattenTrendRows turns the strongly typed pivot into string-keyed
// columns for the wire. This is the only place dimension keys become
// column names.
func flattenTrendRows(pivoted []analytics.TrendRow) []TrendReportRow {
	rows := make([]TrendReportRow, 0, len(pivoted))
	for _, pr := range pivoted {
		row := TrendReportRow{
			"period_start": pr.Period.Start,
			"period_end":   pr.Period.End,
		}
		for key, cell := range pr.Cells {
			row[key+"_automated"] = cell.Automated
			row[key+"_manual"] = cell.Manual
			row[key+"_total"] = cell.Total
			row[key+"_percent_automated"] = cell.PercentAutomated
			if cell.AutomatedChange != nil {
				row[key+"_automated_change"] = *cell.AutomatedChange
			}
			if cell.ManualChange != nil {
				row[key+"_manual_change"] = *cell.ManualChange
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// sortTrendRows applies the caller's sort override. The default (and
// any unknown column) is chronological ascending, which the rows already
// are.
func sortTrendRows(rows []TrendReportRow, column, direction string) {
	if column == "" {
		column = "period_start"
	}
	desc := direction == "desc"

	sort.SliceStable(rows, func(i, j int) bool {
		less := trendValueLess(rows[i][column], rows[j][column])
		if desc {
			return trendValueLess(rows[j][column], rows[i][column])
		}
		return less
	})
}

// trendValueLess compares flattened cell values. Missing values sort
// first so absent change columns group together.
func trendValueLess(a, b interface{}) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	switch av := a.(type) {
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	}
	return false
}
