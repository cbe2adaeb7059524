package services

import (
	"errors"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

var ErrMilestoneNotFound = errors.New("milestone not found")

type MilestoneProgressService struct {
	db *gorm.DB
}

func NewMilestoneProgressService(db *gorm.DB) *MilestoneProgressService {
	return &MilestoneProgressService{db: db}
}

type MilestoneProgressResponse struct {
	MilestoneID    uint                         `json:"milestone_id"`
	MilestoneName  string                       `json:"milestone_name"`
	TotalCases     int                          `json:"total_cases"`
	CompletedCases int                          `json:"completed_cases"`
	CompletionRate int                          `json:"completion_rate"`
	Segments       []analytics.MilestoneSegment `json:"segments"`
	SegmentWidths  []float64                    `json:"segment_widths"`
}

type milestoneCaseRow struct {
	TestRunID   uint
	TestRunName string
	StatusID    uint
	StatusName  string
	StatusColor string
	IsCompleted bool
	ResultCount int
	Elapsed     int64
	StepElapsed int64
	Estimate    *int64
}

type milestoneSessionRow struct {
	SessionID   uint
	SessionName string
	StatusID    uint
	StatusName  string
	StatusColor string
	IsCompleted bool
	HasResult   bool
	Elapsed     int64
	Estimate    *int64
}

func (s *MilestoneProgressService) Generate(milestoneID uint) (*MilestoneProgressResponse, error) {
	var milestone models.Milestone
	if err := s.db.First(&milestone, milestoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}

	caseRows, err := s.fetchCaseRows(milestoneID)
	if err != nil {
		return nil, err
	}
	sessionRows, err := s.fetchSessionRows(milestoneID)
	if err != nil {
		return nil, err
	}

	runCases := make([]analytics.RunCaseRow, 0, len(caseRows))
	totalCases, completedCases := 0, 0
	for _, r := range caseRows {
		totalCases++
		if r.IsCompleted {
			completedCases++
		}
		runCases = append(runCases, analytics.RunCaseRow{
			TestRunID:   r.TestRunID,
			TestRunName: r.TestRunName,
			StatusID:    r.StatusID,
			StatusName:  r.StatusName,
			StatusColor: r.StatusColor,
			HasResult:   r.ResultCount > 0,
			Elapsed:     r.Elapsed + r.StepElapsed,
			Estimate:    r.Estimate,
			Completed:   r.IsCompleted,
		})
	}

	sessions := make([]analytics.SessionRow, 0, len(sessionRows))
	for _, r := range sessionRows {
		sessions = append(sessions, analytics.SessionRow{
			SessionID:   r.SessionID,
			SessionName: r.SessionName,
			StatusID:    r.StatusID,
			StatusName:  r.StatusName,
			StatusColor: r.StatusColor,
			HasResult:   r.HasResult,
			Elapsed:     r.Elapsed,
			Estimate:    r.Estimate,
			Completed:   r.IsCompleted,
		})
	}

	segments := analytics.BuildSegments(runCases, sessions)
	return &MilestoneProgressResponse{
		MilestoneID:    milestone.ID,
		MilestoneName:  milestone.Name,
		TotalCases:     totalCases,
		CompletedCases: completedCases,
		CompletionRate: analytics.CompletionRate(completedCases, totalCases),
		Segments:       segments,
		SegmentWidths:  analytics.SegmentWidths(segments),
	}, nil
}

// fetchCaseRows returns one row per run case of the milestone's test
// runs, with result and step elapsed pre-summed SQL-side.
func (s *MilestoneProgressService) fetchCaseRows(milestoneID uint) ([]milestoneCaseRow, error) {
	var rows []milestoneCaseRow
	err := s.caseRowsQuery(milestoneID).Scan(&rows).Error
	return rows, err
}

func (s *MilestoneProgressService) caseRowsQuery(milestoneID uint) *gorm.DB {
	return s.db.Model(&models.TestRunCase{}).
		Select(`test_runs.id AS test_run_id,
			test_runs.name AS test_run_name,
			statuses.id AS status_id,
			statuses.name AS status_name,
			statuses.color AS status_color,
			statuses.is_completed AS is_completed,
			COUNT(test_run_results.id) AS result_count,
			COALESCE(SUM(test_run_results.elapsed), 0) AS elapsed,
			COALESCE(SUM(steps.step_elapsed), 0) AS step_elapsed,
			test_cases.estimate AS estimate`).
		Joins("JOIN test_runs ON test_runs.id = test_run_cases.test_run_id AND test_runs.deleted_at IS NULL").
		Joins("JOIN statuses ON statuses.id = test_run_cases.status_id").
		Joins("JOIN test_cases ON test_cases.id = test_run_cases.test_case_id").
		Joins("LEFT JOIN test_run_results ON test_run_results.test_run_case_id = test_run_cases.id").
		Joins(`LEFT JOIN (
			SELECT test_run_result_id, SUM(elapsed) AS step_elapsed
			FROM test_run_step_results GROUP BY test_run_result_id
		) steps ON steps.test_run_result_id = test_run_results.id`).
		Where("test_runs.milestone_id = ?", milestoneID).
		// Every non-aggregated column is listed: postgres does not infer
		// functional dependency through joins from test_run_cases.id.
		Group("test_run_cases.id, test_runs.id, test_runs.name, statuses.id, statuses.name, statuses.color, statuses.is_completed, test_cases.estimate").
		Order("test_run_cases.id")
}

// fetchSessionRows returns one row per milestone session with its most
// recent result, when any.
func (s *MilestoneProgressService) fetchSessionRows(milestoneID uint) ([]milestoneSessionRow, error) {
	var sessions []models.Session
	if err := s.db.Where("milestone_id = ?", milestoneID).Order("id").Find(&sessions).Error; err != nil {
		return nil, err
	}

	rows := make([]milestoneSessionRow, 0, len(sessions))
	for _, sess := range sessions {
		row := milestoneSessionRow{
			SessionID:   sess.ID,
			SessionName: sess.Name,
			Estimate:    sess.Estimate,
		}

		var result models.SessionResult
		err := s.db.Preload("Status").
			Where("session_id = ?", sess.ID).
			Order("created_at DESC").
			First(&result).Error
		switch {
		case err == nil:
			row.HasResult = true
			row.Elapsed = result.Elapsed
			row.StatusID = result.StatusID
			if result.Status != nil {
				row.StatusName = result.Status.Name
				row.StatusColor = result.Status.Color
				row.IsCompleted = result.Status.IsCompleted
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// pending session, keeps its estimate
		default:
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
