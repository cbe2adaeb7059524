package models

import (
	"time"

	"gorm.io/gorm"
)

// TestRun represents a manual test run within a project
type TestRun struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	MilestoneID *uint          `gorm:"index" json:"milestone_id"`
	Name        string         `gorm:"size:300;not null" json:"name"`
	State       string         `gorm:"size:50;default:active" json:"state"` // active, completed, archived
	CreatedBy   uint           `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TestRunCase links a test case into a test run and tracks its current status
type TestRunCase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TestRunID  uint      `gorm:"index;not null" json:"test_run_id"`
	TestRun    *TestRun  `gorm:"foreignKey:TestRunID" json:"test_run,omitempty"`
	TestCaseID uint      `gorm:"index;not null" json:"test_case_id"`
	TestCase   *TestCase `gorm:"foreignKey:TestCaseID" json:"test_case,omitempty"`
	StatusID   uint      `gorm:"index;not null" json:"status_id"`
	Status     *Status   `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TestRunResult is one recorded manual execution of a run case
type TestRunResult struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TestRunCaseID uint       `gorm:"index;not null" json:"test_run_case_id"`
	StatusID      uint       `gorm:"index;not null" json:"status_id"`
	Status        *Status    `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	ExecutedAt    *time.Time `gorm:"index" json:"executed_at"`
	ExecutedBy    uint       `json:"executed_by"`
	Elapsed       int64      `gorm:"default:0" json:"elapsed"` // seconds
	Comment       string     `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TestRunStepResult is one step outcome within a recorded result
type TestRunStepResult struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TestRunResultID uint      `gorm:"index;not null" json:"test_run_result_id"`
	Position        int       `gorm:"default:0" json:"position"`
	StatusID        uint      `json:"status_id"`
	Elapsed         int64     `gorm:"default:0" json:"elapsed"` // seconds
	Comment         string    `gorm:"type:text" json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

func (TestRun) TableName() string           { return "test_runs" }
func (TestRunCase) TableName() string       { return "test_run_cases" }
func (TestRunResult) TableName() string     { return "test_run_results" }
func (TestRunStepResult) TableName() string { return "test_run_step_results" }
