package models

import (
	"time"

	"gorm.io/gorm"
)

// AutomatedRun represents one imported automated run (a JUnit report batch)
type AutomatedRun struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ProjectID  uint           `gorm:"index;not null" json:"project_id"`
	ImportID   string         `gorm:"uniqueIndex;size:36;not null" json:"import_id"` // uuid of the import batch
	SuiteName  string         `gorm:"size:300" json:"suite_name"`
	Source     string         `gorm:"size:100" json:"source"` // ci system or uploader label
	ImportedBy uint           `json:"imported_by"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// AutomatedResult is one imported automated execution. ResultType holds
// the JUnit classification (PASSED, FAILURE, ERROR, SKIPPED); StatusID
// is an optional explicit mapping to a Caseflow status and takes
// precedence over ResultType when set.
type AutomatedResult struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	AutomatedRunID uint       `gorm:"index;not null" json:"automated_run_id"`
	TestCaseID     uint       `gorm:"index;not null" json:"test_case_id"`
	ResultType     string     `gorm:"size:20;not null" json:"result_type"`
	StatusID       *uint      `json:"status_id"`
	ExecutedAt     *time.Time `gorm:"index" json:"executed_at"`
	Elapsed        int64      `gorm:"default:0" json:"elapsed"` // seconds
	Message        string     `gorm:"type:text" json:"message"` // failure/error message
	CreatedAt      time.Time  `json:"created_at"`
}

func (AutomatedRun) TableName() string    { return "automated_runs" }
func (AutomatedResult) TableName() string { return "automated_results" }
