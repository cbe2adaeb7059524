package models

import (
	"time"

	"gorm.io/gorm"
)

// Issue represents a tracked defect or requirement linked to test cases
type Issue struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	Key       string         `gorm:"size:50;index" json:"key"` // external tracker key, e.g. CF-123
	Title     string         `gorm:"size:500;not null" json:"title"`
	State     string         `gorm:"size:50;default:open" json:"state"` // open, closed
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IssueTestCase links an issue to a test case that verifies it
type IssueTestCase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IssueID    uint      `gorm:"index:idx_issue_case,unique;not null" json:"issue_id"`
	TestCaseID uint      `gorm:"index:idx_issue_case,unique;not null" json:"test_case_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Issue) TableName() string         { return "issues" }
func (IssueTestCase) TableName() string { return "issue_test_cases" }
