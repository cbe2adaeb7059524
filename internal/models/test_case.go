package models

import (
	"time"

	"gorm.io/gorm"
)

// TestCase represents a test case in a project's repository
type TestCase struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title       string         `gorm:"size:500;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	IsAutomated bool           `gorm:"default:false" json:"is_automated"`
	Estimate    *int64         `json:"estimate"` // seconds, nullable
	CreatedBy   uint           `json:"created_by"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TestCase) TableName() string { return "test_cases" }
