package models

import (
	"time"

	"gorm.io/gorm"
)

// Milestone groups test runs and sessions toward a release target
type Milestone struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	Name      string         `gorm:"size:300;not null" json:"name"`
	DueDate   *time.Time     `json:"due_date"`
	State     string         `gorm:"size:50;default:open" json:"state"` // open, completed
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Session represents an exploratory testing session within a milestone
type Session struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	MilestoneID *uint          `gorm:"index" json:"milestone_id"`
	Name        string         `gorm:"size:300;not null" json:"name"`
	Charter     string         `gorm:"type:text" json:"charter"`
	Estimate    *int64         `json:"estimate"` // seconds
	AssignedTo  uint           `json:"assigned_to"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// SessionResult is the recorded outcome of a session
type SessionResult struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SessionID  uint       `gorm:"index;not null" json:"session_id"`
	StatusID   uint       `gorm:"index;not null" json:"status_id"`
	Status     *Status    `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	ExecutedAt *time.Time `json:"executed_at"`
	Elapsed    int64      `gorm:"default:0" json:"elapsed"` // seconds
	Notes      string     `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Milestone) TableName() string     { return "milestones" }
func (Session) TableName() string       { return "sessions" }
func (SessionResult) TableName() string { return "session_results" }
