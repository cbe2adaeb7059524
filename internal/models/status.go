package models

import "time"

// Status classifies an execution outcome. IsSuccess/IsFailure drive the
// analytics fuser; statuses with neither flag (Untested, Skipped) are
// neutral and excluded from execution timelines. IsCompleted drives
// milestone completion rates.
type Status struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Color       string    `gorm:"size:20" json:"color"`
	IsSuccess   bool      `gorm:"default:false" json:"is_success"`
	IsFailure   bool      `gorm:"default:false" json:"is_failure"`
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`
	Position    int       `gorm:"default:0" json:"position"`
	IsSystem    bool      `gorm:"default:false" json:"is_system"` // System statuses cannot be deleted
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Status) TableName() string { return "statuses" }
