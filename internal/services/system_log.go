package services

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

var globalDB *gorm.DB

func InitSystemLogger(db *gorm.DB) {
	globalDB = db
}

func LogInfo(module, action, message string, userID *uint, ip, requestID string, extra interface{}) {
	writeLog("info", module, action, message, userID, ip, requestID, extra)
}

func LogWarning(module, action, message string, userID *uint, ip, requestID string, extra interface{}) {
	writeLog("warning", module, action, message, userID, ip, requestID, extra)
}

func LogError(module, action, message string, userID *uint, ip, requestID string, extra interface{}) {
	writeLog("error", module, action, message, userID, ip, requestID, extra)
}

func writeLog(level, module, action, message string, userID *uint, ip, requestID string, extra interface{}) {
	if globalDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		RequestID: requestID,
		UserID:    userID,
		IP:        ip,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	globalDB.Create(entry)
}

type SystemLogService struct {
	db *gorm.DB
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db}
}

type SystemLogListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Level     string `form:"level"`
	Module    string `form:"module"`
	RequestID string `form:"request_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type SystemLogListResponse struct {
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Items    []models.SystemLog `json:"items"`
}

func (s *SystemLogService) List(req *SystemLogListRequest) (*SystemLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.SystemLog{})
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.RequestID != "" {
		query = query.Where("request_id = ?", req.RequestID)
	}
	if req.StartDate != "" {
		if start, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			query = query.Where("created_at >= ?", start)
		}
	}
	if req.EndDate != "" {
		if end, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
		}
	}

	var total int64
	query.Count(&total)

	var items []models.SystemLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &SystemLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// RetentionDays reads the configured log retention, defaulting to 30.
func (s *SystemLogService) RetentionDays() int {
	var cfg models.SystemConfig
	if err := s.db.Where("key = ?", "log_retention_days").First(&cfg).Error; err == nil {
		if days, err := strconv.Atoi(cfg.Value); err == nil && days > 0 {
			return days
		}
	}
	return 30
}

// Cleanup deletes logs older than the retention window and returns the
// number of rows removed.
func (s *SystemLogService) Cleanup() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.RetentionDays())
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
