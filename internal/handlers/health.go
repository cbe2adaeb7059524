package handlers

import (
	"github.com/caseflow/caseflow/internal/models"
	"github.com/caseflow/caseflow/internal/services"
	"github.com/gin-gonic/gin"
)

// HealthHandler provides the liveness endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	var projectCount int64
	models.GetDB().Model(&models.Project{}).Count(&projectCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "caseflow",
		"components": gin.H{
			"database":   dbStatus,
			"queue_mode": queueMode,
			"projects":   projectCount,
		},
	})
}
