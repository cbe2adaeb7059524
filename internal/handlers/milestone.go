package handlers

import (
	"errors"
	"strconv"

	"github.com/caseflow/caseflow/internal/services"
	"github.com/caseflow/caseflow/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MilestoneHandler struct {
	progressService *services.MilestoneProgressService
}

func NewMilestoneHandler(db *gorm.DB) *MilestoneHandler {
	return &MilestoneHandler{
		progressService: services.NewMilestoneProgressService(db),
	}
}

// Progress returns the segment breakdown and completion rate
// GET /api/milestones/:id/progress
func (h *MilestoneHandler) Progress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid milestone id")
		return
	}

	resp, err := h.progressService.Generate(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMilestoneNotFound) {
			response.NotFound(c, "milestone not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}
