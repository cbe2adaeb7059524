package handlers

import (
	"github.com/caseflow/caseflow/internal/services"
	"github.com/caseflow/caseflow/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	healthService   *services.HealthReportService
	flakyService    *services.FlakyReportService
	coverageService *services.CoverageReportService
	trendService    *services.TrendReportService
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		healthService:   services.NewHealthReportService(db),
		flakyService:    services.NewFlakyReportService(db),
		coverageService: services.NewCoverageReportService(db),
		trendService:    services.NewTrendReportService(db),
	}
}

// Health returns per-test-case health metrics
// POST /api/reports/health
func (h *ReportHandler) Health(c *gin.Context) {
	var req services.HealthReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.healthService.Generate(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// Flaky returns the ranked flaky-test list
// POST /api/reports/flaky
func (h *ReportHandler) Flaky(c *gin.Context) {
	var req services.FlakyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.flakyService.Generate(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// Coverage returns per-issue coverage summaries
// POST /api/reports/coverage
func (h *ReportHandler) Coverage(c *gin.Context) {
	var req services.CoverageReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.coverageService.Generate(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// Trends returns the pivoted creation trend
// POST /api/reports/trends
func (h *ReportHandler) Trends(c *gin.Context) {
	var req services.TrendReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.trendService.Generate(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, resp)
}
