package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/caseflow/caseflow/internal/middleware"
	"github.com/caseflow/caseflow/internal/services"
	"github.com/caseflow/caseflow/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxReportSize caps uploaded JUnit reports at 10 MiB.
const maxReportSize = 10 << 20

type ImportHandler struct {
	importService *services.JUnitImportService
	queue         services.TaskQueue
}

func NewImportHandler(db *gorm.DB, queue services.TaskQueue) *ImportHandler {
	return &ImportHandler{
		importService: services.NewJUnitImportService(db),
		queue:         queue,
	}
}

// JUnit imports a JUnit XML report, either as a multipart "report" file
// or as the raw request body. Runs asynchronously when the queue is
// async; the response then carries the import_id to correlate with.
// POST /api/imports/junit?project_id=N&source=ci
func (h *ImportHandler) JUnit(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 32)
	if err != nil || projectID == 0 {
		response.BadRequest(c, "project_id is required")
		return
	}

	raw, err := readReportBody(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	source := c.Query("source")
	userID := middleware.GetUserID(c)

	if h.queue != nil && h.queue.IsAsync() {
		task := &services.ImportTask{
			ImportID:   uuid.NewString(),
			ProjectID:  uint(projectID),
			Source:     source,
			ImportedBy: userID,
			ReportXML:  raw,
		}
		if err := h.queue.Enqueue(task); err != nil {
			response.ServerError(c, err.Error())
			return
		}
		response.Accepted(c, gin.H{"import_id": task.ImportID})
		return
	}

	result, err := h.importService.Import(uint(projectID), raw, source, userID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyReport) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, result)
}

func readReportBody(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("report"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxReportSize))
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxReportSize))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty report body")
	}
	return raw, nil
}
