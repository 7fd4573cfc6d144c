package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/services"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

const exportFilename = "logs.csv"

type TimeLogHandler struct {
	logService    *services.TimeLogService
	exportService *services.ExportService
}

func NewTimeLogHandler(logService *services.TimeLogService, exportService *services.ExportService) *TimeLogHandler {
	return &TimeLogHandler{
		logService:    logService,
		exportService: exportService,
	}
}

// CreateLog records hours spent by the caller on a task of a project, named by
// projectId or projectName.
// Hour bounds are checked by the service.
func (h *TimeLogHandler) CreateLog(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	type CreateLogRequest struct {
		Date        string `json:"date" binding:"required"`
		ProjectID   uint64 `json:"projectId"`
		ProjectName string `json:"projectName"`
		TaskName    string `json:"taskName" binding:"required"`
		SpentHour   int    `json:"spentHour"`
	}

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		apierrors.Validation(c, err.Error())
		return
	}

	entry, err := h.logService.CreateLog(actor, services.CreateLogInput{
		Date:        date,
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
		TaskName:    req.TaskName,
		SpentHour:   req.SpentHour,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TimeLogCreatedResponse{
		Message: "Log created successfully",
		Log:     dto.ToTimeLogDTO(*entry),
	})
}

// ListLogs returns a page of all log entries
func (h *TimeLogHandler) ListLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.logService.ListLogs(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TimeLogListResponse{
		Logs:       dto.ToTimeLogDTOs(logs),
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

func (h *TimeLogHandler) ListUserLogs(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "user")
	if !ok {
		return
	}

	logs, err := h.logService.ListUserLogs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogDTOs(logs))
}

// UpdateLog records progress or completion on an entry owned by the caller
func (h *TimeLogHandler) UpdateLog(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "log")
	if !ok {
		return
	}

	type UpdateLogRequest struct {
		SpentHour  int                `json:"spentHour"`
		TaskStatus *models.TaskStatus `json:"taskStatus"`
	}

	var req UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.logService.UpdateLog(actor, id, services.UpdateLogInput{
		SpentHour:  req.SpentHour,
		TaskStatus: req.TaskStatus,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TimeLogUpdatedResponse{
		Message: "Log updated successfully",
		Log:     dto.ToTimeLogDTO(*result.Log),
		Task:    dto.ToTaskDTO(*result.Task),
	})
}

// ExportLogs streams every entry as a CSV attachment
func (h *TimeLogHandler) ExportLogs(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.WriteLogsCSV(&buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
