package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/services"
)

// ReportHandler serves the aggregate views used by the dashboard graphs.
type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) PlannedVsSpent(c *gin.Context) {
	report, err := h.reportService.PlannedVsSpent()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) CompletedByProject(c *gin.Context) {
	report, err := h.reportService.CompletedByProject()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) StatusByBusinessUnit(c *gin.Context) {
	report, err := h.reportService.StatusByBusinessUnit()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) EmployeePerformance(c *gin.Context) {
	report, err := h.reportService.EmployeePerformance()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
