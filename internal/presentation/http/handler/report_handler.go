package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoerp/pos-api/internal/application/service"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles POS reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DailySummary handles the daily sales summary. date=YYYY-MM-DD, defaults
// to today.
func (h *ReportHandler) DailySummary(c *gin.Context) {
	summary, err := h.reportService.GetDailySummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily summary retrieved successfully", summary)
}
