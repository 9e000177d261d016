package handler

import (
	"net/http"
	"time"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/assets-by-category", middleware.RequireRole("admin"), h.AssetsByCategory)
		reports.GET("/monthly-stats", middleware.RequireRole("admin"), h.MonthlyStats)
	}
}

// AssetsByCategory returns per-category inventory counts and total cost
// @Summary      Assets by category
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.CategorySummary}
// @Router       /api/reports/assets-by-category [get]
func (h *ReportHandler) AssetsByCategory(c *gin.Context) {
	summaries, err := h.reportService.AssetsByCategory(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summaries))
}

// MonthlyStats returns per-month request counts across all request variants
// @Summary      Monthly request statistics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  false  "Start date (YYYY-MM-DD, default 6 months ago)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD, default today)"
// @Success      200   {object}  response.Response{data=model.MonthlyStatsResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/reports/monthly-stats [get]
func (h *ReportHandler) MonthlyStats(c *gin.Context) {
	now := time.Now().UTC()
	from := now.AddDate(0, -6, 0)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD"))
			return
		}
		// Include the full final day
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Date range is inverted"))
		return
	}

	stats, err := h.reportService.MonthlyStats(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
