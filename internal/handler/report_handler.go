package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/gin-gonic/gin"
)

type ReportStore interface {
	GetLatest() (*model.TrendReport, error)
	GetByRunID(runID string) (*model.TrendReport, error)
	ListReports(limit, offset int) ([]model.TrendReport, error)
	GetReportTotal() (int, error)
}

type GapStore interface {
	GetByRun(runID string) ([]model.ContentGap, error)
	ListGaps(limit, offset int) ([]model.ContentGap, error)
}

type ReportHandler struct {
	reports ReportStore
	gaps    GapStore
}

func NewReportHandler(reports ReportStore, gaps GapStore) *ReportHandler {
	return &ReportHandler{reports: reports, gaps: gaps}
}

func toReportResponse(report *model.TrendReport) ReportResponse {
	return ReportResponse{
		ID:             report.ID,
		RunID:          report.RunID,
		ClusteringMode: report.ClusteringMode,
		TopicCount:     report.TopicCount,
		ElbowThreshold: report.ElbowThreshold,
		CreatedAt:      report.CreatedAt.Format(time.RFC3339),
		Report:         report.Payload,
	}
}

func (h *ReportHandler) GetLatestReport(c *gin.Context) {
	report, err := h.reports.GetLatest()
	if err != nil {
		slog.Error("error fetching latest report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reports yet"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(report))
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	runID := c.Param("run_id")

	report, err := h.reports.GetByRunID(runID)
	if err != nil {
		slog.Error("error fetching report", "error", err, "run_id", runID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(report))
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	total, err := h.reports.GetReportTotal()
	if err != nil {
		slog.Error("error fetching report total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	reports, err := h.reports.ListReports(limit, offset)
	if err != nil {
		slog.Error("error fetching reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var reportRes []ReportResponse
	for i := range reports {
		reportRes = append(reportRes, toReportResponse(&reports[i]))
	}

	c.JSON(http.StatusOK, ReportsResponse{
		Reports: reportRes,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *ReportHandler) GetGaps(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	var (
		gaps []model.ContentGap
		err  error
	)

	if runID := c.Query("run_id"); runID != "" {
		gaps, err = h.gaps.GetByRun(runID)
	} else {
		gaps, err = h.gaps.ListGaps(limit, offset)
	}

	if err != nil {
		slog.Error("error fetching gaps", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var gapRes []GapResponse
	for _, g := range gaps {
		gapRes = append(gapRes, GapResponse{
			ID:                 g.ID,
			RunID:              g.RunID,
			GapTopic:           g.GapTopic,
			CompetitorCoverage: g.CompetitorCoverage,
			CreatedAt:          g.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, GapsResponse{
		Gaps:   gapRes,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *ReportHandler) GetHealth(c *gin.Context) {
	_, err := h.reports.GetReportTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
