package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/service"
	"review-insight/pkg/logger"
	"review-insight/pkg/utils"

	"github.com/labstack/echo/v4"
)

// ReportHandler renders user and system reports as downloadable CSV files.
type ReportHandler struct {
	reportService service.ReportService
	logger        *logger.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/user/:user_id/csv", h.UserCSV)
	g.GET("/system/csv", h.SystemCSV)
}

// UserCSV streams the per-user sentiment report as a CSV download.
func (h *ReportHandler) UserCSV(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	report, err := h.reportService.UserReport(c.Request().Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrNoReviews) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No reviews found for this user"})
		}
		h.logger.Error("Failed to build user report", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build user report"})
	}

	filename := fmt.Sprintf("review-report-user-%d.csv", userID)
	h.prepareCSVResponse(c, filename)

	w := csv.NewWriter(c.Response())
	writeUserReport(w, report)
	w.Flush()
	return w.Error()
}

// SystemCSV streams the corpus-wide report as a CSV download.
func (h *ReportHandler) SystemCSV(c echo.Context) error {
	report, err := h.reportService.SystemReport(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoReviews) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No reviews to report on"})
		}
		h.logger.Error("Failed to build system report", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build system report"})
	}

	filename := fmt.Sprintf("system-report-%s.csv", utils.DayOf(report.GeneratedAt))
	h.prepareCSVResponse(c, filename)

	w := csv.NewWriter(c.Response())
	writeSystemReport(w, report)
	w.Flush()
	return w.Error()
}

func (h *ReportHandler) prepareCSVResponse(c echo.Context, filename string) {
	header := c.Response().Header()
	header.Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)
}

func writeUserReport(w *csv.Writer, report *dto.ReviewReport) {
	w.Write([]string{"User ID", strconv.FormatUint(uint64(report.UserID), 10)})
	w.Write([]string{"Total Reviews", strconv.Itoa(report.TotalReviews)})
	w.Write([]string{"Time Range", report.TimeRangeStart + " to " + report.TimeRangeEnd})
	w.Write(nil)

	w.Write([]string{"Sentiment", "Count", "Percent"})
	for _, row := range report.Distribution {
		w.Write([]string{row.Label, strconv.Itoa(row.Count), formatFloat(row.Percent)})
	}
	w.Write(nil)

	writeAspectSection(w, "Aspect Summary", report.AspectSummary)
	writeAspectSection(w, "Top Positive Aspects", report.PositiveAspects)
	writeAspectSection(w, "Top Negative Aspects", report.NegativeAspects)
}

func writeSystemReport(w *csv.Writer, report *dto.SystemReport) {
	w.Write([]string{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")})
	w.Write([]string{"Total Reviews", strconv.FormatInt(report.TotalReviews, 10)})
	w.Write([]string{"Reviews Today", strconv.FormatInt(report.ReviewsToday, 10)})
	w.Write([]string{"Reviews Last 7 Days", strconv.FormatInt(report.ReviewsWeek, 10)})
	w.Write([]string{"Reviews Last 30 Days", strconv.FormatInt(report.ReviewsMonth, 10)})
	w.Write(nil)

	w.Write([]string{"Most Active Users"})
	w.Write([]string{"User ID", "Review Count"})
	for _, user := range report.MostActiveUsers {
		w.Write([]string{
			strconv.FormatUint(uint64(user.UserID), 10),
			strconv.FormatInt(user.ReviewCount, 10),
		})
	}
	w.Write(nil)

	writeAspectSection(w, "Common Aspects", report.CommonAspects)
}

func writeAspectSection(w *csv.Writer, title string, rows []dto.AspectSummaryRow) {
	w.Write([]string{title})
	w.Write([]string{"Aspect", "Positive", "Negative", "Neutral", "Mentions", "Dominant", "Score"})
	for _, row := range rows {
		w.Write([]string{
			row.Aspect,
			strconv.Itoa(row.Positive),
			strconv.Itoa(row.Negative),
			strconv.Itoa(row.Neutral),
			strconv.Itoa(row.TotalMentions()),
			row.Label,
			formatFloat(row.Score),
		})
	}
	w.Write(nil)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
