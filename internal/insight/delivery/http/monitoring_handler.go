package http

import (
	"errors"
	"net/http"

	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/internal/insight/service"
	"review-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MonitoringHandler exposes the operational endpoints for the admin
// dashboard.
type MonitoringHandler struct {
	monitoringService service.MonitoringService
	logger            *logger.Logger
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(monitoringService service.MonitoringService, logger *logger.Logger) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService, logger: logger}
}

// RegisterRoutes registers the monitoring routes to the Echo group.
func (h *MonitoringHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/logs", h.Logs)
	g.GET("/accuracy-check", h.AccuracyCheck)
	g.POST("/feedback", h.Feedback)
	g.GET("/server-stats", h.ServerStats)
}

// Logs returns the most recent system log entries.
func (h *MonitoringHandler) Logs(c echo.Context) error {
	logs, err := h.monitoringService.RecentLogs(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load system logs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load system logs"})
	}
	return c.JSON(http.StatusOK, logs)
}

// AccuracyCheck re-classifies a random stored review for a model spot-check.
func (h *MonitoringHandler) AccuracyCheck(c echo.Context) error {
	sample, err := h.monitoringService.AccuracySample(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No reviews available for accuracy check"})
		}
		if errors.Is(err, repository.ErrClassificationUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Sentiment service unavailable"})
		}
		h.logger.Error("Failed to run accuracy check", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to run accuracy check"})
	}
	return c.JSON(http.StatusOK, sample)
}

// Feedback records a corrective sentiment label for a review.
func (h *MonitoringHandler) Feedback(c echo.Context) error {
	var req dto.ModelFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.monitoringService.SubmitFeedback(c.Request().Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidSentiment) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Sentiment must be positive, negative or neutral"})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
		}
		h.logger.Error("Failed to record model feedback", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record model feedback"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Feedback recorded"})
}

// ServerStats reports host resource usage and stored review counts.
func (h *MonitoringHandler) ServerStats(c echo.Context) error {
	stats, err := h.monitoringService.ServerStats(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to read server stats", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read server stats"})
	}
	return c.JSON(http.StatusOK, stats)
}
