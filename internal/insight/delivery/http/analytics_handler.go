package http

import (
	"errors"
	"net/http"

	"review-insight/internal/entity"
	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/internal/insight/service"
	"review-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves the aggregated aspect-sentiment and trend views.
type AnalyticsHandler struct {
	analyzer   service.AnalyzerService
	reviewRepo repository.ReviewRepository
	logger     *logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyzer service.AnalyzerService, reviewRepo repository.ReviewRepository, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyzer: analyzer, reviewRepo: reviewRepo, logger: logger}
}

// RegisterRoutes registers the analytics routes to the Echo group.
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/aspects", h.AspectSummary)
	g.GET("/aspects/top", h.TopAspects)
	g.GET("/trends", h.Trends)
	g.POST("/preview", h.Preview)
}

// AspectSummary aggregates aspect sentiment over the whole corpus, or over
// one user's reviews when user_id is given. An empty aspect list is a valid
// response, not an error.
func (h *AnalyticsHandler) AspectSummary(c echo.Context) error {
	reviews, err := h.selectReviews(c)
	if err != nil {
		return h.reviewSelectionError(c, err)
	}

	summary, err := h.analyzer.AspectSummary(c.Request().Context(), reviews)
	if err != nil {
		h.logger.Error("Failed to build aspect summary", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build aspect summary"})
	}

	return c.JSON(http.StatusOK, summary)
}

type topAspectsResponse struct {
	TopPositive []dto.AspectSummaryRow `json:"top_positive"`
	TopNegative []dto.AspectSummaryRow `json:"top_negative"`
}

// TopAspects returns the independent top-5 rankings on positive and negative
// mention counts.
func (h *AnalyticsHandler) TopAspects(c echo.Context) error {
	reviews, err := h.selectReviews(c)
	if err != nil {
		return h.reviewSelectionError(c, err)
	}

	summary, err := h.analyzer.AspectSummary(c.Request().Context(), reviews)
	if err != nil {
		h.logger.Error("Failed to build aspect summary", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build aspect summary"})
	}

	return c.JSON(http.StatusOK, topAspectsResponse{
		TopPositive: service.TopPositiveAspects(summary),
		TopNegative: service.TopNegativeAspects(summary),
	})
}

// Trends returns the day-bucketed sentiment time series.
func (h *AnalyticsHandler) Trends(c echo.Context) error {
	reviews, err := h.selectReviews(c)
	if err != nil {
		return h.reviewSelectionError(c, err)
	}

	return c.JSON(http.StatusOK, h.analyzer.SentimentTrends(reviews))
}

func (h *AnalyticsHandler) reviewSelectionError(c echo.Context, err error) error {
	if errors.Is(err, errInvalidUserID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}
	h.logger.Error("Failed to load reviews", logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load reviews"})
}

type previewRequest struct {
	Text string `json:"text"`
}

// Preview runs the per-review aspect-sentiment pipeline on raw text without
// storing anything.
func (h *AnalyticsHandler) Preview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	aspects, err := h.analyzer.AspectSentiments(c.Request().Context(), req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrClassificationUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Sentiment classifier unavailable"})
		}
		h.logger.Error("Failed to analyze text", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to analyze text"})
	}

	return c.JSON(http.StatusOK, aspects)
}

var errInvalidUserID = errors.New("invalid user_id")

// selectReviews loads the whole corpus, or one user's reviews when user_id
// is given.
func (h *AnalyticsHandler) selectReviews(c echo.Context) ([]entity.Review, error) {
	if c.QueryParam("user_id") == "" {
		return h.reviewRepo.FindAll(c.Request().Context())
	}
	userID, err := queryUserID(c)
	if err != nil {
		return nil, errInvalidUserID
	}
	return h.reviewRepo.FindByUser(c.Request().Context(), userID)
}
