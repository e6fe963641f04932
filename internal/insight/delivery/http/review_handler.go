package http

import (
	"errors"
	"net/http"
	"strconv"

	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/internal/insight/service"
	"review-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReviewHandler handles HTTP requests for review submission and listing.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *logger.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, logger: logger}
}

// RegisterRoutes registers the review routes to the Echo group.
func (h *ReviewHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.SubmitReview)
	g.POST("/import", h.ImportCSV)
	g.GET("", h.ListReviews)
	g.GET("/overview", h.Overview)
}

// SubmitReview accepts a single review, runs the analysis pipeline once, and
// stores the result.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	var req dto.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	review, err := h.reviewService.Submit(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyReview) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Review text cannot be empty"})
		}
		if errors.Is(err, repository.ErrClassificationUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Sentiment classifier unavailable"})
		}
		h.logger.Error("Failed to submit review", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit review"})
	}

	return c.JSON(http.StatusCreated, review)
}

// ImportCSV ingests a batch of reviews from an uploaded CSV file.
func (h *ReviewHandler) ImportCSV(c echo.Context) error {
	userID, err := queryUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}

	fileHeader, err := c.FormFile("csv_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "csv_file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	result, err := h.reviewService.SubmitCSV(c.Request().Context(), userID, file)
	if err != nil {
		h.logger.Error("CSV import failed", logger.ErrorField(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// ListReviews returns the user's reviews with their on-demand analysis.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	userID, err := queryUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}

	reviews, err := h.reviewService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrClassificationUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Sentiment classifier unavailable"})
		}
		h.logger.Error("Failed to list reviews", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list reviews"})
	}

	return c.JSON(http.StatusOK, reviews)
}

// Overview returns the per-user dashboard counters.
func (h *ReviewHandler) Overview(c echo.Context) error {
	userID, err := queryUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user_id"})
	}

	overview, err := h.reviewService.Overview(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build overview", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build overview"})
	}

	return c.JSON(http.StatusOK, overview)
}

func queryUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
