package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"review-insight/internal/insight/repository"
	"review-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AspectCategoryHandler handles the admin CRUD for curated aspect names.
type AspectCategoryHandler struct {
	aspectRepo repository.AspectCategoryRepository
	logger     *logger.Logger
}

// NewAspectCategoryHandler creates a new AspectCategoryHandler.
func NewAspectCategoryHandler(aspectRepo repository.AspectCategoryRepository, logger *logger.Logger) *AspectCategoryHandler {
	return &AspectCategoryHandler{aspectRepo: aspectRepo, logger: logger}
}

// RegisterRoutes registers the aspect category routes to the Echo group.
func (h *AspectCategoryHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.PUT("/:id", h.Rename)
	g.DELETE("/:id", h.Delete)
}

type aspectCategoryRequest struct {
	Name string `json:"name"`
}

// Create adds a new curated aspect name.
func (h *AspectCategoryHandler) Create(c echo.Context) error {
	var req aspectCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Aspect name cannot be empty"})
	}

	aspect, err := h.aspectRepo.Create(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrAspectExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Aspect already exists"})
		}
		h.logger.Error("Failed to create aspect category", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create aspect category"})
	}

	return c.JSON(http.StatusCreated, aspect)
}

// List returns all curated aspect names.
func (h *AspectCategoryHandler) List(c echo.Context) error {
	aspects, err := h.aspectRepo.FindAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list aspect categories", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list aspect categories"})
	}
	return c.JSON(http.StatusOK, aspects)
}

// Rename changes a curated aspect name.
func (h *AspectCategoryHandler) Rename(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid aspect ID"})
	}

	var req aspectCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "New name cannot be empty"})
	}

	aspect, err := h.aspectRepo.Rename(c.Request().Context(), uint(id), name)
	if err != nil {
		if errors.Is(err, repository.ErrAspectExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Aspect with this name already exists"})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Aspect not found"})
		}
		h.logger.Error("Failed to rename aspect category", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to rename aspect category"})
	}

	return c.JSON(http.StatusOK, aspect)
}

// Delete removes a curated aspect name.
func (h *AspectCategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid aspect ID"})
	}

	if err := h.aspectRepo.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Aspect not found"})
		}
		h.logger.Error("Failed to delete aspect category", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete aspect category"})
	}

	return c.NoContent(http.StatusNoContent)
}
