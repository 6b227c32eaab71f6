package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// LevelRequest defines the structure for level creation requests
type LevelRequest struct {
	Title  string `json:"title"`
	Status *int   `json:"status"`
}

// LevelUpdateRequest is the partial payload for updates
type LevelUpdateRequest struct {
	Title  *string `json:"title"`
	Status *int    `json:"status"`
}

// LevelHandler exposes the level resource over HTTP
type LevelHandler struct {
	svc *service.LevelService
}

// NewLevelHandler builds the handler around its service
func NewLevelHandler(svc *service.LevelService) *LevelHandler {
	return &LevelHandler{svc: svc}
}

// Create handles level creation
func (h *LevelHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req LevelRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse level creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	level, err := h.svc.Create(c.Request().Context(), service.LevelCreate{
		Title:  req.Title,
		Status: req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level", "create")
	log.Info("Level created",
		zap.Uint("id", level.ID),
		zap.String("title", level.Title))
	return c.JSON(http.StatusCreated, level)
}

// List handles paginated level listing
func (h *LevelHandler) List(c echo.Context) error {
	envelope, err := h.svc.List(c.Request().Context(), service.LevelListQuery{
		Page:   atoiOr(c.QueryParam("page"), 0),
		Limit:  atoiOr(c.QueryParam("limit"), 0),
		Status: intQueryPtr(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level", "list")
	return c.JSON(http.StatusOK, envelope)
}

// Get handles fetching one level
func (h *LevelHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	level, err := h.svc.Get(c.Request().Context(), id, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level", "get")
	return c.JSON(http.StatusOK, level)
}

// Update handles partial level updates
func (h *LevelHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req LevelUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse level update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	level, err := h.svc.Update(c.Request().Context(), id, service.LevelUpdate{
		Title:  req.Title,
		Status: req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level", "update")
	log.Info("Level updated", zap.Uint("id", level.ID))
	return c.JSON(http.StatusOK, level)
}

// Delete handles level removal
func (h *LevelHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.Remove(c.Request().Context(), id, tenantID(c)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level", "delete")
	log.Info("Level deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
