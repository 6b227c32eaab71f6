package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// PlanningSessionTypeRequest defines the structure for session type creation
// requests
type PlanningSessionTypeRequest struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Coefficient *float64 `json:"coefficient"`
	Status      *string  `json:"status"`
}

// PlanningSessionTypeUpdateRequest is the partial payload for updates
type PlanningSessionTypeUpdateRequest struct {
	Title       *string  `json:"title"`
	Type        *string  `json:"type"`
	Coefficient *float64 `json:"coefficient"`
	Status      *string  `json:"status"`
}

// PlanningSessionTypeHandler exposes the session type catalog over HTTP
type PlanningSessionTypeHandler struct {
	svc *service.PlanningSessionTypeService
}

// NewPlanningSessionTypeHandler builds the handler around its service
func NewPlanningSessionTypeHandler(svc *service.PlanningSessionTypeService) *PlanningSessionTypeHandler {
	return &PlanningSessionTypeHandler{svc: svc}
}

// Create handles session type creation
func (h *PlanningSessionTypeHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req PlanningSessionTypeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse session type creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and type are required"})
	}

	sessionType, err := h.svc.Create(c.Request().Context(), service.PlanningSessionTypeCreate{
		Title:       req.Title,
		Type:        req.Type,
		Coefficient: req.Coefficient,
		Status:      req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("planning_session_type", "create")
	log.Info("Planning session type created",
		zap.Uint("id", sessionType.ID),
		zap.String("title", sessionType.Title))
	return c.JSON(http.StatusCreated, sessionType)
}

// List handles paginated session type listing
func (h *PlanningSessionTypeHandler) List(c echo.Context) error {
	envelope, err := h.svc.List(c.Request().Context(), service.PlanningSessionTypeListQuery{
		Page:   atoiOr(c.QueryParam("page"), 0),
		Limit:  atoiOr(c.QueryParam("limit"), 0),
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("planning_session_type", "list")
	return c.JSON(http.StatusOK, envelope)
}

// Get handles fetching one session type
func (h *PlanningSessionTypeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	sessionType, err := h.svc.Get(c.Request().Context(), id, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("planning_session_type", "get")
	return c.JSON(http.StatusOK, sessionType)
}

// Update handles partial session type updates
func (h *PlanningSessionTypeHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req PlanningSessionTypeUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse session type update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	sessionType, err := h.svc.Update(c.Request().Context(), id, service.PlanningSessionTypeUpdate{
		Title:       req.Title,
		Type:        req.Type,
		Coefficient: req.Coefficient,
		Status:      req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("planning_session_type", "update")
	log.Info("Planning session type updated", zap.Uint("id", sessionType.ID))
	return c.JSON(http.StatusOK, sessionType)
}

// Delete handles session type removal (hard delete)
func (h *PlanningSessionTypeHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.Remove(c.Request().Context(), id, tenantID(c)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("planning_session_type", "delete")
	log.Info("Planning session type deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
