package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// LevelPricingRequest defines the structure for pricing plan creation requests
type LevelPricingRequest struct {
	LevelID     uint    `json:"level_id"`
	Title       string  `json:"title"`
	Amount      float64 `json:"amount"`
	Occurrences *int    `json:"occurrences"`
	EveryMonth  *int    `json:"every_month"`
	Status      *int    `json:"status"`
}

// LevelPricingUpdateRequest is the partial payload for updates. A company_id
// in the body is dropped before the merge, never applied.
type LevelPricingUpdateRequest struct {
	LevelID     *uint    `json:"level_id"`
	Title       *string  `json:"title"`
	Amount      *float64 `json:"amount"`
	Occurrences *int     `json:"occurrences"`
	EveryMonth  *int     `json:"every_month"`
	Status      *int     `json:"status"`
}

// LevelPricingHandler exposes the pricing plan resource over HTTP
type LevelPricingHandler struct {
	svc *service.LevelPricingService
}

// NewLevelPricingHandler builds the handler around its service
func NewLevelPricingHandler(svc *service.LevelPricingService) *LevelPricingHandler {
	return &LevelPricingHandler{svc: svc}
}

// Create handles pricing plan creation
func (h *LevelPricingHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req LevelPricingRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse pricing plan creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.LevelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "level_id is required"})
	}

	pricing, err := h.svc.Create(c.Request().Context(), service.LevelPricingCreate{
		LevelID:     req.LevelID,
		Title:       req.Title,
		Amount:      req.Amount,
		Occurrences: req.Occurrences,
		EveryMonth:  req.EveryMonth,
		Status:      req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level_pricing", "create")
	log.Info("Pricing plan created",
		zap.Uint("id", pricing.ID),
		zap.Uint("level_id", pricing.LevelID),
		zap.String("title", pricing.Title))
	return c.JSON(http.StatusCreated, pricing)
}

// List handles paginated pricing plan listing
func (h *LevelPricingHandler) List(c echo.Context) error {
	envelope, err := h.svc.List(c.Request().Context(), service.LevelPricingListQuery{
		Page:    atoiOr(c.QueryParam("page"), 0),
		Limit:   atoiOr(c.QueryParam("limit"), 0),
		Status:  intQueryPtr(c.QueryParam("status")),
		LevelID: uintQueryPtr(c.QueryParam("level_id")),
		Search:  c.QueryParam("search"),
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level_pricing", "list")
	return c.JSON(http.StatusOK, envelope)
}

// Get handles fetching one pricing plan
func (h *LevelPricingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	pricing, err := h.svc.Get(c.Request().Context(), id, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level_pricing", "get")
	return c.JSON(http.StatusOK, pricing)
}

// Update handles partial pricing plan updates
func (h *LevelPricingHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req LevelPricingUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse pricing plan update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	pricing, err := h.svc.Update(c.Request().Context(), id, service.LevelPricingUpdate{
		LevelID:     req.LevelID,
		Title:       req.Title,
		Amount:      req.Amount,
		Occurrences: req.Occurrences,
		EveryMonth:  req.EveryMonth,
		Status:      req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level_pricing", "update")
	log.Info("Pricing plan updated", zap.Uint("id", pricing.ID))
	return c.JSON(http.StatusOK, pricing)
}

// Delete handles pricing plan removal (soft delete)
func (h *LevelPricingHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.Remove(c.Request().Context(), id, tenantID(c)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("level_pricing", "delete")
	log.Info("Pricing plan deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
