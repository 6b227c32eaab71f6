package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// CompanyRequest defines the structure for company creation requests
type CompanyRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Logo    string `json:"logo"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Status  *int   `json:"status"`
}

// CompanyUpdateRequest is the partial payload for updates; company_id-like
// fields are deliberately absent and would be ignored anyway.
type CompanyUpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Logo    *string `json:"logo"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	Status  *int    `json:"status"`
}

// CompanyHandler exposes the company resource over HTTP
type CompanyHandler struct {
	svc *service.CompanyService
}

// NewCompanyHandler builds the handler around its service
func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// Create handles company registration
func (h *CompanyHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse company creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}

	company, err := h.svc.Create(c.Request().Context(), service.CompanyCreate{
		Name:    req.Name,
		Email:   req.Email,
		Logo:    req.Logo,
		Phone:   req.Phone,
		Website: req.Website,
		Status:  req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("company", "create")
	log.Info("Company created",
		zap.Uint("id", company.ID),
		zap.String("name", company.Name))
	return c.JSON(http.StatusCreated, company)
}

// List handles paginated company listing
func (h *CompanyHandler) List(c echo.Context) error {
	envelope, err := h.svc.List(c.Request().Context(), service.CompanyListQuery{
		Page:   atoiOr(c.QueryParam("page"), 0),
		Limit:  atoiOr(c.QueryParam("limit"), 0),
		Status: intQueryPtr(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("company", "list")
	return c.JSON(http.StatusOK, envelope)
}

// Get handles fetching one company
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	company, err := h.svc.Get(c.Request().Context(), id, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("company", "get")
	return c.JSON(http.StatusOK, company)
}

// Update handles partial company updates
func (h *CompanyHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CompanyUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse company update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	company, err := h.svc.Update(c.Request().Context(), id, service.CompanyUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Logo:    req.Logo,
		Phone:   req.Phone,
		Website: req.Website,
		Status:  req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("company", "update")
	log.Info("Company updated", zap.Uint("id", company.ID))
	return c.JSON(http.StatusOK, company)
}

// Delete handles company removal
func (h *CompanyHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.Remove(c.Request().Context(), id, tenantID(c)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("company", "delete")
	log.Info("Company deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
