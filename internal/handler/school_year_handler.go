package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

const dateLayout = "2006-01-02"

// SchoolYearRequest defines the structure for school year creation requests
type SchoolYearRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    *int   `json:"status"`
}

// SchoolYearUpdateRequest is the partial payload for updates
type SchoolYearUpdateRequest struct {
	Title     *string `json:"title"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *int    `json:"status"`
}

// SchoolYearHandler exposes the school year resource over HTTP
type SchoolYearHandler struct {
	svc *service.SchoolYearService
}

// NewSchoolYearHandler builds the handler around its service
func NewSchoolYearHandler(svc *service.SchoolYearService) *SchoolYearHandler {
	return &SchoolYearHandler{svc: svc}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

// Create handles school year creation
func (h *SchoolYearHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req SchoolYearRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse school year creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be a valid date (YYYY-MM-DD)"})
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be a valid date (YYYY-MM-DD)"})
	}

	year, err := h.svc.Create(c.Request().Context(), service.SchoolYearCreate{
		Title:     req.Title,
		StartDate: start,
		EndDate:   end,
		Status:    req.Status,
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("school_year", "create")
	log.Info("School year created",
		zap.Uint("id", year.ID),
		zap.String("title", year.Title))
	return c.JSON(http.StatusCreated, year)
}

// List handles paginated school year listing
func (h *SchoolYearHandler) List(c echo.Context) error {
	envelope, err := h.svc.List(c.Request().Context(), service.SchoolYearListQuery{
		Page:   atoiOr(c.QueryParam("page"), 0),
		Limit:  atoiOr(c.QueryParam("limit"), 0),
		Status: intQueryPtr(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("school_year", "list")
	return c.JSON(http.StatusOK, envelope)
}

// Get handles fetching one school year
func (h *SchoolYearHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	year, err := h.svc.Get(c.Request().Context(), id, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("school_year", "get")
	return c.JSON(http.StatusOK, year)
}

// Update handles partial school year updates
func (h *SchoolYearHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SchoolYearUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse school year update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	in := service.SchoolYearUpdate{
		Title:  req.Title,
		Status: req.Status,
	}
	if req.StartDate != nil {
		start, ok := parseDate(*req.StartDate)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be a valid date (YYYY-MM-DD)"})
		}
		in.StartDate = &start
	}
	if req.EndDate != nil {
		end, ok := parseDate(*req.EndDate)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be a valid date (YYYY-MM-DD)"})
		}
		in.EndDate = &end
	}

	year, err := h.svc.Update(c.Request().Context(), id, in, tenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("school_year", "update")
	log.Info("School year updated", zap.Uint("id", year.ID))
	return c.JSON(http.StatusOK, year)
}

// Delete handles school year removal
func (h *SchoolYearHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.Remove(c.Request().Context(), id, tenantID(c)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordResourceOperation("school_year", "delete")
	log.Info("School year deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}
