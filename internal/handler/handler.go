// Package handler is the thin HTTP glue over the resource services: it binds
// requests, pulls the tenant from the authenticated context, and translates
// core errors into transport responses. No business rule lives here.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/middleware"
	"backoffice-service/pkg/apperr"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/logger"
)

// development controls whether unclassified error messages are echoed back
// to the caller. Set once at startup.
var development bool

// Init configures the package from the loaded configuration
func Init(cfg *config.Config) {
	development = cfg.IsDevelopment()
}

// errorBody is the uniform error response shape.
type errorBody struct {
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Message    string `json:"message"`
}

// respondError maps a core error onto a transport response. Unclassified
// errors are logged with full context and their message suppressed outside
// development.
func respondError(c echo.Context, err error) error {
	log := logger.FromEcho(c)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrMissingTenant):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = "resource not found"
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case apperr.IsConstraint(err):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		log.Error("Unclassified error",
			zap.String("path", c.Request().URL.Path),
			zap.String("method", c.Request().Method),
			zap.Error(err))
		if development {
			message = err.Error()
		}
	}

	return c.JSON(status, errorBody{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request().URL.Path,
		Method:     c.Request().Method,
		Message:    message,
	})
}

// tenantID returns the tenant resolved by the auth middleware, or 0 when the
// request carries none; services fail fast on the zero value.
func tenantID(c echo.Context) uint {
	id, _ := middleware.GetTenantIDFromContext(c)
	return id
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id")
	}
	return uint(id), nil
}

// atoiOr converts a query string to an int, falling back on empty or invalid
// input.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// intQueryPtr parses an optional integer query parameter.
func intQueryPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// uintQueryPtr parses an optional unsigned integer query parameter.
func uintQueryPtr(s string) *uint {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}
