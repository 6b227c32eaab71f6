package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice-service/pkg/logger"
)

func TestRequestIDMiddlewareAssignsID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestIDMiddleware(func(c echo.Context) error {
		// The request-scoped logger must be attached before the handler runs.
		_, ok := c.Get("logger").(*zap.Logger)
		assert.True(t, ok)
		assert.NotNil(t, logger.FromEcho(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddlewareKeepsSuppliedID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestIDMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	assert.Equal(t, "req-abc-123", rec.Header().Get("X-Request-ID"))
}
