package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"backoffice-service/pkg/logger"
)

// RequestIDMiddleware adds a unique request ID to each request and attaches a
// logger tagged with it, so every log line of the request carries the id.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set("X-Request-ID", requestID)
		}

		c.Response().Header().Set("X-Request-ID", requestID)

		logger.AttachEcho(c, logger.ForRequest(requestID))

		return next(c)
	}
}
