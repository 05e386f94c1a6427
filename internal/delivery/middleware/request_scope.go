// Package middleware holds the echo middleware shared by every HTTP route.
package middleware

import (
	"log/slog"

	deliverycontext "credguard/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestScope propagates or generates the X-Request-Id header and stores the
// id plus a logger tagged with it in the request context.
func RequestScope(logger *slog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		TargetHeader: deliverycontext.HeaderXRequestID,
		Generator:    uuid.NewString,
		RequestIDHandler: func(c echo.Context, requestID string) {
			req := c.Request()
			scoped := logger.With(slog.String("request_id", requestID))
			c.SetRequest(req.WithContext(deliverycontext.WithScope(req.Context(), requestID, scoped)))
		},
	})
}
