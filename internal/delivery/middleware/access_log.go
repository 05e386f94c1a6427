package middleware

import (
	"log/slog"
	"time"

	deliverycontext "credguard/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// AccessLog logs one line per request when enabled. Bodies and query strings
// are left out because login and password routes carry plaintext.
func AccessLog(logger *slog.Logger, enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !enabled {
			return next
		}

		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("route", c.Path()),
				slog.Int("status", status),
				slog.Duration("took", time.Since(start)),
				slog.String("ip", c.RealIP()),
			}
			if p, ok := deliverycontext.GetPrincipal(c); ok {
				attrs = append(attrs, slog.String("username", p.Username))
			}

			ctx := req.Context()
			deliverycontext.Logger(ctx, logger).LogAttrs(ctx, levelFor(status), "request served", attrs...)

			return nil
		}
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
