package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "credguard/internal/delivery/context"
	"credguard/internal/delivery/http/response"
	domainerrors "credguard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware renders every error returned by a handler as the unified JSON envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message, details := m.classify(c, domainerrors.Translate(err))
	_ = response.Fail(c, status, code, message, details)
}

// classify maps err onto the envelope fields. Server-side failures are logged
// and rendered without details.
func (m *ErrorMiddleware) classify(c echo.Context, err error) (status int, code, message, details string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() < http.StatusInternalServerError {
			return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details()
		}
		m.logUnhandled(c, err)

		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), ""
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ = httpErr.Message.(string)

		return httpErr.Code, "HTTP_ERROR", message, ""
	}

	m.logUnhandled(c, err)

	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later", ""
}

func (m *ErrorMiddleware) logUnhandled(c echo.Context, err error) {
	req := c.Request()
	deliverycontext.Logger(req.Context(), m.logger).Error("request failed",
		slog.Any("error", err),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)
}
