// Package response renders the JSON envelope returned by every endpoint.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope around every payload and every error.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the business error code, e.g. "CREDENTIAL_LOCKED".
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Success writes data with the given status. An empty message defaults to the status text.
func Success(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Response{
		Success: true,
		Code:    status,
		Message: orStatusText(message, status),
		Data:    data,
	})
}

// Fail writes an error envelope. details is omitted when empty.
func Fail(c echo.Context, status int, code, message, details string) error {
	return c.JSON(status, Response{
		Code:    status,
		Message: orStatusText(message, status),
		Error:   &ErrorInfo{Code: code, Details: details},
	})
}

// BindingError reports a request body that could not be decoded.
func BindingError(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, "INVALID_INPUT", message, "")
}

func orStatusText(message string, status int) string {
	if message != "" {
		return message
	}

	return http.StatusText(status)
}
