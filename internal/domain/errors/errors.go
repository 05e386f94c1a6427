package errors

import (
	"net/http"

	"credguard/internal/errors"
)

// AppError is an error that knows how it is rendered to API clients.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

// BaseError is the plain AppError used for the catalogue below.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message, details: details}
}

func (e *BaseError) Error() string     { return e.message }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// WrapMessage annotates e with a stack trace and context; errors.As still finds e.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithDetails returns a copy of e carrying details. The catalogue entry is not modified.
func (e *BaseError) WithDetails(details string) *BaseError {
	c := *e
	c.details = details

	return &c
}

//nolint:gochecknoglobals
var (
	ErrUserNotFound       = NewBaseError(http.StatusNotFound, "USER_NOT_FOUND", "user not found", "")
	ErrUserAlreadyExists  = NewBaseError(http.StatusConflict, "USER_ALREADY_EXISTS", "username is already taken", "")
	ErrUserCreationFailed = NewBaseError(http.StatusInternalServerError, "USER_CREATION_FAILED", "failed to create user", "")
	ErrUserUpdateFailed   = NewBaseError(http.StatusInternalServerError, "USER_UPDATE_FAILED", "failed to update user", "")

	ErrInvalidCredentials = NewBaseError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password", "")
	ErrCredentialLocked   = NewBaseError(http.StatusLocked, "CREDENTIAL_LOCKED", "credential is locked after too many failed attempts", "")
	ErrPolicyViolation    = NewBaseError(http.StatusBadRequest, "POLICY_VIOLATION", "password does not meet security requirements", "")
	ErrPasswordReused     = NewBaseError(http.StatusConflict, "PASSWORD_REUSED", "password exists in history", "")

	ErrUnknownAlgorithm = NewBaseError(http.StatusBadRequest, "UNKNOWN_ALGORITHM", "unknown hashing algorithm", "")
	ErrInvalidPolicy    = NewBaseError(http.StatusBadRequest, "INVALID_POLICY", "invalid policy rule", "")

	ErrTokenInvalid     = NewBaseError(http.StatusUnauthorized, "TOKEN_INVALID", "invalid or expired access token", "")
	ErrForbidden        = NewBaseError(http.StatusForbidden, "FORBIDDEN", "access denied", "")
	ErrValidationFailed = NewBaseError(http.StatusBadRequest, "VALIDATION_FAILED", "input validation failed", "")
)

// DatabaseExecuteError wraps a driver error. The driver message stays in logs;
// clients only see the code.
type DatabaseExecuteError struct {
	err     error
	details string
}

func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return "database execution failed (" + e.details + "): " + e.err.Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
