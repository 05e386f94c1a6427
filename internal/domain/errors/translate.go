package errors

import (
	"credguard/internal/domain/credential"
	"credguard/internal/domain/policy"
	"credguard/internal/errors"
)

// Translate maps credential and policy errors onto their AppError form.
// Errors that already carry an AppError, and unknown errors, are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}

	if v, ok := policy.IsViolation(err); ok {
		return NewBaseError(ErrPolicyViolation.HTTPCode(), ErrPolicyViolation.ErrorCode(), v.Error(), v.Reason.Code())
	}

	switch {
	case errors.Is(err, credential.ErrReuse):
		return ErrPasswordReused
	case errors.Is(err, policy.ErrUnknownAlgorithm):
		return ErrUnknownAlgorithm.WithDetails(err.Error())
	case errors.Is(err, policy.ErrInvalidRule):
		return ErrInvalidPolicy.WithDetails(err.Error())
	}

	return err
}
