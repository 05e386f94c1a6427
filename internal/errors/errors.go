// Package errors is the one error import for the service. Sentinels and
// matching come from the standard library; anything that crosses a layer is
// wrapped with a stack trace by pkg/errors.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a sentinel without a stack, suitable for Is comparisons.
func New(text string) error { return stderrors.New(text) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// Wrap adds message and a stack trace. A nil err stays nil.
func Wrap(err error, message string) error { return pkgerrors.Wrap(err, message) }

func Wrapf(err error, format string, args ...any) error { return pkgerrors.Wrapf(err, format, args...) }

func WithStack(err error) error { return pkgerrors.WithStack(err) }

// Errorf builds a new error with a stack trace.
func Errorf(format string, args ...any) error { return pkgerrors.Errorf(format, args...) }
