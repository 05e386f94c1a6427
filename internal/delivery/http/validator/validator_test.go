package validator

import (
	"testing"

	domainerrors "credguard/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `json:"username" validate:"required,max=5"`
	Count    *int   `json:"count" validate:"omitempty,min=0"`
	Internal string `json:"-"`
}

func TestValidator(t *testing.T) {
	v := New()
	negative := -1

	assert.NoError(t, v.Validate(&sample{Username: "bob"}))

	err := v.Validate(&sample{Username: "", Count: &negative})
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "username failed on required")
	assert.Contains(t, appErr.Details(), "count failed on min=0")

	err = v.Validate(&sample{Username: "toolong"})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "username failed on max=5", appErr.Details())
}
