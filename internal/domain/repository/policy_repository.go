package repository

import (
	"context"

	"credguard/internal/domain/policy"
	"credguard/internal/errors"
)

// ErrPolicyNotFound is returned when no policy has been stored yet.
var ErrPolicyNotFound = errors.New("policy not found")

// PolicyRepository stores the single active rule set so its modification time
// survives restarts.
type PolicyRepository interface {
	// Load returns the stored rules.
	Load(ctx context.Context) (policy.Rules, error)

	// Save replaces the stored rules.
	Save(ctx context.Context, rules policy.Rules) error
}
