package usecase

import (
	"context"
	"time"

	"credguard/internal/domain/entity"
)

// RegisterInput creates a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput replaces a password after verifying the current one.
type ChangePasswordInput struct {
	Username        string `json:"username" validate:"required,max=100"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// UnlockInput clears the lock on a credential.
type UnlockInput struct {
	Username string
	Actor    string // username of the administrator performing the unlock
}

// CredentialStatus is the administrative view of a credential. It never contains secrets.
type CredentialStatus struct {
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Privileges     []string  `json:"privileges"`
	Locked         bool      `json:"locked"`
	Expired        bool      `json:"expired"`
	FailedAttempts int       `json:"failedAttempts"`
	ChangedAt      time.Time `json:"changedAt"`
	HistoryDepth   int       `json:"historyDepth"`
}

// CredentialUsecase manages the lifecycle of user credentials.
type CredentialUsecase interface {
	// Register creates a user with a credential validated against the active policy.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// ChangePassword verifies the current password and installs the new one.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// Unlock clears the lock and failed attempt count of a credential.
	Unlock(ctx context.Context, input *UnlockInput) error

	// Status reports the lock, expiry and history state of a credential.
	Status(ctx context.Context, username string) (*CredentialStatus, error)

	// EnsureAdmin creates the administrator account when it does not exist and
	// grants it the user administration privilege.
	EnsureAdmin(ctx context.Context, input *RegisterInput) (*entity.User, error)
}
