// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"credguard/internal/domain/entity"
	"credguard/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Returned users carry a credential restored against the live policy.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// List returns every user ordered by name, then username.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity and its credential record.
	Create(ctx context.Context, user *entity.User) error

	// Update persists profile, privileges and credential record changes.
	Update(ctx context.Context, user *entity.User) error
}
