// Package usecase defines the application's input ports and the DTOs they exchange.
package usecase

import (
	"context"

	"credguard/internal/domain/entity"
)

// LoginInput is one authentication attempt.
type LoginInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput reports the outcome of an attempt. User is set on failure too so
// callers can inspect the lock state.
type LoginOutput struct {
	Validated   bool         `json:"validated"`
	Locked      bool         `json:"locked"`
	Expired     bool         `json:"expired"`
	MustChange  bool         `json:"mustChange"`
	User        *entity.User `json:"-"`
	AccessToken string       `json:"accessToken,omitempty"`
	ExpiresIn   int64        `json:"expiresIn,omitempty"`
}

// LoginUsecase verifies passwords and issues access tokens.
type LoginUsecase interface {
	// Login verifies the password for a username. An unknown username yields
	// ErrInvalidCredentials; a wrong password yields an output with Validated false.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
