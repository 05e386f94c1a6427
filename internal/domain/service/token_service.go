// Package service defines interfaces for infrastructure-backed domain services.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID     uuid.UUID `json:"uid"`
	Username   string    `json:"username"`
	Privileges []string  `json:"privileges"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateAccessToken issues a signed token for the given user.
	GenerateAccessToken(userID uuid.UUID, username string, privileges []string) (string, error)

	// ValidateToken checks the signature and expiry of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration returns the configured token lifetime.
	GetAccessTokenDuration() time.Duration
}
