package middleware

import (
	"slices"
	"strings"

	deliverycontext "credguard/internal/delivery/context"
	"credguard/internal/domain/entity"
	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrTokenInvalid.WithDetails("authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return domainerrors.ErrTokenInvalid.WithDetails("authorization header must be a bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrTokenInvalid
		}

		deliverycontext.SetPrincipal(c, deliverycontext.Principal{
			UserID:     claims.UserID,
			Username:   claims.Username,
			Privileges: claims.Privileges,
		})

		return next(c)
	}
}

// RequirePrivilege checks that the caller holds the privilege.
// It must be used after Authenticate.
func (m *AuthMiddleware) RequirePrivilege(required entity.Privilege) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return domainerrors.ErrTokenInvalid
			}

			if !slices.Contains(principal.Privileges, required.String()) {
				return domainerrors.ErrForbidden.WithDetails("requires privilege " + required.String())
			}

			return next(c)
		}
	}
}

// RequireAdmin is RequirePrivilege for user administration.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequirePrivilege(entity.PrivilegeUserAdmin)(next)
}
