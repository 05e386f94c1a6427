// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"credguard/internal/delivery/http/response"
	"credguard/internal/domain/entity"
	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandler serves registration, login and password change.
type AuthHandler struct {
	login      usecase.LoginUsecase
	credential usecase.CredentialUsecase
	logger     *slog.Logger
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Login      usecase.LoginUsecase
	Credential usecase.CredentialUsecase
	Logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		login:      params.Login,
		credential: params.Credential,
		logger:     params.Logger,
	}
}

// UserResponse is the public view of a user. It never carries the credential.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Privileges []string  `json:"privileges"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Username:   user.Username,
		Privileges: user.Privileges.ToStrings(),
		CreatedAt:  user.CreatedAt,
	}
}

// LoginResponse is returned for a verified password.
type LoginResponse struct {
	Username    string   `json:"username"`
	Privileges  []string `json:"privileges"`
	MustChange  bool     `json:"mustChange"`
	AccessToken string   `json:"accessToken,omitempty"`
	TokenType   string   `json:"tokenType,omitempty"`
	ExpiresIn   int64    `json:"expiresIn,omitempty"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.credential.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(user), "User registered successfully")
}

// Login handles one authentication attempt.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.login.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	switch {
	case output.Locked:
		return domainerrors.ErrCredentialLocked
	case !output.Validated:
		return domainerrors.ErrInvalidCredentials
	}

	resp := &LoginResponse{
		Username:   output.User.Username,
		Privileges: output.User.Privileges.ToStrings(),
		MustChange: output.MustChange,
	}
	if output.MustChange {
		return response.Success(c, http.StatusOK, resp, "Password expired, change required")
	}

	resp.AccessToken = output.AccessToken
	resp.TokenType = "Bearer"
	resp.ExpiresIn = output.ExpiresIn

	return response.Success(c, http.StatusOK, resp, "Login successful")
}

// ChangePassword replaces the caller's password. The current password
// authenticates the request, so expired credentials can be renewed.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid password change input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.credential.ChangePassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}
