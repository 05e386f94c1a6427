package handler

import (
	"net/http"

	deliverycontext "credguard/internal/delivery/context"
	"credguard/internal/delivery/http/response"
	"credguard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandler serves the user administration endpoints.
type AdminHandler struct {
	credential usecase.CredentialUsecase
	policy     usecase.PolicyUsecase
}

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	Credential usecase.CredentialUsecase
	Policy     usecase.PolicyUsecase
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		credential: params.Credential,
		policy:     params.Policy,
	}
}

func actor(c echo.Context) string {
	principal, _ := deliverycontext.GetPrincipal(c)

	return principal.Username
}

// CredentialStatus returns the lock, expiry and history state of a credential.
func (h *AdminHandler) CredentialStatus(c echo.Context) error {
	status, err := h.credential.Status(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}

// UnlockCredential clears the lock of a credential.
func (h *AdminHandler) UnlockCredential(c echo.Context) error {
	input := &usecase.UnlockInput{
		Username: c.Param("username"),
		Actor:    actor(c),
	}
	if err := h.credential.Unlock(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Credential unlocked")
}

// GetPolicy returns the active password policy.
func (h *AdminHandler) GetPolicy(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.policy.Get(c.Request().Context()), "")
}

// UpdatePolicy applies partial rule overrides.
func (h *AdminHandler) UpdatePolicy(c echo.Context) error {
	var input usecase.PolicyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid policy input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	input.Actor = actor(c)

	output, err := h.policy.Update(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Policy updated")
}

// ApplyPolicyPreset switches between the strict and permissive presets.
func (h *AdminHandler) ApplyPolicyPreset(c echo.Context) error {
	var input usecase.PresetInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid preset input")
	}
	input.Actor = actor(c)

	output, err := h.policy.ApplyPreset(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Policy preset applied")
}
