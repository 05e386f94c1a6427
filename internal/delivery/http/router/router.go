// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"credguard/internal/delivery/http/middleware"
	"credguard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public: the password authenticates these requests
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/password", r.authHandler.ChangePassword)
	}

	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/credentials/:username", r.adminHandler.CredentialStatus)
		adminGroup.POST("/credentials/:username/unlock", r.adminHandler.UnlockCredential)
		adminGroup.GET("/policy", r.adminHandler.GetPolicy)
		adminGroup.PUT("/policy", r.adminHandler.UpdatePolicy)
		adminGroup.POST("/policy/preset", r.adminHandler.ApplyPolicyPreset)
	}
}
