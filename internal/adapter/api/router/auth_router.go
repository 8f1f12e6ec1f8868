package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

// SetupAuthRouter initializes auth routes.
func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, m Middlewares) {
	// Public routes, throttled to slow down credential stuffing
	public := e.Group("/v1/auth")
	public.Use(m.RateLimit.Limit("auth"))

	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	// Protected routes
	protected := e.Group("/v1/auth")
	protected.Use(m.Auth.Authenticate)

	// Called after any successful sign-in, including OAuth providers,
	// to create the profile document on first login.
	protected.POST("/session", authHandler.SyncSession)
	protected.POST("/logout", authHandler.Logout)
}
