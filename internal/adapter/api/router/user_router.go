package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, m Middlewares) {
	users := e.Group("/v1/users")
	users.Use(m.Auth.Authenticate)

	users.GET("", userHandler.ListUsers)
	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.POST("/me/verification", userHandler.SubmitVerification)

	users.GET("/:userId", userHandler.GetUser)
	users.POST("/:userId/follow", userHandler.ToggleFollow)

	// Host discovery
	hosts := e.Group("/v1/hosts")
	hosts.Use(m.Auth.Authenticate)

	hosts.GET("", userHandler.ListHosts)
}
