package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, m Middlewares) {
	admin := e.Group("/v1/admin")
	admin.Use(m.Auth.Authenticate)
	admin.Use(m.Admin.AdminOnly)

	// Distributor verification queue
	admin.GET("/verifications", adminHandler.ListPendingVerifications)
	admin.POST("/users/:userId/verification/approve", adminHandler.ApproveDistributor)
	admin.POST("/users/:userId/verification/reject", adminHandler.RejectDistributor)
	admin.POST("/users/:userId/verification/revoke", adminHandler.RevokeDistributor)

	// Account moderation
	admin.PATCH("/users/:userId/block", adminHandler.UpdateBlockStatus)
	admin.DELETE("/users/:userId", adminHandler.DeleteUser)
}
