package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, m Middlewares) {
	notifications := e.Group("/v1/notifications")
	notifications.Use(m.Auth.Authenticate)

	notifications.GET("", notificationHandler.ListNotifications)
	notifications.GET("/unread-counts", notificationHandler.GetUnreadCounts)
	notifications.PATCH("/:notificationId/read", notificationHandler.MarkRead)
}
