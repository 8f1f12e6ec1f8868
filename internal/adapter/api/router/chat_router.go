package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

// SetupChatRouter sets up the message routes. Messages live under the
// request they belong to; there is no standalone chat resource.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, m Middlewares) {
	messages := e.Group("/v1/requests/:requestId/messages")
	messages.Use(m.Auth.Authenticate)

	messages.GET("", chatHandler.ListMessages)
	messages.POST("", chatHandler.SendMessage, m.RateLimit.Limit("send_message"))
}
