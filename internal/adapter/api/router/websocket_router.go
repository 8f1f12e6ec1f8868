package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the realtime endpoint. The handler needs
// the caller's uid, so the connection is authenticated like any other
// route.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, m Middlewares) {
	e.GET("/ws", wsHandler.Connect, m.Auth.Authenticate)
}
