package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

func SetupRequestRouter(e *echo.Echo, requestHandler *handler.RequestHandler, m Middlewares) {
	requests := e.Group("/v1/requests")
	requests.Use(m.Auth.Authenticate)

	requests.POST("", requestHandler.CreateRequest)
	requests.POST("/chats", requestHandler.CreateChatThread)
	requests.GET("/outgoing", requestHandler.ListOutgoing)
	requests.GET("/incoming", requestHandler.ListIncoming)

	requests.GET("/:requestId", requestHandler.GetRequest)
	requests.PATCH("/:requestId/status", requestHandler.UpdateStatus)
	requests.GET("/:requestId/pickup-code", requestHandler.GetPickupCode)
	requests.POST("/:requestId/pickup/confirm", requestHandler.ConfirmPickup)
}
