package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
	"kangenshare/internal/adapter/api/middleware"
)

// Handlers bundles every HTTP handler so Setup stays readable. All
// handlers are constructor-injected from main; routers never reach
// into globals.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Request      *handler.RequestHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Review       *handler.ReviewHandler
	Admin        *handler.AdminHandler
	File         *handler.FileHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

// Middlewares bundles the route-level middleware chain.
type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Admin     *middleware.AdminMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, m)
	SetupUserRouter(e, h.User, m)
	SetupRequestRouter(e, h.Request, m)
	SetupChatRouter(e, h.Chat, m)
	SetupNotificationRouter(e, h.Notification, m)
	SetupReviewRouter(e, h.Review, m)
	SetupAdminRouter(e, h.Admin, m)
	SetupFileRouter(e, h.File, m)
	SetupWebSocketRouter(e, h.WebSocket, m)
}
