package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

func SetupReviewRouter(e *echo.Echo, reviewHandler *handler.ReviewHandler, m Middlewares) {
	reviews := e.Group("/v1/hosts/:hostId/reviews")
	reviews.Use(m.Auth.Authenticate)

	reviews.GET("", reviewHandler.ListReviews)
	reviews.POST("", reviewHandler.AddReview)
}
