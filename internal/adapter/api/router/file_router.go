package router

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/adapter/api/handler"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, m Middlewares) {
	files := e.Group("/v1/users/me")
	files.Use(m.Auth.Authenticate)

	files.POST("/profile-picture", fileHandler.UploadProfilePicture)
	files.POST("/proof-documents", fileHandler.UploadProofDocument)
	files.DELETE("/proof-documents/:docId", fileHandler.DeleteProofDocument)
}
