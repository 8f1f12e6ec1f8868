package handler

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/usecase"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/response"
)

type FileHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewFileHandler(userUseCase *usecase.UserUseCase) *FileHandler {
	return &FileHandler{
		userUseCase: userUseCase,
	}
}

func (h *FileHandler) UploadProfilePicture(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/jpg" && contentType != "image/png" {
		return response.Error(c, errors.BadRequest("Profile picture must be a JPEG or PNG image", nil))
	}

	user, err := h.userUseCase.UploadProfilePicture(c.Request().Context(), uid, file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *FileHandler) UploadProofDocument(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	user, err := h.userUseCase.UploadProofDocument(c.Request().Context(), uid, fileHeader.Filename, file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *FileHandler) DeleteProofDocument(c echo.Context) error {
	uid := c.Get("uid").(string)
	docID := c.Param("docId")
	if docID == "" {
		return response.Error(c, errors.BadRequest("Document ID is required", nil))
	}

	user, err := h.userUseCase.DeleteProofDocument(c.Request().Context(), uid, docID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
