package handler

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/usecase"
	"kangenshare/pkg/response"
	"kangenshare/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

func (h *AdminHandler) ListPendingVerifications(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.adminUseCase.ListPendingVerifications(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) ApproveDistributor(c echo.Context) error {
	adminID := c.Get("uid").(string)
	userID := c.Param("userId")

	user, err := h.adminUseCase.ApproveDistributor(c.Request().Context(), adminID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type verificationNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

func (h *AdminHandler) RejectDistributor(c echo.Context) error {
	adminID := c.Get("uid").(string)
	userID := c.Param("userId")

	var req verificationNoteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.RejectDistributor(c.Request().Context(), adminID, userID, req.Note)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) RevokeDistributor(c echo.Context) error {
	adminID := c.Get("uid").(string)
	userID := c.Param("userId")

	var req verificationNoteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.RevokeDistributor(c.Request().Context(), adminID, userID, req.Note)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type blockStatusRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

func (h *AdminHandler) UpdateBlockStatus(c echo.Context) error {
	adminID := c.Get("uid").(string)
	userID := c.Param("userId")

	var req blockStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.UpdateUserBlockStatus(c.Request().Context(), adminID, userID, *req.Blocked)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	adminID := c.Get("uid").(string)
	userID := c.Param("userId")

	if err := h.adminUseCase.DeleteUser(c.Request().Context(), adminID, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}
