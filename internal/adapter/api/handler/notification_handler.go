package handler

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/usecase"
	"kangenshare/pkg/response"
	"kangenshare/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationUseCase.ListNotifications(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

// GetUnreadCounts reports the projections the client badge logic uses.
func (h *NotificationHandler) GetUnreadCounts(c echo.Context) error {
	uid := c.Get("uid").(string)

	unread, unreadMessages, err := h.notificationUseCase.UnreadCounts(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{
		"unread":          unread,
		"unread_messages": unreadMessages,
	})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	notificationID := c.Param("notificationId")

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), uid, notificationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}
