package usecase

import (
	"context"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/utils"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
	}
}

type NotifyInput struct {
	Type        entity.NotificationType
	RelatedID   string
	Text        string
	SenderID    string
	SenderName  string
	SenderImage string
}

// Notify appends an unread notification to the recipient's private
// list. An empty recipient is a no-op, not an error: callers fire these
// as best-effort side effects of domain operations.
func (uc *NotificationUseCase) Notify(ctx context.Context, recipientID string, input NotifyInput) error {
	if recipientID == "" {
		return nil
	}

	notification := &entity.Notification{
		RecipientID: recipientID,
		Type:        input.Type,
		RelatedID:   input.RelatedID,
		Text:        input.Text,
		SenderID:    input.SenderID,
		SenderName:  input.SenderName,
		SenderImage: input.SenderImage,
		Read:        false,
	}

	return uc.notificationRepo.Create(ctx, notification)
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, userID string, page, limit int) ([]*entity.Notification, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.notificationRepo.List(ctx, userID, pagination.PageSize, pagination.Offset)
}

// UnreadCounts recomputes the unread projections over the full current
// list.
func (uc *NotificationUseCase) UnreadCounts(ctx context.Context, userID string) (unread, unreadMessages int, err error) {
	notifications, _, err := uc.notificationRepo.List(ctx, userID, 0, 0)
	if err != nil {
		return 0, 0, err
	}
	unread, unreadMessages = entity.UnreadCounts(notifications)
	return unread, unreadMessages, nil
}

// MarkRead is idempotent: flipping an already-read notification is a
// successful no-op.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.notificationRepo.MarkRead(ctx, userID, notificationID)
}

func (uc *NotificationUseCase) Subscribe(ctx context.Context, userID string) (<-chan []*entity.Notification, error) {
	return uc.notificationRepo.Subscribe(ctx, userID)
}
