package repository

import (
	"context"

	"kangenshare/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error

	// Subscribe streams the recipient's full notification list, newest
	// first, on every change until ctx is cancelled.
	Subscribe(ctx context.Context, userID string) (<-chan []*entity.Notification, error)
}
