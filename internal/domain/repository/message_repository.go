package repository

import (
	"context"

	"kangenshare/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByRequest(ctx context.Context, requestID string) ([]*entity.Message, error)

	// Subscribe streams the full ordered message list of a request on
	// every change, not a diff, until ctx is cancelled.
	Subscribe(ctx context.Context, requestID string) (<-chan []*entity.Message, error)
}
