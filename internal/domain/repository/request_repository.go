package repository

import (
	"context"

	"kangenshare/internal/domain/entity"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.WaterRequest) error
	GetByID(ctx context.Context, id string) (*entity.WaterRequest, error)
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error
	ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*entity.WaterRequest, int64, error)
	ListByHost(ctx context.Context, hostID string, limit, offset int) ([]*entity.WaterRequest, int64, error)

	// SubscribePendingCount streams the host's current pending-request
	// count on every change until ctx is cancelled.
	SubscribePendingCount(ctx context.Context, hostID string) (<-chan int, error)
}
