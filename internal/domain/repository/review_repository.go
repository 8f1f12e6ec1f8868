package repository

import (
	"context"

	"kangenshare/internal/domain/entity"
)

type ReviewRepository interface {
	// AddReview inserts the review and recomputes the host's running
	// rating aggregate in one serializable transaction. If the host does
	// not exist the whole operation fails with no partial state.
	AddReview(ctx context.Context, hostID string, review *entity.Review) error
	ListByHost(ctx context.Context, hostID string, limit, offset int) ([]*entity.Review, int64, error)
}
