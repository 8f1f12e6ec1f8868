package repository

import (
	"context"

	"kangenshare/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error)
	ListHosts(ctx context.Context, city, country string, limit, offset int) ([]*entity.User, int64, error)
	ListByDistributorStatus(ctx context.Context, status entity.DistributorStatus, limit, offset int) ([]*entity.User, int64, error)

	// SetFollowEdge updates both sides of the follow edge in a single
	// atomic batch.
	SetFollowEdge(ctx context.Context, followerID, targetID string, follow bool) error
}
