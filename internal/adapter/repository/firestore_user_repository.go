package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Unavailable("Failed to get user", err)
	}

	user := MaterializeUser(doc.Ref.ID, doc.Data())
	if user.IsDeleted() {
		return nil, errors.NotFound("User", nil)
	}

	return user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("User", nil)
		}
		return nil, errors.Unavailable("Failed to query user", err)
	}

	user := MaterializeUser(doc.Ref.ID, doc.Data())
	if user.IsDeleted() {
		return nil, errors.NotFound("User", nil)
	}

	return user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()
	_, err := r.client.Collection("users").Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return r.listVisible(ctx, r.client.Collection("users").Query, limit, offset)
}

func (r *firestoreUserRepository) ListHosts(ctx context.Context, city, country string, limit, offset int) ([]*entity.User, int64, error) {
	query := r.client.Collection("users").
		Where("distributorStatus", "==", string(entity.DistributorApproved)).
		Where("isAcceptingRequests", "==", true)

	if city != "" {
		query = query.Where("address.city", "==", city)
	}
	if country != "" {
		query = query.Where("address.country", "==", country)
	}

	return r.listVisible(ctx, query, limit, offset)
}

func (r *firestoreUserRepository) ListByDistributorStatus(ctx context.Context, distributorStatus entity.DistributorStatus, limit, offset int) ([]*entity.User, int64, error) {
	query := r.client.Collection("users").Where("distributorStatus", "==", string(distributorStatus))
	return r.listVisible(ctx, query, limit, offset)
}

// listVisible materializes every matching document and strips
// soft-deleted and blocked users before paginating. deletedAt cannot be
// filtered in the query itself because older documents lack the field.
func (r *firestoreUserRepository) listVisible(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.User, int64, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var visible []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to list users", err)
		}

		user := MaterializeUser(doc.Ref.ID, doc.Data())
		if user.IsDeleted() || user.IsBlocked {
			continue
		}
		visible = append(visible, user)
	}

	total := int64(len(visible))
	if offset >= len(visible) {
		return []*entity.User{}, total, nil
	}
	visible = visible[offset:]
	if limit > 0 && limit < len(visible) {
		visible = visible[:limit]
	}

	return visible, total, nil
}

func (r *firestoreUserRepository) SetFollowEdge(ctx context.Context, followerID, targetID string, follow bool) error {
	followerRef := r.client.Collection("users").Doc(followerID)
	targetRef := r.client.Collection("users").Doc(targetID)

	var followingOp any = firestore.ArrayUnion(targetID)
	var followerOp any = firestore.ArrayUnion(followerID)
	if !follow {
		followingOp = firestore.ArrayRemove(targetID)
		followerOp = firestore.ArrayRemove(followerID)
	}

	batch := r.client.Batch()
	batch.Update(followerRef, []firestore.Update{{Path: "following", Value: followingOp}})
	batch.Update(targetRef, []firestore.Update{{Path: "followers", Value: followerOp}})

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update follow edge", err)
	}
	return nil
}
