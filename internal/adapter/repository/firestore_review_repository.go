package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

// AddReview inserts the review row and folds its rating into the host's
// running average inside one transaction, so a failed host lookup leaves
// no partial state behind.
func (r *firestoreReviewRepository) AddReview(ctx context.Context, hostID string, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.HostID = hostID
	if review.Date.IsZero() {
		review.Date = time.Now()
	}

	hostRef := r.client.Collection("users").Doc(hostID)
	reviewRef := hostRef.Collection("reviews").Doc(review.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(hostRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Host", err)
			}
			return err
		}

		host := MaterializeUser(doc.Ref.ID, doc.Data())
		if host.IsDeleted() {
			return errors.NotFound("Host", nil)
		}

		newRating := entity.NextRating(host.Rating, host.Reviews, review.Rating)

		if err := tx.Update(hostRef, []firestore.Update{
			{Path: "rating", Value: newRating},
			{Path: "reviews", Value: host.Reviews + 1},
		}); err != nil {
			return err
		}

		return tx.Set(reviewRef, review)
	})

	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return err
		}
		return errors.Internal("Failed to add review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) ListByHost(ctx context.Context, hostID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("users").Doc(hostID).Collection("reviews").
		OrderBy("date", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Unavailable("Failed to count reviews", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var reviews []*entity.Review
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to list reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}
