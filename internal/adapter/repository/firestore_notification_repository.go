package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) items(userID string) *firestore.CollectionRef {
	return r.client.Collection("notifications").Doc(userID).Collection("items")
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.Read = false

	_, err := r.items(notification.RecipientID).Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.items(userID).OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Unavailable("Failed to count notifications", err)
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

	var notifications []*entity.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to list notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, 0, errors.Internal("Failed to parse notification data", err)
		}
		notification.ID = doc.Ref.ID
		notifications = append(notifications, &notification)
	}

	return notifications, total, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := r.items(userID).Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification read", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) Subscribe(ctx context.Context, userID string) (<-chan []*entity.Notification, error) {
	query := r.items(userID).OrderBy("createdAt", firestore.Desc)

	snapshots := query.Snapshots(ctx)
	updates := make(chan []*entity.Notification, 1)

	go func() {
		defer close(updates)
		defer snapshots.Stop()

		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				return
			}

			docs, err := snapshot.Documents.GetAll()
			if err != nil {
				continue
			}

			notifications := make([]*entity.Notification, 0, len(docs))
			for _, doc := range docs {
				var notification entity.Notification
				if err := doc.DataTo(&notification); err != nil {
					continue
				}
				notification.ID = doc.Ref.ID
				notifications = append(notifications, &notification)
			}

			select {
			case updates <- notifications:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}
