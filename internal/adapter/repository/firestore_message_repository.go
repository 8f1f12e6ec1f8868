package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) messages(requestID string) *firestore.CollectionRef {
	return r.client.Collection("requests").Doc(requestID).Collection("messages")
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	_, err := r.messages(message.RequestID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreMessageRepository) ListByRequest(ctx context.Context, requestID string) ([]*entity.Message, error) {
	query := r.messages(requestID).OrderBy("timestamp", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to list messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) Subscribe(ctx context.Context, requestID string) (<-chan []*entity.Message, error) {
	query := r.messages(requestID).OrderBy("timestamp", firestore.Asc)

	snapshots := query.Snapshots(ctx)
	updates := make(chan []*entity.Message, 1)

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

			messages := make([]*entity.Message, 0, len(docs))
			for _, doc := range docs {
				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					continue
				}
				message.ID = doc.Ref.ID
				messages = append(messages, &message)
			}

			select {
			case updates <- messages:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}
