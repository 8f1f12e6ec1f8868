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

type firestoreRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreRequestRepository(client *firestore.Client) repository.RequestRepository {
	return &firestoreRequestRepository{
		client: client,
	}
}

func (r *firestoreRequestRepository) Create(ctx context.Context, request *entity.WaterRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	_, err := r.client.Collection("requests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create request", err)
	}
	return nil
}

func (r *firestoreRequestRepository) GetByID(ctx context.Context, id string) (*entity.WaterRequest, error) {
	doc, err := r.client.Collection("requests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Request", err)
		}
		return nil, errors.Unavailable("Failed to get request", err)
	}

	var request entity.WaterRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse request data", err)
	}
	request.ID = doc.Ref.ID

	return &request, nil
}

func (r *firestoreRequestRepository) UpdateStatus(ctx context.Context, id string, requestStatus entity.RequestStatus) error {
	_, err := r.client.Collection("requests").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(requestStatus)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Request", err)
		}
		return errors.Internal("Failed to update request status", err)
	}
	return nil
}

func (r *firestoreRequestRepository) ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*entity.WaterRequest, int64, error) {
	query := r.client.Collection("requests").
		Where("requesterId", "==", requesterID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreRequestRepository) ListByHost(ctx context.Context, hostID string, limit, offset int) ([]*entity.WaterRequest, int64, error) {
	query := r.client.Collection("requests").
		Where("hostId", "==", hostID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreRequestRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.WaterRequest, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Unavailable("Failed to count requests", err)
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

	var requests []*entity.WaterRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to list requests", err)
		}

		var request entity.WaterRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, 0, errors.Internal("Failed to parse request data", err)
		}
		request.ID = doc.Ref.ID
		requests = append(requests, &request)
	}

	return requests, total, nil
}

func (r *firestoreRequestRepository) SubscribePendingCount(ctx context.Context, hostID string) (<-chan int, error) {
	query := r.client.Collection("requests").
		Where("hostId", "==", hostID).
		Where("status", "==", string(entity.RequestPending))

	snapshots := query.Snapshots(ctx)
	counts := make(chan int, 1)

	go func() {
		defer close(counts)
		defer snapshots.Stop()

		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				return
			}

			select {
			case counts <- snapshot.Size:
			case <-ctx.Done():
				return
			}
		}
	}()

	return counts, nil
}
