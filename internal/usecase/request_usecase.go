package usecase

import (
	"context"
	"fmt"
	"time"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/logger"
	"kangenshare/pkg/utils"
)

type RequestUseCase struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	notifier    *NotificationUseCase
}

func NewRequestUseCase(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *RequestUseCase {
	return &RequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type CreateRequestInput struct {
	HostID     string
	PhLevel    float64
	Liters     float64
	PickupDate time.Time
	PickupTime string
	Notes      string
}

func (uc *RequestUseCase) CreateRequest(ctx context.Context, requesterID string, input CreateRequestInput) (*entity.WaterRequest, error) {
	if requesterID == "" || input.HostID == "" {
		return nil, errors.BadRequest("Requester and host are required", nil)
	}
	if input.PhLevel <= 0 || input.Liters <= 0 {
		return nil, errors.BadRequest("pH level and liters are required", nil)
	}
	if input.PickupDate.IsZero() || input.PickupTime == "" {
		return nil, errors.BadRequest("Pickup date and time are required", nil)
	}
	if requesterID == input.HostID {
		return nil, errors.BadRequest("Cannot request water from yourself", nil)
	}

	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	host, err := uc.userRepo.GetByID(ctx, input.HostID)
	if err != nil {
		return nil, err
	}

	if !host.IsHost() {
		return nil, errors.BadRequest("Host is not an approved distributor", nil)
	}
	if !host.IsAcceptingRequests {
		return nil, errors.BadRequest("Host is not accepting requests", nil)
	}

	request := &entity.WaterRequest{
		RequesterID: requesterID,
		HostID:      host.ID,
		Status:      entity.RequestPending,
		PhLevel:     input.PhLevel,
		Liters:      input.Liters,
		PickupDate:  input.PickupDate,
		PickupTime:  input.PickupTime,
		Notes:       input.Notes,

		RequesterName:  requester.DisplayName,
		RequesterImage: requester.ProfilePicture,
		HostName:       host.DisplayName,
		HostImage:      host.ProfilePicture,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.notifyBestEffort(ctx, host.ID, NotifyInput{
		Type:        entity.NotificationNewRequest,
		RelatedID:   request.ID,
		Text:        fmt.Sprintf("%s requested %.0fL of pH %.1f water", requester.DisplayName, input.Liters, input.PhLevel),
		SenderID:    requester.ID,
		SenderName:  requester.DisplayName,
		SenderImage: requester.ProfilePicture,
	})

	return request, nil
}

// CreateChatThread opens a conversation between a requester and a host
// before any formal request exists. The thread is a request with status
// chatting and zero-valued pickup fields.
func (uc *RequestUseCase) CreateChatThread(ctx context.Context, actorID, hostID, requesterID string) (*entity.WaterRequest, error) {
	if actorID != hostID && actorID != requesterID {
		return nil, errors.Forbidden("Only a participant can open a chat thread", nil)
	}
	if hostID == requesterID {
		return nil, errors.BadRequest("Cannot open a chat thread with yourself", nil)
	}

	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	host, err := uc.userRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, err
	}

	thread := &entity.WaterRequest{
		RequesterID: requester.ID,
		HostID:      host.ID,
		Status:      entity.RequestChatting,

		RequesterName:  requester.DisplayName,
		RequesterImage: requester.ProfilePicture,
		HostName:       host.DisplayName,
		HostImage:      host.ProfilePicture,
	}

	if err := uc.requestRepo.Create(ctx, thread); err != nil {
		return nil, err
	}

	return thread, nil
}

func (uc *RequestUseCase) GetRequestByID(ctx context.Context, userID, requestID string) (*entity.WaterRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterID != userID && request.HostID != userID {
		return nil, errors.Forbidden("You don't have access to this request", nil)
	}
	return request, nil
}

// UpdateStatus applies one bare status transition. Only the edges of the
// request state machine are accepted, and each edge is restricted to the
// party that owns it: the host accepts or declines, the requester
// cancels. Completion never goes through here.
func (uc *RequestUseCase) UpdateStatus(ctx context.Context, actorID, requestID string, newStatus entity.RequestStatus) (*entity.WaterRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(request.Status, newStatus) {
		return nil, errors.InvalidTransition(string(request.Status), string(newStatus))
	}

	switch newStatus {
	case entity.RequestAccepted, entity.RequestDeclined:
		if actorID != request.HostID {
			return nil, errors.Forbidden("Only the host can accept or decline a request", nil)
		}
	case entity.RequestCancelled:
		if actorID != request.RequesterID {
			return nil, errors.Forbidden("Only the requester can cancel a request", nil)
		}
	}

	if err := uc.requestRepo.UpdateStatus(ctx, requestID, newStatus); err != nil {
		return nil, err
	}
	request.Status = newStatus

	uc.notifyStatusChange(ctx, actorID, request, newStatus)

	return request, nil
}

// ConfirmPickup is the only path from accepted to completed. The
// requester scans the host's QR code at pickup; the decoded payload must
// match the request id.
func (uc *RequestUseCase) ConfirmPickup(ctx context.Context, actorID, requestID, payload string) (*entity.WaterRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if actorID != request.RequesterID {
		return nil, errors.Forbidden("Only the requester can confirm a pickup", nil)
	}
	if request.Status != entity.RequestAccepted {
		return nil, errors.InvalidTransition(string(request.Status), string(entity.RequestCompleted))
	}
	if payload != request.ID {
		return nil, errors.BadRequest("Pickup code does not match this request", nil)
	}

	if err := uc.requestRepo.UpdateStatus(ctx, requestID, entity.RequestCompleted); err != nil {
		return nil, err
	}
	request.Status = entity.RequestCompleted

	uc.notifyBestEffort(ctx, request.HostID, NotifyInput{
		Type:        entity.NotificationRequestCompleted,
		RelatedID:   request.ID,
		Text:        fmt.Sprintf("%s confirmed the pickup", request.RequesterName),
		SenderID:    request.RequesterID,
		SenderName:  request.RequesterName,
		SenderImage: request.RequesterImage,
	})

	return request, nil
}

func (uc *RequestUseCase) ListByRequester(ctx context.Context, requesterID string, page, limit int) ([]*entity.WaterRequest, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.requestRepo.ListByRequester(ctx, requesterID, pagination.PageSize, pagination.Offset)
}

func (uc *RequestUseCase) ListByHost(ctx context.Context, hostID string, page, limit int) ([]*entity.WaterRequest, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.requestRepo.ListByHost(ctx, hostID, pagination.PageSize, pagination.Offset)
}

func (uc *RequestUseCase) SubscribePendingCount(ctx context.Context, hostID string) (<-chan int, error) {
	return uc.requestRepo.SubscribePendingCount(ctx, hostID)
}

// notifyStatusChange fires exactly one notification to the counterpart
// of whoever acted. The actor's frozen display fields interpolate into
// the text.
func (uc *RequestUseCase) notifyStatusChange(ctx context.Context, actorID string, request *entity.WaterRequest, newStatus entity.RequestStatus) {
	actorName, actorImage := request.HostName, request.HostImage
	recipientID := request.RequesterID
	if actorID == request.RequesterID {
		actorName, actorImage = request.RequesterName, request.RequesterImage
		recipientID = request.HostID
	}

	var notificationType entity.NotificationType
	var text string
	switch newStatus {
	case entity.RequestAccepted:
		notificationType = entity.NotificationRequestAccepted
		text = fmt.Sprintf("%s accepted your water request", actorName)
	case entity.RequestDeclined:
		notificationType = entity.NotificationRequestDeclined
		text = fmt.Sprintf("%s declined your water request", actorName)
	case entity.RequestCancelled:
		notificationType = entity.NotificationRequestCancelled
		text = fmt.Sprintf("%s cancelled the water request", actorName)
	default:
		return
	}

	uc.notifyBestEffort(ctx, recipientID, NotifyInput{
		Type:        notificationType,
		RelatedID:   request.ID,
		Text:        text,
		SenderID:    actorID,
		SenderName:  actorName,
		SenderImage: actorImage,
	})
}

// Notification writes are never atomic with the status write: a failed
// notification is logged and the primary operation stands.
func (uc *RequestUseCase) notifyBestEffort(ctx context.Context, recipientID string, input NotifyInput) {
	if err := uc.notifier.Notify(ctx, recipientID, input); err != nil {
		logger.Warn("Failed to notify %s (%s): %v", recipientID, input.Type, err)
	}
}
