package usecase

import (
	"context"
	"fmt"
	"strings"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/logger"
)

type ChatUseCase struct {
	messageRepo repository.MessageRepository
	requestRepo repository.RequestRepository
	notifier    *NotificationUseCase
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	requestRepo repository.RequestRepository,
	notifier *NotificationUseCase,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo: messageRepo,
		requestRepo: requestRepo,
		notifier:    notifier,
	}
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, requestID, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if senderID != request.RequesterID && senderID != request.HostID {
		return nil, errors.Forbidden("Only request participants can send messages", nil)
	}

	message := &entity.Message{
		RequestID: requestID,
		Sender:    senderID,
		Text:      text,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	senderName, senderImage := request.RequesterName, request.RequesterImage
	recipientID := request.HostID
	if senderID == request.HostID {
		senderName, senderImage = request.HostName, request.HostImage
		recipientID = request.RequesterID
	}

	err = uc.notifier.Notify(ctx, recipientID, NotifyInput{
		Type:        entity.NotificationNewMessage,
		RelatedID:   requestID,
		Text:        fmt.Sprintf("%s sent you a message", senderName),
		SenderID:    senderID,
		SenderName:  senderName,
		SenderImage: senderImage,
	})
	if err != nil {
		logger.Warn("Failed to notify %s about new message: %v", recipientID, err)
	}

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, requestID string) ([]*entity.Message, error) {
	if _, err := uc.participantRequest(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return uc.messageRepo.ListByRequest(ctx, requestID)
}

// SubscribeMessages streams the full ordered message list on every
// change until ctx is cancelled.
func (uc *ChatUseCase) SubscribeMessages(ctx context.Context, userID, requestID string) (<-chan []*entity.Message, error) {
	if _, err := uc.participantRequest(ctx, userID, requestID); err != nil {
		return nil, err
	}
	return uc.messageRepo.Subscribe(ctx, requestID)
}

func (uc *ChatUseCase) participantRequest(ctx context.Context, userID, requestID string) (*entity.WaterRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if userID != request.RequesterID && userID != request.HostID {
		return nil, errors.Forbidden("Only request participants can read messages", nil)
	}
	return request, nil
}
