package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/logger"
	"kangenshare/pkg/utils"
)

// AdminUseCase covers the moderation surface: distributor verification
// decisions, blocking and soft deletion.
type AdminUseCase struct {
	userRepo repository.UserRepository
	notifier *NotificationUseCase
}

func NewAdminUseCase(userRepo repository.UserRepository, notifier *NotificationUseCase) *AdminUseCase {
	return &AdminUseCase{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (uc *AdminUseCase) ListPendingVerifications(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.userRepo.ListByDistributorStatus(ctx, entity.DistributorPending, pagination.PageSize, pagination.Offset)
}

func (uc *AdminUseCase) ApproveDistributor(ctx context.Context, adminID, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.DistributorStatus != entity.DistributorPending {
		return nil, errors.InvalidTransition(string(user.DistributorStatus), string(entity.DistributorApproved))
	}

	distributorID := user.DistributorID
	if distributorID == "" {
		distributorID = uuid.New().String()
	}

	fields := map[string]interface{}{
		"distributorStatus":             string(entity.DistributorApproved),
		"distributorId":                 distributorID,
		"distributorRejectionReason":    "",
		"isVerified":                    true,
		"verificationReviewedAt":        time.Now(),
		"verificationReviewedByAdminId": adminID,
	}
	if err := uc.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	uc.notifyBestEffort(ctx, userID, NotifyInput{
		Type:      entity.NotificationDistributorApproved,
		RelatedID: userID,
		Text:      "Your distributor application was approved",
	})

	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AdminUseCase) RejectDistributor(ctx context.Context, adminID, userID, note string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.DistributorStatus != entity.DistributorPending {
		return nil, errors.InvalidTransition(string(user.DistributorStatus), string(entity.DistributorRejected))
	}

	return uc.closeDistributor(ctx, adminID, userID, entity.DistributorRejected, note, entity.NotificationDistributorRejected,
		"Your distributor application was rejected")
}

func (uc *AdminUseCase) RevokeDistributor(ctx context.Context, adminID, userID, note string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.DistributorStatus != entity.DistributorApproved {
		return nil, errors.InvalidTransition(string(user.DistributorStatus), string(entity.DistributorRevoked))
	}

	return uc.closeDistributor(ctx, adminID, userID, entity.DistributorRevoked, note, entity.NotificationDistributorRevoked,
		"Your distributor status was revoked")
}

// closeDistributor applies the shared reject/revoke effects: the status,
// the note, and the forced loss of verified/accepting flags.
func (uc *AdminUseCase) closeDistributor(
	ctx context.Context,
	adminID, userID string,
	distributorStatus entity.DistributorStatus,
	note string,
	notificationType entity.NotificationType,
	text string,
) (*entity.User, error) {
	fields := map[string]interface{}{
		"distributorStatus":             string(distributorStatus),
		"distributorRejectionReason":    note,
		"isVerified":                    false,
		"isAcceptingRequests":           false,
		"verificationReviewedAt":        time.Now(),
		"verificationReviewedByAdminId": adminID,
	}
	if err := uc.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	uc.notifyBestEffort(ctx, userID, NotifyInput{
		Type:      notificationType,
		RelatedID: userID,
		Text:      text,
	})

	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AdminUseCase) UpdateUserBlockStatus(ctx context.Context, adminID, userID string, blocked bool) (*entity.User, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"isBlocked": blocked}); err != nil {
		return nil, err
	}

	notificationType := entity.NotificationAccountUnblocked
	text := "Your account was unblocked"
	if blocked {
		notificationType = entity.NotificationAccountBlocked
		text = "Your account was blocked"
	}
	uc.notifyBestEffort(ctx, userID, NotifyInput{
		Type:      notificationType,
		RelatedID: userID,
		Text:      text,
	})

	return uc.userRepo.GetByID(ctx, userID)
}

// DeleteUser soft-deletes: the document keeps its history but is
// filtered from every read path, and the account is force-blocked.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, adminID, userID string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"deletedAt": time.Now(),
		"isBlocked": true,
	}
	if err := uc.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return err
	}

	uc.notifyBestEffort(ctx, userID, NotifyInput{
		Type:      entity.NotificationAccountDeleted,
		RelatedID: userID,
		Text:      "Your account was deleted",
	})

	return nil
}

func (uc *AdminUseCase) notifyBestEffort(ctx context.Context, recipientID string, input NotifyInput) {
	if err := uc.notifier.Notify(ctx, recipientID, input); err != nil {
		logger.Warn("Failed to notify %s (%s): %v", recipientID, input.Type, err)
	}
}
