package usecase

import (
	"context"
	"fmt"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/logger"
	"kangenshare/pkg/utils"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	notifier   *NotificationUseCase
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

type AddReviewInput struct {
	HostID  string
	Rating  int
	Comment string
}

func (uc *ReviewUseCase) AddReview(ctx context.Context, reviewerID string, input AddReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if reviewerID == input.HostID {
		return nil, errors.BadRequest("Cannot review yourself", nil)
	}

	reviewer, err := uc.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		HostID:        input.HostID,
		ReviewerID:    reviewer.ID,
		ReviewerName:  reviewer.DisplayName,
		ReviewerImage: reviewer.ProfilePicture,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}

	if err := uc.reviewRepo.AddReview(ctx, input.HostID, review); err != nil {
		return nil, err
	}

	// The rating aggregate commits with the review; the notification is
	// best-effort outside the transaction.
	err = uc.notifier.Notify(ctx, input.HostID, NotifyInput{
		Type:        entity.NotificationReviewLeft,
		RelatedID:   review.ID,
		Text:        fmt.Sprintf("%s left you a %d-star review", reviewer.DisplayName, input.Rating),
		SenderID:    reviewer.ID,
		SenderName:  reviewer.DisplayName,
		SenderImage: reviewer.ProfilePicture,
	})
	if err != nil {
		logger.Warn("Failed to notify %s about new review: %v", input.HostID, err)
	}

	return review, nil
}

func (uc *ReviewUseCase) ListByHost(ctx context.Context, hostID string, page, limit int) ([]*entity.Review, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.reviewRepo.ListByHost(ctx, hostID, pagination.PageSize, pagination.Offset)
}
