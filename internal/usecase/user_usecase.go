package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/domain/repository"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/logger"
	"kangenshare/pkg/utils"
)

type UserUseCase struct {
	userRepo      repository.UserRepository
	storageClient StorageClient
	notifier      *NotificationUseCase
}

func NewUserUseCase(userRepo repository.UserRepository, storageClient StorageClient, notifier *NotificationUseCase) *UserUseCase {
	return &UserUseCase{
		userRepo:      userRepo,
		storageClient: storageClient,
		notifier:      notifier,
	}
}

func (uc *UserUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted() {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.userRepo.List(ctx, pagination.PageSize, pagination.Offset)
}

// ListHosts returns approved distributors currently accepting requests,
// optionally narrowed to a city/country.
func (uc *UserUseCase) ListHosts(ctx context.Context, city, country string, page, limit int) ([]*entity.User, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.userRepo.ListHosts(ctx, city, country, pagination.PageSize, pagination.Offset)
}

type UpdateProfileInput struct {
	Name         string
	DisplayName  string
	Phone        string
	Bio          string
	Instagram    *string
	Facebook     *string
	LinkedIn     *string
	Website      *string
	Address      *entity.Address
	PhLevels     []float64
	Availability map[string]entity.DaySchedule
	Maintenance  *entity.Maintenance

	IsAcceptingRequests *bool
	OnboardingCompleted *bool
	OnboardingStep      *int
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.DisplayName != "" {
		fields["displayName"] = input.DisplayName
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Bio != "" {
		fields["bio"] = input.Bio
	}
	if input.Instagram != nil {
		fields["instagram"] = *input.Instagram
	}
	if input.Facebook != nil {
		fields["facebook"] = *input.Facebook
	}
	if input.LinkedIn != nil {
		fields["linkedin"] = *input.LinkedIn
	}
	if input.Website != nil {
		fields["website"] = *input.Website
	}
	if input.Address != nil {
		fields["address"] = input.Address
	}
	if input.PhLevels != nil {
		fields["phLevels"] = input.PhLevels
	}
	if input.Availability != nil {
		fields["availability"] = mergeAvailability(user.Availability, input.Availability)
	}
	if input.Maintenance != nil {
		fields["maintenance"] = input.Maintenance
	}
	if input.IsAcceptingRequests != nil {
		fields["isAcceptingRequests"] = *input.IsAcceptingRequests
	}
	if input.OnboardingCompleted != nil {
		fields["onboardingCompleted"] = *input.OnboardingCompleted
	}
	if input.OnboardingStep != nil {
		fields["onboardingStep"] = *input.OnboardingStep
	}

	if len(fields) > 0 {
		if err := uc.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return uc.GetUserByID(ctx, userID)
}

func mergeAvailability(current, updates map[string]entity.DaySchedule) map[string]entity.DaySchedule {
	merged := make(map[string]entity.DaySchedule, len(entity.WeekDays))
	for _, day := range entity.WeekDays {
		if schedule, ok := updates[day]; ok {
			merged[day] = schedule
		} else if schedule, ok := current[day]; ok {
			merged[day] = schedule
		} else {
			merged[day] = entity.DefaultAvailability()[day]
		}
	}
	return merged
}

// ToggleFollow reads the current follow state once, then updates both
// sides of the edge in a single atomic batch. Two racing toggles from
// the same actor settle last-write-wins. Returns whether the actor now
// follows the target.
func (uc *UserUseCase) ToggleFollow(ctx context.Context, currentUserID, targetID string) (bool, error) {
	if currentUserID == targetID {
		return false, errors.BadRequest("Cannot follow yourself", nil)
	}

	currentUser, err := uc.GetUserByID(ctx, currentUserID)
	if err != nil {
		return false, err
	}
	target, err := uc.GetUserByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	follow := !currentUser.IsFollowing(targetID)

	if err := uc.userRepo.SetFollowEdge(ctx, currentUserID, targetID, follow); err != nil {
		return false, err
	}

	if follow {
		err := uc.notifier.Notify(ctx, target.ID, NotifyInput{
			Type:        entity.NotificationNewFollower,
			RelatedID:   currentUserID,
			Text:        fmt.Sprintf("%s started following you", currentUser.DisplayName),
			SenderID:    currentUser.ID,
			SenderName:  currentUser.DisplayName,
			SenderImage: currentUser.ProfilePicture,
		})
		if err != nil {
			logger.Warn("Failed to notify %s about new follower: %v", target.ID, err)
		}
	}

	return follow, nil
}

func (uc *UserUseCase) UploadProfilePicture(ctx context.Context, userID string, file io.Reader, contentType string) (*entity.User, error) {
	if _, err := uc.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	url, err := uc.storageClient.UploadProfilePicture(ctx, userID, file, contentType)
	if err != nil {
		return nil, errors.Internal("Failed to upload profile picture", err)
	}

	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"profilePicture": url}); err != nil {
		return nil, err
	}

	return uc.GetUserByID(ctx, userID)
}

func (uc *UserUseCase) UploadProofDocument(ctx context.Context, userID, fileName string, file io.Reader, contentType string) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	docID := uuid.New().String()
	url, err := uc.storageClient.UploadProofDocument(ctx, userID, docID, fileName, file, contentType)
	if err != nil {
		return nil, errors.Internal("Failed to upload proof document", err)
	}

	documents := append(user.DistributorProofDocuments, entity.ProofDocument{
		ID:         docID,
		FileName:   fileName,
		URL:        url,
		UploadedAt: time.Now(),
	})

	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"distributorProofDocuments": documents}); err != nil {
		return nil, err
	}

	return uc.GetUserByID(ctx, userID)
}

func (uc *UserUseCase) DeleteProofDocument(ctx context.Context, userID, docID string) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	documents := make([]entity.ProofDocument, 0, len(user.DistributorProofDocuments))
	found := false
	for _, doc := range user.DistributorProofDocuments {
		if doc.ID == docID {
			found = true
			continue
		}
		documents = append(documents, doc)
	}
	if !found {
		return nil, errors.NotFound("Proof document", nil)
	}

	// Storage delete-not-found counts as success, so the blob delete
	// runs before the field update without a compensation path.
	if err := uc.storageClient.DeleteProofDocument(ctx, userID, docID); err != nil {
		return nil, errors.Internal("Failed to delete proof document", err)
	}

	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"distributorProofDocuments": documents}); err != nil {
		return nil, err
	}

	return uc.GetUserByID(ctx, userID)
}

// SubmitDistributorVerification moves the user into the pending review
// queue. Only none, rejected and revoked states may resubmit.
func (uc *UserUseCase) SubmitDistributorVerification(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.DistributorStatus {
	case entity.DistributorNone, entity.DistributorRejected, entity.DistributorRevoked:
	default:
		return nil, errors.InvalidTransition(string(user.DistributorStatus), string(entity.DistributorPending))
	}

	if len(user.DistributorProofDocuments) == 0 {
		return nil, errors.BadRequest("At least one proof document is required", nil)
	}

	fields := map[string]interface{}{
		"distributorStatus":          string(entity.DistributorPending),
		"distributorRejectionReason": "",
	}
	if err := uc.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	return uc.GetUserByID(ctx, userID)
}
