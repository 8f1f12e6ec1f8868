package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kangenshare/internal/domain/entity"
	"kangenshare/pkg/errors"
)

func newRequestFixture(users ...*entity.User) (*RequestUseCase, *fakeRequestRepo, *fakeNotificationRepo) {
	userRepo := newFakeUserRepo(users...)
	requestRepo := newFakeRequestRepo()
	notificationRepo := &fakeNotificationRepo{}
	uc := NewRequestUseCase(requestRepo, userRepo, NewNotificationUseCase(notificationRepo))
	return uc, requestRepo, notificationRepo
}

func validCreateInput(hostID string) CreateRequestInput {
	return CreateRequestInput{
		HostID:     hostID,
		PhLevel:    9.5,
		Liters:     5,
		PickupDate: time.Now().Add(24 * time.Hour),
		PickupTime: "14:00",
		Notes:      "bringing my own bottles",
	}
}

func TestCreateRequest(t *testing.T) {
	uc, _, notifications := newRequestFixture(plainUser("alice"), approvedHost("bob"))

	request, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, entity.RequestPending, request.Status)
	assert.Equal(t, "alice", request.RequesterID)
	assert.Equal(t, "bob", request.HostID)

	// display fields are frozen at creation
	assert.Equal(t, "User alice", request.RequesterName)
	assert.Equal(t, "Host bob", request.HostName)

	// the host gets exactly one new_request notification
	created := notifications.byType(entity.NotificationNewRequest)
	require.Len(t, created, 1)
	assert.Equal(t, "bob", created[0].RecipientID)
	assert.Equal(t, request.ID, created[0].RelatedID)
}

func TestCreateRequestValidation(t *testing.T) {
	uc, _, _ := newRequestFixture(plainUser("alice"), approvedHost("bob"), plainUser("carol"))

	cases := []struct {
		name      string
		requester string
		mutate    func(*CreateRequestInput)
	}{
		{"missing ph level", "alice", func(in *CreateRequestInput) { in.PhLevel = 0 }},
		{"missing liters", "alice", func(in *CreateRequestInput) { in.Liters = 0 }},
		{"missing pickup date", "alice", func(in *CreateRequestInput) { in.PickupDate = time.Time{} }},
		{"missing pickup time", "alice", func(in *CreateRequestInput) { in.PickupTime = "" }},
		{"self request", "bob", func(in *CreateRequestInput) {}},
		{"host not approved", "alice", func(in *CreateRequestInput) { in.HostID = "carol" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput("bob")
			tc.mutate(&input)
			_, err := uc.CreateRequest(context.Background(), tc.requester, input)
			assert.True(t, errors.Is(err, "BAD_REQUEST"), "got %v", err)
		})
	}
}

func TestCreateRequestHostNotAccepting(t *testing.T) {
	host := approvedHost("bob")
	host.IsAcceptingRequests = false
	uc, _, _ := newRequestFixture(plainUser("alice"), host)

	_, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    entity.RequestStatus
		to      entity.RequestStatus
		actor   string
		wantErr string
	}{
		{"host accepts pending", entity.RequestPending, entity.RequestAccepted, "bob", ""},
		{"host declines pending", entity.RequestPending, entity.RequestDeclined, "bob", ""},
		{"requester cancels pending", entity.RequestPending, entity.RequestCancelled, "alice", ""},
		{"requester cancels accepted", entity.RequestAccepted, entity.RequestCancelled, "alice", ""},
		{"requester cannot accept", entity.RequestPending, entity.RequestAccepted, "alice", "FORBIDDEN"},
		{"host cannot cancel", entity.RequestPending, entity.RequestCancelled, "bob", "FORBIDDEN"},
		{"declined is terminal", entity.RequestDeclined, entity.RequestAccepted, "bob", "INVALID_TRANSITION"},
		{"completed is terminal", entity.RequestCompleted, entity.RequestCancelled, "alice", "INVALID_TRANSITION"},
		{"chatting is terminal", entity.RequestChatting, entity.RequestAccepted, "bob", "INVALID_TRANSITION"},
		{"no bare completion", entity.RequestAccepted, entity.RequestCompleted, "bob", "INVALID_TRANSITION"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, requestRepo, _ := newRequestFixture(plainUser("alice"), approvedHost("bob"))
			seeded := &entity.WaterRequest{RequesterID: "alice", HostID: "bob", Status: tc.from}
			require.NoError(t, requestRepo.Create(context.Background(), seeded))

			updated, err := uc.UpdateStatus(context.Background(), tc.actor, seeded.ID, tc.to)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			}
		})
	}
}

func TestUpdateStatusNotifiesCounterpart(t *testing.T) {
	uc, _, notifications := newRequestFixture(plainUser("alice"), approvedHost("bob"))

	request, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), "bob", request.ID, entity.RequestAccepted)
	require.NoError(t, err)

	accepted := notifications.byType(entity.NotificationRequestAccepted)
	require.Len(t, accepted, 1)
	assert.Equal(t, "alice", accepted[0].RecipientID)
	assert.Equal(t, "Host bob", accepted[0].SenderName)
}

func TestConfirmPickup(t *testing.T) {
	uc, requestRepo, notifications := newRequestFixture(plainUser("alice"), approvedHost("bob"))

	request, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), "bob", request.ID, entity.RequestAccepted)
	require.NoError(t, err)

	// wrong payload never completes
	_, err = uc.ConfirmPickup(context.Background(), "alice", request.ID, "some-other-id")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	stored, _ := requestRepo.GetByID(context.Background(), request.ID)
	assert.Equal(t, entity.RequestAccepted, stored.Status)

	// only the requester may confirm
	_, err = uc.ConfirmPickup(context.Background(), "bob", request.ID, request.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	completed, err := uc.ConfirmPickup(context.Background(), "alice", request.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestCompleted, completed.Status)

	done := notifications.byType(entity.NotificationRequestCompleted)
	require.Len(t, done, 1)
	assert.Equal(t, "bob", done[0].RecipientID)
}

func TestConfirmPickupRequiresAccepted(t *testing.T) {
	uc, _, _ := newRequestFixture(plainUser("alice"), approvedHost("bob"))

	request, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	require.NoError(t, err)

	_, err = uc.ConfirmPickup(context.Background(), "alice", request.ID, request.ID)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestCreateChatThread(t *testing.T) {
	uc, _, _ := newRequestFixture(plainUser("alice"), approvedHost("bob"))

	thread, err := uc.CreateChatThread(context.Background(), "alice", "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestChatting, thread.Status)
	assert.Zero(t, thread.PhLevel)
	assert.Zero(t, thread.Liters)
	assert.True(t, thread.PickupDate.IsZero())

	// a stranger cannot open someone else's thread
	_, err = uc.CreateChatThread(context.Background(), "mallory", "bob", "alice")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestGetRequestByIDParticipantsOnly(t *testing.T) {
	uc, _, _ := newRequestFixture(plainUser("alice"), approvedHost("bob"))

	request, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	require.NoError(t, err)

	for _, uid := range []string{"alice", "bob"} {
		got, err := uc.GetRequestByID(context.Background(), uid, request.ID)
		require.NoError(t, err)
		assert.Equal(t, request.ID, got.ID)
	}

	_, err = uc.GetRequestByID(context.Background(), "mallory", request.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestNotificationFailureDoesNotFailRequest(t *testing.T) {
	uc, _, notifications := newRequestFixture(plainUser("alice"), approvedHost("bob"))
	notifications.failing = true

	request, err := uc.CreateRequest(context.Background(), "alice", validCreateInput("bob"))
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, request.Status)
}

// Full lifecycle: request, accept, scan, review.
func TestRequestLifecycle(t *testing.T) {
	userRepo := newFakeUserRepo(plainUser("alice"), approvedHost("bob"))
	requestRepo := newFakeRequestRepo()
	notificationRepo := &fakeNotificationRepo{}
	notifier := NewNotificationUseCase(notificationRepo)
	requests := NewRequestUseCase(requestRepo, userRepo, notifier)
	reviews := NewReviewUseCase(&fakeReviewRepo{users: userRepo}, userRepo, notifier)

	ctx := context.Background()

	request, err := requests.CreateRequest(ctx, "alice", validCreateInput("bob"))
	require.NoError(t, err)

	_, err = requests.UpdateStatus(ctx, "bob", request.ID, entity.RequestAccepted)
	require.NoError(t, err)

	completed, err := requests.ConfirmPickup(ctx, "alice", request.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestCompleted, completed.Status)

	_, err = reviews.AddReview(ctx, "alice", AddReviewInput{HostID: "bob", Rating: 5, Comment: "great water"})
	require.NoError(t, err)

	host, err := userRepo.GetByID(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 5.0, host.Rating)
	assert.Equal(t, 1, host.Reviews)

	// the host saw the whole story
	types := make([]entity.NotificationType, 0)
	for _, n := range notificationRepo.notifications {
		if n.RecipientID == "bob" {
			types = append(types, n.Type)
		}
	}
	assert.Equal(t, []entity.NotificationType{
		entity.NotificationNewRequest,
		entity.NotificationRequestCompleted,
		entity.NotificationReviewLeft,
	}, types)
}
