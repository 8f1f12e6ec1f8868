package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kangenshare/internal/domain/entity"
	"kangenshare/pkg/errors"
)

func newChatFixture(t *testing.T) (*ChatUseCase, *fakeNotificationRepo, string) {
	t.Helper()

	requestRepo := newFakeRequestRepo()
	request := &entity.WaterRequest{
		RequesterID:    "alice",
		HostID:         "bob",
		Status:         entity.RequestPending,
		RequesterName:  "Alice",
		RequesterImage: "alice.jpg",
		HostName:       "Bob",
		HostImage:      "bob.jpg",
	}
	require.NoError(t, requestRepo.Create(context.Background(), request))

	notificationRepo := &fakeNotificationRepo{}
	uc := NewChatUseCase(&fakeMessageRepo{}, requestRepo, NewNotificationUseCase(notificationRepo))
	return uc, notificationRepo, request.ID
}

func TestSendMessage(t *testing.T) {
	uc, notifications, requestID := newChatFixture(t)
	ctx := context.Background()

	message, err := uc.SendMessage(ctx, "alice", requestID, "hello, still available tomorrow?")
	require.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "alice", message.Sender)

	// the counterpart gets a new_message notification carrying the
	// sender's frozen display fields
	created := notifications.byType(entity.NotificationNewMessage)
	require.Len(t, created, 1)
	assert.Equal(t, "bob", created[0].RecipientID)
	assert.Equal(t, "Alice", created[0].SenderName)
	assert.Equal(t, "alice.jpg", created[0].SenderImage)

	// the reply goes the other way
	_, err = uc.SendMessage(ctx, "bob", requestID, "yes, come by at noon")
	require.NoError(t, err)

	created = notifications.byType(entity.NotificationNewMessage)
	require.Len(t, created, 2)
	assert.Equal(t, "alice", created[1].RecipientID)
	assert.Equal(t, "Bob", created[1].SenderName)
}

func TestSendMessageValidation(t *testing.T) {
	uc, _, requestID := newChatFixture(t)
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, "alice", requestID, "   ")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(ctx, "mallory", requestID, "let me in")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.SendMessage(ctx, "alice", "missing-request", "hello")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListMessagesParticipantsOnly(t *testing.T) {
	uc, _, requestID := newChatFixture(t)
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, "alice", requestID, "first")
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, "bob", requestID, "second")
	require.NoError(t, err)

	messages, err := uc.ListMessages(ctx, "bob", requestID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)

	_, err = uc.ListMessages(ctx, "mallory", requestID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
