package impl

import (
	"context"
	"testing"
	"time"

	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"
	"fitpulse/internal/domain/service"
	mockRepo "fitpulse/internal/mocks/repository"
	mockSvc "fitpulse/internal/mocks/service"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// messageServiceFixtures holds all test dependencies for message service tests.
type messageServiceFixtures struct {
	service             usecase.MessageUsecase
	messageRepo         *mockRepo.MockMessageRepository
	userRepo            *mockRepo.MockUserRepository
	deviceRepo          *mockRepo.MockDeviceRepository
	eventPublisher      *mockSvc.MockEventPublisher
	notificationService *mockSvc.MockNotificationService
}

func createTestMessageService(t *testing.T) messageServiceFixtures {
	messageRepo := mockRepo.NewMockMessageRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	notificationService := mockSvc.NewMockNotificationService(t)

	svc := NewMessageService(MessageServiceParams{
		MessageRepo:         messageRepo,
		UserRepo:            userRepo,
		DeviceRepo:          deviceRepo,
		EventPublisher:      eventPublisher,
		NotificationService: notificationService,
		Logger:              newDiscardLogger(),
	})

	return messageServiceFixtures{
		service:             svc,
		messageRepo:         messageRepo,
		userRepo:            userRepo,
		deviceRepo:          deviceRepo,
		eventPublisher:      eventPublisher,
		notificationService: notificationService,
	}
}

func TestMessageService_ListConversations_OneSummaryPerCounterpart(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()
	aliceID := uuid.New()
	bobID := uuid.New()
	now := time.Now()

	// Newest first, the way the repository returns them. Alice's latest is an
	// unread inbound message; Bob's latest is outbound, with an older unread
	// inbound message buried in the history.
	messages := []*entity.Message{
		{ID: "m4", SenderID: aliceID, ReceiverID: userID, Content: "run tomorrow?", Read: false, CreatedAt: now},
		{ID: "m3", SenderID: userID, ReceiverID: bobID, Content: "see you", Read: true, CreatedAt: now.Add(-time.Minute)},
		{ID: "m2", SenderID: bobID, ReceiverID: userID, Content: "lunch?", Read: false, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "m1", SenderID: userID, ReceiverID: aliceID, Content: "hey", Read: true, CreatedAt: now.Add(-3 * time.Minute)},
	}

	fx.messageRepo.EXPECT().ListByParticipant(ctx, userID).Return(messages, nil)
	fx.userRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{aliceID, bobID}).
		Return([]*entity.User{
			{ID: aliceID, Name: "Alice"},
			{ID: bobID, Name: "Bob"},
		}, nil)

	summaries, err := fx.service.ListConversations(ctx, userID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Alice first, because her conversation has the newest message.
	assert.Equal(t, aliceID, summaries[0].Counterpart.ID)
	assert.Equal(t, "m4", summaries[0].LastMessage.ID)
	assert.True(t, summaries[0].Unread)

	// Bob's flag stays false: only the latest message counts, and it is
	// addressed to Bob, not the user.
	assert.Equal(t, bobID, summaries[1].Counterpart.ID)
	assert.Equal(t, "m3", summaries[1].LastMessage.ID)
	assert.False(t, summaries[1].Unread)
}

func TestMessageService_ListConversations_SkipsDeletedCounterpart(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()
	goneID := uuid.New()

	messages := []*entity.Message{
		{ID: "m1", SenderID: goneID, ReceiverID: userID, Content: "hello", CreatedAt: time.Now()},
	}

	fx.messageRepo.EXPECT().ListByParticipant(ctx, userID).Return(messages, nil)
	fx.userRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{goneID}).Return(nil, nil)

	summaries, err := fx.service.ListConversations(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestMessageService_ListConversations_Empty(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.messageRepo.EXPECT().ListByParticipant(ctx, userID).Return(nil, nil)
	fx.userRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{}).Return(nil, nil)

	summaries, err := fx.service.ListConversations(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestMessageService_GetMessages_MarksReadBeforeListing(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	marked := false

	fx.userRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{userID, otherID}).
		Return([]*entity.User{
			{ID: userID, Name: "Me"},
			{ID: otherID, Name: "Other"},
		}, nil)
	fx.messageRepo.EXPECT().
		MarkRead(ctx, otherID, userID).
		RunAndReturn(func(context.Context, uuid.UUID, uuid.UUID) error {
			marked = true
			return nil
		})
	fx.messageRepo.EXPECT().
		ListBetween(ctx, userID, otherID).
		RunAndReturn(func(context.Context, uuid.UUID, uuid.UUID) ([]*entity.Message, error) {
			// The history must be read after the unread flags flip, so the
			// response reflects the post-fetch state.
			assert.True(t, marked)
			return []*entity.Message{{ID: "m1", SenderID: otherID, ReceiverID: userID, Read: true}}, nil
		})

	messages, err := fx.service.GetMessages(ctx, userID, otherID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Read)
	require.NotNil(t, messages[0].Sender)
	assert.Equal(t, "Other", messages[0].Sender.Name)
	require.NotNil(t, messages[0].Receiver)
	assert.Equal(t, "Me", messages[0].Receiver.Name)
}

func TestMessageService_GetMessages_UnknownCounterpart(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	// Only the caller comes back; the counterpart account is gone.
	fx.userRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{userID, otherID}).
		Return([]*entity.User{{ID: userID}}, nil)

	messages, err := fx.service.GetMessages(ctx, userID, otherID)
	assert.Nil(t, messages)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestMessageService_SendMessage_Success(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	senderID := uuid.New()
	receiverID := uuid.New()
	deviceID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, receiverID).Return(&entity.User{ID: receiverID, Name: "Bob"}, nil)
	fx.messageRepo.EXPECT().
		Insert(ctx, mock.AnythingOfType("*entity.Message")).
		RunAndReturn(func(_ context.Context, message *entity.Message) error {
			message.ID = "m1"
			message.CreatedAt = time.Now()
			return nil
		})

	fx.eventPublisher.EXPECT().
		PublishMessageEvent(ctx, mock.AnythingOfType("*service.MessageEvent")).
		RunAndReturn(func(_ context.Context, event *service.MessageEvent) error {
			assert.Equal(t, "m1", event.MessageID)
			assert.Equal(t, senderID.String(), event.SenderID)
			assert.Equal(t, receiverID.String(), event.ReceiverID)
			return nil
		})

	fx.deviceRepo.EXPECT().
		FindActiveDevicesByUser(ctx, receiverID).
		Return([]*entity.UserDevice{{ID: deviceID, UserID: receiverID, FCMToken: "token-1"}}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, senderID).Return(&entity.User{ID: senderID, Name: "Alice"}, nil)
	fx.notificationService.EXPECT().
		SendBatchNotification(ctx, []string{"token-1"}, "Alice", "hello", mock.Anything).
		Return(1, 0, nil, nil)

	message, err := fx.service.SendMessage(ctx, &usecase.SendMessageInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", message.ID)
	assert.False(t, message.Read)
	require.NotNil(t, message.Sender)
	assert.Equal(t, "Alice", message.Sender.Name)
	require.NotNil(t, message.Receiver)
	assert.Equal(t, "Bob", message.Receiver.Name)
}

func TestMessageService_SendMessage_ToSelf(t *testing.T) {
	fx := createTestMessageService(t)

	userID := uuid.New()

	message, err := fx.service.SendMessage(context.Background(), &usecase.SendMessageInput{
		SenderID:   userID,
		ReceiverID: userID,
		Content:    "note to self",
	})
	assert.Nil(t, message)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMessageService_SendMessage_UnknownReceiver(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	senderID := uuid.New()
	receiverID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, receiverID).Return(nil, repository.ErrUserNotFound)

	message, err := fx.service.SendMessage(ctx, &usecase.SendMessageInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    "hello",
	})
	assert.Nil(t, message)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestMessageService_SendMessage_PushFailureDoesNotFailSend(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	senderID := uuid.New()
	receiverID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, receiverID).Return(&entity.User{ID: receiverID}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, senderID).Return(&entity.User{ID: senderID}, nil)
	fx.messageRepo.EXPECT().
		Insert(ctx, mock.AnythingOfType("*entity.Message")).
		RunAndReturn(func(_ context.Context, message *entity.Message) error {
			message.ID = "m1"
			return nil
		})
	fx.eventPublisher.EXPECT().
		PublishMessageEvent(ctx, mock.AnythingOfType("*service.MessageEvent")).
		Return(assert.AnError)
	fx.deviceRepo.EXPECT().
		FindActiveDevicesByUser(ctx, receiverID).
		Return(nil, assert.AnError)

	// The message is durable before fan-out runs, so fan-out failures are
	// swallowed.
	message, err := fx.service.SendMessage(ctx, &usecase.SendMessageInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", message.ID)
}

func TestMessageService_SendMessage_DeactivatesDeadTokens(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	senderID := uuid.New()
	receiverID := uuid.New()
	liveDeviceID := uuid.New()
	deadDeviceID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, receiverID).Return(&entity.User{ID: receiverID}, nil)
	fx.messageRepo.EXPECT().
		Insert(ctx, mock.AnythingOfType("*entity.Message")).
		RunAndReturn(func(_ context.Context, message *entity.Message) error {
			message.ID = "m1"
			return nil
		})
	fx.eventPublisher.EXPECT().
		PublishMessageEvent(ctx, mock.AnythingOfType("*service.MessageEvent")).
		Return(nil)

	fx.deviceRepo.EXPECT().
		FindActiveDevicesByUser(ctx, receiverID).
		Return([]*entity.UserDevice{
			{ID: liveDeviceID, UserID: receiverID, FCMToken: "live-token"},
			{ID: deadDeviceID, UserID: receiverID, FCMToken: "dead-token"},
		}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, senderID).Return(&entity.User{ID: senderID, Name: "Alice"}, nil)
	fx.notificationService.EXPECT().
		SendBatchNotification(ctx, []string{"live-token", "dead-token"}, "Alice", "hello", mock.Anything).
		Return(1, 1, []string{"dead-token"}, nil)
	fx.deviceRepo.EXPECT().DeactivateDevice(ctx, deadDeviceID).Return(nil)

	_, err := fx.service.SendMessage(ctx, &usecase.SendMessageInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    "hello",
	})
	require.NoError(t, err)
}

func TestMessageService_MarkAsRead_Success(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, otherID).Return(&entity.User{ID: otherID}, nil)
	fx.messageRepo.EXPECT().MarkRead(ctx, otherID, userID).Return(nil)

	err := fx.service.MarkAsRead(ctx, userID, otherID)
	require.NoError(t, err)
}

func TestMessageService_MarkAsRead_UnknownCounterpart(t *testing.T) {
	fx := createTestMessageService(t)

	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, otherID).Return(nil, repository.ErrUserNotFound)

	err := fx.service.MarkAsRead(ctx, userID, otherID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
