package impl

import (
	"context"
	"log/slog"

	deliverycontext "fitpulse/internal/delivery/context"
	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"
	"fitpulse/internal/domain/service"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// messageService implements the MessageUsecase interface.
type messageService struct {
	messageRepo         repository.MessageRepository
	userRepo            repository.UserRepository
	deviceRepo          repository.DeviceRepository
	eventPublisher      service.EventPublisher
	notificationService service.NotificationService
	logger              *slog.Logger
}

// MessageServiceParams holds dependencies for messageService, injected by Fx.
type MessageServiceParams struct {
	fx.In

	MessageRepo         repository.MessageRepository
	UserRepo            repository.UserRepository
	DeviceRepo          repository.DeviceRepository
	EventPublisher      service.EventPublisher
	NotificationService service.NotificationService
	Logger              *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(params MessageServiceParams) usecase.MessageUsecase {
	return &messageService{
		messageRepo:         params.MessageRepo,
		userRepo:            params.UserRepo,
		deviceRepo:          params.DeviceRepo,
		eventPublisher:      params.EventPublisher,
		notificationService: params.NotificationService,
		logger:              params.Logger,
	}
}

func (srv *messageService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListConversations collapses the user's whole message history into one
// summary per counterpart, ordered by most recent activity.
func (srv *messageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.ConversationSummary, error) {
	messages, err := srv.messageRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages for user")
	}

	// Messages arrive newest first, so the first message seen for a
	// counterpart is that conversation's latest.
	counterpartOrder := make([]uuid.UUID, 0)
	latestByCounterpart := make(map[uuid.UUID]*entity.Message)
	unreadByCounterpart := make(map[uuid.UUID]bool)

	for _, message := range messages {
		counterpartID := message.SenderID
		if counterpartID == userID {
			counterpartID = message.ReceiverID
		}

		if _, seen := latestByCounterpart[counterpartID]; !seen {
			latestByCounterpart[counterpartID] = message
			counterpartOrder = append(counterpartOrder, counterpartID)

			// Unread is a property of the latest message only: the summary
			// shows unread when that message is addressed to the user and
			// has not been read yet.
			unreadByCounterpart[counterpartID] = message.ReceiverID == userID && !message.Read
		}
	}

	counterparts, err := srv.userRepo.FindByIDs(ctx, counterpartOrder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation counterparts")
	}

	usersByID := make(map[uuid.UUID]*entity.User, len(counterparts))
	for _, user := range counterparts {
		usersByID[user.ID] = user
	}

	summaries := make([]*entity.ConversationSummary, 0, len(counterpartOrder))
	for _, counterpartID := range counterpartOrder {
		user, ok := usersByID[counterpartID]
		if !ok {
			// Counterpart account was deleted. Skip the conversation rather
			// than surface a dangling reference.
			srv.log(ctx).Debug("Skipping conversation with missing user", slog.Any("counterpartID", counterpartID))

			continue
		}

		summaries = append(summaries, &entity.ConversationSummary{
			Counterpart: user.PublicView(),
			LastMessage: latestByCounterpart[counterpartID],
			Unread:      unreadByCounterpart[counterpartID],
		})
	}

	return summaries, nil
}

// GetMessages returns the full history between the user and the other party,
// oldest first, each message carrying both participants' public profiles.
// Fetching the conversation marks the other party's messages as read before
// the history is loaded, so the response reflects the new state.
func (srv *messageService) GetMessages(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entity.Message, error) {
	participants, err := srv.userRepo.FindByIDs(ctx, []uuid.UUID{userID, otherUserID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation participants")
	}

	profiles := make(map[uuid.UUID]*entity.PublicUser, len(participants))
	for _, user := range participants {
		profiles[user.ID] = user.PublicView()
	}
	if _, ok := profiles[otherUserID]; !ok {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("user does not exist")
	}

	if err := srv.messageRepo.MarkRead(ctx, otherUserID, userID); err != nil {
		return nil, errors.Wrap(err, "failed to mark conversation as read")
	}

	messages, err := srv.messageRepo.ListBetween(ctx, userID, otherUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversation messages")
	}

	for _, message := range messages {
		message.Sender = profiles[message.SenderID]
		message.Receiver = profiles[message.ReceiverID]
	}

	return messages, nil
}

// SendMessage stores a new message and notifies the receiver. Event
// publishing and push delivery are best-effort: the message is already
// durable when they run, so their failures are logged and swallowed.
func (srv *messageService) SendMessage(ctx context.Context, input *usecase.SendMessageInput) (*entity.Message, error) {
	if input.SenderID == input.ReceiverID {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("cannot send a message to yourself")
	}

	receiver, err := srv.findUser(ctx, input.ReceiverID)
	if err != nil {
		return nil, err
	}

	sender, err := srv.findUser(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	}

	if err := srv.messageRepo.Insert(ctx, message); err != nil {
		return nil, errors.Wrap(domainerrors.ErrMessageSendFailed, err.Error())
	}

	message.Sender = sender.PublicView()
	message.Receiver = receiver.PublicView()

	srv.publishMessageEvent(ctx, message)
	srv.pushNewMessageNotification(ctx, message, sender)

	return message, nil
}

// MarkAsRead marks every message from otherUserID to userID as read.
// Repeating the call is a no-op.
func (srv *messageService) MarkAsRead(ctx context.Context, userID, otherUserID uuid.UUID) error {
	if err := srv.ensureUserExists(ctx, otherUserID); err != nil {
		return err
	}

	if err := srv.messageRepo.MarkRead(ctx, otherUserID, userID); err != nil {
		return errors.Wrap(err, "failed to mark messages as read")
	}

	return nil
}

func (srv *messageService) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	_, err := srv.findUser(ctx, userID)

	return err
}

func (srv *messageService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("user does not exist")
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	return user, nil
}

func (srv *messageService) publishMessageEvent(ctx context.Context, message *entity.Message) {
	event := &service.MessageEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		MessageID:  message.ID,
		SenderID:   message.SenderID.String(),
		ReceiverID: message.ReceiverID.String(),
		SentAt:     message.CreatedAt,
	}

	if err := srv.eventPublisher.PublishMessageEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish message event",
			slog.String("messageID", message.ID),
			slog.Any("error", err),
		)
	}
}

func (srv *messageService) pushNewMessageNotification(ctx context.Context, message *entity.Message, sender *entity.User) {
	devices, err := srv.deviceRepo.FindActiveDevicesByUser(ctx, message.ReceiverID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load receiver devices for push",
			slog.Any("receiverID", message.ReceiverID),
			slog.Any("error", err),
		)

		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	data := map[string]string{
		"type":      "new_message",
		"senderId":  message.SenderID.String(),
		"messageId": message.ID,
	}

	success, failure, invalidTokens, err := srv.notificationService.SendBatchNotification(ctx, tokens, sender.Name, message.Content, data)
	if err != nil {
		srv.log(ctx).Warn("Failed to send push notifications", slog.Any("error", err))

		return
	}

	srv.log(ctx).Debug("Push notifications sent",
		slog.Int("success", success),
		slog.Int("failure", failure),
	)

	// Deactivate devices the provider reports as dead so future sends stay clean.
	for _, token := range invalidTokens {
		for _, device := range devices {
			if device.FCMToken != token {
				continue
			}
			if err := srv.deviceRepo.DeactivateDevice(ctx, device.ID); err != nil {
				srv.log(ctx).Warn("Failed to deactivate dead device", slog.Any("deviceID", device.ID), slog.Any("error", err))
			}
		}
	}
}
