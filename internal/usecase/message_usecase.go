package usecase

import (
	"context"

	"fitpulse/internal/domain/entity"

	"github.com/google/uuid"
)

// SendMessageInput defines the data required to send a direct message.
type SendMessageInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
}

// MessageUsecase defines the interface for the conversation operations.
type MessageUsecase interface {
	// ListConversations returns one summary per counterpart the user has
	// exchanged messages with, newest conversation first.
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.ConversationSummary, error)

	// GetMessages returns the full history between the user and the other
	// party, oldest first, and marks the other party's messages as read.
	GetMessages(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entity.Message, error)

	// SendMessage stores a new message and notifies the receiver.
	SendMessage(ctx context.Context, input *SendMessageInput) (*entity.Message, error)

	// MarkAsRead marks every message from otherUserID to userID as read.
	MarkAsRead(ctx context.Context, userID, otherUserID uuid.UUID) error
}
