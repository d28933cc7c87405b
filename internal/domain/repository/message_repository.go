// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"fitpulse/internal/domain/entity"

	"github.com/google/uuid"
)

// MessageRepository defines the operations against the message store.
// Messages are queried from either side of a sender/receiver pair; the
// conversation view is derived above this interface.
type MessageRepository interface {
	// Insert persists a new message and fills in its generated ID and timestamp.
	Insert(ctx context.Context, message *entity.Message) error

	// ListByParticipant returns every message where the user is sender or
	// receiver, newest first.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)

	// ListBetween returns all messages exchanged between the pair, oldest first.
	ListBetween(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entity.Message, error)

	// MarkRead flips the read flag on every unread message sent by senderID to
	// receiverID. Calling it again is a no-op.
	MarkRead(ctx context.Context, senderID, receiverID uuid.UUID) error
}
