// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single direct message between two users. It is immutable once
// created except for the Read flag, which transitions false to true exactly
// once, either implicitly when the receiver fetches the conversation or
// explicitly through a mark-read call.
type Message struct {
	ID         string    `json:"id"` // Hex object id assigned by the message store.
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`

	// Sender and Receiver are derived projections attached when the message
	// is returned to a client. They are never persisted with the message.
	Sender   *PublicUser `json:"sender,omitempty"`
	Receiver *PublicUser `json:"receiver,omitempty"`
}

// ConversationSummary collapses a user's message history with one counterpart
// into a single row: who the counterpart is and what the latest message looks
// like from the current user's point of view. It is a derived view rebuilt on
// every fetch, never persisted.
type ConversationSummary struct {
	Counterpart *PublicUser `json:"counterpart"`
	LastMessage *Message    `json:"lastMessage"`
	Unread      bool        `json:"unread"`
}

// UserDevice represents a user's device registered for push notifications.
type UserDevice struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	FCMToken  string    `json:"fcmToken"`
	Platform  string    `json:"platform"` // ios, android
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
